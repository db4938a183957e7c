package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCaptureLogger returns a JSON logger writing into buf.
func newCaptureLogger(level LogLevel, buf *bytes.Buffer) *AgentKitLogger {
	cfg := DefaultLoggerConfig()
	cfg.Level = level
	cfg.Output = buf
	cfg.AddSource = false
	return NewLogger(cfg)
}

// lastEntry decodes the final JSON log line in buf.
func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "debug", LogLevelDebug.String())
	assert.Equal(t, "info", LogLevelInfo.String())
	assert.Equal(t, "warn", LogLevelWarn.String())
	assert.Equal(t, "error", LogLevelError.String())
}

func TestAgentKitLogger_KeyValueArgs(t *testing.T) {
	var buf bytes.Buffer
	logger := newCaptureLogger(LogLevelInfo, &buf)

	logger.Info("agent initialized", "agent_id", "lesson", "provider", "anthropic")

	entry := lastEntry(t, &buf)
	assert.Equal(t, "agent initialized", entry["msg"])
	assert.Equal(t, "lesson", entry["agent_id"])
	assert.Equal(t, "anthropic", entry["provider"])
}

func TestAgentKitLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := newCaptureLogger(LogLevelWarn, &buf)

	logger.Debug("hidden")
	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.Warn("visible")
	assert.NotZero(t, buf.Len())
}

func TestAgentKitLogger_WithTaskAndComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := newCaptureLogger(LogLevelInfo, &buf).
		WithComponent("registry").
		WithTask("lesson", "task-1")

	logger.Info("dispatching")

	entry := lastEntry(t, &buf)
	assert.Equal(t, "registry", entry["component"])
	assert.Equal(t, "lesson", entry["agent_id"])
	assert.Equal(t, "task-1", entry["task_id"])
}

func TestAgentKitLogger_WithContextDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := newCaptureLogger(LogLevelInfo, &buf)
	child := parent.WithContext("tenant", "acme")

	parent.Info("from parent")
	entry := lastEntry(t, &buf)
	_, has := entry["tenant"]
	assert.False(t, has)

	child.Info("from child")
	entry = lastEntry(t, &buf)
	assert.Equal(t, "acme", entry["tenant"])
}

func TestAgentKitLogger_LogCapabilityRun(t *testing.T) {
	var buf bytes.Buffer
	logger := newCaptureLogger(LogLevelInfo, &buf)

	logger.LogCapabilityRun("generate_lesson", 42*time.Millisecond, true, nil)
	entry := lastEntry(t, &buf)
	assert.Equal(t, "Capability execution completed", entry["msg"])
	assert.Equal(t, "generate_lesson", entry["capability"])
	assert.Equal(t, true, entry["success"])

	logger.LogCapabilityRun("generate_lesson", time.Millisecond, false, errors.New("boom"))
	entry = lastEntry(t, &buf)
	assert.Equal(t, "Capability execution failed", entry["msg"])
	assert.Equal(t, "boom", entry["error"])
}

func TestAgentKitLogger_LogProviderCall(t *testing.T) {
	var buf bytes.Buffer
	logger := newCaptureLogger(LogLevelInfo, &buf)

	logger.LogProviderCall("anthropic", 100*time.Millisecond, false, errors.New("quota"))

	entry := lastEntry(t, &buf)
	assert.Equal(t, "Provider call failed", entry["msg"])
	assert.Equal(t, "anthropic", entry["provider"])
	assert.Equal(t, "quota", entry["error"])
}

func TestAgentKitLogger_LogRegistryOp(t *testing.T) {
	var buf bytes.Buffer
	logger := newCaptureLogger(LogLevelInfo, &buf)

	logger.LogRegistryOp("initialize", 8, time.Second, true, nil)

	entry := lastEntry(t, &buf)
	assert.Equal(t, "Registry operation completed", entry["msg"])
	assert.Equal(t, "initialize", entry["operation"])
	assert.Equal(t, float64(8), entry["agent_count"])
}

func TestAgentKitLogger_ErrorWithStack(t *testing.T) {
	var buf bytes.Buffer
	logger := newCaptureLogger(LogLevelError, &buf)

	logger.ErrorWithStack(errors.New("broken"), "operation failed")

	entry := lastEntry(t, &buf)
	assert.Equal(t, "broken", entry["error"])
	assert.Contains(t, entry["stack_trace"], "goroutine")
}

func TestAgentKitLogger_StartTimer(t *testing.T) {
	var buf bytes.Buffer
	logger := newCaptureLogger(LogLevelInfo, &buf)

	done := logger.StartTimer("resolve")
	done()

	entry := lastEntry(t, &buf)
	assert.Equal(t, "Operation completed", entry["msg"])
	assert.Equal(t, "resolve", entry["operation"])
}

func TestNoOpLogger_Discards(t *testing.T) {
	var l Logger = NoOpLogger{}
	l.Debug("x")
	l.Info("x", "k", "v")
	l.Warn("x")
	l.Error("x")
}

func TestNewSlogLogger_TextFormat(t *testing.T) {
	logger := NewSlogLogger(LogLevelDebug, "text", false)
	require.NotNil(t, logger)
	logger.Debug("starting up", "mode", "test")
}
