package testutil

import (
	"sync"

	"github.com/tutorwise/agentkit/core"
)

// ContextBuilder provides a fluent helper for constructing execution
// contexts in tests. Example:
//
//	ec := NewContextBuilder("lesson").Action("generate_lesson").Field("topic", "fractions").Build()
//
// Chain only the parts you need; sensible defaults are applied.
type ContextBuilder struct {
	agentID   string
	taskID    string
	input     map[string]any
	state     map[string]any
	cancelled func() bool
	recorder  *EventRecorder
}

// NewContextBuilder creates a builder for the given agent id.
func NewContextBuilder(agentID string) *ContextBuilder {
	return &ContextBuilder{agentID: agentID, input: map[string]any{}}
}

// TaskID overrides the auto-generated task id (chainable). Use mainly in
// tests where determinism matters.
func (b *ContextBuilder) TaskID(id string) *ContextBuilder { b.taskID = id; return b }

// Action sets the capability discriminator field (chainable).
func (b *ContextBuilder) Action(action string) *ContextBuilder {
	b.input[core.ActionKey] = action
	return b
}

// Field sets one input field (chainable).
func (b *ContextBuilder) Field(key string, value any) *ContextBuilder {
	b.input[key] = value
	return b
}

// State sets the optional prior-state record (chainable).
func (b *ContextBuilder) State(state map[string]any) *ContextBuilder { b.state = state; return b }

// Cancelled installs a cancellation predicate (chainable).
func (b *ContextBuilder) Cancelled(fn func() bool) *ContextBuilder { b.cancelled = fn; return b }

// Record attaches an EventRecorder as the progress and log sinks (chainable).
func (b *ContextBuilder) Record(rec *EventRecorder) *ContextBuilder { b.recorder = rec; return b }

// Build assembles the execution context.
func (b *ContextBuilder) Build() *core.ExecutionContext {
	ec := core.NewExecutionContext(b.agentID, b.input)
	if b.taskID != "" {
		ec.TaskID = b.taskID
	}
	ec.State = b.state
	ec.IsCancelled = b.cancelled
	if b.recorder != nil {
		ec.OnProgress = b.recorder.OnProgress
		ec.OnLog = b.recorder.OnLog
	}
	return ec
}

// ProgressEvent is one captured progress update.
type ProgressEvent struct {
	Fraction float64
	Message  string
}

// LogEvent is one captured log event.
type LogEvent struct {
	Level    string
	Message  string
	Metadata map[string]any
}

// EventRecorder captures progress and log events emitted during an
// execution. Safe for concurrent use.
type EventRecorder struct {
	mu       sync.Mutex
	progress []ProgressEvent
	logs     []LogEvent
}

// OnProgress records a progress update; install as ExecutionContext.OnProgress.
func (r *EventRecorder) OnProgress(fraction float64, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, ProgressEvent{Fraction: fraction, Message: message})
}

// OnLog records a log event; install as ExecutionContext.OnLog.
func (r *EventRecorder) OnLog(level, message string, metadata map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, LogEvent{Level: level, Message: message, Metadata: metadata})
}

// Progress returns the captured progress updates in emission order.
func (r *EventRecorder) Progress() []ProgressEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ProgressEvent, len(r.progress))
	copy(out, r.progress)
	return out
}

// Logs returns the captured log events in emission order.
func (r *EventRecorder) Logs() []LogEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]LogEvent, len(r.logs))
	copy(out, r.logs)
	return out
}
