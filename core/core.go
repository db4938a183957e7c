package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ActionKey is the discriminator field every execution input must carry. Its
// value selects the capability an agent dispatches to.
const ActionKey = "action"

// Status classifies the terminal outcome of a single Execute call.
type Status string

const (
	// StatusSuccess marks a completed execution. Note that degraded runs
	// (no provider configured, or a failed provider call that fell back to
	// placeholder output) still complete with StatusSuccess; callers detect
	// degradation via the provenance flag on the output, not the status.
	StatusSuccess Status = "success"

	// StatusError marks an execution rejected before any handler work ran
	// (missing or unrecognized action) or failed inside a handler for a
	// non-provider reason.
	StatusError Status = "error"

	// StatusCancelled marks an execution short-circuited by the caller's
	// cancellation predicate before expensive work started.
	StatusCancelled Status = "cancelled"
)

// ProgressFunc receives coarse progress updates as a fraction in [0, 1]
// plus a human-readable phase message.
type ProgressFunc func(fraction float64, message string)

// LogFunc receives structured log events emitted by a handler. Metadata may
// be nil.
type LogFunc func(level, message string, metadata map[string]any)

// CancelFunc is polled cooperatively by handlers; returning true requests a
// short-circuit before the next expensive step. There is no preemption of
// in-flight work.
type CancelFunc func() bool

// ExecutionContext carries everything an agent needs for one Execute call.
// It is created fresh per call, owned by the caller and read-only to the
// agent. All callback fields are optional; use the Emit* helpers which
// tolerate absent sinks.
type ExecutionContext struct {
	// TaskID correlates the call across logs and results.
	TaskID string

	// AgentID names the agent the caller intends to run.
	AgentID string

	// Input is the free-form request record. It must contain ActionKey
	// naming the requested capability; remaining fields are passed to the
	// matching handler untouched.
	Input map[string]any

	// State is optional prior state supplied by the caller. The framework
	// never interprets it; handlers may.
	State map[string]any

	// OnProgress, OnLog and IsCancelled are optional caller-supplied sinks.
	OnProgress  ProgressFunc
	OnLog       LogFunc
	IsCancelled CancelFunc
}

// NewExecutionContext builds a context with a generated task id.
func NewExecutionContext(agentID string, input map[string]any) *ExecutionContext {
	return &ExecutionContext{
		TaskID:  NewID(),
		AgentID: agentID,
		Input:   input,
	}
}

// Action returns the discriminator value from the input, reporting whether a
// non-empty string value was present.
func (c *ExecutionContext) Action() (string, bool) {
	if c.Input == nil {
		return "", false
	}
	v, ok := c.Input[ActionKey]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// EmitProgress forwards a progress update to the caller, tolerating an
// absent sink.
func (c *ExecutionContext) EmitProgress(fraction float64, message string) {
	if c.OnProgress != nil {
		c.OnProgress(fraction, message)
	}
}

// EmitLog forwards a log event to the caller, tolerating an absent sink.
func (c *ExecutionContext) EmitLog(level, message string, metadata map[string]any) {
	if c.OnLog != nil {
		c.OnLog(level, message, metadata)
	}
}

// Cancelled polls the caller's cancellation predicate, tolerating an absent
// one (never cancelled).
func (c *ExecutionContext) Cancelled() bool {
	return c.IsCancelled != nil && c.IsCancelled()
}

// Result metadata keys populated by the shared execution pipeline.
const (
	// MetaCapability names the capability that ran.
	MetaCapability = "capability"
	// MetaCompletedAt is the UTC completion timestamp (RFC 3339).
	MetaCompletedAt = "completed_at"
	// MetaProvider names the backend that produced the output, or "none".
	MetaProvider = "provider"
	// MetaProviderCalls counts provider invocations made during the call.
	MetaProviderCalls = "provider_calls"
)

// Output keys shared by every handler's payload.
const (
	// ProvenanceKey is true when the output came from a real provider call
	// and false for local placeholder / fallback output.
	ProvenanceKey = "provenance"
	// RawKey carries the (bounded) original provider text when tolerant
	// extraction fell back.
	RawKey = "raw"
	// PlaceholderKey is true on deterministic local output produced when no
	// provider is configured or a provider call failed.
	PlaceholderKey = "placeholder"
	// ProviderErrorKey carries the error detail when a failed provider call
	// degraded to placeholder output.
	ProviderErrorKey = "provider_error"
)

// ExecutionResult is the terminal record of one Execute call, created once
// and returned by value semantics (callers own it after return).
type ExecutionResult struct {
	Output   map[string]any `json:"output,omitempty"`
	Status   Status         `json:"status"`
	Error    string         `json:"error,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// NewSuccessResult builds a success result carrying output plus pipeline
// metadata for the capability that ran.
func NewSuccessResult(output map[string]any, capability, provider string, providerCalls int) *ExecutionResult {
	return &ExecutionResult{
		Output: output,
		Status: StatusSuccess,
		Metadata: map[string]any{
			MetaCapability:    capability,
			MetaCompletedAt:   time.Now().UTC().Format(time.RFC3339),
			MetaProvider:      provider,
			MetaProviderCalls: providerCalls,
		},
	}
}

// NewErrorResult builds an error result with a formatted human-readable
// message. No handler output accompanies an error result.
func NewErrorResult(format string, args ...any) *ExecutionResult {
	return &ExecutionResult{
		Status: StatusError,
		Error:  fmt.Sprintf(format, args...),
	}
}

// NewCancelledResult marks a run short-circuited by cooperative cancellation.
func NewCancelledResult(capability string) *ExecutionResult {
	return &ExecutionResult{
		Status: StatusCancelled,
		Metadata: map[string]any{
			MetaCapability:  capability,
			MetaCompletedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}
}

// IsSuccess reports whether the result completed (possibly degraded).
func (r *ExecutionResult) IsSuccess() bool { return r.Status == StatusSuccess }

// Provenance reports the output provenance flag; false when absent.
func (r *ExecutionResult) Provenance() bool {
	if r.Output == nil {
		return false
	}
	b, _ := r.Output[ProvenanceKey].(bool)
	return b
}

// NewID generates a new unique identifier for tasks.
//
// This function creates a UUID-based unique identifier that can be used
// for task tracking and correlation throughout the framework.
//
// Returns a string representation of a new UUID.
func NewID() string { return uuid.NewString() }
