package agent

import (
	"context"
	"errors"

	"github.com/tutorwise/agentkit/core"
)

// ErrCancelled is returned by a handler that observed the caller's
// cancellation predicate before starting expensive work. The pipeline
// converts it into a StatusCancelled result. Cancellation is cooperative
// only; a call that has already passed its last check completes normally
// even if cancellation was requested meanwhile.
var ErrCancelled = errors.New("execution cancelled")

// Executor is the contract every agent implements.
//
// Identity accessors are read-only and immutable for the instance lifetime.
// Initialize establishes provider selection exactly once; absence of any
// configured credential is a valid outcome (offline mode), never an error.
// Execute is self-contained per call: validate, dispatch, optionally call a
// provider, return. Health must not panic or fail - it reports the current
// provider-selection state. Cleanup is safe to call even if Initialize never
// ran or ran already.
type Executor interface {
	ID() string
	Name() string
	Description() string
	Capabilities() []core.Capability
	Info() core.AgentInfo

	Initialize(ctx context.Context) error
	Execute(ctx context.Context, execCtx *core.ExecutionContext) *core.ExecutionResult

	// ValidateInput is an advisory predicate checked against a capability's
	// declared input schema. The baseline implementation always accepts;
	// schema enforcement is an intentionally unimplemented contract point.
	ValidateInput(capability string, input map[string]any) bool

	Health(ctx context.Context) core.Health
	Cleanup(ctx context.Context) error
}
