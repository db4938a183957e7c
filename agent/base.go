package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tutorwise/agentkit/core"
	"github.com/tutorwise/agentkit/extract"
	"github.com/tutorwise/agentkit/logging"
	"github.com/tutorwise/agentkit/provider"
)

// Handler processes one capability dispatch. It receives the remaining input
// fields (everything except the action discriminator) through the
// Invocation, may emit progress/log events, should poll cancellation before
// expensive work (returning ErrCancelled), and returns the output payload.
//
// Provider failures must be absorbed here via Invocation.Generate, which
// degrades to placeholder output; a Handler error is reserved for
// non-provider failures and yields a StatusError result.
type Handler func(ctx context.Context, inv *Invocation) (map[string]any, error)

// Options configures a BaseAgent.
//
// Use functional options with NewBaseAgent to override defaults.
type Options struct {
	// Logger receives framework-side diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger

	// Credentials are probed during Initialize to select a provider.
	Credentials provider.Credentials

	// Selection injects a pre-resolved provider selection, bypassing the
	// credential probe entirely. Intended for tests and custom wiring.
	Selection *provider.Selection

	// InputValidator is the advisory validation hook consulted before a
	// handler runs. Nil (the default) accepts every input; the framework
	// never enforces capability schemas itself.
	InputValidator func(capability string, input map[string]any) bool
}

// BaseAgent bundles identity, capability registration and the shared
// execution pipeline. Embed it in concrete agent implementations and
// register one Handler per capability during construction.
//
// Identity and the capability set are immutable after construction. Provider
// selection state is written exactly once, during Initialize, and only read
// afterwards; Execute never mutates it.
type BaseAgent struct {
	id           string
	name         string
	description  string
	capabilities []core.Capability
	handlers     map[string]Handler

	logger    logging.Logger
	creds     provider.Credentials
	injected  *provider.Selection
	validator func(string, map[string]any) bool

	mu          sync.Mutex
	initialized bool
	selection   provider.Selection
}

// NewBaseAgent constructs a BaseAgent with the given identity.
func NewBaseAgent(id, name, description string, optFns ...func(o *Options)) *BaseAgent {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &BaseAgent{
		id:          id,
		name:        name,
		description: description,
		handlers:    map[string]Handler{},
		logger:      opts.Logger,
		creds:       opts.Credentials,
		injected:    opts.Selection,
		validator:   opts.InputValidator,
	}
}

// RegisterCapability declares a capability and binds its handler. Intended
// for construction time only; registering the same name twice replaces the
// previous handler and keeps the first descriptor position.
func (a *BaseAgent) RegisterCapability(cap core.Capability, h Handler) {
	if _, exists := a.handlers[cap.Name]; !exists {
		a.capabilities = append(a.capabilities, cap)
	}
	a.handlers[cap.Name] = h
}

// ID returns the unique agent identifier.
func (a *BaseAgent) ID() string { return a.id }

// Name returns the human-readable display name.
func (a *BaseAgent) Name() string { return a.name }

// Description returns a detailed description of this agent's purpose.
func (a *BaseAgent) Description() string { return a.description }

// Capabilities returns the declared capability descriptors in order.
func (a *BaseAgent) Capabilities() []core.Capability {
	caps := make([]core.Capability, len(a.capabilities))
	copy(caps, a.capabilities)
	return caps
}

// Info returns the read-only identity projection used for discovery.
func (a *BaseAgent) Info() core.AgentInfo {
	return core.AgentInfo{
		ID:           a.id,
		Name:         a.name,
		Description:  a.description,
		Capabilities: a.Capabilities(),
	}
}

// Initialize establishes provider selection for the lifetime of the
// instance. It is idempotent in effect: the probe runs once, subsequent
// calls are no-ops. Absence of any configured credential leaves the agent in
// offline mode and still succeeds.
func (a *BaseAgent) Initialize(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.initialized {
		return nil
	}

	if a.injected != nil {
		a.selection = *a.injected
	} else {
		a.selection = provider.Resolve(a.creds)
	}
	a.initialized = true

	a.logger.Info("agent initialized", "agent_id", a.id, "provider", a.selection.Name)

	return nil
}

// snapshot reads the selection state without holding the lock during Execute.
func (a *BaseAgent) snapshot() (provider.Selection, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.selection, a.initialized
}

// Execute runs the shared pipeline: read the action discriminator, dispatch
// to the matching handler, and wrap its output with execution metadata.
// Failures before dispatch (missing or unknown action) produce StatusError
// without invoking any handler or provider.
func (a *BaseAgent) Execute(ctx context.Context, execCtx *core.ExecutionContext) *core.ExecutionResult {
	sel, initialized := a.snapshot()
	if !initialized {
		sel = provider.Selection{Name: provider.NameNone}
	}

	action, ok := execCtx.Action()
	if !ok {
		return core.NewErrorResult("input is missing required %q field", core.ActionKey)
	}

	execCtx.EmitProgress(0.1, "analyzing request")

	handler, ok := a.handlers[action]
	if !ok {
		return core.NewErrorResult("unknown action %q for agent %q (supported: %s)",
			action, a.id, strings.Join(a.capabilityNames(), ", "))
	}

	input := remainingInput(execCtx.Input)

	if !a.ValidateInput(action, input) {
		return core.NewErrorResult("input for action %q rejected by validation", action)
	}

	if execCtx.Cancelled() {
		return core.NewCancelledResult(action)
	}

	inv := &Invocation{
		Context:   execCtx,
		Input:     input,
		selection: sel,
		counter:   core.NewCallCounter(0),
		logger:    a.logger,
	}

	start := time.Now()
	output, err := handler(ctx, inv)
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			a.logger.Info("execution cancelled", "agent_id", a.id, "capability", action)
			return core.NewCancelledResult(action)
		}
		a.logger.Error("capability failed", "agent_id", a.id, "capability", action, "error", err, "duration", time.Since(start))
		return core.NewErrorResult("action %q failed: %s", action, err)
	}

	a.logger.Debug("capability completed", "agent_id", a.id, "capability", action, "duration", time.Since(start))
	execCtx.EmitProgress(1.0, "completed")

	return core.NewSuccessResult(output, action, sel.Name, inv.counter.Count())
}

// ValidateInput is the advisory validation hook. The baseline always accepts
// unless a custom validator was supplied at construction; capability schemas
// are descriptive, not enforced.
func (a *BaseAgent) ValidateInput(capability string, input map[string]any) bool {
	if a.validator == nil {
		return true
	}
	return a.validator(capability, input)
}

// Health reports the current provider-selection state. It never fails:
// offline mode is healthy-but-degraded, only an agent that was never
// initialized reports unhealthy.
func (a *BaseAgent) Health(_ context.Context) core.Health {
	sel, initialized := a.snapshot()

	if !initialized {
		return core.Health{Healthy: false, Message: "agent not initialized"}
	}
	if sel.Offline() {
		return core.Health{Healthy: true, Message: "degraded: no provider configured, serving placeholder output"}
	}
	info := sel.Provider.Info()
	return core.Health{Healthy: true, Message: fmt.Sprintf("provider: %s (%s)", info.Name, info.Model)}
}

// Cleanup releases the provider selection. Safe to call when Initialize
// never ran or Cleanup already did; a later Initialize re-resolves.
func (a *BaseAgent) Cleanup(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.selection = provider.Selection{}
	a.initialized = false

	return nil
}

func (a *BaseAgent) capabilityNames() []string {
	names := make([]string, len(a.capabilities))
	for i, c := range a.capabilities {
		names[i] = c.Name
	}
	return names
}

// remainingInput copies the input record minus the action discriminator.
func remainingInput(input map[string]any) map[string]any {
	rest := make(map[string]any, len(input))
	for k, v := range input {
		if k == core.ActionKey {
			continue
		}
		rest[k] = v
	}
	return rest
}

// Invocation scopes one Execute call for a handler: the caller's context and
// sinks, the remaining input fields, and degradation-aware generation.
type Invocation struct {
	// Context is the caller-owned execution context (read-only).
	Context *core.ExecutionContext
	// Input holds the request fields minus the action discriminator.
	Input map[string]any

	selection provider.Selection
	counter   *core.CallCounter
	logger    logging.Logger
}

// Offline reports whether the agent runs without a configured provider.
func (inv *Invocation) Offline() bool { return inv.selection.Offline() }

// ProviderName names the selected backend, or "none" in offline mode.
func (inv *Invocation) ProviderName() string {
	if inv.selection.Name == "" {
		return provider.NameNone
	}
	return inv.selection.Name
}

// Cancelled polls the caller's cancellation predicate.
func (inv *Invocation) Cancelled() bool { return inv.Context.Cancelled() }

// String returns a string input field, or fallback when absent/empty.
func (inv *Invocation) String(key, fallback string) string {
	if s, ok := inv.Input[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

// Generate runs the provider call for a handler with the framework's
// degradation policy:
//
//   - Offline mode: the handler's placeholder is returned, annotated with
//     provenance=false. No external call is attempted.
//   - Provider failure (network, auth, quota, timeout): absorbed here; the
//     placeholder is returned annotated with the error detail. The overall
//     execution still reports StatusSuccess - degraded output is signalled
//     through provenance, not status.
//   - Success: the raw text goes through tolerant extraction, yielding
//     either the parsed object (provenance=true) or the bounded raw-text
//     fallback (provenance=false).
func (inv *Invocation) Generate(ctx context.Context, req provider.Request, placeholder map[string]any) map[string]any {
	if placeholder == nil {
		placeholder = map[string]any{}
	}

	if inv.selection.Offline() {
		placeholder[core.ProvenanceKey] = false
		placeholder[core.PlaceholderKey] = true
		return placeholder
	}

	if err := inv.counter.Increment(); err != nil {
		return inv.degrade(placeholder, err)
	}

	start := time.Now()
	resp, err := inv.selection.Provider.Generate(ctx, req)
	if err != nil {
		inv.logger.Warn("provider call failed, degrading to placeholder",
			"provider", inv.selection.Name, "error", err, "duration", time.Since(start))
		inv.Context.EmitLog("warn", "provider call failed, returning placeholder output",
			map[string]any{"provider": inv.selection.Name, "error": err.Error()})
		return inv.degrade(placeholder, err)
	}

	return extract.Object(resp.Text, inv.selection.Name)
}

func (inv *Invocation) degrade(placeholder map[string]any, err error) map[string]any {
	placeholder[core.ProvenanceKey] = false
	placeholder[core.PlaceholderKey] = true
	placeholder[core.ProviderErrorKey] = err.Error()
	return placeholder
}
