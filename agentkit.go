// Package agentkit provides a high-level façade over the agent registry and
// the shared execution pipeline, enabling rapid construction of task agents
// for the tutoring marketplace. Most applications interact with this package
// by:
//  1. Creating an AgentKit via New() (optionally overriding credentials,
//     logger or the agent set)
//  2. Initializing the group once at startup
//  3. Executing capabilities by agent id and reading health as needed
//
// The façade delegates group lifecycle to registry.Registry while keeping
// setup and usage ergonomics concise. Defaults load credentials from the
// environment (including a .env file when present) and register the standard
// agent set; no configured provider is a valid state in which every agent
// serves deterministic placeholder output.
package agentkit

import (
	"context"
	"fmt"

	"github.com/tutorwise/agentkit/agent"
	"github.com/tutorwise/agentkit/agents"
	"github.com/tutorwise/agentkit/config"
	"github.com/tutorwise/agentkit/core"
	"github.com/tutorwise/agentkit/logging"
	"github.com/tutorwise/agentkit/registry"
)

// Options configures the AgentKit instance.
type Options struct {
	// Config supplies provider credentials. When nil, credentials are read
	// from the environment (a .env file is honoured when present).
	Config *config.Config

	// Agents overrides the default agent set.
	Agents []agent.Executor

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// AgentKit is the high-level façade aggregating the agent registry and its
// configuration.
type AgentKit struct {
	opts     Options
	registry *registry.Registry
}

// New creates a new AgentKit instance with optional overrides.
func New(optFns ...func(o *Options)) (*AgentKit, error) {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Config == nil {
		_ = config.LoadDotEnv() // missing .env is fine

		cfg := config.FromEnv()
		opts.Config = &cfg
	}

	if opts.Agents == nil {
		opts.Agents = agents.Default(opts.Config.Credentials(), opts.Logger)
	}

	reg, err := registry.New(opts.Agents, func(o *registry.Options) {
		o.Logger = opts.Logger
	})
	if err != nil {
		return nil, err
	}

	return &AgentKit{opts: opts, registry: reg}, nil
}

// Registry exposes the underlying registry for direct lookup and discovery.
func (k *AgentKit) Registry() *registry.Registry { return k.registry }

// Initialize prepares every registered agent. See registry.Registry.Initialize
// for the group failure semantics.
func (k *AgentKit) Initialize(ctx context.Context) error {
	return k.registry.Initialize(ctx)
}

// ExecuteOption customizes a single Execute call.
type ExecuteOption func(execCtx *core.ExecutionContext)

// WithProgress attaches a progress sink to the call.
func WithProgress(fn core.ProgressFunc) ExecuteOption {
	return func(execCtx *core.ExecutionContext) { execCtx.OnProgress = fn }
}

// WithLogSink attaches a log-event sink to the call.
func WithLogSink(fn core.LogFunc) ExecuteOption {
	return func(execCtx *core.ExecutionContext) { execCtx.OnLog = fn }
}

// WithCancel attaches a cooperative cancellation predicate to the call.
func WithCancel(fn core.CancelFunc) ExecuteOption {
	return func(execCtx *core.ExecutionContext) { execCtx.IsCancelled = fn }
}

// WithTaskID overrides the generated task id, e.g. to correlate with an
// external job system.
func WithTaskID(taskID string) ExecuteOption {
	return func(execCtx *core.ExecutionContext) { execCtx.TaskID = taskID }
}

// Execute runs one capability on the named agent. The input must carry the
// action discriminator field naming the capability.
func (k *AgentKit) Execute(ctx context.Context, agentID string, input map[string]any, opts ...ExecuteOption) (*core.ExecutionResult, error) {
	a, ok := k.registry.Agent(agentID)
	if !ok {
		return nil, fmt.Errorf("unknown agent %q", agentID)
	}

	execCtx := core.NewExecutionContext(agentID, input)
	for _, opt := range opts {
		opt(execCtx)
	}

	return a.Execute(ctx, execCtx), nil
}

// Health reports health for every registered agent, keyed by agent id.
func (k *AgentKit) Health(ctx context.Context) map[string]core.Health {
	return k.registry.AllAgentsHealth(ctx)
}

// Cleanup releases every agent's resources. Never fails; per-agent errors
// are logged.
func (k *AgentKit) Cleanup(ctx context.Context) error {
	return k.registry.Cleanup(ctx)
}
