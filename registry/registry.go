package registry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tutorwise/agentkit/agent"
	"github.com/tutorwise/agentkit/core"
	"github.com/tutorwise/agentkit/logging"
)

// Options configures a Registry instance using the functional options pattern.
type Options struct {
	// Logger provides structured logging for lifecycle diagnostics.
	// Defaults to NoOp logger if nil to ensure no logging dependencies.
	Logger logging.Logger
}

// Registry owns a fixed collection of agents and manages their lifecycle as
// a group. Membership is established at construction and never mutated:
// there is no dynamic registration or deregistration. After a successful
// Initialize the lookup map is safe for concurrent reads.
//
// The two group operations deliberately use different failure policies:
// Initialize is fail-fast (any agent failure fails the group, the registry
// stays uninitialized), Cleanup is best-effort (every agent gets its chance,
// failures are logged and never propagated). Preserve this asymmetry when
// extending the registry.
type Registry struct {
	agents map[string]agent.Executor
	order  []string
	logger logging.Logger

	mu          sync.Mutex
	initialized bool
}

// New constructs a Registry over the given executors. Every agent must have
// a distinct id; duplicates are a construction error.
func New(executors []agent.Executor, optFns ...func(o *Options)) (*Registry, error) {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	agents := make(map[string]agent.Executor, len(executors))
	order := make([]string, 0, len(executors))
	for _, e := range executors {
		id := e.ID()
		if _, exists := agents[id]; exists {
			return nil, fmt.Errorf("duplicate agent id %q", id)
		}
		agents[id] = e
		order = append(order, id)
	}

	return &Registry{
		agents: agents,
		order:  order,
		logger: opts.Logger,
	}, nil
}

// Initialize fans out to every agent's Initialize concurrently and
// fail-fast: if any agent fails, the group call fails with that error and
// the registry remains uninitialized (a later Initialize re-attempts every
// agent - there is no partial-completion memory). Calling Initialize on an
// already-initialized registry is a no-op.
func (r *Registry) Initialize(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		return nil
	}

	start := time.Now()

	var g errgroup.Group
	for _, id := range r.order {
		a := r.agents[id]
		g.Go(func() error {
			if err := a.Initialize(ctx); err != nil {
				return fmt.Errorf("agent %q: %w", a.ID(), err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		r.logger.Error("registry initialization failed", "error", err, "duration", time.Since(start))
		return err
	}

	r.initialized = true
	r.logger.Info("registry initialized", "agents", len(r.order), "duration", time.Since(start))

	return nil
}

// Initialized reports whether group initialization has completed.
func (r *Registry) Initialized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.initialized
}

// Cleanup fans out to every agent's Cleanup concurrently, best-effort:
// per-agent failures (including panics) are caught and logged, never
// aborting the others and never failing the group call. The registry is
// marked uninitialized afterwards regardless of per-agent outcomes.
func (r *Registry) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var wg sync.WaitGroup
	for _, id := range r.order {
		a := r.agents[id]
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					r.logger.Error("agent cleanup panicked", "agent_id", a.ID(), "panic", rec)
				}
			}()
			if err := a.Cleanup(ctx); err != nil {
				r.logger.Error("agent cleanup failed", "agent_id", a.ID(), "error", err)
			}
		}()
	}
	wg.Wait()

	r.initialized = false
	r.logger.Info("registry cleaned up", "agents", len(r.order))

	return nil
}

// Agent looks up an executor by id.
func (r *Registry) Agent(id string) (agent.Executor, bool) {
	a, ok := r.agents[id]
	return a, ok
}

// HasAgent reports whether an agent with the given id is registered.
func (r *Registry) HasAgent(id string) bool {
	_, ok := r.agents[id]
	return ok
}

// AgentIDs returns every registered agent id in registration order.
func (r *Registry) AgentIDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Agents returns every registered executor in registration order.
func (r *Registry) Agents() []agent.Executor {
	all := make([]agent.Executor, len(r.order))
	for i, id := range r.order {
		all[i] = r.agents[id]
	}
	return all
}

// AgentHealth reports one agent's health, or nil for an unknown id. Any
// panic from the agent's Health is caught and converted into a degraded
// record; this method never fails.
func (r *Registry) AgentHealth(ctx context.Context, id string) *core.Health {
	a, ok := r.agents[id]
	if !ok {
		return nil
	}
	h := safeHealth(ctx, a)
	return &h
}

// AllAgentsHealth reports health for every registered agent, keyed by id
// with no omissions: an agent whose health check fails contributes a
// degraded entry rather than removing itself from the map. Checks run
// sequentially - they are assumed cheap and local.
func (r *Registry) AllAgentsHealth(ctx context.Context) map[string]core.Health {
	result := make(map[string]core.Health, len(r.order))
	for _, id := range r.order {
		result[id] = safeHealth(ctx, r.agents[id])
	}
	return result
}

// safeHealth applies the per-agent catch-and-degrade policy.
func safeHealth(ctx context.Context, a agent.Executor) (h core.Health) {
	defer func() {
		if rec := recover(); rec != nil {
			h = core.Health{Healthy: false, Message: fmt.Sprintf("%v", rec)}
		}
	}()
	return a.Health(ctx)
}

// AgentInfo returns one agent's identity projection, or nil for an unknown id.
func (r *Registry) AgentInfo(id string) *core.AgentInfo {
	a, ok := r.agents[id]
	if !ok {
		return nil
	}
	info := a.Info()
	return &info
}

// AllAgentsInfo returns identity projections for every registered agent in
// registration order. Intended for discovery and UI surfaces; no side effects.
func (r *Registry) AllAgentsInfo() []core.AgentInfo {
	infos := make([]core.AgentInfo, len(r.order))
	for i, id := range r.order {
		infos[i] = r.agents[id].Info()
	}
	return infos
}
