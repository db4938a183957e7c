package registry

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorwise/agentkit/agent"
	"github.com/tutorwise/agentkit/core"
)

// stubExecutor gives each lifecycle hook an overridable function field so
// tests can simulate failing or panicking agents without a provider.
type stubExecutor struct {
	id string

	initFn    func(ctx context.Context) error
	cleanupFn func(ctx context.Context) error
	healthFn  func(ctx context.Context) core.Health

	initCalls    atomic.Int32
	cleanupCalls atomic.Int32
}

var _ agent.Executor = (*stubExecutor)(nil)

func newStub(id string) *stubExecutor {
	return &stubExecutor{id: id}
}

func (s *stubExecutor) ID() string          { return s.id }
func (s *stubExecutor) Name() string        { return "Stub " + s.id }
func (s *stubExecutor) Description() string { return "stub agent " + s.id }

func (s *stubExecutor) Capabilities() []core.Capability {
	return []core.Capability{{Name: "noop", Description: "does nothing"}}
}

func (s *stubExecutor) Info() core.AgentInfo {
	return core.AgentInfo{ID: s.id, Name: s.Name(), Description: s.Description(), Capabilities: s.Capabilities()}
}

func (s *stubExecutor) Initialize(ctx context.Context) error {
	s.initCalls.Add(1)
	if s.initFn != nil {
		return s.initFn(ctx)
	}
	return nil
}

func (s *stubExecutor) Execute(_ context.Context, _ *core.ExecutionContext) *core.ExecutionResult {
	return core.NewSuccessResult(map[string]any{}, "noop", "none", 0)
}

func (s *stubExecutor) ValidateInput(string, map[string]any) bool { return true }

func (s *stubExecutor) Health(ctx context.Context) core.Health {
	if s.healthFn != nil {
		return s.healthFn(ctx)
	}
	return core.Health{Healthy: true, Message: "ok"}
}

func (s *stubExecutor) Cleanup(ctx context.Context) error {
	s.cleanupCalls.Add(1)
	if s.cleanupFn != nil {
		return s.cleanupFn(ctx)
	}
	return nil
}

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	_, err := New([]agent.Executor{newStub("a"), newStub("a")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"a"`)
}

func TestInitialize_RunsEveryAgentOnce(t *testing.T) {
	a, b := newStub("a"), newStub("b")
	r, err := New([]agent.Executor{a, b})
	require.NoError(t, err)

	require.NoError(t, r.Initialize(context.Background()))
	// Second call is a no-op: per-agent init must not run again.
	require.NoError(t, r.Initialize(context.Background()))

	assert.True(t, r.Initialized())
	assert.Equal(t, int32(1), a.initCalls.Load())
	assert.Equal(t, int32(1), b.initCalls.Load())
}

func TestInitialize_FailFastLeavesUninitialized(t *testing.T) {
	a := newStub("a")
	b := newStub("b")
	b.initFn = func(context.Context) error { return errors.New("no-credentials-fatal") }

	r, err := New([]agent.Executor{a, b})
	require.NoError(t, err)

	err = r.Initialize(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-credentials-fatal")
	assert.Contains(t, err.Error(), `"b"`)
	assert.False(t, r.Initialized())

	// A later Initialize re-attempts every agent, including the one that
	// succeeded the first time.
	b.initFn = nil
	require.NoError(t, r.Initialize(context.Background()))
	assert.True(t, r.Initialized())
	assert.Equal(t, int32(2), a.initCalls.Load())
	assert.Equal(t, int32(2), b.initCalls.Load())
}

func TestCleanup_NeverFails(t *testing.T) {
	a := newStub("a")
	a.cleanupFn = func(context.Context) error { return errors.New("release failed") }
	b := newStub("b")
	b.cleanupFn = func(context.Context) error { panic("cleanup panic") }

	r, err := New([]agent.Executor{a, b})
	require.NoError(t, err)
	require.NoError(t, r.Initialize(context.Background()))

	require.NoError(t, r.Cleanup(context.Background()))

	assert.False(t, r.Initialized())
	assert.Equal(t, int32(1), a.cleanupCalls.Load())
	assert.Equal(t, int32(1), b.cleanupCalls.Load())
}

func TestCleanup_SafeWithoutInitialize(t *testing.T) {
	r, err := New([]agent.Executor{newStub("a")})
	require.NoError(t, err)

	require.NoError(t, r.Cleanup(context.Background()))
	assert.False(t, r.Initialized())
}

func TestLookups(t *testing.T) {
	a, b := newStub("a"), newStub("b")
	r, err := New([]agent.Executor{a, b})
	require.NoError(t, err)

	got, ok := r.Agent("a")
	require.True(t, ok)
	assert.Same(t, a, got)

	_, ok = r.Agent("missing")
	assert.False(t, ok)

	assert.True(t, r.HasAgent("b"))
	assert.False(t, r.HasAgent("missing"))
	assert.Equal(t, []string{"a", "b"}, r.AgentIDs())
	assert.Equal(t, []agent.Executor{a, b}, r.Agents())
}

func TestAgentHealth_UnknownIsNil(t *testing.T) {
	r, err := New([]agent.Executor{newStub("a")})
	require.NoError(t, err)

	assert.Nil(t, r.AgentHealth(context.Background(), "missing"))

	h := r.AgentHealth(context.Background(), "a")
	require.NotNil(t, h)
	assert.True(t, h.Healthy)
}

func TestAllAgentsHealth_DegradesFailingAgentAndKeepsAllKeys(t *testing.T) {
	a := newStub("a")
	b := newStub("b")
	b.healthFn = func(context.Context) core.Health { panic("boom") }

	r, err := New([]agent.Executor{a, b})
	require.NoError(t, err)

	health := r.AllAgentsHealth(context.Background())

	require.Len(t, health, 2)
	assert.True(t, health["a"].Healthy)
	assert.False(t, health["b"].Healthy)
	assert.Equal(t, "boom", health["b"].Message)
}

func TestInfoProjections(t *testing.T) {
	a, b := newStub("a"), newStub("b")
	r, err := New([]agent.Executor{a, b})
	require.NoError(t, err)

	info := r.AgentInfo("a")
	require.NotNil(t, info)
	assert.Equal(t, "a", info.ID)
	assert.Nil(t, r.AgentInfo("missing"))

	all := r.AllAgentsInfo()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "b", all[1].ID)
	assert.Equal(t, []string{"noop"}, all[0].CapabilityNames())
}
