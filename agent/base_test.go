package agent

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorwise/agentkit/core"
	"github.com/tutorwise/agentkit/provider"
)

// Interface compliance (compile-time assertion)
var _ Executor = (*BaseAgent)(nil)

// newTestAgent builds an agent with capabilities "x" and "y". When mock is
// nil the agent has no credentials and resolves to offline mode.
func newTestAgent(mock *provider.MockProvider) *BaseAgent {
	a := NewBaseAgent("test", "Test Agent", "Agent used in pipeline tests", func(o *Options) {
		if mock != nil {
			o.Selection = &provider.Selection{Provider: mock, Name: mock.Info().Name}
		}
	})

	handler := func(ctx context.Context, inv *Invocation) (map[string]any, error) {
		if inv.Cancelled() {
			return nil, ErrCancelled
		}
		placeholder := map[string]any{"topic": inv.String("topic", "unspecified")}
		return inv.Generate(ctx, provider.Request{Prompt: inv.String("topic", "unspecified")}, placeholder), nil
	}

	a.RegisterCapability(core.Capability{Name: "x", Description: "capability x"}, handler)
	a.RegisterCapability(core.Capability{Name: "y", Description: "capability y"}, handler)

	return a
}

func TestExecute_MissingActionIsErrorAndProviderUntouched(t *testing.T) {
	mock := provider.NewMockProvider("mock")
	a := newTestAgent(mock)
	require.NoError(t, a.Initialize(context.Background()))

	res := a.Execute(context.Background(), core.NewExecutionContext("test", map[string]any{}))

	assert.Equal(t, core.StatusError, res.Status)
	assert.Contains(t, res.Error, core.ActionKey)
	assert.Equal(t, 0, mock.Calls())
}

func TestExecute_UnknownActionNamesValue(t *testing.T) {
	mock := provider.NewMockProvider("mock")
	a := newTestAgent(mock)
	require.NoError(t, a.Initialize(context.Background()))

	res := a.Execute(context.Background(), core.NewExecutionContext("test", map[string]any{"action": "z"}))

	assert.Equal(t, core.StatusError, res.Status)
	assert.Contains(t, res.Error, `"z"`)
	assert.Equal(t, 0, mock.Calls())
}

func TestExecute_OfflinePlaceholderSuccess(t *testing.T) {
	a := newTestAgent(nil) // no credentials: offline mode
	require.NoError(t, a.Initialize(context.Background()))

	res := a.Execute(context.Background(), core.NewExecutionContext("test", map[string]any{
		"action": "x",
		"topic":  "fractions",
	}))

	require.Equal(t, core.StatusSuccess, res.Status)
	assert.False(t, res.Provenance())
	assert.Equal(t, true, res.Output[core.PlaceholderKey])
	assert.Equal(t, "fractions", res.Output["topic"])
	assert.Equal(t, provider.NameNone, res.Metadata[core.MetaProvider])
	assert.Equal(t, 0, res.Metadata[core.MetaProviderCalls])
}

func TestExecute_ProviderSuccessExtractsObject(t *testing.T) {
	mock := provider.NewMockProvider("mock")
	mock.AddResponse("fractions", `Here you go: {"summary": "fractions are parts of a whole"}`)
	a := newTestAgent(mock)
	require.NoError(t, a.Initialize(context.Background()))

	res := a.Execute(context.Background(), core.NewExecutionContext("test", map[string]any{
		"action": "x",
		"topic":  "fractions",
	}))

	require.Equal(t, core.StatusSuccess, res.Status)
	assert.True(t, res.Provenance())
	assert.Equal(t, "fractions are parts of a whole", res.Output["summary"])
	assert.Equal(t, "mock", res.Metadata[core.MetaProvider])
	assert.Equal(t, 1, res.Metadata[core.MetaProviderCalls])
}

// Provider failure is deliberately non-fatal: the handler degrades to
// placeholder output and the overall call still reports StatusSuccess.
// Preserved framework policy - do not "fix" this into an error status.
func TestExecute_ProviderFailureStaysSuccess(t *testing.T) {
	mock := provider.NewMockProvider("mock")
	mock.FailWith(errors.New("quota exceeded"))
	a := newTestAgent(mock)
	require.NoError(t, a.Initialize(context.Background()))

	res := a.Execute(context.Background(), core.NewExecutionContext("test", map[string]any{
		"action": "y",
		"topic":  "algebra",
	}))

	require.Equal(t, core.StatusSuccess, res.Status)
	assert.False(t, res.Provenance())
	assert.Equal(t, true, res.Output[core.PlaceholderKey])
	assert.Contains(t, res.Output[core.ProviderErrorKey], "quota exceeded")
	assert.Equal(t, "algebra", res.Output["topic"])
}

func TestExecute_UnparseableProviderTextFallsBackBounded(t *testing.T) {
	mock := provider.NewMockProvider("mock")
	mock.AddResponse("fractions", "no structure in this answer at all")
	a := newTestAgent(mock)
	require.NoError(t, a.Initialize(context.Background()))

	res := a.Execute(context.Background(), core.NewExecutionContext("test", map[string]any{
		"action": "x",
		"topic":  "fractions",
	}))

	require.Equal(t, core.StatusSuccess, res.Status)
	assert.False(t, res.Provenance())
	assert.Equal(t, "no structure in this answer at all", res.Output[core.RawKey])
}

func TestExecute_CancelledBeforeHandler(t *testing.T) {
	mock := provider.NewMockProvider("mock")
	a := newTestAgent(mock)
	require.NoError(t, a.Initialize(context.Background()))

	ec := core.NewExecutionContext("test", map[string]any{"action": "x"})
	ec.IsCancelled = func() bool { return true }

	res := a.Execute(context.Background(), ec)

	assert.Equal(t, core.StatusCancelled, res.Status)
	assert.Equal(t, 0, mock.Calls())
}

func TestExecute_ProgressEmittedAroundHandler(t *testing.T) {
	a := newTestAgent(nil)
	require.NoError(t, a.Initialize(context.Background()))

	var fractions []float64
	ec := core.NewExecutionContext("test", map[string]any{"action": "x"})
	ec.OnProgress = func(f float64, _ string) { fractions = append(fractions, f) }

	res := a.Execute(context.Background(), ec)

	require.Equal(t, core.StatusSuccess, res.Status)
	require.NotEmpty(t, fractions)
	assert.Equal(t, 0.1, fractions[0])
	assert.Equal(t, 1.0, fractions[len(fractions)-1])
}

func TestExecute_NoProgressOnMissingAction(t *testing.T) {
	a := newTestAgent(nil)
	require.NoError(t, a.Initialize(context.Background()))

	emitted := 0
	ec := core.NewExecutionContext("test", map[string]any{})
	ec.OnProgress = func(float64, string) { emitted++ }

	a.Execute(context.Background(), ec)

	assert.Zero(t, emitted)
}

func TestExecute_HandlerErrorIsStatusError(t *testing.T) {
	a := NewBaseAgent("broken", "Broken", "always fails")
	a.RegisterCapability(core.Capability{Name: "boom"}, func(context.Context, *Invocation) (map[string]any, error) {
		return nil, fmt.Errorf("handler exploded")
	})
	require.NoError(t, a.Initialize(context.Background()))

	res := a.Execute(context.Background(), core.NewExecutionContext("broken", map[string]any{"action": "boom"}))

	assert.Equal(t, core.StatusError, res.Status)
	assert.Contains(t, res.Error, "handler exploded")
}

func TestInitialize_IdempotentAndNeverFailsOffline(t *testing.T) {
	a := newTestAgent(nil)

	require.NoError(t, a.Initialize(context.Background()))
	require.NoError(t, a.Initialize(context.Background()))

	h := a.Health(context.Background())
	assert.True(t, h.Healthy)
	assert.Contains(t, h.Message, "degraded")
}

func TestHealth_ReflectsSelectionState(t *testing.T) {
	mock := provider.NewMockProvider("mock")
	a := newTestAgent(mock)

	// Before initialize.
	h := a.Health(context.Background())
	assert.False(t, h.Healthy)
	assert.Contains(t, h.Message, "not initialized")

	require.NoError(t, a.Initialize(context.Background()))
	h = a.Health(context.Background())
	assert.True(t, h.Healthy)
	assert.Contains(t, h.Message, "mock")
}

func TestCleanup_SafeAndResetsSelection(t *testing.T) {
	a := newTestAgent(nil)

	// Cleanup before initialize is safe.
	require.NoError(t, a.Cleanup(context.Background()))

	require.NoError(t, a.Initialize(context.Background()))
	require.NoError(t, a.Cleanup(context.Background()))
	require.NoError(t, a.Cleanup(context.Background()))

	h := a.Health(context.Background())
	assert.False(t, h.Healthy)
}

func TestValidateInput_BaselineAlwaysTrue(t *testing.T) {
	a := newTestAgent(nil)

	assert.True(t, a.ValidateInput("x", map[string]any{"anything": 1}))
	assert.True(t, a.ValidateInput("not-even-a-capability", nil))
}

func TestValidateInput_CustomHookConsulted(t *testing.T) {
	a := NewBaseAgent("strict", "Strict", "custom validator", func(o *Options) {
		o.InputValidator = func(capability string, input map[string]any) bool {
			_, ok := input["topic"]
			return ok
		}
	})
	a.RegisterCapability(core.Capability{Name: "x"}, func(_ context.Context, inv *Invocation) (map[string]any, error) {
		return map[string]any{core.ProvenanceKey: false}, nil
	})
	require.NoError(t, a.Initialize(context.Background()))

	res := a.Execute(context.Background(), core.NewExecutionContext("strict", map[string]any{"action": "x"}))
	assert.Equal(t, core.StatusError, res.Status)

	res = a.Execute(context.Background(), core.NewExecutionContext("strict", map[string]any{"action": "x", "topic": "t"}))
	assert.Equal(t, core.StatusSuccess, res.Status)
}

func TestInfo_Projection(t *testing.T) {
	a := newTestAgent(nil)

	info := a.Info()

	assert.Equal(t, "test", info.ID)
	assert.Equal(t, "Test Agent", info.Name)
	assert.Equal(t, []string{"x", "y"}, info.CapabilityNames())
}

func TestExecute_UninitializedAgentRunsOffline(t *testing.T) {
	// Executing before Initialize is tolerated: the agent behaves as if
	// offline rather than failing.
	a := newTestAgent(nil)

	res := a.Execute(context.Background(), core.NewExecutionContext("test", map[string]any{"action": "x"}))

	require.Equal(t, core.StatusSuccess, res.Status)
	assert.Equal(t, provider.NameNone, res.Metadata[core.MetaProvider])
}
