package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorwise/agentkit/agent"
	"github.com/tutorwise/agentkit/core"
	"github.com/tutorwise/agentkit/internal/testutil"
	"github.com/tutorwise/agentkit/logging"
	"github.com/tutorwise/agentkit/provider"
)

// run executes one capability on a freshly initialized agent.
func run(t *testing.T, a *agent.BaseAgent, input map[string]any) *core.ExecutionResult {
	t.Helper()
	require.NoError(t, a.Initialize(context.Background()))
	return a.Execute(context.Background(), core.NewExecutionContext(a.ID(), input))
}

func withMock(mock *provider.MockProvider) func(o *agent.Options) {
	return func(o *agent.Options) {
		o.Selection = &provider.Selection{Provider: mock, Name: mock.Info().Name}
	}
}

func TestDefault_ReturnsEightUniqueAgents(t *testing.T) {
	all := Default(provider.Credentials{}, logging.NoOpLogger{})

	require.Len(t, all, 8)

	seen := map[string]bool{}
	for _, a := range all {
		assert.False(t, seen[a.ID()], "duplicate id %s", a.ID())
		seen[a.ID()] = true
		assert.NotEmpty(t, a.Name())
		assert.NotEmpty(t, a.Capabilities())
	}
	for _, id := range []string{"lesson", "assessment", "listing", "audit", "support", "insights", "onboarding", "planner"} {
		assert.True(t, seen[id], "missing agent %s", id)
	}
}

func TestLessonAgent_GenerateLessonOffline(t *testing.T) {
	res := run(t, NewLessonAgent(), map[string]any{
		"action": "generate_lesson",
		"topic":  "fractions",
		"level":  "beginner",
	})

	require.Equal(t, core.StatusSuccess, res.Status)
	assert.False(t, res.Provenance())
	assert.Equal(t, "Introduction to fractions", res.Output["title"])
	assert.Equal(t, "generate_lesson", res.Metadata[core.MetaCapability])
}

func TestLessonAgent_GenerateExamplesCountsFromInput(t *testing.T) {
	res := run(t, NewLessonAgent(), map[string]any{
		"action": "generate_examples",
		"topic":  "algebra",
		"count":  float64(2), // JSON-decoded numbers arrive as float64
	})

	require.Equal(t, core.StatusSuccess, res.Status)
	examples := res.Output["examples"].([]map[string]any)
	assert.Len(t, examples, 2)
}

func TestLessonAgent_ProviderOutputWins(t *testing.T) {
	mock := provider.NewMockProvider("mock")
	mock.RespondWith(`{"summary": "short and sweet", "key_points": ["one"]}`)

	res := run(t, NewLessonAgent(withMock(mock)), map[string]any{
		"action": "summarize_topic",
		"topic":  "fractions",
	})

	require.Equal(t, core.StatusSuccess, res.Status)
	assert.True(t, res.Provenance())
	assert.Equal(t, "short and sweet", res.Output["summary"])
	assert.Equal(t, 1, mock.Calls())
}

func TestAssessmentAgent_GradeAnswerOfflineFlagsManualReview(t *testing.T) {
	res := run(t, NewAssessmentAgent(), map[string]any{
		"action":   "grade_answer",
		"question": "What is 2+2?",
		"answer":   "5",
	})

	require.Equal(t, core.StatusSuccess, res.Status)
	assert.False(t, res.Provenance())
	assert.Equal(t, false, res.Output["correct"])
}

func TestListingAgent_WriteBioUsesInputFields(t *testing.T) {
	res := run(t, NewListingAgent(), map[string]any{
		"action":   "write_bio",
		"name":     "Ada",
		"subjects": "maths",
	})

	require.Equal(t, core.StatusSuccess, res.Status)
	assert.Contains(t, res.Output["headline"], "Ada")
	assert.Contains(t, res.Output["headline"], "maths")
}

func TestAuditAgent_ComplianceOfflineNeverPasses(t *testing.T) {
	// Without a provider the agent must not silently approve content.
	res := run(t, NewAuditAgent(), map[string]any{
		"action":  "review_compliance",
		"content": "Cheap lessons! Pay outside the platform!",
	})

	require.Equal(t, core.StatusSuccess, res.Status)
	assert.Equal(t, false, res.Output["compliant"])
}

func TestSupportAgent_ClassifyTicketOfflineRoutesToHuman(t *testing.T) {
	res := run(t, NewSupportAgent(), map[string]any{
		"action":  "classify_ticket",
		"subject": "Refund please",
		"message": "I was double charged.",
	})

	require.Equal(t, core.StatusSuccess, res.Status)
	assert.Equal(t, true, res.Output["needs_human"])
}

func TestInsightsAgent_SummarizeMetricsWithProvider(t *testing.T) {
	mock := provider.NewMockProvider("mock")
	mock.RespondWith(`Here is the summary: {"summary": "bookings up", "highlights": ["+12% bookings"]}`)

	res := run(t, NewInsightsAgent(withMock(mock)), map[string]any{
		"action":  "summarize_metrics",
		"metrics": "bookings: 1200 (+12%)",
	})

	require.Equal(t, core.StatusSuccess, res.Status)
	assert.True(t, res.Provenance())
	assert.Equal(t, "bookings up", res.Output["summary"])
}

func TestOnboardingAgent_WelcomeMessagePersonalised(t *testing.T) {
	res := run(t, NewOnboardingAgent(), map[string]any{
		"action": "welcome_message",
		"name":   "Grace",
		"role":   "tutor",
	})

	require.Equal(t, core.StatusSuccess, res.Status)
	assert.Contains(t, res.Output["message"], "Grace")
	assert.Contains(t, res.Output["message"], "tutor")
}

func TestPlannerAgent_StudyPlanHonoursWeeks(t *testing.T) {
	res := run(t, NewPlannerAgent(), map[string]any{
		"action": "study_plan",
		"goal":   "pass GCSE maths",
		"weeks":  6,
	})

	require.Equal(t, core.StatusSuccess, res.Status)
	weeks := res.Output["weeks"].([]map[string]any)
	assert.Len(t, weeks, 6)
	assert.Equal(t, "pass GCSE maths", res.Output["goal"])
}

func TestPlannerAgent_CancelledBeforeProvider(t *testing.T) {
	mock := provider.NewMockProvider("mock")
	a := NewPlannerAgent(withMock(mock))
	require.NoError(t, a.Initialize(context.Background()))

	ec := core.NewExecutionContext("planner", map[string]any{"action": "study_plan"})
	ec.IsCancelled = func() bool { return true }

	res := a.Execute(context.Background(), ec)

	assert.Equal(t, core.StatusCancelled, res.Status)
	assert.Equal(t, 0, mock.Calls())
}

func TestLessonAgent_EmitsProgressEvents(t *testing.T) {
	a := NewLessonAgent()
	require.NoError(t, a.Initialize(context.Background()))

	rec := &testutil.EventRecorder{}
	ec := testutil.NewContextBuilder("lesson").
		Action("generate_lesson").
		Field("topic", "fractions").
		Record(rec).
		Build()

	res := a.Execute(context.Background(), ec)

	require.Equal(t, core.StatusSuccess, res.Status)
	progress := rec.Progress()
	require.NotEmpty(t, progress)
	assert.Equal(t, 0.1, progress[0].Fraction)
	assert.Equal(t, 1.0, progress[len(progress)-1].Fraction)
}

func TestAgents_UnknownActionRejected(t *testing.T) {
	res := run(t, NewSupportAgent(), map[string]any{"action": "escalate"})

	assert.Equal(t, core.StatusError, res.Status)
	assert.Contains(t, res.Error, `"escalate"`)
}
