package agents

import (
	"context"

	"github.com/tutorwise/agentkit/agent"
	"github.com/tutorwise/agentkit/core"
	"github.com/tutorwise/agentkit/internal/util"
	"github.com/tutorwise/agentkit/provider"
)

const insightsSystem = `You are a data analyst for a tutoring marketplace.
Always respond with a single JSON object and no surrounding commentary.`

const summarizeMetricsPrompt = `Summarize these platform metrics for a non-technical reader.
Metrics: {{.metrics}}
Return a JSON object with "summary" and "highlights" (array of strings).`

const trendReportPrompt = `Write a trend report for the period {{.period}}.
Data: {{.data}}
Return a JSON object with "trends" (array of objects with "name",
"direction" and "comment") and "outlook".`

const annotateAnomaliesPrompt = `Annotate anomalies in this metric series.
Series: {{.series}}
Return a JSON object with "anomalies" (array of objects with "point",
"kind" and "explanation") and "confidence" (0-1).`

// NewInsightsAgent builds the analytics narration agent. Inputs carry
// pre-aggregated metric data as strings; the agent narrates, it does not
// query anything itself.
func NewInsightsAgent(optFns ...func(o *agent.Options)) *agent.BaseAgent {
	a := agent.NewBaseAgent("insights", "Insights Agent",
		"Narrates platform metrics, trends and anomalies for business reporting", optFns...)

	a.RegisterCapability(core.Capability{
		Name:        "summarize_metrics",
		Description: "Summarize platform metrics in plain language",
	}, summarizeMetrics)

	a.RegisterCapability(core.Capability{
		Name:        "trend_report",
		Description: "Write a trend report for a reporting period",
	}, trendReport)

	a.RegisterCapability(core.Capability{
		Name:        "annotate_anomalies",
		Description: "Explain anomalies in a metric series",
	}, annotateAnomalies)

	return a
}

func summarizeMetrics(ctx context.Context, inv *agent.Invocation) (map[string]any, error) {
	if inv.Cancelled() {
		return nil, agent.ErrCancelled
	}

	metrics := inv.String("metrics", "no metrics supplied")

	prompt, err := util.RenderTemplate(summarizeMetricsPrompt, map[string]any{"metrics": metrics})
	if err != nil {
		return nil, err
	}

	placeholder := map[string]any{
		"summary":    "Metric summary unavailable; raw figures attached below.",
		"highlights": []string{metrics},
	}

	return inv.Generate(ctx, provider.Request{
		System:      insightsSystem,
		Prompt:      prompt,
		Temperature: 0.4,
		MaxTokens:   1024,
	}, placeholder), nil
}

func trendReport(ctx context.Context, inv *agent.Invocation) (map[string]any, error) {
	if inv.Cancelled() {
		return nil, agent.ErrCancelled
	}

	prompt, err := util.RenderTemplate(trendReportPrompt, map[string]any{
		"period": inv.String("period", "the last 30 days"),
		"data":   inv.String("data", "no data supplied"),
	})
	if err != nil {
		return nil, err
	}

	placeholder := map[string]any{
		"trends":  []map[string]any{},
		"outlook": "Insufficient data for an automated outlook.",
	}

	return inv.Generate(ctx, provider.Request{
		System:      insightsSystem,
		Prompt:      prompt,
		Temperature: 0.5,
		MaxTokens:   2048,
	}, placeholder), nil
}

func annotateAnomalies(ctx context.Context, inv *agent.Invocation) (map[string]any, error) {
	if inv.Cancelled() {
		return nil, agent.ErrCancelled
	}

	prompt, err := util.RenderTemplate(annotateAnomaliesPrompt, map[string]any{
		"series": inv.String("series", "no series supplied"),
	})
	if err != nil {
		return nil, err
	}

	placeholder := map[string]any{
		"anomalies":  []map[string]any{},
		"confidence": 0.0,
	}

	return inv.Generate(ctx, provider.Request{
		System:      insightsSystem,
		Prompt:      prompt,
		Temperature: 0.3,
		MaxTokens:   1536,
	}, placeholder), nil
}
