package agents

import (
	"context"
	"fmt"

	"github.com/tutorwise/agentkit/agent"
	"github.com/tutorwise/agentkit/core"
	"github.com/tutorwise/agentkit/internal/util"
	"github.com/tutorwise/agentkit/provider"
)

const auditSystem = `You are a quality and compliance reviewer for a tutoring marketplace.
Always respond with a single JSON object and no surrounding commentary.`

const generateChecklistPrompt = `Create a quality checklist for reviewing a {{.subject_type}}.
Context: {{.context}}
Return a JSON object with "checklist" (array of objects with "item" and
"rationale") and "pass_threshold" (fraction of items that must pass).`

const reviewCompliancePrompt = `Review the following content for marketplace policy compliance.
Content: {{.content}}
Return a JSON object with "compliant" (boolean), "issues" (array of strings)
and "severity" (one of "none", "minor", "major").`

const summarizeRisksPrompt = `Summarize the risks in these review findings.
Findings: {{.findings}}
Return a JSON object with "summary", "top_risks" (array of strings) and
"recommended_actions" (array of strings).`

type complianceInput struct {
	Content string `json:"content" description:"Content to review against policy"`
}

// NewAuditAgent builds the quality and compliance agent.
func NewAuditAgent(optFns ...func(o *agent.Options)) *agent.BaseAgent {
	a := agent.NewBaseAgent("audit", "Audit Agent",
		"Builds review checklists, checks policy compliance and summarizes risk", optFns...)

	a.RegisterCapability(core.Capability{
		Name:        "generate_checklist",
		Description: "Create a quality checklist for a review target",
	}, generateChecklist)

	a.RegisterCapability(core.Capability{
		Name:        "review_compliance",
		Description: "Review content against marketplace policy",
		InputSchema: util.CreateSchema(complianceInput{}),
	}, reviewCompliance)

	a.RegisterCapability(core.Capability{
		Name:        "summarize_risks",
		Description: "Summarize risks and recommended actions from findings",
	}, summarizeRisks)

	return a
}

func generateChecklist(ctx context.Context, inv *agent.Invocation) (map[string]any, error) {
	if inv.Cancelled() {
		return nil, agent.ErrCancelled
	}

	subjectType := inv.String("subject_type", "tutor listing")
	reviewCtx := inv.String("context", "routine quality review")

	prompt, err := util.RenderTemplate(generateChecklistPrompt, map[string]any{
		"subject_type": subjectType, "context": reviewCtx,
	})
	if err != nil {
		return nil, err
	}

	placeholder := map[string]any{
		"checklist": []map[string]any{
			{"item": fmt.Sprintf("Verify the %s is complete", subjectType), "rationale": "Incomplete entries confuse students."},
			{"item": "Check pricing is stated clearly", "rationale": "Hidden pricing drives complaints."},
			{"item": "Confirm contact details are current", "rationale": "Stale contacts block bookings."},
		},
		"pass_threshold": 1.0,
	}

	return inv.Generate(ctx, provider.Request{
		System:      auditSystem,
		Prompt:      prompt,
		Temperature: 0.4,
		MaxTokens:   1536,
	}, placeholder), nil
}

func reviewCompliance(ctx context.Context, inv *agent.Invocation) (map[string]any, error) {
	if inv.Cancelled() {
		return nil, agent.ErrCancelled
	}

	content := inv.String("content", "")

	prompt, err := util.RenderTemplate(reviewCompliancePrompt, map[string]any{"content": content})
	if err != nil {
		return nil, err
	}

	// Offline we cannot judge content, so flag for manual review rather
	// than silently passing it.
	placeholder := map[string]any{
		"compliant": false,
		"issues":    []string{"automatic review unavailable, manual review required"},
		"severity":  "minor",
	}

	return inv.Generate(ctx, provider.Request{
		System:      auditSystem,
		Prompt:      prompt,
		Temperature: 0.1,
		MaxTokens:   1024,
	}, placeholder), nil
}

func summarizeRisks(ctx context.Context, inv *agent.Invocation) (map[string]any, error) {
	if inv.Cancelled() {
		return nil, agent.ErrCancelled
	}

	findings := inv.String("findings", "no findings supplied")

	prompt, err := util.RenderTemplate(summarizeRisksPrompt, map[string]any{"findings": findings})
	if err != nil {
		return nil, err
	}

	placeholder := map[string]any{
		"summary":             "Findings pending manual risk assessment.",
		"top_risks":           []string{},
		"recommended_actions": []string{"Schedule a manual review of the findings"},
	}

	return inv.Generate(ctx, provider.Request{
		System:      auditSystem,
		Prompt:      prompt,
		Temperature: 0.3,
		MaxTokens:   1024,
	}, placeholder), nil
}
