package agents

import (
	"context"
	"fmt"

	"github.com/tutorwise/agentkit/agent"
	"github.com/tutorwise/agentkit/core"
	"github.com/tutorwise/agentkit/internal/util"
	"github.com/tutorwise/agentkit/provider"
)

const plannerSystem = `You are a study planner for a tutoring marketplace.
Always respond with a single JSON object and no surrounding commentary.`

const studyPlanPrompt = `Build a {{.weeks}}-week study plan for "{{.goal}}" at {{.level}} level,
with {{.hours_per_week}} hours per week available.
Return a JSON object with "weeks" (array of objects with "week", "focus"
and "activities") and "goal".`

const sessionAgendaPrompt = `Draft an agenda for a {{.duration_minutes}}-minute tutoring session on
"{{.topic}}". Previous session covered: {{.previous}}.
Return a JSON object with "agenda" (ordered array of objects with "minutes"
and "activity") and "materials" (array of strings).`

const milestoneReviewPrompt = `Review progress against this study plan milestone.
Milestone: {{.milestone}}
Progress notes: {{.notes}}
Return a JSON object with "on_track" (boolean), "assessment" and
"adjustments" (array of strings).`

type studyPlanInput struct {
	Goal         string `json:"goal" description:"What the student wants to achieve"`
	Level        string `json:"level,omitempty"`
	Weeks        int    `json:"weeks,omitempty" description:"Plan length, default 4"`
	HoursPerWeek int    `json:"hours_per_week,omitempty" description:"Weekly study time, default 3"`
}

// NewPlannerAgent builds the study planning agent.
func NewPlannerAgent(optFns ...func(o *agent.Options)) *agent.BaseAgent {
	a := agent.NewBaseAgent("planner", "Planner Agent",
		"Builds study plans, session agendas and milestone reviews", optFns...)

	a.RegisterCapability(core.Capability{
		Name:        "study_plan",
		Description: "Build a multi-week study plan towards a goal",
		InputSchema: util.CreateSchema(studyPlanInput{}),
	}, studyPlan)

	a.RegisterCapability(core.Capability{
		Name:        "session_agenda",
		Description: "Draft an agenda for a single tutoring session",
	}, sessionAgenda)

	a.RegisterCapability(core.Capability{
		Name:        "milestone_review",
		Description: "Review progress against a plan milestone",
	}, milestoneReview)

	return a
}

func studyPlan(ctx context.Context, inv *agent.Invocation) (map[string]any, error) {
	if inv.Cancelled() {
		return nil, agent.ErrCancelled
	}

	goal := inv.String("goal", "general improvement")
	level := inv.String("level", "intermediate")
	weeks := intField(inv.Input, "weeks", 4)
	hours := intField(inv.Input, "hours_per_week", 3)

	prompt, err := util.RenderTemplate(studyPlanPrompt, map[string]any{
		"goal": goal, "level": level, "weeks": weeks, "hours_per_week": hours,
	})
	if err != nil {
		return nil, err
	}

	planned := make([]map[string]any, 0, weeks)
	for w := 1; w <= weeks; w++ {
		planned = append(planned, map[string]any{
			"week":       w,
			"focus":      fmt.Sprintf("Week %d towards %s", w, goal),
			"activities": []string{fmt.Sprintf("%d hours of guided practice", hours)},
		})
	}

	return inv.Generate(ctx, provider.Request{
		System:      plannerSystem,
		Prompt:      prompt,
		Temperature: 0.5,
		MaxTokens:   2048,
	}, map[string]any{"goal": goal, "weeks": planned}), nil
}

func sessionAgenda(ctx context.Context, inv *agent.Invocation) (map[string]any, error) {
	if inv.Cancelled() {
		return nil, agent.ErrCancelled
	}

	topic := inv.String("topic", "review and practice")
	duration := intField(inv.Input, "duration_minutes", 60)

	prompt, err := util.RenderTemplate(sessionAgendaPrompt, map[string]any{
		"topic":            topic,
		"duration_minutes": duration,
		"previous":         inv.String("previous", "first session"),
	})
	if err != nil {
		return nil, err
	}

	placeholder := map[string]any{
		"agenda": []map[string]any{
			{"minutes": 10, "activity": "Recap and questions"},
			{"minutes": duration - 20, "activity": "Work through " + topic},
			{"minutes": 10, "activity": "Summary and homework"},
		},
		"materials": []string{"notebook", "practice sheet"},
	}

	return inv.Generate(ctx, provider.Request{
		System:      plannerSystem,
		Prompt:      prompt,
		Temperature: 0.5,
		MaxTokens:   1024,
	}, placeholder), nil
}

func milestoneReview(ctx context.Context, inv *agent.Invocation) (map[string]any, error) {
	if inv.Cancelled() {
		return nil, agent.ErrCancelled
	}

	prompt, err := util.RenderTemplate(milestoneReviewPrompt, map[string]any{
		"milestone": inv.String("milestone", "(unspecified milestone)"),
		"notes":     inv.String("notes", "no notes supplied"),
	})
	if err != nil {
		return nil, err
	}

	placeholder := map[string]any{
		"on_track":    true,
		"assessment":  "Automatic review unavailable; discuss progress in the next session.",
		"adjustments": []string{},
	}

	return inv.Generate(ctx, provider.Request{
		System:      plannerSystem,
		Prompt:      prompt,
		Temperature: 0.4,
		MaxTokens:   1024,
	}, placeholder), nil
}
