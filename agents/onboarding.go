package agents

import (
	"context"
	"fmt"

	"github.com/tutorwise/agentkit/agent"
	"github.com/tutorwise/agentkit/core"
	"github.com/tutorwise/agentkit/internal/util"
	"github.com/tutorwise/agentkit/provider"
)

const onboardingSystem = `You help new tutors and students get started on a tutoring marketplace.
Always respond with a single JSON object and no surrounding commentary.`

const welcomeMessagePrompt = `Write a warm welcome message for {{.name}}, who just joined as a {{.role}}.
Return a JSON object with "message" and "subject" (an email subject line).`

const profileSuggestionsPrompt = `Suggest improvements for this {{.role}} profile.
Profile: {{.profile}}
Return a JSON object with "suggestions" (array of objects with "field" and
"suggestion") and "completeness" (0-1).`

const nextStepsPrompt = `List the next onboarding steps for {{.name}}, a {{.role}} who has
completed: {{.completed}}.
Return a JSON object with "steps" (ordered array of objects with "step" and
"why") and "estimated_minutes".`

type onboardingInput struct {
	Name string `json:"name,omitempty" description:"New member's display name"`
	Role string `json:"role,omitempty" description:"Either tutor or student"`
}

// NewOnboardingAgent builds the member onboarding agent.
func NewOnboardingAgent(optFns ...func(o *agent.Options)) *agent.BaseAgent {
	a := agent.NewBaseAgent("onboarding", "Onboarding Agent",
		"Welcomes new members, improves profiles and lays out onboarding steps", optFns...)

	a.RegisterCapability(core.Capability{
		Name:        "welcome_message",
		Description: "Write a personalised welcome message",
		InputSchema: util.CreateSchema(onboardingInput{}),
	}, welcomeMessage)

	a.RegisterCapability(core.Capability{
		Name:        "profile_suggestions",
		Description: "Suggest profile improvements for a new member",
	}, profileSuggestions)

	a.RegisterCapability(core.Capability{
		Name:        "next_steps",
		Description: "Lay out the remaining onboarding steps",
		InputSchema: util.CreateSchema(onboardingInput{}),
	}, nextSteps)

	return a
}

func welcomeMessage(ctx context.Context, inv *agent.Invocation) (map[string]any, error) {
	if inv.Cancelled() {
		return nil, agent.ErrCancelled
	}

	name := inv.String("name", "there")
	role := inv.String("role", "member")

	prompt, err := util.RenderTemplate(welcomeMessagePrompt, map[string]any{"name": name, "role": role})
	if err != nil {
		return nil, err
	}

	placeholder := map[string]any{
		"subject": "Welcome to Tutorwise!",
		"message": fmt.Sprintf("Hi %s, welcome aboard! We're glad to have you joining as a %s.", name, role),
	}

	return inv.Generate(ctx, provider.Request{
		System:      onboardingSystem,
		Prompt:      prompt,
		Temperature: 0.8,
		MaxTokens:   512,
	}, placeholder), nil
}

func profileSuggestions(ctx context.Context, inv *agent.Invocation) (map[string]any, error) {
	if inv.Cancelled() {
		return nil, agent.ErrCancelled
	}

	prompt, err := util.RenderTemplate(profileSuggestionsPrompt, map[string]any{
		"role":    inv.String("role", "member"),
		"profile": inv.String("profile", "(empty profile)"),
	})
	if err != nil {
		return nil, err
	}

	placeholder := map[string]any{
		"suggestions": []map[string]any{
			{"field": "photo", "suggestion": "Add a clear, friendly profile photo."},
			{"field": "bio", "suggestion": "Describe your experience and teaching style."},
		},
		"completeness": 0.5,
	}

	return inv.Generate(ctx, provider.Request{
		System:      onboardingSystem,
		Prompt:      prompt,
		Temperature: 0.5,
		MaxTokens:   1024,
	}, placeholder), nil
}

func nextSteps(ctx context.Context, inv *agent.Invocation) (map[string]any, error) {
	if inv.Cancelled() {
		return nil, agent.ErrCancelled
	}

	name := inv.String("name", "there")
	role := inv.String("role", "member")

	prompt, err := util.RenderTemplate(nextStepsPrompt, map[string]any{
		"name":      name,
		"role":      role,
		"completed": inv.String("completed", "account creation"),
	})
	if err != nil {
		return nil, err
	}

	placeholder := map[string]any{
		"steps": []map[string]any{
			{"step": "Complete your profile", "why": "Complete profiles get more bookings."},
			{"step": "Set your availability", "why": "Students can only book open slots."},
		},
		"estimated_minutes": 15,
	}

	return inv.Generate(ctx, provider.Request{
		System:      onboardingSystem,
		Prompt:      prompt,
		Temperature: 0.5,
		MaxTokens:   1024,
	}, placeholder), nil
}
