package agents

import (
	"context"
	"fmt"

	"github.com/tutorwise/agentkit/agent"
	"github.com/tutorwise/agentkit/core"
	"github.com/tutorwise/agentkit/internal/util"
	"github.com/tutorwise/agentkit/provider"
)

const listingSystem = `You are a marketing copywriter for a tutoring marketplace.
Always respond with a single JSON object and no surrounding commentary.`

const writeBioPrompt = `Write a professional tutor bio.
Name: {{.name}}
Subjects: {{.subjects}}
Experience: {{.experience}}
Return a JSON object with "bio" (2-3 paragraphs) and "headline" (one line).`

const writeListingPrompt = `Write a marketplace listing for a tutoring service.
Subject: {{.subject}}
Price: {{.price}}
Audience: {{.audience}}
Return a JSON object with "title", "description" and "highlights" (array of strings).`

const suggestKeywordsPrompt = `Suggest search keywords for a tutoring listing about "{{.subject}}"
aimed at {{.audience}}. Return a JSON object with a "keywords" array of 8-12
strings ordered by relevance.`

type bioInput struct {
	Name       string `json:"name" description:"Tutor's display name"`
	Subjects   string `json:"subjects,omitempty" description:"Comma-separated subjects taught"`
	Experience string `json:"experience,omitempty"`
}

type listingInput struct {
	Subject  string `json:"subject" description:"Subject the listing advertises"`
	Price    string `json:"price,omitempty"`
	Audience string `json:"audience,omitempty"`
}

// NewListingAgent builds the marketplace copywriting agent.
func NewListingAgent(optFns ...func(o *agent.Options)) *agent.BaseAgent {
	a := agent.NewBaseAgent("listing", "Listing Agent",
		"Writes tutor bios, marketplace listings and search keywords", optFns...)

	a.RegisterCapability(core.Capability{
		Name:        "write_bio",
		Description: "Write a professional tutor bio and headline",
		InputSchema: util.CreateSchema(bioInput{}),
	}, writeBio)

	a.RegisterCapability(core.Capability{
		Name:        "write_listing",
		Description: "Write a marketplace listing for a tutoring service",
		InputSchema: util.CreateSchema(listingInput{}),
	}, writeListing)

	a.RegisterCapability(core.Capability{
		Name:        "suggest_keywords",
		Description: "Suggest search keywords for a listing",
		InputSchema: util.CreateSchema(listingInput{}),
	}, suggestKeywords)

	return a
}

func writeBio(ctx context.Context, inv *agent.Invocation) (map[string]any, error) {
	if inv.Cancelled() {
		return nil, agent.ErrCancelled
	}

	name := inv.String("name", "This tutor")
	subjects := inv.String("subjects", "a range of subjects")
	experience := inv.String("experience", "several years of tutoring")

	prompt, err := util.RenderTemplate(writeBioPrompt, map[string]any{
		"name": name, "subjects": subjects, "experience": experience,
	})
	if err != nil {
		return nil, err
	}

	placeholder := map[string]any{
		"headline": fmt.Sprintf("%s — %s tutor", name, subjects),
		"bio":      fmt.Sprintf("%s teaches %s and brings %s to every session.", name, subjects, experience),
	}

	return inv.Generate(ctx, provider.Request{
		System:      listingSystem,
		Prompt:      prompt,
		Temperature: 0.8,
		MaxTokens:   1024,
	}, placeholder), nil
}

func writeListing(ctx context.Context, inv *agent.Invocation) (map[string]any, error) {
	if inv.Cancelled() {
		return nil, agent.ErrCancelled
	}

	subject := inv.String("subject", "private tutoring")
	price := inv.String("price", "competitive rates")
	audience := inv.String("audience", "all levels")

	prompt, err := util.RenderTemplate(writeListingPrompt, map[string]any{
		"subject": subject, "price": price, "audience": audience,
	})
	if err != nil {
		return nil, err
	}

	placeholder := map[string]any{
		"title":       fmt.Sprintf("%s tutoring for %s", subject, audience),
		"description": fmt.Sprintf("One-to-one %s sessions at %s.", subject, price),
		"highlights":  []string{"Experienced tutor", "Flexible scheduling", "Tailored sessions"},
	}

	return inv.Generate(ctx, provider.Request{
		System:      listingSystem,
		Prompt:      prompt,
		Temperature: 0.8,
		MaxTokens:   1024,
	}, placeholder), nil
}

func suggestKeywords(ctx context.Context, inv *agent.Invocation) (map[string]any, error) {
	if inv.Cancelled() {
		return nil, agent.ErrCancelled
	}

	subject := inv.String("subject", "tutoring")
	audience := inv.String("audience", "students")

	prompt, err := util.RenderTemplate(suggestKeywordsPrompt, map[string]any{
		"subject": subject, "audience": audience,
	})
	if err != nil {
		return nil, err
	}

	placeholder := map[string]any{
		"keywords": []string{
			subject + " tutor",
			subject + " lessons",
			fmt.Sprintf("%s help for %s", subject, audience),
			"online tutoring",
		},
	}

	return inv.Generate(ctx, provider.Request{
		System:      listingSystem,
		Prompt:      prompt,
		Temperature: 0.6,
		MaxTokens:   512,
	}, placeholder), nil
}
