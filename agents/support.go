package agents

import (
	"context"

	"github.com/tutorwise/agentkit/agent"
	"github.com/tutorwise/agentkit/core"
	"github.com/tutorwise/agentkit/internal/util"
	"github.com/tutorwise/agentkit/provider"
)

const supportSystem = `You are a customer support specialist for a tutoring marketplace.
Always respond with a single JSON object and no surrounding commentary.`

const draftReplyPrompt = `Draft a reply to this support ticket.
From: {{.sender}}
Subject: {{.subject}}
Message: {{.message}}
Return a JSON object with "reply" (the full response text) and "tone"
(one of "apologetic", "informative", "celebratory").`

const classifyTicketPrompt = `Classify this support ticket.
Subject: {{.subject}}
Message: {{.message}}
Return a JSON object with "category" (one of "billing", "scheduling",
"technical", "feedback", "other"), "priority" (one of "low", "normal",
"high") and "needs_human" (boolean).`

const draftArticlePrompt = `Write a help-centre article about "{{.topic}}" for {{.audience}}.
Return a JSON object with "title", "body" and "related_topics" (array of strings).`

type ticketInput struct {
	Sender  string `json:"sender,omitempty" description:"Who sent the ticket"`
	Subject string `json:"subject" description:"Ticket subject line"`
	Message string `json:"message" description:"Ticket body"`
}

// NewSupportAgent builds the customer support agent.
func NewSupportAgent(optFns ...func(o *agent.Options)) *agent.BaseAgent {
	a := agent.NewBaseAgent("support", "Support Agent",
		"Drafts ticket replies, classifies tickets and writes help-centre articles", optFns...)

	a.RegisterCapability(core.Capability{
		Name:        "draft_reply",
		Description: "Draft a reply to a support ticket",
		InputSchema: util.CreateSchema(ticketInput{}),
	}, draftReply)

	a.RegisterCapability(core.Capability{
		Name:        "classify_ticket",
		Description: "Classify a ticket by category and priority",
		InputSchema: util.CreateSchema(ticketInput{}),
	}, classifyTicket)

	a.RegisterCapability(core.Capability{
		Name:        "draft_article",
		Description: "Write a help-centre article for a topic",
	}, draftArticle)

	return a
}

func draftReply(ctx context.Context, inv *agent.Invocation) (map[string]any, error) {
	if inv.Cancelled() {
		return nil, agent.ErrCancelled
	}

	prompt, err := util.RenderTemplate(draftReplyPrompt, map[string]any{
		"sender":  inv.String("sender", "a customer"),
		"subject": inv.String("subject", "(no subject)"),
		"message": inv.String("message", ""),
	})
	if err != nil {
		return nil, err
	}

	placeholder := map[string]any{
		"reply": "Thanks for getting in touch. A member of our support team will respond to your message shortly.",
		"tone":  "informative",
	}

	return inv.Generate(ctx, provider.Request{
		System:      supportSystem,
		Prompt:      prompt,
		Temperature: 0.6,
		MaxTokens:   1024,
	}, placeholder), nil
}

func classifyTicket(ctx context.Context, inv *agent.Invocation) (map[string]any, error) {
	if inv.Cancelled() {
		return nil, agent.ErrCancelled
	}

	prompt, err := util.RenderTemplate(classifyTicketPrompt, map[string]any{
		"subject": inv.String("subject", "(no subject)"),
		"message": inv.String("message", ""),
	})
	if err != nil {
		return nil, err
	}

	// Unclassifiable tickets route to a human at normal priority.
	placeholder := map[string]any{
		"category":    "other",
		"priority":    "normal",
		"needs_human": true,
	}

	return inv.Generate(ctx, provider.Request{
		System:      supportSystem,
		Prompt:      prompt,
		Temperature: 0.1,
		MaxTokens:   512,
	}, placeholder), nil
}

func draftArticle(ctx context.Context, inv *agent.Invocation) (map[string]any, error) {
	if inv.Cancelled() {
		return nil, agent.ErrCancelled
	}

	topic := inv.String("topic", "using the platform")
	audience := inv.String("audience", "students and tutors")

	prompt, err := util.RenderTemplate(draftArticlePrompt, map[string]any{
		"topic": topic, "audience": audience,
	})
	if err != nil {
		return nil, err
	}

	placeholder := map[string]any{
		"title":          "Help: " + topic,
		"body":           "This article is being prepared. Contact support if you need help with " + topic + " in the meantime.",
		"related_topics": []string{"getting started", "contacting support"},
	}

	return inv.Generate(ctx, provider.Request{
		System:      supportSystem,
		Prompt:      prompt,
		Temperature: 0.7,
		MaxTokens:   2048,
	}, placeholder), nil
}
