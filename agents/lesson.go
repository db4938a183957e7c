package agents

import (
	"context"
	"fmt"

	"github.com/tutorwise/agentkit/agent"
	"github.com/tutorwise/agentkit/core"
	"github.com/tutorwise/agentkit/internal/util"
	"github.com/tutorwise/agentkit/provider"
)

const lessonSystem = `You are an experienced tutor creating teaching material.
Always respond with a single JSON object and no surrounding commentary.`

const generateLessonPrompt = `Create a lesson on "{{.topic}}" for a {{.level}} student.
Return a JSON object with fields: "title", "objectives" (array of strings),
"sections" (array of objects with "heading" and "content"), and "duration_minutes".`

const generateExamplesPrompt = `Produce {{.count}} worked examples for "{{.topic}}" at {{.level}} level.
Return a JSON object with an "examples" array; each entry has "problem",
"solution" and "explanation".`

const summarizeTopicPrompt = `Summarize the topic "{{.topic}}" for a {{.level}} student.
Return a JSON object with "summary" (a short paragraph) and "key_points"
(array of strings).`

type lessonInput struct {
	Topic string `json:"topic" description:"Subject matter to teach"`
	Level string `json:"level,omitempty" description:"Student level, e.g. beginner"`
}

type examplesInput struct {
	Topic string `json:"topic" description:"Subject matter for the examples"`
	Level string `json:"level,omitempty"`
	Count int    `json:"count,omitempty" description:"Number of examples, default 3"`
}

// NewLessonAgent builds the lesson-content agent.
func NewLessonAgent(optFns ...func(o *agent.Options)) *agent.BaseAgent {
	a := agent.NewBaseAgent("lesson", "Lesson Agent",
		"Generates lesson plans, worked examples and topic summaries for tutoring sessions", optFns...)

	a.RegisterCapability(core.Capability{
		Name:        "generate_lesson",
		Description: "Create a structured lesson plan for a topic and student level",
		InputSchema: util.CreateSchema(lessonInput{}),
	}, generateLesson)

	a.RegisterCapability(core.Capability{
		Name:        "generate_examples",
		Description: "Produce worked examples with solutions for a topic",
		InputSchema: util.CreateSchema(examplesInput{}),
	}, generateExamples)

	a.RegisterCapability(core.Capability{
		Name:        "summarize_topic",
		Description: "Summarize a topic into key points for quick revision",
		InputSchema: util.CreateSchema(lessonInput{}),
	}, summarizeTopic)

	return a
}

func generateLesson(ctx context.Context, inv *agent.Invocation) (map[string]any, error) {
	if inv.Cancelled() {
		return nil, agent.ErrCancelled
	}

	topic := inv.String("topic", "effective study habits")
	level := inv.String("level", "intermediate")

	prompt, err := util.RenderTemplate(generateLessonPrompt, map[string]any{"topic": topic, "level": level})
	if err != nil {
		return nil, err
	}

	inv.Context.EmitProgress(0.4, "drafting lesson plan")

	placeholder := map[string]any{
		"title":      fmt.Sprintf("Introduction to %s", topic),
		"objectives": []string{fmt.Sprintf("Understand the fundamentals of %s", topic)},
		"sections": []map[string]any{
			{"heading": "Overview", "content": fmt.Sprintf("A %s-level overview of %s.", level, topic)},
			{"heading": "Practice", "content": "Guided exercises with the tutor."},
		},
		"duration_minutes": 45,
	}

	return inv.Generate(ctx, provider.Request{
		System:      lessonSystem,
		Prompt:      prompt,
		Temperature: 0.7,
		MaxTokens:   2048,
	}, placeholder), nil
}

func generateExamples(ctx context.Context, inv *agent.Invocation) (map[string]any, error) {
	if inv.Cancelled() {
		return nil, agent.ErrCancelled
	}

	topic := inv.String("topic", "effective study habits")
	level := inv.String("level", "intermediate")
	count := intField(inv.Input, "count", 3)

	prompt, err := util.RenderTemplate(generateExamplesPrompt, map[string]any{
		"topic": topic, "level": level, "count": count,
	})
	if err != nil {
		return nil, err
	}

	examples := make([]map[string]any, 0, count)
	for i := 1; i <= count; i++ {
		examples = append(examples, map[string]any{
			"problem":     fmt.Sprintf("Practice problem %d on %s", i, topic),
			"solution":    "Worked through with the tutor.",
			"explanation": fmt.Sprintf("Reinforces %s at %s level.", topic, level),
		})
	}

	return inv.Generate(ctx, provider.Request{
		System:      lessonSystem,
		Prompt:      prompt,
		Temperature: 0.7,
		MaxTokens:   2048,
	}, map[string]any{"examples": examples}), nil
}

func summarizeTopic(ctx context.Context, inv *agent.Invocation) (map[string]any, error) {
	if inv.Cancelled() {
		return nil, agent.ErrCancelled
	}

	topic := inv.String("topic", "effective study habits")
	level := inv.String("level", "intermediate")

	prompt, err := util.RenderTemplate(summarizeTopicPrompt, map[string]any{"topic": topic, "level": level})
	if err != nil {
		return nil, err
	}

	placeholder := map[string]any{
		"summary":    fmt.Sprintf("%s, outlined for a %s student.", topic, level),
		"key_points": []string{fmt.Sprintf("Core ideas of %s", topic), "Common pitfalls", "Where to go next"},
	}

	return inv.Generate(ctx, provider.Request{
		System:      lessonSystem,
		Prompt:      prompt,
		Temperature: 0.5,
		MaxTokens:   1024,
	}, placeholder), nil
}

// intField reads an integer input field, accepting JSON-decoded float64
// values, with a fallback for absent or non-positive values.
func intField(input map[string]any, key string, fallback int) int {
	switch v := input[key].(type) {
	case int:
		if v > 0 {
			return v
		}
	case float64:
		if v > 0 {
			return int(v)
		}
	}
	return fallback
}
