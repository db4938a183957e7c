package agents

import (
	"context"
	"fmt"

	"github.com/tutorwise/agentkit/agent"
	"github.com/tutorwise/agentkit/core"
	"github.com/tutorwise/agentkit/internal/util"
	"github.com/tutorwise/agentkit/provider"
)

const assessmentSystem = `You are an assessment specialist for a tutoring platform.
Always respond with a single JSON object and no surrounding commentary.`

const generateQuizPrompt = `Write a {{.count}}-question quiz on "{{.topic}}" at {{.level}} level.
Return a JSON object with a "questions" array; each entry has "question",
"options" (array of four strings) and "answer" (the correct option).`

const gradeAnswerPrompt = `Grade this student answer.
Question: {{.question}}
Student answer: {{.answer}}
Return a JSON object with "correct" (boolean), "score" (0-100) and
"explanation".`

const generateFeedbackPrompt = `Write encouraging, specific feedback for a student who scored
{{.score}} on "{{.topic}}". Return a JSON object with "feedback" and
"suggested_focus" (array of strings).`

type quizInput struct {
	Topic string `json:"topic" description:"Subject to quiz on"`
	Level string `json:"level,omitempty"`
	Count int    `json:"count,omitempty" description:"Number of questions, default 5"`
}

type gradeInput struct {
	Question string `json:"question" description:"The question that was asked"`
	Answer   string `json:"answer" description:"The student's answer"`
}

// NewAssessmentAgent builds the quiz and grading agent.
func NewAssessmentAgent(optFns ...func(o *agent.Options)) *agent.BaseAgent {
	a := agent.NewBaseAgent("assessment", "Assessment Agent",
		"Generates quizzes, grades answers and writes student feedback", optFns...)

	a.RegisterCapability(core.Capability{
		Name:        "generate_quiz",
		Description: "Create a multiple-choice quiz for a topic",
		InputSchema: util.CreateSchema(quizInput{}),
	}, generateQuiz)

	a.RegisterCapability(core.Capability{
		Name:        "grade_answer",
		Description: "Grade a student's answer to a question",
		InputSchema: util.CreateSchema(gradeInput{}),
	}, gradeAnswer)

	a.RegisterCapability(core.Capability{
		Name:        "generate_feedback",
		Description: "Write personalised feedback from a score and topic",
	}, generateFeedback)

	return a
}

func generateQuiz(ctx context.Context, inv *agent.Invocation) (map[string]any, error) {
	if inv.Cancelled() {
		return nil, agent.ErrCancelled
	}

	topic := inv.String("topic", "general knowledge")
	level := inv.String("level", "intermediate")
	count := intField(inv.Input, "count", 5)

	prompt, err := util.RenderTemplate(generateQuizPrompt, map[string]any{
		"topic": topic, "level": level, "count": count,
	})
	if err != nil {
		return nil, err
	}

	questions := make([]map[string]any, 0, count)
	for i := 1; i <= count; i++ {
		questions = append(questions, map[string]any{
			"question": fmt.Sprintf("Question %d on %s", i, topic),
			"options":  []string{"Option A", "Option B", "Option C", "Option D"},
			"answer":   "Option A",
		})
	}

	return inv.Generate(ctx, provider.Request{
		System:      assessmentSystem,
		Prompt:      prompt,
		Temperature: 0.7,
		MaxTokens:   2048,
	}, map[string]any{"questions": questions}), nil
}

func gradeAnswer(ctx context.Context, inv *agent.Invocation) (map[string]any, error) {
	if inv.Cancelled() {
		return nil, agent.ErrCancelled
	}

	question := inv.String("question", "")
	answer := inv.String("answer", "")

	prompt, err := util.RenderTemplate(gradeAnswerPrompt, map[string]any{
		"question": question, "answer": answer,
	})
	if err != nil {
		return nil, err
	}

	placeholder := map[string]any{
		"correct":     false,
		"score":       0,
		"explanation": "Automatic grading unavailable; a tutor will review this answer.",
	}

	return inv.Generate(ctx, provider.Request{
		System:      assessmentSystem,
		Prompt:      prompt,
		Temperature: 0.2,
		MaxTokens:   1024,
	}, placeholder), nil
}

func generateFeedback(ctx context.Context, inv *agent.Invocation) (map[string]any, error) {
	if inv.Cancelled() {
		return nil, agent.ErrCancelled
	}

	topic := inv.String("topic", "the assessed topic")
	score := inv.String("score", "their recent quiz")

	prompt, err := util.RenderTemplate(generateFeedbackPrompt, map[string]any{
		"topic": topic, "score": score,
	})
	if err != nil {
		return nil, err
	}

	placeholder := map[string]any{
		"feedback":        fmt.Sprintf("Good effort on %s. Keep practising the areas you found hardest.", topic),
		"suggested_focus": []string{fmt.Sprintf("Review the basics of %s", topic)},
	}

	return inv.Generate(ctx, provider.Request{
		System:      assessmentSystem,
		Prompt:      prompt,
		Temperature: 0.8,
		MaxTokens:   1024,
	}, placeholder), nil
}
