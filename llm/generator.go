package llm

import (
	"context"
	"fmt"
	"os"

	"clementus360/care-companion/types"
)

// Generator phrases outbound messages with a hosted model.
type Generator interface {
	Reply(ctx context.Context, profile types.UserProfile, reminders []types.ReminderOccurrence, turns []types.ConversationTurn) (string, error)
	Question(ctx context.Context, profile types.UserProfile, category, subcategory string, turns []types.ConversationTurn) (string, error)
}

type Model string

const (
	OpenAI Model = "openai"
	Gemini Model = "gemini"
)

// NewGenerator returns the generator for the configured model. An empty
// model falls back to the LLM_MODEL env var, then to OpenAI.
func NewGenerator(model Model) (Generator, error) {
	if model == "" {
		model = Model(os.Getenv("LLM_MODEL"))
	}
	switch model {
	case OpenAI, "":
		return NewOpenAIGenerator(), nil
	case Gemini:
		return NewGeminiGenerator(), nil
	default:
		return nil, fmt.Errorf("unsupported model: %s (supported: %s, %s)", model, OpenAI, Gemini)
	}
}
