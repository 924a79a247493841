package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"clementus360/care-companion/config"
	"clementus360/care-companion/types"
)

const openAIURL = "https://api.openai.com/v1/chat/completions"

// OpenAIGenerator phrases messages through the chat-completions API.
type OpenAIGenerator struct {
	client *http.Client
	model  string
}

func NewOpenAIGenerator() *OpenAIGenerator {
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIGenerator{
		client: &http.Client{Timeout: 30 * time.Second},
		model:  model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (g *OpenAIGenerator) Reply(ctx context.Context, profile types.UserProfile, reminders []types.ReminderOccurrence, turns []types.ConversationTurn) (string, error) {
	messages := []chatMessage{{Role: "system", Content: BuildCompanionPrompt(profile, reminders)}}
	messages = append(messages, turnMessages(turns)...)
	return g.complete(ctx, messages)
}

func (g *OpenAIGenerator) Question(ctx context.Context, profile types.UserProfile, category, subcategory string, turns []types.ConversationTurn) (string, error) {
	messages := []chatMessage{{Role: "system", Content: BuildQuestionPrompt(profile, category, subcategory)}}
	messages = append(messages, turnMessages(turns)...)
	return g.complete(ctx, messages)
}

func (g *OpenAIGenerator) complete(ctx context.Context, messages []chatMessage) (string, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	}

	body := map[string]interface{}{
		"model":    g.model,
		"messages": messages,
	}
	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", openAIURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var res chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", fmt.Errorf("failed to decode response: %v", err)
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	content := strings.TrimSpace(res.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty completion")
	}
	config.Logger.Debugf("OpenAI completion: %d chars", len(content))
	return content, nil
}

func turnMessages(turns []types.ConversationTurn) []chatMessage {
	messages := make([]chatMessage, 0, len(turns))
	for _, turn := range turns {
		messages = append(messages, chatMessage{Role: turn.Role, Content: turn.Content})
	}
	return messages
}
