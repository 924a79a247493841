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

	"clementus360/care-companion/types"
)

const geminiURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

// GeminiGenerator phrases messages through the generateContent API.
// Gemini has no separate system role, so the prompt and recent turns are
// flattened into one text part.
type GeminiGenerator struct {
	client *http.Client
}

func NewGeminiGenerator() *GeminiGenerator {
	return &GeminiGenerator{client: &http.Client{Timeout: 30 * time.Second}}
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiGenerator) Reply(ctx context.Context, profile types.UserProfile, reminders []types.ReminderOccurrence, turns []types.ConversationTurn) (string, error) {
	return g.complete(ctx, flattenPrompt(BuildCompanionPrompt(profile, reminders), turns))
}

func (g *GeminiGenerator) Question(ctx context.Context, profile types.UserProfile, category, subcategory string, turns []types.ConversationTurn) (string, error) {
	return g.complete(ctx, flattenPrompt(BuildQuestionPrompt(profile, category, subcategory), turns))
}

func (g *GeminiGenerator) complete(ctx context.Context, prompt string) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY not set")
	}

	body := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     0.3,
			"maxOutputTokens": 300,
			"topP":            0.8,
		},
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", geminiURL+"?key="+apiKey, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var res geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", fmt.Errorf("failed to decode response: %v", err)
	}
	if len(res.Candidates) == 0 || len(res.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}

	content := strings.TrimSpace(res.Candidates[0].Content.Parts[0].Text)
	if content == "" {
		return "", fmt.Errorf("empty completion")
	}
	return content, nil
}

func flattenPrompt(system string, turns []types.ConversationTurn) string {
	var b strings.Builder
	b.WriteString(system)
	if len(turns) > 0 {
		b.WriteString("\n\nRecent conversation:\n")
		for _, turn := range turns {
			b.WriteString(turn.Role + ": " + turn.Content + "\n")
		}
	}
	return b.String()
}
