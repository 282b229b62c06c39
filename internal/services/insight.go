package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/glucolife/glucolife-backend/internal/config"
	"github.com/glucolife/glucolife-backend/internal/models"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// InsightClient talks to the generative-text collaborator that writes the
// meal-comparison analysis. Failures degrade to a localized fallback string;
// the comparison view must render regardless.
type InsightClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewInsightClient(cfg *config.Config) *InsightClient {
	return &InsightClient{
		apiKey:  cfg.InsightAPIKey,
		baseURL: cfg.InsightBaseURL,
		model:   cfg.InsightModel,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Configured reports whether an API key is present.
func (c *InsightClient) Configured() bool {
	return c.apiKey != ""
}

// CompareMeals returns a short generated analysis of two meals in the
// requested language. Any failure returns the localized fallback text.
func (c *InsightClient) CompareMeals(ctx context.Context, a, b models.Meal, lang string) string {
	text, err := c.chat(ctx, []chatMessage{
		{Role: "system", Content: "You are a nutrition assistant specialized in glycemic impact. Answer in 3-4 sentences, no markdown."},
		{Role: "user", Content: comparisonPrompt(a, b, lang)},
	})
	if err != nil {
		log.Printf("meal comparison insight error: %v", err)
		return InsightFallback(lang)
	}
	return text
}

// InsightFallback is the localized error string shown in the insight slot.
func InsightFallback(lang string) string {
	if strings.HasPrefix(strings.ToLower(lang), "fr") {
		return "L'analyse comparative n'est pas disponible pour le moment. Veuillez réessayer plus tard."
	}
	return "The comparison insight is unavailable right now. Please try again later."
}

func comparisonPrompt(a, b models.Meal, lang string) string {
	language := "English"
	if strings.HasPrefix(strings.ToLower(lang), "fr") {
		language = "français"
	}
	return fmt.Sprintf(
		"Compare these two meals for someone watching their blood glucose and say which is the better choice and why. Answer in %s.\n"+
			"Meal A: %s — %.0fg carbohydrates, glycemic index %s, glycemic score %d/100.\n"+
			"Meal B: %s — %.0fg carbohydrates, glycemic index %s, glycemic score %d/100.",
		language,
		a.Name, a.Carbohydrates, a.GlycemicIndex, a.GlycemicScore,
		b.Name, b.Carbohydrates, b.GlycemicIndex, b.GlycemicScore,
	)
}

func (c *InsightClient) chat(ctx context.Context, messages []chatMessage) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("INSIGHT_API_KEY not configured")
	}

	reqBody := chatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   400,
		Temperature: 0.7,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return chatResp.Choices[0].Message.Content, nil
}
