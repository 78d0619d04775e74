package assistant

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiConfig selects the model and persona
type GeminiConfig struct {
	APIKey            string
	Model             string
	SystemInstruction string
}

// GeminiClient is a Client backed by the Gemini API
type GeminiClient struct {
	client *genai.Client
	config GeminiConfig
}

// NewGeminiClient creates a GeminiClient. It does not contact the API.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, config: cfg}, nil
}

// Ask sends question with the configured system instruction
func (g *GeminiClient) Ask(ctx context.Context, question string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.config.Model,
		genai.Text(question),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: g.config.SystemInstruction}},
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var answer strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			answer.WriteString(part.Text)
		}
	}

	text := strings.TrimSpace(answer.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
