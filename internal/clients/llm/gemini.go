package llm

import (
	"context"
	"fmt"
	"mockly-server/internal/observability"
	"strings"

	"google.golang.org/genai"
)

type GeminiModel struct {
	client *genai.Client
	model  string
	logger *observability.Logger
}

func NewGemini(ctx context.Context, apiKey, model string, logger *observability.Logger) (*GeminiModel, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiModel{client: client, model: model, logger: logger}, nil
}

func (g *GeminiModel) GenerateJSON(ctx context.Context, system, prompt string) (string, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "ai_provider", Value: "gemini"},
		observability.Field{Key: "ai_model", Value: g.model},
	)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		},
	})
	if err != nil {
		g.logger.Error(ctx, "gemini generate content failed", err)
		return "", fmt.Errorf("gemini generate content failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			out.WriteString(part.Text)
		}
	}
	if out.Len() == 0 {
		return "", ErrEmptyResponse
	}

	if resp.UsageMetadata != nil {
		g.logger.Metrics(ctx,
			observability.MetricField{Key: "ai_prompt_tokens", Value: resp.UsageMetadata.PromptTokenCount},
			observability.MetricField{Key: "ai_candidates_tokens", Value: resp.UsageMetadata.CandidatesTokenCount},
		)
	}
	return out.String(), nil
}
