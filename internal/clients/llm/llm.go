// Package llm wraps the text-generation providers used for question and feedback generation.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mockly-server/internal/config"
	"mockly-server/internal/observability"
	"strings"
)

var (
	ErrEmptyResponse       = errors.New("ai service returned an empty response")
	ErrUnsupportedProvider = errors.New("unsupported ai provider")
)

const (
	DefaultGeminiModel = "gemini-2.0-flash-001"
	DefaultOpenAIModel = "gpt-4o"
)

// Model produces a single JSON document for a system instruction and a user prompt.
type Model interface {
	GenerateJSON(ctx context.Context, system, prompt string) (string, error)
}

// New builds the Model selected by AI_PROVIDER.
func New(ctx context.Context, cfg config.ServicesConfig, logger *observability.Logger) (Model, error) {
	switch cfg.AIProvider {
	case config.AIProviderGemini, "":
		model := cfg.AIModel
		if model == "" {
			model = DefaultGeminiModel
		}
		return NewGemini(ctx, cfg.GoogleAIAPIKey, model, logger)
	case config.AIProviderOpenAI:
		model := cfg.AIModel
		if model == "" {
			model = DefaultOpenAIModel
		}
		return NewOpenAI(cfg.OpenAIAPIKey, model, logger)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, cfg.AIProvider)
	}
}

// DecodeJSON unmarshals a model response into v, tolerating a surrounding markdown code fence.
func DecodeJSON(raw string, v any) error {
	cleaned := stripCodeFence(raw)
	if cleaned == "" {
		return ErrEmptyResponse
	}
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("failed to decode ai service response: %w", err)
	}
	return nil
}

func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// drop the language tag line
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
