package llm

import (
	"context"
	"errors"
	"fmt"
	"mockly-server/internal/observability"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type chatCompleter func(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)

type OpenAIModel struct {
	complete chatCompleter
	model    string
	logger   *observability.Logger
}

func NewOpenAI(apiKey, model string, logger *observability.Logger, opts ...option.RequestOption) (*OpenAIModel, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}
	options := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := openai.NewClient(options...)

	return &OpenAIModel{
		complete: client.Chat.Completions.New,
		model:    model,
		logger:   logger,
	}, nil
}

func (o *OpenAIModel) GenerateJSON(ctx context.Context, system, prompt string) (string, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "ai_provider", Value: "openai"},
		observability.Field{Key: "ai_model", Value: o.model},
	)

	resp, err := o.complete(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(prompt),
		},
		Model: openai.ChatModel(o.model),
	})
	if err != nil {
		o.logger.Error(ctx, "openai chat completion failed", err)
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}

	o.logger.Metrics(ctx,
		observability.MetricField{Key: "ai_prompt_tokens", Value: resp.Usage.PromptTokens},
		observability.MetricField{Key: "ai_completion_tokens", Value: resp.Usage.CompletionTokens},
	)
	return resp.Choices[0].Message.Content, nil
}
