package service

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"studium-server/internal/domain"
)

// OpenAIProvider generates study content through the OpenAI chat completions
// API. It requests JSON object output so responses skip the markdown fences
// Claude sometimes adds.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

func NewOpenAIProvider(apiKey, model string, maxTokens int, temperature float32) *OpenAIProvider {
	return &OpenAIProvider{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

func (p *OpenAIProvider) Name() string { return domain.ProviderOpenAI }

func (p *OpenAIProvider) Invoke(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", p.classify(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &domain.ProviderError{
			Provider: p.Name(),
			Kind:     domain.ResponseParseError,
			Err:      fmt.Errorf("response contained no choices"),
		}
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) classify(err error) error {
	kind := domain.ProviderTransportError
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		kind = domain.ProviderTimeout
	default:
		var apierr *openai.APIError
		if errors.As(err, &apierr) {
			if apierr.HTTPStatusCode == 401 || apierr.HTTPStatusCode == 403 {
				kind = domain.ProviderAuthError
			}
		}
	}
	return &domain.ProviderError{Provider: p.Name(), Kind: kind, Err: err}
}
