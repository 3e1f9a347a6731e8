package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"studium-server/internal/domain"
)

// ClaudeProvider generates study content through the Anthropic Messages API.
type ClaudeProvider struct {
	client      anthropic.Client
	model       string
	maxTokens   int
	temperature float32
}

func NewClaudeProvider(apiKey, model string, maxTokens int, temperature float32) *ClaudeProvider {
	return &ClaudeProvider{
		client:      anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

func (p *ClaudeProvider) Name() string { return domain.ProviderClaude }

func (p *ClaudeProvider) Invoke(ctx context.Context, prompt string) (string, error) {
	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		MaxTokens:   int64(p.maxTokens),
		Temperature: anthropic.Float(float64(p.temperature)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", p.classify(err)
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return "", &domain.ProviderError{
			Provider: p.Name(),
			Kind:     domain.ResponseParseError,
			Err:      fmt.Errorf("response contained no text blocks"),
		}
	}
	return text, nil
}

func (p *ClaudeProvider) classify(err error) error {
	kind := domain.ProviderTransportError
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		kind = domain.ProviderTimeout
	default:
		var apierr *anthropic.Error
		if errors.As(err, &apierr) {
			if apierr.StatusCode == 401 || apierr.StatusCode == 403 {
				kind = domain.ProviderAuthError
			}
		}
	}
	return &domain.ProviderError{Provider: p.Name(), Kind: kind, Err: err}
}
