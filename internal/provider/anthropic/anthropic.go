// Package anthropic implements the model backend on the Anthropic
// messages API.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Cyclone1070/gptcode/internal/provider/models"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// MessageService is the slice of the SDK the provider needs.
// *anthropic.MessageService satisfies it.
type MessageService interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// AnthropicProvider implements the Provider interface for Anthropic.
type AnthropicProvider struct {
	service   MessageService
	modelName string
	config    models.GenerateConfig
}

// NewAnthropicProvider creates a provider backed by the real SDK client.
func NewAnthropicProvider(apiKey, modelName string) (*AnthropicProvider, error) {
	if apiKey == "" {
		return nil, models.ErrMissingAPIKey
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return NewWithService(client.Messages, modelName), nil
}

// NewWithService creates a provider with a custom service (for testing).
func NewWithService(service MessageService, modelName string) *AnthropicProvider {
	return &AnthropicProvider{
		service:   service,
		modelName: modelName,
		config:    models.DefaultGenerateConfig(),
	}
}

// Complete sends the system prompt and transcript and returns the reply text.
func (p *AnthropicProvider) Complete(ctx context.Context, systemPrompt string, transcript []models.Message) (string, error) {
	request := anthropic.MessageNewParams{
		Model:       anthropic.F(p.modelName),
		MaxTokens:   anthropic.F(p.config.MaxTokens),
		Temperature: anthropic.F(p.config.Temperature),
		Messages:    anthropic.F(toAnthropicMessages(transcript)),
	}
	if strings.TrimSpace(systemPrompt) != "" {
		request.System = anthropic.F([]anthropic.TextBlockParam{
			{
				Type: anthropic.F(anthropic.TextBlockParamTypeText),
				Text: anthropic.F(systemPrompt),
			},
		})
	}

	msg, err := p.service.New(ctx, request)
	if err != nil {
		return "", mapAnthropicError(err)
	}

	var text strings.Builder
	if msg != nil {
		for _, block := range msg.Content {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", &models.ProviderError{
			Code:       models.ErrorCodeEmpty,
			Message:    "no text blocks in response",
			Underlying: models.ErrEmptyResponse,
		}
	}
	return text.String(), nil
}

// Model returns the model name requests are sent to.
func (p *AnthropicProvider) Model() string {
	return p.modelName
}

// toAnthropicMessages converts the transcript. The messages API only
// knows user and assistant turns, so system entries become user turns.
func toAnthropicMessages(transcript []models.Message) []anthropic.MessageParam {
	messages := make([]anthropic.MessageParam, 0, len(transcript))
	for _, msg := range transcript {
		if msg.Content == "" {
			continue
		}
		block := anthropic.NewTextBlock(msg.Content)
		if msg.Role == models.RoleAssistant {
			messages = append(messages, anthropic.NewAssistantMessage(block))
		} else {
			messages = append(messages, anthropic.NewUserMessage(block))
		}
	}
	return messages
}

func mapAnthropicError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return models.FromStatus(apiErr.StatusCode, apiErr.Error(), err)
	}
	return models.FromTransport(fmt.Errorf("anthropic: %w", err))
}
