// Package openai implements the model backend on the OpenAI chat
// completions API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Cyclone1070/gptcode/internal/provider/models"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ChatCompletionService is the slice of the SDK the provider needs.
// *openai.ChatCompletionService satisfies it.
type ChatCompletionService interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// OpenAIProvider implements the Provider interface for OpenAI.
type OpenAIProvider struct {
	service   ChatCompletionService
	modelName string
	config    models.GenerateConfig
}

// NewOpenAIProvider creates a provider backed by the real SDK client.
func NewOpenAIProvider(apiKey, modelName string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, models.ErrMissingAPIKey
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return NewWithService(client.Chat.Completions, modelName), nil
}

// NewWithService creates a provider with a custom service (for testing).
func NewWithService(service ChatCompletionService, modelName string) *OpenAIProvider {
	return &OpenAIProvider{
		service:   service,
		modelName: modelName,
		config:    models.DefaultGenerateConfig(),
	}
}

// Complete sends the system prompt and transcript and returns the reply text.
func (p *OpenAIProvider) Complete(ctx context.Context, systemPrompt string, transcript []models.Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       openai.F(p.modelName),
		Messages:    openai.F(toOpenAIMessages(systemPrompt, transcript)),
		Temperature: openai.Float(p.config.Temperature),
	}

	resp, err := p.service.New(ctx, params)
	if err != nil {
		return "", mapOpenAIError(err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", &models.ProviderError{
			Code:       models.ErrorCodeEmpty,
			Message:    "no choices in response",
			Underlying: models.ErrEmptyResponse,
		}
	}

	return resp.Choices[0].Message.Content, nil
}

// Model returns the model name requests are sent to.
func (p *OpenAIProvider) Model() string {
	return p.modelName
}

func toOpenAIMessages(systemPrompt string, transcript []models.Message) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(transcript)+1)
	if strings.TrimSpace(systemPrompt) != "" {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	for _, msg := range transcript {
		switch msg.Role {
		case models.RoleSystem:
			messages = append(messages, openai.SystemMessage(msg.Content))
		case models.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}
	return messages
}

func mapOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return models.FromStatus(apiErr.StatusCode, apiErr.Message, err)
	}
	return models.FromTransport(fmt.Errorf("openai: %w", err))
}
