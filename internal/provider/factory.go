package provider

import (
	"context"
	"fmt"

	"github.com/Cyclone1070/gptcode/internal/config"
	"github.com/Cyclone1070/gptcode/internal/provider/anthropic"
	"github.com/Cyclone1070/gptcode/internal/provider/gemini"
	"github.com/Cyclone1070/gptcode/internal/provider/models"
	"github.com/Cyclone1070/gptcode/internal/provider/openai"
)

// New builds the backend named by providerName for modelName.
func New(ctx context.Context, providerName, apiKey, modelName string) (Provider, error) {
	if apiKey == "" {
		return nil, models.ErrMissingAPIKey
	}

	switch providerName {
	case config.ProviderOpenAI:
		return openai.NewOpenAIProvider(apiKey, modelName)
	case config.ProviderAnthropic:
		return anthropic.NewAnthropicProvider(apiKey, modelName)
	case config.ProviderGemini:
		client, err := gemini.Dial(ctx, apiKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return gemini.New(client, modelName), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", providerName)
	}
}
