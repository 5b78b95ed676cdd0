package gemini

import (
	"context"

	"github.com/Cyclone1070/gptcode/internal/provider/models"
)

// GeminiProvider implements the Provider interface for Google Gemini.
type GeminiProvider struct {
	client    GeminiClient
	modelName string
	config    models.GenerateConfig
}

// New creates a new GeminiProvider with the specified client and model.
func New(client GeminiClient, modelName string) *GeminiProvider {
	return &GeminiProvider{
		client:    client,
		modelName: modelName,
		config:    models.DefaultGenerateConfig(),
	}
}

// Complete sends the transcript to the Gemini API and returns the reply text.
func (p *GeminiProvider) Complete(ctx context.Context, systemPrompt string, transcript []models.Message) (string, error) {
	contents := toGeminiContents(transcript)
	config := toGeminiConfig(systemPrompt, p.config)

	resp, err := p.client.GenerateContent(ctx, p.modelName, contents, config)
	if err != nil {
		return "", mapGeminiError(err)
	}

	return fromGeminiResponse(resp)
}

// Model returns the model name requests are sent to.
func (p *GeminiProvider) Model() string {
	return p.modelName
}
