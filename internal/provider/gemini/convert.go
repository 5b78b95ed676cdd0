package gemini

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Cyclone1070/gptcode/internal/provider/models"
	"google.golang.org/genai"
)

// toGeminiContents converts the transcript to Gemini Content format.
// System messages in the transcript are folded into user turns since
// Gemini only accepts the system prompt through the config.
func toGeminiContents(transcript []models.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(transcript))

	for _, msg := range transcript {
		if msg.Content == "" {
			continue
		}
		role := "user"
		if msg.Role == models.RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{genai.NewPartFromText(msg.Content)},
		})
	}

	return contents
}

// toGeminiConfig builds the request config.
func toGeminiConfig(systemPrompt string, cfg models.GenerateConfig) *genai.GenerateContentConfig {
	temperature := float32(cfg.Temperature)
	geminiConfig := &genai.GenerateContentConfig{
		Temperature:    &temperature,
		SafetySettings: defaultSafetySettings(),
	}
	if cfg.MaxTokens > 0 {
		geminiConfig.MaxOutputTokens = int32(cfg.MaxTokens)
	}
	if systemPrompt != "" {
		geminiConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(systemPrompt)},
		}
	}
	return geminiConfig
}

// defaultSafetySettings returns safety settings with BLOCK_NONE for all categories.
func defaultSafetySettings() []*genai.SafetySetting {
	return []*genai.SafetySetting{
		{
			Category:  genai.HarmCategoryHateSpeech,
			Threshold: genai.HarmBlockThresholdOff,
		},
		{
			Category:  genai.HarmCategoryDangerousContent,
			Threshold: genai.HarmBlockThresholdOff,
		},
		{
			Category:  genai.HarmCategoryHarassment,
			Threshold: genai.HarmBlockThresholdOff,
		},
		{
			Category:  genai.HarmCategorySexuallyExplicit,
			Threshold: genai.HarmBlockThresholdOff,
		},
	}
}

// fromGeminiResponse extracts the reply text.
func fromGeminiResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", &models.ProviderError{
			Code:       models.ErrorCodeEmpty,
			Message:    "no candidates in response",
			Underlying: models.ErrEmptyResponse,
		}
	}

	candidate := resp.Candidates[0]

	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", &models.ProviderError{
			Code:       models.ErrorCodeContentBlocked,
			Message:    "content blocked by safety filters",
			Underlying: models.ErrContentBlocked,
		}
	}

	var text strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part != nil && part.Text != "" {
				text.WriteString(part.Text)
			}
		}
	}

	if text.Len() == 0 {
		if candidate.FinishReason == genai.FinishReasonMaxTokens {
			return "", &models.ProviderError{
				Code:    models.ErrorCodeContextLength,
				Message: "response truncated due to max tokens",
			}
		}
		return "", &models.ProviderError{
			Code:       models.ErrorCodeEmpty,
			Message:    "candidate has no text",
			Underlying: models.ErrEmptyResponse,
		}
	}

	return text.String(), nil
}

// mapGeminiError maps Gemini API errors to provider errors.
func mapGeminiError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) && apiErr != nil {
		return models.FromStatus(apiErr.Code, apiErr.Message, err)
	}

	return models.FromTransport(fmt.Errorf("gemini: %w", err))
}
