package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/Cyclone1070/gptcode/internal/provider/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: content, FinishReason: genai.FinishReasonStop},
		},
	}
}

func TestComplete_HappyPath(t *testing.T) {
	var gotModel string
	var gotContents []*genai.Content
	var gotConfig *genai.GenerateContentConfig

	mockClient := &MockGeminiClient{
		GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			gotModel, gotContents, gotConfig = model, contents, config
			return textResponse("Hello ", "there!"), nil
		},
	}

	p := New(mockClient, "gemini-mock")
	transcript := []models.Message{
		{Role: models.RoleUser, Content: "Hi"},
		{Role: models.RoleAssistant, Content: "Hello"},
		{Role: models.RoleUser, Content: "RESULT (list_dir):\n[list_dir] ."},
	}

	reply, err := p.Complete(context.Background(), "system prompt", transcript)

	require.NoError(t, err)
	assert.Equal(t, "Hello there!", reply)
	assert.Equal(t, "gemini-mock", gotModel)
	assert.Equal(t, "gemini-mock", p.Model())

	require.Len(t, gotContents, 3)
	assert.Equal(t, "user", gotContents[0].Role)
	assert.Equal(t, "model", gotContents[1].Role)
	assert.Equal(t, "user", gotContents[2].Role)
	assert.Equal(t, "Hi", gotContents[0].Parts[0].Text)

	require.NotNil(t, gotConfig.SystemInstruction)
	assert.Equal(t, "system prompt", gotConfig.SystemInstruction.Parts[0].Text)
	require.NotNil(t, gotConfig.Temperature)
	assert.InDelta(t, 0.2, *gotConfig.Temperature, 0.0001)
	assert.Len(t, gotConfig.SafetySettings, 4)
}

func TestComplete_SkipsEmptyMessages(t *testing.T) {
	contents := toGeminiContents([]models.Message{
		{Role: models.RoleUser, Content: ""},
		{Role: models.RoleUser, Content: "x"},
	})
	assert.Len(t, contents, 1)
}

func TestComplete_SafetyBlock(t *testing.T) {
	mockClient := &MockGeminiClient{
		GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
			}, nil
		},
	}

	_, err := New(mockClient, "m").Complete(context.Background(), "", nil)

	assert.ErrorIs(t, err, models.ErrContentBlocked)
}

func TestComplete_NoCandidates(t *testing.T) {
	mockClient := &MockGeminiClient{
		GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return &genai.GenerateContentResponse{}, nil
		},
	}

	_, err := New(mockClient, "m").Complete(context.Background(), "", nil)

	var providerErr *models.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, models.ErrorCodeEmpty, providerErr.Code)
}

func TestComplete_MaxTokensWithoutText(t *testing.T) {
	mockClient := &MockGeminiClient{
		GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{Content: &genai.Content{}, FinishReason: genai.FinishReasonMaxTokens}},
			}, nil
		},
	}

	_, err := New(mockClient, "m").Complete(context.Background(), "", nil)

	var providerErr *models.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, models.ErrorCodeContextLength, providerErr.Code)
}

func TestComplete_TransportError(t *testing.T) {
	boom := errors.New("dial tcp: refused")
	mockClient := &MockGeminiClient{
		GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return nil, boom
		},
	}

	_, err := New(mockClient, "m").Complete(context.Background(), "", nil)

	assert.ErrorIs(t, err, boom)
	assert.True(t, models.IsRetryable(err))
}
