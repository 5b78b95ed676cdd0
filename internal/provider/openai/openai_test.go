package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/Cyclone1070/gptcode/internal/provider/models"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ChatCompletionService = (*openai.ChatCompletionService)(nil)

type mockChatCompletionService struct {
	NewFunc func(ctx context.Context, body openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
	params  openai.ChatCompletionNewParams
}

func (m *mockChatCompletionService) New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error) {
	m.params = body
	if m.NewFunc != nil {
		return m.NewFunc(ctx, body)
	}
	return nil, errors.New("NewFunc not set")
}

func completion(text string) *openai.ChatCompletion {
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: text}},
		},
	}
}

func TestComplete_HappyPath(t *testing.T) {
	svc := &mockChatCompletionService{
		NewFunc: func(ctx context.Context, body openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
			return completion(`{"tool":"list_dir","args":{"path":"."}}`), nil
		},
	}
	p := NewWithService(svc, "gpt-4o-mini")

	reply, err := p.Complete(context.Background(), "sys", []models.Message{
		{Role: models.RoleUser, Content: "list"},
		{Role: models.RoleAssistant, Content: "ok"},
		{Role: models.RoleUser, Content: "again"},
	})

	require.NoError(t, err)
	assert.Equal(t, `{"tool":"list_dir","args":{"path":"."}}`, reply)
	assert.Equal(t, "gpt-4o-mini", svc.params.Model.Value)
	assert.Equal(t, "gpt-4o-mini", p.Model())
	assert.InDelta(t, 0.2, svc.params.Temperature.Value, 1e-9)

	msgs := svc.params.Messages.Value
	require.Len(t, msgs, 4)
	assert.IsType(t, openai.ChatCompletionSystemMessageParam{}, msgs[0])
	assert.IsType(t, openai.ChatCompletionUserMessageParam{}, msgs[1])
	assert.IsType(t, openai.ChatCompletionAssistantMessageParam{}, msgs[2])
	assert.IsType(t, openai.ChatCompletionUserMessageParam{}, msgs[3])
}

func TestComplete_NoSystemPrompt(t *testing.T) {
	msgs := toOpenAIMessages("  ", []models.Message{{Role: models.RoleUser, Content: "x"}})
	require.Len(t, msgs, 1)
	assert.IsType(t, openai.ChatCompletionUserMessageParam{}, msgs[0])
}

func TestComplete_NoChoices(t *testing.T) {
	svc := &mockChatCompletionService{
		NewFunc: func(ctx context.Context, body openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
			return &openai.ChatCompletion{}, nil
		},
	}

	_, err := NewWithService(svc, "m").Complete(context.Background(), "sys", nil)

	assert.ErrorIs(t, err, models.ErrEmptyResponse)
}

func TestComplete_TransportError(t *testing.T) {
	boom := errors.New("connection reset")
	svc := &mockChatCompletionService{
		NewFunc: func(ctx context.Context, body openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
			return nil, boom
		},
	}

	_, err := NewWithService(svc, "m").Complete(context.Background(), "sys", nil)

	assert.ErrorIs(t, err, boom)
	var providerErr *models.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, models.ErrorCodeNetwork, providerErr.Code)
}

func TestNewOpenAIProvider_RequiresKey(t *testing.T) {
	_, err := NewOpenAIProvider("", "m")
	assert.ErrorIs(t, err, models.ErrMissingAPIKey)

	p, err := NewOpenAIProvider("sk-test", "m")
	require.NoError(t, err)
	assert.Equal(t, "m", p.Model())
}
