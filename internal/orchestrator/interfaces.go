package orchestrator

import (
	"context"

	"github.com/Cyclone1070/gptcode/internal/action"
	"github.com/Cyclone1070/gptcode/internal/provider/models"
	"github.com/Cyclone1070/gptcode/internal/tool"
)

// llmProvider produces the model's reply to the transcript.
type llmProvider interface {
	Complete(ctx context.Context, systemPrompt string, transcript []models.Message) (string, error)
	Model() string
}

// toolManager manages tool storage and execution.
type toolManager interface {
	// Declarations returns all tool contracts for the system prompt.
	Declarations() []tool.Declaration

	// Dispatch runs a proposal and returns its result text.
	Dispatch(ctx context.Context, p action.Proposal, dryRun bool) string
}
