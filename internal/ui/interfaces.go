package ui

import (
	"context"

	"github.com/Cyclone1070/gptcode/internal/workflow"
)

// UserInterface defines the contract for all user interactions.
// It follows a Read/Write pattern for clarity, and renders workflow
// events as they are emitted.
//
// Context Usage:
// ReadInput accepts context.Context for cancellation support. If the
// context is cancelled, implementations return immediately with its error.
type UserInterface interface {
	workflow.Sink

	// ReadInput prompts the operator for one line of text.
	// It returns io.EOF when input is exhausted and ErrInterrupted on Ctrl+C.
	ReadInput(ctx context.Context, prompt string) (string, error)

	// WriteStatus displays ephemeral status updates (e.g., "thinking")
	WriteStatus(phase string, message string)

	// WriteMessage displays the agent's actual text responses
	WriteMessage(content string)

	// WriteInfo displays plain operator-facing text such as help or
	// command acknowledgements.
	WriteInfo(text string)
}
