package provider

import (
	"context"

	"github.com/Cyclone1070/gptcode/internal/provider/models"
)

// Provider represents the interface to the Language Model.
// Complete receives the full transcript on every call and returns the
// reply text verbatim.
type Provider interface {
	Complete(ctx context.Context, systemPrompt string, transcript []models.Message) (string, error)
	Model() string
}
