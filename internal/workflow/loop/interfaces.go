package loop

import (
	"context"

	"github.com/Cyclone1070/gptcode/internal/action"
	"github.com/Cyclone1070/gptcode/internal/provider/models"
)

// turnRunner performs the model call and the dispatch-and-feed step.
type turnRunner interface {
	// Ask sends the current transcript to the model.
	Ask(ctx context.Context) (string, error)

	// Execute dispatches a proposal and records its result.
	Execute(ctx context.Context, p action.Proposal) string
}

// conversation is the session surface the loop writes to.
type conversation interface {
	Add(role models.Role, content string)
	SetAuto(on bool) error
}
