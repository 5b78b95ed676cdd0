package repl

import (
	"context"

	"github.com/Cyclone1070/gptcode/internal/config"
	"github.com/Cyclone1070/gptcode/internal/workflow"
)

// userInterface is the subset of ui.UserInterface the REPL drives.
type userInterface interface {
	workflow.Sink
	ReadInput(ctx context.Context, prompt string) (string, error)
	WriteInfo(text string)
}

// gate is the confirmation gate: free text goes to the model, :yes and
// :no answer a pending proposal.
type gate interface {
	Submit(ctx context.Context, text string) error
	Confirm(ctx context.Context) error
	Reject() error
}

// modes holds the session's toggles.
type modes interface {
	DryRun() bool
	SetDryRun(on bool)
	Auto() bool
	SetAuto(on bool) error
}

// settingsStore persists configuration changes.
type settingsStore interface {
	Update(mutate func(*config.Config)) (*config.Config, error)
}

type pathResolver interface {
	Abs(path string) (string, error)
	Cwd() (string, error)
}
