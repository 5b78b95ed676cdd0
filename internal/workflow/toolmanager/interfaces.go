package toolmanager

import (
	"context"

	"github.com/Cyclone1070/gptcode/internal/tool"
)

// toolImpl defines the interface for individual tools.
type toolImpl interface {
	// Name returns the tool's identifier.
	Name() string

	// Declaration returns the tool's argument contract for the model.
	Declaration() tool.Declaration

	// SideEffects reports whether dry-run replaces the live executor.
	SideEffects() bool

	// Run decodes args and executes the tool, returning result text.
	Run(ctx context.Context, args map[string]any, dryRun bool) string
}
