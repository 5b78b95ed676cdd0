package patch

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/Cyclone1070/gptcode/internal/config"
	"github.com/Cyclone1070/gptcode/internal/tool"
	"github.com/Cyclone1070/gptcode/internal/tool/service/executor"
	"go.uber.org/zap"
)

const applyPatchName = "apply_patch"

var ErrPatchRequired = errors.New("patch is required")

// ApplyPatchRequest is the argument record of the apply_patch tool.
type ApplyPatchRequest struct {
	Patch string `json:"patch"`
}

func (r *ApplyPatchRequest) Validate() error {
	if strings.TrimSpace(r.Patch) == "" {
		return ErrPatchRequired
	}
	return nil
}

type commandExecutor interface {
	Run(ctx context.Context, req executor.Request) (*executor.Result, error)
}

// rootFinder locates the repository root for a directory.
type rootFinder interface {
	RootOr(dir string) string
}

// ApplyPatchTool feeds a unified diff to git apply -p0 at the repository
// root of the current directory.
type ApplyPatchTool struct {
	commandExecutor commandExecutor
	roots           rootFinder
	getwd           func() (string, error)
	config          *config.Config
	logger          *zap.Logger
}

// NewApplyPatchTool creates an ApplyPatchTool with injected dependencies.
func NewApplyPatchTool(commandExecutor commandExecutor, roots rootFinder, cfg *config.Config, logger *zap.Logger) *ApplyPatchTool {
	if commandExecutor == nil {
		panic("commandExecutor is required")
	}
	if roots == nil {
		panic("roots is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplyPatchTool{
		commandExecutor: commandExecutor,
		roots:           roots,
		getwd:           os.Getwd,
		config:          cfg,
		logger:          logger,
	}
}

// Tool wraps the ApplyPatchTool for the dispatch registry.
func (t *ApplyPatchTool) Tool() tool.Tool {
	return tool.NewSideEffecting(tool.Declaration{
		Name:        applyPatchName,
		Description: "Apply a unified diff with git apply -p0 at the repository root. Paths in the diff must be relative to that root without a/ b/ prefixes.",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"patch": {Type: tool.TypeString, Description: "Unified diff text."},
			},
			Required: []string{"patch"},
		},
	}, t.Run, t.DryRun)
}

func (t *ApplyPatchTool) root() string {
	cwd, err := t.getwd()
	if err != nil {
		return "."
	}
	return t.roots.RootOr(cwd)
}

// DryRun names the directory the patch would be applied in.
func (t *ApplyPatchTool) DryRun(req ApplyPatchRequest) string {
	return tool.DryRunf(applyPatchName, "would apply patch (git apply -p0) in %s", t.root())
}

// Run applies the patch. A failing git apply reports its exit code and
// stderr verbatim; a missing git binary has its own message.
func (t *ApplyPatchTool) Run(ctx context.Context, req ApplyPatchRequest) string {
	root := t.root()
	timeout := time.Duration(t.config.Tools.PatchTimeout) * time.Second

	t.logger.Info("apply patch", zap.String("root", root), zap.Int("bytes", len(req.Patch)))

	res, err := t.commandExecutor.Run(ctx, executor.Request{
		Command: []string{"git", "apply", "-p0", "-"},
		Dir:     root,
		Stdin:   req.Patch,
		Timeout: timeout,
	})
	switch {
	case executor.IsNotFound(err):
		return tool.Reportf(applyPatchName, "git not found, install git to apply patches")
	case err != nil:
		return tool.ProcessReport(applyPatchName, "git apply -p0", res, err, timeout)
	case res.ExitCode == 0:
		return tool.Reportf(applyPatchName, "patch applied in %s", root)
	default:
		return tool.Reportf(applyPatchName, "failed (rc=%d)\n%s", res.ExitCode, res.Stderr)
	}
}
