package pytest

import (
	"context"
	"strings"
	"time"

	"github.com/Cyclone1070/gptcode/internal/config"
	"github.com/Cyclone1070/gptcode/internal/tool"
	"github.com/Cyclone1070/gptcode/internal/tool/service/executor"
	"go.uber.org/zap"
)

const pytestName = "pytest"

// PytestRequest is the argument record of the pytest tool.
type PytestRequest struct {
	Path string `json:"path"`
	K    string `json:"k"`
}

func (r PytestRequest) argv() []string {
	path := r.Path
	if path == "" {
		path = "."
	}
	argv := []string{"pytest", "-q", path}
	if r.K != "" {
		argv = append(argv, "-k", r.K)
	}
	return argv
}

type commandExecutor interface {
	Run(ctx context.Context, req executor.Request) (*executor.Result, error)
}

// PytestTool runs the Python test suite of the current project.
type PytestTool struct {
	commandExecutor commandExecutor
	config          *config.Config
	logger          *zap.Logger
}

// NewPytestTool creates a PytestTool with injected dependencies.
func NewPytestTool(commandExecutor commandExecutor, cfg *config.Config, logger *zap.Logger) *PytestTool {
	if commandExecutor == nil {
		panic("commandExecutor is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PytestTool{commandExecutor: commandExecutor, config: cfg, logger: logger}
}

// Tool wraps the PytestTool for the dispatch registry.
func (t *PytestTool) Tool() tool.Tool {
	return tool.NewSideEffecting(tool.Declaration{
		Name:        pytestName,
		Description: "Run pytest -q on a path, optionally filtered with -k.",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"path": {Type: tool.TypeString, Description: "Test path, default \".\"."},
				"k":    {Type: tool.TypeString, Description: "pytest -k expression."},
			},
		},
	}, t.Run, t.DryRun)
}

// DryRun prints the command line that would be executed.
func (t *PytestTool) DryRun(req PytestRequest) string {
	return tool.DryRunf(pytestName, "would run: %s", strings.Join(req.argv(), " "))
}

// Run executes pytest under the default tool timeout.
func (t *PytestTool) Run(ctx context.Context, req PytestRequest) string {
	argv := req.argv()
	timeout := time.Duration(t.config.Tools.DefaultTimeout) * time.Second

	t.logger.Info("pytest", zap.Strings("argv", argv))

	res, err := t.commandExecutor.Run(ctx, executor.Request{Command: argv, Timeout: timeout})
	if executor.IsNotFound(err) {
		return tool.Reportf(pytestName, "pytest not found, install it in the project environment (pip install pytest)")
	}
	return tool.ProcessReport(pytestName, strings.Join(argv, " "), res, err, timeout)
}
