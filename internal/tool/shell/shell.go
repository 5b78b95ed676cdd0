package shell

import (
	"context"
	"os"
	"time"

	"github.com/Cyclone1070/gptcode/internal/config"
	"github.com/Cyclone1070/gptcode/internal/tool"
	"github.com/Cyclone1070/gptcode/internal/tool/service/executor"
	"go.uber.org/zap"
)

const runName = "run"

// RunTool executes a command line through sh -c in the current directory.
type RunTool struct {
	commandExecutor commandExecutor
	config          *config.Config
	environ         func() []string
	logger          *zap.Logger
}

// NewRunTool creates a RunTool with injected dependencies.
func NewRunTool(commandExecutor commandExecutor, cfg *config.Config, logger *zap.Logger) *RunTool {
	if commandExecutor == nil {
		panic("commandExecutor is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RunTool{
		commandExecutor: commandExecutor,
		config:          cfg,
		environ:         os.Environ,
		logger:          logger,
	}
}

// Tool wraps the RunTool for the dispatch registry.
func (t *RunTool) Tool() tool.Tool {
	return tool.NewSideEffecting(tool.Declaration{
		Name:        runName,
		Description: "Run a shell command line with sh -c in the current directory.",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"cmd":     {Type: tool.TypeString, Description: "Command line passed to sh -c."},
				"timeout": {Type: tool.TypeInteger, Description: "Timeout in seconds."},
				"env": {
					Type:        tool.TypeObject,
					Description: "Extra environment variables merged over the inherited environment.",
				},
			},
			Required: []string{"cmd"},
		},
	}, t.Run, t.DryRun)
}

func (t *RunTool) timeout(req RunRequest) int {
	if req.Timeout != nil {
		return *req.Timeout
	}
	return t.config.Tools.DefaultTimeout
}

// DryRun describes the command without spawning it.
func (t *RunTool) DryRun(req RunRequest) string {
	return tool.DryRunf(runName, "would run: %s (timeout=%ds)", req.Cmd, t.timeout(req))
}

// Run spawns the command and reports rc and both streams.
func (t *RunTool) Run(ctx context.Context, req RunRequest) string {
	timeout := time.Duration(t.timeout(req)) * time.Second

	t.logger.Info("run", zap.String("cmd", req.Cmd), zap.Duration("timeout", timeout), zap.Int("env_overrides", len(req.Env)))

	res, err := t.commandExecutor.Run(ctx, executor.Request{
		Command: []string{"sh", "-c", req.Cmd},
		Env:     executor.MergeEnv(t.environ(), req.Env),
		Timeout: timeout,
	})
	return tool.ProcessReport(runName, req.Cmd, res, err, timeout)
}
