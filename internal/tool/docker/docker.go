package docker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/Cyclone1070/gptcode/internal/config"
	"github.com/Cyclone1070/gptcode/internal/tool"
	"github.com/Cyclone1070/gptcode/internal/tool/service/executor"
	"go.uber.org/zap"
)

const dockerName = "docker"

// logTailLines bounds compose logs output.
const logTailLines = "200"

// Actions lists the compose operations the tool accepts.
var Actions = []string{"up", "down", "build", "logs"}

// ComposeRequest is the argument record of the docker tool.
type ComposeRequest struct {
	Action  string `json:"action"`
	Service string `json:"service"`
}

func (r *ComposeRequest) Validate() error {
	if !slices.Contains(Actions, r.Action) {
		return fmt.Errorf("action must be one of %s, got %q", strings.Join(Actions, ", "), r.Action)
	}
	return nil
}

// args builds the compose subcommand. down always acts on the whole project.
func (r ComposeRequest) args() []string {
	var args []string
	switch r.Action {
	case "up":
		args = []string{"up", "-d"}
	case "down":
		return []string{"down"}
	case "build":
		args = []string{"build"}
	case "logs":
		args = []string{"logs", "--no-log-prefix", "--tail", logTailLines}
	}
	if r.Service != "" {
		args = append(args, r.Service)
	}
	return args
}

type commandExecutor interface {
	Run(ctx context.Context, req executor.Request) (*executor.Result, error)
}

// ComposeTool drives docker compose in the current directory.
type ComposeTool struct {
	commandExecutor commandExecutor
	engines         *engineResolver
	config          *config.Config
	logger          *zap.Logger
}

// NewComposeTool creates a ComposeTool with injected dependencies.
func NewComposeTool(commandExecutor commandExecutor, cfg *config.Config, logger *zap.Logger) *ComposeTool {
	if commandExecutor == nil {
		panic("commandExecutor is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComposeTool{
		commandExecutor: commandExecutor,
		engines: &engineResolver{
			commandExecutor: commandExecutor,
			lookPath:        exec.LookPath,
			getenv:          os.Getenv,
		},
		config: cfg,
		logger: logger,
	}
}

// Tool wraps the ComposeTool for the dispatch registry.
func (t *ComposeTool) Tool() tool.Tool {
	return tool.NewSideEffecting(tool.Declaration{
		Name:        dockerName,
		Description: "Run docker compose in the current directory: up (detached), down, build or logs (last 200 lines).",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"action":  {Type: tool.TypeString, Enum: Actions},
				"service": {Type: tool.TypeString, Description: "Optional compose service name."},
			},
			Required: []string{"action"},
		},
	}, t.Run, t.DryRun)
}

// DryRun prints the plugin form of the command. No engine probe is made.
func (t *ComposeTool) DryRun(req ComposeRequest) string {
	return tool.DryRunf(dockerName, "would run: docker compose %s", strings.Join(req.args(), " "))
}

// Run resolves the compose engine, executes the action and reports rc and
// both streams.
func (t *ComposeTool) Run(ctx context.Context, req ComposeRequest) string {
	prefix, err := t.engines.resolve(ctx)
	if errors.Is(err, ErrNoComposeEngine) {
		return tool.Reportf(dockerName, "launch failed: %v (install the docker compose plugin or docker-compose)", err)
	}
	if err != nil {
		return tool.ProcessReport(dockerName, "docker compose version", nil, err, probeTimeout)
	}

	argv := append(slices.Clone(prefix), req.args()...)
	timeout := time.Duration(t.config.Tools.DockerTimeout) * time.Second

	t.logger.Info("compose", zap.Strings("argv", argv))

	res, err := t.commandExecutor.Run(ctx, executor.Request{Command: argv, Timeout: timeout})
	return tool.ProcessReport(dockerName, strings.Join(argv, " "), res, err, timeout)
}
