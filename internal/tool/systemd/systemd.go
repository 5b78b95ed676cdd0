package systemd

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Cyclone1070/gptcode/internal/config"
	"github.com/Cyclone1070/gptcode/internal/tool"
	"github.com/Cyclone1070/gptcode/internal/tool/service/executor"
	"go.uber.org/zap"
)

const systemctlName = "systemctl"

const actionDaemonReload = "daemon-reload"

// Actions lists the systemctl verbs the tool accepts.
var Actions = []string{"status", "restart", "stop", "start", actionDaemonReload}

// SystemctlRequest is the argument record of the systemctl tool.
type SystemctlRequest struct {
	Action string `json:"action"`
	Unit   string `json:"unit"`
}

func (r *SystemctlRequest) Validate() error {
	if !slices.Contains(Actions, r.Action) {
		return fmt.Errorf("action must be one of %s, got %q", strings.Join(Actions, ", "), r.Action)
	}
	if r.Action != actionDaemonReload && strings.TrimSpace(r.Unit) == "" {
		return fmt.Errorf("unit is required for %s", r.Action)
	}
	return nil
}

// argv builds the command line. The unit is dropped for daemon-reload.
func (r SystemctlRequest) argv() []string {
	argv := []string{"systemctl", r.Action}
	if r.Action != actionDaemonReload {
		argv = append(argv, r.Unit)
	}
	return argv
}

type commandExecutor interface {
	Run(ctx context.Context, req executor.Request) (*executor.Result, error)
}

// SystemctlTool controls systemd units.
type SystemctlTool struct {
	commandExecutor commandExecutor
	config          *config.Config
	logger          *zap.Logger
}

// NewSystemctlTool creates a SystemctlTool with injected dependencies.
func NewSystemctlTool(commandExecutor commandExecutor, cfg *config.Config, logger *zap.Logger) *SystemctlTool {
	if commandExecutor == nil {
		panic("commandExecutor is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SystemctlTool{commandExecutor: commandExecutor, config: cfg, logger: logger}
}

// Tool wraps the SystemctlTool for the dispatch registry.
func (t *SystemctlTool) Tool() tool.Tool {
	return tool.NewSideEffecting(tool.Declaration{
		Name:        systemctlName,
		Description: "Run systemctl for a unit.",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"action": {Type: tool.TypeString, Enum: Actions},
				"unit":   {Type: tool.TypeString, Description: "Unit name; not used by daemon-reload."},
			},
			Required: []string{"action"},
		},
	}, t.Run, t.DryRun)
}

// DryRun prints the command line that would be executed.
func (t *SystemctlTool) DryRun(req SystemctlRequest) string {
	return tool.DryRunf(systemctlName, "would run: %s", strings.Join(req.argv(), " "))
}

// Run executes systemctl and reports rc and both streams.
func (t *SystemctlTool) Run(ctx context.Context, req SystemctlRequest) string {
	argv := req.argv()
	timeout := time.Duration(t.config.Tools.SystemctlTimeout) * time.Second

	t.logger.Info("systemctl", zap.Strings("argv", argv))

	res, err := t.commandExecutor.Run(ctx, executor.Request{Command: argv, Timeout: timeout})
	return tool.ProcessReport(systemctlName, strings.Join(argv, " "), res, err, timeout)
}
