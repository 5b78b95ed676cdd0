// Package main provides the gptcode command: a terminal assistant that lets
// a language model propose file, shell, patch, service and container actions
// and runs them after the operator confirms.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Cyclone1070/gptcode/internal/config"
	"github.com/Cyclone1070/gptcode/internal/logging"
	"github.com/Cyclone1070/gptcode/internal/orchestrator"
	"github.com/Cyclone1070/gptcode/internal/prereq"
	"github.com/Cyclone1070/gptcode/internal/provider"
	"github.com/Cyclone1070/gptcode/internal/repl"
	"github.com/Cyclone1070/gptcode/internal/session"
	"github.com/Cyclone1070/gptcode/internal/tool"
	"github.com/Cyclone1070/gptcode/internal/tool/docker"
	"github.com/Cyclone1070/gptcode/internal/tool/file"
	"github.com/Cyclone1070/gptcode/internal/tool/patch"
	"github.com/Cyclone1070/gptcode/internal/tool/pytest"
	"github.com/Cyclone1070/gptcode/internal/tool/service/executor"
	"github.com/Cyclone1070/gptcode/internal/tool/service/fs"
	"github.com/Cyclone1070/gptcode/internal/tool/service/git"
	"github.com/Cyclone1070/gptcode/internal/tool/service/path"
	"github.com/Cyclone1070/gptcode/internal/tool/shell"
	"github.com/Cyclone1070/gptcode/internal/tool/systemd"
	"github.com/Cyclone1070/gptcode/internal/ui"
	uiservices "github.com/Cyclone1070/gptcode/internal/ui/services"
	"github.com/Cyclone1070/gptcode/internal/ui/views"
	"github.com/Cyclone1070/gptcode/internal/workflow/loop"
	"github.com/Cyclone1070/gptcode/internal/workflow/toolmanager"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ErrNoAPIKey is returned when neither the config file nor the
// environment provides a credential.
var ErrNoAPIKey = errors.New("no API key configured")

// Dependencies holds the components required to run the application.
type Dependencies struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string

	Loader          *config.Loader
	CheckPrereqs    func(w io.Writer) error
	NewLogger       func(opts logging.Options) (*zap.Logger, error)
	ProviderFactory func(ctx context.Context, providerName, apiKey, model string) (provider.Provider, error)
	Getwd           func() (string, error)
}

func defaultDependencies() Dependencies {
	return Dependencies{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getenv: os.Getenv,
		Loader: config.NewLoader(),
		CheckPrereqs: func(w io.Writer) error {
			return prereq.NewChecker().Check(w, prereq.Defaults)
		},
		NewLogger:       logging.New,
		ProviderFactory: provider.New,
		Getwd:           os.Getwd,
	}
}

// options are the command-line flags of one invocation.
type options struct {
	headless bool
	goal     string
	auto     bool
	model    string
	dryRun   string
	provider string
	verbose  bool
}

func newRootCmd(deps Dependencies) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "gptcode",
		Short: "Operator-confirmed coding and operations assistant",
		Long: `gptcode talks to a language model that can list, read, write and tail files,
apply patches, run shell commands, manage systemd units, drive docker compose
and run pytest in the current project.

Side-effecting actions are shown first and only run after ":yes", unless auto
mode is on. Run without flags for the interactive prompt, or with
--headless --goal "..." to let the model work toward a goal on its own.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), deps, *opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.headless, "headless", false, "Run autonomously toward --goal without prompting")
	flags.StringVar(&opts.goal, "goal", "", "Goal for --headless mode")
	flags.BoolVar(&opts.auto, "auto", false, "Run proposed actions without asking for confirmation")
	flags.StringVar(&opts.model, "model", "", "Model for this session (overrides the config file)")
	flags.StringVar(&opts.dryRun, "dryrun", "", "Simulate side effects for this session: on|off")
	flags.StringVar(&opts.provider, "provider", "", "Model backend for this session: openai|gemini|anthropic")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.SetIn(deps.Stdin)
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)
	return cmd
}

func (o options) validate() error {
	if o.headless && o.goal == "" {
		return errors.New("--goal is required with --headless")
	}
	if o.dryRun != "" && o.dryRun != "on" && o.dryRun != "off" {
		return fmt.Errorf("--dryrun must be on or off, got %q", o.dryRun)
	}
	if o.provider != "" {
		cfg := config.DefaultConfig()
		cfg.Provider = o.provider
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("--provider: %w", err)
		}
	}
	return nil
}

func (o options) overrides() config.Overrides {
	ov := config.Overrides{Model: o.model}
	if o.dryRun != "" {
		on := o.dryRun == "on"
		ov.DryRun = &on
	}
	return ov
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd(defaultDependencies()).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}
}

// run performs startup in order: prerequisites, configuration, logging,
// first-run setup, credential, model backend, tools. It then hands over to
// the headless loop or the interactive prompt.
func run(ctx context.Context, deps Dependencies, opts options) error {
	if err := deps.CheckPrereqs(deps.Stderr); err != nil {
		return err
	}

	store := config.NewStore(deps.Loader)
	configured, err := deps.Loader.Exists()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if opts.provider != "" && opts.provider != cfg.Provider {
		// The persisted model belongs to the persisted backend.
		cfg.Provider = opts.provider
		cfg.Model = ""
	}

	logger, err := deps.NewLogger(logOptions(deps.Loader, cfg, opts.verbose))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	console := ui.NewConsole(deps.Stdin, deps.Stdout, uiservices.NewGlamourRenderer())

	if !configured {
		if cfg, err = runSetup(ctx, console, store, cfg.Provider, deps.Getenv); err != nil {
			return err
		}
	}

	config.ApplyEnv(cfg, deps.Getenv)
	apiKey := config.ResolveAPIKey(cfg, deps.Getenv)
	if apiKey == "" {
		configPath, _ := deps.Loader.Path()
		return fmt.Errorf("%w: set api_key in %s or export %s", ErrNoAPIKey, configPath, config.APIKeyEnv(cfg.Provider))
	}

	settings := config.ResolveSession(cfg, opts.overrides())
	p, err := deps.ProviderFactory(ctx, cfg.Provider, apiKey, settings.Model)
	if err != nil {
		return fmt.Errorf("failed to initialize %s provider: %w", cfg.Provider, err)
	}

	sess := session.New(settings.Model, settings.DryRun, opts.auto)
	logger = logger.With(zap.String("session", sess.ID()))
	logger.Info("session started",
		zap.String("provider", cfg.Provider),
		zap.String("model", settings.Model),
		zap.Bool("dryrun", settings.DryRun),
		zap.Bool("auto", opts.auto),
		zap.Bool("headless", opts.headless),
	)

	tm := toolmanager.NewToolManager(logger)
	for _, t := range createTools(cfg, logger) {
		tm.Register(t)
	}
	orch := orchestrator.New(p, tm, sess, console, cfg, logger)

	if opts.headless {
		return runHeadless(ctx, console, orch, sess, cfg, opts.goal, logger)
	}

	cwd, err := deps.Getwd()
	if err != nil {
		cwd = "."
	}
	console.WriteBanner(views.Banner{
		Model:  sess.Model(),
		DryRun: sess.DryRun(),
		Auto:   sess.Auto(),
		Dir:    cwd,
		Help:   repl.HelpText,
	})
	return repl.New(console, orch, sess, store, path.NewResolver(), logger).Run(ctx)
}

func runHeadless(ctx context.Context, console *ui.Console, orch *orchestrator.Orchestrator, sess *session.Session, cfg *config.Config, goal string, logger *zap.Logger) error {
	console.WriteInfo(fmt.Sprintf("[headless] auto mode started: %s", goal))

	outcome, err := loop.NewLoop(orch, sess, console, cfg.Tools.HeadlessMaxSteps, logger).Run(ctx, goal)
	if err != nil {
		return fmt.Errorf("headless run: %w", err)
	}
	logger.Info("headless run finished", zap.String("outcome", fmt.Sprintf("%T", outcome)))
	return nil
}

func logOptions(loader *config.Loader, cfg *config.Config, verbose bool) logging.Options {
	file := cfg.Log.File
	if file == "" {
		if dir, err := loader.Dir(); err == nil {
			file = filepath.Join(dir, config.LogFile)
		}
	}
	return logging.Options{Level: cfg.Log.Level, File: file, Verbose: verbose}
}

// createTools builds the fixed tool set over the real filesystem and
// process executor.
func createTools(cfg *config.Config, logger *zap.Logger) []tool.Tool {
	osFS := fs.NewOSFileSystem()
	paths := path.NewResolver()
	commandExecutor := executor.NewOSCommandExecutor(cfg, logger)
	roots := git.NewRootFinder()

	return []tool.Tool{
		file.NewListDirTool(osFS, paths).Tool(),
		file.NewReadFileTool(osFS, paths, cfg).Tool(),
		file.NewWriteFileTool(osFS, paths, cfg).Tool(),
		file.NewTailFileTool(osFS, paths, cfg).Tool(),
		patch.NewApplyPatchTool(commandExecutor, roots, cfg, logger).Tool(),
		shell.NewRunTool(commandExecutor, cfg, logger).Tool(),
		systemd.NewSystemctlTool(commandExecutor, cfg, logger).Tool(),
		docker.NewComposeTool(commandExecutor, cfg, logger).Tool(),
		pytest.NewPytestTool(commandExecutor, cfg, logger).Tool(),
	}
}
