package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Cyclone1070/gptcode/internal/config"
	"github.com/Cyclone1070/gptcode/internal/orchestrator"
	"github.com/Cyclone1070/gptcode/internal/session"
	"github.com/Cyclone1070/gptcode/internal/ui"
	"github.com/Cyclone1070/gptcode/internal/workflow"
	"go.uber.org/zap"
)

// Prompt is shown before every line of operator input.
const Prompt = "you> "

// HelpText lists the interactive commands.
const HelpText = `:help - this help
:cwd - print the current directory
:cd <path> - change directory
:yes / :no - allow or reject the pending action
:dryrun [on|off] - simulate writes and commands (persisted)
:auto [on|off] - run proposed actions without asking (careful!)
:quit - exit`

// REPL is the interactive driver. Colon commands are handled locally;
// anything else is sent to the model through the gate.
type REPL struct {
	ui       userInterface
	gate     gate
	modes    modes
	store    settingsStore
	resolver pathResolver
	chdir    func(string) error
	logger   *zap.Logger
}

// New creates a REPL with injected dependencies.
func New(u userInterface, g gate, m modes, store settingsStore, resolver pathResolver, logger *zap.Logger) *REPL {
	if u == nil {
		panic("ui is required")
	}
	if g == nil {
		panic("gate is required")
	}
	if m == nil {
		panic("modes is required")
	}
	if store == nil {
		panic("store is required")
	}
	if resolver == nil {
		panic("resolver is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &REPL{
		ui:       u,
		gate:     g,
		modes:    m,
		store:    store,
		resolver: resolver,
		chdir:    os.Chdir,
		logger:   logger,
	}
}

// Run reads and handles lines until :quit, end of input, Ctrl+C or
// cancellation of ctx. Model failures are reported and the session goes
// on; only a broken input stream is returned as an error.
func (r *REPL) Run(ctx context.Context) error {
	for {
		line, err := r.ui.ReadInput(ctx, Prompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, ui.ErrInterrupted) || ctx.Err() != nil {
				r.logger.Info("interactive session ended", zap.String("reason", err.Error()))
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") {
			if quit := r.handleCommand(ctx, line); quit {
				r.logger.Info("interactive session ended", zap.String("reason", "quit"))
				return nil
			}
			continue
		}

		r.report(ctx, r.gate.Submit(ctx, line))
	}
}

// handleCommand runs one colon command and reports whether to quit.
func (r *REPL) handleCommand(ctx context.Context, line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	r.logger.Debug("command", zap.String("name", name), zap.String("arg", arg))

	switch name {
	case ":quit":
		return true
	case ":help":
		r.ui.WriteInfo(HelpText)
	case ":cwd":
		r.printCwd()
	case ":cd":
		r.changeDir(arg)
	case ":yes":
		r.report(ctx, r.gate.Confirm(ctx))
	case ":no":
		r.report(ctx, r.gate.Reject())
	case ":dryrun":
		r.setDryRun(arg)
	case ":auto":
		r.setAuto(arg)
	default:
		r.notice(fmt.Sprintf("unknown command: %s (see :help)", name))
	}
	return false
}

func (r *REPL) printCwd() {
	cwd, err := r.resolver.Cwd()
	if err != nil {
		r.ui.Emit(workflow.ErrorEvent{Err: fmt.Errorf("cwd: %w", err)})
		return
	}
	r.ui.WriteInfo(cwd)
}

func (r *REPL) changeDir(arg string) {
	if arg == "" {
		r.notice("usage: :cd <path>")
		return
	}
	target, err := r.resolver.Abs(arg)
	if err == nil {
		err = r.chdir(target)
	}
	if err != nil {
		r.ui.Emit(workflow.ErrorEvent{Err: fmt.Errorf("cd: %w", err)})
		return
	}
	r.logger.Info("changed directory", zap.String("dir", target))
	r.printOK()
}

func (r *REPL) printOK() {
	cwd, err := r.resolver.Cwd()
	if err != nil {
		r.ui.Emit(workflow.ErrorEvent{Err: fmt.Errorf("cwd: %w", err)})
		return
	}
	r.ui.WriteInfo("OK: " + cwd)
}

func (r *REPL) setDryRun(arg string) {
	if arg == "" {
		r.ui.WriteInfo(fmt.Sprintf("dryrun=%t", r.modes.DryRun()))
		return
	}
	on, ok := parseSwitch(arg)
	if !ok {
		r.notice("usage: :dryrun [on|off]")
		return
	}

	r.modes.SetDryRun(on)
	if _, err := r.store.Update(func(cfg *config.Config) { cfg.DryRun = on }); err != nil {
		r.logger.Warn("persisting dryrun failed", zap.Error(err))
		r.ui.Emit(workflow.ErrorEvent{Err: fmt.Errorf("save config: %w", err)})
	}
	r.ui.WriteInfo(fmt.Sprintf("dryrun=%t", on))
}

func (r *REPL) setAuto(arg string) {
	if arg == "" {
		r.ui.WriteInfo(fmt.Sprintf("auto=%t", r.modes.Auto()))
		return
	}
	on, ok := parseSwitch(arg)
	if !ok {
		r.notice("usage: :auto [on|off]")
		return
	}

	if err := r.modes.SetAuto(on); err != nil {
		if errors.Is(err, session.ErrPendingWithAuto) {
			r.notice("answer the pending action with :yes or :no before enabling auto")
			return
		}
		r.ui.Emit(workflow.ErrorEvent{Err: err})
		return
	}
	r.ui.WriteInfo(fmt.Sprintf("auto=%t", on))
}

// report shows a gate error. Gate misuse is a notice, anything else an
// error; none of them end the session.
func (r *REPL) report(ctx context.Context, err error) {
	switch {
	case err == nil:
	case errors.Is(err, orchestrator.ErrNoPending):
		r.notice("no pending action")
	case errors.Is(err, orchestrator.ErrAwaitingConfirmation):
		r.notice(err.Error())
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		r.notice("cancelled")
	default:
		r.ui.Emit(workflow.ErrorEvent{Err: err})
	}
}

func (r *REPL) notice(text string) {
	r.ui.Emit(workflow.NoticeEvent{Text: text})
}

func parseSwitch(arg string) (bool, bool) {
	switch strings.ToLower(arg) {
	case "on":
		return true, true
	case "off":
		return false, true
	}
	return false, false
}
