package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/Cyclone1070/gptcode/internal/config"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Request describes one process invocation. Command is an argv list and
// is never passed through a shell by the executor itself.
type Request struct {
	Command []string
	Dir     string
	Env     []string // nil inherits the current environment
	Stdin   string
	Timeout time.Duration // zero means no timeout
}

// Result represents the outcome of a command execution.
type Result struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
}

// OSCommandExecutor implements command execution using os/exec for real system commands.
type OSCommandExecutor struct {
	maxOutput int
	grace     time.Duration
	logger    *zap.Logger
}

// NewOSCommandExecutor creates a new OSCommandExecutor with injected config.
func NewOSCommandExecutor(cfg *config.Config, logger *zap.Logger) *OSCommandExecutor {
	if cfg == nil {
		panic("cfg is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OSCommandExecutor{
		maxOutput: int(cfg.Tools.MaxCommandOutputSize),
		grace:     time.Duration(cfg.Tools.GracefulShutdownMs) * time.Millisecond,
		logger:    logger,
	}
}

// LookPath resolves a binary on PATH.
func (f *OSCommandExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes req and waits for it to finish.
//
// A nonzero exit status is not an error: the Result carries the code and
// the captured streams. Errors are reserved for launch failures
// (*StartError), timeouts (ErrTimeout, with partial output) and
// cancellation of ctx.
func (f *OSCommandExecutor) Run(ctx context.Context, req Request) (*Result, error) {
	if len(req.Command) == 0 {
		return nil, ErrEmptyCommand
	}
	if req.Timeout < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeout, req.Timeout)
	}

	log := f.logger.With(zap.Strings("argv", req.Command), zap.String("dir", req.Dir))

	// We don't use CommandContext's timeout here because we want to handle graceful shutdown
	cmd := exec.Command(req.Command[0], req.Command[1:]...)
	cmd.Dir = req.Dir
	cmd.Env = req.Env
	if req.Stdin != "" {
		cmd.Stdin = strings.NewReader(req.Stdin)
	}
	setProcessGroup(cmd)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &StartError{Cmd: req.Command[0], Cause: err}
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, &StartError{Cmd: req.Command[0], Cause: err}
	}

	if err := cmd.Start(); err != nil {
		log.Debug("process launch failed", zap.Error(err))
		return nil, &StartError{Cmd: req.Command[0], Cause: err}
	}
	started := time.Now()

	// Start output collection concurrently so it doesn't block the timeout select
	stdoutCollector := newCollector(f.maxOutput, binarySampleSize)
	stderrCollector := newCollector(f.maxOutput, binarySampleSize)
	var collect errgroup.Group
	collect.Go(func() error {
		_, err := io.Copy(stdoutCollector, stdoutPipe)
		return err
	})
	collect.Go(func() error {
		_, err := io.Copy(stderrCollector, stderrPipe)
		return err
	})

	// Pipes must be drained before Wait closes them.
	done := make(chan error, 1)
	go func() {
		_ = collect.Wait()
		done <- cmd.Wait()
	}()

	var timeoutC <-chan time.Time
	if req.Timeout > 0 {
		timer := time.NewTimer(req.Timeout)
		defer timer.Stop()
		timeoutC = timer.C
	}

	var execErr error
	select {
	case execErr = <-done:
	case <-ctx.Done():
		killProcessGroup(cmd)
		<-done
		execErr = ctx.Err()
	case <-timeoutC:
		// Try graceful shutdown
		interruptProcessGroup(cmd)
		select {
		case <-done:
		case <-time.After(f.grace):
			killProcessGroup(cmd)
			<-done
		}
		execErr = ErrTimeout
	}

	result := &Result{
		Stdout:    stdoutCollector.String(),
		Stderr:    stderrCollector.String(),
		Truncated: stdoutCollector.Truncated() || stderrCollector.Truncated(),
	}

	var exitErr *exec.ExitError
	switch {
	case execErr == nil:
	case errors.As(execErr, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		execErr = nil
	default:
		result.ExitCode = -1
	}

	log.Debug("process finished",
		zap.Int("exit_code", result.ExitCode),
		zap.Duration("elapsed", time.Since(started)),
		zap.Bool("truncated", result.Truncated),
		zap.Error(execErr),
	)

	return result, execErr
}

// MergeEnv overlays overrides on base (KEY=VALUE entries), later keys win.
func MergeEnv(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return base
	}
	merged := make([]string, 0, len(base)+len(overrides))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if _, ok := overrides[key]; ok {
			continue
		}
		merged = append(merged, kv)
	}
	for k, v := range overrides {
		merged = append(merged, k+"="+v)
	}
	return merged
}
