package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Cyclone1070/gptcode/internal/tool/service/executor"
)

// Tag is the result prefix of a live tool run.
func Tag(name string) string { return "[" + name + "]" }

// DryRunTag is the result prefix of a dry-run rendering.
func DryRunTag(name string) string { return "[" + name + ":DRYRUN]" }

// Reportf formats a single result line under the tool's tag.
func Reportf(name, format string, a ...any) string {
	return Tag(name) + " " + fmt.Sprintf(format, a...)
}

// DryRunf formats a dry-run description under the tool's dry-run tag.
func DryRunf(name, format string, a ...any) string {
	return DryRunTag(name) + " " + fmt.Sprintf(format, a...)
}

// ProcessReport renders the outcome of a process-invoking tool.
//
// A completed process always yields rc plus both streams, whatever its exit
// code. Launch failures (missing binary, timeout, cancellation) get their
// own text so the model can tell them apart from a failing command.
func ProcessReport(name, display string, res *executor.Result, err error, timeout time.Duration) string {
	switch {
	case err == nil:
	case errors.Is(err, executor.ErrTimeout):
		msg := Reportf(name, "timeout after %ds: %s", int(timeout.Seconds()), display)
		if res != nil && (res.Stdout != "" || res.Stderr != "") {
			msg += "\n" + streams(res)
		}
		return msg
	case executor.IsNotFound(err):
		var startErr *executor.StartError
		errors.As(err, &startErr)
		return Reportf(name, "launch failed: %s not found", startErr.Cmd)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Reportf(name, "cancelled: %s", display)
	default:
		return Reportf(name, "launch failed: %v", err)
	}

	return Reportf(name, "rc=%d\n%s", res.ExitCode, streams(res))
}

func streams(res *executor.Result) string {
	var b strings.Builder
	b.WriteString("STDOUT:\n")
	b.WriteString(res.Stdout)
	b.WriteString("\nSTDERR:\n")
	b.WriteString(res.Stderr)
	if res.Truncated {
		b.WriteString("\n(output truncated)")
	}
	return b.String()
}
