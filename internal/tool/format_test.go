package tool

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/Cyclone1070/gptcode/internal/tool/service/executor"
	"github.com/stretchr/testify/assert"
)

func TestProcessReport(t *testing.T) {
	tests := []struct {
		name string
		res  *executor.Result
		err  error
		want string
	}{
		{
			name: "success",
			res:  &executor.Result{Stdout: "ok\n", ExitCode: 0},
			want: "[run] rc=0\nSTDOUT:\nok\n\nSTDERR:\n",
		},
		{
			name: "nonzero exit keeps streams",
			res:  &executor.Result{Stdout: "", Stderr: "boom", ExitCode: 2},
			want: "[run] rc=2\nSTDOUT:\n\nSTDERR:\nboom",
		},
		{
			name: "truncated",
			res:  &executor.Result{Stdout: "abc", ExitCode: 0, Truncated: true},
			want: "[run] rc=0\nSTDOUT:\nabc\nSTDERR:\n\n(output truncated)",
		},
		{
			name: "timeout without output",
			res:  &executor.Result{ExitCode: -1},
			err:  executor.ErrTimeout,
			want: "[run] timeout after 5s: sleep 10",
		},
		{
			name: "timeout with partial output",
			res:  &executor.Result{Stdout: "partial", ExitCode: -1},
			err:  executor.ErrTimeout,
			want: "[run] timeout after 5s: sleep 10\nSTDOUT:\npartial\nSTDERR:\n",
		},
		{
			name: "binary missing",
			err:  &executor.StartError{Cmd: "sh", Cause: exec.ErrNotFound},
			want: "[run] launch failed: sh not found",
		},
		{
			name: "cancelled",
			err:  context.Canceled,
			want: "[run] cancelled: sleep 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProcessReport("run", "sleep 10", tt.res, tt.err, 5*time.Second)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTags(t *testing.T) {
	assert.Equal(t, "[pytest]", Tag("pytest"))
	assert.Equal(t, "[pytest:DRYRUN]", DryRunTag("pytest"))
	assert.Equal(t, "[list_dir] /tmp is a file", Reportf("list_dir", "%s is a file", "/tmp"))
}
