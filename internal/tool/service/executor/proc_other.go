//go:build !unix

package executor

import (
	"os"
	"os/exec"
)

func setProcessGroup(cmd *exec.Cmd) {}

func interruptProcessGroup(cmd *exec.Cmd) {
	_ = cmd.Process.Signal(os.Interrupt)
}

func killProcessGroup(cmd *exec.Cmd) {
	_ = cmd.Process.Kill()
}
