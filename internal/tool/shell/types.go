package shell

import (
	"strings"

	"github.com/Cyclone1070/gptcode/internal/config"
)

// RunRequest is the argument record of the run tool.
type RunRequest struct {
	Cmd     string            `json:"cmd"`
	Timeout *int              `json:"timeout"`
	Env     map[string]string `json:"env"`
}

func (r *RunRequest) Validate() error {
	if strings.TrimSpace(r.Cmd) == "" {
		return ErrCommandRequired
	}
	if r.Timeout != nil && (*r.Timeout < 1 || *r.Timeout > config.MaxTimeoutSeconds) {
		return &InvalidTimeoutError{Value: *r.Timeout}
	}
	return nil
}
