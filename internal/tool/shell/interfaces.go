package shell

import (
	"context"

	"github.com/Cyclone1070/gptcode/internal/tool/service/executor"
)

// commandExecutor runs one process to completion.
type commandExecutor interface {
	Run(ctx context.Context, req executor.Request) (*executor.Result, error)
}
