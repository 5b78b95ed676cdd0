package docker

import (
	"context"
	"errors"
	"time"

	"github.com/Cyclone1070/gptcode/internal/tool/service/executor"
)

// ComposeBinEnv names an explicit legacy compose binary, for hosts where
// the docker CLI plugin is unavailable or undesired.
const ComposeBinEnv = "GPTCODE_COMPOSE_BIN"

const legacyComposeBin = "docker-compose"

const probeTimeout = 15 * time.Second

// ErrNoComposeEngine is returned when neither the compose plugin nor a
// legacy binary is usable.
var ErrNoComposeEngine = errors.New("no compose engine found")

// engineResolver picks the compose invocation prefix on every call, so
// installing or removing an engine mid-session is picked up.
type engineResolver struct {
	commandExecutor commandExecutor
	lookPath        func(file string) (string, error)
	getenv          func(key string) string
}

// resolve returns the argv prefix: [bin] for a legacy binary or
// [docker compose] for the plugin.
func (r *engineResolver) resolve(ctx context.Context) ([]string, error) {
	if bin := r.getenv(ComposeBinEnv); bin != "" {
		if _, err := r.lookPath(bin); err == nil {
			return []string{bin}, nil
		}
	}

	res, err := r.commandExecutor.Run(ctx, executor.Request{
		Command: []string{"docker", "compose", "version"},
		Timeout: probeTimeout,
	})
	if err == nil && res.ExitCode == 0 {
		return []string{"docker", "compose"}, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	if _, err := r.lookPath(legacyComposeBin); err == nil {
		return []string{legacyComposeBin}, nil
	}
	return nil, ErrNoComposeEngine
}
