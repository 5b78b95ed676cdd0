package shell

import (
	"errors"
	"fmt"

	"github.com/Cyclone1070/gptcode/internal/config"
)

var ErrCommandRequired = errors.New("cmd is required")

// InvalidTimeoutError is returned when a timeout outside
// [1, config.MaxTimeoutSeconds] is requested.
type InvalidTimeoutError struct {
	Value int
}

func (e *InvalidTimeoutError) Error() string {
	return fmt.Sprintf("timeout must be between 1 and %d seconds, got %d", config.MaxTimeoutSeconds, e.Value)
}
