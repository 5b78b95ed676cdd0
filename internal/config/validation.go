package config

import (
	"fmt"
	"slices"
)

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	if !slices.Contains(Providers, c.Provider) {
		errs = append(errs, fmt.Sprintf("provider must be one of %v", Providers))
	}

	// Tools validation
	errs = appendTimeoutErr(errs, "default_timeout_seconds", c.Tools.DefaultTimeout)
	if c.Tools.MaxCommandOutputSize < 1 {
		errs = append(errs, "tools.max_command_output_size must be >= 1")
	}
	if c.Tools.GracefulShutdownMs < 1 {
		errs = append(errs, "tools.graceful_shutdown_ms must be >= 1")
	}
	errs = appendTimeoutErr(errs, "docker_timeout_seconds", c.Tools.DockerTimeout)
	errs = appendTimeoutErr(errs, "systemctl_timeout_seconds", c.Tools.SystemctlTimeout)
	errs = appendTimeoutErr(errs, "patch_timeout_seconds", c.Tools.PatchTimeout)
	if c.Tools.MaxFileSize < 1 {
		errs = append(errs, "tools.max_file_size must be >= 1")
	}
	if c.Tools.DefaultTailLines < 1 {
		errs = append(errs, "tools.default_tail_lines must be >= 1")
	}

	// Workflow
	if c.Tools.HeadlessMaxSteps < 1 {
		errs = append(errs, "tools.headless_max_steps must be >= 1")
	}
	errs = appendTimeoutErr(errs, "model_timeout_seconds", c.Tools.ModelTimeoutSeconds)

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, "log.level must be one of debug, info, warn, error")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}

func appendTimeoutErr(errs []string, key string, seconds int) []string {
	if seconds < 1 || seconds > MaxTimeoutSeconds {
		return append(errs, fmt.Sprintf("tools.%s must be between 1 and %d", key, MaxTimeoutSeconds))
	}
	return errs
}
