package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	APIKey   string `json:"api_key"`
	Model    string `json:"model"`
	DryRun   bool   `json:"dryrun"`
	Provider string `json:"provider"`

	Tools ToolsConfig `json:"tools"`
	Log   LogConfig   `json:"log"`
}

// MaxTimeoutSeconds bounds every configured or requested process timeout.
const MaxTimeoutSeconds = 24 * 60 * 60

type ToolsConfig struct {
	// Command Execution
	DefaultTimeout       int   `json:"default_timeout_seconds"`  // Default: 60
	MaxCommandOutputSize int64 `json:"max_command_output_size"`  // Default: 1 * 1024 * 1024 (1MB)
	GracefulShutdownMs   int   `json:"graceful_shutdown_ms"`     // Default: 2000
	DockerTimeout        int   `json:"docker_timeout_seconds"`   // Default: 600
	SystemctlTimeout     int   `json:"systemctl_timeout_seconds"` // Default: 60
	PatchTimeout         int   `json:"patch_timeout_seconds"`    // Default: 60

	// File Operations
	MaxFileSize      int64 `json:"max_file_size"`      // Default: 20 * 1024 * 1024 (20MB)
	DefaultTailLines int   `json:"default_tail_lines"` // Default: 200

	// Workflow
	HeadlessMaxSteps    int `json:"headless_max_steps"`    // Default: 30
	ModelTimeoutSeconds int `json:"model_timeout_seconds"` // Default: 120
}

type LogConfig struct {
	Level string `json:"level"` // Default: info
	File  string `json:"file"`  // Default: ~/.config/gptcode/gptcode.log
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Tools: ToolsConfig{
			DefaultTimeout:       60,
			MaxCommandOutputSize: 1 * 1024 * 1024,
			GracefulShutdownMs:   2000,
			DockerTimeout:        600,
			SystemctlTimeout:     60,
			PatchTimeout:         60,
			MaxFileSize:          20 * 1024 * 1024,
			DefaultTailLines:     200,
			HeadlessMaxSteps:     30,
			ModelTimeoutSeconds:  120,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
