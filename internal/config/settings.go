package config

import (
	"strconv"
	"strings"
)

// Supported model backends.
const (
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// Providers lists every accepted value of Config.Provider.
var Providers = []string{ProviderOpenAI, ProviderGemini, ProviderAnthropic}

// DefaultModel is used when neither the command line nor the config
// file names a model.
const DefaultModel = "gpt-4o-mini"

var defaultModels = map[string]string{
	ProviderOpenAI:    DefaultModel,
	ProviderGemini:    "gemini-2.5-flash",
	ProviderAnthropic: "claude-3-5-haiku-latest",
}

var apiKeyEnv = map[string]string{
	ProviderOpenAI:    "OPENAI_API_KEY",
	ProviderGemini:    "GEMINI_API_KEY",
	ProviderAnthropic: "ANTHROPIC_API_KEY",
}

// TimeoutEnv overrides tools.default_timeout_seconds when set to an integer
// between 1 and MaxTimeoutSeconds.
const TimeoutEnv = "GPTCODE_TIMEOUT"

// DefaultModelFor returns the fallback model of a provider.
func DefaultModelFor(provider string) string {
	if m, ok := defaultModels[provider]; ok {
		return m
	}
	return DefaultModel
}

// APIKeyEnv returns the environment variable consulted for a provider's
// credential when the config file has none.
func APIKeyEnv(provider string) string {
	return apiKeyEnv[provider]
}

// Overrides carries session-only settings from the command line.
// A nil or empty field means "not given".
type Overrides struct {
	Model  string
	DryRun *bool
}

// SessionSettings are the effective per-run mode values.
type SessionSettings struct {
	Model  string
	DryRun bool
}

// ResolveSession picks each setting from the override, then the
// persisted config, then the built-in default.
func ResolveSession(cfg *Config, o Overrides) SessionSettings {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	s := SessionSettings{
		Model:  DefaultModelFor(cfg.Provider),
		DryRun: cfg.DryRun,
	}
	if m := strings.TrimSpace(cfg.Model); m != "" {
		s.Model = m
	}
	if m := strings.TrimSpace(o.Model); m != "" {
		s.Model = m
	}
	if o.DryRun != nil {
		s.DryRun = *o.DryRun
	}
	return s
}

// ResolveAPIKey returns the configured credential, falling back to the
// provider's environment variable.
func ResolveAPIKey(cfg *Config, getenv func(string) string) string {
	if k := strings.TrimSpace(cfg.APIKey); k != "" {
		return k
	}
	if name := APIKeyEnv(cfg.Provider); name != "" && getenv != nil {
		return strings.TrimSpace(getenv(name))
	}
	return ""
}

// ApplyEnv folds environment overrides into cfg. Unparseable or
// non-positive values are ignored.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if getenv == nil {
		return
	}
	if raw := strings.TrimSpace(getenv(TimeoutEnv)); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= MaxTimeoutSeconds {
			cfg.Tools.DefaultTimeout = n
		}
	}
}
