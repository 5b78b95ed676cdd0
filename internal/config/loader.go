package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	// ConfigDir is the directory name under ~/.config
	ConfigDir = "gptcode"
	// ConfigFile is the config file name
	ConfigFile = "config.json"
	// LogFile is the default log file name inside ConfigDir
	LogFile = "gptcode.log"
)

// FileSystem abstracts file operations for testability
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
}

// ConfigFileReader implements FileSystem using the real OS for config loading
type ConfigFileReader struct{}

func (ConfigFileReader) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

func (ConfigFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (ConfigFileReader) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (ConfigFileReader) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Loader handles configuration loading with injected dependencies
type Loader struct {
	fs FileSystem
}

// NewLoader creates a production Loader using the real filesystem
func NewLoader() *Loader {
	return &Loader{fs: ConfigFileReader{}}
}

// NewLoaderWithFS creates a Loader with a custom filesystem (for testing)
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Dir returns ~/.config/gptcode.
func (l *Loader) Dir() (string, error) {
	homeDir, err := l.fs.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", ConfigDir), nil
}

// Path returns the absolute location of the config file.
func (l *Loader) Path() (string, error) {
	dir, err := l.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFile), nil
}

// Exists reports whether a config file has been written before.
// The first-run wizard keys off this.
func (l *Loader) Exists() (bool, error) {
	path, err := l.Path()
	if err != nil {
		return false, err
	}
	if _, err := l.fs.ReadFile(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Load reads configuration from ~/.config/gptcode/config.json
// and merges it with defaults. Dotfile values override defaults.
// Returns default config if dotfile doesn't exist.
// Returns error only for parse errors, permission issues, or validation failures.
//
// NOTE: This implementation unmarshals JSON keys directly over the default configuration.
// This allows explicit zero values (e.g., 0, false, "") in the config file to override defaults.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	configPath, err := l.Path()
	if err != nil {
		return cfg, nil // Use defaults if can't get home dir
	}

	data, err := l.fs.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the whole record back to disk, creating the config
// directory if needed. The file is private to the user since it
// holds the API credential.
func (l *Loader) Save(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	dir, err := l.Dir()
	if err != nil {
		return err
	}
	if err := l.fs.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	path := filepath.Join(dir, ConfigFile)
	if err := l.fs.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Store is the single write path for persisted settings. Every
// mutation re-reads the file, applies the change and writes the
// whole record back.
type Store struct {
	loader *Loader
	mu     sync.Mutex
}

// NewStore creates a Store backed by the given loader.
func NewStore(loader *Loader) *Store {
	return &Store{loader: loader}
}

// Load returns the current persisted configuration merged over defaults.
func (s *Store) Load() (*Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loader.Load()
}

// Update applies mutate to a freshly loaded config and saves it.
func (s *Store) Update(mutate func(*Config)) (*Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.loader.Load()
	if err != nil {
		return nil, err
	}
	mutate(cfg)
	if err := s.loader.Save(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the location of the backing file.
func (s *Store) Path() (string, error) {
	return s.loader.Path()
}
