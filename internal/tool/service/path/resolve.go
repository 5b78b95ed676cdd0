package path

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolver turns operator or model supplied paths into absolute ones.
// It expands a leading ~ and resolves relative paths against the current
// working directory at call time, so a :cd takes effect immediately.
// There is no workspace boundary.
type Resolver struct {
	homeDir func() (string, error)
	getwd   func() (string, error)
}

// NewResolver creates a Resolver backed by the process environment.
func NewResolver() *Resolver {
	return &Resolver{homeDir: os.UserHomeDir, getwd: os.Getwd}
}

// NewResolverWithEnv creates a Resolver with injected lookups for tests.
func NewResolverWithEnv(homeDir, getwd func() (string, error)) *Resolver {
	return &Resolver{homeDir: homeDir, getwd: getwd}
}

// Abs returns the cleaned absolute form of path.
func (r *Resolver) Abs(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrEmptyPath
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := r.homeDir()
		if err != nil {
			return "", &ResolveError{Path: path, Cause: err}
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	cwd, err := r.getwd()
	if err != nil {
		return "", &ResolveError{Path: path, Cause: err}
	}
	return filepath.Join(cwd, path), nil
}

// Cwd returns the current working directory.
func (r *Resolver) Cwd() (string, error) {
	return r.getwd()
}
