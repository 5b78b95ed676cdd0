package git

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned when no enclosing work tree exists.
var ErrNotRepository = errors.New("not inside a git work tree")

// RepoOpenError wraps unexpected failures while opening a repository.
type RepoOpenError struct {
	Dir   string
	Cause error
}

func (e *RepoOpenError) Error() string {
	return fmt.Sprintf("failed to open repository at %s: %v", e.Dir, e.Cause)
}
func (e *RepoOpenError) Unwrap() error { return e.Cause }

// RootFinder locates the work tree root enclosing a directory.
type RootFinder struct{}

// NewRootFinder creates a RootFinder.
func NewRootFinder() *RootFinder {
	return &RootFinder{}
}

// Root walks up from dir looking for a .git entry and returns the top of
// the work tree. Bare repositories count as "not a repository".
func (f *RootFinder) Root(dir string) (string, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return "", ErrNotRepository
		}
		return "", &RepoOpenError{Dir: dir, Cause: err}
	}

	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, gogit.ErrIsBareRepository) {
			return "", ErrNotRepository
		}
		return "", &RepoOpenError{Dir: dir, Cause: err}
	}
	return wt.Filesystem.Root(), nil
}

// RootOr returns the work tree root of dir, or dir itself when it is not
// inside one.
func (f *RootFinder) RootOr(dir string) string {
	root, err := f.Root(dir)
	if err != nil {
		return dir
	}
	return root
}
