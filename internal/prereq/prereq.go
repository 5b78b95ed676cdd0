// Package prereq verifies that the external binaries the tools shell out
// to are installed before a session starts.
package prereq

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// ErrMissingRequired is returned by Check when a required binary is absent.
var ErrMissingRequired = errors.New("required tools are missing")

// Requirement describes one external binary.
type Requirement struct {
	Binary   string
	Required bool
	Hint     string
}

// Defaults are the binaries gptcode depends on.
var Defaults = []Requirement{
	{Binary: "git", Required: true, Hint: "install git (e.g. `sudo apt install git`) or see https://git-scm.com/downloads"},
	{Binary: "docker", Required: true, Hint: "install Docker Engine with the Compose plugin, see https://docs.docker.com/engine/install/"},
	{Binary: "pytest", Required: false, Hint: "optional test runner, install with `pip install pytest` or see https://docs.pytest.org/en/stable/"},
}

// Report lists the missing binaries by severity.
type Report struct {
	MissingRequired []Requirement
	MissingOptional []Requirement
}

// OK reports whether every required binary is present.
func (r Report) OK() bool {
	return len(r.MissingRequired) == 0
}

// Checker resolves binaries on PATH.
type Checker struct {
	lookPath func(string) (string, error)
}

// NewChecker creates a Checker using exec.LookPath.
func NewChecker() *Checker {
	return &Checker{lookPath: exec.LookPath}
}

// NewCheckerWithLookPath creates a Checker with a custom resolver (for testing).
func NewCheckerWithLookPath(lookPath func(string) (string, error)) *Checker {
	return &Checker{lookPath: lookPath}
}

// Inspect returns which of reqs are absent.
func (c *Checker) Inspect(reqs []Requirement) Report {
	var r Report
	for _, req := range reqs {
		if _, err := c.lookPath(req.Binary); err == nil {
			continue
		}
		if req.Required {
			r.MissingRequired = append(r.MissingRequired, req)
		} else {
			r.MissingOptional = append(r.MissingOptional, req)
		}
	}
	return r
}

// Check inspects reqs, prints warnings and errors to w and returns
// ErrMissingRequired if any required binary is absent.
func (c *Checker) Check(w io.Writer, reqs []Requirement) error {
	r := c.Inspect(reqs)

	if len(r.MissingOptional) > 0 {
		fmt.Fprintf(w, "[NOTICE] recommended tools are missing:\n%s\n", formatList(r.MissingOptional))
	}
	if !r.OK() {
		fmt.Fprintf(w, "[ERROR] required tools are missing, install them and start again:\n%s\n", formatList(r.MissingRequired))
		return ErrMissingRequired
	}
	return nil
}

func formatList(reqs []Requirement) string {
	lines := make([]string, 0, len(reqs))
	for _, req := range reqs {
		lines = append(lines, fmt.Sprintf("- %s: %s", req.Binary, req.Hint))
	}
	return strings.Join(lines, "\n")
}
