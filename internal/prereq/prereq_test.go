package prereq

import (
	"bytes"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func lookPathFor(present ...string) func(string) (string, error) {
	set := map[string]bool{}
	for _, p := range present {
		set[p] = true
	}
	return func(name string) (string, error) {
		if set[name] {
			return "/usr/bin/" + name, nil
		}
		return "", exec.ErrNotFound
	}
}

func TestCheck_AllPresent(t *testing.T) {
	var out bytes.Buffer
	c := NewCheckerWithLookPath(lookPathFor("git", "docker", "pytest"))

	err := c.Check(&out, Defaults)

	assert.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestCheck_OptionalMissing_WarnsOnly(t *testing.T) {
	var out bytes.Buffer
	c := NewCheckerWithLookPath(lookPathFor("git", "docker"))

	err := c.Check(&out, Defaults)

	assert.NoError(t, err)
	assert.Contains(t, out.String(), "[NOTICE]")
	assert.Contains(t, out.String(), "- pytest:")
	assert.NotContains(t, out.String(), "[ERROR]")
}

func TestCheck_RequiredMissing_Fails(t *testing.T) {
	var out bytes.Buffer
	c := NewCheckerWithLookPath(lookPathFor("pytest"))

	err := c.Check(&out, Defaults)

	assert.True(t, errors.Is(err, ErrMissingRequired))
	assert.Contains(t, out.String(), "[ERROR]")
	assert.Contains(t, out.String(), "- git:")
	assert.Contains(t, out.String(), "- docker:")
}

func TestInspect(t *testing.T) {
	c := NewCheckerWithLookPath(lookPathFor("docker"))

	r := c.Inspect(Defaults)

	assert.False(t, r.OK())
	assert.Len(t, r.MissingRequired, 1)
	assert.Equal(t, "git", r.MissingRequired[0].Binary)
	assert.Len(t, r.MissingOptional, 1)
}
