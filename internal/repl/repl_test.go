package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/Cyclone1070/gptcode/internal/action"
	"github.com/Cyclone1070/gptcode/internal/config"
	"github.com/Cyclone1070/gptcode/internal/orchestrator"
	"github.com/Cyclone1070/gptcode/internal/session"
	toolpath "github.com/Cyclone1070/gptcode/internal/tool/service/path"
	"github.com/Cyclone1070/gptcode/internal/ui"
	"github.com/Cyclone1070/gptcode/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUI replays scripted input lines and records everything shown.
type MockUI struct {
	Lines   []string
	EndErr  error
	Prompts []string
	Info    []string
	Events  []workflow.Event
}

func (m *MockUI) ReadInput(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if len(m.Lines) == 0 {
		if m.EndErr != nil {
			return "", m.EndErr
		}
		return "", io.EOF
	}
	line := m.Lines[0]
	m.Lines = m.Lines[1:]
	return line, nil
}

func (m *MockUI) WriteInfo(text string) { m.Info = append(m.Info, text) }

func (m *MockUI) Emit(ev workflow.Event) { m.Events = append(m.Events, ev) }

func (m *MockUI) notices() []string {
	var out []string
	for _, ev := range m.Events {
		if n, ok := ev.(workflow.NoticeEvent); ok {
			out = append(out, n.Text)
		}
	}
	return out
}

func (m *MockUI) errorEvents() []error {
	var out []error
	for _, ev := range m.Events {
		if e, ok := ev.(workflow.ErrorEvent); ok {
			out = append(out, e.Err)
		}
	}
	return out
}

type MockGate struct {
	SubmitFunc  func(ctx context.Context, text string) error
	ConfirmFunc func(ctx context.Context) error
	RejectFunc  func() error

	Submitted []string
	Confirms  int
	Rejects   int
}

func (m *MockGate) Submit(ctx context.Context, text string) error {
	m.Submitted = append(m.Submitted, text)
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, text)
	}
	return nil
}

func (m *MockGate) Confirm(ctx context.Context) error {
	m.Confirms++
	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(ctx)
	}
	return nil
}

func (m *MockGate) Reject() error {
	m.Rejects++
	if m.RejectFunc != nil {
		return m.RejectFunc()
	}
	return nil
}

type MockStore struct {
	UpdateFunc func(mutate func(*config.Config)) (*config.Config, error)
	Saved      []*config.Config
}

func (m *MockStore) Update(mutate func(*config.Config)) (*config.Config, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(mutate)
	}
	cfg := config.DefaultConfig()
	mutate(cfg)
	m.Saved = append(m.Saved, cfg)
	return cfg, nil
}

type fixture struct {
	ui    *MockUI
	gate  *MockGate
	sess  *session.Session
	store *MockStore
	cwd   string
	repl  *REPL
}

func newFixture(lines ...string) *fixture {
	f := &fixture{
		ui:    &MockUI{Lines: lines},
		gate:  &MockGate{},
		sess:  session.New("gpt-4o-mini", false, false),
		store: &MockStore{},
		cwd:   "/work",
	}
	resolver := toolpath.NewResolverWithEnv(
		func() (string, error) { return "/home/dev", nil },
		func() (string, error) { return f.cwd, nil },
	)
	f.repl = New(f.ui, f.gate, f.sess, f.store, resolver, zap.NewNop())
	f.repl.chdir = func(dir string) error {
		if dir == "/missing" {
			return fmt.Errorf("chdir %s: no such file or directory", dir)
		}
		f.cwd = dir
		return nil
	}
	return f
}

func TestNew_PanicsOnMissingDeps(t *testing.T) {
	f := newFixture()
	resolver := toolpath.NewResolver()

	assert.Panics(t, func() { New(nil, f.gate, f.sess, f.store, resolver, nil) })
	assert.Panics(t, func() { New(f.ui, nil, f.sess, f.store, resolver, nil) })
	assert.Panics(t, func() { New(f.ui, f.gate, nil, f.store, resolver, nil) })
	assert.Panics(t, func() { New(f.ui, f.gate, f.sess, nil, resolver, nil) })
	assert.Panics(t, func() { New(f.ui, f.gate, f.sess, f.store, nil, nil) })
}

func TestRun_EndsOnEOF(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.repl.Run(context.Background()))
	assert.Equal(t, []string{Prompt}, f.ui.Prompts)
}

func TestRun_EndsOnInterrupt(t *testing.T) {
	f := newFixture()
	f.ui.EndErr = ui.ErrInterrupted

	assert.NoError(t, f.repl.Run(context.Background()))
}

func TestRun_ReturnsBrokenInput(t *testing.T) {
	f := newFixture()
	f.ui.EndErr = errors.New("read input: tty gone")

	assert.EqualError(t, f.repl.Run(context.Background()), "read input: tty gone")
}

func TestRun_QuitStopsReading(t *testing.T) {
	f := newFixture(":quit", "never seen")

	require.NoError(t, f.repl.Run(context.Background()))
	assert.Len(t, f.ui.Prompts, 1)
	assert.Empty(t, f.gate.Submitted)
}

func TestRun_FreeTextGoesToGate(t *testing.T) {
	f := newFixture("  list the files  ", "", "   ")

	require.NoError(t, f.repl.Run(context.Background()))
	assert.Equal(t, []string{"list the files"}, f.gate.Submitted)
}

func TestRun_CommandsNeverReachTheModel(t *testing.T) {
	f := newFixture(":help", ":cwd", ":cd src", ":yes", ":no", ":dryrun", ":auto", ":bogus")

	require.NoError(t, f.repl.Run(context.Background()))
	assert.Empty(t, f.gate.Submitted)
}

func TestRun_ModelErrorDoesNotEndSession(t *testing.T) {
	f := newFixture("first", "second")
	f.gate.SubmitFunc = func(ctx context.Context, text string) error {
		if text == "first" {
			return fmt.Errorf("model call: %w", errors.New("503"))
		}
		return nil
	}

	require.NoError(t, f.repl.Run(context.Background()))
	assert.Equal(t, []string{"first", "second"}, f.gate.Submitted)
	require.Len(t, f.ui.errorEvents(), 1)
	assert.EqualError(t, f.ui.errorEvents()[0], "model call: 503")
}

func TestRun_CancelledContextEndsSession(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f.ui.EndErr = ctx.Err()

	assert.NoError(t, f.repl.Run(ctx))
}

func TestCommand_Help(t *testing.T) {
	f := newFixture(":help")

	require.NoError(t, f.repl.Run(context.Background()))
	assert.Equal(t, []string{HelpText}, f.ui.Info)
}

func TestCommand_CwdAndCd(t *testing.T) {
	f := newFixture(":cwd", ":cd src", ":cd ~/proj", ":cd /missing", ":cd")

	require.NoError(t, f.repl.Run(context.Background()))

	assert.Equal(t, []string{"/work", "OK: /work/src", "OK: /home/dev/proj"}, f.ui.Info)
	assert.Equal(t, "/home/dev/proj", f.cwd)
	require.Len(t, f.ui.errorEvents(), 1)
	assert.Contains(t, f.ui.errorEvents()[0].Error(), "cd: chdir /missing")
	assert.Equal(t, []string{"usage: :cd <path>"}, f.ui.notices())
}

func TestCommand_YesNo(t *testing.T) {
	f := newFixture(":yes", ":no")
	f.gate.ConfirmFunc = func(context.Context) error { return orchestrator.ErrNoPending }
	f.gate.RejectFunc = func() error { return orchestrator.ErrNoPending }

	require.NoError(t, f.repl.Run(context.Background()))

	assert.Equal(t, 1, f.gate.Confirms)
	assert.Equal(t, 1, f.gate.Rejects)
	assert.Equal(t, []string{"no pending action", "no pending action"}, f.ui.notices())
	assert.Empty(t, f.ui.errorEvents())
}

func TestCommand_FreeTextWhilePending(t *testing.T) {
	f := newFixture("do more")
	f.gate.SubmitFunc = func(context.Context, string) error { return orchestrator.ErrAwaitingConfirmation }

	require.NoError(t, f.repl.Run(context.Background()))

	assert.Equal(t, []string{orchestrator.ErrAwaitingConfirmation.Error()}, f.ui.notices())
}

func TestCommand_DryRun(t *testing.T) {
	f := newFixture(":dryrun", ":dryrun on", ":dryrun", ":dryrun maybe", ":dryrun OFF")

	require.NoError(t, f.repl.Run(context.Background()))

	assert.Equal(t, []string{"dryrun=false", "dryrun=true", "dryrun=true", "dryrun=false"}, f.ui.Info)
	assert.Equal(t, []string{"usage: :dryrun [on|off]"}, f.ui.notices())
	assert.False(t, f.sess.DryRun())
	require.Len(t, f.store.Saved, 2)
	assert.True(t, f.store.Saved[0].DryRun)
	assert.False(t, f.store.Saved[1].DryRun)
}

func TestCommand_DryRunSaveFailureStillAppliesToSession(t *testing.T) {
	f := newFixture(":dryrun on")
	f.store.UpdateFunc = func(func(*config.Config)) (*config.Config, error) {
		return nil, errors.New("read-only filesystem")
	}

	require.NoError(t, f.repl.Run(context.Background()))

	assert.True(t, f.sess.DryRun())
	require.Len(t, f.ui.errorEvents(), 1)
	assert.EqualError(t, f.ui.errorEvents()[0], "save config: read-only filesystem")
}

func TestCommand_Auto(t *testing.T) {
	f := newFixture(":auto", ":auto on", ":auto", ":auto off", ":auto sometimes")

	require.NoError(t, f.repl.Run(context.Background()))

	assert.Equal(t, []string{"auto=false", "auto=true", "auto=true", "auto=false"}, f.ui.Info)
	assert.Equal(t, []string{"usage: :auto [on|off]"}, f.ui.notices())
	assert.Empty(t, f.store.Saved, "auto is never persisted")
}

func TestCommand_AutoRefusedWhilePending(t *testing.T) {
	f := newFixture(":auto on")
	require.NoError(t, f.sess.SetPending(action.Proposal{Tool: "run", Args: map[string]any{"cmd": "ls"}}))

	require.NoError(t, f.repl.Run(context.Background()))

	assert.False(t, f.sess.Auto())
	assert.Empty(t, f.ui.Info)
	require.Len(t, f.ui.notices(), 1)
	assert.Contains(t, f.ui.notices()[0], ":yes or :no")
}

func TestCommand_Unknown(t *testing.T) {
	f := newFixture(":frobnicate now")

	require.NoError(t, f.repl.Run(context.Background()))

	assert.Equal(t, []string{"unknown command: :frobnicate (see :help)"}, f.ui.notices())
}

func TestParseSwitch(t *testing.T) {
	tests := []struct {
		in     string
		want   bool
		wantOK bool
	}{
		{"on", true, true},
		{"ON", true, true},
		{"off", false, true},
		{"yes", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseSwitch(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
