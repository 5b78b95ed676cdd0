package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/Cyclone1070/gptcode/internal/action"
	"github.com/Cyclone1070/gptcode/internal/config"
	"github.com/Cyclone1070/gptcode/internal/provider/models"
	"github.com/Cyclone1070/gptcode/internal/session"
	"github.com/Cyclone1070/gptcode/internal/tool"
	"github.com/Cyclone1070/gptcode/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockProvider replies from a script, one entry per call.
type MockProvider struct {
	CompleteFunc func(ctx context.Context, systemPrompt string, transcript []models.Message) (string, error)
	calls        int
}

func (m *MockProvider) Complete(ctx context.Context, systemPrompt string, transcript []models.Message) (string, error) {
	m.calls++
	return m.CompleteFunc(ctx, systemPrompt, transcript)
}

func (m *MockProvider) Model() string { return "mock" }

func scripted(replies ...string) *MockProvider {
	i := 0
	return &MockProvider{CompleteFunc: func(context.Context, string, []models.Message) (string, error) {
		if i >= len(replies) {
			return "", errors.New("script exhausted")
		}
		r := replies[i]
		i++
		return r, nil
	}}
}

type dispatchCall struct {
	proposal action.Proposal
	dryRun   bool
}

// MockToolManager records dispatches.
type MockToolManager struct {
	DispatchFunc func(ctx context.Context, p action.Proposal, dryRun bool) string
	calls        []dispatchCall
}

func (m *MockToolManager) Declarations() []tool.Declaration {
	return []tool.Declaration{{Name: "run", Description: "Run a command."}}
}

func (m *MockToolManager) Dispatch(ctx context.Context, p action.Proposal, dryRun bool) string {
	m.calls = append(m.calls, dispatchCall{proposal: p, dryRun: dryRun})
	if m.DispatchFunc != nil {
		return m.DispatchFunc(ctx, p, dryRun)
	}
	return "[" + p.Tool + "] rc=0\nSTDOUT:\nok\nSTDERR:\n"
}

type recorder struct {
	events []workflow.Event
}

func (r *recorder) Emit(ev workflow.Event) { r.events = append(r.events, ev) }

func (r *recorder) proposals() []string {
	var out []string
	for _, ev := range r.events {
		if p, ok := ev.(workflow.ProposalEvent); ok {
			out = append(out, p.Proposal)
		}
	}
	return out
}

func newTestOrchestrator(p *MockProvider, tm *MockToolManager, sess *session.Session) (*Orchestrator, *recorder) {
	rec := &recorder{}
	o := New(p, tm, sess, rec, config.DefaultConfig(), nil)
	o.getwd = func() (string, error) { return "/work", nil }
	return o, rec
}

const runLS = `{"tool":"run","args":{"cmd":"ls"}}`

func TestSubmit_TextReply(t *testing.T) {
	sess := session.New("m", false, false)
	o, rec := newTestOrchestrator(scripted("Hello there."), &MockToolManager{}, sess)

	require.NoError(t, o.Submit(context.Background(), "hi"))

	assert.Equal(t, []models.Message{
		{Role: models.RoleUser, Content: "hi"},
		{Role: models.RoleAssistant, Content: "Hello there."},
	}, sess.Transcript())
	assert.Contains(t, rec.events, workflow.TextEvent{Text: "Hello there."})
	assert.Equal(t, StateIdle, o.State())
}

func TestSubmit_ProposalIsHeld(t *testing.T) {
	sess := session.New("m", false, false)
	tm := &MockToolManager{}
	o, rec := newTestOrchestrator(scripted(runLS), tm, sess)

	require.NoError(t, o.Submit(context.Background(), "list files"))

	assert.Equal(t, StateAwaitingConfirmation, o.State())
	assert.Empty(t, tm.calls)
	assert.Equal(t, []string{runLS}, rec.proposals())
	assert.Len(t, sess.Transcript(), 1)
}

func TestSubmit_AutoExecutesImmediately(t *testing.T) {
	sess := session.New("m", true, true)
	tm := &MockToolManager{}
	o, _ := newTestOrchestrator(scripted(runLS), tm, sess)

	require.NoError(t, o.Submit(context.Background(), "list files"))

	require.Len(t, tm.calls, 1)
	assert.Equal(t, action.Proposal{Tool: "run", Args: map[string]any{"cmd": "ls"}}, tm.calls[0].proposal)
	assert.True(t, tm.calls[0].dryRun)
	assert.Equal(t, StateIdle, o.State())

	transcript := sess.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, models.RoleUser, transcript[1].Role)
	assert.Equal(t, "RESULT (run):\n[run] rc=0\nSTDOUT:\nok\nSTDERR:\n", transcript[1].Content)
}

func TestSubmit_RefusedWhilePending(t *testing.T) {
	sess := session.New("m", false, false)
	p := scripted(runLS)
	o, _ := newTestOrchestrator(p, &MockToolManager{}, sess)
	require.NoError(t, o.Submit(context.Background(), "go"))

	err := o.Submit(context.Background(), "something else")

	assert.ErrorIs(t, err, ErrAwaitingConfirmation)
	assert.Equal(t, 1, p.calls)
	assert.Len(t, sess.Transcript(), 1)
	assert.Equal(t, StateAwaitingConfirmation, o.State())
}

func TestConfirm_ExecutesThenOneFollowUp(t *testing.T) {
	sess := session.New("m", false, false)
	p := scripted(runLS, "Listed the files.")
	tm := &MockToolManager{}
	o, _ := newTestOrchestrator(p, tm, sess)
	require.NoError(t, o.Submit(context.Background(), "list"))

	require.NoError(t, o.Confirm(context.Background()))

	assert.Len(t, tm.calls, 1)
	assert.Equal(t, 2, p.calls)
	assert.Equal(t, StateIdle, o.State())

	transcript := sess.Transcript()
	require.Len(t, transcript, 3)
	assert.Equal(t, "list", transcript[0].Content)
	assert.Contains(t, transcript[1].Content, "RESULT (run):")
	assert.Equal(t, models.Message{Role: models.RoleAssistant, Content: "Listed the files."}, transcript[2])
}

func TestConfirm_FollowUpProposalIsHeldNotChained(t *testing.T) {
	sess := session.New("m", false, false)
	next := `{"tool":"pytest","args":{}}`
	p := scripted(runLS, next, "never reached")
	tm := &MockToolManager{}
	o, rec := newTestOrchestrator(p, tm, sess)
	require.NoError(t, o.Submit(context.Background(), "test it"))

	require.NoError(t, o.Confirm(context.Background()))

	assert.Len(t, tm.calls, 1)
	assert.Equal(t, 2, p.calls)
	assert.Equal(t, StateAwaitingConfirmation, o.State())
	assert.Equal(t, []string{runLS, next}, rec.proposals())
}

func TestReject_DropsWithoutSideEffects(t *testing.T) {
	sess := session.New("m", false, false)
	p := scripted(runLS)
	tm := &MockToolManager{}
	o, rec := newTestOrchestrator(p, tm, sess)
	require.NoError(t, o.Submit(context.Background(), "list"))

	require.NoError(t, o.Reject())

	assert.Empty(t, tm.calls)
	assert.Equal(t, 1, p.calls)
	assert.Equal(t, StateIdle, o.State())
	assert.Contains(t, rec.events, workflow.NoticeEvent{Text: "action discarded"})
}

func TestConfirmReject_WhileIdle(t *testing.T) {
	sess := session.New("m", false, false)
	p := scripted()
	tm := &MockToolManager{}
	o, _ := newTestOrchestrator(p, tm, sess)

	assert.ErrorIs(t, o.Confirm(context.Background()), ErrNoPending)
	assert.ErrorIs(t, o.Reject(), ErrNoPending)
	assert.Zero(t, p.calls)
	assert.Empty(t, tm.calls)
	assert.Empty(t, sess.Transcript())
}

func TestSubmit_ModelErrorKeepsSession(t *testing.T) {
	sess := session.New("m", false, false)
	boom := errors.New("rate limited")
	fail := true
	p := &MockProvider{CompleteFunc: func(context.Context, string, []models.Message) (string, error) {
		if fail {
			return "", boom
		}
		return "recovered", nil
	}}
	o, _ := newTestOrchestrator(p, &MockToolManager{}, sess)

	err := o.Submit(context.Background(), "first")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StateIdle, o.State())

	fail = false
	require.NoError(t, o.Submit(context.Background(), "second"))
	assert.Equal(t, "recovered", sess.Transcript()[2].Content)
}

func TestAsk_PromptAndDeadline(t *testing.T) {
	sess := session.New("m", false, false)
	var gotPrompt string
	var hasDeadline bool
	p := &MockProvider{CompleteFunc: func(ctx context.Context, prompt string, _ []models.Message) (string, error) {
		gotPrompt = prompt
		_, hasDeadline = ctx.Deadline()
		return "ok", nil
	}}
	o, rec := newTestOrchestrator(p, &MockToolManager{}, sess)

	_, err := o.Ask(context.Background())
	require.NoError(t, err)

	assert.True(t, hasDeadline)
	assert.Contains(t, gotPrompt, "/work")
	assert.Contains(t, gotPrompt, "- run {}: Run a command.")
	assert.Equal(t, workflow.ThinkingEvent{}, rec.events[0])
}

func TestExecute_EmitsStartAndEnd(t *testing.T) {
	sess := session.New("m", false, false)
	o, rec := newTestOrchestrator(scripted(), &MockToolManager{DispatchFunc: func(context.Context, action.Proposal, bool) string {
		return "[pytest] rc=0"
	}}, sess)

	out := o.Execute(context.Background(), action.Proposal{Tool: "pytest", Args: map[string]any{}})

	assert.Equal(t, "[pytest] rc=0", out)
	assert.Equal(t, []workflow.Event{
		workflow.ToolStartEvent{ToolName: "pytest", RequestDisplay: `{"tool":"pytest","args":{}}`},
		workflow.ToolEndEvent{ToolName: "pytest", Result: "[pytest] rc=0"},
	}, rec.events)
}
