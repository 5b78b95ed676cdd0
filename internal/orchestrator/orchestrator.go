package orchestrator

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Cyclone1070/gptcode/internal/action"
	"github.com/Cyclone1070/gptcode/internal/config"
	"github.com/Cyclone1070/gptcode/internal/provider/models"
	"github.com/Cyclone1070/gptcode/internal/session"
	"github.com/Cyclone1070/gptcode/internal/workflow"
	"go.uber.org/zap"
)

// State is the confirmation gate state, derived from the session.
type State int

const (
	StateIdle State = iota
	StateAwaitingConfirmation
)

func (s State) String() string {
	if s == StateAwaitingConfirmation {
		return "awaiting-confirmation"
	}
	return "idle"
}

// ResultMessage is the user-role transcript entry that feeds a tool
// result back to the model.
func ResultMessage(toolName, result string) string {
	return fmt.Sprintf("RESULT (%s):\n%s", toolName, result)
}

// Orchestrator is the confirmation gate between model proposals and tool
// dispatch. It owns the model round-trip and is driven by one loop at a
// time.
type Orchestrator struct {
	provider     llmProvider
	tools        toolManager
	session      *session.Session
	events       workflow.Sink
	modelTimeout time.Duration
	getwd        func() (string, error)
	logger       *zap.Logger
}

// New creates an Orchestrator with injected dependencies.
func New(p llmProvider, tools toolManager, sess *session.Session, events workflow.Sink, cfg *config.Config, logger *zap.Logger) *Orchestrator {
	if p == nil {
		panic("provider is required")
	}
	if tools == nil {
		panic("tools is required")
	}
	if sess == nil {
		panic("session is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	if events == nil {
		events = workflow.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		provider:     p,
		tools:        tools,
		session:      sess,
		events:       events,
		modelTimeout: time.Duration(cfg.Tools.ModelTimeoutSeconds) * time.Second,
		getwd:        os.Getwd,
		logger:       logger.With(zap.String("session", sess.ID())),
	}
}

// Session returns the session the gate operates on.
func (o *Orchestrator) Session() *session.Session { return o.session }

// State reports whether a proposal is waiting for the operator.
func (o *Orchestrator) State() State {
	if _, ok := o.session.Pending(); ok {
		return StateAwaitingConfirmation
	}
	return StateIdle
}

// Submit records operator text, asks the model and routes the reply
// through the gate. Free text is refused while a proposal is pending.
func (o *Orchestrator) Submit(ctx context.Context, text string) error {
	if o.State() == StateAwaitingConfirmation {
		return ErrAwaitingConfirmation
	}

	o.session.Add(models.RoleUser, text)
	reply, err := o.Ask(ctx)
	if err != nil {
		return err
	}
	o.route(ctx, reply)
	return nil
}

// Confirm executes the pending proposal, feeds its result back and makes
// exactly one follow-up model call whose reply passes the gate once.
func (o *Orchestrator) Confirm(ctx context.Context) error {
	p, ok := o.session.TakePending()
	if !ok {
		return ErrNoPending
	}
	o.logger.Info("proposal confirmed", zap.String("tool", p.Tool))

	o.Execute(ctx, p)

	reply, err := o.Ask(ctx)
	if err != nil {
		return err
	}
	o.route(ctx, reply)
	return nil
}

// Reject drops the pending proposal without executing anything.
func (o *Orchestrator) Reject() error {
	p, ok := o.session.TakePending()
	if !ok {
		return ErrNoPending
	}
	o.logger.Info("proposal rejected", zap.String("tool", p.Tool))
	o.events.Emit(workflow.NoticeEvent{Text: "action discarded"})
	return nil
}

// Ask sends the transcript to the model under the model timeout.
func (o *Orchestrator) Ask(ctx context.Context) (string, error) {
	cwd, err := o.getwd()
	if err != nil {
		cwd = "."
	}
	prompt := SystemPrompt(cwd, o.tools.Declarations(), o.session.Auto())

	callCtx := ctx
	if o.modelTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, o.modelTimeout)
		defer cancel()
	}

	o.events.Emit(workflow.ThinkingEvent{})
	started := time.Now()
	reply, err := o.provider.Complete(callCtx, prompt, o.session.Transcript())
	if err != nil {
		o.logger.Warn("model call failed", zap.String("model", o.provider.Model()), zap.Error(err))
		return "", fmt.Errorf("model call: %w", err)
	}
	o.logger.Debug("model replied", zap.Duration("elapsed", time.Since(started)), zap.Int("chars", len(reply)))
	return reply, nil
}

// Execute dispatches p under the session's dry-run flag and appends the
// result to the transcript as a user message.
func (o *Orchestrator) Execute(ctx context.Context, p action.Proposal) string {
	dryRun := o.session.DryRun()
	o.events.Emit(workflow.ToolStartEvent{ToolName: p.Tool, RequestDisplay: p.String(), DryRun: dryRun})

	result := o.tools.Dispatch(ctx, p, dryRun)

	o.events.Emit(workflow.ToolEndEvent{ToolName: p.Tool, Result: result})
	o.session.Add(models.RoleUser, ResultMessage(p.Tool, result))
	return result
}

// route applies the gate to one model reply: a proposal runs now under
// auto or is held for confirmation; anything else is shown and recorded.
func (o *Orchestrator) route(ctx context.Context, reply string) {
	p, ok := action.Parse(reply)
	if !ok {
		o.events.Emit(workflow.TextEvent{Text: reply})
		o.session.Add(models.RoleAssistant, reply)
		return
	}

	if o.session.Auto() {
		o.Execute(ctx, p)
		return
	}

	if err := o.session.SetPending(p); err != nil {
		o.logger.Error("pending slot occupied", zap.Error(err))
		o.events.Emit(workflow.ErrorEvent{Err: err})
		return
	}
	o.logger.Info("proposal pending", zap.String("tool", p.Tool))
	o.events.Emit(workflow.ProposalEvent{Proposal: p.String()})
}
