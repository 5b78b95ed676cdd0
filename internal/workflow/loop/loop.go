package loop

import (
	"context"
	"fmt"
	"strings"

	"github.com/Cyclone1070/gptcode/internal/action"
	"github.com/Cyclone1070/gptcode/internal/provider/models"
	"github.com/Cyclone1070/gptcode/internal/workflow"
	"go.uber.org/zap"
)

// completionWords end a headless run when any of them appears in a plain
// text reply. Matching is a case-insensitive substring test.
var completionWords = []string{"done", "finished", "fertig", "abgeschlossen", "final"}

// Outcome is how a headless run terminated normally.
type Outcome interface {
	isOutcome()
}

// OutcomeCompleted means the model reported completion at step Steps.
type OutcomeCompleted struct {
	Steps int
}

func (OutcomeCompleted) isOutcome() {}

// OutcomeMaxSteps means the step budget ran out.
type OutcomeMaxSteps struct {
	Steps int
}

func (OutcomeMaxSteps) isOutcome() {}

// SeedMessage is the first user message of a headless run.
func SeedMessage(goal string) string {
	return fmt.Sprintf("Goal: %s. Get started and work iteratively until it is complete. Report progress briefly.", goal)
}

// Loop drives a goal autonomously: every proposal runs immediately and
// its result is fed back.
type Loop struct {
	turns    turnRunner
	conv     conversation
	events   workflow.Sink
	maxSteps int
	logger   *zap.Logger
}

func NewLoop(turns turnRunner, conv conversation, events workflow.Sink, maxSteps int, logger *zap.Logger) *Loop {
	if maxSteps < 1 {
		panic("maxSteps must be >= 1")
	}
	if events == nil {
		events = workflow.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{
		turns:    turns,
		conv:     conv,
		events:   events,
		maxSteps: maxSteps,
		logger:   logger,
	}
}

// Run seeds the goal, forces auto mode and iterates up to maxSteps model
// calls. Model failures and cancellation end the run with an error;
// exhausting the budget is a normal outcome.
func (l *Loop) Run(ctx context.Context, goal string) (Outcome, error) {
	if err := l.conv.SetAuto(true); err != nil {
		return nil, err
	}
	l.conv.Add(models.RoleUser, SeedMessage(goal))
	l.logger.Info("headless run started", zap.String("goal", goal), zap.Int("max_steps", l.maxSteps))

	for step := 1; step <= l.maxSteps; step++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		reply, err := l.turns.Ask(ctx)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", step, err)
		}

		if p, ok := action.Parse(reply); ok {
			l.turns.Execute(ctx, p)
			continue
		}

		l.events.Emit(workflow.TextEvent{Text: strings.TrimSpace(reply)})
		l.conv.Add(models.RoleAssistant, reply)

		if reportsCompletion(reply) {
			l.logger.Info("headless run completed", zap.Int("steps", step))
			l.events.Emit(workflow.DoneEvent{Summary: fmt.Sprintf("completed after %d steps", step)})
			return OutcomeCompleted{Steps: step}, nil
		}
	}

	l.logger.Info("headless run hit step limit", zap.Int("steps", l.maxSteps))
	l.events.Emit(workflow.DoneEvent{Summary: fmt.Sprintf("max steps reached (%d)", l.maxSteps)})
	return OutcomeMaxSteps{Steps: l.maxSteps}, nil
}

func reportsCompletion(text string) bool {
	lower := strings.ToLower(text)
	for _, w := range completionWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
