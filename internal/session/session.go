package session

import (
	"errors"
	"sync"

	"github.com/Cyclone1070/gptcode/internal/action"
	"github.com/Cyclone1070/gptcode/internal/provider/models"
	"github.com/google/uuid"
)

var (
	// ErrPendingExists is returned when a second proposal would be held.
	ErrPendingExists = errors.New("a proposal is already pending")
	// ErrPendingWithAuto is returned when auto mode would be enabled while
	// a proposal is pending.
	ErrPendingWithAuto = errors.New("cannot enable auto while a proposal is pending")
)

// Session is the per-run conversation state. It is owned by one loop; the
// mutex only lets a renderer read it concurrently.
type Session struct {
	mu         sync.Mutex
	id         string
	model      string
	dryRun     bool
	auto       bool
	transcript []models.Message
	pending    *action.Proposal
}

// New creates an empty session with a random ID.
func New(model string, dryRun, auto bool) *Session {
	return &Session{
		id:     uuid.NewString(),
		model:  model,
		dryRun: dryRun,
		auto:   auto,
	}
}

// ID identifies the session in log lines.
func (s *Session) ID() string { return s.id }

func (s *Session) Model() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model
}

func (s *Session) DryRun() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dryRun
}

func (s *Session) SetDryRun(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dryRun = on
}

func (s *Session) Auto() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auto
}

// SetAuto toggles auto mode. Enabling it while a proposal is pending is
// refused so that auto never coexists with a pending proposal.
func (s *Session) SetAuto(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if on && s.pending != nil {
		return ErrPendingWithAuto
	}
	s.auto = on
	return nil
}

// Add appends a message to the transcript.
func (s *Session) Add(role models.Role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = append(s.transcript, models.Message{Role: role, Content: content})
}

// Transcript returns a copy of the transcript.
func (s *Session) Transcript() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Pending returns the held proposal, if any.
func (s *Session) Pending() (action.Proposal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return action.Proposal{}, false
	}
	return *s.pending, true
}

// SetPending holds p for confirmation.
func (s *Session) SetPending(p action.Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		return ErrPendingExists
	}
	s.pending = &p
	return nil
}

// TakePending returns and clears the held proposal.
func (s *Session) TakePending() (action.Proposal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return action.Proposal{}, false
	}
	p := *s.pending
	s.pending = nil
	return p, true
}
