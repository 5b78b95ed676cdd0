package orchestrator

import "errors"

var (
	// ErrNoPending is returned by Confirm and Reject when nothing is held.
	ErrNoPending = errors.New("no pending action")
	// ErrAwaitingConfirmation is returned when free text arrives while a
	// proposal waits for :yes or :no.
	ErrAwaitingConfirmation = errors.New("a proposal is waiting for confirmation, answer with :yes or :no first")
)
