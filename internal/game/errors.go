package game

import (
	"errors"
	"fmt"
)

// ErrIllegalAction is returned when an action is not legal for the current
// state. The round state is unchanged and the caller should re-prompt.
// Out-of-range wager amounts are not errors; they are clamped to the actor's
// chips and the action reclassified instead.
var ErrIllegalAction = errors.New("illegal action")

// InvariantViolationError signals a broken engine invariant: a pot ledger sum
// mismatch, negative chips, or a desynchronized replay log. The round cannot
// continue; the engine voids it and refunds chips from the deal snapshot.
type InvariantViolationError struct {
	Reason string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Reason)
}

func invariantf(format string, args ...any) error {
	return &InvariantViolationError{Reason: fmt.Sprintf(format, args...)}
}

func illegalf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIllegalAction, fmt.Sprintf(format, args...))
}
