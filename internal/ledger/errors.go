package ledger

import (
	"errors"
	"fmt"
)

// Sentinel errors for share resolution. All of them abort AddExpense before
// anything is written.
var (
	// ErrNoMembers is returned when an equal split across all members is
	// requested but no members exist yet.
	ErrNoMembers = errors.New("no members to split the expense among")

	// ErrEmptyParticipants is returned when an equal split is requested
	// across an empty list of names.
	ErrEmptyParticipants = errors.New("the list of participants for the split cannot be empty")

	// ErrInvalidShares is returned when the shares value has an
	// unsupported shape.
	ErrInvalidShares = errors.New("invalid shares: must be omitted, a list of names, or a name-to-amount mapping")
)

// ShareMismatchError reports a manual split whose shares do not add up to
// the expense amount within the allowed tolerance.
type ShareMismatchError struct {
	Sum    float64
	Amount float64
}

func (e *ShareMismatchError) Error() string {
	return fmt.Sprintf("the sum of shares ($%.2f) does not match the total expense amount ($%.2f)", e.Sum, e.Amount)
}

// UnknownMemberError reports a payer or share participant that does not
// exist in the member pool.
type UnknownMemberError struct {
	Name string
}

func (e *UnknownMemberError) Error() string {
	return fmt.Sprintf("member '%s' not found", e.Name)
}
