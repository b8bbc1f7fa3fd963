package application

import "time"

// Status is the application lifecycle state. pending is initial; approved and
// rejected are terminal. canceled is a virtual target: a permitted cancel
// deletes the record instead of storing the value.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusCanceled Status = "canceled"
)

// transitions is the whole state machine. Anything absent here is forbidden,
// in particular every edge out of a terminal state.
var transitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusApproved: true,
		StatusRejected: true,
		StatusCanceled: true,
	},
}

func CanTransition(from, to Status) bool { return transitions[from][to] }

// Terminal reports whether s admits no further transitions.
func Terminal(s Status) bool { return len(transitions[s]) == 0 }

// Transition moves the application to a terminal decision, recording who
// decided and when. It is the single mutation path for Status; callers must
// hold the row (unit-of-work lock) so concurrent decisions cannot both pass
// the guard.
func (a *Application) Transition(to Status, handledBy, reason string, at time.Time) error {
	if !CanTransition(a.Status, to) {
		if Terminal(a.Status) {
			return ErrAlreadyDecided
		}
		return ErrInvalidTransition
	}
	switch to {
	case StatusApproved:
		a.Status = StatusApproved
		a.ApprovedAt = &at
	case StatusRejected:
		a.Status = StatusRejected
		a.RejectionReason = reason
		a.RejectedAt = &at
	default:
		// canceled never lands in the row; the caller deletes instead.
		return ErrInvalidTransition
	}
	a.HandledBy = handledBy
	return nil
}

// CanCancel reports whether the borrower may still withdraw the application.
func (a *Application) CanCancel() bool { return CanTransition(a.Status, StatusCanceled) }
