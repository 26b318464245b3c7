package swap

import (
	"errors"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a swap request. pending is initial,
// accepted is intermediate, the rest are terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Action string

const (
	ActionAccept   Action = "accept"
	ActionReject   Action = "reject"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
)

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrNotParticipant    = errors.New("not a participant")
	ErrUnknownStatus     = errors.New("unknown status")
)

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", ErrUnknownStatus
	}
	return st, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	switch s {
	case StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type transition struct {
	from Status
	to   Status
}

var transitions = map[Action]transition{
	ActionAccept:   {from: StatusPending, to: StatusAccepted},
	ActionReject:   {from: StatusPending, to: StatusRejected},
	ActionCancel:   {from: StatusPending, to: StatusCancelled},
	ActionComplete: {from: StatusAccepted, to: StatusCompleted},
}

// Next returns the target status of applying action on the current status.
// Every (status, action) pair not in the transition table is rejected with
// ErrInvalidTransition.
func Next(current Status, action Action) (Status, error) {
	t, ok := transitions[action]
	if !ok || t.from != current {
		return "", ErrInvalidTransition
	}
	return t.to, nil
}

// Apply checks both the actor constraint and the transition table for a
// lifecycle action, returning the target status. Actor violations win over
// state violations: a user on the wrong side of the request gets
// ErrNotParticipant regardless of the stored status.
func Apply(r Request, actorID uuid.UUID, action Action) (Status, error) {
	if !r.IsParticipant(actorID) {
		return "", ErrNotParticipant
	}

	switch action {
	case ActionAccept, ActionReject:
		if actorID != r.ToUserID {
			return "", ErrNotParticipant
		}
	case ActionCancel:
		if actorID != r.FromUserID {
			return "", ErrNotParticipant
		}
	case ActionComplete:
		// either participant
	default:
		return "", ErrInvalidTransition
	}

	return Next(r.Status, action)
}
