package swap

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNext_TransitionTable(t *testing.T) {
	cases := []struct {
		from   Status
		action Action
		to     Status
		ok     bool
	}{
		{StatusPending, ActionAccept, StatusAccepted, true},
		{StatusPending, ActionReject, StatusRejected, true},
		{StatusPending, ActionCancel, StatusCancelled, true},
		{StatusAccepted, ActionComplete, StatusCompleted, true},

		{StatusPending, ActionComplete, "", false},
		{StatusAccepted, ActionAccept, "", false},
		{StatusAccepted, ActionReject, "", false},
		{StatusAccepted, ActionCancel, "", false},
	}

	for _, c := range cases {
		got, err := Next(c.from, c.action)
		if c.ok {
			if err != nil {
				t.Fatalf("Next(%s, %s): unexpected err %v", c.from, c.action, err)
			}
			if got != c.to {
				t.Fatalf("Next(%s, %s) = %s, want %s", c.from, c.action, got, c.to)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("Next(%s, %s): expected ErrInvalidTransition, got %v", c.from, c.action, err)
		}
	}
}

func TestNext_TerminalStatesRejectEverything(t *testing.T) {
	for _, st := range []Status{StatusRejected, StatusCompleted, StatusCancelled} {
		for _, a := range []Action{ActionAccept, ActionReject, ActionCancel, ActionComplete} {
			if _, err := Next(st, a); !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("Next(%s, %s): expected ErrInvalidTransition, got %v", st, a, err)
			}
		}
	}
}

func TestApply_ActorRules(t *testing.T) {
	from := uuid.New()
	to := uuid.New()
	stranger := uuid.New()

	pending := Request{FromUserID: from, ToUserID: to, Status: StatusPending}
	accepted := Request{FromUserID: from, ToUserID: to, Status: StatusAccepted}

	if _, err := Apply(pending, stranger, ActionAccept); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("stranger accept: expected ErrNotParticipant, got %v", err)
	}
	if _, err := Apply(pending, from, ActionAccept); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("requester accept: expected ErrNotParticipant, got %v", err)
	}
	if _, err := Apply(pending, from, ActionReject); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("requester reject: expected ErrNotParticipant, got %v", err)
	}
	if _, err := Apply(pending, to, ActionCancel); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("recipient cancel: expected ErrNotParticipant, got %v", err)
	}

	if got, err := Apply(pending, to, ActionAccept); err != nil || got != StatusAccepted {
		t.Fatalf("recipient accept: got (%s, %v)", got, err)
	}
	if got, err := Apply(pending, to, ActionReject); err != nil || got != StatusRejected {
		t.Fatalf("recipient reject: got (%s, %v)", got, err)
	}
	if got, err := Apply(pending, from, ActionCancel); err != nil || got != StatusCancelled {
		t.Fatalf("requester cancel: got (%s, %v)", got, err)
	}
	if got, err := Apply(accepted, from, ActionComplete); err != nil || got != StatusCompleted {
		t.Fatalf("requester complete: got (%s, %v)", got, err)
	}
	if got, err := Apply(accepted, to, ActionComplete); err != nil || got != StatusCompleted {
		t.Fatalf("recipient complete: got (%s, %v)", got, err)
	}
}

func TestApply_ActorViolationWinsOverState(t *testing.T) {
	from := uuid.New()
	to := uuid.New()

	// Completed request, wrong side: the actor check fires before the
	// transition table.
	done := Request{FromUserID: from, ToUserID: to, Status: StatusCompleted}
	if _, err := Apply(done, from, ActionAccept); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
	if _, err := Apply(done, to, ActionAccept); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestParseStatus(t *testing.T) {
	if st, err := ParseStatus("pending"); err != nil || st != StatusPending {
		t.Fatalf("ParseStatus(pending): got (%s, %v)", st, err)
	}
	if _, err := ParseStatus("archived"); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestCounterpart(t *testing.T) {
	from := uuid.New()
	to := uuid.New()
	r := Request{FromUserID: from, ToUserID: to}

	if got := r.Counterpart(from); got != to {
		t.Fatalf("Counterpart(from) = %s, want %s", got, to)
	}
	if got := r.Counterpart(to); got != from {
		t.Fatalf("Counterpart(to) = %s, want %s", got, from)
	}
}
