package usecase

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/domain/swap"
	"skillswap/internal/notification"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrSwapNotFound         = errors.New("swap request not found")
	ErrSkillNotFound        = errors.New("skill not found")
	ErrInvalidTransition    = errors.New("invalid transition")
	ErrNotParticipant       = errors.New("not a participant")
	ErrSkillNotOffered      = errors.New("skill not in offered set")
	ErrRecipientUnavailable = errors.New("recipient unavailable")
	ErrSelfSwap             = errors.New("cannot swap with yourself")
	ErrMessageLength        = errors.New("message length out of bounds")
)

// SkillPair names one proposed exchange: a skill the requester offers for a
// skill the recipient offers.
type SkillPair struct {
	Offered string
	Wanted  string
}

type CreateSwapInput struct {
	ToUserID uuid.UUID
	Pair     SkillPair
	Message  string
}

type CreateSwapBatchInput struct {
	ToUserID uuid.UUID
	Pairs    []SkillPair
	Message  string
}

// BatchResult reports what a multi-skill submission actually committed.
// Creation is sequential with no rollback: on failure the requests created
// before the failing pair remain.
type BatchResult struct {
	Created []swap.Request
	Failed  *SkillPair
}

type SwapUsecase interface {
	Create(ctx context.Context, actorID uuid.UUID, in CreateSwapInput) (swap.Request, error)
	CreateBatch(ctx context.Context, actorID uuid.UUID, in CreateSwapBatchInput) (BatchResult, error)
	Accept(ctx context.Context, actorID, swapID uuid.UUID) (swap.Request, error)
	Reject(ctx context.Context, actorID, swapID uuid.UUID) (swap.Request, error)
	Cancel(ctx context.Context, actorID, swapID uuid.UUID) (swap.Request, error)
	Complete(ctx context.Context, actorID, swapID uuid.UUID) (swap.Request, error)
	Delete(ctx context.Context, actorID, swapID uuid.UUID) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]repository.RequestDetails, error)
}

type Swap struct {
	swaps      repository.SwapRepository
	skills     repository.SkillRepository
	userSkills repository.UserSkillRepository
	profiles   repository.ProfileRepository
	relay      notification.Relay
}

func NewSwapUsecase(
	swaps repository.SwapRepository,
	skills repository.SkillRepository,
	userSkills repository.UserSkillRepository,
	profiles repository.ProfileRepository,
	relay notification.Relay,
) *Swap {
	return &Swap{swaps: swaps, skills: skills, userSkills: userSkills, profiles: profiles, relay: relay}
}

func (u *Swap) Create(ctx context.Context, actorID uuid.UUID, in CreateSwapInput) (swap.Request, error) {
	if actorID == in.ToUserID {
		return swap.Request{}, ErrSelfSwap
	}

	msg := strings.TrimSpace(in.Message)
	if len(msg) < swap.MinMessageLen || len(msg) > swap.MaxMessageLen {
		return swap.Request{}, ErrMessageLength
	}

	recipient, err := u.profiles.FindByID(ctx, in.ToUserID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return swap.Request{}, ErrUserNotFound
		}
		return swap.Request{}, ErrInternal
	}
	if !recipient.IsPublic || recipient.IsBanned {
		return swap.Request{}, ErrRecipientUnavailable
	}

	offeredID, wantedID, err := u.resolvePair(ctx, actorID, in.ToUserID, in.Pair)
	if err != nil {
		return swap.Request{}, err
	}

	created, err := u.swaps.Create(ctx, swap.Request{
		ID:             uuid.New(),
		FromUserID:     actorID,
		ToUserID:       in.ToUserID,
		SkillOfferedID: offeredID,
		SkillWantedID:  wantedID,
		Message:        msg,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return swap.Request{}, ErrUserNotFound
		}
		return swap.Request{}, ErrInternal
	}

	if u.relay != nil {
		u.relay.Notify(created.ToUserID, notification.EventNewRequest,
			"New swap request", "Someone wants to exchange skills with you")
		u.relay.SwapEvent(created.ID, string(created.Status), created.FromUserID, created.ToUserID)
	}
	return created, nil
}

// CreateBatch creates one request per pair, sequentially. A duplicate pair
// fails the whole submission up front; any later failure stops the loop and
// leaves the earlier requests committed.
func (u *Swap) CreateBatch(ctx context.Context, actorID uuid.UUID, in CreateSwapBatchInput) (BatchResult, error) {
	if len(in.Pairs) == 0 {
		return BatchResult{}, ErrInvalidInput
	}

	seen := make(map[SkillPair]bool, len(in.Pairs))
	for _, p := range in.Pairs {
		if seen[p] {
			return BatchResult{}, ErrInvalidInput
		}
		seen[p] = true
	}

	res := BatchResult{Created: make([]swap.Request, 0, len(in.Pairs))}
	for i := range in.Pairs {
		pair := in.Pairs[i]
		created, err := u.Create(ctx, actorID, CreateSwapInput{
			ToUserID: in.ToUserID,
			Pair:     pair,
			Message:  in.Message,
		})
		if err != nil {
			res.Failed = &pair
			return res, err
		}
		res.Created = append(res.Created, created)
	}
	return res, nil
}

func (u *Swap) Accept(ctx context.Context, actorID, swapID uuid.UUID) (swap.Request, error) {
	return u.transition(ctx, actorID, swapID, swap.ActionAccept,
		notification.EventRequestAccepted, "Swap request accepted", "Your swap request was accepted")
}

func (u *Swap) Reject(ctx context.Context, actorID, swapID uuid.UUID) (swap.Request, error) {
	return u.transition(ctx, actorID, swapID, swap.ActionReject,
		notification.EventRequestRejected, "Swap request rejected", "Your swap request was rejected")
}

func (u *Swap) Cancel(ctx context.Context, actorID, swapID uuid.UUID) (swap.Request, error) {
	return u.transition(ctx, actorID, swapID, swap.ActionCancel,
		notification.EventRequestCancelled, "Swap request cancelled", "A swap request sent to you was cancelled")
}

func (u *Swap) Complete(ctx context.Context, actorID, swapID uuid.UUID) (swap.Request, error) {
	return u.transition(ctx, actorID, swapID, swap.ActionComplete,
		notification.EventRequestCompleted, "Swap completed", "Your skill exchange was marked completed")
}

// Delete hard-deletes a request; only the requester may do it and only while
// the request is still pending.
func (u *Swap) Delete(ctx context.Context, actorID, swapID uuid.UUID) error {
	req, err := u.swaps.FindByID(ctx, swapID)
	if err != nil {
		if errors.Is(err, repository.ErrSwapNotFound) {
			return ErrSwapNotFound
		}
		return ErrInternal
	}

	if actorID != req.FromUserID {
		return ErrNotParticipant
	}
	if req.Status != swap.StatusPending {
		return ErrInvalidTransition
	}

	affected, err := u.swaps.DeletePending(ctx, swapID)
	if err != nil {
		return ErrInternal
	}
	if affected == 0 {
		// The recipient answered first.
		return ErrInvalidTransition
	}

	if u.relay != nil {
		u.relay.Notify(req.ToUserID, notification.EventRequestCancelled,
			"Swap request cancelled", "A swap request sent to you was withdrawn")
		u.relay.SwapEvent(req.ID, string(swap.StatusCancelled), req.FromUserID, req.ToUserID)
	}
	return nil
}

func (u *Swap) ListForUser(ctx context.Context, userID uuid.UUID) ([]repository.RequestDetails, error) {
	items, err := u.swaps.ListForUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Swap) transition(ctx context.Context, actorID, swapID uuid.UUID, action swap.Action, eventType, title, body string) (swap.Request, error) {
	req, err := u.swaps.FindByID(ctx, swapID)
	if err != nil {
		if errors.Is(err, repository.ErrSwapNotFound) {
			return swap.Request{}, ErrSwapNotFound
		}
		return swap.Request{}, ErrInternal
	}

	next, err := swap.Apply(req, actorID, action)
	if err != nil {
		switch {
		case errors.Is(err, swap.ErrNotParticipant):
			return swap.Request{}, ErrNotParticipant
		case errors.Is(err, swap.ErrInvalidTransition):
			return swap.Request{}, ErrInvalidTransition
		default:
			return swap.Request{}, ErrInternal
		}
	}

	affected, err := u.swaps.UpdateStatus(ctx, swapID, req.Status, next)
	if err != nil {
		return swap.Request{}, ErrInternal
	}
	if affected == 0 {
		// Lost a race: the row moved on (or disappeared) between read and
		// write. The conditional update keeps terminal states terminal.
		if _, ferr := u.swaps.FindByID(ctx, swapID); errors.Is(ferr, repository.ErrSwapNotFound) {
			return swap.Request{}, ErrSwapNotFound
		}
		return swap.Request{}, ErrInvalidTransition
	}

	updated, err := u.swaps.FindByID(ctx, swapID)
	if err != nil {
		return swap.Request{}, ErrInternal
	}

	if u.relay != nil {
		u.relay.Notify(req.Counterpart(actorID), eventType, title, body)
		u.relay.SwapEvent(updated.ID, string(updated.Status), updated.FromUserID, updated.ToUserID)
	}
	return updated, nil
}

// resolvePair maps skill names to ids and checks both sides actually offer
// what the request claims. A name miss fails the whole operation.
func (u *Swap) resolvePair(ctx context.Context, fromID, toID uuid.UUID, pair SkillPair) (uuid.UUID, uuid.UUID, error) {
	offeredName := strings.TrimSpace(pair.Offered)
	wantedName := strings.TrimSpace(pair.Wanted)
	if offeredName == "" || wantedName == "" {
		return uuid.Nil, uuid.Nil, ErrInvalidInput
	}

	offered, err := u.skills.FindByName(ctx, offeredName)
	if err != nil {
		return uuid.Nil, uuid.Nil, mapSkillLookupErr(err)
	}
	wanted, err := u.skills.FindByName(ctx, wantedName)
	if err != nil {
		return uuid.Nil, uuid.Nil, mapSkillLookupErr(err)
	}

	ok, err := u.userSkills.HasOffered(ctx, fromID, offered.ID)
	if err != nil {
		return uuid.Nil, uuid.Nil, ErrInternal
	}
	if !ok {
		return uuid.Nil, uuid.Nil, ErrSkillNotOffered
	}

	ok, err = u.userSkills.HasOffered(ctx, toID, wanted.ID)
	if err != nil {
		return uuid.Nil, uuid.Nil, ErrInternal
	}
	if !ok {
		return uuid.Nil, uuid.Nil, ErrSkillNotOffered
	}

	return offered.ID, wanted.ID, nil
}

func mapSkillLookupErr(err error) error {
	if errors.Is(err, repository.ErrSkillNotFound) {
		return ErrSkillNotFound
	}
	return ErrInternal
}
