package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"skillswap/internal/domain/swap"
	"skillswap/internal/notification"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrAlreadyRated     = errors.New("already rated")
	ErrSwapNotCompleted = errors.New("swap not completed")
)

const maxFeedbackLen = 1000

type SubmitRatingInput struct {
	SwapRequestID uuid.UUID
	Rating        int
	Feedback      *string
}

type RatingUsecase interface {
	Submit(ctx context.Context, actorID uuid.UUID, in SubmitRatingInput) (repository.Rating, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]repository.ReceivedRating, error)
}

type Rating struct {
	ratings repository.RatingRepository
	swaps   repository.SwapRepository
	relay   notification.Relay
	logger  *log.Logger
}

func NewRatingUsecase(ratings repository.RatingRepository, swaps repository.SwapRepository, relay notification.Relay, logger *log.Logger) *Rating {
	return &Rating{ratings: ratings, swaps: swaps, relay: relay, logger: logger}
}

// Submit records one participant's feedback on a completed swap. The
// counterpart is inferred from the request; each participant rates once.
func (u *Rating) Submit(ctx context.Context, actorID uuid.UUID, in SubmitRatingInput) (repository.Rating, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return repository.Rating{}, ErrInvalidInput
	}
	feedback := in.Feedback
	if feedback != nil {
		f := strings.TrimSpace(*feedback)
		if len(f) > maxFeedbackLen {
			return repository.Rating{}, ErrInvalidInput
		}
		if f == "" {
			feedback = nil
		} else {
			feedback = &f
		}
	}

	req, err := u.swaps.FindByID(ctx, in.SwapRequestID)
	if err != nil {
		if errors.Is(err, repository.ErrSwapNotFound) {
			return repository.Rating{}, ErrSwapNotFound
		}
		return repository.Rating{}, ErrInternal
	}

	if !req.IsParticipant(actorID) {
		return repository.Rating{}, ErrNotParticipant
	}
	if req.Status != swap.StatusCompleted {
		return repository.Rating{}, ErrSwapNotCompleted
	}

	exists, err := u.ratings.ExistsForSwapAndRater(ctx, in.SwapRequestID, actorID)
	if err != nil {
		return repository.Rating{}, ErrInternal
	}
	if exists {
		return repository.Rating{}, ErrAlreadyRated
	}

	toUserID := req.Counterpart(actorID)
	created, err := u.ratings.Create(ctx, repository.Rating{
		ID:            uuid.New(),
		SwapRequestID: in.SwapRequestID,
		FromUserID:    actorID,
		ToUserID:      toUserID,
		Rating:        in.Rating,
		Feedback:      feedback,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return repository.Rating{}, ErrAlreadyRated
		}
		return repository.Rating{}, ErrInternal
	}

	// The aggregate is derived data; a failed recompute does not undo the
	// rating itself.
	if err := u.ratings.RecomputeProfileAggregates(ctx, toUserID); err != nil && u.logger != nil {
		u.logger.Printf("rating aggregate recompute failed | user=%s error=%v", toUserID, err)
	}

	if u.relay != nil {
		u.relay.Notify(toUserID, notification.EventRatingReceived,
			"New rating", "A swap partner rated your exchange")
	}
	return created, nil
}

func (u *Rating) ListForUser(ctx context.Context, userID uuid.UUID) ([]repository.ReceivedRating, error) {
	items, err := u.ratings.ListForUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}
