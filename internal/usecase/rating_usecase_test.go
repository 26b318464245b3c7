package usecase

import (
	"context"
	"errors"
	"testing"

	"skillswap/internal/domain/swap"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type mockRatingRepo struct {
	existing map[uuid.UUID]map[uuid.UUID]bool
	created  []repository.Rating

	createErr    error
	recomputed   []uuid.UUID
	recomputeErr error
}

func newMockRatingRepo() *mockRatingRepo {
	return &mockRatingRepo{existing: make(map[uuid.UUID]map[uuid.UUID]bool)}
}

func (m *mockRatingRepo) Create(_ context.Context, rt repository.Rating) (repository.Rating, error) {
	if m.createErr != nil {
		return repository.Rating{}, m.createErr
	}
	m.created = append(m.created, rt)
	return rt, nil
}

func (m *mockRatingRepo) ExistsForSwapAndRater(_ context.Context, swapID, raterID uuid.UUID) (bool, error) {
	return m.existing[swapID][raterID], nil
}

func (m *mockRatingRepo) ListForUser(context.Context, uuid.UUID) ([]repository.ReceivedRating, error) {
	return nil, nil
}

func (m *mockRatingRepo) RecomputeProfileAggregates(_ context.Context, userID uuid.UUID) error {
	m.recomputed = append(m.recomputed, userID)
	return m.recomputeErr
}

func ratingFixture(status swap.Status) (*Rating, *mockRatingRepo, *mockRelay, swap.Request) {
	from := uuid.New()
	to := uuid.New()
	req := swap.Request{ID: uuid.New(), FromUserID: from, ToUserID: to, Status: status}

	swaps := newMockSwapRepo()
	swaps.byID[req.ID] = req

	ratings := newMockRatingRepo()
	relay := &mockRelay{}
	return NewRatingUsecase(ratings, swaps, relay, nil), ratings, relay, req
}

func TestRatingUsecase_Submit_Success(t *testing.T) {
	uc, ratings, relay, req := ratingFixture(swap.StatusCompleted)

	feedback := "Great teacher, very patient."
	created, err := uc.Submit(context.Background(), req.FromUserID, SubmitRatingInput{
		SwapRequestID: req.ID,
		Rating:        5,
		Feedback:      &feedback,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.ToUserID != req.ToUserID {
		t.Fatalf("rating must target the counterpart, got %s", created.ToUserID)
	}
	if len(ratings.recomputed) != 1 || ratings.recomputed[0] != req.ToUserID {
		t.Fatalf("expected aggregate recompute for recipient, got %v", ratings.recomputed)
	}
	if len(relay.notifies) != 1 || relay.notifies[0].userID != req.ToUserID {
		t.Fatalf("expected notification to recipient, got %+v", relay.notifies)
	}
}

func TestRatingUsecase_Submit_RecipientRatesRequester(t *testing.T) {
	uc, _, _, req := ratingFixture(swap.StatusCompleted)

	created, err := uc.Submit(context.Background(), req.ToUserID, SubmitRatingInput{
		SwapRequestID: req.ID,
		Rating:        3,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.ToUserID != req.FromUserID {
		t.Fatalf("expected rating for requester, got %s", created.ToUserID)
	}
}

func TestRatingUsecase_Submit_OutOfRange(t *testing.T) {
	uc, _, _, req := ratingFixture(swap.StatusCompleted)

	for _, r := range []int{0, 6, -1} {
		_, err := uc.Submit(context.Background(), req.FromUserID, SubmitRatingInput{
			SwapRequestID: req.ID,
			Rating:        r,
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("rating %d: expected ErrInvalidInput, got %v", r, err)
		}
	}
}

func TestRatingUsecase_Submit_NotCompleted(t *testing.T) {
	for _, st := range []swap.Status{swap.StatusPending, swap.StatusAccepted, swap.StatusRejected, swap.StatusCancelled} {
		uc, _, _, req := ratingFixture(st)

		_, err := uc.Submit(context.Background(), req.FromUserID, SubmitRatingInput{
			SwapRequestID: req.ID,
			Rating:        4,
		})
		if !errors.Is(err, ErrSwapNotCompleted) {
			t.Fatalf("status %s: expected ErrSwapNotCompleted, got %v", st, err)
		}
	}
}

func TestRatingUsecase_Submit_NotParticipant(t *testing.T) {
	uc, _, _, req := ratingFixture(swap.StatusCompleted)

	_, err := uc.Submit(context.Background(), uuid.New(), SubmitRatingInput{
		SwapRequestID: req.ID,
		Rating:        4,
	})
	if !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}

func TestRatingUsecase_Submit_AlreadyRated(t *testing.T) {
	uc, ratings, _, req := ratingFixture(swap.StatusCompleted)
	ratings.existing[req.ID] = map[uuid.UUID]bool{req.FromUserID: true}

	_, err := uc.Submit(context.Background(), req.FromUserID, SubmitRatingInput{
		SwapRequestID: req.ID,
		Rating:        4,
	})
	if !errors.Is(err, ErrAlreadyRated) {
		t.Fatalf("expected ErrAlreadyRated, got %v", err)
	}

	// The counterpart's own rating is still allowed.
	if _, err := uc.Submit(context.Background(), req.ToUserID, SubmitRatingInput{
		SwapRequestID: req.ID,
		Rating:        4,
	}); err != nil {
		t.Fatalf("counterpart submit: unexpected err %v", err)
	}
}

func TestRatingUsecase_Submit_UnknownSwap(t *testing.T) {
	uc, _, _, _ := ratingFixture(swap.StatusCompleted)

	_, err := uc.Submit(context.Background(), uuid.New(), SubmitRatingInput{
		SwapRequestID: uuid.New(),
		Rating:        4,
	})
	if !errors.Is(err, ErrSwapNotFound) {
		t.Fatalf("expected ErrSwapNotFound, got %v", err)
	}
}

func TestRatingUsecase_Submit_RecomputeFailureDoesNotFail(t *testing.T) {
	uc, ratings, _, req := ratingFixture(swap.StatusCompleted)
	ratings.recomputeErr = errors.New("boom")

	if _, err := uc.Submit(context.Background(), req.FromUserID, SubmitRatingInput{
		SwapRequestID: req.ID,
		Rating:        5,
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ratings.created) != 1 {
		t.Fatalf("rating must persist despite recompute failure")
	}
}
