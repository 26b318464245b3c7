package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"skillswap/internal/database"
	"skillswap/internal/domain/skill"
	"skillswap/internal/domain/swap"
	"skillswap/internal/domain/user"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

const validMessage = "I can teach you guitar basics in exchange for cooking lessons."

type mockSwapRepo struct {
	byID map[uuid.UUID]swap.Request

	createErr       error
	updateAffected  *int64
	listForUserRows []repository.RequestDetails
}

func newMockSwapRepo() *mockSwapRepo {
	return &mockSwapRepo{byID: make(map[uuid.UUID]swap.Request)}
}

func (m *mockSwapRepo) Create(_ context.Context, req swap.Request) (swap.Request, error) {
	if m.createErr != nil {
		return swap.Request{}, m.createErr
	}
	req.Status = swap.StatusPending
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	m.byID[req.ID] = req
	return req, nil
}

func (m *mockSwapRepo) FindByID(_ context.Context, id uuid.UUID) (swap.Request, error) {
	req, ok := m.byID[id]
	if !ok {
		return swap.Request{}, repository.ErrSwapNotFound
	}
	return req, nil
}

func (m *mockSwapRepo) UpdateStatus(_ context.Context, id uuid.UUID, expected, next swap.Status) (int64, error) {
	if m.updateAffected != nil {
		return *m.updateAffected, nil
	}
	req, ok := m.byID[id]
	if !ok || req.Status != expected {
		return 0, nil
	}
	req.Status = next
	req.UpdatedAt = time.Now()
	m.byID[id] = req
	return 1, nil
}

func (m *mockSwapRepo) DeletePending(_ context.Context, id uuid.UUID) (int64, error) {
	req, ok := m.byID[id]
	if !ok || req.Status != swap.StatusPending {
		return 0, nil
	}
	delete(m.byID, id)
	return 1, nil
}

func (m *mockSwapRepo) ListForUser(context.Context, uuid.UUID) ([]repository.RequestDetails, error) {
	return m.listForUserRows, nil
}

type mockSkillRepo struct {
	byName map[string]skill.Skill
}

func (m mockSkillRepo) List(context.Context) ([]skill.Skill, error) { return nil, nil }

func (m mockSkillRepo) FindByName(_ context.Context, name string) (skill.Skill, error) {
	s, ok := m.byName[name]
	if !ok {
		return skill.Skill{}, repository.ErrSkillNotFound
	}
	return s, nil
}

func (m mockSkillRepo) GetOrCreate(_ context.Context, name string) (skill.Skill, error) {
	if s, ok := m.byName[name]; ok {
		return s, nil
	}
	s := skill.Skill{ID: uuid.New(), Name: name, Category: skill.DefaultCategory}
	m.byName[name] = s
	return s, nil
}

type mockUserSkillRepo struct {
	offered map[uuid.UUID]map[uuid.UUID]bool
	rows    map[uuid.UUID][]repository.UserSkillRow

	upserted []skill.UserSkill
	deleted  int64
}

func (m *mockUserSkillRepo) Upsert(_ context.Context, us skill.UserSkill) error {
	m.upserted = append(m.upserted, us)
	return nil
}

func (m *mockUserSkillRepo) Delete(context.Context, uuid.UUID, uuid.UUID, skill.Direction) (int64, error) {
	return m.deleted, nil
}

func (m *mockUserSkillRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]repository.UserSkillRow, error) {
	return m.rows[userID], nil
}

func (m *mockUserSkillRepo) ListByUserIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID][]repository.UserSkillRow, error) {
	out := make(map[uuid.UUID][]repository.UserSkillRow, len(ids))
	for _, id := range ids {
		out[id] = m.rows[id]
	}
	return out, nil
}

func (m *mockUserSkillRepo) HasOffered(_ context.Context, userID, skillID uuid.UUID) (bool, error) {
	return m.offered[userID][skillID], nil
}

type mockProfileRepo struct {
	byID map[uuid.UUID]user.Profile
}

func (m mockProfileRepo) Create(context.Context, database.Tx, user.Profile) error { return nil }

func (m mockProfileRepo) FindByID(_ context.Context, id uuid.UUID) (user.Profile, error) {
	p, ok := m.byID[id]
	if !ok {
		return user.Profile{}, repository.ErrProfileNotFound
	}
	return p, nil
}

func (m mockProfileRepo) Update(_ context.Context, p user.Profile) (user.Profile, error) {
	m.byID[p.ID] = p
	return p, nil
}

func (m mockProfileRepo) SetBanned(_ context.Context, id uuid.UUID, banned bool) error {
	p, ok := m.byID[id]
	if !ok {
		return repository.ErrProfileNotFound
	}
	p.IsBanned = banned
	m.byID[id] = p
	return nil
}

func (m mockProfileRepo) ListPublic(context.Context) ([]user.Profile, error) { return nil, nil }
func (m mockProfileRepo) ListAll(context.Context) ([]user.Profile, error)   { return nil, nil }

type relayEvent struct {
	userID    uuid.UUID
	eventType string
}

type mockRelay struct {
	notifies   []relayEvent
	swapEvents []string
}

func (m *mockRelay) Notify(userID uuid.UUID, eventType, _, _ string) {
	m.notifies = append(m.notifies, relayEvent{userID: userID, eventType: eventType})
}

func (m *mockRelay) SwapEvent(_ uuid.UUID, status string, _ ...uuid.UUID) {
	m.swapEvents = append(m.swapEvents, status)
}

type swapFixture struct {
	uc       *Swap
	swaps    *mockSwapRepo
	profiles mockProfileRepo
	relay    *mockRelay

	from uuid.UUID
	to   uuid.UUID

	guitar  skill.Skill
	cooking skill.Skill
}

func newSwapFixture() *swapFixture {
	from := uuid.New()
	to := uuid.New()

	guitar := skill.Skill{ID: uuid.New(), Name: "Guitar"}
	cooking := skill.Skill{ID: uuid.New(), Name: "Cooking"}

	swaps := newMockSwapRepo()
	skills := mockSkillRepo{byName: map[string]skill.Skill{
		"Guitar":  guitar,
		"Cooking": cooking,
	}}
	userSkills := &mockUserSkillRepo{offered: map[uuid.UUID]map[uuid.UUID]bool{
		from: {guitar.ID: true},
		to:   {cooking.ID: true},
	}}
	profiles := mockProfileRepo{byID: map[uuid.UUID]user.Profile{
		from: {ID: from, Name: "Asha", IsPublic: true},
		to:   {ID: to, Name: "Bram", IsPublic: true},
	}}
	relay := &mockRelay{}

	return &swapFixture{
		uc:       NewSwapUsecase(swaps, skills, userSkills, profiles, relay),
		swaps:    swaps,
		profiles: profiles,
		relay:    relay,
		from:     from,
		to:       to,
		guitar:   guitar,
		cooking:  cooking,
	}
}

func (f *swapFixture) create(t *testing.T) swap.Request {
	t.Helper()
	created, err := f.uc.Create(context.Background(), f.from, CreateSwapInput{
		ToUserID: f.to,
		Pair:     SkillPair{Offered: "Guitar", Wanted: "Cooking"},
		Message:  validMessage,
	})
	if err != nil {
		t.Fatalf("create: unexpected err %v", err)
	}
	return created
}

func TestSwapUsecase_Create_Success(t *testing.T) {
	f := newSwapFixture()

	created := f.create(t)
	if created.Status != swap.StatusPending {
		t.Fatalf("expected pending, got %s", created.Status)
	}
	if created.SkillOfferedID != f.guitar.ID || created.SkillWantedID != f.cooking.ID {
		t.Fatalf("skill ids not resolved from names")
	}
	if len(f.relay.notifies) != 1 || f.relay.notifies[0].userID != f.to {
		t.Fatalf("expected one notification to recipient, got %+v", f.relay.notifies)
	}
}

func TestSwapUsecase_Create_SelfSwap(t *testing.T) {
	f := newSwapFixture()

	_, err := f.uc.Create(context.Background(), f.from, CreateSwapInput{
		ToUserID: f.from,
		Pair:     SkillPair{Offered: "Guitar", Wanted: "Cooking"},
		Message:  validMessage,
	})
	if !errors.Is(err, ErrSelfSwap) {
		t.Fatalf("expected ErrSelfSwap, got %v", err)
	}
}

func TestSwapUsecase_Create_MessageBounds(t *testing.T) {
	f := newSwapFixture()

	for _, msg := range []string{"too short", strings.Repeat("x", swap.MaxMessageLen+1)} {
		_, err := f.uc.Create(context.Background(), f.from, CreateSwapInput{
			ToUserID: f.to,
			Pair:     SkillPair{Offered: "Guitar", Wanted: "Cooking"},
			Message:  msg,
		})
		if !errors.Is(err, ErrMessageLength) {
			t.Fatalf("message %q: expected ErrMessageLength, got %v", msg[:9], err)
		}
	}
}

func TestSwapUsecase_Create_RecipientUnavailable(t *testing.T) {
	f := newSwapFixture()

	private := uuid.New()
	f.profiles.byID[private] = user.Profile{ID: private, IsPublic: false}

	_, err := f.uc.Create(context.Background(), f.from, CreateSwapInput{
		ToUserID: private,
		Pair:     SkillPair{Offered: "Guitar", Wanted: "Cooking"},
		Message:  validMessage,
	})
	if !errors.Is(err, ErrRecipientUnavailable) {
		t.Fatalf("expected ErrRecipientUnavailable, got %v", err)
	}
}

func TestSwapUsecase_Create_SkillNotOffered(t *testing.T) {
	f := newSwapFixture()

	// The recipient does not offer Guitar, so asking for it must fail.
	_, err := f.uc.Create(context.Background(), f.from, CreateSwapInput{
		ToUserID: f.to,
		Pair:     SkillPair{Offered: "Guitar", Wanted: "Guitar"},
		Message:  validMessage,
	})
	if !errors.Is(err, ErrSkillNotOffered) {
		t.Fatalf("expected ErrSkillNotOffered, got %v", err)
	}
}

func TestSwapUsecase_Create_UnknownSkill(t *testing.T) {
	f := newSwapFixture()

	_, err := f.uc.Create(context.Background(), f.from, CreateSwapInput{
		ToUserID: f.to,
		Pair:     SkillPair{Offered: "Juggling", Wanted: "Cooking"},
		Message:  validMessage,
	})
	if !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
}

func TestSwapUsecase_Lifecycle_AcceptThenComplete(t *testing.T) {
	f := newSwapFixture()
	created := f.create(t)

	accepted, err := f.uc.Accept(context.Background(), f.to, created.ID)
	if err != nil {
		t.Fatalf("accept: unexpected err %v", err)
	}
	if accepted.Status != swap.StatusAccepted {
		t.Fatalf("expected accepted, got %s", accepted.Status)
	}

	completed, err := f.uc.Complete(context.Background(), f.from, created.ID)
	if err != nil {
		t.Fatalf("complete: unexpected err %v", err)
	}
	if completed.Status != swap.StatusCompleted {
		t.Fatalf("expected completed, got %s", completed.Status)
	}
}

func TestSwapUsecase_Accept_WrongSide(t *testing.T) {
	f := newSwapFixture()
	created := f.create(t)

	if _, err := f.uc.Accept(context.Background(), f.from, created.ID); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}

func TestSwapUsecase_Accept_LostRace(t *testing.T) {
	f := newSwapFixture()
	created := f.create(t)

	// Zero affected rows with the row still present means the status moved
	// on concurrently.
	zero := int64(0)
	f.swaps.updateAffected = &zero

	if _, err := f.uc.Accept(context.Background(), f.to, created.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestSwapUsecase_Cancel_OnlyRequester(t *testing.T) {
	f := newSwapFixture()
	created := f.create(t)

	if _, err := f.uc.Cancel(context.Background(), f.to, created.ID); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}

	cancelled, err := f.uc.Cancel(context.Background(), f.from, created.ID)
	if err != nil {
		t.Fatalf("cancel: unexpected err %v", err)
	}
	if cancelled.Status != swap.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
}

func TestSwapUsecase_Delete_PendingOnly(t *testing.T) {
	f := newSwapFixture()
	created := f.create(t)

	if err := f.uc.Delete(context.Background(), f.to, created.ID); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("recipient delete: expected ErrNotParticipant, got %v", err)
	}

	if _, err := f.uc.Accept(context.Background(), f.to, created.ID); err != nil {
		t.Fatalf("accept: unexpected err %v", err)
	}
	if err := f.uc.Delete(context.Background(), f.from, created.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("delete accepted: expected ErrInvalidTransition, got %v", err)
	}
}

func TestSwapUsecase_CreateBatch_DuplicatePair(t *testing.T) {
	f := newSwapFixture()

	pair := SkillPair{Offered: "Guitar", Wanted: "Cooking"}
	_, err := f.uc.CreateBatch(context.Background(), f.from, CreateSwapBatchInput{
		ToUserID: f.to,
		Pairs:    []SkillPair{pair, pair},
		Message:  validMessage,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(f.swaps.byID) != 0 {
		t.Fatalf("duplicate pair must fail before creating anything")
	}
}

func TestSwapUsecase_CreateBatch_PartialFailure(t *testing.T) {
	f := newSwapFixture()

	result, err := f.uc.CreateBatch(context.Background(), f.from, CreateSwapBatchInput{
		ToUserID: f.to,
		Pairs: []SkillPair{
			{Offered: "Guitar", Wanted: "Cooking"},
			{Offered: "Juggling", Wanted: "Cooking"},
		},
		Message: validMessage,
	})
	if !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
	if len(result.Created) != 1 {
		t.Fatalf("expected 1 created before failure, got %d", len(result.Created))
	}
	if result.Failed == nil || result.Failed.Offered != "Juggling" {
		t.Fatalf("expected failing pair reported, got %+v", result.Failed)
	}
	// No rollback: the first request stays.
	if len(f.swaps.byID) != 1 {
		t.Fatalf("expected 1 persisted request, got %d", len(f.swaps.byID))
	}
}
