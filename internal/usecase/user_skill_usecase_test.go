package usecase

import (
	"context"
	"errors"
	"testing"

	"skillswap/internal/domain/skill"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

func TestUserSkillUsecase_Add_CreatesSkillLazily(t *testing.T) {
	skills := mockSkillRepo{byName: map[string]skill.Skill{}}
	userSkills := &mockUserSkillRepo{}
	uc := NewUserSkillUsecase(skills, userSkills, nil)

	userID := uuid.New()
	if err := uc.Add(context.Background(), userID, "Origami", skill.DirectionOffered); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, ok := skills.byName["Origami"]; !ok {
		t.Fatalf("expected skill created on first reference")
	}
	if len(userSkills.upserted) != 1 {
		t.Fatalf("expected 1 upsert, got %d", len(userSkills.upserted))
	}
	if userSkills.upserted[0].Direction != skill.DirectionOffered {
		t.Fatalf("unexpected direction %s", userSkills.upserted[0].Direction)
	}
}

func TestUserSkillUsecase_Add_InvalidDirection(t *testing.T) {
	uc := NewUserSkillUsecase(mockSkillRepo{byName: map[string]skill.Skill{}}, &mockUserSkillRepo{}, nil)

	err := uc.Add(context.Background(), uuid.New(), "Origami", skill.Direction("teaching"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUserSkillUsecase_Add_BlankName(t *testing.T) {
	uc := NewUserSkillUsecase(mockSkillRepo{byName: map[string]skill.Skill{}}, &mockUserSkillRepo{}, nil)

	err := uc.Add(context.Background(), uuid.New(), "   ", skill.DirectionWanted)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUserSkillUsecase_Remove_MissingSkillIsNoop(t *testing.T) {
	uc := NewUserSkillUsecase(mockSkillRepo{byName: map[string]skill.Skill{}}, &mockUserSkillRepo{}, nil)

	if err := uc.Remove(context.Background(), uuid.New(), "Unicycling", skill.DirectionOffered); err != nil {
		t.Fatalf("expected nil for unknown skill, got %v", err)
	}
}

func TestUserSkillUsecase_ListFor_GroupsByDirection(t *testing.T) {
	userID := uuid.New()
	userSkills := &mockUserSkillRepo{rows: map[uuid.UUID][]repository.UserSkillRow{
		userID: {
			{SkillName: "Guitar", Direction: skill.DirectionOffered},
			{SkillName: "Cooking", Direction: skill.DirectionWanted},
			{SkillName: "Piano", Direction: skill.DirectionOffered},
		},
	}}
	uc := NewUserSkillUsecase(mockSkillRepo{byName: map[string]skill.Skill{}}, userSkills, nil)

	set, err := uc.ListFor(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(set.Offered) != 2 || len(set.Wanted) != 1 {
		t.Fatalf("unexpected grouping: offered=%v wanted=%v", set.Offered, set.Wanted)
	}
}
