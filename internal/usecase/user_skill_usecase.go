package usecase

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/domain/skill"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

// SkillSet is a user's skills grouped by direction, as shown on profiles.
type SkillSet struct {
	Offered []string
	Wanted  []string
}

type UserSkillUsecase interface {
	Add(ctx context.Context, userID uuid.UUID, skillName string, direction skill.Direction) error
	Remove(ctx context.Context, userID uuid.UUID, skillName string, direction skill.Direction) error
	ListFor(ctx context.Context, userID uuid.UUID) (SkillSet, error)
}

type UserSkill struct {
	skills     repository.SkillRepository
	userSkills repository.UserSkillRepository
	cache      Cache
}

func NewUserSkillUsecase(skills repository.SkillRepository, userSkills repository.UserSkillRepository, cache Cache) *UserSkill {
	return &UserSkill{skills: skills, userSkills: userSkills, cache: cache}
}

// Add resolves the skill by name, creating it lazily, then upserts the entry.
// Adding a (skill, direction) pair the user already has is a no-op.
func (u *UserSkill) Add(ctx context.Context, userID uuid.UUID, skillName string, direction skill.Direction) error {
	skillName = strings.TrimSpace(skillName)
	if skillName == "" || !direction.Valid() {
		return ErrInvalidInput
	}

	s, err := u.skills.GetOrCreate(ctx, skillName)
	if err != nil {
		return ErrInternal
	}

	if err := u.userSkills.Upsert(ctx, skill.UserSkill{
		ID:        uuid.New(),
		UserID:    userID,
		SkillID:   s.ID,
		Direction: direction,
	}); err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return ErrInternal
	}

	// A lazily created skill also stales the skill catalogue.
	u.invalidate(ctx, cacheKeyPublicUsers, cacheKeySkills)
	return nil
}

// Remove deletes the matching entry. A missing skill or entry is a no-op,
// not an error.
func (u *UserSkill) Remove(ctx context.Context, userID uuid.UUID, skillName string, direction skill.Direction) error {
	skillName = strings.TrimSpace(skillName)
	if skillName == "" || !direction.Valid() {
		return ErrInvalidInput
	}

	s, err := u.skills.FindByName(ctx, skillName)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return nil
		}
		return ErrInternal
	}

	if _, err := u.userSkills.Delete(ctx, userID, s.ID, direction); err != nil {
		return ErrInternal
	}

	u.invalidate(ctx, cacheKeyPublicUsers)
	return nil
}

func (u *UserSkill) ListFor(ctx context.Context, userID uuid.UUID) (SkillSet, error) {
	items, err := u.userSkills.ListByUserID(ctx, userID)
	if err != nil {
		return SkillSet{}, ErrInternal
	}
	return groupSkillSet(items), nil
}

func (u *UserSkill) invalidate(ctx context.Context, keys ...string) {
	if u.cache == nil {
		return
	}
	_ = u.cache.Delete(ctx, keys...)
}

func groupSkillSet(items []repository.UserSkillRow) SkillSet {
	set := SkillSet{Offered: make([]string, 0), Wanted: make([]string, 0)}
	for _, it := range items {
		switch it.Direction {
		case skill.DirectionOffered:
			set.Offered = append(set.Offered, it.SkillName)
		case skill.DirectionWanted:
			set.Wanted = append(set.Wanted, it.SkillName)
		}
	}
	return set
}
