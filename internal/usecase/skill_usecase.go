package usecase

import (
	"context"

	"skillswap/internal/domain/skill"
	"skillswap/internal/infrastructure/cache"
	"skillswap/internal/repository"
)

const cacheKeySkills = "skills:all"

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]skill.Skill, error)
}

type Skill struct {
	repo  repository.SkillRepository
	cache Cache
}

func NewSkillUsecase(repo repository.SkillRepository, c Cache) *Skill {
	return &Skill{repo: repo, cache: c}
}

func (u *Skill) ListSkills(ctx context.Context) ([]skill.Skill, error) {
	if u.cache != nil {
		var cached []skill.Skill
		if ok, err := u.cache.GetJSON(ctx, cacheKeySkills, &cached); err == nil && ok {
			return cached, nil
		}
	}

	items, err := u.repo.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, cacheKeySkills, items, cache.DefaultTTL)
	}
	return items, nil
}
