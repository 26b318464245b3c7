package usecase

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/domain/user"
	"skillswap/internal/infrastructure/cache"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

const cacheKeyPublicUsers = "users:public"

var ErrUserNotFound = errors.New("user not found")

type UpdateProfileInput struct {
	Name         *string
	Location     *string
	ProfilePhoto *string
	Availability []string
	IsPublic     *bool
}

// BrowseUser is a public profile with its skill names, as listed on the
// browse page.
type BrowseUser struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Location      *string   `json:"location"`
	ProfilePhoto  *string   `json:"profile_photo"`
	Availability  []string  `json:"availability"`
	Rating        float64   `json:"rating"`
	TotalSwaps    int       `json:"total_swaps"`
	SkillsOffered []string  `json:"skills_offered"`
	SkillsWanted  []string  `json:"skills_wanted"`
}

type UserUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, SkillSet, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.Profile, error)
	Browse(ctx context.Context) ([]BrowseUser, error)
}

type User struct {
	profiles   repository.ProfileRepository
	userSkills repository.UserSkillRepository
	cache      Cache
}

func NewUserUsecase(profiles repository.ProfileRepository, userSkills repository.UserSkillRepository, c Cache) *User {
	return &User{profiles: profiles, userSkills: userSkills, cache: c}
}

func (u *User) GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, SkillSet, error) {
	prof, err := u.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return user.Profile{}, SkillSet{}, ErrUserNotFound
		}
		return user.Profile{}, SkillSet{}, ErrInternal
	}

	items, err := u.userSkills.ListByUserID(ctx, userID)
	if err != nil {
		return user.Profile{}, SkillSet{}, ErrInternal
	}
	return prof, groupSkillSet(items), nil
}

func (u *User) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.Profile, error) {
	prof, err := u.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return user.Profile{}, ErrUserNotFound
		}
		return user.Profile{}, ErrInternal
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return user.Profile{}, ErrInvalidInput
		}
		prof.Name = name
	}
	if in.Location != nil {
		prof.Location = in.Location
	}
	if in.ProfilePhoto != nil {
		prof.ProfilePhoto = in.ProfilePhoto
	}
	if in.Availability != nil {
		prof.Availability = in.Availability
	}
	if in.IsPublic != nil {
		prof.IsPublic = *in.IsPublic
	}

	updated, err := u.profiles.Update(ctx, prof)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return user.Profile{}, ErrUserNotFound
		}
		return user.Profile{}, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.Delete(ctx, cacheKeyPublicUsers)
	}
	return updated, nil
}

func (u *User) Browse(ctx context.Context) ([]BrowseUser, error) {
	if u.cache != nil {
		var cached []BrowseUser
		if ok, err := u.cache.GetJSON(ctx, cacheKeyPublicUsers, &cached); err == nil && ok {
			return cached, nil
		}
	}

	profs, err := u.profiles.ListPublic(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	ids := make([]uuid.UUID, 0, len(profs))
	for _, p := range profs {
		ids = append(ids, p.ID)
	}

	skillsByUser, err := u.userSkills.ListByUserIDs(ctx, ids)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]BrowseUser, 0, len(profs))
	for _, p := range profs {
		set := groupSkillSet(skillsByUser[p.ID])
		out = append(out, BrowseUser{
			ID:            p.ID,
			Name:          p.Name,
			Location:      p.Location,
			ProfilePhoto:  p.ProfilePhoto,
			Availability:  p.Availability,
			Rating:        p.Rating,
			TotalSwaps:    p.TotalSwaps,
			SkillsOffered: set.Offered,
			SkillsWanted:  set.Wanted,
		})
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, cacheKeyPublicUsers, out, cache.DefaultTTL)
	}
	return out, nil
}
