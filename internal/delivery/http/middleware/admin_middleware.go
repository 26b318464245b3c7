package middleware

import (
	"errors"

	"skillswap/internal/repository"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// AdminMiddleware gates a route group on the caller's stored admin flag.
// Admin status lives in the profile row, not in the token, so revoking it
// takes effect immediately.
type AdminMiddleware struct {
	profiles repository.ProfileRepository
}

func NewAdminMiddleware(profiles repository.ProfileRepository) *AdminMiddleware {
	return &AdminMiddleware{profiles: profiles}
}

func (m *AdminMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		userID, ok := c.Locals(CtxUserIDKey).(uuid.UUID)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		prof, err := m.profiles.FindByID(c.Context(), userID)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
			}
			return NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}

		if prof.IsBanned || !prof.IsAdmin {
			return NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
		}

		return c.Next()
	}
}
