package handler

import (
	"errors"

	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/pkg/response"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

type updateProfileRequest struct {
	Name         *string  `json:"name"`
	Location     *string  `json:"location"`
	ProfilePhoto *string  `json:"profile_photo"`
	Availability []string `json:"availability"`
	IsPublic     *bool    `json:"is_public"`
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// RegisterPublicRoutes exposes the browse listing; no credentials required.
func (h *UserHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/users", h.Browse)
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/users/me")
	grp.Get("/", h.Me)
	grp.Put("/", h.UpdateMe)
}

func (h *UserHandler) Browse(c fiber.Ctx) error {
	items, err := h.uc.Browse(c.Context())
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *UserHandler) Me(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	prof, skills, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		return mapUserUsecaseError(err)
	}

	res := dto.ProfileResponse{
		ID:            prof.ID,
		Name:          prof.Name,
		Location:      prof.Location,
		ProfilePhoto:  prof.ProfilePhoto,
		Availability:  prof.Availability,
		IsPublic:      prof.IsPublic,
		Rating:        prof.Rating,
		TotalSwaps:    prof.TotalSwaps,
		SkillsOffered: skills.Offered,
		SkillsWanted:  skills.Wanted,
		CreatedAt:     prof.CreatedAt,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.UpdateProfile(c.Context(), userID, usecase.UpdateProfileInput{
		Name:         req.Name,
		Location:     req.Location,
		ProfilePhoto: req.ProfilePhoto,
		Availability: req.Availability,
		IsPublic:     req.IsPublic,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}

	res := dto.ProfileResponse{
		ID:           updated.ID,
		Name:         updated.Name,
		Location:     updated.Location,
		ProfilePhoto: updated.ProfilePhoto,
		Availability: updated.Availability,
		IsPublic:     updated.IsPublic,
		Rating:       updated.Rating,
		TotalSwaps:   updated.TotalSwaps,
		CreatedAt:    updated.CreatedAt,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func mapUserUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
