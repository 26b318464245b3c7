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

type RatingHandler struct {
	uc usecase.RatingUsecase
}

type submitRatingRequest struct {
	Rating   int     `json:"rating"`
	Feedback *string `json:"feedback"`
}

func NewRatingHandler(uc usecase.RatingUsecase) *RatingHandler {
	return &RatingHandler{uc: uc}
}

func (h *RatingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/swaps/:id/rating", h.Submit)
}

// RegisterPublicRoutes exposes a user's received ratings alongside their
// public profile.
func (h *RatingHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/users/:id/ratings", h.ListForUser)
}

func (h *RatingHandler) Submit(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	swapID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req submitRatingRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Submit(c.Context(), userID, usecase.SubmitRatingInput{
		SwapRequestID: swapID,
		Rating:        req.Rating,
		Feedback:      req.Feedback,
	})
	if err != nil {
		return mapRatingUsecaseError(err)
	}

	res := dto.RatingResponse{
		ID:            created.ID,
		SwapRequestID: created.SwapRequestID,
		FromUserID:    created.FromUserID,
		ToUserID:      created.ToUserID,
		Rating:        created.Rating,
		Feedback:      created.Feedback,
		CreatedAt:     created.CreatedAt,
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, res)
}

func (h *RatingHandler) ListForUser(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.ListForUser(c.Context(), userID)
	if err != nil {
		return mapRatingUsecaseError(err)
	}

	res := make([]dto.RatingResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.RatingResponse{
			ID:            it.ID,
			SwapRequestID: it.SwapRequestID,
			FromUserID:    it.FromUserID,
			ToUserID:      it.ToUserID,
			Rating:        it.Rating.Rating,
			Feedback:      it.Feedback,
			FromName:      it.FromName,
			FromPhoto:     it.FromPhoto,
			CreatedAt:     it.CreatedAt,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func mapRatingUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrSwapNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Swap request not found", nil, err)
	case errors.Is(err, usecase.ErrNotParticipant):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrSwapNotCompleted):
		return middleware.NewAppError(fiber.StatusConflict, "Swap not completed", nil, err)
	case errors.Is(err, usecase.ErrAlreadyRated):
		return middleware.NewAppError(fiber.StatusConflict, "Swap already rated", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
