package handler

import (
	"context"
	"errors"

	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/domain/swap"
	"skillswap/internal/pkg/response"
	"skillswap/internal/repository"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SwapHandler struct {
	uc usecase.SwapUsecase
}

type skillPairRequest struct {
	Offered string `json:"offered"`
	Wanted  string `json:"wanted"`
}

type createSwapRequest struct {
	ToUserID uuid.UUID        `json:"to_user_id"`
	Pair     skillPairRequest `json:"pair"`
	Message  string           `json:"message"`
}

type createSwapBatchRequest struct {
	ToUserID uuid.UUID          `json:"to_user_id"`
	Pairs    []skillPairRequest `json:"pairs"`
	Message  string             `json:"message"`
}

func NewSwapHandler(uc usecase.SwapUsecase) *SwapHandler {
	return &SwapHandler{uc: uc}
}

func (h *SwapHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/swaps")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Post("/batch", h.CreateBatch)
	grp.Post("/:id/accept", h.Accept)
	grp.Post("/:id/reject", h.Reject)
	grp.Post("/:id/cancel", h.Cancel)
	grp.Post("/:id/complete", h.Complete)
	grp.Delete("/:id", h.Delete)
}

func (h *SwapHandler) List(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListForUser(c.Context(), userID)
	if err != nil {
		return mapSwapUsecaseError(err)
	}

	res := make([]dto.SwapRequestResponse, 0, len(items))
	for _, it := range items {
		res = append(res, swapDetailsResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *SwapHandler) Create(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createSwapRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Create(c.Context(), userID, usecase.CreateSwapInput{
		ToUserID: req.ToUserID,
		Pair:     usecase.SkillPair{Offered: req.Pair.Offered, Wanted: req.Pair.Wanted},
		Message:  req.Message,
	})
	if err != nil {
		return mapSwapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, swapResponse(created))
}

// CreateBatch accepts one recipient and several skill pairs. Requests are
// created one by one; on failure the response still lists what was created
// before the failing pair.
func (h *SwapHandler) CreateBatch(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createSwapBatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	pairs := make([]usecase.SkillPair, 0, len(req.Pairs))
	for _, p := range req.Pairs {
		pairs = append(pairs, usecase.SkillPair{Offered: p.Offered, Wanted: p.Wanted})
	}

	result, err := h.uc.CreateBatch(c.Context(), userID, usecase.CreateSwapBatchInput{
		ToUserID: req.ToUserID,
		Pairs:    pairs,
		Message:  req.Message,
	})
	if err != nil {
		mapped := mapSwapUsecaseError(err)
		// Surface what was committed before the failing pair.
		if appErr, ok := mapped.(*middleware.AppError); ok && len(result.Created) > 0 {
			appErr.Data = batchResponse(result)
		}
		return mapped
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, batchResponse(result))
}

func (h *SwapHandler) Accept(c fiber.Ctx) error {
	return h.transition(c, h.uc.Accept)
}

func (h *SwapHandler) Reject(c fiber.Ctx) error {
	return h.transition(c, h.uc.Reject)
}

func (h *SwapHandler) Cancel(c fiber.Ctx) error {
	return h.transition(c, h.uc.Cancel)
}

func (h *SwapHandler) Complete(c fiber.Ctx) error {
	return h.transition(c, h.uc.Complete)
}

func (h *SwapHandler) Delete(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	swapID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.Delete(c.Context(), userID, swapID); err != nil {
		return mapSwapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *SwapHandler) transition(c fiber.Ctx, op func(ctx context.Context, actorID, swapID uuid.UUID) (swap.Request, error)) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	swapID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := op(c.Context(), userID, swapID)
	if err != nil {
		return mapSwapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, swapResponse(updated))
}

func swapResponse(req swap.Request) dto.SwapRequestResponse {
	return dto.SwapRequestResponse{
		ID:             req.ID,
		FromUserID:     req.FromUserID,
		ToUserID:       req.ToUserID,
		SkillOfferedID: req.SkillOfferedID,
		SkillWantedID:  req.SkillWantedID,
		Message:        req.Message,
		Status:         string(req.Status),
		CreatedAt:      req.CreatedAt,
		UpdatedAt:      req.UpdatedAt,
	}
}

func swapDetailsResponse(it repository.RequestDetails) dto.SwapRequestResponse {
	res := swapResponse(it.Request)
	res.SkillOfferedName = it.SkillOfferedName
	res.SkillWantedName = it.SkillWantedName
	res.FromProfile = &dto.SwapProfileSummary{Name: it.FromName, ProfilePhoto: it.FromPhoto, Location: it.FromLocation}
	res.ToProfile = &dto.SwapProfileSummary{Name: it.ToName, ProfilePhoto: it.ToPhoto, Location: it.ToLocation}
	return res
}

func batchResponse(result usecase.BatchResult) dto.SwapBatchResponse {
	res := dto.SwapBatchResponse{Created: make([]dto.SwapRequestResponse, 0, len(result.Created))}
	for _, it := range result.Created {
		res.Created = append(res.Created, swapResponse(it))
	}
	if result.Failed != nil {
		res.Failed = &dto.SwapPairResponse{Offered: result.Failed.Offered, Wanted: result.Failed.Wanted}
	}
	return res
}

func mapSwapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrSwapNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Swap request not found", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrNotParticipant):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusConflict, "Invalid status transition", nil, err)
	case errors.Is(err, usecase.ErrRecipientUnavailable):
		return middleware.NewAppError(fiber.StatusConflict, "Recipient unavailable", nil, err)
	case errors.Is(err, usecase.ErrSkillNotOffered):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Skill not in offered set", nil, err)
	case errors.Is(err, usecase.ErrSelfSwap):
		return middleware.NewAppError(fiber.StatusBadRequest, "Cannot swap with yourself", nil, err)
	case errors.Is(err, usecase.ErrMessageLength):
		return middleware.NewAppError(fiber.StatusBadRequest, "Message must be 20 to 500 characters", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
