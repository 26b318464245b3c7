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

type AdminHandler struct {
	uc usecase.AdminUsecase
}

type banUserRequest struct {
	Reason string `json:"reason"`
}

type createMessageRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Type    string `json:"type"`
}

func NewAdminHandler(uc usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/users", h.ListUsers)
	r.Post("/users/:id/ban", h.BanUser)
	r.Post("/users/:id/unban", h.UnbanUser)
	r.Post("/messages", h.CreateMessage)
	r.Delete("/messages/:id", h.DeactivateMessage)
	r.Get("/report", h.Report)
}

func (h *AdminHandler) ListUsers(c fiber.Ctx) error {
	items, err := h.uc.ListUsers(c.Context())
	if err != nil {
		return mapAdminUsecaseError(err)
	}

	res := make([]dto.AdminUserResponse, 0, len(items))
	for _, p := range items {
		res = append(res, dto.AdminUserResponse{
			ID:         p.ID,
			Name:       p.Name,
			Location:   p.Location,
			IsPublic:   p.IsPublic,
			IsAdmin:    p.IsAdmin,
			IsBanned:   p.IsBanned,
			Rating:     p.Rating,
			TotalSwaps: p.TotalSwaps,
			CreatedAt:  p.CreatedAt,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *AdminHandler) BanUser(c fiber.Ctx) error {
	adminID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req banUserRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.BanUser(c.Context(), adminID, targetID, req.Reason); err != nil {
		return mapAdminUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *AdminHandler) UnbanUser(c fiber.Ctx) error {
	adminID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.UnbanUser(c.Context(), adminID, targetID); err != nil {
		return mapAdminUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *AdminHandler) CreateMessage(c fiber.Ctx) error {
	var req createMessageRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.CreateMessage(c.Context(), usecase.CreateMessageInput{
		Title:   req.Title,
		Content: req.Content,
		Type:    req.Type,
	})
	if err != nil {
		return mapAdminUsecaseError(err)
	}

	res := dto.AdminMessageResponse{
		ID:        created.ID,
		Title:     created.Title,
		Content:   created.Content,
		Type:      created.Type,
		IsActive:  created.IsActive,
		CreatedAt: created.CreatedAt,
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, res)
}

func (h *AdminHandler) DeactivateMessage(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.DeactivateMessage(c.Context(), id); err != nil {
		return mapAdminUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *AdminHandler) Report(c fiber.Ctx) error {
	rc, err := h.uc.Report(c.Context())
	if err != nil {
		return mapAdminUsecaseError(err)
	}

	res := dto.ReportResponse{
		Users:         rc.Users,
		SwapsByStatus: rc.SwapsByStatus,
		Ratings:       rc.Ratings,
		AverageRating: rc.AverageRating,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func mapAdminUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrMessageNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Message not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
