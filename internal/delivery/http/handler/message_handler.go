package handler

import (
	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/pkg/response"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// MessageHandler serves the active platform announcements to everyone.
type MessageHandler struct {
	uc usecase.AdminUsecase
}

func NewMessageHandler(uc usecase.AdminUsecase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

func (h *MessageHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/messages", h.ListActive)
}

func (h *MessageHandler) ListActive(c fiber.Ctx) error {
	items, err := h.uc.ListActiveMessages(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	res := make([]dto.AdminMessageResponse, 0, len(items))
	for _, m := range items {
		res = append(res, dto.AdminMessageResponse{
			ID:        m.ID,
			Title:     m.Title,
			Content:   m.Content,
			Type:      m.Type,
			IsActive:  m.IsActive,
			CreatedAt: m.CreatedAt,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}
