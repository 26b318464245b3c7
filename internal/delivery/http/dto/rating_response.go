package dto

import (
	"time"

	"github.com/google/uuid"
)

type RatingResponse struct {
	ID            uuid.UUID `json:"id"`
	SwapRequestID uuid.UUID `json:"swap_request_id"`
	FromUserID    uuid.UUID `json:"from_user_id"`
	ToUserID      uuid.UUID `json:"to_user_id"`
	Rating        int       `json:"rating"`
	Feedback      *string   `json:"feedback"`
	FromName      string    `json:"from_name,omitempty"`
	FromPhoto     *string   `json:"from_photo,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
