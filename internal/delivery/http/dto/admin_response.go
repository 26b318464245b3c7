package dto

import (
	"time"

	"github.com/google/uuid"
)

type AdminMessageResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type ReportResponse struct {
	Users         int            `json:"users"`
	SwapsByStatus map[string]int `json:"swaps_by_status"`
	Ratings       int            `json:"ratings"`
	AverageRating float64        `json:"average_rating"`
}
