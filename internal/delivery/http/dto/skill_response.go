package dto

import (
	"time"

	"github.com/google/uuid"
)

type SkillResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

type UserSkillSetResponse struct {
	Offered []string `json:"offered"`
	Wanted  []string `json:"wanted"`
}
