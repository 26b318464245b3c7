package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Location      *string   `json:"location"`
	ProfilePhoto  *string   `json:"profile_photo"`
	Availability  []string  `json:"availability"`
	IsPublic      bool      `json:"is_public"`
	Rating        float64   `json:"rating"`
	TotalSwaps    int       `json:"total_swaps"`
	SkillsOffered []string  `json:"skills_offered,omitempty"`
	SkillsWanted  []string  `json:"skills_wanted,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type AdminUserResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Location   *string   `json:"location"`
	IsPublic   bool      `json:"is_public"`
	IsAdmin    bool      `json:"is_admin"`
	IsBanned   bool      `json:"is_banned"`
	Rating     float64   `json:"rating"`
	TotalSwaps int       `json:"total_swaps"`
	CreatedAt  time.Time `json:"created_at"`
}
