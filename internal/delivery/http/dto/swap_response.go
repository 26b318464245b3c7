package dto

import (
	"time"

	"github.com/google/uuid"
)

type SwapProfileSummary struct {
	Name         string  `json:"name"`
	ProfilePhoto *string `json:"profile_photo"`
	Location     *string `json:"location"`
}

type SwapRequestResponse struct {
	ID               uuid.UUID           `json:"id"`
	FromUserID       uuid.UUID           `json:"from_user_id"`
	ToUserID         uuid.UUID           `json:"to_user_id"`
	SkillOfferedID   uuid.UUID           `json:"skill_offered_id"`
	SkillWantedID    uuid.UUID           `json:"skill_wanted_id"`
	SkillOfferedName string              `json:"skill_offered_name,omitempty"`
	SkillWantedName  string              `json:"skill_wanted_name,omitempty"`
	Message          string              `json:"message"`
	Status           string              `json:"status"`
	FromProfile      *SwapProfileSummary `json:"from_profile,omitempty"`
	ToProfile        *SwapProfileSummary `json:"to_profile,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

type SwapBatchResponse struct {
	Created []SwapRequestResponse `json:"created"`
	Failed  *SwapPairResponse     `json:"failed,omitempty"`
}

type SwapPairResponse struct {
	Offered string `json:"offered"`
	Wanted  string `json:"wanted"`
}
