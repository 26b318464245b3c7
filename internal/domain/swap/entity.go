package swap

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinMessageLen = 20
	MaxMessageLen = 500
)

type Request struct {
	ID             uuid.UUID
	FromUserID     uuid.UUID
	ToUserID       uuid.UUID
	SkillOfferedID uuid.UUID
	SkillWantedID  uuid.UUID
	Message        string
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (r Request) IsParticipant(userID uuid.UUID) bool {
	return userID == r.FromUserID || userID == r.ToUserID
}

// Counterpart returns the other participant of the request. The caller must
// already have verified that userID is a participant.
func (r Request) Counterpart(userID uuid.UUID) uuid.UUID {
	if userID == r.FromUserID {
		return r.ToUserID
	}
	return r.FromUserID
}
