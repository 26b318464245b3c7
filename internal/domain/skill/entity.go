package skill

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategory is assigned to skills created lazily on first reference.
const DefaultCategory = "Other"

type Skill struct {
	ID        uuid.UUID
	Name      string
	Category  string
	CreatedAt time.Time
}

// Direction says whether a user offers a skill or wants to learn it. A user
// may hold the same skill in both directions, but never twice in one.
type Direction string

const (
	DirectionOffered Direction = "offered"
	DirectionWanted  Direction = "wanted"
)

func (d Direction) Valid() bool {
	return d == DirectionOffered || d == DirectionWanted
}

type UserSkill struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	SkillID   uuid.UUID
	Direction Direction
	CreatedAt time.Time
}
