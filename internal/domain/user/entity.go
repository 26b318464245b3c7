package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile shares its id with the owning user.
type Profile struct {
	ID           uuid.UUID
	Name         string
	Location     *string
	ProfilePhoto *string
	Availability []string
	IsPublic     bool
	IsAdmin      bool
	IsBanned     bool
	Rating       float64
	TotalSwaps   int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
