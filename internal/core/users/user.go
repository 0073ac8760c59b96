package users

import (
	"context"
	"errors"
	"time"
)

// User represents a registered account. PreferenceTags are the activity tags
// the user picked at onboarding; the scorer uses them for affinity.
type User struct {
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	Handle         string    `json:"handle" db:"handle"`
	DisplayName    string    `json:"displayName,omitempty" db:"display_name"`
	AvatarURL      string    `json:"avatarUrl,omitempty" db:"avatar_url"`
	PreferenceTags []string  `json:"preferenceTags" db:"preference_tags"`
	ID             int64     `json:"id" db:"id"`
}

// Repository defines the read access the feed engine needs to user profiles
type Repository interface {
	// GetByID retrieves a user by id. Returns ErrUserNotFound if no such user.
	GetByID(ctx context.Context, id int64) (*User, error)
}

// Sentinel errors
var (
	ErrUserNotFound = errors.New("user not found")
)
