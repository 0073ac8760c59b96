package trips

import (
	"time"
)

// Visibility classes for trips
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Trip represents a published trip post, joined with its author's minimal profile.
// Engagement counters are attached per request by the feed layer and are never
// stored on the trip row itself.
type Trip struct {
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description,omitempty" db:"description"`
	PhotoURL     string    `json:"photoUrl,omitempty" db:"photo_url"`
	Visibility   string    `json:"-" db:"visibility"`
	ActivityTags []string  `json:"activityTags" db:"activity_tags"`
	Author       Author    `json:"author"`
	ID           int64     `json:"id" db:"id"`
}

// Author is the minimal author profile joined onto every trip in a listing
type Author struct {
	Handle      string `json:"handle" db:"handle"`
	DisplayName string `json:"displayName,omitempty" db:"display_name"`
	AvatarURL   string `json:"avatarUrl,omitempty" db:"avatar_url"`
	ID          int64  `json:"id" db:"id"`
}
