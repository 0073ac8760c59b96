package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"Wayfare/internal/core/trips"
)

type postgresTripRepo struct {
	db *sql.DB
}

// NewTripRepository creates a new PostgreSQL trip repository
func NewTripRepository(db *sql.DB) trips.Repository {
	return &postgresTripRepo{db: db}
}

// ListTrips retrieves trips newest-first, joined with the author profile.
// Single query, no N+1; relies on idx_trips_visibility_created and
// idx_trips_author_created (migration 002).
func (r *postgresTripRepo) ListTrips(ctx context.Context, filter trips.TripFilter) ([]*trips.Trip, error) {
	query := `
		SELECT
			t.id, t.title, t.description, t.photo_url, t.activity_tags,
			t.visibility, t.created_at,
			u.id, u.handle, u.display_name, u.avatar_url
		FROM trips t
		INNER JOIN users u ON t.author_id = u.id
		WHERE `

	var args []interface{}
	if filter.AuthorID != 0 {
		query += `t.author_id = $1`
		args = append(args, filter.AuthorID)
	} else {
		visibility := filter.Visibility
		if visibility == "" {
			visibility = trips.VisibilityPublic
		}
		query += `t.visibility = $1`
		args = append(args, visibility)
	}
	query += `
		ORDER BY t.created_at DESC, t.id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", trips.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var results []*trips.Trip
	for rows.Next() {
		trip := &trips.Trip{}
		var description, photoURL, displayName, avatarURL sql.NullString
		err := rows.Scan(
			&trip.ID, &trip.Title, &description, &photoURL, pq.Array(&trip.ActivityTags),
			&trip.Visibility, &trip.CreatedAt,
			&trip.Author.ID, &trip.Author.Handle, &displayName, &avatarURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trip.Description = description.String
		trip.PhotoURL = photoURL.String
		trip.Author.DisplayName = displayName.String
		trip.Author.AvatarURL = avatarURL.String
		results = append(results, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", trips.ErrStoreUnavailable, err)
	}

	return results, nil
}
