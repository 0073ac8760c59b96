package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"Wayfare/internal/core/users"
)

type postgresUserRepo struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) users.Repository {
	return &postgresUserRepo{db: db}
}

// GetByID retrieves a user profile with preference tags
func (r *postgresUserRepo) GetByID(ctx context.Context, id int64) (*users.User, error) {
	user := &users.User{}
	query := `
		SELECT id, handle, display_name, avatar_url, preference_tags, created_at
		FROM users
		WHERE id = $1`

	var displayName, avatarURL sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Handle, &displayName, &avatarURL,
		pq.Array(&user.PreferenceTags), &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	user.DisplayName = displayName.String
	user.AvatarURL = avatarURL.String
	return user, nil
}
