package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"Wayfare/internal/core/signals"
)

type postgresSignalRepo struct {
	db *sql.DB
}

// NewSignalRepository creates a new PostgreSQL signal repository over the
// relation edge and comment tables
func NewSignalRepository(db *sql.DB) signals.Repository {
	return &postgresSignalRepo{db: db}
}

// Count queries are a fixed whitelist; the table name is never interpolated
// from caller input.
const (
	countLikesQuery    = `SELECT trip_id, COUNT(*) FROM trip_likes WHERE trip_id = ANY($1) GROUP BY trip_id`
	countSavesQuery    = `SELECT trip_id, COUNT(*) FROM trip_saves WHERE trip_id = ANY($1) GROUP BY trip_id`
	countCommentsQuery = `SELECT trip_id, COUNT(*) FROM trip_comments WHERE trip_id = ANY($1) GROUP BY trip_id`

	viewerLikesQuery = `SELECT trip_id FROM trip_likes WHERE user_id = $1 AND trip_id = ANY($2)`
	viewerSavesQuery = `SELECT trip_id FROM trip_saves WHERE user_id = $1 AND trip_id = ANY($2)`
	followingQuery   = `SELECT followee_id FROM follows WHERE follower_id = $1 AND followee_id = ANY($2)`
)

func (r *postgresSignalRepo) CountLikes(ctx context.Context, tripIDs []int64) (map[int64]int, error) {
	return r.countGrouped(ctx, countLikesQuery, tripIDs)
}

func (r *postgresSignalRepo) CountSaves(ctx context.Context, tripIDs []int64) (map[int64]int, error) {
	return r.countGrouped(ctx, countSavesQuery, tripIDs)
}

func (r *postgresSignalRepo) CountComments(ctx context.Context, tripIDs []int64) (map[int64]int, error) {
	return r.countGrouped(ctx, countCommentsQuery, tripIDs)
}

func (r *postgresSignalRepo) ViewerLikes(ctx context.Context, viewerID int64, tripIDs []int64) (map[int64]struct{}, error) {
	return r.idSet(ctx, viewerLikesQuery, viewerID, tripIDs)
}

func (r *postgresSignalRepo) ViewerSaves(ctx context.Context, viewerID int64, tripIDs []int64) (map[int64]struct{}, error) {
	return r.idSet(ctx, viewerSavesQuery, viewerID, tripIDs)
}

func (r *postgresSignalRepo) ViewerFollowing(ctx context.Context, viewerID int64, authorIDs []int64) (map[int64]struct{}, error) {
	return r.idSet(ctx, followingQuery, viewerID, authorIDs)
}

// countGrouped runs one grouped aggregate over the id batch
func (r *postgresSignalRepo) countGrouped(ctx context.Context, query string, ids []int64) (map[int64]int, error) {
	counts := make(map[int64]int, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", signals.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("failed to scan grouped count: %w", err)
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", signals.ErrStoreUnavailable, err)
	}
	return counts, nil
}

// idSet runs one actor-scoped membership lookup over the id batch
func (r *postgresSignalRepo) idSet(ctx context.Context, query string, actorID int64, ids []int64) (map[int64]struct{}, error) {
	set := make(map[int64]struct{}, len(ids))
	if len(ids) == 0 {
		return set, nil
	}

	rows, err := r.db.QueryContext(ctx, query, actorID, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", signals.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}
		set[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", signals.ErrStoreUnavailable, err)
	}
	return set, nil
}
