package signals

import "context"

// Repository defines the batched reads the aggregator issues over relation
// edges and comments. Count queries are grouped aggregates over the trip id
// batch; viewer queries are membership lookups scoped to one actor.
type Repository interface {
	// CountLikes returns like counts grouped by trip id. Trips with no likes
	// are absent from the map.
	CountLikes(ctx context.Context, tripIDs []int64) (map[int64]int, error)

	// CountSaves returns save counts grouped by trip id.
	CountSaves(ctx context.Context, tripIDs []int64) (map[int64]int, error)

	// CountComments returns comment counts grouped by trip id.
	CountComments(ctx context.Context, tripIDs []int64) (map[int64]int, error)

	// ViewerLikes returns the subset of tripIDs the viewer has liked.
	ViewerLikes(ctx context.Context, viewerID int64, tripIDs []int64) (map[int64]struct{}, error)

	// ViewerSaves returns the subset of tripIDs the viewer has saved.
	ViewerSaves(ctx context.Context, viewerID int64, tripIDs []int64) (map[int64]struct{}, error)

	// ViewerFollowing returns the subset of authorIDs the viewer follows.
	ViewerFollowing(ctx context.Context, viewerID int64, authorIDs []int64) (map[int64]struct{}, error)
}
