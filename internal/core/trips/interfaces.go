package trips

import "context"

// TripFilter restricts a candidate listing to one visibility class or to a
// single author (profile view). AuthorID takes precedence when set.
type TripFilter struct {
	Visibility string
	AuthorID   int64
}

// Repository defines read-only access to persisted trips.
// Listings are returned newest-first, each joined with the author's minimal
// profile. The feed engine never writes trips; creation and editing belong to
// the posting surface.
type Repository interface {
	// ListTrips returns trips matching the filter, sorted by creation time
	// descending. Transport or storage failures wrap ErrStoreUnavailable.
	ListTrips(ctx context.Context, filter TripFilter) ([]*Trip, error)
}
