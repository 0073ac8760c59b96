package signals

// EngagementCounts is the engagement snapshot for one trip at computation time
type EngagementCounts struct {
	Likes    int `json:"likes"`
	Saves    int `json:"saves"`
	Comments int `json:"comments"`
}

// SignalBundle carries everything the scorer and the feed hydrator need for
// one candidate batch: per-trip engagement counts plus the viewer's own
// relation edges restricted to the batch. Viewer sets are empty for anonymous
// requests. A bundle is built fresh per request and is never shared across
// viewers.
type SignalBundle struct {
	Counts          map[int64]EngagementCounts
	ViewerLikes     map[int64]struct{}
	ViewerSaves     map[int64]struct{}
	ViewerFollowing map[int64]struct{}
}

// CountsFor returns the engagement counts for a trip, zero-valued when the
// trip has no recorded engagement.
func (b *SignalBundle) CountsFor(tripID int64) EngagementCounts {
	return b.Counts[tripID]
}

// Liked reports whether the viewer has liked the trip.
func (b *SignalBundle) Liked(tripID int64) bool {
	_, ok := b.ViewerLikes[tripID]
	return ok
}

// Saved reports whether the viewer has saved the trip.
func (b *SignalBundle) Saved(tripID int64) bool {
	_, ok := b.ViewerSaves[tripID]
	return ok
}

// Follows reports whether the viewer follows the author.
func (b *SignalBundle) Follows(authorID int64) bool {
	_, ok := b.ViewerFollowing[authorID]
	return ok
}
