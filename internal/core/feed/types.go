package feed

import (
	"context"

	"Wayfare/internal/core/signals"
	"Wayfare/internal/core/trips"
)

// Service is the public entry point of the feed engine
type Service interface {
	// GetFeed returns one page of the viewer-personalized ranked feed.
	// ViewerID == 0 requests the anonymous feed.
	GetFeed(ctx context.Context, req GetFeedRequest) (*RankedFeedPage, error)

	// GetAuthorFeed returns one page of a single author's trips, newest
	// first, with the same per-viewer annotations but no ranking and no
	// caching.
	GetAuthorFeed(ctx context.Context, req GetAuthorFeedRequest) (*RankedFeedPage, error)
}

// GetFeedRequest represents input for the ranked home feed
type GetFeedRequest struct {
	ViewerID int64 `json:"-"`
	Page     int   `json:"page"`
	Limit    int   `json:"limit"`
}

// GetAuthorFeedRequest represents input for a profile trip listing
type GetAuthorFeedRequest struct {
	ViewerID int64 `json:"-"`
	AuthorID int64 `json:"authorId"`
	Page     int   `json:"page"`
	Limit    int   `json:"limit"`
}

// ViewerFlags are the requesting viewer's relation edges to one trip,
// consistent with the store at computation time (not at cache-read time).
type ViewerFlags struct {
	Liked           bool `json:"liked"`
	Saved           bool `json:"saved"`
	FollowingAuthor bool `json:"followingAuthor"`
}

// FeedItem is one trip in a feed page, annotated with its engagement snapshot
// and the viewer's relation flags
type FeedItem struct {
	Trip   *trips.Trip              `json:"trip"`
	Counts signals.EngagementCounts `json:"counts"`
	Viewer ViewerFlags              `json:"viewer"`
}

// RankedFeedPage is one bounded page of an ordered feed
type RankedFeedPage struct {
	Items []FeedItem `json:"items"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
}
