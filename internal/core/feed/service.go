package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"Wayfare/internal/cache"
	"Wayfare/internal/core/ranking"
	"Wayfare/internal/core/signals"
	"Wayfare/internal/core/trips"
	"Wayfare/internal/core/users"
	"Wayfare/internal/metrics"
)

const (
	// DefaultPageSize is the page size handlers fall back to.
	DefaultPageSize = 20
	// MaxPageSize is the largest page a caller may request.
	MaxPageSize = 100
	// MaxPage is the deepest page a caller may request. Nothing meaningful
	// lives that deep in a ranked feed, and bounding it keeps the pagination
	// arithmetic safely inside int range.
	MaxPage = 10000

	// cacheTTL bounds staleness of a cached feed page. A hit intentionally
	// serves a point-in-time snapshot; there is no invalidation on mutation.
	cacheTTL = 60 * time.Second

	anonKeySegment = "anon"
)

type feedService struct {
	trips      trips.Repository
	users      users.Repository
	aggregator *signals.Aggregator
	scorer     *ranking.Scorer
	cache      cache.Store
	spacing    int
	logger     *slog.Logger
}

// NewFeedService creates the feed orchestrator. The cache is injected so
// tests can substitute an in-memory store with a controllable clock.
func NewFeedService(
	tripRepo trips.Repository,
	userRepo users.Repository,
	aggregator *signals.Aggregator,
	scorer *ranking.Scorer,
	store cache.Store,
	logger *slog.Logger,
) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &feedService{
		trips:      tripRepo,
		users:      userRepo,
		aggregator: aggregator,
		scorer:     scorer,
		cache:      store,
		spacing:    ranking.DefaultAuthorSpacing,
		logger:     logger,
	}
}

// rankedTrip pairs a candidate with its score through the sort and spacing
// passes
type rankedTrip struct {
	trip  *trips.Trip
	score float64
}

func (r rankedTrip) GetAuthorID() int64 { return r.trip.Author.ID }

// GetFeed returns one page of the personalized ranked feed, cache-first.
func (s *feedService) GetFeed(ctx context.Context, req GetFeedRequest) (*RankedFeedPage, error) {
	if err := validatePagination(req.Page, req.Limit); err != nil {
		return nil, err
	}

	key := feedCacheKey(req.ViewerID, req.Page, req.Limit)
	if page := s.cacheGet(ctx, key); page != nil {
		metrics.FeedCacheHits.Inc()
		return page, nil
	}
	metrics.FeedCacheMisses.Inc()

	pool, err := s.trips.ListTrips(ctx, trips.TripFilter{Visibility: trips.VisibilityPublic})
	if err != nil {
		return nil, fmt.Errorf("failed to list feed candidates: %w", err)
	}

	viewer, err := s.loadViewer(ctx, req.ViewerID)
	if err != nil {
		return nil, err
	}

	bundle, err := s.aggregator.Collect(ctx, req.ViewerID, pool)
	if err != nil {
		return nil, err
	}
	viewer.Following = bundle.ViewerFollowing

	ranked := make([]rankedTrip, len(pool))
	for i, t := range pool {
		ranked[i] = rankedTrip{
			trip: t,
			score: s.scorer.Score(ranking.Candidate{
				TripID:       t.ID,
				AuthorID:     t.Author.ID,
				CreatedAt:    t.CreatedAt,
				ActivityTags: t.ActivityTags,
				Counts:       bundle.CountsFor(t.ID),
			}, viewer),
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	ranked = ranking.SpaceAuthors(ranked, s.spacing)

	page := &RankedFeedPage{
		Items: make([]FeedItem, 0, req.Limit),
		Page:  req.Page,
		Limit: req.Limit,
	}
	start := (req.Page - 1) * req.Limit
	for i := start; i < len(ranked) && i < start+req.Limit; i++ {
		page.Items = append(page.Items, s.hydrate(ranked[i].trip, bundle))
	}

	metrics.FeedPagesBuilt.Inc()
	s.cacheSet(ctx, key, page)
	return page, nil
}

// GetAuthorFeed returns one page of a single author's trips. This path is not
// ranked and not cached: it is already author-scoped and cheap, and profile
// views expect fresh ordering.
func (s *feedService) GetAuthorFeed(ctx context.Context, req GetAuthorFeedRequest) (*RankedFeedPage, error) {
	if err := validatePagination(req.Page, req.Limit); err != nil {
		return nil, err
	}
	if req.AuthorID <= 0 {
		return nil, NewValidationError("authorId", "authorId must be positive")
	}

	pool, err := s.trips.ListTrips(ctx, trips.TripFilter{AuthorID: req.AuthorID})
	if err != nil {
		return nil, fmt.Errorf("failed to list author trips: %w", err)
	}

	page := &RankedFeedPage{
		Items: make([]FeedItem, 0, req.Limit),
		Page:  req.Page,
		Limit: req.Limit,
	}

	start := (req.Page - 1) * req.Limit
	if start >= len(pool) {
		return page, nil
	}
	end := start + req.Limit
	if end > len(pool) {
		end = len(pool)
	}
	batch := pool[start:end]

	// Signals for the page batch only; the pool is already ordered.
	bundle, err := s.aggregator.Collect(ctx, req.ViewerID, batch)
	if err != nil {
		return nil, err
	}
	for _, t := range batch {
		page.Items = append(page.Items, s.hydrate(t, bundle))
	}
	return page, nil
}

// loadViewer fetches the viewer's preference tags. Unknown viewer ids (for
// example a stale token after account deletion) rank as strangers rather than
// failing the request.
func (s *feedService) loadViewer(ctx context.Context, viewerID int64) (ranking.Viewer, error) {
	viewer := ranking.Viewer{ID: viewerID}
	if viewerID == 0 {
		return viewer, nil
	}
	u, err := s.users.GetByID(ctx, viewerID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return viewer, nil
		}
		return viewer, fmt.Errorf("failed to load viewer profile: %w", err)
	}
	viewer.PreferenceTags = u.PreferenceTags
	return viewer, nil
}

func (s *feedService) hydrate(t *trips.Trip, bundle *signals.SignalBundle) FeedItem {
	return FeedItem{
		Trip:   t,
		Counts: bundle.CountsFor(t.ID),
		Viewer: ViewerFlags{
			Liked:           bundle.Liked(t.ID),
			Saved:           bundle.Saved(t.ID),
			FollowingAuthor: bundle.Follows(t.Author.ID),
		},
	}
}

// cacheGet consults the cache and fails open: store errors and undecodable
// entries both fall through to a fresh computation.
func (s *feedService) cacheGet(ctx context.Context, key string) *RankedFeedPage {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		metrics.FeedCacheErrors.Inc()
		s.logger.Warn("feed cache read failed, recomputing", "key", key, "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	var page RankedFeedPage
	if err := json.Unmarshal(raw, &page); err != nil {
		metrics.FeedCacheErrors.Inc()
		s.logger.Warn("feed cache entry undecodable, recomputing", "key", key, "error", err)
		return nil
	}
	return &page
}

// cacheSet stores a fully computed page. Write failures are logged and
// swallowed; they must never surface to the caller.
func (s *feedService) cacheSet(ctx context.Context, key string, page *RankedFeedPage) {
	payload, err := json.Marshal(page)
	if err != nil {
		s.logger.Warn("feed page not cacheable", "key", key, "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, payload, cacheTTL); err != nil {
		metrics.FeedCacheErrors.Inc()
		s.logger.Warn("feed cache write failed", "key", key, "error", err)
	}
}

// feedCacheKey composes the per-viewer, per-page cache key. The viewer
// segment (or the explicit anonymous marker) is what prevents cross-viewer
// leakage; every key must include it.
func feedCacheKey(viewerID int64, page, limit int) string {
	segment := anonKeySegment
	if viewerID != 0 {
		segment = strconv.FormatInt(viewerID, 10)
	}
	return fmt.Sprintf("feed:%s:page:%d:limit:%d", segment, page, limit)
}

func validatePagination(page, limit int) error {
	if page < 1 {
		return NewValidationError("page", "page must be a positive integer")
	}
	if page > MaxPage {
		return NewValidationError("page", fmt.Sprintf("page must not exceed %d", MaxPage))
	}
	if limit < 1 {
		return NewValidationError("limit", "limit must be a positive integer")
	}
	if limit > MaxPageSize {
		return NewValidationError("limit", fmt.Sprintf("limit must not exceed %d", MaxPageSize))
	}
	return nil
}
