package signals

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"Wayfare/internal/core/trips"
)

// Aggregator computes the per-batch signal bundle: grouped engagement counts
// plus the viewer's relation edges. All reads for one batch run concurrently
// and are joined before returning; there are no partial results. The fan-out
// is fixed (three count queries, plus three viewer lookups when the request is
// authenticated).
type Aggregator struct {
	repo Repository
}

// NewAggregator creates a new signal aggregator
func NewAggregator(repo Repository) *Aggregator {
	return &Aggregator{repo: repo}
}

// Collect aggregates signals for a batch of trips on behalf of one viewer.
// viewerID == 0 means anonymous: viewer-scoped lookups are skipped entirely
// and the returned sets are empty.
func (a *Aggregator) Collect(ctx context.Context, viewerID int64, batch []*trips.Trip) (*SignalBundle, error) {
	bundle := &SignalBundle{
		Counts:          make(map[int64]EngagementCounts, len(batch)),
		ViewerLikes:     map[int64]struct{}{},
		ViewerSaves:     map[int64]struct{}{},
		ViewerFollowing: map[int64]struct{}{},
	}
	if len(batch) == 0 {
		return bundle, nil
	}

	tripIDs := make([]int64, 0, len(batch))
	seenAuthors := make(map[int64]struct{}, len(batch))
	authorIDs := make([]int64, 0, len(batch))
	for _, t := range batch {
		tripIDs = append(tripIDs, t.ID)
		if _, ok := seenAuthors[t.Author.ID]; !ok {
			seenAuthors[t.Author.ID] = struct{}{}
			authorIDs = append(authorIDs, t.Author.ID)
		}
	}

	var (
		likeCounts, saveCounts, commentCounts map[int64]int
		viewerLikes, viewerSaves, following   map[int64]struct{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		likeCounts, err = a.repo.CountLikes(gctx, tripIDs)
		return err
	})
	g.Go(func() (err error) {
		saveCounts, err = a.repo.CountSaves(gctx, tripIDs)
		return err
	})
	g.Go(func() (err error) {
		commentCounts, err = a.repo.CountComments(gctx, tripIDs)
		return err
	})
	if viewerID != 0 {
		g.Go(func() (err error) {
			viewerLikes, err = a.repo.ViewerLikes(gctx, viewerID, tripIDs)
			return err
		})
		g.Go(func() (err error) {
			viewerSaves, err = a.repo.ViewerSaves(gctx, viewerID, tripIDs)
			return err
		})
		g.Go(func() (err error) {
			following, err = a.repo.ViewerFollowing(gctx, viewerID, authorIDs)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to aggregate signals: %w", err)
	}

	for _, id := range tripIDs {
		bundle.Counts[id] = EngagementCounts{
			Likes:    likeCounts[id],
			Saves:    saveCounts[id],
			Comments: commentCounts[id],
		}
	}
	if viewerLikes != nil {
		bundle.ViewerLikes = viewerLikes
	}
	if viewerSaves != nil {
		bundle.ViewerSaves = viewerSaves
	}
	if following != nil {
		bundle.ViewerFollowing = following
	}

	return bundle, nil
}
