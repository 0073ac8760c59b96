package ranking

import (
	"math/rand"
	"time"

	"Wayfare/internal/core/signals"
)

// Scoring weights. Recency dominates for fresh trips, the follow bonus is the
// single largest fixed term, affinity is a small nudge, and staleness is a
// soft demotion rather than an exclusion.
const (
	recencyWindowHours   = 40.0
	likeWeight           = 3
	commentWeight        = 5
	saveWeight           = 8
	followedBonus        = 40.0
	strangerBonus        = 15.0
	affinityWeight       = 5.0
	creatorBonus         = 5.0
	stalenessCutoffHours = 96.0
	stalenessPenalty     = 20.0
	jitterSpread         = 2.0
)

// Candidate is the scorer's view of one trip with its engagement snapshot
type Candidate struct {
	CreatedAt    time.Time
	ActivityTags []string
	Counts       signals.EngagementCounts
	TripID       int64
	AuthorID     int64
}

// Viewer is the identity a feed is ranked for. ID == 0 means anonymous, in
// which case social and affinity terms drop out and ranking degenerates to
// recency plus engagement.
type Viewer struct {
	PreferenceTags []string
	Following      map[int64]struct{}
	ID             int64
}

// Anonymous reports whether the viewer is unauthenticated.
func (v Viewer) Anonymous() bool { return v.ID == 0 }

// Scorer is a pure rank-score function over (candidate, viewer). The clock
// and the jitter source are injected so tests can pin both; jitter exists
// only to break ties between identically scored trips and carries no ranking
// meaning.
type Scorer struct {
	now    func() time.Time
	jitter func() float64 // uniform [0,1)
}

// NewScorer creates a scorer. Pass nil for either argument to get the real
// clock and math/rand jitter.
func NewScorer(now func() time.Time, jitter func() float64) *Scorer {
	if now == nil {
		now = time.Now
	}
	if jitter == nil {
		jitter = rand.Float64
	}
	return &Scorer{now: now, jitter: jitter}
}

// Score computes the rank score for one candidate.
func (s *Scorer) Score(c Candidate, v Viewer) float64 {
	ageHours := s.now().Sub(c.CreatedAt).Hours()

	recency := recencyWindowHours - ageHours
	if recency < 0 {
		recency = 0
	}

	engagement := float64(c.Counts.Likes*likeWeight +
		c.Counts.Comments*commentWeight +
		c.Counts.Saves*saveWeight)

	score := recency + engagement

	if !v.Anonymous() {
		isCreator := c.AuthorID == v.ID
		if _, followed := v.Following[c.AuthorID]; followed {
			score += followedBonus
		} else if !isCreator {
			score += strangerBonus
		}
		score += float64(tagOverlap(c.ActivityTags, v.PreferenceTags)) * affinityWeight
		if isCreator {
			score += creatorBonus
		}
	}

	if ageHours > stalenessCutoffHours {
		score -= stalenessPenalty
	}

	return score + s.jitter()*jitterSpread
}

// tagOverlap counts distinct tags present in both lists
func tagOverlap(tags, prefs []string) int {
	if len(tags) == 0 || len(prefs) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(prefs))
	for _, p := range prefs {
		set[p] = struct{}{}
	}
	n := 0
	for _, t := range tags {
		if _, ok := set[t]; ok {
			n++
			delete(set, t) // count each shared tag once
		}
	}
	return n
}
