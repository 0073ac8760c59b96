package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"Wayfare/internal/core/signals"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// fixedScorer pins the clock and zeroes jitter so scores are exact
func fixedScorer() *Scorer {
	return NewScorer(func() time.Time { return testNow }, func() float64 { return 0 })
}

func candidateAged(age time.Duration) Candidate {
	return Candidate{
		TripID:    1,
		AuthorID:  10,
		CreatedAt: testNow.Add(-age),
	}
}

func TestScore_RecencyWindow(t *testing.T) {
	s := fixedScorer()
	anon := Viewer{}

	tests := []struct {
		name string
		age  time.Duration
		want float64
	}{
		{"brand new", 0, 40},
		{"two hours old", 2 * time.Hour, 38},
		{"at the window edge", 40 * time.Hour, 0},
		{"past the window", 50 * time.Hour, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, s.Score(candidateAged(tt.age), anon), 1e-9)
		})
	}
}

func TestScore_RecencyMonotonicity(t *testing.T) {
	s := fixedScorer()
	anon := Viewer{}

	// Holding all other signals equal, newer never scores lower within the window.
	newer := s.Score(candidateAged(5*time.Hour), anon)
	older := s.Score(candidateAged(10*time.Hour), anon)
	assert.Greater(t, newer, older)
}

func TestScore_EngagementWeights(t *testing.T) {
	s := fixedScorer()
	anon := Viewer{}

	c := candidateAged(0)
	c.Counts = signals.EngagementCounts{Likes: 2, Comments: 3, Saves: 1}

	// 40 recency + 2*3 + 3*5 + 1*8
	assert.InDelta(t, 40+6+15+8, s.Score(c, anon), 1e-9)
}

func TestScore_SocialBonus(t *testing.T) {
	s := fixedScorer()
	c := candidateAged(0)
	c.AuthorID = 10

	follower := Viewer{ID: 5, Following: map[int64]struct{}{10: {}}}
	assert.InDelta(t, 40+40, s.Score(c, follower), 1e-9, "followed author gets the large bonus")

	stranger := Viewer{ID: 5}
	assert.InDelta(t, 40+15, s.Score(c, stranger), 1e-9, "stranger gets the small bonus")

	creator := Viewer{ID: 10}
	assert.InDelta(t, 40+0+5, s.Score(c, creator), 1e-9, "own trip gets no social bonus, small creator bonus")
}

func TestScore_Affinity(t *testing.T) {
	s := fixedScorer()
	c := candidateAged(0)
	c.ActivityTags = []string{"hiking", "camping", "food"}

	v := Viewer{ID: 5, PreferenceTags: []string{"hiking", "food", "diving"}}
	// 40 recency + 15 stranger + 2 shared tags * 5
	assert.InDelta(t, 40+15+10, s.Score(c, v), 1e-9)
}

func TestScore_StalenessPenalty(t *testing.T) {
	s := fixedScorer()
	anon := Viewer{}

	fresh := candidateAged(95 * time.Hour)
	stale := candidateAged(100 * time.Hour)
	assert.InDelta(t, 0, s.Score(fresh, anon), 1e-9, "no penalty inside the cutoff")
	assert.InDelta(t, -20, s.Score(stale, anon), 1e-9, "soft demotion past the cutoff")
}

func TestScore_AnonymousDegeneratesToRecencyPlusEngagement(t *testing.T) {
	s := fixedScorer()

	c := candidateAged(2 * time.Hour)
	c.ActivityTags = []string{"hiking"}
	c.Counts = signals.EngagementCounts{Likes: 1}

	// Matching tags must not matter without a viewer profile.
	assert.InDelta(t, 38+3, s.Score(c, Viewer{}), 1e-9)
}

func TestScore_JitterBounds(t *testing.T) {
	// Real jitter source: score stays within [base, base+2).
	s := NewScorer(func() time.Time { return testNow }, nil)
	c := candidateAged(0)

	for i := 0; i < 100; i++ {
		score := s.Score(c, Viewer{})
		assert.GreaterOrEqual(t, score, 40.0)
		assert.Less(t, score, 42.0)
	}
}

func TestTagOverlap_CountsSharedTagsOnce(t *testing.T) {
	assert.Equal(t, 1, tagOverlap([]string{"beach", "beach"}, []string{"beach"}))
	assert.Equal(t, 0, tagOverlap(nil, []string{"beach"}))
	assert.Equal(t, 2, tagOverlap([]string{"a", "b", "c"}, []string{"c", "a"}))
}
