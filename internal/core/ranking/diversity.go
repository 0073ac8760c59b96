package ranking

const (
	// DefaultAuthorSpacing is the minimum distance between two trips from the
	// same author in a ranked feed. An author may reappear no sooner than this
	// many positions after their previous trip.
	DefaultAuthorSpacing = 3

	// spacingLookahead bounds how far into the sorted tail SpaceAuthors will
	// search for a substitute before giving up and emitting in score order.
	spacingLookahead = 12
)

// AuthorProvider is implemented by any ranked item that knows its author.
type AuthorProvider interface {
	GetAuthorID() int64
}

// SpaceAuthors enforces author spacing over a score-sorted sequence. It walks
// the list greedily: when the next item's author appeared within the last
// `window` emitted positions, it pulls the nearest different-author item
// forward from a bounded lookahead, shifting the displaced items back one
// position so score order is otherwise preserved. Spacing is a soft
// constraint: when no eligible substitute exists the item is emitted as-is,
// and no item is ever dropped.
func SpaceAuthors[T AuthorProvider](items []T, window int) []T {
	if window <= 0 || len(items) < 2 {
		return items
	}

	work := make([]T, len(items))
	copy(work, items)

	lastPos := make(map[int64]int) // author -> index of last emitted item
	out := make([]T, 0, len(work))

	violates := func(authorID int64) bool {
		pos, seen := lastPos[authorID]
		return seen && len(out)-pos < window
	}

	for i := 0; i < len(work); i++ {
		if violates(work[i].GetAuthorID()) {
			limit := i + spacingLookahead
			if limit > len(work)-1 {
				limit = len(work) - 1
			}
			for j := i + 1; j <= limit; j++ {
				if violates(work[j].GetAuthorID()) {
					continue
				}
				// Pull the substitute forward, shifting the run back one slot.
				sub := work[j]
				copy(work[i+1:j+1], work[i:j])
				work[i] = sub
				break
			}
		}
		out = append(out, work[i])
		lastPos[work[i].GetAuthorID()] = len(out) - 1
	}

	return out
}
