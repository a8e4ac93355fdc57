package playlist

import (
	"math/rand/v2"
	"slices"
)

// RandomQueue holds a shuffled traversal order over track IDs.
//
// The queue is only meaningful while it is a permutation of the catalog IDs
// and contains the current track. Valid reports that, and callers regenerate
// whenever it does not hold.
type RandomQueue struct {
	ids []string
	rng *rand.Rand
}

// NewRandomQueue creates an empty queue. A nil rng uses the global source.
func NewRandomQueue(rng *rand.Rand) *RandomQueue {
	return &RandomQueue{rng: rng}
}

// Regenerate shuffles ids uniformly and moves anchor to the front when present.
// Only the anchor is swapped; the rest of the order stays as shuffled.
func (q *RandomQueue) Regenerate(ids []string, anchor string) {
	next := slices.Clone(ids)
	for i := len(next) - 1; i > 0; i-- {
		j := q.intN(i + 1)
		next[i], next[j] = next[j], next[i]
	}

	if anchor != "" {
		if idx := slices.Index(next, anchor); idx > 0 {
			next[0], next[idx] = next[idx], next[0]
		}
	}

	q.ids = next
}

// Valid reports whether the queue covers a catalog of catalogLen tracks and
// contains current.
func (q *RandomQueue) Valid(catalogLen int, current string) bool {
	return len(q.ids) == catalogLen && slices.Contains(q.ids, current)
}

// Ensure regenerates the queue, anchored at current, unless it is valid.
// Returns true if the queue was regenerated.
func (q *RandomQueue) Ensure(ids []string, current string) bool {
	if q.Valid(len(ids), current) {
		return false
	}
	q.Regenerate(ids, current)
	return true
}

// Next returns the ID after current, wrapping at the end.
// An unknown current steps from position 0. Returns "" for an empty queue.
func (q *RandomQueue) Next(current string) string {
	return q.step(current, 1)
}

// Prev returns the ID before current, wrapping at the start.
func (q *RandomQueue) Prev(current string) string {
	return q.step(current, -1)
}

func (q *RandomQueue) step(current string, delta int) string {
	n := len(q.ids)
	if n == 0 {
		return ""
	}
	pos := max(slices.Index(q.ids, current), 0)
	return q.ids[((pos+delta)%n+n)%n]
}

// Invalidate drops the current order.
func (q *RandomQueue) Invalidate() {
	q.ids = nil
}

// IDs returns a copy of the current order.
func (q *RandomQueue) IDs() []string {
	return slices.Clone(q.ids)
}

// Len returns the number of IDs in the queue.
func (q *RandomQueue) Len() int {
	return len(q.ids)
}

func (q *RandomQueue) intN(n int) int {
	if q.rng != nil {
		return q.rng.IntN(n)
	}
	return rand.IntN(n)
}
