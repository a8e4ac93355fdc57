package playlist

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestRandomQueue_Regenerate_AnchorFirst(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}
	q := NewRandomQueue(seeded())

	for range 50 {
		for _, anchor := range ids {
			q.Regenerate(ids, anchor)
			got := q.IDs()
			require.Equal(t, anchor, got[0])
			assert.ElementsMatch(t, ids, got)
		}
	}
}

func TestRandomQueue_Regenerate_UnknownAnchor(t *testing.T) {
	ids := []string{"a", "b", "c"}
	q := NewRandomQueue(seeded())

	q.Regenerate(ids, "zzz")

	assert.ElementsMatch(t, ids, q.IDs())
}

func TestRandomQueue_Regenerate_DoesNotMutateInput(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}
	q := NewRandomQueue(seeded())

	q.Regenerate(ids, "c")

	assert.Equal(t, []string{"a", "b", "c", "d"}, ids)
}

func TestRandomQueue_Regenerate_Unbiased(t *testing.T) {
	ids := []string{"a", "b", "c"}
	q := NewRandomQueue(seeded())

	const rounds = 60000
	counts := map[string]int{}
	for range rounds {
		q.Regenerate(ids, "")
		counts[strings.Join(q.IDs(), "")]++
	}

	require.Len(t, counts, 6, "every permutation should appear")
	expected := rounds / 6
	for perm, n := range counts {
		assert.InDelta(t, expected, n, float64(expected)*0.05, "permutation %s", perm)
	}
}

func TestRandomQueue_Valid(t *testing.T) {
	q := NewRandomQueue(seeded())
	q.Regenerate([]string{"a", "b", "c"}, "a")

	assert.True(t, q.Valid(3, "b"))
	assert.False(t, q.Valid(4, "b"), "length mismatch")
	assert.False(t, q.Valid(3, "x"), "missing current")
}

func TestRandomQueue_Ensure(t *testing.T) {
	q := NewRandomQueue(seeded())
	ids := []string{"a", "b", "c"}

	assert.True(t, q.Ensure(ids, "b"))
	assert.Equal(t, "b", q.IDs()[0])

	before := q.IDs()
	assert.False(t, q.Ensure(ids, "c"), "valid queue must not regenerate")
	assert.Equal(t, before, q.IDs())

	assert.True(t, q.Ensure(append(slices.Clone(ids), "d"), "c"))
	assert.Equal(t, 4, q.Len())
	assert.Equal(t, "c", q.IDs()[0])
}

func TestRandomQueue_NextPrev_Circular(t *testing.T) {
	q := NewRandomQueue(seeded())
	q.Regenerate([]string{"a", "b", "c", "d"}, "a")
	order := q.IDs()

	for i, id := range order {
		assert.Equal(t, order[(i+1)%len(order)], q.Next(id))
		assert.Equal(t, order[(i-1+len(order))%len(order)], q.Prev(id))
	}
}

func TestRandomQueue_NextPrev_UnknownCurrent(t *testing.T) {
	q := NewRandomQueue(seeded())
	q.Regenerate([]string{"a", "b", "c"}, "a")
	order := q.IDs()

	assert.Equal(t, order[1], q.Next("missing"))
	assert.Equal(t, order[2], q.Prev("missing"))
}

func TestRandomQueue_NextNeverRepeatsForTwoOrMore(t *testing.T) {
	for n := 2; n <= 6; n++ {
		ids := make([]string, n)
		for i := range ids {
			ids[i] = string(rune('a' + i))
		}
		q := NewRandomQueue(seeded())
		q.Regenerate(ids, ids[0])
		for _, id := range ids {
			assert.NotEqual(t, id, q.Next(id))
		}
	}
}

func TestRandomQueue_Single(t *testing.T) {
	q := NewRandomQueue(seeded())
	q.Regenerate([]string{"only"}, "only")

	assert.Equal(t, "only", q.Next("only"))
	assert.Equal(t, "only", q.Prev("only"))
}

func TestRandomQueue_Empty(t *testing.T) {
	q := NewRandomQueue(nil)
	q.Regenerate(nil, "a")

	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Next("a"))
	assert.False(t, q.Valid(0, ""))
}

func TestRandomQueue_Invalidate(t *testing.T) {
	q := NewRandomQueue(seeded())
	q.Regenerate([]string{"a", "b"}, "a")

	q.Invalidate()

	assert.Equal(t, 0, q.Len())
	assert.False(t, q.Valid(2, "a"))
}
