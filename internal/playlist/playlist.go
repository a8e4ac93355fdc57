// Package playlist provides ordering primitives for the track catalog:
// positional moves and the shuffled random-mode traversal.
package playlist

import "slices"

// Move returns a copy of items with the element at fromIndex moved to
// toIndex. Returns false, and items unchanged, if either index is out of
// bounds or both are equal.
func Move[T any](items []T, fromIndex, toIndex int) ([]T, bool) {
	if fromIndex < 0 || fromIndex >= len(items) {
		return items, false
	}
	if toIndex < 0 || toIndex >= len(items) {
		return items, false
	}
	if fromIndex == toIndex {
		return items, false
	}

	next := slices.Clone(items)
	moved := next[fromIndex]
	next = slices.Delete(next, fromIndex, fromIndex+1)
	next = slices.Insert(next, toIndex, moved)
	return next, true
}

// NextIndex returns the sequential successor of current, wrapping to 0.
// A negative current counts as 0, so the successor is 1. Returns -1 for an
// empty list.
func NextIndex(current, length int) int {
	if length <= 0 {
		return -1
	}
	return (max(current, 0) + 1) % length
}

// PrevIndex returns the sequential predecessor of current, wrapping to the
// last index. A negative current wraps as if it were 0.
func PrevIndex(current, length int) int {
	if length <= 0 {
		return -1
	}
	current = max(current, 0)
	if current > 0 {
		return current - 1
	}
	return length - 1
}
