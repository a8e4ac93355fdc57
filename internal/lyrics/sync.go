package lyrics

import (
	"sort"
	"strconv"
	"time"
)

// EmptyKey identifies a context with no active line.
const EmptyKey = "empty"

// Context is the prev/current/next window around the active line.
// Key changes whenever the active index changes.
type Context struct {
	Prev    string
	Current string
	Next    string
	Key     string
}

// Index returns the index of the last line starting at or before pos.
// Returns -1 if lines is empty or pos is before the first line.
// lines must be sorted by Time.
func Index(lines []Line, pos time.Duration) int {
	return sort.Search(len(lines), func(i int) bool {
		return lines[i].Time > pos
	}) - 1
}

// Locate returns the text active at pos. Positions before the first line
// (including negative ones) resolve to the first line; an empty slice
// resolves to "".
func Locate(lines []Line, pos time.Duration) string {
	if len(lines) == 0 {
		return ""
	}
	if pos < 0 {
		return lines[0].Text
	}
	idx := Index(lines, pos)
	if idx < 0 {
		idx = 0
	}
	return lines[idx].Text
}

// ContextAt builds the display window for the line at idx.
func ContextAt(lines []Line, idx int) Context {
	if len(lines) == 0 || idx < 0 || idx >= len(lines) {
		return Context{Key: EmptyKey}
	}
	return Context{
		Prev:    textAt(lines, idx-1),
		Current: lines[idx].Text,
		Next:    textAt(lines, idx+1),
		Key:     "l-" + strconv.Itoa(idx),
	}
}

func textAt(lines []Line, i int) string {
	if i < 0 || i >= len(lines) {
		return ""
	}
	return lines[i].Text
}
