// Package lyrics provides lyrics parsing, position lookup and sourcing.
package lyrics

import (
	"io"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Line represents a single timestamped lyric line.
type Line struct {
	Time time.Duration
	Text string
}

// Regular expressions for parsing LRC format
var (
	// Matches timestamps like [00:12] or [00:12.34] or [1:02.345]
	timestampRe = regexp.MustCompile(`\[(\d{1,2}):(\d{1,2}(?:\.\d{1,3})?)\]`)

	lineSplitRe = regexp.MustCompile(`\r?\n`)
)

// Parse parses LRC text into lines sorted by time.
// A line carrying several timestamps yields one Line per timestamp, all
// sharing the same text. Lines without a timestamp are ignored.
func Parse(text string) []Line {
	lines := []Line{}
	if text == "" {
		return lines
	}

	for _, raw := range lineSplitRe.Split(text, -1) {
		if raw == "" {
			continue
		}
		lines = append(lines, parseLine(raw)...)
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Time < lines[j].Time
	})
	return lines
}

// parseLine returns one Line per timestamp found in raw.
func parseLine(raw string) []Line {
	matches := timestampRe.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return nil
	}

	text := strings.TrimSpace(timestampRe.ReplaceAllString(raw, ""))

	out := make([]Line, 0, len(matches))
	for _, m := range matches {
		ts, ok := parseTimestamp(m[1], m[2])
		if !ok {
			continue
		}
		out = append(out, Line{Time: ts, Text: text})
	}
	return out
}

// parseTimestamp converts the minutes and seconds captures of a tag.
func parseTimestamp(minStr, secStr string) (time.Duration, bool) {
	minutes, err := strconv.Atoi(minStr)
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(secStr, 64)
	if err != nil || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, false
	}

	total := float64(minutes)*60 + seconds
	return time.Duration(math.Round(total * float64(time.Second))), true
}

// ParseReader reads LRC text from r and parses it with Parse.
func ParseReader(r io.Reader) ([]Line, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(data)), nil
}
