// Package catalog resolves the playable track list from the remote playlist
// API, falling back to a local manifest.
package catalog

import (
	"errors"
	"fmt"
	"time"
)

const (
	// PlaceholderDuration is shown until a track's duration is probed.
	PlaceholderDuration = "--:--"

	// UnknownArtist is used for tracks without an artist.
	UnknownArtist = "未知歌手"
)

// ErrNoTracks is returned by a source that answered with an empty list.
var ErrNoTracks = errors.New("no tracks")

// Track is a normalized catalog entry.
type Track struct {
	ID            string
	Title         string
	Artist        string
	Sort          float64 // ordering key; fractional values are kept
	AudioURL      string
	LyricURL      string // empty when the track has no lyrics
	CoverURL      string
	DurationLabel string
}

// HasLyrics reports whether the track references a lyric file.
func (t Track) HasLyrics() bool {
	return t.LyricURL != ""
}

// IDs returns the track ids in catalog order.
func IDs(tracks []Track) []string {
	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}
	return ids
}

// IndexOf returns the position of id in tracks, or -1.
func IndexOf(tracks []Track, id string) int {
	if id == "" {
		return -1
	}
	for i, t := range tracks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Renumber sets every track's Sort to its 1-based position.
func Renumber(tracks []Track) {
	for i := range tracks {
		tracks[i].Sort = float64(i + 1)
	}
}

// FormatDuration renders d as mm:ss, or the placeholder when d is not
// positive.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return PlaceholderDuration
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
