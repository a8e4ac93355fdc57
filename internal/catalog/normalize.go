package catalog

import (
	"math"
	"sort"
	"strings"
)

// resolver maps manifest and API references onto playable URLs.
type resolver struct {
	assetBase    string
	defaultCover string
}

func newResolver(assetBase, defaultCover string) resolver {
	if assetBase == "" {
		assetBase = "/"
	}
	r := resolver{assetBase: assetBase}
	r.defaultCover = r.resolve(defaultCover)
	return r
}

// resolve leaves absolute references (scheme or root-relative) untouched and
// prefixes everything else with the asset base.
func (r resolver) resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http") || strings.HasPrefix(ref, "/") {
		return ref
	}
	return r.assetBase + strings.TrimLeft(ref, "/")
}

// rawTrack is the source-independent shape both loaders produce.
type rawTrack struct {
	ID       string
	Title    string
	Artist   string
	Audio    string
	Lyric    string
	Cover    string
	Sort     *float64
	Duration string
}

// normalize resolves references and fills defaults. Sources assign ids
// before calling it.
func (r resolver) normalize(raws []rawTrack) []Track {
	tracks := make([]Track, 0, len(raws))
	for i, raw := range raws {
		id := strings.TrimSpace(raw.ID)

		t := Track{
			ID:            id,
			Title:         strings.TrimSpace(raw.Title),
			Artist:        strings.TrimSpace(raw.Artist),
			Sort:          float64(i + 1),
			AudioURL:      r.resolve(raw.Audio),
			LyricURL:      r.resolve(raw.Lyric),
			CoverURL:      r.resolve(raw.Cover),
			DurationLabel: strings.TrimSpace(raw.Duration),
		}
		if t.Title == "" {
			t.Title = id
		}
		if t.Artist == "" {
			t.Artist = UnknownArtist
		}
		if t.CoverURL == "" {
			t.CoverURL = r.defaultCover
		}
		if t.DurationLabel == "" {
			t.DurationLabel = PlaceholderDuration
		}
		if raw.Sort != nil && !math.IsInf(*raw.Sort, 0) && !math.IsNaN(*raw.Sort) {
			t.Sort = *raw.Sort
		}
		tracks = append(tracks, t)
	}

	sort.SliceStable(tracks, func(a, b int) bool {
		return tracks[a].Sort < tracks[b].Sort
	})
	return tracks
}
