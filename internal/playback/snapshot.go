package playback

import (
	"time"

	"github.com/llehouerou/cadence/internal/lyrics"
)

// Snapshot is an immutable copy of the controller state.
type Snapshot struct {
	CurrentTrackID string
	CurrentIndex   int // -1 when nothing is selected
	TrackCount     int
	Position       time.Duration
	Duration       time.Duration
	Playing        bool
	Mode           PlayMode
	Volume         float64
	Lyric          lyrics.Context
	LyricsLoading  bool
	Expanded       bool
	Pinned         bool
	ListOpen       bool
	Visualizer     VisualizerMode
}

// Progress returns Position/Duration in [0,1], or 0 while the duration is
// unknown.
func (s Snapshot) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return min(max(float64(s.Position)/float64(s.Duration), 0), 1)
}

// HasTrack reports whether a track is selected.
func (s Snapshot) HasTrack() bool {
	return s.CurrentIndex >= 0
}
