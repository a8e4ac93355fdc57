package playback

import (
	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/lyrics"
)

// StateChange is emitted after every transition with the resulting state.
type StateChange struct {
	Snapshot Snapshot
}

// TrackChange is emitted on every selection, with or without autoplay,
// including a restart of the same slot. Previous is nil on the first one.
type TrackChange struct {
	Previous      *catalog.Track
	Current       catalog.Track
	PreviousIndex int
	Index         int
}

// LyricChange is emitted when the active lyric window changes, including
// the reset to an empty window on selection.
type LyricChange struct {
	Context lyrics.Context
}

// CatalogChange is emitted when the track list changes: load, reload,
// reorder or a probed duration label.
type CatalogChange struct {
	Tracks []catalog.Track
}

// Notice reports a swallowed failure worth showing to the user.
type Notice struct {
	Op  errmsg.Op
	Err error
}

// Message renders the notice for display.
func (n Notice) Message() string {
	return errmsg.Format(n.Op, n.Err)
}
