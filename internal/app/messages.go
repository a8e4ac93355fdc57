package app

import (
	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/lyrics"
	"github.com/llehouerou/cadence/internal/playback"
)

// ServiceStateChangedMsg carries the controller state after a transition.
type ServiceStateChangedMsg struct {
	Snapshot playback.Snapshot
}

// ServiceTrackChangedMsg is sent when a track is selected.
type ServiceTrackChangedMsg struct {
	PreviousIndex int
	CurrentIndex  int
}

// ServiceLyricChangedMsg is sent when the lyric window moves.
type ServiceLyricChangedMsg struct {
	Context lyrics.Context
}

// ServiceCatalogChangedMsg is sent when the track list changes.
type ServiceCatalogChangedMsg struct {
	Tracks []catalog.Track
}

// ServiceNoticeMsg reports a failure worth showing.
type ServiceNoticeMsg struct {
	Message string
}

// ServiceClosedMsg is sent when the playback service is closed.
type ServiceClosedMsg struct{}

// ReloadDoneMsg is sent once a catalog reload returns.
type ReloadDoneMsg struct{}
