package playback

import (
	"context"

	"github.com/llehouerou/cadence/internal/catalog"
)

// Service defines the playback controller contract.
type Service interface {
	// Lifecycle
	Initialize(ctx context.Context)
	ReloadCatalog(ctx context.Context)
	Close() error

	// Transport
	SelectTrack(index int, autoplay bool)
	TogglePlay()
	PlayNext(forceSequential bool)
	PlayPrev()
	SeekToPercent(p float64)

	// Modes and volume
	CyclePlayMode()
	SetPlayMode(mode PlayMode)
	SetVolume(v float64)
	AdjustVolume(delta float64)

	// Catalog
	ReorderTracks(from, to int)

	// Presentation flags
	SetVisualizerMode(mode VisualizerMode)
	SetPlayerExpanded(expanded bool)
	SetPinned(pinned bool)
	SetListOpen(open bool)

	// State queries
	Snapshot() Snapshot
	Tracks() []catalog.Track
	CurrentTrack() *catalog.Track

	// Event subscription
	Subscribe() *Subscription
}

// Verify Controller implements Service at compile time.
var _ Service = (*Controller)(nil)
