// internal/player/interface.go
package player

import "time"

// Device is the transport over a single playable resource. It carries no
// queueing or mode logic; the caller reacts to its events.
type Device interface {
	// Load replaces the current resource and resets position and duration.
	// Decoding happens in the background; EventMetadata reports readiness.
	// The returned generation stamps every event caused by this load.
	Load(url string) uint64
	// Play starts or resumes playback. A play requested while loading is
	// honoured once the resource is ready. It returns an error when nothing
	// is loaded or the resource failed to load.
	Play() error
	Pause()
	// SeekToFraction moves to f of the duration. No-op while the duration
	// is unknown.
	SeekToFraction(f float64)
	SetVolume(level float64)
	Position() time.Duration
	Duration() time.Duration
	Paused() bool
	Events() <-chan Event
	Close() error
}

// Event is emitted by a Device. Generation is the value Load returned for
// the resource the event belongs to; events from an earlier load may still
// be queued after the next Load returns.
type Event interface {
	Generation() uint64
}

// EventMetadata reports that the duration is now known.
type EventMetadata struct {
	Gen      uint64
	Duration time.Duration
}

// EventTimeUpdate reports the playback position periodically while playing.
type EventTimeUpdate struct {
	Gen      uint64
	Position time.Duration
}

// EventPlay reports that playback started.
type EventPlay struct{ Gen uint64 }

// EventPause reports that playback stopped without reaching the end,
// including a requested play that could not start.
type EventPause struct{ Gen uint64 }

// EventEnded reports that the resource played to its end.
type EventEnded struct{ Gen uint64 }

func (e EventMetadata) Generation() uint64   { return e.Gen }
func (e EventTimeUpdate) Generation() uint64 { return e.Gen }
func (e EventPlay) Generation() uint64       { return e.Gen }
func (e EventPause) Generation() uint64      { return e.Gen }
func (e EventEnded) Generation() uint64      { return e.Gen }

// Stamp returns ev with its generation set to gen.
func Stamp(ev Event, gen uint64) Event {
	switch e := ev.(type) {
	case EventMetadata:
		e.Gen = gen
		return e
	case EventTimeUpdate:
		e.Gen = gen
		return e
	case EventPlay:
		e.Gen = gen
		return e
	case EventPause:
		e.Gen = gen
		return e
	case EventEnded:
		e.Gen = gen
		return e
	}
	return ev
}

// Verify Player implements Device at compile time.
var _ Device = (*Player)(nil)
