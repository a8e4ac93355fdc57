//go:build linux

// Package mpris exposes the player on the session bus so desktop media keys
// and widgets can drive it.
package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/cadence/internal/playback"
)

const busName = "cadence"

// Adapter connects a playback.Service to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts an MPRIS adapter. art resolves local cover
// references and may be nil.
func New(service playback.Service, art LocalPather) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer(busName, &rootAdapter{}, &playerAdapter{service: service, art: art}),
	}

	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error { return nil }

// Quit is refused; the terminal owns the lifecycle.
func (r *rootAdapter) Quit() error { return nil }

func (r *rootAdapter) CanQuit() (bool, error)      { return false, nil }
func (r *rootAdapter) CanRaise() (bool, error)     { return false, nil }
func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }
func (r *rootAdapter) Identity() (string, error)   { return "Cadence", nil }

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "http", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav", "audio/ogg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and the
// loop/shuffle extensions.
type playerAdapter struct {
	service playback.Service
	art     LocalPather
}

func (p *playerAdapter) Next() error {
	p.service.PlayNext(false)
	return nil
}

func (p *playerAdapter) Previous() error {
	p.service.PlayPrev()
	return nil
}

func (p *playerAdapter) Pause() error {
	if p.service.Snapshot().Playing {
		p.service.TogglePlay()
	}
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.service.TogglePlay()
	return nil
}

// Stop pauses; there is no separate stopped state with a track selected.
func (p *playerAdapter) Stop() error {
	return p.Pause()
}

func (p *playerAdapter) Play() error {
	if !p.service.Snapshot().Playing {
		p.service.TogglePlay()
	}
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	snap := p.service.Snapshot()
	p.seekTo(snap, snap.Position+time.Duration(offset)*time.Microsecond)
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	p.seekTo(p.service.Snapshot(), time.Duration(position)*time.Microsecond)
	return nil
}

func (p *playerAdapter) seekTo(snap playback.Snapshot, pos time.Duration) {
	if snap.Duration <= 0 {
		return
	}
	p.service.SeekToPercent(float64(pos) / float64(snap.Duration))
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	snap := p.service.Snapshot()
	switch {
	case !snap.HasTrack():
		return types.PlaybackStatusStopped, nil
	case snap.Playing:
		return types.PlaybackStatusPlaying, nil
	default:
		return types.PlaybackStatusPaused, nil
	}
}

func (p *playerAdapter) Rate() (float64, error)        { return 1.0, nil }
func (p *playerAdapter) SetRate(_ float64) error       { return nil }
func (p *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	track := p.service.CurrentTrack()
	if track == nil {
		return types.Metadata{}, nil
	}
	snap := p.service.Snapshot()

	return types.Metadata{
		TrackId:     dbus.ObjectPath(formatTrackID(track.ID)),
		Length:      types.Microseconds(snap.Duration.Microseconds()),
		Title:       track.Title,
		Artist:      []string{track.Artist},
		TrackNumber: int(track.Sort),
		ArtUrl:      ArtURL(p.art, track.CoverURL),
	}, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.service.Snapshot().Volume, nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	p.service.SetVolume(v)
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.service.Snapshot().Position.Microseconds(), nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.service.Snapshot().TrackCount > 0, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.service.Snapshot().TrackCount > 0, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.service.Snapshot().TrackCount > 0, nil
}

func (p *playerAdapter) CanPause() (bool, error)   { return true, nil }
func (p *playerAdapter) CanSeek() (bool, error)    { return true, nil }
func (p *playerAdapter) CanControl() (bool, error) { return true, nil }

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
// Sequential and random both wrap around the playlist.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	if p.service.Snapshot().Mode == playback.ModeSingle {
		return types.LoopStatusTrack, nil
	}
	return types.LoopStatusPlaylist, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
// There is no non-looping mode, so None maps to sequential.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	switch status {
	case types.LoopStatusTrack:
		p.service.SetPlayMode(playback.ModeSingle)
	case types.LoopStatusPlaylist, types.LoopStatusNone:
		if p.service.Snapshot().Mode == playback.ModeSingle {
			p.service.SetPlayMode(playback.ModeSequential)
		}
	}
	return nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return p.service.Snapshot().Mode == playback.ModeRandom, nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	switch {
	case shuffle:
		p.service.SetPlayMode(playback.ModeRandom)
	case p.service.Snapshot().Mode == playback.ModeRandom:
		p.service.SetPlayMode(playback.ModeSequential)
	}
	return nil
}

func formatTrackID(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
