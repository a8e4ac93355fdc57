package playback

import (
	"context"
	"slices"

	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/playlist"
)

// ReorderTracks moves a track and renumbers every sort order to its new
// 1-based position. Out-of-range or equal indexes are ignored. The current
// track stays current.
func (c *Controller) ReorderTracks(from, to int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	moved, ok := playlist.Move(c.tracks, from, to)
	if !ok {
		return
	}
	catalog.Renumber(moved)

	id := c.currentIDLocked()
	c.tracks = moved
	if id != "" {
		c.current = catalog.IndexOf(c.tracks, id)
	}
	if c.mode == ModeRandom {
		c.queue.Invalidate()
	}
	c.publishCatalogLocked()
	c.publishStateLocked()
}

// ReloadCatalog loads the catalog again. The current track is kept when it
// is still present; otherwise the first track is selected without autoplay.
func (c *Controller) ReloadCatalog(ctx context.Context) {
	tracks := c.source.Load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	id := c.currentIDLocked()
	c.setTracksLocked(tracks)

	if idx := catalog.IndexOf(c.tracks, id); id != "" && idx >= 0 {
		c.current = idx
	} else {
		c.current = -1
		if !c.selectLocked(0, false) {
			c.device.Pause()
			c.loadGen = c.device.Load("")
			c.playing = false
			c.position = 0
			c.duration = 0
			c.lines = nil
			c.lyricIndex = -1
			c.lyricsBusy = false
			c.publishLyricLocked()
		}
	}

	c.log.Info().Int("tracks", len(c.tracks)).Msg("catalog reloaded")
	c.startProbesLocked()
	c.publishStateLocked()
}

func (c *Controller) setTracksLocked(tracks []catalog.Track) {
	if tracks == nil {
		tracks = []catalog.Track{}
	}
	c.tracks = tracks
	c.publishCatalogLocked()
}

// startProbesLocked reads missing durations in the background.
func (c *Controller) startProbesLocked() {
	if c.prober == nil || len(c.tracks) == 0 {
		return
	}
	c.probes = catalog.Hydrate(
		c.ctx,
		slices.Clone(c.tracks),
		c.prober,
		c.limiter,
		c.applyProbe,
		func(id string, err error) {
			c.log.Debug().Msg(errmsg.FormatWith(errmsg.OpDurationProbe, id, err))
		},
	)
}

// applyProbe writes a probed label if the slot still holds the probed track.
func (c *Controller) applyProbe(r catalog.ProbeResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || r.Index >= len(c.tracks) || c.tracks[r.Index].ID != r.ID {
		return
	}
	if c.tracks[r.Index].DurationLabel != catalog.PlaceholderDuration {
		return
	}
	c.tracks[r.Index].DurationLabel = r.Label
	c.publishCatalogLocked()
}

// ProbesDone returns a channel closed when the latest probe run finishes,
// or nil if none was started.
func (c *Controller) ProbesDone() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.probes
}
