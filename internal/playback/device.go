package playback

import (
	"time"

	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/lyrics"
	"github.com/llehouerou/cadence/internal/player"
)

// eventLoop consumes device events until Close.
func (c *Controller) eventLoop() {
	defer c.loopWG.Done()
	events := c.device.Events()
	for {
		select {
		case <-c.ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			c.handleEvent(ev)
		}
	}
}

func (c *Controller) handleEvent(ev player.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.current < 0 {
		return
	}
	if ev.Generation() != c.loadGen {
		c.log.Debug().Uint64("gen", ev.Generation()).Msg("stale device event dropped")
		return
	}

	switch e := ev.(type) {
	case player.EventMetadata:
		c.duration = e.Duration
		if t := &c.tracks[c.current]; e.Duration > 0 && t.DurationLabel == catalog.PlaceholderDuration {
			t.DurationLabel = catalog.FormatDuration(e.Duration)
			c.publishCatalogLocked()
		}
	case player.EventTimeUpdate:
		c.setPositionLocked(e.Position)
	case player.EventPlay:
		c.playing = true
	case player.EventPause:
		c.playing = false
	case player.EventEnded:
		c.playing = false
		c.log.Debug().Str("track", c.currentIDLocked()).Msg("track ended")
		c.playNextLocked(false)
	default:
		return
	}
	c.publishStateLocked()
}

// setPositionLocked records the position and moves the lyric window when
// the active line changes.
func (c *Controller) setPositionLocked(pos time.Duration) {
	c.position = pos
	idx := lyrics.Index(c.lines, pos)
	if idx != c.lyricIndex {
		c.lyricIndex = idx
		c.publishLyricLocked()
	}
}
