package playback

import (
	"math"
	"time"

	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/playlist"
	"github.com/llehouerou/cadence/internal/state"
)

// SelectTrack makes the track at index current. Out-of-range indexes and
// tracks without audio are ignored. With autoplay the device is asked to
// start; a refusal leaves the controller paused.
func (c *Controller) SelectTrack(index int, autoplay bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.selectLocked(index, autoplay) {
		c.publishStateLocked()
	}
}

// selectLocked performs a selection and reports whether it happened.
func (c *Controller) selectLocked(index int, autoplay bool) bool {
	if index < 0 || index >= len(c.tracks) {
		return false
	}
	track := c.tracks[index]
	if track.AudioURL == "" {
		return false
	}

	var previous *catalog.Track
	if c.current >= 0 && c.current < len(c.tracks) {
		p := c.tracks[c.current]
		previous = &p
	}
	prevIndex := c.current

	c.current = index
	c.position = 0
	c.duration = 0
	c.selection++

	// Drop the old lyrics before the fetch so they never show against the
	// new track.
	c.lines = nil
	c.lyricIndex = -1
	c.lyricsBusy = c.fetcher != nil && track.HasLyrics()
	c.publishLyricLocked()

	c.loadGen = c.device.Load(track.AudioURL)
	c.playing = false
	if autoplay {
		c.playLocked()
	}

	c.store.Save(state.Preferences{CurrentTrackID: state.Ptr(track.ID)})

	e := TrackChange{
		Previous:      previous,
		Current:       track,
		PreviousIndex: prevIndex,
		Index:         index,
	}
	c.forEachSub(func(s *Subscription) { s.sendTrack(e) })

	c.log.Debug().
		Str("track", track.ID).
		Int("index", index).
		Bool("autoplay", autoplay).
		Msg("track selected")

	if c.lyricsBusy {
		go c.fetchLyrics(c.selection, track)
	}
	return true
}

// playLocked asks the device to start and mirrors the outcome.
func (c *Controller) playLocked() {
	if err := c.device.Play(); err != nil {
		c.playing = false
		c.log.Debug().Err(err).Msg("play rejected")
		c.publishNotice(errmsg.OpPlaybackStart, err)
		return
	}
	c.playing = true
}

// TogglePlay pauses while playing and plays while paused. With nothing
// selected it starts the first track.
func (c *Controller) TogglePlay() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.current < 0 {
		if len(c.tracks) > 0 && c.selectLocked(0, true) {
			c.publishStateLocked()
		}
		return
	}
	if c.playing {
		c.device.Pause()
		c.playing = false
	} else {
		c.playLocked()
	}
	c.publishStateLocked()
}

// PlayNext advances according to the play mode, or sequentially when
// forceSequential is set, and always autoplays.
func (c *Controller) PlayNext(forceSequential bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.playNextLocked(forceSequential) {
		c.publishStateLocked()
	}
}

func (c *Controller) playNextLocked(forceSequential bool) bool {
	mode := c.mode
	if forceSequential {
		mode = ModeSequential
	}
	return c.stepLocked(mode, 1)
}

// PlayPrev mirrors PlayNext backwards, following the play mode.
func (c *Controller) PlayPrev() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.stepLocked(c.mode, -1) {
		c.publishStateLocked()
	}
}

func (c *Controller) stepLocked(mode PlayMode, dir int) bool {
	n := len(c.tracks)
	if n == 0 {
		return false
	}

	var target int
	switch mode {
	case ModeSingle:
		target = max(c.current, 0)
	case ModeRandom:
		ids := catalog.IDs(c.tracks)
		cur := c.currentIDLocked()
		if c.queue.Ensure(ids, cur) {
			c.log.Debug().Int("tracks", n).Msg("random queue regenerated")
		}
		var id string
		if dir > 0 {
			id = c.queue.Next(cur)
		} else {
			id = c.queue.Prev(cur)
		}
		// The queue may still name a track a reload replaced.
		target = max(catalog.IndexOf(c.tracks, id), 0)
	default:
		if dir > 0 {
			target = playlist.NextIndex(c.current, n)
		} else {
			target = playlist.PrevIndex(c.current, n)
		}
	}
	return c.selectLocked(target, true)
}

// SeekToPercent moves to fraction p of the track, clamped to [0,1]. It does
// nothing until the duration is known.
func (c *Controller) SeekToPercent(p float64) {
	if math.IsNaN(p) {
		return
	}
	p = clampUnit(p)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.current < 0 {
		return
	}
	d := c.duration
	if d <= 0 {
		d = c.device.Duration()
	}
	if d <= 0 {
		return
	}
	c.duration = d
	c.device.SeekToFraction(p)
	c.setPositionLocked(time.Duration(p * float64(d)))
	c.publishStateLocked()
}
