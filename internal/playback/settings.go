package playback

import (
	"math"

	"github.com/llehouerou/cadence/internal/state"
)

// CyclePlayMode advances sequential -> random -> single -> sequential.
func (c *Controller) CyclePlayMode() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.setModeLocked(c.mode.Next())
}

// SetPlayMode switches directly to mode. Unknown modes are ignored.
func (c *Controller) SetPlayMode(mode PlayMode) {
	if _, ok := ParsePlayMode(mode.String()); !ok {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.mode == mode {
		return
	}
	c.setModeLocked(mode)
}

func (c *Controller) setModeLocked(mode PlayMode) {
	c.mode = mode
	c.store.Save(state.Preferences{PlayMode: state.Ptr(c.mode.String())})
	c.publishStateLocked()
}

// SetVolume sets the volume, clamped to [0,1]. NaN is ignored.
func (c *Controller) SetVolume(v float64) {
	if math.IsNaN(v) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.setVolumeLocked(v)
}

// AdjustVolume changes the volume by delta, clamped to [0,1].
func (c *Controller) AdjustVolume(delta float64) {
	if math.IsNaN(delta) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.setVolumeLocked(c.volume + delta)
}

func (c *Controller) setVolumeLocked(v float64) {
	c.volume = clampUnit(v)
	c.device.SetVolume(c.volume)
	c.store.Save(state.Preferences{Volume: state.Ptr(c.volume)})
	c.publishStateLocked()
}

// SetVisualizerMode switches the visualizer. Unknown modes are ignored.
func (c *Controller) SetVisualizerMode(mode VisualizerMode) {
	if !mode.Valid() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.visualizer = mode
	c.store.Save(state.Preferences{VisualizerMode: state.Ptr(string(mode))})
	c.publishStateLocked()
}

// SetPlayerExpanded expands or collapses the player. Expanding closes the
// track list.
func (c *Controller) SetPlayerExpanded(expanded bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.expanded = expanded
	p := state.Preferences{IsPlayerExpanded: state.Ptr(expanded)}
	if expanded {
		c.listOpen = false
		p.ListOpen = state.Ptr(false)
	}
	c.store.Save(p)
	c.publishStateLocked()
}

func (c *Controller) SetPinned(pinned bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.pinned = pinned
	c.store.Save(state.Preferences{IsPinned: state.Ptr(pinned)})
	c.publishStateLocked()
}

func (c *Controller) SetListOpen(open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.listOpen = open
	c.store.Save(state.Preferences{ListOpen: state.Ptr(open)})
	c.publishStateLocked()
}
