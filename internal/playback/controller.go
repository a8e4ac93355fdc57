// Package playback drives the audio device from the track catalog: it owns
// selection, transport, play modes, volume and the synchronized lyric
// window, and persists user preferences as they change.
package playback

import (
	"context"
	"math"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/lyrics"
	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/playlist"
	"github.com/llehouerou/cadence/internal/state"
)

// Options wires a Controller to its collaborators. Device, Store and
// Catalog are required.
type Options struct {
	Device  player.Device
	Store   state.Interface
	Catalog catalog.Source
	Lyrics  lyrics.Fetcher // nil disables lyrics

	// Prober reads missing durations in the background; nil disables it.
	Prober       catalog.Prober
	ProbeLimiter *rate.Limiter

	Rand   *rand.Rand // shuffle source; nil means a randomly seeded one
	Logger zerolog.Logger
}

// Controller is the playback state machine. All methods are safe for
// concurrent use.
type Controller struct {
	device  player.Device
	store   state.Interface
	source  catalog.Source
	fetcher lyrics.Fetcher
	prober  catalog.Prober
	limiter *rate.Limiter
	log     zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	loopWG sync.WaitGroup
	probes <-chan struct{}

	mu          sync.Mutex
	initialized bool
	closed      bool
	tracks      []catalog.Track
	current     int
	queue       *playlist.RandomQueue
	selection   uint64 // bumped per selection; stale lyric fetches compare it
	loadGen     uint64 // generation of the last device load; older events are dropped
	position    time.Duration
	duration    time.Duration
	playing     bool
	mode        PlayMode
	volume      float64
	lines       []lyrics.Line
	lyricIndex  int
	lyricsBusy  bool
	expanded    bool
	pinned      bool
	listOpen    bool
	visualizer  VisualizerMode

	subsMu sync.RWMutex
	subs   []*Subscription
}

// New creates a controller. Nothing is loaded until Initialize.
func New(opts Options) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		device:     opts.Device,
		store:      opts.Store,
		source:     opts.Catalog,
		fetcher:    opts.Lyrics,
		prober:     opts.Prober,
		limiter:    opts.ProbeLimiter,
		log:        opts.Logger.With().Str("component", "playback").Logger(),
		ctx:        ctx,
		cancel:     cancel,
		current:    -1,
		queue:      playlist.NewRandomQueue(opts.Rand),
		lyricIndex: -1,
		mode:       ModeSequential,
		volume:     defaultVolume,
		visualizer: VisualizerNone,
	}
}

// Initialize restores preferences, loads the catalog, selects the persisted
// track (or the first one) without autoplay and starts consuming device
// events. Later calls do nothing.
func (c *Controller) Initialize(ctx context.Context) {
	c.mu.Lock()
	if c.initialized || c.closed {
		c.mu.Unlock()
		return
	}
	c.initialized = true
	prefs := c.store.Load()
	c.applyPreferencesLocked(prefs)
	c.device.SetVolume(c.volume)
	c.mu.Unlock()

	tracks := c.source.Load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.setTracksLocked(tracks)
	start := 0
	if prefs.CurrentTrackID != nil {
		if idx := catalog.IndexOf(c.tracks, *prefs.CurrentTrackID); idx >= 0 {
			start = idx
		}
	}
	if !c.selectLocked(start, false) && start != 0 {
		c.selectLocked(0, false)
	}
	c.queue.Regenerate(catalog.IDs(c.tracks), c.currentIDLocked())

	c.log.Info().
		Int("tracks", len(c.tracks)).
		Str("mode", c.mode.String()).
		Str("track", c.currentIDLocked()).
		Msg("playback initialized")

	c.loopWG.Add(1)
	go c.eventLoop()
	c.startProbesLocked()
	c.publishStateLocked()
}

// applyPreferencesLocked takes every valid stored field and keeps defaults
// for the rest.
func (c *Controller) applyPreferencesLocked(p state.Preferences) {
	if p.PlayMode != nil {
		if m, ok := ParsePlayMode(*p.PlayMode); ok {
			c.mode = m
		}
	}
	if p.Volume != nil && !math.IsNaN(*p.Volume) {
		c.volume = clampUnit(*p.Volume)
	}
	if p.IsPlayerExpanded != nil {
		c.expanded = *p.IsPlayerExpanded
	}
	if p.IsPinned != nil {
		c.pinned = *p.IsPinned
	}
	if p.ListOpen != nil {
		c.listOpen = *p.ListOpen
	}
	if p.VisualizerMode != nil && VisualizerMode(*p.VisualizerMode).Valid() {
		c.visualizer = VisualizerMode(*p.VisualizerMode)
	}
}

// Close pauses and unloads the device, flushes preferences and ends every
// subscription. It is safe to call more than once.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.device.Pause()
	c.loadGen = c.device.Load("")
	c.playing = false
	c.mu.Unlock()

	c.cancel()
	c.loopWG.Wait()
	c.store.Flush()
	err := c.device.Close()

	c.subsMu.Lock()
	for _, sub := range c.subs {
		sub.close()
	}
	c.subs = nil
	c.subsMu.Unlock()

	return err
}

// Subscribe creates a new event subscription.
func (c *Controller) Subscribe() *Subscription {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	sub := newSubscription()
	if c.ctx.Err() != nil {
		sub.close()
		return sub
	}
	c.subs = append(c.subs, sub)
	return sub
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		CurrentTrackID: c.currentIDLocked(),
		CurrentIndex:   c.current,
		TrackCount:     len(c.tracks),
		Position:       c.position,
		Duration:       c.duration,
		Playing:        c.playing,
		Mode:           c.mode,
		Volume:         c.volume,
		Lyric:          lyrics.ContextAt(c.lines, c.lyricIndex),
		LyricsLoading:  c.lyricsBusy,
		Expanded:       c.expanded,
		Pinned:         c.pinned,
		ListOpen:       c.listOpen,
		Visualizer:     c.visualizer,
	}
}

// Tracks returns a copy of the catalog in play order.
func (c *Controller) Tracks() []catalog.Track {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.tracks)
}

// CurrentTrack returns a copy of the selected track, or nil.
func (c *Controller) CurrentTrack() *catalog.Track {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current < 0 {
		return nil
	}
	t := c.tracks[c.current]
	return &t
}

func (c *Controller) currentIDLocked() string {
	if c.current < 0 || c.current >= len(c.tracks) {
		return ""
	}
	return c.tracks[c.current].ID
}

// Publishing. Subscribers never block the controller.

func (c *Controller) forEachSub(fn func(*Subscription)) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		fn(sub)
	}
}

func (c *Controller) publishStateLocked() {
	e := StateChange{Snapshot: c.snapshotLocked()}
	c.forEachSub(func(s *Subscription) { s.sendState(e) })
}

func (c *Controller) publishLyricLocked() {
	e := LyricChange{Context: lyrics.ContextAt(c.lines, c.lyricIndex)}
	c.forEachSub(func(s *Subscription) { s.sendLyric(e) })
}

func (c *Controller) publishCatalogLocked() {
	e := CatalogChange{Tracks: slices.Clone(c.tracks)}
	c.forEachSub(func(s *Subscription) { s.sendCatalog(e) })
}

func (c *Controller) publishNotice(op errmsg.Op, err error) {
	e := Notice{Op: op, Err: err}
	c.forEachSub(func(s *Subscription) { s.sendNotice(e) })
}

func clampUnit(v float64) float64 {
	return min(max(v, 0), 1)
}
