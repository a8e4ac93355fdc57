package player

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/rs/zerolog"

	"github.com/llehouerou/cadence/internal/errmsg"
)

const (
	outputRate      = beep.SampleRate(44100)
	resampleQuality = 4
	tickInterval    = 250 * time.Millisecond
	eventBufferSize = 64
)

// ErrNotLoaded is returned by Play when no resource has been loaded.
var ErrNotLoaded = errors.New("no source loaded")

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(outputRate, outputRate.N(time.Second/10))
	})
	return speakerErr
}

// Player is the speaker-backed Device.
type Player struct {
	opener Opener
	log    zerolog.Logger
	events chan Event

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	mu       sync.Mutex
	gen      uint64 // bumped on every Load; stale loads and callbacks compare it
	state    State
	url      string
	src      *source
	loadErr  error
	wantPlay bool
	level    float64
}

// New creates a player that opens references through opener.
func New(opener Opener, logger zerolog.Logger) *Player {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Player{
		opener: opener,
		log:    logger.With().Str("component", "player").Logger(),
		events: make(chan Event, eventBufferSize),
		ctx:    ctx,
		cancel: cancel,
		state:  Idle,
		level:  1,
	}
	go p.tickLoop()
	return p
}

func (p *Player) Events() <-chan Event {
	return p.events
}

// State returns the current state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Player) Load(url string) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.gen++
	p.drainLocked()
	p.releaseLocked()
	p.url = url
	p.loadErr = nil
	p.wantPlay = false

	if url == "" || p.ctx.Err() != nil {
		p.state = Idle
		return p.gen
	}
	p.state = Loading
	go p.load(p.gen, url)
	return p.gen
}

// drainLocked discards queued events. Events already handed to a delivery
// goroutine still arrive and are recognised by their generation.
func (p *Player) drainLocked() {
	for {
		select {
		case <-p.events:
		default:
			return
		}
	}
}

func (p *Player) load(gen uint64, url string) {
	var (
		file   io.ReadSeekCloser
		stream beep.StreamSeekCloser
		format beep.Format
	)
	err := checkFormat(url)
	if err == nil {
		file, err = openSeekable(p.ctx, p.opener, url)
	}
	if err == nil {
		stream, format, err = decode(url, file)
		if err != nil {
			file.Close()
		}
	}
	if err == nil {
		if err = initSpeaker(); err != nil {
			stream.Close()
			file.Close()
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen {
		if err == nil {
			stream.Close()
			file.Close()
		}
		return
	}

	if err != nil {
		p.log.Warn().Str("url", url).Msg(errmsg.Format(errmsg.OpPlaybackLoad, err))
		p.state = Failed
		p.loadErr = err
		if p.wantPlay {
			p.wantPlay = false
			p.emit(EventPause{})
		}
		return
	}

	p.src = newSource(stream, format, file, p.level)
	p.state = Paused
	play := p.wantPlay
	p.wantPlay = false
	if play {
		p.src.ctrl.Paused = false
		p.state = Playing
	}
	p.attachLocked()

	p.log.Debug().Str("url", url).Dur("duration", p.src.duration()).Msg("source ready")
	p.emit(EventMetadata{Duration: p.src.duration()})
	if play {
		p.emit(EventPlay{})
	}
}

// attachLocked hands the source chain to the speaker. The end callback runs
// on the speaker goroutine with its lock held, so it only schedules work.
func (p *Player) attachLocked() {
	gen := p.gen
	speaker.Play(beep.Seq(p.src.volume, beep.Callback(func() {
		go p.finish(gen)
	})))
}

func (p *Player) finish(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen || p.state != Playing {
		return
	}
	p.state = Ended
	p.emit(EventEnded{})
}

// releaseLocked detaches and closes the current source.
func (p *Player) releaseLocked() {
	if p.src == nil {
		return
	}
	speaker.Clear()
	p.src.close()
	p.src = nil
}

// emit stamps ev with the current generation and never blocks. Time
// updates are dropped when the consumer lags; other events are delivered
// from a goroutine instead.
func (p *Player) emit(ev Event) {
	ev = Stamp(ev, p.gen)
	select {
	case p.events <- ev:
		return
	case <-p.ctx.Done():
		return
	default:
	}
	if _, ok := ev.(EventTimeUpdate); ok {
		return
	}
	go func() {
		select {
		case p.events <- ev:
		case <-p.ctx.Done():
		}
	}()
}

func (p *Player) tickLoop() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.tick()
		}
	}
}

func (p *Player) tick() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != Playing || p.src == nil {
		return
	}
	speaker.Lock()
	pos := p.src.position()
	speaker.Unlock()
	p.emit(EventTimeUpdate{Position: pos})
}

// Close releases the source and stops event delivery.
func (p *Player) Close() error {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.gen++
		p.releaseLocked()
		p.state = Idle
		p.mu.Unlock()
		p.cancel()
	})
	return nil
}
