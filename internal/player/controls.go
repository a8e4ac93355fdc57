package player

import (
	"time"

	"github.com/gopxl/beep/v2/speaker"

	"github.com/llehouerou/cadence/internal/errmsg"
)

func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case Idle:
		return ErrNotLoaded
	case Failed:
		return p.loadErr
	case Loading:
		p.wantPlay = true
		return nil
	case Playing:
		return nil
	case Ended:
		// The finished chain left the mixer; rewind and hand it back.
		speaker.Lock()
		err := p.src.stream.Seek(0)
		p.src.ctrl.Paused = false
		speaker.Unlock()
		if err != nil {
			return err
		}
		p.attachLocked()
	case Paused:
		speaker.Lock()
		p.src.ctrl.Paused = false
		speaker.Unlock()
	}

	p.state = Playing
	p.emit(EventPlay{})
	return nil
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.state.CanPause() {
		return
	}
	if p.state == Loading {
		p.wantPlay = false
		return
	}
	speaker.Lock()
	p.src.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
	p.emit(EventPause{})
}

func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state != Playing
}

func (p *Player) SeekToFraction(f float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.state.HasSource() {
		return
	}
	length := p.src.stream.Len()
	if length <= 0 {
		return
	}

	f = min(max(f, 0), 1)
	target := min(int(f*float64(length)), length-1)

	speaker.Lock()
	if p.state == Ended {
		p.src.ctrl.Paused = true
	}
	err := p.src.stream.Seek(target)
	pos := p.src.position()
	speaker.Unlock()
	if err != nil {
		p.log.Debug().Float64("fraction", f).Msg(errmsg.Format(errmsg.OpPlaybackSeek, err))
		return
	}

	if p.state == Ended {
		p.attachLocked()
		p.state = Paused
	}
	p.emit(EventTimeUpdate{Position: pos})
}

func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.src == nil {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return p.src.position()
}

func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.src == nil {
		return 0
	}
	return p.src.duration()
}
