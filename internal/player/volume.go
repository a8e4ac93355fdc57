package player

import (
	"math"

	"github.com/gopxl/beep/v2/speaker"
)

// SetVolume sets the volume level (0.0 to 1.0). The level carries over to
// resources loaded later.
func (p *Player) SetVolume(level float64) {
	if math.IsNaN(level) {
		return
	}
	level = min(max(level, 0), 1)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.level = level
	if p.src == nil {
		return
	}
	speaker.Lock()
	p.src.volume.Volume = levelToVolume(level)
	p.src.volume.Silent = level <= 0
	speaker.Unlock()
}

// Volume returns the current volume level (0.0 to 1.0).
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

// levelToVolume converts a 0.0-1.0 level to beep's base-2 Volume value:
// 1.0 -> 0, 0.5 -> -1, 0.25 -> -2, 0 -> -10 (silent).
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
