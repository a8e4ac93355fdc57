// internal/player/mock.go
package player

import (
	"sync"
	"time"
)

// Mock is a deterministic Device for tests. It records calls and only emits
// the events a test injects through Emit.
type Mock struct {
	mu       sync.Mutex
	events   chan Event
	gen      uint64
	loads    []string
	plays    int
	pauses   int
	seeks    []float64
	volumes  []float64
	playErr  error
	paused   bool
	position time.Duration
	duration time.Duration
	closed   bool
}

// NewMock creates a new mock device for testing.
func NewMock() *Mock {
	return &Mock{
		events: make(chan Event, eventBufferSize),
		paused: true,
	}
}

func (m *Mock) Load(url string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	m.loads = append(m.loads, url)
	m.paused = true
	m.position = 0
	m.duration = 0
	return m.gen
}

func (m *Mock) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plays++
	if len(m.loads) == 0 || m.loads[len(m.loads)-1] == "" {
		return ErrNotLoaded
	}
	if m.playErr != nil {
		return m.playErr
	}
	m.paused = false
	return nil
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauses++
	m.paused = true
}

func (m *Mock) SeekToFraction(f float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seeks = append(m.seeks, f)
}

func (m *Mock) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volumes = append(m.volumes, level)
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *Mock) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

func (m *Mock) Events() <-chan Event { return m.events }

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetPlayError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErr = err
}

func (m *Mock) SetDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
}

func (m *Mock) SetPosition(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = d
}

// Emit queues ev for the consumer of Events. An event without a
// generation is stamped with the latest load's.
func (m *Mock) Emit(ev Event) {
	if ev.Generation() == 0 {
		ev = m.Current(ev)
	}
	m.events <- ev
}

// Current returns ev stamped with the latest load's generation.
func (m *Mock) Current(ev Event) Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stamp(ev, m.gen)
}

// Generation returns the latest load's generation.
func (m *Mock) Generation() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen
}

func (m *Mock) Loads() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.loads))
	copy(out, m.loads)
	return out
}

// LastLoad returns the most recently loaded url, or "".
func (m *Mock) LastLoad() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.loads) == 0 {
		return ""
	}
	return m.loads[len(m.loads)-1]
}

func (m *Mock) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.plays
}

func (m *Mock) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauses
}

func (m *Mock) Seeks() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]float64, len(m.seeks))
	copy(out, m.seeks)
	return out
}

func (m *Mock) Volumes() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]float64, len(m.volumes))
	copy(out, m.volumes)
	return out
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Device at compile time.
var _ Device = (*Mock)(nil)
