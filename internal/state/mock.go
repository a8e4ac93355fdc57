package state

import "sync"

// Mock is an in-memory test double for Store. Saves apply immediately.
type Mock struct {
	mu      sync.Mutex
	current Preferences
	saves   []Preferences
	flushes int
	closed  bool
}

// NewMock creates a mock store seeded with initial.
func NewMock(initial Preferences) *Mock {
	return &Mock{current: initial}
}

func (m *Mock) Load() Preferences {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *Mock) Save(partial Preferences) {
	if partial.IsEmpty() {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves = append(m.saves, partial)
	m.current = m.current.merge(partial)
}

func (m *Mock) Flush() {
	m.mu.Lock()
	m.flushes++
	m.mu.Unlock()
}

func (m *Mock) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

// Test helpers

// Saves returns every partial passed to Save, in order.
func (m *Mock) Saves() []Preferences {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Preferences, len(m.saves))
	copy(out, m.saves)
	return out
}

// LastSave returns the most recent partial, or an empty one.
func (m *Mock) LastSave() Preferences {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.saves) == 0 {
		return Preferences{}
	}
	return m.saves[len(m.saves)-1]
}

// Flushes returns how many times Flush was called.
func (m *Mock) Flushes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushes
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
