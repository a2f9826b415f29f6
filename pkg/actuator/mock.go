package actuator

import "sync"

// MockBrightness records brightness writes for tests.
type MockBrightness struct {
	mu     sync.Mutex
	levels []uint8
}

// NewMockBrightness creates a recording brightness actuator.
func NewMockBrightness() *MockBrightness {
	return &MockBrightness{}
}

// SetBrightness records the level.
func (m *MockBrightness) SetBrightness(level uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.levels = append(m.levels, level)
}

// Levels returns a copy of every level written so far.
func (m *MockBrightness) Levels() []uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]uint8, len(m.levels))
	copy(out, m.levels)
	return out
}

// Last returns the most recent level, or 0 if nothing was written.
func (m *MockBrightness) Last() uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.levels) == 0 {
		return 0
	}
	return m.levels[len(m.levels)-1]
}

// MockDigital records on/off writes for tests.
type MockDigital struct {
	mu     sync.Mutex
	states []bool
}

// NewMockDigital creates a recording digital actuator.
func NewMockDigital() *MockDigital {
	return &MockDigital{}
}

// SetDigital records the state.
func (m *MockDigital) SetDigital(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states = append(m.states, on)
}

// States returns a copy of every state written so far.
func (m *MockDigital) States() []bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]bool, len(m.states))
	copy(out, m.states)
	return out
}

// On reports the most recent state, or false if nothing was written.
func (m *MockDigital) On() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.states) == 0 {
		return false
	}
	return m.states[len(m.states)-1]
}
