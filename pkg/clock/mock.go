package clock

import "sync"

// MockSource is a settable clock source for tests.
type MockSource struct {
	mu  sync.Mutex
	t   TimeOfDay
	set bool
	err error
}

// NewMockSource creates a mock source holding the given time.
func NewMockSource(t TimeOfDay) *MockSource {
	return &MockSource{t: t, set: true}
}

// NewUnsetMockSource creates a mock source that reports ErrNotSet until
// seeded, simulating a first boot with no backup power.
func NewUnsetMockSource() *MockSource {
	return &MockSource{}
}

// Now returns the configured time, or the configured error.
func (m *MockSource) Now() (TimeOfDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return TimeOfDay{}, m.err
	}
	if !m.set {
		return TimeOfDay{}, ErrNotSet
	}
	return m.t, nil
}

// Seed sets the mock time, clearing the not-set condition.
func (m *MockSource) Seed(t TimeOfDay) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.t = t
	m.set = true
	return nil
}

// Set changes the mock time.
func (m *MockSource) Set(t TimeOfDay) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.t = t
	m.set = true
}

// Fail makes every Now call return err.
func (m *MockSource) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}
