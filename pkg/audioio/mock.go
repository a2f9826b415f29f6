package audioio

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// MockSink is a mock audio sink for testing. It can pace writes in real
// time like hardware, or accept them instantly for fast tests, and can
// capture every sample written.
type MockSink struct {
	cfg    Config
	logger *slog.Logger

	mu      sync.Mutex
	running bool
	closed  bool

	paced   bool
	capture bool
	samples []int16

	// Stats
	chunksWritten  atomic.Int64
	samplesWritten atomic.Int64
}

// MockSinkOption configures a MockSink.
type MockSinkOption func(*MockSink)

// WithPacing makes Write block for the chunk's real playback duration,
// simulating hardware back-pressure.
func WithPacing() MockSinkOption {
	return func(m *MockSink) {
		m.paced = true
	}
}

// WithCapture records every sample written for later inspection.
func WithCapture() MockSinkOption {
	return func(m *MockSink) {
		m.capture = true
	}
}

// NewMockSink creates a new mock audio sink.
func NewMockSink(cfg Config, logger *slog.Logger, opts ...MockSinkOption) *MockSink {
	if logger == nil {
		logger = slog.Default()
	}

	m := &MockSink{
		cfg:    cfg,
		logger: logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start begins accepting audio.
func (m *MockSink) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return io.ErrClosedPipe
	}

	m.running = true
	m.logger.Debug("mock audio sink started")

	return nil
}

// Stop halts audio acceptance.
func (m *MockSink) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.running = false
	return nil
}

// Write accepts an audio chunk, blocking for its playback duration when
// pacing is enabled.
func (m *MockSink) Write(ctx context.Context, chunk Chunk) error {
	m.mu.Lock()
	if m.closed || !m.running {
		m.mu.Unlock()
		return io.ErrClosedPipe
	}
	if m.capture {
		m.samples = append(m.samples, chunk.Samples...)
	}
	paced := m.paced
	m.mu.Unlock()

	m.chunksWritten.Add(1)
	m.samplesWritten.Add(int64(len(chunk.Samples)))

	if paced {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(chunk.Duration()):
		}
	}
	return nil
}

// Flush is a no-op: the mock has no device buffer.
func (m *MockSink) Flush(ctx context.Context) error {
	return ctx.Err()
}

// Samples returns a copy of every captured sample.
func (m *MockSink) Samples() []int16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int16, len(m.samples))
	copy(out, m.samples)
	return out
}

// Config returns the audio configuration.
func (m *MockSink) Config() Config {
	return m.cfg
}

// Name returns "mock".
func (m *MockSink) Name() string {
	return "mock"
}

// Close releases resources.
func (m *MockSink) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.running = false
	return nil
}

// Stats returns sink statistics.
func (m *MockSink) Stats() SinkStats {
	m.mu.Lock()
	running := m.running
	m.mu.Unlock()

	return SinkStats{
		ChunksWritten:  m.chunksWritten.Load(),
		SamplesWritten: m.samplesWritten.Load(),
		Running:        running,
		Backend:        "mock",
	}
}

// Ensure MockSink implements SinkWithStats.
var _ SinkWithStats = (*MockSink)(nil)
