package audioio

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"
)

// OtoSink plays audio through the system audio device via oto. On the
// deployed device this is the DAC feeding the speaker; the OS mixer clocks
// consumption, and the pipe between us and oto propagates that pacing back
// to the decoder.
type OtoSink struct {
	cfg    Config
	logger *slog.Logger
	otoCtx *oto.Context

	mu      sync.Mutex
	running bool
	closed  bool
	player  *oto.Player
	pw      *io.PipeWriter

	chunksWritten  atomic.Int64
	samplesWritten atomic.Int64
}

// NewOtoSink creates a sink over the system audio device. Fails if the
// audio device is unavailable.
func NewOtoSink(cfg Config, logger *slog.Logger) (*OtoSink, error) {
	if logger == nil {
		logger = slog.Default()
	}

	op := &oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: cfg.Channels,
		Format:       oto.FormatSignedInt16LE,
	}
	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("audioio: open audio device: %w", err)
	}
	<-ready

	logger.Debug("audio device ready", "sample_rate", cfg.SampleRate, "channels", cfg.Channels)
	return &OtoSink{cfg: cfg, logger: logger, otoCtx: otoCtx}, nil
}

// Start opens a fresh player over a pipe and begins playback.
func (s *OtoSink) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return io.ErrClosedPipe
	}
	if s.running {
		return nil
	}

	pr, pw := io.Pipe()
	s.player = s.otoCtx.NewPlayer(pr)
	s.pw = pw
	s.player.Play()
	s.running = true

	return nil
}

// Write sends a chunk to the device. Blocks while oto's buffer is full,
// which is what paces the decoder at the output rate.
func (s *OtoSink) Write(ctx context.Context, chunk Chunk) error {
	s.mu.Lock()
	pw := s.pw
	running := s.running
	s.mu.Unlock()

	if !running || pw == nil {
		return io.ErrClosedPipe
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	buf := make([]byte, len(chunk.Samples)*2)
	for i, sample := range chunk.Samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(sample))
	}
	if _, err := pw.Write(buf); err != nil {
		return fmt.Errorf("audioio: write to device: %w", err)
	}

	s.chunksWritten.Add(1)
	s.samplesWritten.Add(int64(len(chunk.Samples)))
	return nil
}

// Flush waits until oto has drained its buffer.
func (s *OtoSink) Flush(ctx context.Context) error {
	s.mu.Lock()
	player := s.player
	s.mu.Unlock()

	if player == nil {
		return nil
	}

	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	for player.BufferedSize() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// Stop halts playback and tears down the player. Start may be called again.
func (s *OtoSink) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.pw != nil {
		s.pw.Close()
		s.pw = nil
	}
	if s.player != nil {
		if err := s.player.Close(); err != nil {
			s.logger.Warn("audio player close", "err", err)
		}
		s.player = nil
	}
	return nil
}

// Config returns the audio configuration.
func (s *OtoSink) Config() Config {
	return s.cfg
}

// Name returns "oto".
func (s *OtoSink) Name() string {
	return "oto"
}

// Close releases the player. The oto context itself has no close; it lives
// for the process lifetime.
func (s *OtoSink) Close() error {
	err := s.Stop()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return err
}

// Stats returns sink statistics.
func (s *OtoSink) Stats() SinkStats {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()

	return SinkStats{
		ChunksWritten:  s.chunksWritten.Load(),
		SamplesWritten: s.samplesWritten.Load(),
		Running:        running,
		Backend:        "oto",
	}
}

// Ensure OtoSink implements SinkWithStats.
var _ SinkWithStats = (*OtoSink)(nil)
