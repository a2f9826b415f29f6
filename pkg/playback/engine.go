// Package playback streams one clip at a time from the store to the audio
// sink, exposing every decoded sample to a tap along the way.
//
// The engine decodes no faster than the sink drains: Sink.Write blocks at
// the output rate, so the hardware output is the effective sample clock.
package playback

import (
	"context"
	"log/slog"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tockworks/go-tock/pkg/audioio"
	"github.com/tockworks/go-tock/pkg/clips"
)

// Result reports how a single play call ended.
type Result int

const (
	// Completed means the clip played to stream exhaustion.
	Completed Result = iota
	// OpenFailed means the store could not resolve the clip.
	OpenFailed
	// FormatInvalid means the stream was resolved but is not decodable
	// as a clip (bad header, wrong rate, not mono, or truncated data).
	FormatInvalid
)

// String returns a stable name for logging.
func (r Result) String() string {
	switch r {
	case Completed:
		return "completed"
	case OpenFailed:
		return "open_failed"
	case FormatInvalid:
		return "format_invalid"
	default:
		return "unknown"
	}
}

// Tap observes decoded samples during a play call. OnPlaybackStart and
// OnPlaybackEnd bracket the sample notifications exactly once per Play,
// on every exit path, success or failure.
type Tap interface {
	OnPlaybackStart()
	OnSample(s int16)
	OnPlaybackEnd()
}

// NopTap is a Tap that ignores everything.
type NopTap struct{}

// OnPlaybackStart does nothing.
func (NopTap) OnPlaybackStart() {}

// OnSample does nothing.
func (NopTap) OnSample(int16) {}

// OnPlaybackEnd does nothing.
func (NopTap) OnPlaybackEnd() {}

// Engine drives streaming decode of clips into a sink.
type Engine struct {
	store  clips.Store
	sink   audioio.Sink
	tap    Tap
	logger *slog.Logger
}

// NewEngine creates a playback engine. A nil tap is replaced by NopTap.
func NewEngine(store clips.Store, sink audioio.Sink, tap Tap, logger *slog.Logger) *Engine {
	if tap == nil {
		tap = NopTap{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{store: store, sink: sink, tap: tap, logger: logger}
}

// Play decodes the clip and streams it to the sink, notifying the tap for
// each sample before its chunk is written. Per-clip failures are reported
// in the Result, never as a panic or abort: the caller decides whether the
// rest of the phrase still plays.
func (e *Engine) Play(ctx context.Context, id clips.ID) Result {
	e.tap.OnPlaybackStart()
	defer e.tap.OnPlaybackEnd()

	rc, err := e.store.Open(id)
	if err != nil {
		e.logger.Warn("clip open failed", "clip", id, "err", err)
		return OpenFailed
	}
	defer rc.Close()

	cfg := e.sink.Config()

	dec := wav.NewDecoder(rc)
	if !dec.IsValidFile() {
		e.logger.Warn("clip has invalid header", "clip", id)
		return FormatInvalid
	}
	if int(dec.NumChans) != cfg.Channels || int(dec.SampleRate) != cfg.SampleRate || dec.BitDepth != 16 {
		e.logger.Warn("clip format mismatch",
			"clip", id,
			"channels", dec.NumChans,
			"sample_rate", dec.SampleRate,
			"bit_depth", dec.BitDepth,
		)
		return FormatInvalid
	}
	if err := dec.FwdToPCM(); err != nil {
		e.logger.Warn("clip has no PCM data", "clip", id, "err", err)
		return FormatInvalid
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: cfg.Channels, SampleRate: cfg.SampleRate},
		Data:   make([]int, cfg.BufferSize()),
	}

	for {
		n, err := dec.PCMBuffer(buf)
		if err != nil {
			e.logger.Warn("clip decode failed mid-stream", "clip", id, "err", err)
			return FormatInvalid
		}
		if n == 0 {
			break
		}

		chunk := audioio.Chunk{
			Samples:    make([]int16, n),
			SampleRate: cfg.SampleRate,
			Channels:   cfg.Channels,
		}
		for i := 0; i < n; i++ {
			s := int16(buf.Data[i])
			e.tap.OnSample(s)
			chunk.Samples[i] = s
		}

		if err := e.sink.Write(ctx, chunk); err != nil {
			// Only shutdown or a closed sink lands here; the clip is
			// abandoned, not retried.
			e.logger.Debug("sink write interrupted", "clip", id, "err", err)
			return Completed
		}
	}

	return Completed
}
