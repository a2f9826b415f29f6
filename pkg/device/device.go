// Package device wires the announcement pipeline together: button polling,
// time-to-phrase translation, clip playback with the mouth driver attached,
// and the independently blinking eye.
package device

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/tockworks/go-tock/pkg/clips"
	"github.com/tockworks/go-tock/pkg/clock"
	"github.com/tockworks/go-tock/pkg/eye"
	"github.com/tockworks/go-tock/pkg/input"
	"github.com/tockworks/go-tock/pkg/phrase"
	"github.com/tockworks/go-tock/pkg/playback"
)

// Config holds orchestration timing and policy.
type Config struct {
	// PollInterval is the button sampling period.
	PollInterval time.Duration

	// Settle is the debounce settle time.
	Settle time.Duration

	// AbortOnClipError stops the remaining phrase when a clip fails.
	// Off by default: an incomplete spoken sentence beats silence.
	AbortOnClipError bool

	// SeedTime is the trusted fallback used when the clock reports
	// ErrNotSet, typically the firmware build time.
	SeedTime clock.TimeOfDay

	// SeedEnabled gates the fallback seeding path.
	SeedEnabled bool
}

// DefaultConfig returns the reference polling cadence and policy.
func DefaultConfig() Config {
	return Config{
		PollInterval: time.Millisecond,
		Settle:       input.DefaultSettle,
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %v", c.PollInterval)
	}
	if c.Settle <= 0 {
		return fmt.Errorf("settle must be positive, got %v", c.Settle)
	}
	return nil
}

// Announcement describes the most recent spoken time.
type Announcement struct {
	ID    string     `json:"id"`
	At    time.Time  `json:"at"`
	Hour  int        `json:"hour"`
	Min   int        `json:"minute"`
	Clips []clips.ID `json:"clips"`
}

// Stats is a point-in-time snapshot of device counters.
type Stats struct {
	UptimeSeconds int64         `json:"uptime_seconds"`
	Activations   int64         `json:"activations"`
	ClipsPlayed   int64         `json:"clips_played"`
	ClipsSkipped  int64         `json:"clips_skipped"`
	Blinks        int64         `json:"blinks"`
	EyePhase      string        `json:"eye_phase"`
	Speaking      bool          `json:"speaking"`
	Last          *Announcement `json:"last_announcement,omitempty"`
}

// Device is the top-level control loop.
type Device struct {
	cfg     Config
	clk     clock.Source
	engine  *playback.Engine
	blinker *eye.Blinker
	button  input.Button
	deb     *input.Debouncer
	logger  *slog.Logger

	started time.Time

	activations  atomic.Int64
	clipsPlayed  atomic.Int64
	clipsSkipped atomic.Int64
	speaking     atomic.Bool

	lastMu sync.Mutex
	last   *Announcement
}

// New wires a device. The engine must already carry the mouth driver as
// its tap; the blinker is started by Run and owns the eye LED throughout.
func New(cfg Config, clk clock.Source, engine *playback.Engine, blinker *eye.Blinker, button input.Button, logger *slog.Logger) *Device {
	if logger == nil {
		logger = slog.Default()
	}
	return &Device{
		cfg:     cfg,
		clk:     clk,
		engine:  engine,
		blinker: blinker,
		button:  button,
		deb:     input.NewDebouncer(cfg.Settle),
		logger:  logger,
		started: time.Now(),
	}
}

// Run starts the blink goroutine and then polls the button until ctx is
// cancelled. Announcements run inline in this loop; the blinker keeps its
// own timing source and is never stalled by them.
func (d *Device) Run(ctx context.Context) error {
	go d.blinker.Run(ctx)

	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()

	d.logger.Info("device ready", "poll_interval", d.cfg.PollInterval)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if d.deb.Poll(d.button.Pressed(), time.Now()) {
				d.Announce(ctx)
			}
		}
	}
}

// Announce speaks the current time. Exactly one announcement is in flight
// at a time; concurrent calls (e.g. from the diagnostics endpoint) while
// one is draining are rejected with false.
func (d *Device) Announce(ctx context.Context) bool {
	if !d.speaking.CompareAndSwap(false, true) {
		d.logger.Debug("announcement already in flight, ignoring trigger")
		return false
	}
	defer d.speaking.Store(false)

	id := uuid.NewString()

	tod, err := d.now()
	if err != nil {
		d.logger.Error("time unavailable, skipping announcement", "id", id, "err", err)
		return false
	}

	seq := phrase.Translate(tod.Hour, tod.Minute)
	d.logger.Info("announcing time",
		"id", id,
		"hour", tod.Hour,
		"minute", tod.Minute,
		"clips", seq,
	)

	for _, c := range seq {
		if ctx.Err() != nil {
			return false
		}
		switch res := d.engine.Play(ctx, c); res {
		case playback.Completed:
			d.clipsPlayed.Add(1)
		default:
			d.clipsSkipped.Add(1)
			d.logger.Warn("clip skipped", "id", id, "clip", c, "result", res.String())
			if d.cfg.AbortOnClipError {
				d.logger.Warn("aborting remaining phrase", "id", id)
				return false
			}
		}
	}

	d.activations.Add(1)
	d.lastMu.Lock()
	d.last = &Announcement{ID: id, At: time.Now(), Hour: tod.Hour, Min: tod.Minute, Clips: seq}
	d.lastMu.Unlock()

	return true
}

// now reads the clock, seeding it once from the trusted fallback if it
// reports not-set.
func (d *Device) now() (clock.TimeOfDay, error) {
	tod, err := d.clk.Now()
	if err == nil {
		return tod, nil
	}
	if !errors.Is(err, clock.ErrNotSet) || !d.cfg.SeedEnabled {
		return clock.TimeOfDay{}, err
	}

	seeder, ok := d.clk.(clock.Seeder)
	if !ok {
		return clock.TimeOfDay{}, err
	}
	d.logger.Warn("clock not set, seeding from fallback",
		"hour", d.cfg.SeedTime.Hour,
		"minute", d.cfg.SeedTime.Minute,
	)
	if err := seeder.Seed(d.cfg.SeedTime); err != nil {
		return clock.TimeOfDay{}, fmt.Errorf("seed clock: %w", err)
	}
	return d.clk.Now()
}

// Stats returns a snapshot of the device counters.
func (d *Device) Stats() Stats {
	d.lastMu.Lock()
	last := d.last
	d.lastMu.Unlock()

	return Stats{
		UptimeSeconds: int64(time.Since(d.started).Seconds()),
		Activations:   d.activations.Load(),
		ClipsPlayed:   d.clipsPlayed.Load(),
		ClipsSkipped:  d.clipsSkipped.Load(),
		Blinks:        d.blinker.Blinks(),
		EyePhase:      d.blinker.Phase().String(),
		Speaking:      d.speaking.Load(),
		Last:          last,
	}
}
