// Package eye blinks the eye LED on its own timing source.
//
// The blinker runs in its own goroutine on a ticker, so blink timing keeps
// firing regardless of what the announcement pipeline is doing. Audio
// playback blocking the main flow must never stall a blink.
package eye

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tockworks/go-tock/pkg/actuator"
)

// Phase is the eye LED state.
type Phase int

const (
	// Open means the eye LED is lit.
	Open Phase = iota
	// Closed means the eye LED is dark.
	Closed
)

// String returns a stable name for logging.
func (p Phase) String() string {
	if p == Closed {
		return "closed"
	}
	return "open"
}

// Config holds blink timing. Dwell times are in ticks; at the default
// ~61 Hz tick a closed dwell is roughly 80-250 ms and an open dwell
// roughly 130 ms to 2.1 s.
type Config struct {
	// TickInterval is the period of the blink timer.
	TickInterval time.Duration `yaml:"tick_interval" json:"tick_interval"`

	// ClosedMinTicks and ClosedMaxTicks bound the closed dwell, inclusive.
	ClosedMinTicks int `yaml:"closed_min_ticks" json:"closed_min_ticks"`
	ClosedMaxTicks int `yaml:"closed_max_ticks" json:"closed_max_ticks"`

	// OpenMinTicks and OpenMaxTicks bound the open dwell, inclusive.
	OpenMinTicks int `yaml:"open_min_ticks" json:"open_min_ticks"`
	OpenMaxTicks int `yaml:"open_max_ticks" json:"open_max_ticks"`
}

// DefaultConfig returns the reference blink cadence.
func DefaultConfig() Config {
	return Config{
		TickInterval:   16400 * time.Microsecond, // ~61 Hz
		ClosedMinTicks: 5,
		ClosedMaxTicks: 15,
		OpenMinTicks:   8,
		OpenMaxTicks:   127,
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %v", c.TickInterval)
	}
	if c.ClosedMinTicks < 1 || c.ClosedMaxTicks < c.ClosedMinTicks {
		return fmt.Errorf("closed dwell bounds invalid: [%d, %d]", c.ClosedMinTicks, c.ClosedMaxTicks)
	}
	if c.OpenMinTicks < 1 || c.OpenMaxTicks < c.OpenMinTicks {
		return fmt.Errorf("open dwell bounds invalid: [%d, %d]", c.OpenMinTicks, c.OpenMaxTicks)
	}
	return nil
}

// Blinker toggles the eye LED between open and closed with randomized
// dwell times. It owns the eye actuator exclusively for the device
// lifetime; nothing else writes that LED.
type Blinker struct {
	act actuator.Digital
	cfg Config

	mu        sync.Mutex
	rng       *rand.Rand
	phase     Phase
	ticksLeft int

	blinks atomic.Int64
}

// BlinkerOption configures a Blinker.
type BlinkerOption func(*Blinker)

// WithRand replaces the random source, for deterministic tests.
func WithRand(rng *rand.Rand) BlinkerOption {
	return func(b *Blinker) {
		b.rng = rng
	}
}

// NewBlinker creates a blinker over the given LED actuator.
func NewBlinker(act actuator.Digital, cfg Config, opts ...BlinkerOption) *Blinker {
	b := &Blinker{
		act: act,
		cfg: cfg,
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.phase = Open
	b.ticksLeft = b.dwell(Open)
	return b
}

// Run drives the blinker until ctx is cancelled. Call it in its own
// goroutine; it shares no timing with playback.
func (b *Blinker) Run(ctx context.Context) {
	b.act.SetDigital(true)

	ticker := time.NewTicker(b.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			b.act.SetDigital(false)
			return
		case <-ticker.C:
			b.Tick()
		}
	}
}

// Tick advances the state machine by one timer period: decrement the dwell
// counter, and on zero toggle the phase and resample the next dwell.
func (b *Blinker) Tick() {
	b.mu.Lock()
	b.ticksLeft--
	if b.ticksLeft > 0 {
		b.mu.Unlock()
		return
	}

	if b.phase == Open {
		b.phase = Closed
		b.blinks.Add(1)
	} else {
		b.phase = Open
	}
	phase := b.phase
	b.ticksLeft = b.dwell(phase)
	b.mu.Unlock()

	b.act.SetDigital(phase == Open)
}

// Phase returns the current LED phase.
func (b *Blinker) Phase() Phase {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase
}

// Blinks returns how many times the eye has closed since startup.
func (b *Blinker) Blinks() int64 {
	return b.blinks.Load()
}

// dwell draws a uniform dwell in ticks for the given phase, inclusive of
// both bounds. Callers hold b.mu.
func (b *Blinker) dwell(p Phase) int {
	lo, hi := b.cfg.OpenMinTicks, b.cfg.OpenMaxTicks
	if p == Closed {
		lo, hi = b.cfg.ClosedMinTicks, b.cfg.ClosedMaxTicks
	}
	return lo + b.rng.IntN(hi-lo+1)
}
