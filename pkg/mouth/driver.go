// Package mouth drives the talking-mouth LED from the playback waveform.
//
// The driver subscribes to decoded samples and tracks only the running
// low/high bounds of the current window. The bound spread is a cheap
// loudness proxy: no sample buffer is needed, and one LED write happens per
// window, so the audio path never waits on the LED.
package mouth

import (
	"fmt"

	"github.com/tockworks/go-tock/pkg/actuator"
)

// Config holds the envelope tuning knobs. Both are calibration constants
// for visual effect, not correctness-critical values.
type Config struct {
	// Window is the number of samples between LED updates.
	Window int `yaml:"window" json:"window"`

	// Gain scales the window's amplitude spread into a 0-255 brightness.
	Gain int `yaml:"gain" json:"gain"`
}

// DefaultConfig returns the tuning used by the reference hardware.
func DefaultConfig() Config {
	return Config{
		Window: 256,
		Gain:   4,
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Window <= 0 {
		return fmt.Errorf("window must be positive, got %d", c.Window)
	}
	if c.Gain <= 0 {
		return fmt.Errorf("gain must be positive, got %d", c.Gain)
	}
	return nil
}

// Driver computes a rolling amplitude envelope over the samples of one
// playback and pushes brightness updates to the mouth LED. It owns the
// mouth actuator exclusively while a clip plays, and always leaves the LED
// dark between utterances.
//
// Not safe for concurrent use; the playback engine calls it from a single
// goroutine, which is the contract.
type Driver struct {
	act actuator.Brightness
	cfg Config

	low    int16
	high   int16
	count  int
	primed bool
}

// NewDriver creates a mouth driver over the given LED actuator.
func NewDriver(act actuator.Brightness, cfg Config) *Driver {
	return &Driver{act: act, cfg: cfg}
}

// OnPlaybackStart resets the window for a fresh clip.
func (d *Driver) OnPlaybackStart() {
	d.count = 0
	d.primed = false
}

// OnSample folds one sample into the window bounds. Every Window samples
// the spread is flushed to the LED and the next window starts seeded with
// the flushing sample.
func (d *Driver) OnSample(s int16) {
	if !d.primed {
		d.low, d.high = s, s
		d.primed = true
	} else {
		if s < d.low {
			d.low = s
		}
		if s > d.high {
			d.high = s
		}
	}

	d.count++
	if d.count < d.cfg.Window {
		return
	}

	d.act.SetBrightness(d.brightness())
	d.low, d.high = s, s
	d.count = 0
}

// OnPlaybackEnd forces the LED off so it never holds a stale brightness
// between utterances.
func (d *Driver) OnPlaybackEnd() {
	d.act.SetBrightness(0)
	d.count = 0
	d.primed = false
}

func (d *Driver) brightness() uint8 {
	spread := (int(d.high) - int(d.low)) * d.cfg.Gain
	if spread < 0 {
		spread = 0
	}
	if spread > 255 {
		spread = 255
	}
	return uint8(spread)
}
