// Package audioio provides audio output for the announcement pipeline.
//
// Two backends are supported:
//   - oto: system audio output, standing in for the hardware DAC
//   - mock: CI/testing without an audio device
//
// Every backend paces writes at its native output rate. That pacing is what
// clocks the whole playback path: the decoder never runs ahead of the DAC.
package audioio

import (
	"fmt"
	"time"
)

// Backend represents the audio output backend type.
type Backend string

const (
	// BackendOto plays through the system audio device via oto.
	BackendOto Backend = "oto"
	// BackendMock uses a mock implementation for testing.
	BackendMock Backend = "mock"
)

// Config holds audio output configuration.
type Config struct {
	// Backend specifies which audio backend to use.
	Backend Backend `yaml:"backend" json:"backend"`

	// SampleRate is the fixed clip sample rate in Hz. Clips recorded at
	// any other rate are rejected at decode time.
	SampleRate int `yaml:"sample_rate" json:"sample_rate"`

	// Channels is the number of audio channels. The clip set is mono.
	Channels int `yaml:"channels" json:"channels"`

	// BufferDuration is the size of one playback chunk.
	BufferDuration time.Duration `yaml:"buffer_duration" json:"buffer_duration"`
}

// DefaultConfig returns a Config matching the provisioned clip set.
func DefaultConfig() Config {
	return Config{
		Backend:        BackendOto,
		SampleRate:     22050,
		Channels:       1,
		BufferDuration: 20 * time.Millisecond,
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate)
	}
	if c.Channels != 1 {
		return fmt.Errorf("channels must be 1 (mono clip set), got %d", c.Channels)
	}
	if c.BufferDuration <= 0 {
		return fmt.Errorf("buffer_duration must be positive, got %v", c.BufferDuration)
	}
	switch c.Backend {
	case BackendOto, BackendMock:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	return nil
}

// BufferSize returns the number of samples per chunk.
func (c *Config) BufferSize() int {
	return int(float64(c.SampleRate) * c.BufferDuration.Seconds())
}
