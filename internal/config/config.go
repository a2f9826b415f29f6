// Package config loads the tockd configuration from a YAML file with
// TOCK_* environment overrides for the knobs that change per deployment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tockworks/go-tock/pkg/audioio"
	"github.com/tockworks/go-tock/pkg/clock"
	"github.com/tockworks/go-tock/pkg/device"
	"github.com/tockworks/go-tock/pkg/eye"
	"github.com/tockworks/go-tock/pkg/input"
	"github.com/tockworks/go-tock/pkg/mouth"
)

// Config is the full tockd configuration.
type Config struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`

	Clips    ClipsConfig    `yaml:"clips"`
	Audio    AudioConfig    `yaml:"audio"`
	Mouth    mouth.Config   `yaml:"mouth"`
	Eye      EyeConfig      `yaml:"eye"`
	Input    InputConfig    `yaml:"input"`
	Announce AnnounceConfig `yaml:"announce"`
	Leds     LedsConfig     `yaml:"leds"`
	Web      WebConfig      `yaml:"web"`
}

// ClipsConfig locates the provisioned clip set.
type ClipsConfig struct {
	Dir string `yaml:"dir"`
}

// AudioConfig mirrors audioio.Config with millisecond fields for YAML.
type AudioConfig struct {
	Backend    string `yaml:"backend"`
	SampleRate int    `yaml:"sample_rate"`
	Channels   int    `yaml:"channels"`
	BufferMS   int    `yaml:"buffer_ms"`
}

// ToAudioIO converts to the audioio package config.
func (c AudioConfig) ToAudioIO() audioio.Config {
	return audioio.Config{
		Backend:        audioio.Backend(c.Backend),
		SampleRate:     c.SampleRate,
		Channels:       c.Channels,
		BufferDuration: time.Duration(c.BufferMS) * time.Millisecond,
	}
}

// EyeConfig mirrors eye.Config with a Hz tick field for YAML.
type EyeConfig struct {
	TickHz         int `yaml:"tick_hz"`
	ClosedMinTicks int `yaml:"closed_min_ticks"`
	ClosedMaxTicks int `yaml:"closed_max_ticks"`
	OpenMinTicks   int `yaml:"open_min_ticks"`
	OpenMaxTicks   int `yaml:"open_max_ticks"`
}

// ToEye converts to the eye package config.
func (c EyeConfig) ToEye() eye.Config {
	return eye.Config{
		TickInterval:   time.Second / time.Duration(c.TickHz),
		ClosedMinTicks: c.ClosedMinTicks,
		ClosedMaxTicks: c.ClosedMaxTicks,
		OpenMinTicks:   c.OpenMinTicks,
		OpenMaxTicks:   c.OpenMaxTicks,
	}
}

// InputConfig holds button polling and debounce timing.
type InputConfig struct {
	SettleMS int `yaml:"settle_ms"`
	PollUS   int `yaml:"poll_us"`
}

// AnnounceConfig holds announcement policy.
type AnnounceConfig struct {
	// AbortOnClipError stops the remaining phrase when a clip fails.
	AbortOnClipError bool `yaml:"abort_on_clip_error"`

	// SeedTime ("HH:MM") seeds an unset clock once at the first read.
	// Empty disables seeding.
	SeedTime string `yaml:"seed_time"`
}

// LedsConfig selects the LED backend.
type LedsConfig struct {
	// Backend is "mock" or "httpd".
	Backend string `yaml:"backend"`

	// DaemonURL is the LED daemon base URL for the httpd backend.
	DaemonURL string `yaml:"daemon_url"`

	// MouthChannel and EyeChannel name the daemon's LED channels.
	MouthChannel string `yaml:"mouth_channel"`
	EyeChannel   string `yaml:"eye_channel"`
}

// WebConfig configures the diagnostics endpoint.
type WebConfig struct {
	Enabled bool   `yaml:"enabled"`
	Bind    string `yaml:"bind"`
	Port    int    `yaml:"port"`
}

// Addr returns the listen address.
func (c WebConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}

// Default returns the reference configuration.
func Default() Config {
	ac := audioio.DefaultConfig()
	ec := eye.DefaultConfig()
	return Config{
		Environment: "development",
		LogLevel:    "info",
		Clips:       ClipsConfig{Dir: "./clips"},
		Audio: AudioConfig{
			Backend:    string(ac.Backend),
			SampleRate: ac.SampleRate,
			Channels:   ac.Channels,
			BufferMS:   int(ac.BufferDuration / time.Millisecond),
		},
		Mouth: mouth.DefaultConfig(),
		Eye: EyeConfig{
			TickHz:         61,
			ClosedMinTicks: ec.ClosedMinTicks,
			ClosedMaxTicks: ec.ClosedMaxTicks,
			OpenMinTicks:   ec.OpenMinTicks,
			OpenMaxTicks:   ec.OpenMaxTicks,
		},
		Input: InputConfig{
			SettleMS: int(input.DefaultSettle / time.Millisecond),
			PollUS:   1000,
		},
		Announce: AnnounceConfig{},
		Leds: LedsConfig{
			Backend:      "mock",
			DaemonURL:    "http://127.0.0.1:9090",
			MouthChannel: "mouth",
			EyeChannel:   "eye",
		},
		Web: WebConfig{
			Enabled: true,
			Bind:    "127.0.0.1",
			Port:    8730,
		},
	}
}

// Load reads the config file at path (defaults apply when path is empty),
// applies TOCK_* environment overrides, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TOCK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TOCK_ENVIRONMENT"); v != "" {
		cfg.Environment = v
	}
	if v := os.Getenv("TOCK_CLIP_DIR"); v != "" {
		cfg.Clips.Dir = v
	}
	if v := os.Getenv("TOCK_AUDIO_BACKEND"); v != "" {
		cfg.Audio.Backend = v
	}
	if v := os.Getenv("TOCK_LED_BACKEND"); v != "" {
		cfg.Leds.Backend = v
	}
	if v := os.Getenv("TOCK_LED_DAEMON_URL"); v != "" {
		cfg.Leds.DaemonURL = v
	}
	if v := os.Getenv("TOCK_WEB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Web.Port = port
		}
	}
}

// Validate checks the whole configuration, delegating to the per-package
// validators where they exist.
func (c *Config) Validate() error {
	if c.Clips.Dir == "" {
		return fmt.Errorf("clips.dir must be set")
	}

	ac := c.Audio.ToAudioIO()
	if err := ac.Validate(); err != nil {
		return fmt.Errorf("audio: %w", err)
	}
	if err := c.Mouth.Validate(); err != nil {
		return fmt.Errorf("mouth: %w", err)
	}
	if c.Eye.TickHz <= 0 {
		return fmt.Errorf("eye: tick_hz must be positive, got %d", c.Eye.TickHz)
	}
	ec := c.Eye.ToEye()
	if err := ec.Validate(); err != nil {
		return fmt.Errorf("eye: %w", err)
	}
	if c.Input.SettleMS <= 0 {
		return fmt.Errorf("input: settle_ms must be positive, got %d", c.Input.SettleMS)
	}
	if c.Input.PollUS <= 0 {
		return fmt.Errorf("input: poll_us must be positive, got %d", c.Input.PollUS)
	}
	switch c.Leds.Backend {
	case "mock":
	case "httpd":
		if c.Leds.DaemonURL == "" {
			return fmt.Errorf("leds: daemon_url required for httpd backend")
		}
	default:
		return fmt.Errorf("leds: unknown backend %q", c.Leds.Backend)
	}
	if c.Announce.SeedTime != "" {
		if _, err := ParseSeedTime(c.Announce.SeedTime); err != nil {
			return fmt.Errorf("announce: %w", err)
		}
	}
	if c.Web.Enabled && (c.Web.Port <= 0 || c.Web.Port > 65535) {
		return fmt.Errorf("web: port out of range: %d", c.Web.Port)
	}
	return nil
}

// ParseSeedTime parses an "HH:MM" fallback time.
func ParseSeedTime(s string) (clock.TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return clock.TimeOfDay{}, fmt.Errorf("seed_time %q not HH:MM: %w", s, err)
	}
	return clock.TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// ToDevice converts the announcement and input settings to the device
// package config.
func (c *Config) ToDevice() (device.Config, error) {
	dc := device.Config{
		PollInterval:     time.Duration(c.Input.PollUS) * time.Microsecond,
		Settle:           time.Duration(c.Input.SettleMS) * time.Millisecond,
		AbortOnClipError: c.Announce.AbortOnClipError,
	}
	if c.Announce.SeedTime != "" {
		seed, err := ParseSeedTime(c.Announce.SeedTime)
		if err != nil {
			return device.Config{}, err
		}
		dc.SeedTime = seed
		dc.SeedEnabled = true
	}
	return dc, nil
}
