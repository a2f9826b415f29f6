package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault_Validates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tockd.yaml")
	body := `
environment: production
log_level: debug
clips:
  dir: /srv/clips
audio:
  backend: mock
  sample_rate: 8000
  channels: 1
  buffer_ms: 10
mouth:
  window: 128
  gain: 8
eye:
  tick_hz: 50
announce:
  abort_on_clip_error: true
  seed_time: "12:00"
leds:
  backend: httpd
  daemon_url: http://127.0.0.1:9191
web:
  enabled: false
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Environment != "production" || cfg.LogLevel != "debug" {
		t.Errorf("environment/log_level not applied: %q %q", cfg.Environment, cfg.LogLevel)
	}
	if cfg.Clips.Dir != "/srv/clips" {
		t.Errorf("clips.dir = %q", cfg.Clips.Dir)
	}
	if cfg.Audio.SampleRate != 8000 || cfg.Audio.BufferMS != 10 {
		t.Errorf("audio not applied: %+v", cfg.Audio)
	}
	if cfg.Mouth.Window != 128 || cfg.Mouth.Gain != 8 {
		t.Errorf("mouth not applied: %+v", cfg.Mouth)
	}
	if !cfg.Announce.AbortOnClipError {
		t.Error("abort_on_clip_error not applied")
	}
	if cfg.Leds.Backend != "httpd" || cfg.Leds.DaemonURL != "http://127.0.0.1:9191" {
		t.Errorf("leds not applied: %+v", cfg.Leds)
	}

	// Defaults survive for untouched sections.
	if cfg.Eye.OpenMaxTicks != 127 {
		t.Errorf("eye defaults lost: %+v", cfg.Eye)
	}

	ec := cfg.Eye.ToEye()
	if ec.TickInterval != time.Second/50 {
		t.Errorf("tick interval = %v, want 20ms", ec.TickInterval)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TOCK_CLIP_DIR", "/mnt/sd/clips")
	t.Setenv("TOCK_LOG_LEVEL", "warn")
	t.Setenv("TOCK_WEB_PORT", "9001")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Clips.Dir != "/mnt/sd/clips" {
		t.Errorf("TOCK_CLIP_DIR not applied: %q", cfg.Clips.Dir)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("TOCK_LOG_LEVEL not applied: %q", cfg.LogLevel)
	}
	if cfg.Web.Port != 9001 {
		t.Errorf("TOCK_WEB_PORT not applied: %d", cfg.Web.Port)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty clip dir", func(c *Config) { c.Clips.Dir = "" }},
		{"stereo audio", func(c *Config) { c.Audio.Channels = 2 }},
		{"zero mouth window", func(c *Config) { c.Mouth.Window = 0 }},
		{"zero tick hz", func(c *Config) { c.Eye.TickHz = 0 }},
		{"inverted eye bounds", func(c *Config) { c.Eye.OpenMaxTicks = 1 }},
		{"zero settle", func(c *Config) { c.Input.SettleMS = 0 }},
		{"unknown led backend", func(c *Config) { c.Leds.Backend = "spi" }},
		{"httpd without url", func(c *Config) { c.Leds.Backend = "httpd"; c.Leds.DaemonURL = "" }},
		{"bad seed time", func(c *Config) { c.Announce.SeedTime = "25:99" }},
		{"web port out of range", func(c *Config) { c.Web.Port = 70000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("invalid config accepted")
			}
		})
	}
}

func TestParseSeedTime(t *testing.T) {
	tod, err := ParseSeedTime("09:45")
	if err != nil {
		t.Fatalf("ParseSeedTime failed: %v", err)
	}
	if tod.Hour != 9 || tod.Minute != 45 {
		t.Errorf("parsed %d:%d, want 9:45", tod.Hour, tod.Minute)
	}

	if _, err := ParseSeedTime("midnight"); err == nil {
		t.Error("bad seed time accepted")
	}
}

func TestToDevice(t *testing.T) {
	cfg := Default()
	cfg.Announce.SeedTime = "06:30"

	dc, err := cfg.ToDevice()
	if err != nil {
		t.Fatalf("ToDevice failed: %v", err)
	}
	if dc.PollInterval != time.Millisecond {
		t.Errorf("poll interval = %v, want 1ms", dc.PollInterval)
	}
	if dc.Settle != 15*time.Millisecond {
		t.Errorf("settle = %v, want 15ms", dc.Settle)
	}
	if !dc.SeedEnabled || dc.SeedTime.Hour != 6 || dc.SeedTime.Minute != 30 {
		t.Errorf("seed not carried: %+v", dc)
	}
}
