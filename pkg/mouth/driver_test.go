package mouth

import (
	"testing"

	"github.com/tockworks/go-tock/pkg/actuator"
)

func feed(d *Driver, samples []int16) {
	for _, s := range samples {
		d.OnSample(s)
	}
}

func TestDriver_WindowBrightness(t *testing.T) {
	tests := []struct {
		name string
		low  int16
		high int16
		want uint8
	}{
		{"small spread", 0, 10, 40},
		{"zero range", 7, 7, 0},
		{"at the clamp boundary", 0, 63, 252},
		{"saturating", -500, 500, 255},
		{"negative range only", -40, -20, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act := actuator.NewMockBrightness()
			d := NewDriver(act, DefaultConfig())
			d.OnPlaybackStart()

			// 256 samples bouncing between the extremes.
			samples := make([]int16, 256)
			for i := range samples {
				if i%2 == 0 {
					samples[i] = tt.low
				} else {
					samples[i] = tt.high
				}
			}
			feed(d, samples)

			levels := act.Levels()
			if len(levels) != 1 {
				t.Fatalf("expected exactly one LED write after 256 samples, got %d", len(levels))
			}
			if levels[0] != tt.want {
				t.Errorf("brightness = %d, want %d", levels[0], tt.want)
			}
		})
	}
}

func TestDriver_NoWriteBetweenWindows(t *testing.T) {
	act := actuator.NewMockBrightness()
	d := NewDriver(act, DefaultConfig())
	d.OnPlaybackStart()

	feed(d, make([]int16, 255))
	if n := len(act.Levels()); n != 0 {
		t.Fatalf("LED written %d times before the window filled", n)
	}

	d.OnSample(100)
	if n := len(act.Levels()); n != 1 {
		t.Fatalf("expected one LED write at sample 256, got %d", n)
	}
}

// The flushing sample seeds the next window, so a loud boundary sample
// still counts toward the following spread.
func TestDriver_FlushSampleSeedsNextWindow(t *testing.T) {
	act := actuator.NewMockBrightness()
	d := NewDriver(act, Config{Window: 4, Gain: 1})
	d.OnPlaybackStart()

	feed(d, []int16{0, 0, 0, 100}) // flush: spread 100, next window seeded at 100
	feed(d, []int16{100, 100, 100, 100})

	levels := act.Levels()
	if len(levels) != 2 {
		t.Fatalf("expected two LED writes, got %d", len(levels))
	}
	if levels[0] != 100 {
		t.Errorf("first window brightness = %d, want 100", levels[0])
	}
	if levels[1] != 0 {
		t.Errorf("second window brightness = %d, want 0 (flat at seed level)", levels[1])
	}
}

func TestDriver_PlaybackEndForcesOff(t *testing.T) {
	act := actuator.NewMockBrightness()
	d := NewDriver(act, Config{Window: 4, Gain: 4})
	d.OnPlaybackStart()

	feed(d, []int16{-30, 30, -30, 30})
	if act.Last() == 0 {
		t.Fatal("expected a nonzero brightness mid-playback")
	}

	d.OnPlaybackEnd()
	if act.Last() != 0 {
		t.Errorf("LED holds brightness %d after playback end, want 0", act.Last())
	}
}

// A fresh playback must not inherit bounds from the previous clip.
func TestDriver_StateResetBetweenPlaybacks(t *testing.T) {
	act := actuator.NewMockBrightness()
	d := NewDriver(act, Config{Window: 4, Gain: 1})

	d.OnPlaybackStart()
	feed(d, []int16{-200, 200, 0, 0})
	d.OnPlaybackEnd()

	d.OnPlaybackStart()
	feed(d, []int16{5, 5, 5, 5})
	d.OnPlaybackEnd()

	levels := act.Levels()
	// writes: window1 flush, end off, window2 flush, end off
	if len(levels) != 4 {
		t.Fatalf("expected 4 LED writes, got %d: %v", len(levels), levels)
	}
	if levels[2] != 0 {
		t.Errorf("second playback window brightness = %d, want 0 (flat signal)", levels[2])
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	bad := Config{Window: 0, Gain: 4}
	if err := bad.Validate(); err == nil {
		t.Error("zero window accepted")
	}
	bad = Config{Window: 256, Gain: 0}
	if err := bad.Validate(); err == nil {
		t.Error("zero gain accepted")
	}
}
