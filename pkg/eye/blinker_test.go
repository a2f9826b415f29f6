package eye

import (
	"math/rand/v2"
	"testing"

	"github.com/tockworks/go-tock/pkg/actuator"
)

func newTestBlinker(act actuator.Digital) *Blinker {
	rng := rand.New(rand.NewPCG(1, 2))
	return NewBlinker(act, DefaultConfig(), WithRand(rng))
}

func TestBlinker_TogglesOnlyAtZero(t *testing.T) {
	act := actuator.NewMockDigital()
	b := newTestBlinker(act)

	start := b.Phase()
	if start != Open {
		t.Fatalf("initial phase = %v, want open", start)
	}

	// Tick until the first toggle, counting ticks.
	ticks := 0
	for b.Phase() == Open {
		b.Tick()
		ticks++
		if ticks > DefaultConfig().OpenMaxTicks {
			t.Fatal("no toggle within the maximum open dwell")
		}
	}

	if ticks < DefaultConfig().OpenMinTicks {
		t.Errorf("toggled after %d ticks, below the minimum open dwell %d",
			ticks, DefaultConfig().OpenMinTicks)
	}
	if n := len(act.States()); n != 1 {
		t.Errorf("LED written %d times during one dwell, want 1 (at the toggle)", n)
	}
	if act.On() {
		t.Error("LED still on after entering closed phase")
	}
}

func TestBlinker_DwellBounds(t *testing.T) {
	act := actuator.NewMockDigital()
	b := newTestBlinker(act)
	cfg := DefaultConfig()

	phase := b.Phase()
	ticks := 0
	trials := 0

	// Run through many full dwells and check every one stays in bounds.
	for trials < 200 {
		b.Tick()
		ticks++
		if b.Phase() == phase {
			continue
		}

		// A dwell just ended; `phase` held for `ticks` ticks.
		lo, hi := cfg.OpenMinTicks, cfg.OpenMaxTicks
		if phase == Closed {
			lo, hi = cfg.ClosedMinTicks, cfg.ClosedMaxTicks
		}
		if ticks < lo || ticks > hi {
			t.Fatalf("trial %d: %v dwell of %d ticks outside [%d, %d]",
				trials, phase, ticks, lo, hi)
		}

		phase = b.Phase()
		ticks = 0
		trials++
	}
}

func TestBlinker_CountsBlinks(t *testing.T) {
	act := actuator.NewMockDigital()
	b := newTestBlinker(act)

	for i := 0; i < 5000; i++ {
		b.Tick()
	}
	if b.Blinks() == 0 {
		t.Error("no blinks counted over 5000 ticks")
	}

	// States alternate strictly: closed, open, closed, open...
	states := act.States()
	for i := 1; i < len(states); i++ {
		if states[i] == states[i-1] {
			t.Fatalf("LED state repeated at toggle %d", i)
		}
	}
}

func TestConfig_ValidateBounds(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	bad := DefaultConfig()
	bad.ClosedMaxTicks = bad.ClosedMinTicks - 1
	if err := bad.Validate(); err == nil {
		t.Error("inverted closed bounds accepted")
	}

	bad = DefaultConfig()
	bad.TickInterval = 0
	if err := bad.Validate(); err == nil {
		t.Error("zero tick interval accepted")
	}
}
