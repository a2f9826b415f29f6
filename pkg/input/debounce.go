package input

import "time"

// DefaultSettle is how long the raw signal must be released before the
// next press counts. 15 ms rides out the contact bounce of the reference
// switch.
const DefaultSettle = 15 * time.Millisecond

// Debouncer turns the raw button level into a single activation edge per
// physical press.
//
// The debounce is level-triggered, not hardware-latched: while the signal
// is low the stable-after deadline keeps re-arming, and the first high poll
// past that deadline fires exactly once. A held button cannot re-trigger
// until it is released long enough to re-arm.
//
// Not safe for concurrent use; one poll loop owns it.
type Debouncer struct {
	settle   time.Duration
	stableAt time.Time
	latched  bool
}

// NewDebouncer creates a debouncer. A non-positive settle falls back to
// DefaultSettle.
func NewDebouncer(settle time.Duration) *Debouncer {
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &Debouncer{settle: settle}
}

// Poll feeds one sample of the raw level at the given instant and reports
// whether this sample is the activation edge.
func (d *Debouncer) Poll(rawPressed bool, now time.Time) bool {
	if !rawPressed {
		// Keep arming while low; a bounce back to high within the
		// settle window will not fire.
		d.stableAt = now.Add(d.settle)
		d.latched = false
		return false
	}
	if d.latched || now.Before(d.stableAt) {
		return false
	}
	d.latched = true
	return true
}
