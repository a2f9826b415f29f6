// Package input filters the raw button signal into clean activation edges.
package input

import (
	"bufio"
	"io"
	"sync"
	"time"
)

// Button exposes the raw, bouncy level of the announce button: true while
// physically held. The debouncer turns this into edges.
type Button interface {
	Pressed() bool
}

// ButtonFunc adapts a function to the Button interface.
type ButtonFunc func() bool

// Pressed calls f.
func (f ButtonFunc) Pressed() bool { return f() }

// LineButton treats each line read from r as a button press held for a
// short pulse. It lets a development host stand in for the hardware button:
// wire it to os.Stdin and hit Enter to announce.
type LineButton struct {
	pulse time.Duration

	mu       sync.Mutex
	heldHigh time.Time
}

// NewLineButton starts reading lines from r. Each line holds the logical
// button down for the given pulse (use a pulse comfortably above the
// debounce settle time).
func NewLineButton(r io.Reader, pulse time.Duration) *LineButton {
	b := &LineButton{pulse: pulse}
	go b.readLoop(r)
	return b
}

func (b *LineButton) readLoop(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		b.mu.Lock()
		b.heldHigh = time.Now().Add(b.pulse)
		b.mu.Unlock()
	}
}

// Pressed reports whether a press pulse is active.
func (b *LineButton) Pressed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return time.Now().Before(b.heldHigh)
}
