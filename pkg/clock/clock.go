// Package clock provides the time-of-day capability used for announcements.
//
// The core only ever needs the current hour and minute, read once per
// activation. Hardware RTC access lives behind the Source interface so the
// announcement pipeline can be exercised without a board attached.
package clock

import "errors"

// Sentinel errors for clock conditions.
var (
	// ErrUnavailable means the clock hardware is not responding.
	// This is fatal at startup: announcing a wrong time is worse than
	// announcing nothing.
	ErrUnavailable = errors.New("clock: hardware not responding")

	// ErrNotSet means the clock is running but holds no valid time,
	// e.g. first boot after losing backup power. Recoverable: seed it
	// from a trusted fallback and retry.
	ErrNotSet = errors.New("clock: time not set")
)

// TimeOfDay is an immutable wall-clock snapshot.
type TimeOfDay struct {
	Hour   int // 0-23
	Minute int // 0-59
}

// Source supplies the current time of day.
type Source interface {
	Now() (TimeOfDay, error)
}

// Seeder is implemented by sources whose time can be set from a trusted
// fallback (e.g. the firmware build timestamp) when they report ErrNotSet.
type Seeder interface {
	Seed(TimeOfDay) error
}
