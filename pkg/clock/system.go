package clock

import "time"

// SystemSource reads the host clock. On a deployed device the OS clock is
// backed by the battery RTC, so this is the production source.
type SystemSource struct{}

// NewSystemSource creates a clock source backed by the host clock.
func NewSystemSource() *SystemSource {
	return &SystemSource{}
}

// Now returns the current local time of day.
func (s *SystemSource) Now() (TimeOfDay, error) {
	now := time.Now()
	return TimeOfDay{Hour: now.Hour(), Minute: now.Minute()}, nil
}
