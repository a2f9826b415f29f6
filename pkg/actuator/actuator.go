// Package actuator abstracts the LED outputs.
//
// Writes are idempotent and expose no failure mode to the announcement core:
// a dropped LED update is cosmetic, an interrupted announcement is not.
// Backends log their own trouble.
package actuator

// Brightness drives a PWM-dimmable LED, 0 (off) to 255 (full).
type Brightness interface {
	SetBrightness(level uint8)
}

// Digital drives a simple on/off LED.
type Digital interface {
	SetDigital(on bool)
}

// BrightnessFunc adapts a function to the Brightness interface.
type BrightnessFunc func(level uint8)

// SetBrightness calls f.
func (f BrightnessFunc) SetBrightness(level uint8) { f(level) }

// DigitalFunc adapts a function to the Digital interface.
type DigitalFunc func(on bool)

// SetDigital calls f.
func (f DigitalFunc) SetDigital(on bool) { f(on) }
