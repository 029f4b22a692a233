// Package animation drives the figure's joints from elapsed frame time:
// ping-pong oscillators for the limbs and body, and the rod pendulum.
package animation

import "github.com/chewxy/math32"

// Oscillator is a triangle-wave phase accumulator. Time counts elapsed
// milliseconds since the last direction change; once it passes Period the
// period is subtracted and Direction flips.
type Oscillator struct {
	Time      float32
	Direction float32
	Speed     float32 // degrees per millisecond
	Period    float32 // milliseconds
}

// NewOscillator returns an oscillator at the configured phase.
func NewOscillator(c OscillatorConfig) Oscillator {
	return Oscillator{
		Time:      c.Phase,
		Direction: c.Direction,
		Speed:     c.Speed,
		Period:    c.Period,
	}
}

// Step advances the oscillator by dt milliseconds and returns the angular
// delta in degrees for this step.
//
// At most one period is subtracted per step, so a dt larger than Period
// leaves Time above Period until the following step.
func (o *Oscillator) Step(dt float32) float32 {
	o.Time += dt
	if o.Time > o.Period {
		o.Time -= o.Period
		o.Direction = -o.Direction
	}
	return o.Speed * o.Direction * dt
}

// Phase returns the position within the current period, in [0, Period).
func (o Oscillator) Phase() float32 {
	if o.Period <= 0 {
		return 0
	}
	return math32.Mod(o.Time, o.Period)
}
