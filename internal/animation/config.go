package animation

import (
	"errors"
	"fmt"

	"github.com/Faultbox/figurine/internal/scene"
	"github.com/Faultbox/figurine/pkg/math"
)

// Target receives an oscillator's delta as a rotation about Axis,
// multiplied by Sign.
type Target struct {
	Part scene.PartID
	Axis math.Vec3
	Sign float32
}

// OscillatorConfig describes one oscillator and the parts it turns.
type OscillatorConfig struct {
	Name      string
	Speed     float32 // degrees per millisecond
	Period    float32 // milliseconds
	Phase     float32 // initial Time, milliseconds
	Direction float32 // +1 or -1
	Targets   []Target
}

// PendulumConfig describes how the rod tilt moves the rod and the parts
// hanging from it.
type PendulumConfig struct {
	Rod       scene.PartID
	Followers []scene.PartID

	// TiltScale turns tilt units into rod degrees and pendulum angle.
	TiltScale float32
	YScale    float32
	ZScale    float32
}

// Config is the full animation setup. Oscillators are stepped in order.
type Config struct {
	Oscillators []OscillatorConfig
	Pendulum    PendulumConfig
}

var (
	errPeriod    = errors.New("period must be positive")
	errDirection = errors.New("direction must be +1 or -1")
	errAxis      = errors.New("axis must be non-zero")
)

// Validate checks every oscillator and target.
func (c Config) Validate() error {
	for _, o := range c.Oscillators {
		if o.Period <= 0 {
			return fmt.Errorf("oscillator %s: %w", o.Name, errPeriod)
		}
		if o.Direction != 1 && o.Direction != -1 {
			return fmt.Errorf("oscillator %s: %w", o.Name, errDirection)
		}
		for _, t := range o.Targets {
			if !t.Part.Valid() {
				return fmt.Errorf("oscillator %s: invalid target %s", o.Name, t.Part)
			}
			if t.Axis.IsZero() {
				return fmt.Errorf("oscillator %s: target %s: %w", o.Name, t.Part, errAxis)
			}
		}
	}
	if !c.Pendulum.Rod.Valid() {
		return fmt.Errorf("pendulum: invalid rod %s", c.Pendulum.Rod)
	}
	for _, f := range c.Pendulum.Followers {
		if !f.Valid() {
			return fmt.Errorf("pendulum: invalid follower %s", f)
		}
	}
	return nil
}

// DefaultConfig returns the arm, body, rod and feet oscillators and the
// rod pendulum.
func DefaultConfig() Config {
	var (
		axisX    = math.Vec3{X: 1}
		axisY    = math.Vec3{Y: 1}
		diagonal = math.Vec3{X: 1, Y: 1, Z: 1}
	)

	body := []Target{
		{Part: scene.Body, Axis: axisY, Sign: -1},
		{Part: scene.Arm, Axis: axisY, Sign: -1},
	}
	for id := scene.FootLeft; id < scene.PartCount; id++ {
		body = append(body, Target{Part: id, Axis: diagonal, Sign: -1})
	}

	return Config{
		Oscillators: []OscillatorConfig{
			{
				Name: "arms", Speed: 0.025, Period: 200, Direction: 1,
				Targets: []Target{{Part: scene.Arm, Axis: axisY, Sign: -1}},
			},
			{
				Name: "body", Speed: 0.01, Period: 600, Phase: 200, Direction: 1,
				Targets: body,
			},
			{
				// The rod sways through the pendulum, not this oscillator.
				Name: "rod", Speed: 0.05, Period: 300, Phase: 150, Direction: -1,
			},
			{
				Name: "feet", Speed: 0.025, Period: 200, Direction: 1,
				Targets: []Target{
					{Part: scene.FootLeft, Axis: axisX, Sign: -1},
					{Part: scene.FootRight, Axis: axisX, Sign: -1},
				},
			},
		},
		Pendulum: PendulumConfig{
			Rod:       scene.Rod,
			Followers: []scene.PartID{scene.Line, scene.Bob},
			TiltScale: 10,
			YScale:    0.9,
			ZScale:    0.5,
		},
	}
}
