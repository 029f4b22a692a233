package animation

import (
	"go.uber.org/zap"

	"github.com/Faultbox/figurine/internal/scene"
)

// Driver owns the oscillators and the pendulum and applies their deltas to
// a scene.State each tick.
type Driver struct {
	cfg         Config
	oscillators []Oscillator
	deltas      []float32
	pendulum    Pendulum
	log         *zap.Logger
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger used for setup diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(d *Driver) {
		d.log = log
	}
}

// NewDriver validates cfg and builds a driver with every oscillator at its
// configured phase and the pendulum at rest (tilt 0).
func NewDriver(cfg Config, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := &Driver{
		cfg:         cfg,
		oscillators: make([]Oscillator, len(cfg.Oscillators)),
		deltas:      make([]float32, len(cfg.Oscillators)),
		pendulum:    Pendulum{PendulumConfig: cfg.Pendulum},
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	for i, c := range cfg.Oscillators {
		d.oscillators[i] = NewOscillator(c)
		d.log.Debug("oscillator ready",
			zap.String("name", c.Name),
			zap.Float32("speed", c.Speed),
			zap.Float32("period", c.Period),
			zap.Int("targets", len(c.Targets)))
	}
	return d, nil
}

// Settle swings the pendulum to tilt without advancing any oscillator.
// Call it once on a fresh state so the first frame already shows the rod
// at its initial tilt.
func (d *Driver) Settle(s *scene.State, tilt float32) {
	d.pendulum.Swing(s, tilt)
	d.log.Debug("pendulum settled", zap.Float32("tilt", tilt))
}

// Tick advances every oscillator by dt milliseconds in config order,
// applies each delta to its targets, then swings the pendulum to tilt.
func (d *Driver) Tick(s *scene.State, dt, tilt float32) {
	for i := range d.oscillators {
		delta := d.oscillators[i].Step(dt)
		d.deltas[i] = delta
		if delta == 0 {
			continue
		}
		for _, t := range d.cfg.Oscillators[i].Targets {
			s.ApplyRotation(t.Part, t.Sign*delta, t.Axis)
		}
	}
	d.pendulum.Swing(s, tilt)
}

// Oscillator returns a copy of the named oscillator.
func (d *Driver) Oscillator(name string) (Oscillator, bool) {
	for i, c := range d.cfg.Oscillators {
		if c.Name == name {
			return d.oscillators[i], true
		}
	}
	return Oscillator{}, false
}

// Delta returns the delta the named oscillator produced on the last tick.
func (d *Driver) Delta(name string) float32 {
	for i, c := range d.cfg.Oscillators {
		if c.Name == name {
			return d.deltas[i]
		}
	}
	return 0
}

// Tilt returns the tilt the pendulum currently shows.
func (d *Driver) Tilt() float32 {
	return d.pendulum.Last
}
