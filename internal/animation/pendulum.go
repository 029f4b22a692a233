package animation

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/figurine/internal/scene"
	"github.com/Faultbox/figurine/pkg/math"
)

// Pendulum converts changes of the rod tilt into a rod rotation and a
// swing of the follower parts along the arc.
type Pendulum struct {
	PendulumConfig

	// Last is the tilt applied by the previous swing.
	Last float32
}

// Swing moves the rod and followers from Last to tilt.
func (p *Pendulum) Swing(s *scene.State, tilt float32) {
	if tilt == p.Last {
		return
	}
	s.ApplyRotation(p.Rod, p.TiltScale*(tilt-p.Last), math.Vec3{X: 1})

	dy, dz := p.Offset(p.Last, tilt)
	for _, id := range p.Followers {
		s.TranslateWorld(id, 0, dy, dz)
	}
	p.Last = tilt
}

// Offset returns the vertical and depth movement of a follower when the
// tilt goes from prev to next.
func (p *Pendulum) Offset(prev, next float32) (dy, dz float32) {
	a := math.Radians(90 - p.TiltScale*next)
	b := math.Radians(90 - p.TiltScale*prev)
	dy = (math32.Sin(a) - math32.Sin(b)) * p.YScale
	dz = (math32.Cos(a) - math32.Cos(b)) * p.ZScale
	return dy, dz
}
