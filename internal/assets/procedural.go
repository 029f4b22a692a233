package assets

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/figurine/internal/engine/model"
	"github.com/Faultbox/figurine/pkg/math"
)

// Procedural generates stand-in meshes for every part of the figure. Sizes
// are chosen so the scene scale factors give the figure its usual
// proportions: body, arm and foot are tiny because they are scaled by 30
// to 50, the rod and bob are near unit size.
type Procedural struct {
	// Slices and Stacks control the tessellation of curved meshes.
	Slices int
	Stacks int
}

// NewProcedural returns a procedural source with a moderate tessellation.
func NewProcedural() *Procedural {
	return &Procedural{Slices: 24, Stacks: 16}
}

// Mesh implements Source.
func (p *Procedural) Mesh(name string) (*model.Part, error) {
	var part *model.Part
	switch name {
	case "body":
		part = p.ellipsoid(name, math.V3(0.01, 0.008, 0.014))
	case "arm":
		part = p.ellipsoid(name, math.V3(0.016, 0.003, 0.006))
	case "foot":
		part = p.ellipsoid(name, math.V3(0.004, 0.0015, 0.006))
	case "bob":
		part = p.ellipsoid(name, math.V3(1, 1, 1))
	case "rod":
		part = p.cylinder(name, 0.02, 1)
	case "nose":
		part = model.Nose()
	case "cube":
		part = model.Cube()
	default:
		return nil, fmt.Errorf("%w: %s (procedural)", ErrMeshNotFound, name)
	}
	return part, nil
}

// ellipsoid builds a UV ellipsoid wound counter-clockwise seen from
// outside. Pole triangles that collapse to a line are left out.
func (p *Procedural) ellipsoid(name string, radii math.Vec3) *model.Part {
	slices, stacks := max(p.Slices, 3), max(p.Stacks, 2)

	at := func(i, j int) math.Vec3 {
		phi := math32.Pi * float32(i) / float32(stacks)
		theta := 2 * math32.Pi * float32(j%slices) / float32(slices)
		sp, cp := math32.Sincos(phi)
		st, ct := math32.Sincos(theta)
		if i == 0 || i == stacks {
			sp = 0
		}
		return math.Vec3{X: radii.X * sp * ct, Y: radii.Y * cp, Z: radii.Z * sp * st}
	}

	var positions []math.Vec3
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a, b := at(i, j), at(i+1, j)
			c, d := at(i+1, j+1), at(i, j+1)
			if i > 0 {
				positions = append(positions, a, d, c)
			}
			if i < stacks-1 {
				positions = append(positions, a, c, b)
			}
		}
	}

	return &model.Part{
		Name:      name,
		Primitive: model.Triangles,
		Positions: positions,
		TexCoords: make([]math.Vec2, len(positions)),
	}
}

// cylinder builds the open side of a Y-aligned cylinder centred on the
// origin, with radial normals and texture coordinates wrapping once around.
func (p *Procedural) cylinder(name string, radius, height float32) *model.Part {
	slices := max(p.Slices, 3)
	part := &model.Part{Name: name, Primitive: model.Triangles}

	y0, y1 := -height/2, height/2
	for j := 0; j < slices; j++ {
		u0 := float32(j) / float32(slices)
		u1 := float32(j+1) / float32(slices)
		s0, c0 := math32.Sincos(2 * math32.Pi * u0)
		s1, c1 := math32.Sincos(2 * math32.Pi * u1)
		n0 := math.Vec3{X: c0, Z: s0}
		n1 := math.Vec3{X: c1, Z: s1}

		a := math.Vec3{X: radius * c0, Y: y0, Z: radius * s0}
		b := math.Vec3{X: radius * c1, Y: y0, Z: radius * s1}
		c := math.Vec3{X: radius * c1, Y: y1, Z: radius * s1}
		d := math.Vec3{X: radius * c0, Y: y1, Z: radius * s0}

		part.Positions = append(part.Positions, a, d, b, b, d, c)
		part.Normals = append(part.Normals, n0, n0, n1, n1, n0, n1)
		part.TexCoords = append(part.TexCoords,
			math.Vec2{X: u0, Y: 1}, math.Vec2{X: u0, Y: 0}, math.Vec2{X: u1, Y: 1},
			math.Vec2{X: u1, Y: 1}, math.Vec2{X: u0, Y: 0}, math.Vec2{X: u1, Y: 0},
		)
	}
	return part
}
