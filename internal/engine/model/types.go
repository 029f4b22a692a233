// Package model builds the mesh parts of the figure: vertex normals, the
// ground grid, built-in primitives and the packed vertex buffer.
package model

import (
	"fmt"

	"github.com/Faultbox/figurine/pkg/math"
)

// Primitive is the draw topology of a part.
type Primitive int

const (
	Triangles Primitive = iota
	Lines
)

func (p Primitive) String() string {
	if p == Lines {
		return "lines"
	}
	return "triangles"
}

// NormalMode selects how a part gets its normals at load time.
type NormalMode int

const (
	// NormalsSmooth averages face normals at coincident positions.
	NormalsSmooth NormalMode = iota
	// NormalsBlended perturbs per-triangle normals by vertex position.
	NormalsBlended
	// NormalsProvided keeps normals supplied by the asset source.
	NormalsProvided
)

// ParseNormalMode converts a config string into a NormalMode.
func ParseNormalMode(s string) (NormalMode, error) {
	switch s {
	case "", "smooth":
		return NormalsSmooth, nil
	case "blended":
		return NormalsBlended, nil
	case "provided":
		return NormalsProvided, nil
	default:
		return NormalsSmooth, fmt.Errorf("unknown normal mode %q", s)
	}
}

func (m NormalMode) String() string {
	switch m {
	case NormalsBlended:
		return "blended"
	case NormalsProvided:
		return "provided"
	default:
		return "smooth"
	}
}

// Part is an immutable mesh segment: a flat vertex list with one normal and
// one texture coordinate per vertex.
type Part struct {
	Name      string
	Primitive Primitive
	Positions []math.Vec3
	Normals   []math.Vec3
	TexCoords []math.Vec2
}

// VertexCount returns the number of vertices in the part.
func (p *Part) VertexCount() int {
	return len(p.Positions)
}

// Validate checks that the attribute slices line up with the positions.
func (p *Part) Validate() error {
	n := len(p.Positions)
	if p.Primitive == Triangles && n%3 != 0 {
		return fmt.Errorf("part %s: %w (%d vertices)", p.Name, ErrNotTriangleList, n)
	}
	if p.Primitive == Lines && n%2 != 0 {
		return fmt.Errorf("part %s: line list has odd vertex count %d", p.Name, n)
	}
	if len(p.Normals) != n {
		return fmt.Errorf("part %s: %d normals for %d vertices", p.Name, len(p.Normals), n)
	}
	if len(p.TexCoords) != n {
		return fmt.Errorf("part %s: %d texcoords for %d vertices", p.Name, len(p.TexCoords), n)
	}
	return nil
}

// Bounds holds the axis-aligned bounding box of a part.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Bounds computes the bounding box of the part positions.
func (p *Part) Bounds() Bounds {
	if len(p.Positions) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: p.Positions[0], Max: p.Positions[0]}
	for _, v := range p.Positions[1:] {
		b.Min = math.Vec3{X: min(b.Min.X, v.X), Y: min(b.Min.Y, v.Y), Z: min(b.Min.Z, v.Z)}
		b.Max = math.Vec3{X: max(b.Max.X, v.X), Y: max(b.Max.Y, v.Y), Z: max(b.Max.Z, v.Z)}
	}
	return b
}

// FromFloats groups a flat x,y,z list into vectors.
func FromFloats(flat []float32) []math.Vec3 {
	out := make([]math.Vec3, len(flat)/3)
	for i := range out {
		out[i] = math.Vec3{X: flat[i*3], Y: flat[i*3+1], Z: flat[i*3+2]}
	}
	return out
}

// Clone returns a deep copy of the part.
func (p *Part) Clone() *Part {
	return &Part{
		Name:      p.Name,
		Primitive: p.Primitive,
		Positions: append([]math.Vec3(nil), p.Positions...),
		Normals:   append([]math.Vec3(nil), p.Normals...),
		TexCoords: append([]math.Vec2(nil), p.TexCoords...),
	}
}
