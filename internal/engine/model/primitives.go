package model

import (
	"errors"
	"fmt"

	"github.com/Faultbox/figurine/pkg/math"
)

var cubeVertices = []float32{
	// front
	1, 1, 1, -1, 1, 1, -1, -1, 1,
	1, 1, 1, -1, -1, 1, 1, -1, 1,
	// back
	1, 1, -1, -1, -1, -1, -1, 1, -1,
	1, 1, -1, 1, -1, -1, -1, -1, -1,
	// right
	1, 1, 1, 1, -1, -1, 1, 1, -1,
	1, 1, 1, 1, -1, 1, 1, -1, -1,
	// left
	-1, 1, 1, -1, 1, -1, -1, -1, -1,
	-1, 1, 1, -1, -1, -1, -1, -1, 1,
	// top
	1, 1, 1, 1, 1, -1, -1, 1, -1,
	1, 1, 1, -1, 1, -1, -1, 1, 1,
	// bottom
	1, -1, 1, -1, -1, -1, 1, -1, -1,
	1, -1, 1, -1, -1, 1, -1, -1, -1,
}

// Four-sided pyramid with its apex on +Z.
var noseVertices = []float32{
	0, 0, 1, 1, 1, -1, -1, 1, -1,
	0, 0, 1, -1, 1, -1, -1, -1, -1,
	0, 0, 1, -1, -1, -1, 1, -1, -1,
	0, 0, 1, 1, -1, -1, 1, 1, -1,
}

// Cube returns the 36-vertex cube with half extent 1 and no normals.
func Cube() *Part {
	return untextured("cube", FromFloats(cubeVertices))
}

// Nose returns the 12-vertex pyramid used for the nose, without normals.
func Nose() *Part {
	return untextured("nose", FromFloats(noseVertices))
}

func untextured(name string, positions []math.Vec3) *Part {
	return &Part{
		Name:      name,
		Primitive: Triangles,
		Positions: positions,
		TexCoords: make([]math.Vec2, len(positions)),
	}
}

// ComputeNormals fills p.Normals according to mode and optionally inverts
// them. NormalsProvided keeps existing normals and fails when they are
// missing. A *PartialNormalsError from the blended path is returned after
// the partial normals have been stored.
func (p *Part) ComputeNormals(mode NormalMode, invert bool) error {
	var (
		normals []math.Vec3
		err     error
	)
	switch mode {
	case NormalsProvided:
		if len(p.Normals) != len(p.Positions) {
			return fmt.Errorf("part %s: provided normals: have %d, want %d", p.Name, len(p.Normals), len(p.Positions))
		}
		normals = p.Normals
	case NormalsBlended:
		normals, err = BlendedNormals(p.Positions)
		if err != nil {
			var partial *PartialNormalsError
			if !errors.As(err, &partial) {
				return fmt.Errorf("part %s: %w", p.Name, err)
			}
		}
	default:
		normals, err = SmoothNormals(p.Positions)
		if err != nil {
			return fmt.Errorf("part %s: %w", p.Name, err)
		}
	}

	if invert {
		Invert(normals)
	}
	p.Normals = normals
	if err != nil {
		return fmt.Errorf("part %s: %w", p.Name, err)
	}
	return nil
}
