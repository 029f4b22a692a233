package model

import (
	"errors"

	"github.com/Faultbox/figurine/pkg/math"
)

// Half extent of the ground grid along X and Z.
const (
	GridXRange = 100
	GridZRange = 100
)

// ErrGridSpacing is returned for grid spacing below 1.
var ErrGridSpacing = errors.New("grid spacing must be at least 1")

// Grid builds a line-list grid on the y=0 plane. Lines parallel to Z are
// rowSpacing apart, lines parallel to X are columnSpacing apart.
//
// The grid colour is stored in the normal channel, one entry per vertex;
// the grid shader path reads no lighting normals.
func Grid(rowSpacing, columnSpacing float32, color math.Vec3) (*Part, error) {
	part := &Part{Name: "grid", Primitive: Lines}
	if rowSpacing < 1 || columnSpacing < 1 {
		return part, ErrGridSpacing
	}

	for x := float32(-GridXRange); x < GridXRange; x += rowSpacing {
		part.Positions = append(part.Positions,
			math.Vec3{X: x, Y: 0, Z: -GridZRange},
			math.Vec3{X: x, Y: 0, Z: GridZRange},
		)
	}
	for z := float32(-GridZRange); z < GridZRange; z += columnSpacing {
		part.Positions = append(part.Positions,
			math.Vec3{X: -GridXRange, Y: 0, Z: z},
			math.Vec3{X: GridXRange, Y: 0, Z: z},
		)
	}

	part.Normals = make([]math.Vec3, len(part.Positions))
	for i := range part.Normals {
		part.Normals[i] = color
	}
	part.TexCoords = make([]math.Vec2, len(part.Positions))
	return part, nil
}
