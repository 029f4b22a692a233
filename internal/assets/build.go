package assets

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/figurine/internal/engine/model"
	"github.com/Faultbox/figurine/pkg/math"
)

// MeshSpec names a mesh to load and how its normals are produced.
type MeshSpec struct {
	Name    string
	Normals model.NormalMode
	Invert  bool
}

// DefaultSpecs returns the figure meshes in buffer order. The arm and feet
// carry inverted normals; the rod keeps the normals its source provides.
func DefaultSpecs() []MeshSpec {
	return []MeshSpec{
		{Name: "body", Normals: model.NormalsSmooth},
		{Name: "arm", Normals: model.NormalsSmooth, Invert: true},
		{Name: "foot", Normals: model.NormalsBlended, Invert: true},
		{Name: "rod", Normals: model.NormalsProvided},
		{Name: "nose", Normals: model.NormalsSmooth},
		{Name: "cube", Normals: model.NormalsSmooth},
		{Name: "bob", Normals: model.NormalsSmooth},
	}
}

// GridSpec describes the ground grid.
type GridSpec struct {
	RowSpacing    float32
	ColumnSpacing float32
	Color         math.Vec3
}

// Build loads every mesh in specs from src, computes its normals and packs
// the grid and the meshes into one buffer, grid first.
//
// A grid spacing below 1 is logged and leaves the grid empty. Blended
// normals that stop early are logged and the partial normals are kept;
// a trailing incomplete triangle is dropped so the part still packs.
func Build(src Source, grid GridSpec, specs []MeshSpec, log *zap.Logger) (model.Buffer, error) {
	if log == nil {
		log = zap.NewNop()
	}

	g, err := model.Grid(grid.RowSpacing, grid.ColumnSpacing, grid.Color)
	if err != nil {
		log.Warn("grid disabled",
			zap.Float32("row_spacing", grid.RowSpacing),
			zap.Float32("column_spacing", grid.ColumnSpacing),
			zap.Error(err))
	}
	parts := []*model.Part{g}

	for _, spec := range specs {
		part, err := src.Mesh(spec.Name)
		if err != nil {
			return model.Buffer{}, err
		}
		part.Name = spec.Name
		if len(part.TexCoords) != len(part.Positions) {
			part.TexCoords = make([]math.Vec2, len(part.Positions))
		}

		err = part.ComputeNormals(spec.Normals, spec.Invert)
		var partial *model.PartialNormalsError
		switch {
		case errors.As(err, &partial):
			log.Warn("normals incomplete",
				zap.String("mesh", spec.Name),
				zap.Int("triangle", partial.Triangle),
				zap.Int("processed", partial.Processed),
				zap.Error(partial.Err))
			truncate(part)
		case err != nil:
			return model.Buffer{}, fmt.Errorf("mesh %s: %w", spec.Name, err)
		}

		log.Debug("mesh loaded",
			zap.String("mesh", spec.Name),
			zap.Int("vertices", part.VertexCount()),
			zap.Stringer("normals", spec.Normals),
			zap.Bool("inverted", spec.Invert))
		parts = append(parts, part)
	}

	return model.Pack(parts...)
}

// truncate drops trailing vertices that do not form a whole triangle.
func truncate(p *model.Part) {
	n := len(p.Positions) / 3 * 3
	if n == len(p.Positions) {
		return
	}
	p.Positions = p.Positions[:n]
	p.Normals = p.Normals[:n]
	p.TexCoords = p.TexCoords[:n]
}
