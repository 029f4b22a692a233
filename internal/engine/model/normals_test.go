package model

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/figurine/pkg/math"
)

const eps = 1e-5

func requireUnitOrZero(t *testing.T, normals []math.Vec3) {
	t.Helper()
	for i, n := range normals {
		if n.IsZero() {
			continue
		}
		assert.InDelta(t, 1, n.Length(), eps, "normal %d = %v", i, n)
	}
}

func TestSmoothNormalsCube(t *testing.T) {
	cube := Cube()
	normals, err := SmoothNormals(cube.Positions)
	require.NoError(t, err)
	require.Len(t, normals, len(cube.Positions))

	requireUnitOrZero(t, normals)

	// The (1,1,1) corner is shared by two triangles on each of its three
	// faces, so it averages to the exact diagonal.
	assert.InDelta(t, 0, normals[0].Distance(math.Vec3{X: 1, Y: 1, Z: 1}.Normalize()), 1e-4)

	for i, v := range cube.Positions {
		assert.Greater(t, normals[i].Dot(v), float32(0), "vertex %d at %v", i, v)
	}
}

func TestSmoothNormalsCoincidentVerticesShareNormal(t *testing.T) {
	parts := []*Part{Cube(), Nose()}
	for _, p := range parts {
		t.Run(p.Name, func(t *testing.T) {
			normals, err := SmoothNormals(p.Positions)
			require.NoError(t, err)

			seen := make(map[bucketKey]math.Vec3)
			for i, v := range p.Positions {
				key := keyOf(v)
				if prev, ok := seen[key]; ok {
					assert.Equal(t, prev, normals[i], "vertex %d at %v", i, v)
					continue
				}
				seen[key] = normals[i]
			}
		})
	}
}

func TestSmoothNormalsRoundedPositionsShareBucket(t *testing.T) {
	// Two triangles meeting at a vertex whose coordinates differ below
	// the sixth decimal.
	positions := []math.Vec3{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0.0000001, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 0},
	}
	normals, err := SmoothNormals(positions)
	require.NoError(t, err)
	assert.Equal(t, normals[0], normals[3])
	assert.Equal(t, normals[2], normals[5])
}

func TestBucketKeyRoundsToSixDecimals(t *testing.T) {
	assert.Equal(t, keyOf(math.V3(0.4999996, -2, 1)), keyOf(math.V3(0.5000004, -2, 1)))
	assert.Equal(t, bucketKey{500000, -2000000, 1000000}, keyOf(math.V3(0.5, -2, 1)))
	assert.NotEqual(t, keyOf(math.V3(0.5, 0, 0)), keyOf(math.V3(0.500002, 0, 0)))
}

func TestSmoothNormalsFaceOutward(t *testing.T) {
	positions := irregularMesh()
	normals, err := SmoothNormals(positions)
	require.NoError(t, err)

	center := Centroid(positions)
	for i, v := range positions {
		assert.GreaterOrEqual(t, normals[i].Dot(v.Sub(center)), float32(0), "vertex %d", i)
	}
}

func TestSmoothNormalsFlipsInwardWinding(t *testing.T) {
	// Reverse the winding of every cube triangle: faces point inward, yet the
	// centroid test must still give outward normals.
	cube := Cube().Positions
	reversed := make([]math.Vec3, len(cube))
	for i := 0; i < len(cube); i += 3 {
		reversed[i], reversed[i+1], reversed[i+2] = cube[i], cube[i+2], cube[i+1]
	}

	normals, err := SmoothNormals(reversed)
	require.NoError(t, err)
	for i, v := range reversed {
		assert.Greater(t, normals[i].Dot(v), float32(0), "vertex %d", i)
	}
}

func TestSmoothNormalsDegenerateTriangle(t *testing.T) {
	positions := []math.Vec3{{X: 0}, {X: 1}, {X: 2}}
	normals, err := SmoothNormals(positions)
	require.NoError(t, err)
	for _, n := range normals {
		assert.True(t, n.IsZero(), "collinear triangle should give zero normal, got %v", n)
	}
}

func TestSmoothNormalsNotTriangleList(t *testing.T) {
	_, err := SmoothNormals(make([]math.Vec3, 4))
	assert.ErrorIs(t, err, ErrNotTriangleList)
}

func TestSmoothNormalsEmpty(t *testing.T) {
	normals, err := SmoothNormals(nil)
	require.NoError(t, err)
	assert.Empty(t, normals)
}

func TestSmoothNormalsIsStateless(t *testing.T) {
	first, err := SmoothNormals(Nose().Positions)
	require.NoError(t, err)
	_, err = SmoothNormals(Cube().Positions)
	require.NoError(t, err)
	second, err := SmoothNormals(Nose().Positions)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBlendedNormalsSingleTriangle(t *testing.T) {
	positions := []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}
	normals, err := BlendedNormals(positions)
	require.NoError(t, err)
	require.Len(t, normals, 3)

	// The raw normal is cross(v3-v1, v2-v1) = -Z.
	assert.InDelta(t, 0, normals[0].Distance(math.Vec3{Z: -1}), eps)
	assert.InDelta(t, 0, normals[1].Distance(math.Vec3{X: -0.1, Z: -1}.Normalize()), eps)
	assert.InDelta(t, 0, normals[2].Distance(math.Vec3{Y: -0.1, Z: -1}.Normalize()), eps)
}

func TestBlendedNormalsNoSmoothing(t *testing.T) {
	normals, err := BlendedNormals(Cube().Positions)
	require.NoError(t, err)
	requireUnitOrZero(t, normals)

	// Vertex 0 and vertex 12 are both the (1,1,1) corner but sit on
	// different faces, so their normals differ.
	assert.NotEqual(t, normals[0], normals[12])
}

func TestBlendedNormalsStopsOnIncompleteTriangle(t *testing.T) {
	positions := append(Nose().Positions[:6:6], math.Vec3{X: 3, Y: 3, Z: 3})
	normals, err := BlendedNormals(positions)

	require.Len(t, normals, 7)
	var partial *PartialNormalsError
	require.True(t, errors.As(err, &partial))
	assert.Equal(t, 2, partial.Triangle)
	assert.Equal(t, 6, partial.Processed)
	assert.ErrorIs(t, err, ErrIncompleteTriangle)

	for i := 0; i < 6; i++ {
		assert.InDelta(t, 1, normals[i].Length(), eps)
	}
	assert.True(t, normals[6].IsZero())
}

func TestBlendedNormalsStopsOnNonFinite(t *testing.T) {
	positions := Cube().Positions
	positions[4] = math.Vec3{X: float32(gomath.NaN())}

	normals, err := BlendedNormals(positions)
	require.Len(t, normals, len(positions))
	assert.ErrorIs(t, err, ErrNonFinite)

	for i := range normals {
		if i < 3 {
			assert.False(t, normals[i].IsZero(), "vertex %d", i)
		} else {
			assert.True(t, normals[i].IsZero(), "vertex %d", i)
		}
	}
}

func TestComputeNormalsModes(t *testing.T) {
	t.Run("smooth inverted", func(t *testing.T) {
		p := Cube()
		require.NoError(t, p.ComputeNormals(NormalsSmooth, true))
		assert.Less(t, p.Normals[0].Dot(p.Positions[0]), float32(0))
	})

	t.Run("provided missing", func(t *testing.T) {
		p := Cube()
		assert.Error(t, p.ComputeNormals(NormalsProvided, false))
	})

	t.Run("provided kept", func(t *testing.T) {
		p := Nose()
		p.Normals = make([]math.Vec3, p.VertexCount())
		for i := range p.Normals {
			p.Normals[i] = math.Vec3{Y: 1}
		}
		require.NoError(t, p.ComputeNormals(NormalsProvided, false))
		assert.Equal(t, math.Vec3{Y: 1}, p.Normals[5])
	})

	t.Run("blended partial keeps buffer", func(t *testing.T) {
		p := &Part{Name: "foot", Positions: make([]math.Vec3, 4), TexCoords: make([]math.Vec2, 4)}
		p.Positions[0] = math.Vec3{X: 1}
		p.Positions[1] = math.Vec3{Y: 1}
		err := p.ComputeNormals(NormalsBlended, false)
		assert.ErrorIs(t, err, ErrIncompleteTriangle)
		assert.Len(t, p.Normals, 4)
	})
}

// irregularMesh is a lumpy closed octahedron.
func irregularMesh() []math.Vec3 {
	top := math.Vec3{X: 0.1, Y: 1.3, Z: -0.2}
	bottom := math.Vec3{X: -0.2, Y: -0.9, Z: 0.1}
	ring := []math.Vec3{
		{X: 1.2, Y: 0.1, Z: 0},
		{X: 0, Y: -0.1, Z: 0.8},
		{X: -1.1, Y: 0.2, Z: 0},
		{X: 0, Y: 0, Z: -1.4},
	}
	var out []math.Vec3
	for i := range ring {
		a, b := ring[i], ring[(i+1)%len(ring)]
		out = append(out, top, b, a, bottom, a, b)
	}
	return out
}
