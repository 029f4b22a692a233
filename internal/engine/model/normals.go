package model

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/figurine/pkg/math"
)

// BlendWeight is the share of the vertex position mixed into blended normals.
const BlendWeight float32 = 0.1

// Positions closer than this share a smoothing bucket.
const smoothPrecision = 1e6

var (
	// ErrNotTriangleList is returned when a vertex count is not a multiple of 3.
	ErrNotTriangleList = errors.New("vertex count is not a multiple of 3")
	// ErrIncompleteTriangle marks a trailing triangle with missing vertices.
	ErrIncompleteTriangle = errors.New("incomplete triangle")
	// ErrNonFinite marks a triangle with a NaN or infinite coordinate.
	ErrNonFinite = errors.New("non-finite vertex coordinate")
)

// PartialNormalsError reports that blended normal generation stopped early.
// Normals for vertices at and after Processed are left as zero vectors.
type PartialNormalsError struct {
	Triangle  int
	Processed int
	Err       error
}

func (e *PartialNormalsError) Error() string {
	return fmt.Sprintf("normals stopped at triangle %d (%d vertices processed): %v", e.Triangle, e.Processed, e.Err)
}

func (e *PartialNormalsError) Unwrap() error {
	return e.Err
}

// Centroid returns the unweighted average of the positions.
func Centroid(positions []math.Vec3) math.Vec3 {
	if len(positions) == 0 {
		return math.Vec3{}
	}
	var sum math.Vec3
	for _, p := range positions {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float32(len(positions)))
}

// FaceNormal returns the unit normal of triangle (a, b, c) with
// counter-clockwise winding, or zero for a degenerate triangle.
func FaceNormal(a, b, c math.Vec3) math.Vec3 {
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

type bucketKey [3]int64

func keyOf(v math.Vec3) bucketKey {
	return bucketKey{
		int64(math32.Round(v.X * smoothPrecision)),
		int64(math32.Round(v.Y * smoothPrecision)),
		int64(math32.Round(v.Z * smoothPrecision)),
	}
}

// SmoothNormals computes one normal per vertex of a triangle list.
//
// Face normals are summed over every vertex sharing a position (rounded to
// six decimals) and normalized. Each shared normal is then flipped if it
// points towards the mesh centroid, so a closed mesh gets outward normals.
// All vertices of a bucket receive the same normal.
func SmoothNormals(positions []math.Vec3) ([]math.Vec3, error) {
	if len(positions)%3 != 0 {
		return nil, fmt.Errorf("smooth normals: %w (%d vertices)", ErrNotTriangleList, len(positions))
	}

	normals := make([]math.Vec3, len(positions))
	if len(positions) == 0 {
		return normals, nil
	}
	center := Centroid(positions)

	index := make(map[bucketKey]int)
	var buckets [][]int

	for i := 0; i < len(positions); i += 3 {
		face := FaceNormal(positions[i], positions[i+1], positions[i+2])
		for k := i; k < i+3; k++ {
			normals[k] = face

			key := keyOf(positions[k])
			b, ok := index[key]
			if !ok {
				b = len(buckets)
				index[key] = b
				buckets = append(buckets, nil)
			}
			buckets[b] = append(buckets[b], k)
		}
	}

	for _, members := range buckets {
		var sum math.Vec3
		for _, idx := range members {
			sum = sum.Add(normals[idx])
		}
		avg := sum.Normalize()

		if avg.Dot(positions[members[0]].Sub(center)) < 0 {
			avg = avg.Negate()
		}
		for _, idx := range members {
			normals[idx] = avg
		}
	}

	return normals, nil
}

// BlendedNormals computes per-triangle normals bent towards each vertex
// position with BlendWeight. See BlendedNormalsWeighted.
func BlendedNormals(positions []math.Vec3) ([]math.Vec3, error) {
	return BlendedNormalsWeighted(positions, BlendWeight)
}

// BlendedNormalsWeighted computes the raw normal of each triangle (wound
// clockwise) and mixes it per vertex as (n - v)*w + n*(1-w). Every result is
// normalized on its own; no smoothing across triangles takes place.
//
// The first bad triangle stops generation for the rest of the mesh. The full
// length slice is still returned, with zero normals from that triangle on,
// together with a *PartialNormalsError.
func BlendedNormalsWeighted(positions []math.Vec3, weight float32) ([]math.Vec3, error) {
	normals := make([]math.Vec3, len(positions))

	var err error
	for i := 0; i < len(positions); i += 3 {
		if i+2 >= len(positions) {
			err = &PartialNormalsError{Triangle: i / 3, Processed: i, Err: ErrIncompleteTriangle}
			break
		}
		v1, v2, v3 := positions[i], positions[i+1], positions[i+2]
		if !v1.IsFinite() || !v2.IsFinite() || !v3.IsFinite() {
			err = &PartialNormalsError{Triangle: i / 3, Processed: i, Err: ErrNonFinite}
			break
		}

		n := v3.Sub(v1).Cross(v2.Sub(v1)).Normalize()
		for k, v := range [3]math.Vec3{v1, v2, v3} {
			normals[i+k] = n.Sub(v).Scale(weight).Add(n.Scale(1 - weight))
		}
	}

	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	return normals, err
}

// Invert flips every normal in place.
func Invert(normals []math.Vec3) {
	for i := range normals {
		normals[i] = normals[i].Negate()
	}
}
