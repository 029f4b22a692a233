package assets

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/figurine/internal/engine/model"
	"github.com/Faultbox/figurine/pkg/math"
)

func TestProceduralMeshes(t *testing.T) {
	src := NewProcedural()
	for _, spec := range DefaultSpecs() {
		t.Run(spec.Name, func(t *testing.T) {
			part, err := src.Mesh(spec.Name)
			require.NoError(t, err)
			assert.Equal(t, spec.Name, part.Name)
			assert.Zero(t, part.VertexCount()%3)
			assert.Len(t, part.TexCoords, part.VertexCount())
		})
	}

	_, err := src.Mesh("tail")
	assert.ErrorIs(t, err, ErrMeshNotFound)
}

func TestProceduralWindingFacesOutward(t *testing.T) {
	src := NewProcedural()
	for _, name := range []string{"body", "bob", "rod"} {
		part, err := src.Mesh(name)
		require.NoError(t, err)

		c := model.Centroid(part.Positions)
		for i := 0; i < len(part.Positions); i += 3 {
			a, b, d := part.Positions[i], part.Positions[i+1], part.Positions[i+2]
			n := model.FaceNormal(a, b, d)
			mid := a.Add(b).Add(d).Scale(1.0 / 3)
			assert.Greater(t, n.Dot(mid.Sub(c)), float32(0), "%s triangle %d", name, i/3)
		}
	}
}

func TestProceduralRodProvidesNormals(t *testing.T) {
	part, err := NewProcedural().Mesh("rod")
	require.NoError(t, err)
	require.Len(t, part.Normals, part.VertexCount())
	for i, n := range part.Normals {
		assert.InDelta(t, 1, n.Length(), 1e-5)
		assert.Zero(t, n.Y, "normal %d", i)
	}
}

func TestManagerAddSourceDropsCache(t *testing.T) {
	m := NewManager(NewProcedural())
	cube, err := m.Mesh("cube")
	require.NoError(t, err)
	assert.Equal(t, 36, cube.VertexCount())

	m.AddSource(&countingSource{parts: map[string]*model.Part{
		"cube": {Name: "cube", Positions: []math.Vec3{{}, {X: 1}, {Y: 1}}},
	}})

	cube, err = m.Mesh("cube")
	require.NoError(t, err)
	assert.Equal(t, 3, cube.VertexCount())
}

type countingSource struct {
	parts map[string]*model.Part
	calls int
}

func (s *countingSource) Mesh(name string) (*model.Part, error) {
	s.calls++
	p, ok := s.parts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMeshNotFound, name)
	}
	return p, nil
}

func TestManagerPriorityAndCache(t *testing.T) {
	override := &countingSource{parts: map[string]*model.Part{
		"cube": {Name: "cube", Positions: []math.Vec3{{}, {X: 1}, {Y: 1}}},
	}}
	m := NewManager(NewProcedural())
	m.AddSource(override)

	cube, err := m.Mesh("cube")
	require.NoError(t, err)
	assert.Equal(t, 3, cube.VertexCount())

	// Falls back to the procedural source.
	nose, err := m.Mesh("nose")
	require.NoError(t, err)
	assert.Equal(t, 12, nose.VertexCount())

	// Second lookup is served from the cache, as a copy.
	cube.Positions[0] = math.Vec3{Z: 9}
	again, err := m.Mesh("cube")
	require.NoError(t, err)
	assert.Equal(t, math.Vec3{}, again.Positions[0])
	assert.Equal(t, 2, override.calls)

	hits, misses := m.CacheStats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 2, misses)

	_, err = m.Mesh("tail")
	assert.ErrorIs(t, err, ErrMeshNotFound)
}

func TestBuildDefault(t *testing.T) {
	grid := GridSpec{RowSpacing: 1, ColumnSpacing: 1, Color: math.V3(1, 1, 1)}
	buf, err := Build(NewProcedural(), grid, DefaultSpecs(), nil)
	require.NoError(t, err)

	g, ok := buf.Segment("grid")
	require.True(t, ok)
	assert.Equal(t, 0, g.Offset)
	assert.Equal(t, 800, g.Count)
	assert.Equal(t, model.Lines, g.Primitive)

	offset := g.Count
	for _, spec := range DefaultSpecs() {
		seg, ok := buf.Segment(spec.Name)
		require.True(t, ok, spec.Name)
		assert.Equal(t, offset, seg.Offset, spec.Name)
		offset += seg.Count
	}
	assert.Equal(t, offset, buf.VertexCount)
	assert.Len(t, buf.Data, buf.VertexCount*(model.PositionSize+model.NormalSize+model.TexCoordSize))
}

func TestBuildInvertsArmNormals(t *testing.T) {
	specs := []MeshSpec{{Name: "bob", Normals: model.NormalsSmooth, Invert: true}}
	buf, err := Build(NewProcedural(), GridSpec{RowSpacing: 50, ColumnSpacing: 50}, specs, nil)
	require.NoError(t, err)

	seg, _ := buf.Segment("bob")
	pos := buf.Data[seg.Offset*3:]
	nrm := buf.Data[buf.NormalOffset()+seg.Offset*3:]
	// An inverted sphere normal points at the centre.
	for i := 0; i < seg.Count; i++ {
		p := math.V3(pos[i*3], pos[i*3+1], pos[i*3+2])
		n := math.V3(nrm[i*3], nrm[i*3+1], nrm[i*3+2])
		assert.Less(t, n.Dot(p), float32(0))
	}
}

func TestBuildEmptyGridOnBadSpacing(t *testing.T) {
	buf, err := Build(NewProcedural(), GridSpec{RowSpacing: 0.5, ColumnSpacing: 1}, DefaultSpecs()[:1], nil)
	require.NoError(t, err)

	g, ok := buf.Segment("grid")
	require.True(t, ok)
	assert.Zero(t, g.Count)
}

func TestBuildKeepsPartialBlendedNormals(t *testing.T) {
	src := &countingSource{parts: map[string]*model.Part{
		"foot": {Name: "foot", Positions: []math.Vec3{
			{}, {X: 1}, {Y: 1},
			{X: 2}, {X: 3},
		}},
	}}
	specs := []MeshSpec{{Name: "foot", Normals: model.NormalsBlended, Invert: true}}
	buf, err := Build(src, GridSpec{RowSpacing: 50, ColumnSpacing: 50}, specs, nil)
	require.NoError(t, err)

	seg, ok := buf.Segment("foot")
	require.True(t, ok)
	assert.Equal(t, 3, seg.Count)
}

func TestBuildRequiresProvidedNormals(t *testing.T) {
	src := &countingSource{parts: map[string]*model.Part{
		"rod": {Name: "rod", Positions: []math.Vec3{{}, {X: 1}, {Y: 1}}},
	}}
	specs := []MeshSpec{{Name: "rod", Normals: model.NormalsProvided}}
	_, err := Build(src, GridSpec{RowSpacing: 1, ColumnSpacing: 1}, specs, nil)
	assert.Error(t, err)
}

func TestBuildMissingMesh(t *testing.T) {
	_, err := Build(&countingSource{}, GridSpec{RowSpacing: 1, ColumnSpacing: 1}, DefaultSpecs(), nil)
	assert.ErrorIs(t, err, ErrMeshNotFound)
}

// writeGLTF writes a small document with an indexed "body" triangle, an
// unindexed "rod" triangle with normals and texcoords, and a line mesh.
func writeGLTF(t *testing.T) string {
	t.Helper()

	var bin bytes.Buffer
	write := func(v any) { require.NoError(t, binary.Write(&bin, binary.LittleEndian, v)) }
	write([]float32{0, 0, 0, 1, 0, 0, 0, 1, 0}) // positions, 36 bytes
	write([]uint16{0, 2, 1, 0})                 // indices plus padding, 8 bytes
	write([]float32{0, 0, 1, 0, 0, 1, 0, 0, 1}) // normals, 36 bytes
	write([]float32{0, 0, 1, 0, 0, 1})          // texcoords, 24 bytes

	doc := fmt.Sprintf(`{
  "asset": {"version": "2.0"},
  "buffers": [{"byteLength": %d, "uri": "data:application/octet-stream;base64,%s"}],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36},
    {"buffer": 0, "byteOffset": 36, "byteLength": 6},
    {"buffer": 0, "byteOffset": 44, "byteLength": 36},
    {"buffer": 0, "byteOffset": 80, "byteLength": 24}
  ],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]},
    {"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"},
    {"bufferView": 2, "componentType": 5126, "count": 3, "type": "VEC3"},
    {"bufferView": 3, "componentType": 5126, "count": 3, "type": "VEC2"}
  ],
  "meshes": [
    {"name": "body", "primitives": [{"attributes": {"POSITION": 0}, "indices": 1}]},
    {"name": "rod", "primitives": [{"attributes": {"POSITION": 0, "NORMAL": 2, "TEXCOORD_0": 3}}]},
    {"name": "wire", "primitives": [{"attributes": {"POSITION": 0}, "mode": 1}]}
  ]
}`, bin.Len(), base64.StdEncoding.EncodeToString(bin.Bytes()))

	path := filepath.Join(t.TempDir(), "figure.gltf")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}

func TestGLTFSource(t *testing.T) {
	src, err := OpenGLTF(writeGLTF(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"body", "rod", "wire"}, src.Names())

	body, err := src.Mesh("body")
	require.NoError(t, err)
	assert.Equal(t, []math.Vec3{{}, {Y: 1}, {X: 1}}, body.Positions)
	assert.Nil(t, body.Normals)
	assert.Len(t, body.TexCoords, 3)

	rod, err := src.Mesh("rod")
	require.NoError(t, err)
	assert.Equal(t, []math.Vec3{{Z: 1}, {Z: 1}, {Z: 1}}, rod.Normals)
	assert.Equal(t, []math.Vec2{{}, {X: 1}, {Y: 1}}, rod.TexCoords)

	_, err = src.Mesh("wire")
	assert.Error(t, err)

	_, err = src.Mesh("arm")
	assert.ErrorIs(t, err, ErrMeshNotFound)
}

func TestGLTFOverridesProcedural(t *testing.T) {
	src, err := OpenGLTF(writeGLTF(t))
	require.NoError(t, err)

	m := NewManager(NewProcedural(), src)
	specs := []MeshSpec{
		{Name: "body", Normals: model.NormalsSmooth},
		{Name: "rod", Normals: model.NormalsProvided},
		{Name: "arm", Normals: model.NormalsSmooth, Invert: true},
	}
	buf, err := Build(m, GridSpec{RowSpacing: 1, ColumnSpacing: 1}, specs, nil)
	require.NoError(t, err)

	body, _ := buf.Segment("body")
	rod, _ := buf.Segment("rod")
	arm, _ := buf.Segment("arm")
	assert.Equal(t, 3, body.Count)
	assert.Equal(t, 3, rod.Count)
	assert.Greater(t, arm.Count, 3)
}

func TestOpenGLTFMissing(t *testing.T) {
	_, err := OpenGLTF(filepath.Join(t.TempDir(), "missing.glb"))
	assert.Error(t, err)
}
