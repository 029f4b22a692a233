package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/figurine/internal/engine/model"
	"github.com/Faultbox/figurine/pkg/math"
)

func TestPartIDNames(t *testing.T) {
	for id := PartID(0); id < PartCount; id++ {
		parsed, err := ParsePartID(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	}

	_, err := ParsePartID("tail")
	assert.Error(t, err)
	assert.Equal(t, "part(42)", PartID(42).String())
	assert.False(t, PartCount.Valid())
}

func TestPartIDText(t *testing.T) {
	var id PartID
	require.NoError(t, id.UnmarshalText([]byte("pupil_right")))
	assert.Equal(t, PupilRight, id)

	text, err := Bob.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "bob", string(text))

	_, err = PartID(-1).MarshalText()
	assert.Error(t, err)
}

func TestNewStateMatchesSetup(t *testing.T) {
	setup := DefaultSetup()
	s := NewState(setup)

	assert.Equal(t, math.Rotation(-90, math.Vec3{X: 1}), s.Parts[Body].Rotation)
	assert.Equal(t, math.Scale(50, 50, 50), s.Parts[Body].Scale)
	assert.Equal(t, math.Translate(0, -1, -2.6), s.World[Body])

	assert.Equal(t, math.Identity(), s.Parts[Rod].Rotation)
	assert.Equal(t, math.Scale(0.4, 0.8, 0.4), s.Parts[Rod].Scale)
	assert.Equal(t, math.Translate(-0.05, -0.33, -1.43), s.World[Bob])

	assert.Equal(t, math.Translate(0, -1, 0), s.GridWorld)
	assert.Equal(t, math.Identity(), s.Total)
}

func TestApplyRotationAccumulates(t *testing.T) {
	s := NewState(DefaultSetup())
	axis := math.Vec3{X: 1, Y: 1, Z: 1}
	start := s.Parts[Nose].Rotation

	s.ApplyRotation(Nose, 30, axis)
	s.ApplyRotation(Nose, 60, axis)
	assert.True(t, s.Parts[Nose].Rotation.ApproxEqual(start.Rotate(90, axis), 1e-5))

	// Reversing the deltas undoes them.
	s.ApplyRotation(Nose, -60, axis)
	s.ApplyRotation(Nose, -30, axis)
	assert.True(t, s.Parts[Nose].Rotation.ApproxEqual(start, 1e-5))
}

func TestApplyRotationOnRight(t *testing.T) {
	s := NewState(DefaultSetup())
	before := s.Parts[Arm].Rotation

	s.ApplyRotation(Arm, 20, math.Vec3{X: 1})
	assert.Equal(t, before.Mul(math.Rotation(20, math.Vec3{X: 1})), s.Parts[Arm].Rotation)
}

func TestTranslateWorld(t *testing.T) {
	s := NewState(DefaultSetup())
	s.TranslateWorld(Line, 0, 0.5, -0.25)

	got := s.World[Line].TransformVec3(math.Vec3{})
	assert.InDelta(t, 0, got.Distance(math.Vec3{X: -0.03, Y: 0.865, Z: -1.68}), 1e-6)
}

func TestModelScalesBeforeRotating(t *testing.T) {
	s := NewState(DefaultSetup())
	p := math.Vec3{X: 0.01, Y: 0.02, Z: 0.03}

	// Arm: scale (45, 50, 50) then rotate 180° about Y.
	want := math.Rotation(180, math.Vec3{Y: 1}).TransformVec3(math.Vec3{X: 0.45, Y: 1, Z: 1.5})
	got := s.Model(Arm).TransformVec3(p)
	assert.InDelta(t, 0, got.Distance(want), 1e-5)
}

func TestMVPOrder(t *testing.T) {
	s := NewState(DefaultSetup())
	s.Total = math.Translate(0.1, 0, 0)
	view := View{CameraX: 0.5, CameraY: 0.25, LookAngle: 1, Perspective: true}

	proj := DefaultSetup().Projection.Matrix(true)
	want := proj.Mul(view.Camera()).Mul(s.World[EyeLeft]).Mul(s.Total).
		Mul(s.Parts[EyeLeft].Rotation).Mul(s.Parts[EyeLeft].Scale)
	assert.True(t, s.MVP(EyeLeft, view).ApproxEqual(want, 1e-6))
}

func TestInverseTranspose(t *testing.T) {
	s := NewState(DefaultSetup())
	s.ApplyRotation(Body, 25, math.Vec3{Y: 1})

	m := s.World[Body].Mul(s.Parts[Body].Rotation).Mul(s.Parts[Body].Scale)
	assert.True(t, s.InverseTranspose().ApproxEqual(m.Inverse().Transpose(), 1e-6))
}

func TestViewCamera(t *testing.T) {
	cam := View{}.Camera()
	// Eye at (0,0,1) looking at the origin.
	got := cam.TransformVec3(math.Vec3{})
	assert.InDelta(t, 0, got.Distance(math.Vec3{Z: -1}), 1e-6)

	moved := View{CameraX: 2, CameraY: -1}.Camera()
	got = moved.TransformVec3(math.Vec3{X: 2, Y: -1, Z: 1})
	assert.InDelta(t, 0, got.Length(), 1e-6)
}

func TestProjectionMode(t *testing.T) {
	p := DefaultSetup().Projection
	assert.Equal(t, math.Perspective(70, 1, 1, 20), p.Matrix(true))
	assert.Equal(t, math.Ortho(-2, 2, -2, 2, 1, 20), p.Matrix(false))
}

func TestFrame(t *testing.T) {
	s := NewState(DefaultSetup())
	view := View{LightX: 1.5, Perspective: false}
	f := s.Frame(view)

	require.Len(t, f.Draws, int(PartCount)+1)

	grid := f.Draws[0]
	assert.True(t, grid.Grid)
	assert.Equal(t, model.Lines, grid.Primitive)
	assert.Equal(t, MeshGrid, grid.Mesh)
	assert.Equal(t, math.Vec3{X: 1, Y: 1, Z: 1}, grid.Color)

	rod := f.Draws[1+int(Rod)]
	assert.Equal(t, "rod", rod.Part)
	assert.True(t, rod.Textured)
	assert.Equal(t, s.Parts[Rod].Rotation, rod.Rotation)

	stomach := f.Draws[1+int(Stomach)]
	assert.Equal(t, MeshCube, stomach.Mesh)
	assert.False(t, stomach.Textured)
	assert.Equal(t, math.Vec3{X: 1, Y: 1, Z: 1}, stomach.Color)

	assert.Equal(t, math.Vec3{X: 1.5, Y: 1, Z: -2}, f.Uniforms.Light)
	assert.Equal(t, math.Ortho(-2, 2, -2, 2, 1, 20), f.Uniforms.Projection)
	assert.Equal(t, s.InverseTranspose(), f.Uniforms.InverseTranspose)
	assert.Equal(t, float32(5), f.Uniforms.SpecPower)
}

func TestCheckMeshes(t *testing.T) {
	s := NewState(DefaultSetup())
	assert.Equal(t, []string{"grid", "body", "arm", "foot", "rod", "nose", "cube", "bob"}, DefaultSetup().Meshes())

	cube := model.Cube()
	require.NoError(t, cube.ComputeNormals(model.NormalsSmooth, false))
	buf, err := model.Pack(cube)
	require.NoError(t, err)
	assert.Error(t, s.CheckMeshes(&buf))

	var parts []*model.Part
	for _, name := range DefaultSetup().Meshes() {
		p := model.Cube()
		p.Name = name
		require.NoError(t, p.ComputeNormals(model.NormalsSmooth, false))
		parts = append(parts, p)
	}
	buf, err = model.Pack(parts...)
	require.NoError(t, err)
	assert.NoError(t, s.CheckMeshes(&buf))
}
