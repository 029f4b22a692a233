package scene

import (
	"fmt"

	"github.com/Faultbox/figurine/internal/engine/model"
	"github.com/Faultbox/figurine/pkg/math"
)

// View is the per-frame camera and light input, read from the input state.
type View struct {
	CameraX     float32
	CameraY     float32
	CameraZ     float32
	LookAngle   float32
	LightX      float32
	Perspective bool
}

// Camera returns the view matrix. The eye sits one unit in front of the
// camera position and looks back along -Z, turned sideways by LookAngle.
func (v View) Camera() math.Mat4 {
	eye := math.Vec3{X: v.CameraX, Y: v.CameraY, Z: 1 + v.CameraZ}
	target := math.Vec3{X: v.CameraX - v.LookAngle, Y: v.CameraY, Z: v.CameraZ}
	return math.LookAt(eye, target, math.Vec3{Y: 1})
}

// State owns every transform of the figure. It is mutated in place by the
// animation driver each tick and read by Frame.
type State struct {
	setup Setup

	Parts [PartCount]PartTransform
	World [PartCount]math.Mat4

	GridModel math.Mat4
	GridWorld math.Mat4

	// Total is a global transform applied to every draw, identity by default.
	Total math.Mat4
}

// NewState builds the transforms described by setup.
func NewState(setup Setup) *State {
	s := &State{
		setup:     setup,
		GridModel: math.Identity(),
		GridWorld: math.Identity().Translate(setup.GridOffset.X, setup.GridOffset.Y, setup.GridOffset.Z),
		Total:     math.Identity(),
	}
	for id, p := range setup.Parts {
		s.Parts[id] = PartTransform{
			Rotation: math.Rotation(p.RotationDeg, p.RotationAxis),
			Scale:    math.Scale(p.Scale.X, p.Scale.Y, p.Scale.Z),
		}
		s.World[id] = math.Translate(p.Position.X, p.Position.Y, p.Position.Z)
	}
	return s
}

// Setup returns the setup the state was built from.
func (s *State) Setup() Setup {
	return s.setup
}

// ApplyRotation concats a rotation of deg degrees about axis on the right
// of the part's rotation.
func (s *State) ApplyRotation(id PartID, deg float32, axis math.Vec3) {
	s.Parts[id].Rotation = s.Parts[id].Rotation.Rotate(deg, axis)
}

// TranslateWorld concats a translation on the right of the part's world
// placement.
func (s *State) TranslateWorld(id PartID, x, y, z float32) {
	s.World[id] = s.World[id].Translate(x, y, z)
}

// Model returns the part's Rotation × Scale.
func (s *State) Model(id PartID) math.Mat4 {
	return s.Parts[id].Model()
}

// InverseTranspose returns the normal matrix of the body,
// (World × Rotation × Scale)⁻¹ᵀ. Every part is lit with it.
func (s *State) InverseTranspose() math.Mat4 {
	return s.World[Body].Mul(s.Model(Body)).InverseTranspose()
}

// MVP returns Projection × Camera × World × Total × Model for a part.
func (s *State) MVP(id PartID, view View) math.Mat4 {
	return s.setup.Projection.Matrix(view.Perspective).
		Mul(view.Camera()).
		Mul(s.World[id]).
		Mul(s.Total).
		Mul(s.Model(id))
}

// CheckMeshes verifies that every mesh the setup draws is in buf.
func (s *State) CheckMeshes(buf *model.Buffer) error {
	for _, name := range s.setup.Meshes() {
		if _, ok := buf.Segment(name); !ok {
			return fmt.Errorf("mesh %q missing from vertex buffer", name)
		}
	}
	return nil
}
