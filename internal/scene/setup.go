package scene

import (
	"github.com/Faultbox/figurine/pkg/math"
)

// Mesh names the packed buffer must contain.
const (
	MeshGrid = "grid"
	MeshBody = "body"
	MeshArm  = "arm"
	MeshFoot = "foot"
	MeshRod  = "rod"
	MeshNose = "nose"
	MeshCube = "cube"
	MeshBob  = "bob"
)

// PartSetup is the initial placement and look of one part.
type PartSetup struct {
	Mesh         string
	RotationDeg  float32
	RotationAxis math.Vec3
	Scale        math.Vec3
	Position     math.Vec3
	Color        math.Vec3
	Textured     bool
}

// Projection holds the camera lens parameters.
type Projection struct {
	Near        float32
	Far         float32
	FovY        float32 // degrees
	Aspect      float32
	OrthoExtent float32 // half width and height of the orthographic volume
}

// Matrix returns the perspective or orthographic projection.
func (p Projection) Matrix(perspective bool) math.Mat4 {
	if perspective {
		return math.Perspective(p.FovY, p.Aspect, p.Near, p.Far)
	}
	e := p.OrthoExtent
	return math.Ortho(-e, e, -e, e, p.Near, p.Far)
}

// Lighting holds the light parameters shared by every draw.
type Lighting struct {
	LightY    float32
	LightZ    float32
	Ambient   math.Vec3
	SpecPower float32
	SpecColor math.Vec3
}

// Setup is everything needed to build a fresh State.
type Setup struct {
	Parts      [PartCount]PartSetup
	GridOffset math.Vec3
	GridColor  math.Vec3
	ClearColor math.Vec3
	Projection Projection
	Lighting   Lighting
}

var (
	axisX  = math.Vec3{X: 1}
	axisY  = math.Vec3{Y: 1}
	orange = math.Vec3{X: 0.9, Y: 0.3, Z: 0}
	white  = math.Vec3{X: 1, Y: 1, Z: 1}
	black  = math.Vec3{}
)

func uniform(s float32) math.Vec3 {
	return math.Vec3{X: s, Y: s, Z: s}
}

// DefaultSetup returns the figure as first shown: body and arms facing the
// camera, the rod hanging to the left with its bob on a thin line.
func DefaultSetup() Setup {
	var s Setup

	s.Parts[Body] = PartSetup{Mesh: MeshBody, RotationDeg: -90, RotationAxis: axisX, Scale: uniform(50),
		Position: math.V3(0, -1, -2.6), Color: uniform(0.15)}
	s.Parts[Arm] = PartSetup{Mesh: MeshArm, RotationDeg: 180, RotationAxis: axisY, Scale: math.V3(45, 50, 50),
		Position: math.V3(0, -1.25, -2.6), Color: uniform(0.2)}
	s.Parts[FootLeft] = PartSetup{Mesh: MeshFoot, RotationDeg: -15, RotationAxis: axisY, Scale: math.V3(30, 45, 45),
		Position: math.V3(0, -1.05, -2.6), Color: orange}
	s.Parts[FootRight] = PartSetup{Mesh: MeshFoot, RotationDeg: 15, RotationAxis: axisY, Scale: math.V3(30, 45, 45),
		Position: math.V3(0.35, -1.05, -2.72), Color: orange}
	s.Parts[Rod] = PartSetup{Mesh: MeshRod, Scale: math.V3(0.4, 0.8, 0.4),
		Position: math.V3(-0.05, 0, -1.5), Color: math.V3(196.0/255, 164.0/255, 132.0/255), Textured: true}
	s.Parts[Nose] = PartSetup{Mesh: MeshNose, Scale: math.V3(0.1, 0.04, 0.15),
		Position: math.V3(0, 0.1, -1.75), Color: orange}
	s.Parts[Stomach] = PartSetup{Mesh: MeshCube, Scale: math.V3(0.25, 0.35, 0.05),
		Position: math.V3(0, -0.4, -2), Color: white}
	s.Parts[EyeLeft] = PartSetup{Mesh: MeshCube, Scale: uniform(0.05),
		Position: math.V3(-0.2, 0.25, -2.01), Color: white}
	s.Parts[EyeRight] = PartSetup{Mesh: MeshCube, Scale: uniform(0.05),
		Position: math.V3(0.2, 0.25, -2.01), Color: white}
	s.Parts[PupilLeft] = PartSetup{Mesh: MeshCube, Scale: uniform(0.03),
		Position: math.V3(-0.19, 0.24, -1.98), Color: black}
	s.Parts[PupilRight] = PartSetup{Mesh: MeshCube, Scale: uniform(0.03),
		Position: math.V3(0.19, 0.24, -1.98), Color: black}
	s.Parts[Line] = PartSetup{Mesh: MeshCube, Scale: math.V3(0.008, 0.6, 0.008),
		Position: math.V3(-0.03, 0.365, -1.43), Color: black}
	s.Parts[Bob] = PartSetup{Mesh: MeshBob, Scale: uniform(0.04),
		Position: math.V3(-0.05, -0.33, -1.43), Color: math.Vec3{X: 1}}

	s.GridOffset = math.V3(0, -1, 0)
	s.GridColor = white
	s.ClearColor = math.V3(0.65, 0.85, 0.9)
	s.Projection = Projection{Near: 1, Far: 20, FovY: 70, Aspect: 1, OrthoExtent: 2}
	s.Lighting = Lighting{LightY: 1, LightZ: -2, SpecPower: 5, SpecColor: white}
	return s
}

// Meshes returns the distinct mesh names the setup draws, grid first.
func (s Setup) Meshes() []string {
	names := []string{MeshGrid}
	seen := map[string]bool{MeshGrid: true}
	for _, p := range s.Parts {
		if !seen[p.Mesh] {
			seen[p.Mesh] = true
			names = append(names, p.Mesh)
		}
	}
	return names
}
