package scene

import (
	"image"

	"github.com/Faultbox/figurine/internal/engine/model"
	"github.com/Faultbox/figurine/pkg/math"
)

// FrameUniforms are the values shared by every draw of a frame.
type FrameUniforms struct {
	Camera           math.Mat4
	Projection       math.Mat4
	Total            math.Mat4
	InverseTranspose math.Mat4

	Light      math.Vec3
	Ambient    math.Vec3
	SpecPower  float32
	SpecColor  math.Vec3
	ClearColor math.Vec3
}

// DrawCall draws one mesh segment with its own transforms and colour.
type DrawCall struct {
	Part      string
	Mesh      string
	Primitive model.Primitive

	Rotation math.Mat4
	Scale    math.Mat4
	World    math.Mat4

	Color    math.Vec3
	Textured bool
	Grid     bool
}

// Frame is everything a backend needs to draw one frame.
type Frame struct {
	Uniforms FrameUniforms
	Draws    []DrawCall
}

// Backend draws frames. Upload is called once at startup with the packed
// vertex buffer and the rod texture.
type Backend interface {
	Upload(buf model.Buffer, texture *image.RGBA) error
	DrawFrame(f Frame) error
	Resize(width, height int)
	Close()
}

// Frame assembles the uniforms and the ordered draw list for view: the
// grid as a line draw, then every part in PartID order.
func (s *State) Frame(view View) Frame {
	lighting := s.setup.Lighting

	f := Frame{
		Uniforms: FrameUniforms{
			Camera:           view.Camera(),
			Projection:       s.setup.Projection.Matrix(view.Perspective),
			Total:            s.Total,
			InverseTranspose: s.InverseTranspose(),
			Light:            math.Vec3{X: view.LightX, Y: lighting.LightY, Z: lighting.LightZ},
			Ambient:          lighting.Ambient,
			SpecPower:        lighting.SpecPower,
			SpecColor:        lighting.SpecColor,
			ClearColor:       s.setup.ClearColor,
		},
		Draws: make([]DrawCall, 0, PartCount+1),
	}

	f.Draws = append(f.Draws, DrawCall{
		Part:      MeshGrid,
		Mesh:      MeshGrid,
		Primitive: model.Lines,
		Rotation:  s.GridModel,
		Scale:     math.Identity(),
		World:     s.GridWorld,
		Color:     s.setup.GridColor,
		Grid:      true,
	})

	for id := PartID(0); id < PartCount; id++ {
		p := s.setup.Parts[id]
		f.Draws = append(f.Draws, DrawCall{
			Part:      id.String(),
			Mesh:      p.Mesh,
			Primitive: model.Triangles,
			Rotation:  s.Parts[id].Rotation,
			Scale:     s.Parts[id].Scale,
			World:     s.World[id],
			Color:     p.Color,
			Textured:  p.Textured,
		})
	}
	return f
}
