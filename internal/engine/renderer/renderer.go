// Package renderer draws scene frames with OpenGL 4.1 core.
package renderer

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/figurine/internal/engine/model"
	"github.com/Faultbox/figurine/internal/engine/shader"
	"github.com/Faultbox/figurine/internal/scene"
	"github.com/Faultbox/figurine/pkg/math"
)

const floatSize = 4

// Uniform names used by the figure shaders.
const (
	uModelR           = "u_ModelR"
	uModelS           = "u_ModelS"
	uWorld            = "u_World"
	uCamera           = "u_Camera"
	uProjection       = "u_Projection"
	uTotal            = "u_Total"
	uInverseTranspose = "u_InverseTranspose"
	uDiffuseColor     = "u_DiffuseColor"
	uTex              = "u_Tex"
	uGrid             = "u_Grid"
	uTexture          = "u_Texture"
	uLight            = "u_Light"
	uAmbientLight     = "u_AmbientLight"
	uSpecPower        = "u_SpecPower"
	uSpecColor        = "u_SpecColor"
)

var uniformNames = []string{
	uModelR, uModelS, uWorld, uCamera, uProjection, uTotal, uInverseTranspose,
	uDiffuseColor, uTex, uGrid, uTexture, uLight, uAmbientLight, uSpecPower, uSpecColor,
}

var errNotUploaded = errors.New("renderer: vertex buffer not uploaded")

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer implements scene.Backend.
type Renderer struct {
	config Config
	log    *zap.Logger

	program  uint32
	uniforms map[string]int32

	vao     uint32
	vbo     uint32
	texture uint32

	segments map[string]model.Segment
}

var _ scene.Backend = (*Renderer)(nil)

// New creates a renderer. The OpenGL context must already be current.
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{config: cfg, log: log}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.CompileProgram(shader.FigureVertex, shader.FigureFragment)
	if err != nil {
		return nil, fmt.Errorf("creating figure program: %w", err)
	}
	r.uniforms, err = shader.Uniforms(r.program, uniformNames...)
	if err != nil {
		gl.DeleteProgram(r.program)
		return nil, fmt.Errorf("creating figure program: %w", err)
	}

	return r, nil
}

// Upload sends the packed vertex buffer and the rod texture to the GPU.
// Positions, normals and texcoords live in separate sections of one VBO.
func (r *Renderer) Upload(buf model.Buffer, img *image.RGBA) error {
	if buf.VertexCount == 0 || len(buf.Data) == 0 {
		return errors.New("renderer: empty vertex buffer")
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(buf.Data)*floatSize, unsafe.Pointer(&buf.Data[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(shader.AttribPosition, model.PositionSize, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(shader.AttribPosition)
	gl.VertexAttribPointerWithOffset(shader.AttribNormal, model.NormalSize, gl.FLOAT, false, 0,
		uintptr(buf.NormalOffset()*floatSize))
	gl.EnableVertexAttribArray(shader.AttribNormal)
	gl.VertexAttribPointerWithOffset(shader.AttribTexCoord, model.TexCoordSize, gl.FLOAT, false, 0,
		uintptr(buf.TexCoordOffset()*floatSize))
	gl.EnableVertexAttribArray(shader.AttribTexCoord)

	gl.BindVertexArray(0)
	r.segments = buf.Segments

	if img != nil && len(img.Pix) > 0 {
		r.texture = uploadTexture(img)
	}

	r.log.Info("vertex buffer uploaded",
		zap.Int("vertices", buf.VertexCount),
		zap.Int("segments", len(buf.Segments)),
		zap.Bool("textured", r.texture != 0),
	)
	return nil
}

func uploadTexture(img *image.RGBA) uint32 {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	return texID
}

// DrawFrame clears the screen and issues every draw of f in order.
func (r *Renderer) DrawFrame(f scene.Frame) error {
	if r.vao == 0 {
		return errNotUploaded
	}
	u := f.Uniforms

	gl.ClearColor(u.ClearColor.X, u.ClearColor.Y, u.ClearColor.Z, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)
	gl.BindVertexArray(r.vao)

	r.setMat4(uCamera, u.Camera)
	r.setMat4(uProjection, u.Projection)
	r.setMat4(uTotal, u.Total)
	r.setMat4(uInverseTranspose, u.InverseTranspose)
	r.setVec3(uLight, u.Light)
	r.setVec3(uAmbientLight, u.Ambient)
	r.setVec3(uSpecColor, u.SpecColor)
	gl.Uniform1f(r.uniforms[uSpecPower], u.SpecPower)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	gl.Uniform1i(r.uniforms[uTexture], 0)

	for _, d := range f.Draws {
		seg, ok := r.segments[d.Mesh]
		if !ok {
			gl.BindVertexArray(0)
			return fmt.Errorf("renderer: draw %s: mesh %q not uploaded", d.Part, d.Mesh)
		}

		r.setMat4(uModelR, d.Rotation)
		r.setMat4(uModelS, d.Scale)
		r.setMat4(uWorld, d.World)
		r.setVec3(uDiffuseColor, d.Color)
		gl.Uniform1i(r.uniforms[uGrid], boolInt(d.Grid))
		gl.Uniform1i(r.uniforms[uTex], boolInt(d.Textured && r.texture != 0))

		mode := uint32(gl.TRIANGLES)
		if d.Primitive == model.Lines {
			mode = gl.LINES
		}
		gl.DrawArrays(mode, int32(seg.Offset), int32(seg.Count))
	}

	gl.BindVertexArray(0)
	return nil
}

func (r *Renderer) setMat4(name string, m math.Mat4) {
	gl.UniformMatrix4fv(r.uniforms[name], 1, false, m.Ptr())
}

func (r *Renderer) setVec3(name string, v math.Vec3) {
	gl.Uniform3f(r.uniforms[name], v.X, v.Y, v.Z)
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.texture != 0 {
		gl.DeleteTextures(1, &r.texture)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}
