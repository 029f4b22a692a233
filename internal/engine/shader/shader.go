// Package shader compiles GLSL programs and holds the figure shaders.
package shader

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// FigureVertex is the vertex shader shared by every draw.
//
//go:embed figure.vert
var FigureVertex string

// FigureFragment lights parts with a diffuse and specular term, samples the
// rod texture when u_Tex is set and paints flat lines when u_Grid is set.
//
//go:embed figure.frag
var FigureFragment string

// Attribute locations fixed by the layout qualifiers of FigureVertex.
const (
	AttribPosition uint32 = 0
	AttribNormal   uint32 = 1
	AttribTexCoord uint32 = 2
)

var (
	// ErrCompile is wrapped by shader compile failures.
	ErrCompile = errors.New("shader compile failed")
	// ErrLink is wrapped by program link failures.
	ErrLink = errors.New("program link failed")
	// ErrUniform is wrapped when a required uniform is missing.
	ErrUniform = errors.New("uniform not found")
)

// CompileProgram compiles vertex and fragment shaders and links them into a program.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := programLog(program)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%w: %s", ErrLink, log)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, max(logLen, 1))
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s %w: %s", name, ErrCompile, string(log))
	}

	return shader, nil
}

func programLog(program uint32) string {
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	log := make([]byte, max(logLen, 1))
	gl.GetProgramInfoLog(program, logLen, nil, &log[0])
	return string(log)
}

// GetUniform returns the uniform location for the given name, or -1 when
// the uniform is missing or inactive.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// Uniforms resolves every name in names. It fails on the first uniform the
// linker dropped.
func Uniforms(program uint32, names ...string) (map[string]int32, error) {
	locs := make(map[string]int32, len(names))
	for _, name := range names {
		loc := GetUniform(program, name)
		if loc < 0 {
			return nil, fmt.Errorf("%w: %s", ErrUniform, name)
		}
		locs[name] = loc
	}
	return locs, nil
}
