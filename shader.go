package red

import (
	"fmt"

	"github.com/gogpu/red/gl"
)

// ShaderKind is the pipeline stage of a shader.
type ShaderKind int

const (
	// VertexShader is the vertex stage.
	VertexShader ShaderKind = iota + 1
	// FragmentShader is the fragment stage.
	FragmentShader
)

// String returns the string representation of ShaderKind.
func (k ShaderKind) String() string {
	switch k {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

func (k ShaderKind) glEnum() uint32 {
	if k == FragmentShader {
		return gl.FragmentShader
	}
	return gl.VertexShader
}

func (k ShaderKind) valid() bool {
	return k == VertexShader || k == FragmentShader
}

// Shader is an owned compiled shader object.
type Shader struct {
	resource
	kind ShaderKind
}

func newShader(g *GL, kind ShaderKind) (*Shader, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShaderKind, kind)
	}
	r, err := newResource(g, "shader",
		func(raw gl.Context) (uint32, error) { return raw.CreateShader(kind.glEnum()) },
		func(raw gl.Context, id uint32) { raw.DeleteShader(id) },
	)
	if err != nil {
		return nil, err
	}
	s := &Shader{resource: r, kind: kind}
	trackLeak(s, &s.resource)
	return s, nil
}

// ShaderFromSource compiles GLSL source. On failure the shader object is
// released and the compiler log is returned as a *CompileError.
func ShaderFromSource(g *GL, source string, kind ShaderKind) (*Shader, error) {
	s, err := newShader(g, kind)
	if err != nil {
		return nil, err
	}
	raw := s.raw()
	raw.ShaderSource(s.id, source)
	raw.CompileShader(s.id)
	if err := s.compileStatus(); err != nil {
		return nil, err
	}
	return s, nil
}

// VertexShaderFromSource compiles a vertex shader.
func VertexShaderFromSource(g *GL, source string) (*Shader, error) {
	return ShaderFromSource(g, source, VertexShader)
}

// FragmentShaderFromSource compiles a fragment shader.
func FragmentShaderFromSource(g *GL, source string) (*Shader, error) {
	return ShaderFromSource(g, source, FragmentShader)
}

// compileStatus deletes s and returns its log when compilation failed.
func (s *Shader) compileStatus() error {
	raw := s.raw()
	if raw.GetShaderiv(s.id, gl.CompileStatus) != 0 {
		return nil
	}
	log := raw.GetShaderInfoLog(s.id)
	s.Delete()
	return &CompileError{Kind: s.kind, Log: log}
}

// Kind returns the shader stage.
func (s *Shader) Kind() ShaderKind { return s.kind }

// Delete releases the shader. Later calls are no-ops. A shader may be
// deleted as soon as the programs using it are linked.
func (s *Shader) Delete() {
	s.release()
}
