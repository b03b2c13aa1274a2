package red

import (
	"fmt"

	"github.com/gogpu/red/gl"
)

// Program is an owned linked program object.
type Program struct {
	resource
	uniforms map[string]int32
}

// ProgramFromShaders links the shaders into a program. The shaders are
// detached afterwards, on success and on failure, and stay owned by the
// caller. A link failure releases the program and returns a *LinkError.
func ProgramFromShaders(g *GL, shaders ...*Shader) (*Program, error) {
	r, err := newResource(g, "program",
		func(raw gl.Context) (uint32, error) { return raw.CreateProgram() },
		func(raw gl.Context, id uint32) { raw.DeleteProgram(id) },
	)
	if err != nil {
		return nil, err
	}
	p := &Program{resource: r, uniforms: make(map[string]int32)}
	trackLeak(p, &p.resource)

	raw := p.raw()
	for _, s := range shaders {
		s.raw() // panics on a deleted shader
		raw.AttachShader(p.id, s.id)
	}
	raw.LinkProgram(p.id)
	linked := raw.GetProgramiv(p.id, gl.LinkStatus) != 0
	var log string
	if !linked {
		log = raw.GetProgramInfoLog(p.id)
	}
	for _, s := range shaders {
		raw.DetachShader(p.id, s.id)
	}
	if !linked {
		p.Delete()
		return nil, &LinkError{Log: log}
	}
	return p, nil
}

// SetUsed makes p the active program.
func (p *Program) SetUsed() {
	p.raw().UseProgram(p.id)
}

// SetUniform activates p and uploads value to the named uniform.
//
// It panics when name does not resolve to an active uniform: that is a
// mismatch between host code and shader source, not a runtime condition.
func (p *Program) SetUniform(name string, value UniformValue) {
	p.SetUsed()
	value.setUniform(p.raw(), p.uniformLocation(name))
}

func (p *Program) uniformLocation(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := p.raw().GetUniformLocation(p.id, name)
	if loc < 0 {
		panic(fmt.Sprintf("red: name %q does not correspond to an active uniform variable in program %d or name starts with the reserved prefix \"gl_\"", name, p.id))
	}
	p.uniforms[name] = loc
	return loc
}

// SetLayout records in vao how each source's attributes map onto p's
// attribute locations. The vertex array and every source are unbound on
// return.
func (p *Program) SetLayout(vao *VertexArray, sources ...VertexSource) {
	defer vao.Bind().Unbind()
	for _, src := range sources {
		func() {
			defer src.Bind().Unbind()
			src.DescribeAttributes(p)
		}()
	}
}

// Delete releases the program. Later calls are no-ops.
func (p *Program) Delete() {
	p.release()
}
