package red

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/red/gl"
)

// ShaderFromWGSL translates WGSL source to SPIR-V with naga and loads it as
// a binary shader specialized at entryPoint. It needs GL 4.6 or
// ARB_gl_spirv on the driver side.
func ShaderFromWGSL(g *GL, source string, kind ShaderKind, entryPoint string) (*Shader, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShaderKind, kind)
	}
	spirv, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTranslate, err)
	}
	s, err := newShader(g, kind)
	if err != nil {
		return nil, err
	}
	raw := s.raw()
	raw.ShaderBinary(s.id, gl.ShaderBinaryFormatSPIRV, spirv)
	raw.SpecializeShader(s.id, entryPoint)
	if err := s.compileStatus(); err != nil {
		return nil, err
	}
	Logger().Debug("red: WGSL shader loaded", "kind", kind, "entry", entryPoint, "spirv_bytes", len(spirv))
	return s, nil
}
