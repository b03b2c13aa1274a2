package red

import "github.com/gogpu/red/gl"

// UniformValue is a value Program.SetUniform can upload. The set is
// closed: F32, F32x2, F32x3, F32x4, I32, Mat4 and *Texture.
type UniformValue interface {
	setUniform(raw gl.Context, location int32)
}

// Mat4 is a 4x4 float matrix. The 16 values are uploaded in the order
// given with transpose off, so element i*4+j is GL's column i, row j.
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func (v F32) setUniform(raw gl.Context, loc int32) { raw.Uniform1f(loc, float32(v)) }

func (v F32x2) setUniform(raw gl.Context, loc int32) { raw.Uniform2f(loc, v[0], v[1]) }

func (v F32x3) setUniform(raw gl.Context, loc int32) { raw.Uniform3f(loc, v[0], v[1], v[2]) }

func (v F32x4) setUniform(raw gl.Context, loc int32) { raw.Uniform4f(loc, v[0], v[1], v[2], v[3]) }

func (v I32) setUniform(raw gl.Context, loc int32) { raw.Uniform1i(loc, int32(v)) }

func (m Mat4) setUniform(raw gl.Context, loc int32) { raw.UniformMatrix4fv(loc, false, m[:]) }

// setUniform binds t to texture unit 0 and points the sampler at it.
func (t *Texture) setUniform(_ gl.Context, loc int32) {
	raw := t.raw()
	raw.ActiveTexture(gl.Texture0)
	raw.BindTexture(gl.Texture2D, t.id)
	raw.Uniform1i(loc, 0)
}
