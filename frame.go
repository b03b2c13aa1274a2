package red

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/red/gl"
)

// ClearMask selects the buffers Frame.Clear resets.
type ClearMask uint32

// Clearable buffers.
const (
	ClearColorBuffer   ClearMask = gl.ColorBufferBit
	ClearStencilBuffer ClearMask = gl.StencilBufferBit
)

// Frame issues draw calls against the default framebuffer.
type Frame struct {
	gl *GL
}

// NewFrame returns a frame holding its own clone of g.
func NewFrame(g *GL) *Frame {
	return &Frame{gl: g.Clone()}
}

// Release drops the frame's context clone.
func (f *Frame) Release() { f.gl.Release() }

// SetClearColor sets the color used by ClearColor.
func (f *Frame) SetClearColor(r, g, b, a float32) {
	f.gl.Raw().ClearColor(r, g, b, a)
}

// SetClearStencil sets the value used by ClearStencil.
func (f *Frame) SetClearStencil(s int32) {
	f.gl.Raw().ClearStencil(s)
}

// ClearColor resets the color buffer.
func (f *Frame) ClearColor() { f.Clear(ClearColorBuffer) }

// ClearStencil resets the stencil buffer.
func (f *Frame) ClearStencil() { f.Clear(ClearStencilBuffer) }

// Clear resets the buffers in mask.
func (f *Frame) Clear(mask ClearMask) {
	f.gl.Raw().Clear(uint32(mask))
}

// Draw renders the triangles of ib with p and the attribute bindings
// recorded in vao, applying params first. It panics when ib is nil.
//
// The stencil write mask is left at 0xFF and vao is unbound on return, so
// a later Clear reaches the whole stencil buffer. Blend, color mask and
// the stencil test stay as params set them.
func (f *Frame) Draw(vao *VertexArray, ib *IndexBuffer, p *Program, params DrawParameters) {
	raw := f.gl.Raw()
	vao.Bind()

	if params.Blend {
		raw.Enable(gl.Blend)
		raw.BlendFunc(gl.SrcAlpha, gl.OneMinusSrcAlpha)
	} else {
		raw.Disable(gl.Blend)
	}

	m := params.ColorMask
	raw.ColorMask(
		m&gputypes.ColorWriteMaskRed != 0,
		m&gputypes.ColorWriteMaskGreen != 0,
		m&gputypes.ColorWriteMaskBlue != 0,
		m&gputypes.ColorWriteMaskAlpha != 0,
	)

	if st := params.Stencil; st != nil {
		raw.Enable(gl.StencilTest)
		raw.StencilMask(0xFF)
		raw.StencilFunc(glCompare(st.Compare), st.Ref, st.Mask)
		raw.StencilOp(gl.Keep, gl.Keep, glStencilOp(st.PassOp))
	} else {
		raw.StencilMask(0x00)
		raw.StencilFunc(gl.Always, 0, 0xFF)
		raw.StencilOp(gl.Keep, gl.Keep, gl.Keep)
	}

	p.SetUsed()

	if ib == nil {
		panic("red: Frame.Draw called without an index buffer")
	}
	ib.Bind()
	count := int32(ib.Len())
	if n := params.DrawType.Instances(); n > 0 {
		raw.DrawElementsInstanced(gl.Triangles, count, gl.UnsignedShort, 0, int32(n))
	} else {
		raw.DrawElements(gl.Triangles, count, gl.UnsignedShort, 0)
	}

	raw.StencilMask(0xFF)
	vao.Unbind()
}
