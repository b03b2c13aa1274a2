package red

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/red/gl"
	"github.com/gogpu/wgpu/hal"
)

// StencilTest configures the stencil stage of one draw. Fragments pass
// when (Ref & Mask) Compare (stencil & Mask). On pass the stored value is
// updated with PassOp; failing fragments keep the stored value.
type StencilTest struct {
	Compare gputypes.CompareFunction
	Ref     int32
	Mask    uint32
	PassOp  hal.StencilOperation
}

// DrawType selects a plain or an instanced draw.
type DrawType struct {
	instances int
}

// DrawStandard draws the index buffer once.
var DrawStandard = DrawType{}

// DrawInstanced draws the index buffer n times. It panics if n is not
// positive.
func DrawInstanced(n int) DrawType {
	if n <= 0 {
		panic(fmt.Sprintf("red: instance count must be positive, got %d", n))
	}
	return DrawType{instances: n}
}

// Instances returns the instance count, or 0 for a standard draw.
func (d DrawType) Instances() int { return d.instances }

// String returns the string representation of DrawType.
func (d DrawType) String() string {
	if d.instances == 0 {
		return "Standard"
	}
	return fmt.Sprintf("Instanced(%d)", d.instances)
}

// DrawParameters is the render state applied by Frame.Draw.
type DrawParameters struct {
	// Stencil enables the stencil test when non-nil.
	Stencil *StencilTest
	// Blend enables source-over alpha blending.
	Blend bool
	// ColorMask selects the color channels written.
	ColorMask gputypes.ColorWriteMask
	DrawType  DrawType
}

// DefaultDrawParameters returns no stencil test, blending on, all channels
// written and a standard draw.
func DefaultDrawParameters() DrawParameters {
	return DrawParameters{
		Blend:     true,
		ColorMask: gputypes.ColorWriteMaskAll,
		DrawType:  DrawStandard,
	}
}

func glCompare(f gputypes.CompareFunction) uint32 {
	switch f {
	case gputypes.CompareFunctionNever:
		return gl.Never
	case gputypes.CompareFunctionLess:
		return gl.Less
	case gputypes.CompareFunctionEqual:
		return gl.Equal
	case gputypes.CompareFunctionLessEqual:
		return gl.Lequal
	case gputypes.CompareFunctionGreater:
		return gl.Greater
	case gputypes.CompareFunctionNotEqual:
		return gl.Notequal
	case gputypes.CompareFunctionGreaterEqual:
		return gl.Gequal
	case gputypes.CompareFunctionAlways:
		return gl.Always
	default:
		panic(fmt.Sprintf("red: unsupported stencil compare function %v", f))
	}
}

func glStencilOp(op hal.StencilOperation) uint32 {
	switch op {
	case hal.StencilOperationKeep:
		return gl.Keep
	case hal.StencilOperationZero:
		return gl.Zero
	case hal.StencilOperationReplace:
		return gl.Replace
	case hal.StencilOperationInvert:
		return gl.Invert
	case hal.StencilOperationIncrementClamp:
		return gl.Incr
	case hal.StencilOperationDecrementClamp:
		return gl.Decr
	case hal.StencilOperationIncrementWrap:
		return gl.IncrWrap
	case hal.StencilOperationDecrementWrap:
		return gl.DecrWrap
	default:
		panic(fmt.Sprintf("red: unsupported stencil operation %d", op))
	}
}
