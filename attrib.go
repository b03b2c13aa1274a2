package red

import "github.com/gogpu/gputypes"

// Attribute is implemented by the fixed-layout value types that can appear
// as fields of a vertex record. VertexFormat describes the value as one
// vertex attribute; it must not depend on the receiver's value.
type Attribute interface {
	VertexFormat() gputypes.VertexFormat
}

// Vertex attribute value types. All are tightly packed with 4-byte or
// smaller alignment, so a struct of them has no implicit padding.
type (
	// F32 is one float component.
	F32 float32
	// F32x2 is two float components.
	F32x2 [2]float32
	// F32x3 is three float components.
	F32x3 [3]float32
	// F32x4 is four float components.
	F32x4 [4]float32

	// I32 is one signed integer component, read by the shader as int.
	I32 int32
	// I32x2 is two signed integer components.
	I32x2 [2]int32
	// I32x3 is three signed integer components.
	I32x3 [3]int32
	// I32x4 is four signed integer components.
	I32x4 [4]int32

	// U8x4Norm is four unsigned bytes normalized to [0, 1], typically a color.
	U8x4Norm [4]uint8
)

func (F32) VertexFormat() gputypes.VertexFormat   { return gputypes.VertexFormatFloat32 }
func (F32x2) VertexFormat() gputypes.VertexFormat { return gputypes.VertexFormatFloat32x2 }
func (F32x3) VertexFormat() gputypes.VertexFormat { return gputypes.VertexFormatFloat32x3 }
func (F32x4) VertexFormat() gputypes.VertexFormat { return gputypes.VertexFormatFloat32x4 }

func (I32) VertexFormat() gputypes.VertexFormat   { return gputypes.VertexFormatSint32 }
func (I32x2) VertexFormat() gputypes.VertexFormat { return gputypes.VertexFormatSint32x2 }
func (I32x3) VertexFormat() gputypes.VertexFormat { return gputypes.VertexFormatSint32x3 }
func (I32x4) VertexFormat() gputypes.VertexFormat { return gputypes.VertexFormatSint32x4 }

func (U8x4Norm) VertexFormat() gputypes.VertexFormat { return gputypes.VertexFormatUnorm8x4 }
