package gltest

import (
	"fmt"
	"strings"

	"github.com/gogpu/red/gl"
)

// Enum is a recorded GL enum argument. It prints as the GL constant name.
type Enum uint32

var enumNames = map[uint32]string{
	gl.ArrayBuffer:             "ARRAY_BUFFER",
	gl.ElementArrayBuffer:      "ELEMENT_ARRAY_BUFFER",
	gl.StaticDraw:              "STATIC_DRAW",
	gl.DynamicDraw:             "DYNAMIC_DRAW",
	gl.VertexShader:            "VERTEX_SHADER",
	gl.FragmentShader:          "FRAGMENT_SHADER",
	gl.CompileStatus:           "COMPILE_STATUS",
	gl.LinkStatus:              "LINK_STATUS",
	gl.InfoLogLength:           "INFO_LOG_LENGTH",
	gl.ShaderBinaryFormatSPIRV: "SHADER_BINARY_FORMAT_SPIR_V",
	gl.Texture2D:               "TEXTURE_2D",
	gl.Texture0:                "TEXTURE0",
	gl.TextureWrapS:            "TEXTURE_WRAP_S",
	gl.TextureWrapT:            "TEXTURE_WRAP_T",
	gl.TextureMinFilter:        "TEXTURE_MIN_FILTER",
	gl.TextureMagFilter:        "TEXTURE_MAG_FILTER",
	gl.Nearest:                 "NEAREST",
	gl.Linear:                  "LINEAR",
	gl.ClampToEdge:             "CLAMP_TO_EDGE",
	gl.Repeat:                  "REPEAT",
	gl.MirroredRepeat:          "MIRRORED_REPEAT",
	gl.UnpackAlignment:         "UNPACK_ALIGNMENT",
	gl.RGBA:                    "RGBA",
	gl.RGBA8:                   "RGBA8",
	gl.Red:                     "RED",
	gl.R8:                      "R8",
	gl.Byte:                    "BYTE",
	gl.UnsignedByte:            "UNSIGNED_BYTE",
	gl.Short:                   "SHORT",
	gl.UnsignedShort:           "UNSIGNED_SHORT",
	gl.Int:                     "INT",
	gl.UnsignedInt:             "UNSIGNED_INT",
	gl.Float:                   "FLOAT",
	gl.Triangles:               "TRIANGLES",
	gl.Blend:                   "BLEND",
	gl.Zero:                    "ZERO",
	gl.One:                     "ONE",
	gl.SrcColor:                "SRC_COLOR",
	gl.OneMinusSrcColor:        "ONE_MINUS_SRC_COLOR",
	gl.SrcAlpha:                "SRC_ALPHA",
	gl.OneMinusSrcAlpha:        "ONE_MINUS_SRC_ALPHA",
	gl.DstAlpha:                "DST_ALPHA",
	gl.OneMinusDstAlpha:        "ONE_MINUS_DST_ALPHA",
	gl.DstColor:                "DST_COLOR",
	gl.OneMinusDstColor:        "ONE_MINUS_DST_COLOR",
	gl.SrcAlphaSaturate:        "SRC_ALPHA_SATURATE",
	gl.ConstantColor:           "CONSTANT_COLOR",
	gl.OneMinusConstantColor:   "ONE_MINUS_CONSTANT_COLOR",
	gl.StencilTest:             "STENCIL_TEST",
	gl.Never:                   "NEVER",
	gl.Less:                    "LESS",
	gl.Equal:                   "EQUAL",
	gl.Lequal:                  "LEQUAL",
	gl.Greater:                 "GREATER",
	gl.Notequal:                "NOTEQUAL",
	gl.Gequal:                  "GEQUAL",
	gl.Always:                  "ALWAYS",
	gl.Keep:                    "KEEP",
	gl.Replace:                 "REPLACE",
	gl.Incr:                    "INCR",
	gl.Decr:                    "DECR",
	gl.Invert:                  "INVERT",
	gl.IncrWrap:                "INCR_WRAP",
	gl.DecrWrap:                "DECR_WRAP",
	gl.Vendor:                  "VENDOR",
	gl.Renderer:                "RENDERER",
	gl.Version:                 "VERSION",
}

func (e Enum) String() string {
	if name, ok := enumNames[uint32(e)]; ok {
		return name
	}
	return fmt.Sprintf("0x%04X", uint32(e))
}

// Hex is a recorded bit mask argument. It prints in hexadecimal.
type Hex uint32

func (h Hex) String() string { return fmt.Sprintf("0x%02X", uint32(h)) }

// ClearMask is a recorded Clear argument. It prints as the set buffer bits.
type ClearMask uint32

func (m ClearMask) String() string {
	var parts []string
	if m&gl.ColorBufferBit != 0 {
		parts = append(parts, "COLOR_BUFFER_BIT")
	}
	if m&gl.DepthBufferBit != 0 {
		parts = append(parts, "DEPTH_BUFFER_BIT")
	}
	if m&gl.StencilBufferBit != 0 {
		parts = append(parts, "STENCIL_BUFFER_BIT")
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, "|")
}
