// Package gl defines the raw OpenGL call surface used by red.
//
// The Context interface lists exactly the entry points red issues. It is
// implemented by backend/native (the system GL library loaded at runtime)
// and by gl/gltest (a recording fake used in tests). All methods act on the
// context that is current on the calling thread.
package gl

import (
	"fmt"
	"unsafe"
)

const (
	// NoError is returned by GetError when no error has been recorded.
	NoError = 0
	// InvalidEnum is recorded when an enum argument is out of range.
	InvalidEnum = 0x0500
	// InvalidValue is recorded when a numeric argument is out of range.
	InvalidValue = 0x0501
	// InvalidOperation is recorded when the operation is not allowed in the current state.
	InvalidOperation = 0x0502
	// OutOfMemory is recorded when there is not enough memory left to execute the command.
	OutOfMemory = 0x0505

	// Vendor returns the company responsible for the GL implementation.
	Vendor = 0x1F00
	// Renderer returns the name of the renderer.
	Renderer = 0x1F01
	// Version returns the GL version string of the current context.
	Version = 0x1F02

	// ArrayBuffer is the target for vertex buffer objects.
	ArrayBuffer = 0x8892
	// ElementArrayBuffer is the target for index buffer objects.
	ElementArrayBuffer = 0x8893
	// StaticDraw indicates that buffer data will be modified once and used many times.
	StaticDraw = 0x88E4
	// DynamicDraw indicates that buffer data will be modified repeatedly and used many times.
	DynamicDraw = 0x88E8

	// MapWriteBit requests a writable mapping.
	MapWriteBit = 0x0002
	// MapInvalidateRangeBit allows the previous contents of the range to be discarded.
	MapInvalidateRangeBit = 0x0004
	// MapFlushExplicitBit requires modified ranges to be flushed with FlushMappedBufferRange.
	MapFlushExplicitBit = 0x0010

	// Shader types
	VertexShader   = 0x8B31
	FragmentShader = 0x8B30

	// Shader/Program status
	CompileStatus = 0x8B81
	LinkStatus    = 0x8B82
	InfoLogLength = 0x8B84

	// ShaderBinaryFormatSPIRV is the binary format accepted by ShaderBinary for SPIR-V modules.
	ShaderBinaryFormatSPIRV = 0x9551

	// Texture2D is the texture target for 2D textures.
	Texture2D = 0x0DE1
	// Texture0 is the first texture unit.
	Texture0 = 0x84C0

	// TextureWrapS selects the wrapping function for texture coordinate S.
	TextureWrapS = 0x2802
	// TextureWrapT selects the wrapping function for texture coordinate T.
	TextureWrapT = 0x2803
	// TextureMinFilter selects the texture minification filter.
	TextureMinFilter = 0x2801
	// TextureMagFilter selects the texture magnification filter.
	TextureMagFilter = 0x2800

	// Nearest selects nearest-neighbor filtering.
	Nearest = 0x2600
	// Linear selects linear filtering.
	Linear = 0x2601

	// ClampToEdge clamps texture coordinates to the edge of the texture.
	ClampToEdge = 0x812F
	// Repeat tiles the texture.
	Repeat = 0x2901
	// MirroredRepeat tiles the texture, mirroring every other tile.
	MirroredRepeat = 0x8370

	// UnpackAlignment specifies the alignment requirements for pixel data
	// when uploading textures (PixelStorei).
	UnpackAlignment = 0x0CF5

	// RGBA is a pixel format representing red/green/blue/alpha.
	RGBA = 0x1908
	// RGBA8 is the sized internal format for 8-bit RGBA.
	RGBA8 = 0x8058
	// Red is a pixel format representing red only (OpenGL 3.0+).
	Red = 0x1903
	// R8 is an internal texture format for 8-bit red channel (OpenGL 3.0+).
	R8 = 0x8229

	// Data types
	Byte          = 0x1400
	UnsignedByte  = 0x1401
	Short         = 0x1402
	UnsignedShort = 0x1403
	Int           = 0x1404
	UnsignedInt   = 0x1405
	Float         = 0x1406

	// Triangles is a primitive type for drawing triangles.
	Triangles = 0x0004

	// Blend enables blending of fragment colors.
	Blend = 0x0BE2

	// Blend factors
	Zero                  = 0
	One                   = 1
	SrcColor              = 0x0300
	OneMinusSrcColor      = 0x0301
	SrcAlpha              = 0x0302
	OneMinusSrcAlpha      = 0x0303
	DstAlpha              = 0x0304
	OneMinusDstAlpha      = 0x0305
	DstColor              = 0x0306
	OneMinusDstColor      = 0x0307
	SrcAlphaSaturate      = 0x0308
	ConstantColor         = 0x8001
	OneMinusConstantColor = 0x8002

	// StencilTest enables the stencil test.
	StencilTest = 0x0B90

	// Comparison functions
	Never    = 0x0200
	Less     = 0x0201
	Equal    = 0x0202
	Lequal   = 0x0203
	Greater  = 0x0204
	Notequal = 0x0205
	Gequal   = 0x0206
	Always   = 0x0207

	// Stencil operations (Zero is shared with the blend factors).
	Keep     = 0x1E00
	Replace  = 0x1E01
	Incr     = 0x1E02
	Decr     = 0x1E03
	Invert   = 0x150A
	IncrWrap = 0x8507
	DecrWrap = 0x8508

	// Clear masks
	DepthBufferBit   = 0x00000100
	StencilBufferBit = 0x00000400
	ColorBufferBit   = 0x00004000
)

// Context describes the subset of OpenGL entry points used by red.
//
// Slices stand in for pointer+length pairs. Create* methods fold glGen* and
// the zero-name check together and report failure as an error.
type Context interface {
	GetError() uint32
	GetString(name uint32) string

	Enable(cap uint32)
	Disable(cap uint32)
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	ClearStencil(s int32)
	Clear(mask uint32)
	BlendFunc(sfactor, dfactor uint32)
	ColorMask(r, g, b, a bool)
	StencilMask(mask uint32)
	StencilFunc(fn uint32, ref int32, mask uint32)
	StencilOp(fail, zfail, zpass uint32)

	// Buffer operations
	CreateBuffer() (uint32, error)
	DeleteBuffer(buffer uint32)
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, data []byte, usage uint32)
	// MapBufferRange returns nil when the mapping cannot be established.
	MapBufferRange(target uint32, offset, length int, access uint32) unsafe.Pointer
	FlushMappedBufferRange(target uint32, offset, length int)
	UnmapBuffer(target uint32) bool

	// Vertex Array Object operations
	CreateVertexArray() (uint32, error)
	DeleteVertexArray(array uint32)
	BindVertexArray(array uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride, offset int32)
	VertexAttribIPointer(index uint32, size int32, xtype uint32, stride, offset int32)
	VertexAttribDivisor(index, divisor uint32)

	// Shader operations
	CreateShader(xtype uint32) (uint32, error)
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderBinary(shader uint32, format uint32, binary []byte)
	SpecializeShader(shader uint32, entryPoint string)
	GetShaderiv(shader, pname uint32) int32
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	// Program operations
	CreateProgram() (uint32, error)
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program, pname uint32) int32
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// GetAttribLocation returns -1 when name is not an active attribute.
	GetAttribLocation(program uint32, name string) int32
	// GetUniformLocation returns -1 when name is not an active uniform.
	GetUniformLocation(program uint32, name string) int32
	Uniform1f(location int32, v0 float32)
	Uniform2f(location int32, v0, v1 float32)
	Uniform3f(location int32, v0, v1, v2 float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	Uniform1i(location int32, v0 int32)
	UniformMatrix4fv(location int32, transpose bool, value []float32)

	// Texture operations
	CreateTexture() (uint32, error)
	DeleteTexture(texture uint32)
	ActiveTexture(unit uint32)
	BindTexture(target, texture uint32)
	// TexImage2D allocates storage without uploading when pixels is nil.
	TexImage2D(target uint32, level, internalformat, width, height int32, format, xtype uint32, pixels []byte)
	TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pixels []byte)
	TexParameteri(target, pname uint32, param int32)
	PixelStorei(pname uint32, param int32)

	// Drawing
	DrawElements(mode uint32, count int32, xtype uint32, offset int)
	DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, instances int32)
}

// ErrorString returns a readable name for a GetError code.
func ErrorString(code uint32) string {
	switch code {
	case NoError:
		return "GL_NO_ERROR"
	case InvalidEnum:
		return "GL_INVALID_ENUM"
	case InvalidValue:
		return "GL_INVALID_VALUE"
	case InvalidOperation:
		return "GL_INVALID_OPERATION"
	case OutOfMemory:
		return "GL_OUT_OF_MEMORY"
	default:
		return fmt.Sprintf("GL_ERROR(0x%04X)", code)
	}
}
