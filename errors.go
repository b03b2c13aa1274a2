package red

import (
	"errors"
	"fmt"
)

var (
	// ErrAllocation is returned when the context cannot allocate a resource.
	ErrAllocation = errors.New("red: resource allocation failed")

	// ErrDeleted is the panic value message for use of a deleted resource
	// or a released context handle.
	ErrDeleted = errors.New("red: resource has been deleted")

	// ErrInvalidBufferKind is returned for a BufferKind outside the closed set.
	ErrInvalidBufferKind = errors.New("red: invalid buffer kind")

	// ErrNotArrayBuffer is returned when mapping a buffer that is not an array buffer.
	ErrNotArrayBuffer = errors.New("red: buffer is not an array buffer")

	// ErrBufferNotBound is returned when mapping a buffer that is not bound.
	ErrBufferNotBound = errors.New("red: buffer is not bound")

	// ErrBufferMapped is the panic value message for touching a mapped buffer.
	ErrBufferMapped = errors.New("red: buffer is mapped")

	// ErrMapFailed is returned when the driver returns a null mapping.
	ErrMapFailed = errors.New("red: buffer map is null pointer")

	// ErrInvalidMapRange is returned when the requested element count is not positive.
	ErrInvalidMapRange = errors.New("red: invalid map range")

	// ErrMapLost is returned by MapArray.Close when the driver reports that
	// the buffer contents were corrupted while mapped.
	ErrMapLost = errors.New("red: mapped buffer contents lost")

	// ErrInvalidShaderKind is returned for a ShaderKind outside the closed set.
	ErrInvalidShaderKind = errors.New("red: invalid shader kind")

	// ErrTranslate is returned when WGSL cannot be translated to SPIR-V.
	ErrTranslate = errors.New("red: shader translation failed")

	// ErrUnsupportedFormat is returned for a vertex format without a GL mapping.
	ErrUnsupportedFormat = errors.New("red: unsupported vertex format")

	// ErrInvalidLayout is returned for malformed vertex layouts.
	ErrInvalidLayout = errors.New("red: invalid vertex layout")

	// ErrPaddedRecord is returned when a record type is not tightly packed.
	ErrPaddedRecord = errors.New("red: record type has padding")

	// ErrInvalidTextureSize is returned for non-positive texture dimensions.
	ErrInvalidTextureSize = errors.New("red: invalid texture size")

	// ErrPixelDataSize is returned when pixel data does not match the dimensions.
	ErrPixelDataSize = errors.New("red: pixel data size mismatch")

	// ErrUnsupportedTextureFormat is returned for texture formats without a GL mapping.
	ErrUnsupportedTextureFormat = errors.New("red: unsupported texture format")
)

// CompileError carries the compiler diagnostic of a failed shader.
type CompileError struct {
	Kind ShaderKind
	Log  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("red: %s shader compile failed: %s", e.Kind, e.Log)
}

// LinkError carries the linker diagnostic of a failed program.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "red: program link failed: " + e.Log
}
