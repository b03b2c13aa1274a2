package red

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/red/gl"
)

// MapArray is an exclusive, writable view onto the memory of an array
// buffer. While it is open the buffer cannot be bound, uploaded to, mapped
// again or deleted. Close flushes the whole requested range and unmaps.
//
// Typical use:
//
//	defer buf.Bind().Unbind()
//	m, err := red.MapArrayForWrite[Vertex](buf, n)
//	if err != nil {
//	    return err
//	}
//	defer m.Close()
//	m.Data[0] = Vertex{...}
type MapArray[T any] struct {
	// Data aliases the mapped memory. It is nil after Close.
	Data []T

	buf     *Buffer
	size    int
	closed  bool
	onClose func()
}

// MapArrayForWrite maps the first n elements of b for writing. b must be an
// array buffer, bound, and already hold at least n elements of storage.
func MapArrayForWrite[T any](b *Buffer, n int) (*MapArray[T], error) {
	if b.kind != ArrayBufferKind {
		return nil, fmt.Errorf("%w: %v", ErrNotArrayBuffer, b.kind)
	}
	raw := b.checked()
	if b.gl.boundBuffer(gl.ArrayBuffer) != b.id {
		return nil, fmt.Errorf("%w: buffer %d", ErrBufferNotBound, b.id)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d elements", ErrInvalidMapRange, n)
	}
	var zero T
	size := n * int(unsafe.Sizeof(zero))
	ptr := raw.MapBufferRange(gl.ArrayBuffer, 0, size, gl.MapWriteBit|gl.MapFlushExplicitBit)
	if ptr == nil {
		return nil, fmt.Errorf("%w: %s", ErrMapFailed, gl.ErrorString(raw.GetError()))
	}
	b.mapped = true
	Logger().Debug("red: buffer mapped", "id", b.id, "bytes", size)
	return &MapArray[T]{
		Data: unsafe.Slice((*T)(ptr), n),
		buf:  b,
		size: size,
	}, nil
}

// Len returns the number of mapped elements.
func (m *MapArray[T]) Len() int { return len(m.Data) }

// Close flushes the full mapped range and unmaps the buffer. It runs once;
// later calls return nil.
func (m *MapArray[T]) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	m.Data = nil

	raw := m.buf.raw()
	raw.FlushMappedBufferRange(gl.ArrayBuffer, 0, m.size)
	ok := raw.UnmapBuffer(gl.ArrayBuffer)
	m.buf.mapped = false
	if m.onClose != nil {
		m.onClose()
	}
	if !ok {
		return fmt.Errorf("%w: buffer %d", ErrMapLost, m.buf.id)
	}
	return nil
}
