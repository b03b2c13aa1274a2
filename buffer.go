package red

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/red/gl"
)

// BufferKind selects the binding target of a buffer. It is fixed at
// creation; a buffer is never bound to the other target.
type BufferKind int

const (
	// ArrayBufferKind holds vertex data (GL_ARRAY_BUFFER).
	ArrayBufferKind BufferKind = iota + 1
	// ElementArrayBufferKind holds index data (GL_ELEMENT_ARRAY_BUFFER).
	ElementArrayBufferKind
)

// String returns the string representation of BufferKind.
func (k BufferKind) String() string {
	switch k {
	case ArrayBufferKind:
		return "ArrayBuffer"
	case ElementArrayBufferKind:
		return "ElementArrayBuffer"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

func (k BufferKind) target() uint32 {
	if k == ElementArrayBufferKind {
		return gl.ElementArrayBuffer
	}
	return gl.ArrayBuffer
}

func (k BufferKind) valid() bool {
	return k == ArrayBufferKind || k == ElementArrayBufferKind
}

// Buffer is an owned GPU buffer object.
type Buffer struct {
	resource
	kind   BufferKind
	mapped bool
}

// NewBuffer allocates a buffer of the given kind.
func NewBuffer(g *GL, kind BufferKind) (*Buffer, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBufferKind, kind)
	}
	r, err := newResource(g, "buffer",
		func(raw gl.Context) (uint32, error) { return raw.CreateBuffer() },
		func(raw gl.Context, id uint32) { raw.DeleteBuffer(id) },
	)
	if err != nil {
		return nil, err
	}
	b := &Buffer{resource: r, kind: kind}
	trackLeak(b, &b.resource)
	return b, nil
}

// NewArrayBuffer allocates a vertex data buffer.
func NewArrayBuffer(g *GL) (*Buffer, error) { return NewBuffer(g, ArrayBufferKind) }

// NewElementArrayBuffer allocates an index data buffer.
func NewElementArrayBuffer(g *GL) (*Buffer, error) { return NewBuffer(g, ElementArrayBufferKind) }

// Kind returns the buffer kind.
func (b *Buffer) Kind() BufferKind { return b.kind }

// Mapped reports whether a MapArray view is open on the buffer.
func (b *Buffer) Mapped() bool { return b.mapped }

func (b *Buffer) checked() gl.Context {
	raw := b.raw()
	if b.mapped {
		panic(fmt.Sprintf("%v: buffer %d is accessed while a mapped view is open", ErrBufferMapped, b.id))
	}
	return raw
}

// Bind makes b the occupant of its kind's binding target.
func (b *Buffer) Bind() *Binding {
	b.checked()
	b.gl.bindBuffer(b.kind.target(), b.id)
	return newBinding(b.Unbind)
}

// Unbind clears the kind's binding target.
func (b *Buffer) Unbind() {
	b.checked()
	b.gl.bindBuffer(b.kind.target(), 0)
}

// StaticDrawData uploads data for use many times without modification.
// The buffer must be bound.
func (b *Buffer) StaticDrawData(data []byte) {
	b.checked().BufferData(b.kind.target(), data, gl.StaticDraw)
}

// DynamicDrawData uploads data that will be replaced frequently.
// The buffer must be bound.
func (b *Buffer) DynamicDrawData(data []byte) {
	b.checked().BufferData(b.kind.target(), data, gl.DynamicDraw)
}

// Delete releases the buffer. Later calls are no-ops.
func (b *Buffer) Delete() {
	if b.mapped {
		panic(fmt.Sprintf("%v: buffer %d deleted while a mapped view is open", ErrBufferMapped, b.id))
	}
	if b.gl != nil && !b.Deleted() && b.gl.boundBuffer(b.kind.target()) == b.id {
		b.gl.core.bound[b.kind.target()] = 0
	}
	b.release()
}

// AsBytes returns the memory of s as a byte slice of len(s)*sizeof(T)
// bytes. The result aliases s.
func AsBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*int(unsafe.Sizeof(zero)))
}
