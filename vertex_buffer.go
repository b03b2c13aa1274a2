package red

import (
	"fmt"
	"unsafe"
)

// VertexSource is a bindable vertex data buffer that can describe its
// attributes against a program. Program.SetLayout accepts several so that
// per-vertex and per-instance data can live in separate buffers.
type VertexSource interface {
	Bind() *Binding
	Unbind()
	DescribeAttributes(p *Program)
}

// VertexBuffer is an array buffer of records of type T together with the
// record layout.
type VertexBuffer[T any] struct {
	buf    *Buffer
	layout Layout
	size   int
}

var _ VertexSource = (*VertexBuffer[struct{ F32 }])(nil)

// NewVertexBuffer uploads data into a new array buffer, deriving the layout
// from T with LayoutOf. The buffer is left unbound.
func NewVertexBuffer[T any](g *GL, data []T) (*VertexBuffer[T], error) {
	layout, err := LayoutOf[T]()
	if err != nil {
		return nil, err
	}
	return NewVertexBufferWithLayout(g, layout, data)
}

// NewVertexBufferWithLayout uploads data with an explicit layout. The
// layout stride must equal the size of T.
func NewVertexBufferWithLayout[T any](g *GL, layout Layout, data []T) (*VertexBuffer[T], error) {
	var zero T
	if size := int(unsafe.Sizeof(zero)); layout.Stride() != size {
		return nil, fmt.Errorf("%w: stride %d does not match record size %d", ErrInvalidLayout, layout.Stride(), size)
	}
	buf, err := NewArrayBuffer(g)
	if err != nil {
		return nil, err
	}
	b := buf.Bind()
	buf.StaticDrawData(AsBytes(data))
	b.Unbind()
	return &VertexBuffer[T]{buf: buf, layout: layout, size: len(data)}, nil
}

// Bind binds the underlying array buffer.
func (vb *VertexBuffer[T]) Bind() *Binding { return vb.buf.Bind() }

// Unbind clears the array buffer binding.
func (vb *VertexBuffer[T]) Unbind() { vb.buf.Unbind() }

// DescribeAttributes applies the record layout against p. The buffer and
// the target vertex array must be bound.
func (vb *VertexBuffer[T]) DescribeAttributes(p *Program) { vb.layout.Apply(p) }

// Update replaces the contents, marking the storage for frequent updates.
func (vb *VertexBuffer[T]) Update(data []T) {
	defer vb.buf.Bind().Unbind()
	vb.buf.DynamicDrawData(AsBytes(data))
	vb.size = len(data)
}

// Map binds the buffer and opens a write view on its first n records.
// The buffer stays bound until the view is closed; Close unbinds it.
func (vb *VertexBuffer[T]) Map(n int) (*MapArray[T], error) {
	vb.buf.Bind()
	m, err := MapArrayForWrite[T](vb.buf, n)
	if err != nil {
		vb.buf.Unbind()
		return nil, err
	}
	m.onClose = vb.buf.Unbind
	return m, nil
}

// Len returns the number of records last uploaded.
func (vb *VertexBuffer[T]) Len() int { return vb.size }

// Layout returns the record layout.
func (vb *VertexBuffer[T]) Layout() Layout { return vb.layout }

// Buffer returns the underlying array buffer.
func (vb *VertexBuffer[T]) Buffer() *Buffer { return vb.buf }

// Delete releases the array buffer. Later calls are no-ops.
func (vb *VertexBuffer[T]) Delete() { vb.buf.Delete() }
