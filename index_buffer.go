package red

import "github.com/gogpu/gputypes"

// IndexBuffer is an element buffer of 16-bit indices together with the
// element count a draw call needs.
type IndexBuffer struct {
	buf  *Buffer
	size int
}

// NewIndexBuffer uploads indices into a new element buffer. The buffer is
// left unbound.
func NewIndexBuffer(g *GL, indices []uint16) (*IndexBuffer, error) {
	buf, err := NewElementArrayBuffer(g)
	if err != nil {
		return nil, err
	}
	b := buf.Bind()
	buf.StaticDrawData(AsBytes(indices))
	b.Unbind()
	return &IndexBuffer{buf: buf, size: len(indices)}, nil
}

// Bind binds the underlying element buffer.
func (ib *IndexBuffer) Bind() *Binding { return ib.buf.Bind() }

// Len returns the number of indices.
func (ib *IndexBuffer) Len() int { return ib.size }

// Format returns the index element format.
func (ib *IndexBuffer) Format() gputypes.IndexFormat { return gputypes.IndexFormatUint16 }

// Buffer returns the underlying element buffer.
func (ib *IndexBuffer) Buffer() *Buffer { return ib.buf }

// Update replaces the indices, marking the storage for frequent updates.
func (ib *IndexBuffer) Update(indices []uint16) {
	defer ib.buf.Bind().Unbind()
	ib.buf.DynamicDrawData(AsBytes(indices))
	ib.size = len(indices)
}

// Delete releases the element buffer. Later calls are no-ops.
func (ib *IndexBuffer) Delete() { ib.buf.Delete() }
