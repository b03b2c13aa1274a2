package red

import "github.com/gogpu/red/gl"

// VertexArray is an owned vertex array object. Attribute descriptions
// recorded while it is bound belong to it alone.
type VertexArray struct {
	resource
}

// NewVertexArray allocates a vertex array object.
func NewVertexArray(g *GL) (*VertexArray, error) {
	r, err := newResource(g, "vertex array",
		func(raw gl.Context) (uint32, error) { return raw.CreateVertexArray() },
		func(raw gl.Context, id uint32) { raw.DeleteVertexArray(id) },
	)
	if err != nil {
		return nil, err
	}
	va := &VertexArray{resource: r}
	trackLeak(va, &va.resource)
	return va, nil
}

// Bind makes va the active vertex array.
func (va *VertexArray) Bind() *Binding {
	va.raw().BindVertexArray(va.id)
	return newBinding(va.Unbind)
}

// Unbind clears the vertex array binding.
func (va *VertexArray) Unbind() {
	va.raw().BindVertexArray(0)
}

// Delete releases the vertex array. Later calls are no-ops.
func (va *VertexArray) Delete() {
	va.release()
}
