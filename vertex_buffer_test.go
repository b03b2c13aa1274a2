package red

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/red/gl"
)

func TestNewVertexBuffer(t *testing.T) {
	g, rec := newTestGL(t)
	data := []testVertex{
		{Pos: F32x2{1, 2}, Color: U8x4Norm{1, 2, 3, 4}},
		{Pos: F32x2{3, 4}, Color: U8x4Norm{5, 6, 7, 8}},
	}
	vb, err := NewVertexBuffer(g, data)
	if err != nil {
		t.Fatalf("NewVertexBuffer() = %v", err)
	}
	defer vb.Delete()

	if vb.Len() != 2 {
		t.Errorf("Len() = %d, want 2", vb.Len())
	}
	if vb.Layout().Stride() != 12 {
		t.Errorf("Stride() = %d, want 12", vb.Layout().Stride())
	}
	stored, _ := rec.Buffer(vb.Buffer().ID())
	if string(stored.Data) != string(AsBytes(data)) || stored.Usage != gl.StaticDraw {
		t.Error("vertex data not uploaded as static draw")
	}
	if rec.Bound(gl.ArrayBuffer) != 0 {
		t.Error("NewVertexBuffer left the buffer bound")
	}

	vb.Update(data[:1])
	if vb.Len() != 1 {
		t.Errorf("Len() after Update = %d, want 1", vb.Len())
	}
	if stored, _ := rec.Buffer(vb.Buffer().ID()); stored.Usage != gl.DynamicDraw || len(stored.Data) != 12 {
		t.Error("Update did not replace the contents as dynamic draw")
	}
}

func TestNewVertexBufferWithLayoutStride(t *testing.T) {
	g, rec := newTestGL(t)
	l, err := NewLayout(Field{Name: "position", Format: gputypes.VertexFormatFloat32x3})
	if err != nil {
		t.Fatal(err)
	}
	_, err = NewVertexBufferWithLayout(g, l, []F32x2{{}})
	if !errors.Is(err, ErrInvalidLayout) {
		t.Fatalf("error = %v, want ErrInvalidLayout", err)
	}
	if rec.Count("CreateBuffer") != 0 {
		t.Error("mismatched layout allocated a buffer")
	}
}

func TestNewVertexBufferRejectsUnlayoutable(t *testing.T) {
	g, _ := newTestGL(t)
	if _, err := NewVertexBuffer(g, []float32{1, 2}); !errors.Is(err, ErrInvalidLayout) {
		t.Errorf("error = %v, want ErrInvalidLayout", err)
	}
}

func TestIndexBuffer(t *testing.T) {
	g, rec := newTestGL(t)
	ib, err := NewIndexBuffer(g, []uint16{0, 1, 2, 2, 3, 0})
	if err != nil {
		t.Fatalf("NewIndexBuffer() = %v", err)
	}
	defer ib.Delete()

	if ib.Len() != 6 {
		t.Errorf("Len() = %d, want 6", ib.Len())
	}
	if ib.Format() != gputypes.IndexFormatUint16 {
		t.Errorf("Format() = %v, want Uint16", ib.Format())
	}
	if ib.Buffer().Kind() != ElementArrayBufferKind {
		t.Errorf("Kind() = %v, want ElementArrayBuffer", ib.Buffer().Kind())
	}
	uploads := rec.Filter("BufferData")
	if len(uploads) != 1 || uploads[0] != "BufferData(ELEMENT_ARRAY_BUFFER, 12, STATIC_DRAW)" {
		t.Errorf("uploads = %q", uploads)
	}

	ib.Update([]uint16{0, 1, 2})
	if ib.Len() != 3 {
		t.Errorf("Len() after Update = %d, want 3", ib.Len())
	}
	if rec.Bound(gl.ElementArrayBuffer) != 0 {
		t.Error("index buffer left bound")
	}
}

func TestVertexArray(t *testing.T) {
	g, rec := newTestGL(t)
	vao, err := NewVertexArray(g)
	if err != nil {
		t.Fatalf("NewVertexArray() = %v", err)
	}

	b := vao.Bind()
	if rec.BoundVertexArray() != vao.ID() {
		t.Error("Bind() did not bind the vertex array")
	}
	b.Unbind()
	b.Unbind()
	want := []string{
		"CreateVertexArray()",
		fmt.Sprintf("BindVertexArray(%d)", vao.ID()),
		"BindVertexArray(0)",
	}
	if got := rec.Names(); !slices.Equal(got, want) {
		t.Errorf("calls = %q, want %q", got, want)
	}

	vao.Delete()
	vao.Delete()
	if rec.Count("DeleteVertexArray") != 1 {
		t.Error("vertex array deleted more than once")
	}
	mustPanic(t, "resource has been deleted", func() { vao.Bind() })
}

func TestVertexArrayAllocationFailure(t *testing.T) {
	g, rec := newTestGL(t)
	rec.FailAllocation("vertex array", nil)
	if _, err := NewVertexArray(g); !errors.Is(err, ErrAllocation) {
		t.Errorf("error = %v, want ErrAllocation", err)
	}
}
