package red

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"testing"
	"unsafe"

	"github.com/gogpu/gputypes"
)

func TestNewLayoutOffsets(t *testing.T) {
	l, err := NewLayout(
		Field{Name: "position", Format: gputypes.VertexFormatFloat32x2},
		Field{Name: "color", Format: gputypes.VertexFormatUnorm8x4},
		Field{Name: "weight", Format: gputypes.VertexFormatFloat32},
		Field{Name: "bone", Format: gputypes.VertexFormatSint32x4},
	)
	if err != nil {
		t.Fatalf("NewLayout() = %v", err)
	}

	wantOffsets := []int{0, 8, 12, 16}
	for i, want := range wantOffsets {
		if got := l.Offset(i); got != want {
			t.Errorf("Offset(%d) = %d, want %d", i, got, want)
		}
	}
	if got := l.Stride(); got != 32 {
		t.Errorf("Stride() = %d, want 32", got)
	}
	if got := l.Len(); got != 4 {
		t.Errorf("Len() = %d, want 4", got)
	}
}

func TestAttributeFormatSizes(t *testing.T) {
	tests := []struct {
		attr   Attribute
		format gputypes.VertexFormat
		size   uintptr
	}{
		{F32(0), gputypes.VertexFormatFloat32, unsafe.Sizeof(F32(0))},
		{F32x2{}, gputypes.VertexFormatFloat32x2, unsafe.Sizeof(F32x2{})},
		{F32x3{}, gputypes.VertexFormatFloat32x3, unsafe.Sizeof(F32x3{})},
		{F32x4{}, gputypes.VertexFormatFloat32x4, unsafe.Sizeof(F32x4{})},
		{I32(0), gputypes.VertexFormatSint32, unsafe.Sizeof(I32(0))},
		{I32x2{}, gputypes.VertexFormatSint32x2, unsafe.Sizeof(I32x2{})},
		{I32x3{}, gputypes.VertexFormatSint32x3, unsafe.Sizeof(I32x3{})},
		{I32x4{}, gputypes.VertexFormatSint32x4, unsafe.Sizeof(I32x4{})},
		{U8x4Norm{}, gputypes.VertexFormatUnorm8x4, unsafe.Sizeof(U8x4Norm{})},
	}

	fields := make([]Field, 0, len(tests))
	for i, tt := range tests {
		if got := tt.attr.VertexFormat(); got != tt.format {
			t.Errorf("%T.VertexFormat() = %v, want %v", tt.attr, got, tt.format)
		}
		size, err := FormatSize(tt.format)
		if err != nil {
			t.Fatalf("FormatSize(%v) = %v", tt.format, err)
		}
		if uintptr(size) != tt.size {
			t.Errorf("FormatSize(%v) = %d, %T is %d bytes", tt.format, size, tt.attr, tt.size)
		}
		fields = append(fields, Field{Name: fmt.Sprintf("a%d", i), Format: tt.format})
	}

	l, err := NewLayout(fields...)
	if err != nil {
		t.Fatalf("NewLayout() = %v", err)
	}
	var offset int
	for i, tt := range tests {
		if got := l.Offset(i); got != offset {
			t.Errorf("Offset(%d) for %T = %d, want %d", i, tt.attr, got, offset)
		}
		offset += int(tt.size)
	}
	if got := l.Stride(); got != offset {
		t.Errorf("Stride() = %d, want %d", got, offset)
	}
}

func TestNewLayoutUint32Offsets(t *testing.T) {
	l, err := NewLayout(
		Field{Name: "u1", Format: gputypes.VertexFormatUint32},
		Field{Name: "u2", Format: gputypes.VertexFormatUint32x2},
		Field{Name: "u3", Format: gputypes.VertexFormatUint32x3},
		Field{Name: "u4", Format: gputypes.VertexFormatUint32x4},
	)
	if err != nil {
		t.Fatalf("NewLayout() = %v", err)
	}
	for i, want := range []int{0, 4, 12, 24} {
		if got := l.Offset(i); got != want {
			t.Errorf("Offset(%d) = %d, want %d", i, got, want)
		}
	}
	if got := l.Stride(); got != 40 {
		t.Errorf("Stride() = %d, want 40", got)
	}
}

// everyAttribute holds one field of each Attribute type.
type everyAttribute struct {
	A F32
	B F32x2
	C F32x3
	D F32x4
	E I32
	F I32x2
	G I32x3
	H I32x4
	U U8x4Norm
}

func TestLayoutOfEveryAttribute(t *testing.T) {
	l, err := LayoutOf[everyAttribute]()
	if err != nil {
		t.Fatalf("LayoutOf() = %v", err)
	}
	rt := reflect.TypeFor[everyAttribute]()
	if l.Len() != rt.NumField() {
		t.Fatalf("Len() = %d, want %d", l.Len(), rt.NumField())
	}
	for i := range rt.NumField() {
		if got, want := l.Offset(i), int(rt.Field(i).Offset); got != want {
			t.Errorf("Offset(%d) for %s = %d, want %d", i, rt.Field(i).Name, got, want)
		}
	}
	if got, want := l.Stride(), int(unsafe.Sizeof(everyAttribute{})); got != want {
		t.Errorf("Stride() = %d, want %d", got, want)
	}
	if got := l.Fields()[8].Format; got != gputypes.VertexFormatUnorm8x4 {
		t.Errorf("U8x4Norm field format = %v, want Unorm8x4", got)
	}
}

func TestNewLayoutErrors(t *testing.T) {
	f32 := gputypes.VertexFormatFloat32
	tests := []struct {
		name   string
		fields []Field
		want   error
	}{
		{"empty", nil, ErrInvalidLayout},
		{"unnamed", []Field{{Format: f32}}, ErrInvalidLayout},
		{"duplicate", []Field{{Name: "a", Format: f32}, {Name: "a", Format: f32}}, ErrInvalidLayout},
		{"unsupported format", []Field{{Name: "h", Format: gputypes.VertexFormatFloat16x2}}, ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLayout(tt.fields...)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewLayout() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLayoutFieldsIsCopy(t *testing.T) {
	l, err := NewLayout(Field{Name: "a", Format: gputypes.VertexFormatFloat32})
	if err != nil {
		t.Fatal(err)
	}
	f := l.Fields()
	f[0].Name = "changed"
	if l.Fields()[0].Name != "a" {
		t.Error("Fields() exposes internal storage")
	}
}

type instanceRecord struct {
	Pos    F32x2 `attr:"position"`
	Offset F32x2 `attr:"offset,divisor=1"`
	Tint   U8x4Norm
	ID     I32 `attr:",divisor=2"`
}

func TestLayoutOf(t *testing.T) {
	l, err := LayoutOf[instanceRecord]()
	if err != nil {
		t.Fatalf("LayoutOf() = %v", err)
	}
	want := []Field{
		{Name: "position", Format: gputypes.VertexFormatFloat32x2},
		{Name: "offset", Format: gputypes.VertexFormatFloat32x2, Divisor: 1},
		{Name: "Tint", Format: gputypes.VertexFormatUnorm8x4},
		{Name: "ID", Format: gputypes.VertexFormatSint32, Divisor: 2},
	}
	got := l.Fields()
	if len(got) != len(want) {
		t.Fatalf("LayoutOf() has %d fields, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if l.Stride() != 24 {
		t.Errorf("Stride() = %d, want 24", l.Stride())
	}
}

// byteAttr is an Attribute narrower than its format, used to provoke padding.
type byteAttr uint8

func (byteAttr) VertexFormat() gputypes.VertexFormat { return gputypes.VertexFormatFloat32 }

// halfAttr reports a format with no GL mapping.
type halfAttr [2]uint16

func (halfAttr) VertexFormat() gputypes.VertexFormat { return gputypes.VertexFormatFloat16x2 }

func TestLayoutOfErrors(t *testing.T) {
	tests := []struct {
		name   string
		derive func() (Layout, error)
		want   error
	}{
		{"not a struct", LayoutOf[F32x2], ErrInvalidLayout},
		{"plain float field", LayoutOf[struct{ X float32 }], ErrInvalidLayout},
		{"unexported field", LayoutOf[struct{ x F32 }], ErrInvalidLayout},
		{"pointer field", LayoutOf[struct{ P *F32x2 }], ErrInvalidLayout},
		{"interface field", LayoutOf[struct{ A Attribute }], ErrInvalidLayout},
		{"pointer after value", LayoutOf[struct {
			A F32x2
			P *F32x2
		}], ErrInvalidLayout},
		{"padding", LayoutOf[struct {
			A byteAttr
			B F32
		}], ErrPaddedRecord},
		{"size mismatch", LayoutOf[struct {
			A byteAttr
			B byteAttr
			C byteAttr
			D byteAttr
		}], ErrInvalidLayout},
		{"skip tag", LayoutOf[struct {
			A F32 `attr:"-"`
		}], ErrInvalidLayout},
		{"bad divisor", LayoutOf[struct {
			A F32 `attr:"a,divisor=x"`
		}], ErrInvalidLayout},
		{"unknown option", LayoutOf[struct {
			A F32 `attr:"a,stride=4"`
		}], ErrInvalidLayout},
		{"duplicate name", LayoutOf[struct {
			A F32 `attr:"v"`
			B F32 `attr:"v"`
		}], ErrInvalidLayout},
		{"unsupported format", LayoutOf[struct{ H halfAttr }], ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.derive()
			if !errors.Is(err, tt.want) {
				t.Errorf("LayoutOf() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMustLayoutOfPanics(t *testing.T) {
	mustPanic(t, "red: invalid vertex layout", func() { MustLayoutOf[int]() })
}

func TestLayoutOfCached(t *testing.T) {
	a := MustLayoutOf[testVertex]()
	b := MustLayoutOf[testVertex]()
	if a.Stride() != b.Stride() || a.Len() != b.Len() {
		t.Error("cached layout differs from first derivation")
	}
}

func TestLayoutApply(t *testing.T) {
	const vertex = `#version 330 core
layout(location = 0) in vec2 position;
layout(location = 3) in vec2 offset;
layout(location = 5) in vec4 Tint;
layout(location = 6) in int ID;
void main() {
	gl_Position = vec4(position + offset, 0.0, 1.0);
}
`
	const fragment = `#version 330 core
out vec4 frag;
void main() { frag = vec4(1.0); }
`
	g, rec := newTestGL(t)
	p := newTestProgram(t, g, vertex, fragment)
	rec.Reset()

	MustLayoutOf[instanceRecord]().Apply(p)

	want := []string{
		"EnableVertexAttribArray(0)",
		"VertexAttribPointer(0, 2, FLOAT, false, 24, 0)",
		"EnableVertexAttribArray(3)",
		"VertexAttribPointer(3, 2, FLOAT, false, 24, 8)",
		"VertexAttribDivisor(3, 1)",
		"EnableVertexAttribArray(5)",
		"VertexAttribPointer(5, 4, UNSIGNED_BYTE, true, 24, 16)",
		"EnableVertexAttribArray(6)",
		"VertexAttribIPointer(6, 1, INT, 24, 20)",
		"VertexAttribDivisor(6, 2)",
	}
	got := rec.Filter("EnableVertexAttribArray", "VertexAttribPointer", "VertexAttribIPointer", "VertexAttribDivisor")
	if !slices.Equal(got, want) {
		t.Errorf("attribute calls:\n got %q\nwant %q", got, want)
	}
}

func TestLayoutApplyMissingAttribute(t *testing.T) {
	g, _ := newTestGL(t)
	p := newTestProgram(t, g, testVertexSource, testFragmentSource)
	l, err := NewLayout(Field{Name: "missing", Format: gputypes.VertexFormatFloat32})
	if err != nil {
		t.Fatal(err)
	}
	mustPanic(t, `vertex attribute "missing" is not found`, func() { l.Apply(p) })
}
