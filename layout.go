package red

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gogpu/gputypes"
)

// Field is one attribute of a vertex record.
type Field struct {
	// Name is matched against the program's attribute names.
	Name string
	// Format is the attribute's value type.
	Format gputypes.VertexFormat
	// Divisor, when non-zero, advances the attribute once per Divisor
	// instances instead of once per vertex.
	Divisor uint32
}

// Layout is the ordered attribute schema of a tightly packed vertex record.
// Field order is the memory order: reordering fields is a layout change.
type Layout struct {
	fields  []Field
	offsets []int
	infos   []formatInfo
	stride  int
}

// NewLayout validates fields and computes their offsets.
func NewLayout(fields ...Field) (Layout, error) {
	if len(fields) == 0 {
		return Layout{}, fmt.Errorf("%w: no fields", ErrInvalidLayout)
	}
	l := Layout{
		fields:  append([]Field(nil), fields...),
		offsets: make([]int, len(fields)),
		infos:   make([]formatInfo, len(fields)),
	}
	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return Layout{}, fmt.Errorf("%w: field %d has no name", ErrInvalidLayout, i)
		}
		if seen[f.Name] {
			return Layout{}, fmt.Errorf("%w: duplicate field %q", ErrInvalidLayout, f.Name)
		}
		seen[f.Name] = true
		info, err := lookupFormat(f.Format)
		if err != nil {
			return Layout{}, fmt.Errorf("field %q: %w", f.Name, err)
		}
		l.offsets[i] = l.stride
		l.infos[i] = info
		l.stride += info.size
	}
	return l, nil
}

// Fields returns a copy of the fields in declaration order.
func (l Layout) Fields() []Field { return append([]Field(nil), l.fields...) }

// Len returns the number of fields.
func (l Layout) Len() int { return len(l.fields) }

// Stride returns the record size in bytes.
func (l Layout) Stride() int { return l.stride }

// Offset returns the byte offset of field i within a record.
func (l Layout) Offset(i int) int { return l.offsets[i] }

// Apply describes every field to GL against program p, in declaration
// order. The target vertex array and the vertex buffer must be bound.
//
// Apply panics when a field name is not an active attribute of p.
func (l Layout) Apply(p *Program) {
	raw := p.raw()
	stride := int32(l.stride)
	for i, f := range l.fields {
		loc := raw.GetAttribLocation(p.id, f.Name)
		if loc < 0 {
			panic(fmt.Sprintf("red: vertex attribute %q is not found in program %d or is not active", f.Name, p.id))
		}
		l.infos[i].describe(raw, uint32(loc), stride, int32(l.offsets[i]))
		if f.Divisor != 0 {
			raw.VertexAttribDivisor(uint32(loc), f.Divisor)
		}
	}
}

var (
	attributeType = reflect.TypeFor[Attribute]()
	layoutCache   sync.Map // reflect.Type -> Layout
)

// LayoutOf derives the layout of the struct type T. Every field must be
// exported and implement Attribute; fields are described in declaration
// order. The attribute name and divisor come from the attr tag:
//
//	type Vertex struct {
//	    Pos    red.F32x2 `attr:"position"`
//	    Offset red.F32x2 `attr:"offset,divisor=1"`
//	    Color  red.U8x4Norm
//	}
//
// A field without a tag uses its Go name. T must have no padding.
func LayoutOf[T any]() (Layout, error) {
	t := reflect.TypeFor[T]()
	if l, ok := layoutCache.Load(t); ok {
		return l.(Layout), nil
	}
	l, err := deriveLayout(t)
	if err != nil {
		return Layout{}, err
	}
	layoutCache.Store(t, l)
	return l, nil
}

// MustLayoutOf is like LayoutOf but panics on error. It is intended for
// package-level variables.
func MustLayoutOf[T any]() Layout {
	l, err := LayoutOf[T]()
	if err != nil {
		panic(err)
	}
	return l
}

func deriveLayout(t reflect.Type) (Layout, error) {
	if t.Kind() != reflect.Struct {
		return Layout{}, fmt.Errorf("%w: %s is not a struct", ErrInvalidLayout, t)
	}
	if err := checkPacked(t); err != nil {
		return Layout{}, err
	}
	fields := make([]Field, 0, t.NumField())
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			return Layout{}, fmt.Errorf("%w: %s.%s is unexported", ErrInvalidLayout, t, sf.Name)
		}
		// Attribute values live inline in the record.
		if k := sf.Type.Kind(); k == reflect.Pointer || k == reflect.Interface {
			return Layout{}, fmt.Errorf("%w: %s.%s: %s is not stored inline", ErrInvalidLayout, t, sf.Name, sf.Type)
		}
		if !sf.Type.Implements(attributeType) {
			return Layout{}, fmt.Errorf("%w: %s.%s: %s does not implement red.Attribute", ErrInvalidLayout, t, sf.Name, sf.Type)
		}
		name, divisor, err := parseAttrTag(sf)
		if err != nil {
			return Layout{}, fmt.Errorf("%w: %s.%s: %w", ErrInvalidLayout, t, sf.Name, err)
		}
		format := reflect.Zero(sf.Type).Interface().(Attribute).VertexFormat()
		size, err := FormatSize(format)
		if err != nil {
			return Layout{}, fmt.Errorf("%s.%s: %w", t, sf.Name, err)
		}
		if uintptr(size) != sf.Type.Size() {
			return Layout{}, fmt.Errorf("%w: %s.%s is %d bytes but %v is %d", ErrInvalidLayout, t, sf.Name, sf.Type.Size(), format, size)
		}
		fields = append(fields, Field{Name: name, Format: format, Divisor: divisor})
	}
	return NewLayout(fields...)
}

// checkPacked rejects struct types with padding between or after fields.
func checkPacked(t reflect.Type) error {
	var next uintptr
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Offset != next {
			return fmt.Errorf("%w: %s has %d padding bytes before %s", ErrPaddedRecord, t, sf.Offset-next, sf.Name)
		}
		next = sf.Offset + sf.Type.Size()
	}
	if next != t.Size() {
		return fmt.Errorf("%w: %s has %d trailing padding bytes", ErrPaddedRecord, t, t.Size()-next)
	}
	return nil
}

func parseAttrTag(sf reflect.StructField) (string, uint32, error) {
	tag, ok := sf.Tag.Lookup("attr")
	if !ok {
		return sf.Name, 0, nil
	}
	if tag == "-" {
		return "", 0, errors.New(`attr:"-" cannot skip a field of a packed record`)
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = sf.Name
	}
	var divisor uint32
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		key, value, _ := strings.Cut(opt, "=")
		switch key {
		case "divisor":
			n, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return "", 0, fmt.Errorf("divisor attribute value must contain an integer: %q", value)
			}
			divisor = uint32(n)
		default:
			return "", 0, fmt.Errorf("unknown attr option %q", key)
		}
	}
	return name, divisor, nil
}
