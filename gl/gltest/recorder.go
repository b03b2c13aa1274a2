// Package gltest provides a recording gl.Context for tests.
//
// Recorder logs every call it receives and simulates enough GL state for
// red's resource, layout and draw-state code to be exercised without a GPU:
// handle allocation, per-target binding slots, buffer storage and explicit
// flush mapping, shader compile/link with attribute and uniform tables parsed
// from GLSL declarations, and texture storage.
package gltest

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/gogpu/red/gl"
)

// Call is one recorded GL entry point invocation.
type Call struct {
	Name string
	Args []any
}

// String formats the call as Name(arg, arg, ...).
func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Buffer is the simulated state of a buffer object.
type Buffer struct {
	Data    []byte
	Usage   uint32
	Uploads int
	Deleted bool
}

// Texture is the simulated state of a texture object.
type Texture struct {
	Width, Height  int32
	InternalFormat int32
	Pixels         []byte
	Params         map[uint32]int32
	Deleted        bool
}

type shader struct {
	kind     uint32
	source   string
	spirv    []byte
	compiled bool
	log      string
	deleted  bool
}

type program struct {
	attached map[uint32]bool
	linked   bool
	log      string
	attribs  map[string]int32
	uniforms map[string]int32
	values   map[int32]any
	deleted  bool
}

type mapping struct {
	buffer  uint32
	offset  int
	mem     []byte
	flushed [][2]int
}

// Recorder is a fake gl.Context. The zero value is not usable; call New.
type Recorder struct {
	calls []Call

	nextID   uint32
	pending  uint32
	failures map[string]error

	// MapFails makes MapBufferRange return nil and record GL_INVALID_OPERATION.
	MapFails bool

	buffers  map[uint32]*Buffer
	vaos     map[uint32]bool
	shaders  map[uint32]*shader
	programs map[uint32]*program
	textures map[uint32]*Texture

	bound      map[uint32]uint32
	vao        uint32
	current    uint32
	activeUnit uint32
	mapped     map[uint32]*mapping

	unmaps int
}

var _ gl.Context = (*Recorder)(nil)

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{
		failures: make(map[string]error),
		buffers:  make(map[uint32]*Buffer),
		vaos:     make(map[uint32]bool),
		shaders:  make(map[uint32]*shader),
		programs: make(map[uint32]*program),
		textures: make(map[uint32]*Texture),
		bound:    make(map[uint32]uint32),
		mapped:   make(map[uint32]*mapping),
	}
}

// FailAllocation makes the next Create call for kind ("buffer",
// "vertex array", "shader", "program" or "texture") fail with err.
func (r *Recorder) FailAllocation(kind string, err error) {
	r.failures[kind] = err
}

// Calls returns every recorded call in order.
func (r *Recorder) Calls() []Call {
	return append([]Call(nil), r.calls...)
}

// Names returns the recorded calls formatted with Call.String.
func (r *Recorder) Names() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.String()
	}
	return out
}

// Filter returns the formatted calls whose entry point is one of names.
func (r *Recorder) Filter(names ...string) []string {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []string
	for _, c := range r.calls {
		if want[c.Name] {
			out = append(out, c.String())
		}
	}
	return out
}

// Count returns how many times the entry point name was called.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Reset forgets the recorded calls but keeps the simulated state.
func (r *Recorder) Reset() {
	r.calls = nil
}

// Buffer returns the simulated buffer with the given name.
func (r *Recorder) Buffer(id uint32) (*Buffer, bool) {
	b, ok := r.buffers[id]
	return b, ok
}

// Texture returns the simulated texture with the given name.
func (r *Recorder) Texture(id uint32) (*Texture, bool) {
	t, ok := r.textures[id]
	return t, ok
}

// Bound returns the buffer currently bound to target.
func (r *Recorder) Bound(target uint32) uint32 { return r.bound[target] }

// BoundVertexArray returns the currently bound vertex array.
func (r *Recorder) BoundVertexArray() uint32 { return r.vao }

// CurrentProgram returns the program installed by UseProgram.
func (r *Recorder) CurrentProgram() uint32 { return r.current }

// Unmaps returns how many successful UnmapBuffer calls were made.
func (r *Recorder) Unmaps() int { return r.unmaps }

// Flushed returns the [offset, offset+length) ranges flushed for the
// current or most recent mapping of target.
func (r *Recorder) Flushed(target uint32) [][2]int {
	if m, ok := r.mapped[target]; ok {
		return append([][2]int(nil), m.flushed...)
	}
	return nil
}

// Uniform returns the last value uploaded to the named uniform of program.
func (r *Recorder) Uniform(prog uint32, name string) (any, bool) {
	p, ok := r.programs[prog]
	if !ok {
		return nil, false
	}
	loc, ok := p.uniforms[name]
	if !ok {
		return nil, false
	}
	v, ok := p.values[loc]
	return v, ok
}

// Attributes returns the attribute location table of a linked program.
func (r *Recorder) Attributes(prog uint32) map[string]int32 {
	p, ok := r.programs[prog]
	if !ok {
		return nil
	}
	out := make(map[string]int32, len(p.attribs))
	for k, v := range p.attribs {
		out[k] = v
	}
	return out
}

// Live returns the number of objects of each kind not yet deleted.
func (r *Recorder) Live() map[string]int {
	live := map[string]int{}
	for _, b := range r.buffers {
		if !b.Deleted {
			live["buffer"]++
		}
	}
	for _, ok := range r.vaos {
		if ok {
			live["vertex array"]++
		}
	}
	for _, s := range r.shaders {
		if !s.deleted {
			live["shader"]++
		}
	}
	for _, p := range r.programs {
		if !p.deleted {
			live["program"]++
		}
	}
	for _, t := range r.textures {
		if !t.Deleted {
			live["texture"]++
		}
	}
	return live
}

func (r *Recorder) record(name string, args ...any) {
	r.calls = append(r.calls, Call{Name: name, Args: args})
}

func (r *Recorder) setError(code uint32) {
	if r.pending == gl.NoError {
		r.pending = code
	}
}

func (r *Recorder) alloc(kind string) (uint32, error) {
	if err, ok := r.failures[kind]; ok {
		delete(r.failures, kind)
		if err == nil {
			err = errors.New("gltest: allocation failed")
		}
		r.setError(gl.OutOfMemory)
		return 0, err
	}
	r.nextID++
	return r.nextID, nil
}

// GetError returns and clears the pending error code.
func (r *Recorder) GetError() uint32 {
	r.record("GetError")
	code := r.pending
	r.pending = gl.NoError
	return code
}

func (r *Recorder) GetString(name uint32) string {
	r.record("GetString", Enum(name))
	switch name {
	case gl.Vendor:
		return "gltest"
	case gl.Renderer:
		return "gltest recorder"
	case gl.Version:
		return "3.3 gltest"
	}
	return ""
}

func (r *Recorder) Enable(c uint32)  { r.record("Enable", Enum(c)) }
func (r *Recorder) Disable(c uint32) { r.record("Disable", Enum(c)) }

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record("Viewport", x, y, width, height)
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor", red, green, blue, alpha)
}

func (r *Recorder) ClearStencil(s int32) { r.record("ClearStencil", s) }
func (r *Recorder) Clear(mask uint32)    { r.record("Clear", ClearMask(mask)) }

func (r *Recorder) BlendFunc(sfactor, dfactor uint32) {
	r.record("BlendFunc", Enum(sfactor), Enum(dfactor))
}

func (r *Recorder) ColorMask(red, green, blue, alpha bool) {
	r.record("ColorMask", red, green, blue, alpha)
}

func (r *Recorder) StencilMask(mask uint32) { r.record("StencilMask", Hex(mask)) }

func (r *Recorder) StencilFunc(fn uint32, ref int32, mask uint32) {
	r.record("StencilFunc", Enum(fn), ref, Hex(mask))
}

func (r *Recorder) StencilOp(fail, zfail, zpass uint32) {
	r.record("StencilOp", Enum(fail), Enum(zfail), Enum(zpass))
}

func (r *Recorder) CreateBuffer() (uint32, error) {
	id, err := r.alloc("buffer")
	r.record("CreateBuffer")
	if err != nil {
		return 0, err
	}
	r.buffers[id] = &Buffer{}
	return id, nil
}

func (r *Recorder) DeleteBuffer(buffer uint32) {
	r.record("DeleteBuffer", buffer)
	if b, ok := r.buffers[buffer]; ok {
		b.Deleted = true
	}
	for target, id := range r.bound {
		if id == buffer {
			r.bound[target] = 0
		}
	}
}

func (r *Recorder) BindBuffer(target, buffer uint32) {
	r.record("BindBuffer", Enum(target), buffer)
	if buffer != 0 {
		if b, ok := r.buffers[buffer]; !ok || b.Deleted {
			r.setError(gl.InvalidOperation)
			return
		}
	}
	r.bound[target] = buffer
}

func (r *Recorder) BufferData(target uint32, data []byte, usage uint32) {
	r.record("BufferData", Enum(target), len(data), Enum(usage))
	b, ok := r.buffers[r.bound[target]]
	if !ok {
		r.setError(gl.InvalidOperation)
		return
	}
	b.Data = append(b.Data[:0:0], data...)
	b.Usage = usage
	b.Uploads++
}

func (r *Recorder) MapBufferRange(target uint32, offset, length int, access uint32) unsafe.Pointer {
	r.record("MapBufferRange", Enum(target), offset, length, Hex(access))
	b, ok := r.buffers[r.bound[target]]
	if r.MapFails || !ok || length <= 0 || offset+length > len(b.Data) {
		r.setError(gl.InvalidOperation)
		return nil
	}
	if m, ok := r.mapped[target]; ok && m.mem != nil {
		r.setError(gl.InvalidOperation)
		return nil
	}
	m := &mapping{buffer: r.bound[target], offset: offset, mem: make([]byte, length)}
	copy(m.mem, b.Data[offset:offset+length])
	r.mapped[target] = m
	return unsafe.Pointer(&m.mem[0])
}

func (r *Recorder) FlushMappedBufferRange(target uint32, offset, length int) {
	r.record("FlushMappedBufferRange", Enum(target), offset, length)
	m, ok := r.mapped[target]
	if !ok || m.mem == nil || offset < 0 || offset+length > len(m.mem) {
		r.setError(gl.InvalidValue)
		return
	}
	b := r.buffers[m.buffer]
	copy(b.Data[m.offset+offset:m.offset+offset+length], m.mem[offset:offset+length])
	m.flushed = append(m.flushed, [2]int{offset, offset + length})
}

func (r *Recorder) UnmapBuffer(target uint32) bool {
	r.record("UnmapBuffer", Enum(target))
	m, ok := r.mapped[target]
	if !ok || m.mem == nil {
		r.setError(gl.InvalidOperation)
		return false
	}
	m.mem = nil
	r.unmaps++
	return true
}

func (r *Recorder) CreateVertexArray() (uint32, error) {
	id, err := r.alloc("vertex array")
	r.record("CreateVertexArray")
	if err != nil {
		return 0, err
	}
	r.vaos[id] = true
	return id, nil
}

func (r *Recorder) DeleteVertexArray(array uint32) {
	r.record("DeleteVertexArray", array)
	r.vaos[array] = false
	if r.vao == array {
		r.vao = 0
	}
}

func (r *Recorder) BindVertexArray(array uint32) {
	r.record("BindVertexArray", array)
	r.vao = array
}

func (r *Recorder) EnableVertexAttribArray(index uint32) {
	r.record("EnableVertexAttribArray", index)
}

func (r *Recorder) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride, offset int32) {
	r.record("VertexAttribPointer", index, size, Enum(xtype), normalized, stride, offset)
}

func (r *Recorder) VertexAttribIPointer(index uint32, size int32, xtype uint32, stride, offset int32) {
	r.record("VertexAttribIPointer", index, size, Enum(xtype), stride, offset)
}

func (r *Recorder) VertexAttribDivisor(index, divisor uint32) {
	r.record("VertexAttribDivisor", index, divisor)
}

func (r *Recorder) CreateShader(xtype uint32) (uint32, error) {
	id, err := r.alloc("shader")
	r.record("CreateShader", Enum(xtype))
	if err != nil {
		return 0, err
	}
	r.shaders[id] = &shader{kind: xtype}
	return id, nil
}

func (r *Recorder) ShaderSource(sh uint32, source string) {
	r.record("ShaderSource", sh, len(source))
	if s, ok := r.shaders[sh]; ok {
		s.source = source
	}
}

// CompileShader fails when the source has no main function or contains an
// #error directive; the directive's text becomes the info log.
func (r *Recorder) CompileShader(sh uint32) {
	r.record("CompileShader", sh)
	s, ok := r.shaders[sh]
	if !ok {
		r.setError(gl.InvalidValue)
		return
	}
	s.compiled, s.log = compileGLSL(s.source)
}

func (r *Recorder) ShaderBinary(sh uint32, format uint32, binary []byte) {
	r.record("ShaderBinary", sh, Enum(format), len(binary))
	s, ok := r.shaders[sh]
	if !ok || format != gl.ShaderBinaryFormatSPIRV {
		r.setError(gl.InvalidEnum)
		return
	}
	s.spirv = append([]byte(nil), binary...)
}

// SpecializeShader accepts any SPIR-V module with a valid magic number and
// a non-empty entry point.
func (r *Recorder) SpecializeShader(sh uint32, entryPoint string) {
	r.record("SpecializeShader", sh, entryPoint)
	s, ok := r.shaders[sh]
	if !ok {
		r.setError(gl.InvalidValue)
		return
	}
	switch {
	case len(s.spirv) < 4 || len(s.spirv)%4 != 0:
		s.log = "SPIR-V binary is truncated"
	case s.spirv[0] != 0x03 || s.spirv[1] != 0x02 || s.spirv[2] != 0x23 || s.spirv[3] != 0x07:
		s.log = "SPIR-V magic number mismatch"
	case entryPoint == "":
		s.log = "entry point is empty"
	default:
		s.compiled, s.log = true, ""
		return
	}
	s.compiled = false
}

func (r *Recorder) GetShaderiv(sh, pname uint32) int32 {
	r.record("GetShaderiv", sh, Enum(pname))
	s, ok := r.shaders[sh]
	if !ok {
		r.setError(gl.InvalidValue)
		return 0
	}
	switch pname {
	case gl.CompileStatus:
		return boolInt(s.compiled)
	case gl.InfoLogLength:
		return int32(len(s.log))
	}
	r.setError(gl.InvalidEnum)
	return 0
}

func (r *Recorder) GetShaderInfoLog(sh uint32) string {
	r.record("GetShaderInfoLog", sh)
	if s, ok := r.shaders[sh]; ok {
		return s.log
	}
	return ""
}

func (r *Recorder) DeleteShader(sh uint32) {
	r.record("DeleteShader", sh)
	if s, ok := r.shaders[sh]; ok {
		s.deleted = true
	}
}

func (r *Recorder) CreateProgram() (uint32, error) {
	id, err := r.alloc("program")
	r.record("CreateProgram")
	if err != nil {
		return 0, err
	}
	r.programs[id] = &program{attached: make(map[uint32]bool)}
	return id, nil
}

func (r *Recorder) AttachShader(prog, sh uint32) {
	r.record("AttachShader", prog, sh)
	if p, ok := r.programs[prog]; ok {
		p.attached[sh] = true
	}
}

func (r *Recorder) DetachShader(prog, sh uint32) {
	r.record("DetachShader", prog, sh)
	if p, ok := r.programs[prog]; ok {
		delete(p.attached, sh)
	}
}

// LinkProgram succeeds when the attached shaders are all compiled and
// include at least one vertex and one fragment stage.
func (r *Recorder) LinkProgram(prog uint32) {
	r.record("LinkProgram", prog)
	p, ok := r.programs[prog]
	if !ok {
		r.setError(gl.InvalidValue)
		return
	}
	var shaders []*shader
	for id := range p.attached {
		shaders = append(shaders, r.shaders[id])
	}
	p.linked, p.log = false, ""
	p.attribs = map[string]int32{}
	p.uniforms = map[string]int32{}
	p.values = map[int32]any{}

	var vertex, fragment bool
	for _, s := range shaders {
		if !s.compiled {
			p.log = "error: attached shader is not compiled"
			return
		}
		switch s.kind {
		case gl.VertexShader:
			vertex = true
		case gl.FragmentShader:
			fragment = true
		}
	}
	if !vertex || !fragment {
		p.log = "error: program needs a vertex and a fragment shader"
		return
	}
	for _, s := range orderByKind(shaders) {
		declare(p, s)
	}
	p.linked = true
}

func (r *Recorder) GetProgramiv(prog, pname uint32) int32 {
	r.record("GetProgramiv", prog, Enum(pname))
	p, ok := r.programs[prog]
	if !ok {
		r.setError(gl.InvalidValue)
		return 0
	}
	switch pname {
	case gl.LinkStatus:
		return boolInt(p.linked)
	case gl.InfoLogLength:
		return int32(len(p.log))
	}
	r.setError(gl.InvalidEnum)
	return 0
}

func (r *Recorder) GetProgramInfoLog(prog uint32) string {
	r.record("GetProgramInfoLog", prog)
	if p, ok := r.programs[prog]; ok {
		return p.log
	}
	return ""
}

func (r *Recorder) UseProgram(prog uint32) {
	r.record("UseProgram", prog)
	r.current = prog
}

func (r *Recorder) DeleteProgram(prog uint32) {
	r.record("DeleteProgram", prog)
	if p, ok := r.programs[prog]; ok {
		p.deleted = true
	}
	if r.current == prog {
		r.current = 0
	}
}

func (r *Recorder) GetAttribLocation(prog uint32, name string) int32 {
	r.record("GetAttribLocation", prog, name)
	p, ok := r.programs[prog]
	if !ok || !p.linked {
		r.setError(gl.InvalidOperation)
		return -1
	}
	if loc, ok := p.attribs[name]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) GetUniformLocation(prog uint32, name string) int32 {
	r.record("GetUniformLocation", prog, name)
	p, ok := r.programs[prog]
	if !ok || !p.linked {
		r.setError(gl.InvalidOperation)
		return -1
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) setUniform(loc int32, v any) {
	p, ok := r.programs[r.current]
	if !ok || !p.linked {
		r.setError(gl.InvalidOperation)
		return
	}
	p.values[loc] = v
}

func (r *Recorder) Uniform1f(loc int32, v0 float32) {
	r.record("Uniform1f", loc, v0)
	r.setUniform(loc, v0)
}

func (r *Recorder) Uniform2f(loc int32, v0, v1 float32) {
	r.record("Uniform2f", loc, v0, v1)
	r.setUniform(loc, [2]float32{v0, v1})
}

func (r *Recorder) Uniform3f(loc int32, v0, v1, v2 float32) {
	r.record("Uniform3f", loc, v0, v1, v2)
	r.setUniform(loc, [3]float32{v0, v1, v2})
}

func (r *Recorder) Uniform4f(loc int32, v0, v1, v2, v3 float32) {
	r.record("Uniform4f", loc, v0, v1, v2, v3)
	r.setUniform(loc, [4]float32{v0, v1, v2, v3})
}

func (r *Recorder) Uniform1i(loc int32, v0 int32) {
	r.record("Uniform1i", loc, v0)
	r.setUniform(loc, v0)
}

func (r *Recorder) UniformMatrix4fv(loc int32, transpose bool, value []float32) {
	r.record("UniformMatrix4fv", loc, transpose, len(value))
	if len(value) != 16 {
		r.setError(gl.InvalidValue)
		return
	}
	var m [16]float32
	copy(m[:], value)
	r.setUniform(loc, m)
}

func (r *Recorder) CreateTexture() (uint32, error) {
	id, err := r.alloc("texture")
	r.record("CreateTexture")
	if err != nil {
		return 0, err
	}
	r.textures[id] = &Texture{Params: make(map[uint32]int32)}
	return id, nil
}

func (r *Recorder) DeleteTexture(texture uint32) {
	r.record("DeleteTexture", texture)
	if t, ok := r.textures[texture]; ok {
		t.Deleted = true
	}
}

func (r *Recorder) ActiveTexture(unit uint32) {
	r.record("ActiveTexture", Enum(unit))
	r.activeUnit = unit
}

func (r *Recorder) BindTexture(target, texture uint32) {
	r.record("BindTexture", Enum(target), texture)
	r.bound[target] = texture
}

func (r *Recorder) TexImage2D(target uint32, level, internalformat, width, height int32, format, xtype uint32, pixels []byte) {
	r.record("TexImage2D", Enum(target), level, Enum(uint32(internalformat)), width, height, Enum(format), Enum(xtype), len(pixels))
	t, ok := r.textures[r.bound[target]]
	if !ok {
		r.setError(gl.InvalidOperation)
		return
	}
	t.Width, t.Height, t.InternalFormat = width, height, internalformat
	t.Pixels = make([]byte, int(width)*int(height)*bytesPerPixel(format))
	copy(t.Pixels, pixels)
}

func (r *Recorder) TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pixels []byte) {
	r.record("TexSubImage2D", Enum(target), level, xoffset, yoffset, width, height, Enum(format), Enum(xtype), len(pixels))
	t, ok := r.textures[r.bound[target]]
	if !ok || xoffset+width > t.Width || yoffset+height > t.Height {
		r.setError(gl.InvalidValue)
		return
	}
	bpp := bytesPerPixel(format)
	for row := int32(0); row < height; row++ {
		dst := (int(yoffset+row)*int(t.Width) + int(xoffset)) * bpp
		src := int(row) * int(width) * bpp
		copy(t.Pixels[dst:dst+int(width)*bpp], pixels[src:])
	}
}

func (r *Recorder) TexParameteri(target, pname uint32, param int32) {
	r.record("TexParameteri", Enum(target), Enum(pname), Enum(uint32(param)))
	if t, ok := r.textures[r.bound[target]]; ok {
		t.Params[pname] = param
	}
}

func (r *Recorder) PixelStorei(pname uint32, param int32) {
	r.record("PixelStorei", Enum(pname), param)
}

func (r *Recorder) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	r.record("DrawElements", Enum(mode), count, Enum(xtype), offset)
	r.checkDraw()
}

func (r *Recorder) DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, instances int32) {
	r.record("DrawElementsInstanced", Enum(mode), count, Enum(xtype), offset, instances)
	r.checkDraw()
}

func (r *Recorder) checkDraw() {
	if r.vao == 0 || r.current == 0 || r.bound[gl.ElementArrayBuffer] == 0 {
		r.setError(gl.InvalidOperation)
	}
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func bytesPerPixel(format uint32) int {
	if format == gl.Red {
		return 1
	}
	return 4
}
