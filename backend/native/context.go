// Package native implements gl.Context on top of the system OpenGL
// library. Entry points are resolved at runtime with purego, so no cgo
// toolchain is needed.
//
// A current GL context must exist on the calling thread before any method
// is called; creating one is the windowing layer's job.
package native

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/gogpu/red/gl"
)

var (
	// ErrUnsupportedPlatform is returned by Load where no system GL
	// library is known.
	ErrUnsupportedPlatform = errors.New("native: platform has no GL loader")

	// ErrMissingSymbol is returned when an entry point cannot be resolved.
	ErrMissingSymbol = errors.New("native: GL entry point not found")
)

// Context is a gl.Context backed by function pointers resolved from the
// driver.
type Context struct {
	getError    func() uint32
	getString   func(name uint32) *byte
	enable      func(cap uint32)
	disable     func(cap uint32)
	viewport    func(x, y, w, h int32)
	clearColor  func(r, g, b, a float32)
	clearStenc  func(s int32)
	clear       func(mask uint32)
	blendFunc   func(s, d uint32)
	colorMask   func(r, g, b, a bool)
	stencilMask func(mask uint32)
	stencilFunc func(fn uint32, ref int32, mask uint32)
	stencilOp   func(fail, zfail, zpass uint32)

	genBuffers      func(n int32, ids *uint32)
	deleteBuffers   func(n int32, ids *uint32)
	bindBuffer      func(target, id uint32)
	bufferData      func(target uint32, size int, data unsafe.Pointer, usage uint32)
	mapBufferRange  func(target uint32, offset, length int, access uint32) unsafe.Pointer
	flushMapped     func(target uint32, offset, length int)
	unmapBuffer     func(target uint32) bool
	genVertexArrays func(n int32, ids *uint32)
	delVertexArrays func(n int32, ids *uint32)
	bindVertexArray func(id uint32)
	enableAttrib    func(index uint32)
	attribPointer   func(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)
	attribIPointer  func(index uint32, size int32, xtype uint32, stride int32, offset uintptr)
	attribDivisor   func(index, divisor uint32)

	createShader     func(xtype uint32) uint32
	shaderSource     func(shader uint32, count int32, src **byte, length *int32)
	compileShader    func(shader uint32)
	shaderBinary     func(count int32, shaders *uint32, format uint32, binary unsafe.Pointer, length int32)
	specializeShader func(shader uint32, entry *byte, n uint32, index, value *uint32)
	getShaderiv      func(shader, pname uint32, params *int32)
	getShaderLog     func(shader uint32, size int32, length *int32, log *byte)
	deleteShader     func(shader uint32)

	createProgram  func() uint32
	attachShader   func(program, shader uint32)
	detachShader   func(program, shader uint32)
	linkProgram    func(program uint32)
	getProgramiv   func(program, pname uint32, params *int32)
	getProgramLog  func(program uint32, size int32, length *int32, log *byte)
	useProgram     func(program uint32)
	deleteProgram  func(program uint32)
	attribLocation func(program uint32, name *byte) int32
	uniformLoc     func(program uint32, name *byte) int32
	uniform1f      func(loc int32, v0 float32)
	uniform2f      func(loc int32, v0, v1 float32)
	uniform3f      func(loc int32, v0, v1, v2 float32)
	uniform4f      func(loc int32, v0, v1, v2, v3 float32)
	uniform1i      func(loc int32, v0 int32)
	uniformMat4fv  func(loc, count int32, transpose bool, value *float32)

	genTextures    func(n int32, ids *uint32)
	deleteTextures func(n int32, ids *uint32)
	activeTexture  func(unit uint32)
	bindTexture    func(target, id uint32)
	texImage2D     func(target uint32, level, internal, w, h, border int32, format, xtype uint32, pixels unsafe.Pointer)
	texSubImage2D  func(target uint32, level, x, y, w, h int32, format, xtype uint32, pixels unsafe.Pointer)
	texParameteri  func(target, pname uint32, param int32)
	pixelStorei    func(pname uint32, param int32)

	drawElements          func(mode uint32, count int32, xtype uint32, offset uintptr)
	drawElementsInstanced func(mode uint32, count int32, xtype uint32, offset uintptr, instances int32)
}

var _ gl.Context = (*Context)(nil)

// entryPoints pairs every GL symbol with the field it is bound to.
func (c *Context) entryPoints() []struct {
	name string
	fptr any
} {
	return []struct {
		name string
		fptr any
	}{
		{"glGetError", &c.getError},
		{"glGetString", &c.getString},
		{"glEnable", &c.enable},
		{"glDisable", &c.disable},
		{"glViewport", &c.viewport},
		{"glClearColor", &c.clearColor},
		{"glClearStencil", &c.clearStenc},
		{"glClear", &c.clear},
		{"glBlendFunc", &c.blendFunc},
		{"glColorMask", &c.colorMask},
		{"glStencilMask", &c.stencilMask},
		{"glStencilFunc", &c.stencilFunc},
		{"glStencilOp", &c.stencilOp},

		{"glGenBuffers", &c.genBuffers},
		{"glDeleteBuffers", &c.deleteBuffers},
		{"glBindBuffer", &c.bindBuffer},
		{"glBufferData", &c.bufferData},
		{"glMapBufferRange", &c.mapBufferRange},
		{"glFlushMappedBufferRange", &c.flushMapped},
		{"glUnmapBuffer", &c.unmapBuffer},
		{"glGenVertexArrays", &c.genVertexArrays},
		{"glDeleteVertexArrays", &c.delVertexArrays},
		{"glBindVertexArray", &c.bindVertexArray},
		{"glEnableVertexAttribArray", &c.enableAttrib},
		{"glVertexAttribPointer", &c.attribPointer},
		{"glVertexAttribIPointer", &c.attribIPointer},
		{"glVertexAttribDivisor", &c.attribDivisor},

		{"glCreateShader", &c.createShader},
		{"glShaderSource", &c.shaderSource},
		{"glCompileShader", &c.compileShader},
		{"glShaderBinary", &c.shaderBinary},
		{"glSpecializeShader", &c.specializeShader},
		{"glGetShaderiv", &c.getShaderiv},
		{"glGetShaderInfoLog", &c.getShaderLog},
		{"glDeleteShader", &c.deleteShader},

		{"glCreateProgram", &c.createProgram},
		{"glAttachShader", &c.attachShader},
		{"glDetachShader", &c.detachShader},
		{"glLinkProgram", &c.linkProgram},
		{"glGetProgramiv", &c.getProgramiv},
		{"glGetProgramInfoLog", &c.getProgramLog},
		{"glUseProgram", &c.useProgram},
		{"glDeleteProgram", &c.deleteProgram},
		{"glGetAttribLocation", &c.attribLocation},
		{"glGetUniformLocation", &c.uniformLoc},
		{"glUniform1f", &c.uniform1f},
		{"glUniform2f", &c.uniform2f},
		{"glUniform3f", &c.uniform3f},
		{"glUniform4f", &c.uniform4f},
		{"glUniform1i", &c.uniform1i},
		{"glUniformMatrix4fv", &c.uniformMat4fv},

		{"glGenTextures", &c.genTextures},
		{"glDeleteTextures", &c.deleteTextures},
		{"glActiveTexture", &c.activeTexture},
		{"glBindTexture", &c.bindTexture},
		{"glTexImage2D", &c.texImage2D},
		{"glTexSubImage2D", &c.texSubImage2D},
		{"glTexParameteri", &c.texParameteri},
		{"glPixelStorei", &c.pixelStorei},

		{"glDrawElements", &c.drawElements},
		{"glDrawElementsInstanced", &c.drawElementsInstanced},
	}
}

// optional lists entry points that older drivers lack. A missing optional
// symbol leaves the method panicking instead of failing the load.
var optional = map[string]bool{
	"glShaderBinary":     true,
	"glSpecializeShader": true,
}

func cstr(s string) *byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return &b[0]
}

func gostr(p *byte) string {
	if p == nil {
		return ""
	}
	return unsafe.String(p, clen(p))
}

func clen(p *byte) int {
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return n
}

func ptr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(&b[0])
}

func (c *Context) gen(fn func(int32, *uint32), kind string) (uint32, error) {
	var id uint32
	fn(1, &id)
	if id == 0 {
		return 0, fmt.Errorf("native: cannot create %s: %s", kind, gl.ErrorString(c.getError()))
	}
	return id, nil
}

func (c *Context) GetError() uint32 { return c.getError() }

func (c *Context) GetString(name uint32) string {
	return string([]byte(gostr(c.getString(name))))
}

func (c *Context) Enable(cap uint32)                  { c.enable(cap) }
func (c *Context) Disable(cap uint32)                 { c.disable(cap) }
func (c *Context) Viewport(x, y, width, height int32) { c.viewport(x, y, width, height) }
func (c *Context) ClearColor(r, g, b, a float32)      { c.clearColor(r, g, b, a) }
func (c *Context) ClearStencil(s int32)               { c.clearStenc(s) }
func (c *Context) Clear(mask uint32)                  { c.clear(mask) }
func (c *Context) BlendFunc(sfactor, dfactor uint32)  { c.blendFunc(sfactor, dfactor) }
func (c *Context) ColorMask(r, g, b, a bool)          { c.colorMask(r, g, b, a) }
func (c *Context) StencilMask(mask uint32)            { c.stencilMask(mask) }

func (c *Context) StencilFunc(fn uint32, ref int32, mask uint32) { c.stencilFunc(fn, ref, mask) }
func (c *Context) StencilOp(fail, zfail, zpass uint32)           { c.stencilOp(fail, zfail, zpass) }

func (c *Context) CreateBuffer() (uint32, error) { return c.gen(c.genBuffers, "buffer") }
func (c *Context) DeleteBuffer(buffer uint32)    { c.deleteBuffers(1, &buffer) }
func (c *Context) BindBuffer(target, buffer uint32) {
	c.bindBuffer(target, buffer)
}

func (c *Context) BufferData(target uint32, data []byte, usage uint32) {
	c.bufferData(target, len(data), ptr(data), usage)
	runtime.KeepAlive(data)
}

func (c *Context) MapBufferRange(target uint32, offset, length int, access uint32) unsafe.Pointer {
	return c.mapBufferRange(target, offset, length, access)
}

func (c *Context) FlushMappedBufferRange(target uint32, offset, length int) {
	c.flushMapped(target, offset, length)
}

func (c *Context) UnmapBuffer(target uint32) bool { return c.unmapBuffer(target) }

func (c *Context) CreateVertexArray() (uint32, error) {
	return c.gen(c.genVertexArrays, "vertex array")
}
func (c *Context) DeleteVertexArray(array uint32)   { c.delVertexArrays(1, &array) }
func (c *Context) BindVertexArray(array uint32)     { c.bindVertexArray(array) }
func (c *Context) EnableVertexAttribArray(i uint32) { c.enableAttrib(i) }

func (c *Context) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride, offset int32) {
	c.attribPointer(index, size, xtype, normalized, stride, uintptr(offset))
}

func (c *Context) VertexAttribIPointer(index uint32, size int32, xtype uint32, stride, offset int32) {
	c.attribIPointer(index, size, xtype, stride, uintptr(offset))
}

func (c *Context) VertexAttribDivisor(index, divisor uint32) { c.attribDivisor(index, divisor) }

func (c *Context) CreateShader(xtype uint32) (uint32, error) {
	id := c.createShader(xtype)
	if id == 0 {
		return 0, fmt.Errorf("native: cannot create shader: %s", gl.ErrorString(c.getError()))
	}
	return id, nil
}

func (c *Context) ShaderSource(shader uint32, source string) {
	src := cstr(source)
	c.shaderSource(shader, 1, &src, nil)
	runtime.KeepAlive(src)
}

func (c *Context) CompileShader(shader uint32) { c.compileShader(shader) }

func (c *Context) ShaderBinary(shader uint32, format uint32, binary []byte) {
	if c.shaderBinary == nil {
		panic(fmt.Sprintf("%v: glShaderBinary", ErrMissingSymbol))
	}
	c.shaderBinary(1, &shader, format, ptr(binary), int32(len(binary)))
	runtime.KeepAlive(binary)
}

func (c *Context) SpecializeShader(shader uint32, entryPoint string) {
	if c.specializeShader == nil {
		panic(fmt.Sprintf("%v: glSpecializeShader", ErrMissingSymbol))
	}
	entry := cstr(entryPoint)
	c.specializeShader(shader, entry, 0, nil, nil)
	runtime.KeepAlive(entry)
}

func (c *Context) GetShaderiv(shader, pname uint32) int32 {
	var v int32
	c.getShaderiv(shader, pname, &v)
	return v
}

func (c *Context) GetShaderInfoLog(shader uint32) string {
	n := c.GetShaderiv(shader, gl.InfoLogLength)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	var length int32
	c.getShaderLog(shader, n, &length, &buf[0])
	return string(buf[:length])
}

func (c *Context) DeleteShader(shader uint32) { c.deleteShader(shader) }

func (c *Context) CreateProgram() (uint32, error) {
	id := c.createProgram()
	if id == 0 {
		return 0, fmt.Errorf("native: cannot create program: %s", gl.ErrorString(c.getError()))
	}
	return id, nil
}

func (c *Context) AttachShader(program, shader uint32) { c.attachShader(program, shader) }
func (c *Context) DetachShader(program, shader uint32) { c.detachShader(program, shader) }
func (c *Context) LinkProgram(program uint32)          { c.linkProgram(program) }

func (c *Context) GetProgramiv(program, pname uint32) int32 {
	var v int32
	c.getProgramiv(program, pname, &v)
	return v
}

func (c *Context) GetProgramInfoLog(program uint32) string {
	n := c.GetProgramiv(program, gl.InfoLogLength)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	var length int32
	c.getProgramLog(program, n, &length, &buf[0])
	return string(buf[:length])
}

func (c *Context) UseProgram(program uint32)    { c.useProgram(program) }
func (c *Context) DeleteProgram(program uint32) { c.deleteProgram(program) }

func (c *Context) GetAttribLocation(program uint32, name string) int32 {
	n := cstr(name)
	defer runtime.KeepAlive(n)
	return c.attribLocation(program, n)
}

func (c *Context) GetUniformLocation(program uint32, name string) int32 {
	n := cstr(name)
	defer runtime.KeepAlive(n)
	return c.uniformLoc(program, n)
}

func (c *Context) Uniform1f(location int32, v0 float32)         { c.uniform1f(location, v0) }
func (c *Context) Uniform2f(location int32, v0, v1 float32)     { c.uniform2f(location, v0, v1) }
func (c *Context) Uniform3f(location int32, v0, v1, v2 float32) { c.uniform3f(location, v0, v1, v2) }
func (c *Context) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	c.uniform4f(location, v0, v1, v2, v3)
}
func (c *Context) Uniform1i(location int32, v0 int32) { c.uniform1i(location, v0) }

func (c *Context) UniformMatrix4fv(location int32, transpose bool, value []float32) {
	c.uniformMat4fv(location, int32(len(value)/16), transpose, &value[0])
	runtime.KeepAlive(value)
}

func (c *Context) CreateTexture() (uint32, error) { return c.gen(c.genTextures, "texture") }
func (c *Context) DeleteTexture(texture uint32)   { c.deleteTextures(1, &texture) }
func (c *Context) ActiveTexture(unit uint32)      { c.activeTexture(unit) }
func (c *Context) BindTexture(target, texture uint32) {
	c.bindTexture(target, texture)
}

func (c *Context) TexImage2D(target uint32, level, internalformat, width, height int32, format, xtype uint32, pixels []byte) {
	c.texImage2D(target, level, internalformat, width, height, 0, format, xtype, ptr(pixels))
	runtime.KeepAlive(pixels)
}

func (c *Context) TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pixels []byte) {
	c.texSubImage2D(target, level, xoffset, yoffset, width, height, format, xtype, ptr(pixels))
	runtime.KeepAlive(pixels)
}

func (c *Context) TexParameteri(target, pname uint32, param int32) {
	c.texParameteri(target, pname, param)
}
func (c *Context) PixelStorei(pname uint32, param int32) { c.pixelStorei(pname, param) }

func (c *Context) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	c.drawElements(mode, count, xtype, uintptr(offset))
}

func (c *Context) DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, instances int32) {
	c.drawElementsInstanced(mode, count, xtype, uintptr(offset), instances)
}
