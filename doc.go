// Package red provides owned OpenGL resources and declarative vertex
// layouts.
//
// # Overview
//
// red wraps the handles of a stateful GL context (buffers, vertex arrays,
// shaders, programs, textures) in values that release their handle exactly
// once, derives vertex attribute bindings from Go struct types, and applies
// a fixed per-draw state protocol. It does not create windows or contexts:
// the call surface comes from a gl.Context, usually loaded by the
// backend package.
//
// # Quick Start
//
//	g := red.NewGL(raw)
//	defer g.Release()
//
//	type Vertex struct {
//	    Pos   red.F32x2 `attr:"position"`
//	    Color red.U8x4Norm `attr:"color"`
//	}
//
//	vb, _ := red.NewVertexBuffer(g, []Vertex{...})
//	ib, _ := red.NewIndexBuffer(g, []uint16{0, 1, 2})
//	vao, _ := red.NewVertexArray(g)
//	prog.SetLayout(vao, vb)
//
//	frame := red.NewFrame(g)
//	frame.Draw(vao, ib, prog, red.DefaultDrawParameters())
//
// # Ownership
//
// Every resource holds its own clone of the context handle, so the
// context outlives all resources created from it. Delete releases a
// resource and its clone; later Delete calls are no-ops and any other use
// panics. A resource collected without Delete is reported through the
// package logger.
//
// # Errors
//
// Constructors return errors for conditions the caller can handle:
// allocation failures, compile and link logs, invalid layouts. Mismatches
// between host code and shader source, such as a uniform or attribute name
// that is not active in the program, panic.
//
// # Threading
//
// A GL context is bound to one thread. red does no locking; drive each
// context from a single goroutine locked to its OS thread.
package red
