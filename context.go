package red

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/red/gl"
)

// GL is a shared handle to a live graphics context.
//
// Every resource keeps its own clone, so a resource can issue calls and
// release itself without the caller threading the context through. The
// underlying context is torn down when the last clone is released.
//
// GL does not serialize calls. The graphics context must be driven from a
// single thread at a time.
type GL struct {
	core     *glCore
	released atomic.Bool
}

// glCore is shared by all clones of a GL.
type glCore struct {
	raw  gl.Context
	refs atomic.Int32
	opts options

	// bound mirrors the buffer binding slots changed through red. It is
	// used to check preconditions that GL itself would silently violate.
	bound map[uint32]uint32
}

// NewGL takes ownership of raw and returns the first handle to it.
func NewGL(raw gl.Context, opts ...Option) *GL {
	if raw == nil {
		panic("red: NewGL called with a nil context")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	core := &glCore{raw: raw, opts: o, bound: make(map[uint32]uint32)}
	core.refs.Store(1)
	return &GL{core: core}
}

// Clone returns a new handle sharing the same context and increments the
// owner count. Each clone must be released once.
func (g *GL) Clone() *GL {
	g.mustLive()
	g.core.refs.Add(1)
	return &GL{core: g.core}
}

// Release drops this handle's share of the context. Releasing a handle
// twice is a no-op. When the last handle is released the teardown hook,
// if any, runs.
func (g *GL) Release() {
	if !g.released.CompareAndSwap(false, true) {
		return
	}
	if g.core.refs.Add(-1) == 0 {
		Logger().Info("red: context released")
		if g.core.opts.teardown != nil {
			g.core.opts.teardown()
		}
	}
}

// Raw returns the call surface of the context.
func (g *GL) Raw() gl.Context {
	g.mustLive()
	return g.core.raw
}

// Refs reports how many handles share the context.
func (g *GL) Refs() int {
	return int(g.core.refs.Load())
}

func (g *GL) mustLive() {
	if g.released.Load() {
		panic(fmt.Sprintf("%v: context handle used after Release", ErrDeleted))
	}
}

// maxPendingErrors bounds drainErrors. GL keeps one flag per error code.
const maxPendingErrors = 8

// drainErrors clears errors left pending by earlier calls so that
// checkError sees only what the next call raises. It is a no-op when error
// checks are disabled.
func (g *GL) drainErrors() {
	if !g.core.opts.errorChecks {
		return
	}
	for range maxPendingErrors {
		code := g.core.raw.GetError()
		if code == gl.NoError {
			return
		}
		Logger().Warn("red: stale GL error discarded", "code", gl.ErrorString(code))
	}
}

// checkError returns the pending GL error when error checks are enabled.
func (g *GL) checkError() error {
	if !g.core.opts.errorChecks {
		return nil
	}
	if code := g.core.raw.GetError(); code != gl.NoError {
		Logger().Warn("red: GL error after allocation", "code", gl.ErrorString(code))
		return fmt.Errorf("driver reported %s", gl.ErrorString(code))
	}
	return nil
}

func (g *GL) bindBuffer(target, id uint32) {
	g.Raw().BindBuffer(target, id)
	g.core.bound[target] = id
}

func (g *GL) boundBuffer(target uint32) uint32 {
	return g.core.bound[target]
}
