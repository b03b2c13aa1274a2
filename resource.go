package red

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/gogpu/red/gl"
)

// resource is the owned-handle core shared by every wrapper type.
// It holds its own GL clone and releases the handle exactly once.
type resource struct {
	gl      *GL
	id      uint32
	kind    string
	destroy func(raw gl.Context, id uint32)
	state   *resourceState
}

type resourceState struct {
	deleted atomic.Bool
}

// newResource allocates a handle with create. On success the resource owns
// a fresh clone of g.
func newResource(g *GL, kind string, create func(gl.Context) (uint32, error), destroy func(gl.Context, uint32)) (resource, error) {
	raw := g.Raw()
	g.drainErrors()
	id, err := create(raw)
	if err == nil {
		if err = g.checkError(); err != nil {
			destroy(raw, id)
		}
	}
	if err != nil {
		return resource{}, fmt.Errorf("%w: %s: %w", ErrAllocation, kind, err)
	}
	Logger().Debug("red: resource created", "kind", kind, "id", id)
	return resource{
		gl:      g.Clone(),
		id:      id,
		kind:    kind,
		destroy: destroy,
		state:   &resourceState{},
	}, nil
}

// trackLeak logs a warning when owner is collected without Delete. No GL
// call is made from the cleanup: it runs on an arbitrary goroutine.
func trackLeak[T any](owner *T, r *resource) {
	kind, id := r.kind, r.id
	runtime.AddCleanup(owner, func(st *resourceState) {
		if !st.deleted.Load() {
			Logger().Warn("red: resource collected without Delete", "kind", kind, "id", id)
		}
	}, r.state)
}

// raw returns the call surface, panicking if the resource was deleted.
func (r *resource) raw() gl.Context {
	if r.state == nil || r.state.deleted.Load() {
		panic(fmt.Sprintf("%v: %s %d", ErrDeleted, r.kind, r.id))
	}
	return r.gl.Raw()
}

// ID returns the GL name of the resource.
func (r *resource) ID() uint32 { return r.id }

// Deleted reports whether Delete has been called.
func (r *resource) Deleted() bool { return r.state.deleted.Load() }

// release frees the handle and the GL clone. It reports false when the
// resource had already been released.
func (r *resource) release() bool {
	if r.state == nil || !r.state.deleted.CompareAndSwap(false, true) {
		return false
	}
	r.destroy(r.gl.Raw(), r.id)
	r.gl.Release()
	Logger().Debug("red: resource deleted", "kind", r.kind, "id", r.id)
	return true
}
