package red

import (
	"errors"
	"testing"

	"github.com/gogpu/red/gl"
	"github.com/gogpu/red/gl/gltest"
)

func TestNewGLNilPanics(t *testing.T) {
	mustPanic(t, "nil context", func() { NewGL(nil) })
}

func TestGLCloneRelease(t *testing.T) {
	var torn int
	g := NewGL(gltest.New(), WithTeardown(func() { torn++ }))

	c1 := g.Clone()
	c2 := c1.Clone()
	if got := g.Refs(); got != 3 {
		t.Fatalf("Refs() = %d, want 3", got)
	}

	c1.Release()
	c1.Release() // no-op
	if got := g.Refs(); got != 2 {
		t.Errorf("Refs() after double release of one clone = %d, want 2", got)
	}

	g.Release()
	if torn != 0 {
		t.Fatal("teardown ran while a clone was still live")
	}
	c2.Release()
	if torn != 1 {
		t.Errorf("teardown ran %d times, want 1", torn)
	}
}

func TestGLUseAfterReleasePanics(t *testing.T) {
	g := NewGL(gltest.New())
	c := g.Clone()
	c.Release()

	mustPanic(t, "context handle used after Release", func() { c.Raw() })
	mustPanic(t, "context handle used after Release", func() { c.Clone() })

	// The original handle is unaffected.
	if g.Raw() == nil {
		t.Error("Raw() on live handle returned nil")
	}
	g.Release()
}

func TestResourcesKeepContextAlive(t *testing.T) {
	var torn int
	g := NewGL(gltest.New(), WithTeardown(func() { torn++ }))

	buf, err := NewArrayBuffer(g)
	if err != nil {
		t.Fatalf("NewArrayBuffer() = %v", err)
	}
	if got := g.Refs(); got != 2 {
		t.Errorf("Refs() with one live buffer = %d, want 2", got)
	}

	g.Release()
	if torn != 0 {
		t.Fatal("context torn down while a buffer still owns a clone")
	}
	buf.Delete()
	if torn != 1 {
		t.Errorf("teardown ran %d times after last resource deleted, want 1", torn)
	}
}

func TestErrorChecksIgnoreStaleError(t *testing.T) {
	g, rec := newTestGL(t, WithErrorChecks(true))

	// Leave GL_INVALID_OPERATION pending from an unrelated call.
	rec.BindBuffer(gl.ArrayBuffer, 999)

	buf, err := NewArrayBuffer(g)
	if err != nil {
		t.Fatalf("NewArrayBuffer() = %v", err)
	}
	defer buf.Delete()
	if rec.Count("DeleteBuffer") != 0 {
		t.Error("good handle was released because of an earlier error")
	}
	if rec.GetError() != gl.NoError {
		t.Error("stale error is still pending")
	}
}

// raisingContext reports GL_INVALID_OPERATION from inside CreateBuffer while
// still handing out a handle.
type raisingContext struct {
	*gltest.Recorder
}

func (c raisingContext) CreateBuffer() (uint32, error) {
	id, err := c.Recorder.CreateBuffer()
	c.Recorder.BindBuffer(gl.ArrayBuffer, 999)
	return id, err
}

func TestErrorChecksRejectAllocation(t *testing.T) {
	rec := gltest.New()
	g := NewGL(raisingContext{rec}, WithErrorChecks(true))
	defer g.Release()

	_, err := NewArrayBuffer(g)
	if !errors.Is(err, ErrAllocation) {
		t.Fatalf("NewArrayBuffer() error = %v, want ErrAllocation", err)
	}
	if rec.Count("DeleteBuffer") != 1 {
		t.Error("handle allocated before the error check was not released")
	}
	if got := g.Refs(); got != 1 {
		t.Errorf("Refs() after failed allocation = %d, want 1", got)
	}
}

func TestErrorChecksOffByDefault(t *testing.T) {
	g, rec := newTestGL(t)
	rec.BindBuffer(gl.ArrayBuffer, 999)

	buf, err := NewArrayBuffer(g)
	if err != nil {
		t.Fatalf("NewArrayBuffer() = %v", err)
	}
	defer buf.Delete()
	if rec.Count("GetError") != 0 {
		t.Error("GetError polled without WithErrorChecks")
	}
}
