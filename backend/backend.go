package backend

import (
	"errors"
	"fmt"

	"github.com/gogpu/red"
	"github.com/gogpu/red/gl"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Backend names.
const (
	// BackendNative loads the system GL library.
	BackendNative = "native"
)

// Loader resolves a GL call surface against the context current on the
// calling thread.
type Loader func() (gl.Context, error)

// Open loads the named backend and wraps it in a context handle.
func Open(name string, opts ...red.Option) (*red.GL, error) {
	load := Get(name)
	if load == nil {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	raw, err := load()
	if err != nil {
		return nil, fmt.Errorf("backend: load %s: %w", name, err)
	}
	red.Logger().Info("backend: loaded", "name", name)
	return red.NewGL(raw, opts...), nil
}

// OpenDefault loads the first backend in priority order that succeeds.
func OpenDefault(opts ...red.Option) (*red.GL, error) {
	var errs []error
	for _, name := range candidates() {
		g, err := Open(name, opts...)
		if err == nil {
			return g, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, ErrBackendNotAvailable
	}
	return nil, errors.Join(errs...)
}
