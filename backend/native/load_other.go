//go:build !darwin && !freebsd && !linux

package native

// LoadWith is not supported on this platform.
func LoadWith(func(name string) uintptr) (*Context, error) {
	return nil, ErrUnsupportedPlatform
}

// Load is not supported on this platform.
func Load() (*Context, error) {
	return nil, ErrUnsupportedPlatform
}
