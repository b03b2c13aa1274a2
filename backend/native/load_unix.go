//go:build darwin || freebsd || linux

package native

import (
	"fmt"
	"runtime"

	"github.com/ebitengine/purego"
	"github.com/gogpu/red"
)

// LoadWith resolves every entry point through getProcAddress, which
// returns 0 for unknown names. Window toolkits expose such a function
// (glfwGetProcAddress, SDL_GL_GetProcAddress).
func LoadWith(getProcAddress func(name string) uintptr) (*Context, error) {
	c := &Context{}
	for _, ep := range c.entryPoints() {
		addr := getProcAddress(ep.name)
		if addr == 0 {
			if optional[ep.name] {
				red.Logger().Debug("native: optional entry point missing", "symbol", ep.name)
				continue
			}
			return nil, fmt.Errorf("%w: %s", ErrMissingSymbol, ep.name)
		}
		purego.RegisterFunc(ep.fptr, addr)
	}
	return c, nil
}

// Load opens the system GL library and resolves every entry point from it.
func Load() (*Context, error) {
	lib, err := purego.Dlopen(libraryPath(), purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("native: open %s: %w", libraryPath(), err)
	}

	// Core 3.x entry points are only reachable through the GLX proc
	// address function on Linux and FreeBSD.
	var glXGetProcAddress func(name string) uintptr
	if runtime.GOOS != "darwin" {
		if sym, err := purego.Dlsym(lib, "glXGetProcAddressARB"); err == nil {
			purego.RegisterFunc(&glXGetProcAddress, sym)
		}
	}

	c, err := LoadWith(func(name string) uintptr {
		if glXGetProcAddress != nil {
			if addr := glXGetProcAddress(name); addr != 0 {
				return addr
			}
		}
		addr, err := purego.Dlsym(lib, name)
		if err != nil {
			return 0
		}
		return addr
	})
	if err != nil {
		return nil, err
	}
	red.Logger().Info("native: GL loaded", "library", libraryPath())
	return c, nil
}

func libraryPath() string {
	if runtime.GOOS == "darwin" {
		return "/System/Library/Frameworks/OpenGL.framework/OpenGL"
	}
	return "libGL.so.1"
}
