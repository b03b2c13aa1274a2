package backend

import (
	"slices"
	"sync"
)

// registry holds registered loaders.
var (
	registryMu sync.RWMutex
	loaders    = make(map[string]Loader)
	// Priority order for OpenDefault; unlisted backends follow by name.
	backendPriority = []string{BackendNative}
)

// Register registers a loader with the given name.
// This is typically called from init() functions in backend packages.
// If a loader with the same name is already registered, it is replaced.
func Register(name string, load Loader) {
	registryMu.Lock()
	defer registryMu.Unlock()
	loaders[name] = load
}

// Unregister removes a loader from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(loaders, name)
}

// Available returns the registered backend names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(loaders))
	for name := range loaders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := loaders[name]
	return ok
}

// Get returns the loader registered under name, or nil.
func Get(name string) Loader {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return loaders[name]
}

// candidates returns registered names in OpenDefault order.
func candidates() []string {
	names := Available()
	out := make([]string, 0, len(names))
	for _, name := range backendPriority {
		if slices.Contains(names, name) {
			out = append(out, name)
		}
	}
	for _, name := range names {
		if !slices.Contains(backendPriority, name) {
			out = append(out, name)
		}
	}
	return out
}
