// Package backend selects the GL call surface behind a red.GL.
//
// # Backend Registration
//
// Backends register a Loader from init(). The native backend registers
// itself on import:
//
//	import _ "github.com/gogpu/red/backend/native"
//
// # Backend Selection
//
// Use OpenDefault to take the first backend that loads, or Open to request
// one by name. Both need a current GL context on the calling thread:
//
//	g, err := backend.OpenDefault(red.WithTeardown(win.Destroy))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer g.Release()
//
// # Available Backends
//
// - "native": system OpenGL loaded with purego
package backend
