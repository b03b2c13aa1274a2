package native

import (
	"github.com/gogpu/red/backend"
	"github.com/gogpu/red/gl"
)

func init() {
	backend.Register(backend.BackendNative, func() (gl.Context, error) {
		c, err := Load()
		if err != nil {
			return nil, err
		}
		return c, nil
	})
}
