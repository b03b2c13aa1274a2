package red

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gogpu/red/gl/gltest"
)

const testVertexSource = `#version 330 core
layout(location = 0) in vec2 position;
layout(location = 1) in vec4 color;
uniform mat4 u_proj;
out vec4 v_color;
void main() {
	v_color = color;
	gl_Position = u_proj * vec4(position, 0.0, 1.0);
}
`

const testFragmentSource = `#version 330 core
in vec4 v_color;
uniform float u_alpha;
uniform vec2 u_offset;
uniform vec3 u_tint;
uniform vec4 u_color;
uniform int u_mode;
uniform sampler2D u_tex;
out vec4 frag;
void main() {
	frag = v_color;
}
`

// testVertex matches the inputs of testVertexSource.
type testVertex struct {
	Pos   F32x2    `attr:"position"`
	Color U8x4Norm `attr:"color"`
}

func newTestGL(t *testing.T, opts ...Option) (*GL, *gltest.Recorder) {
	t.Helper()
	rec := gltest.New()
	g := NewGL(rec, opts...)
	t.Cleanup(g.Release)
	return g, rec
}

func newTestProgram(t *testing.T, g *GL, vertex, fragment string) *Program {
	t.Helper()
	vs, err := VertexShaderFromSource(g, vertex)
	if err != nil {
		t.Fatalf("VertexShaderFromSource() = %v", err)
	}
	defer vs.Delete()
	fs, err := FragmentShaderFromSource(g, fragment)
	if err != nil {
		t.Fatalf("FragmentShaderFromSource() = %v", err)
	}
	defer fs.Delete()
	p, err := ProgramFromShaders(g, vs, fs)
	if err != nil {
		t.Fatalf("ProgramFromShaders() = %v", err)
	}
	t.Cleanup(p.Delete)
	return p
}

// mustPanic runs fn and fails unless it panics with a message containing want.
func mustPanic(t *testing.T, want string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q", want)
		}
		if msg := fmt.Sprint(r); !strings.Contains(msg, want) {
			t.Fatalf("panic = %q, want it to contain %q", msg, want)
		}
	}()
	fn()
}
