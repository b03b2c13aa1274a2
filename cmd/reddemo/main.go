// Command reddemo draws a stencil-masked triangle and caches a line of
// glyphs through red.
//
// With -backend trace (the default) every GL call is recorded and printed,
// which needs no display. With -backend native the caller must already
// have a GL 3.3 context current on the main thread, for example when run
// under a harness that creates one.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/red"
	"github.com/gogpu/red/backend"
	_ "github.com/gogpu/red/backend/native"
	"github.com/gogpu/red/gl"
	"github.com/gogpu/red/gl/gltest"
	"github.com/gogpu/red/text"
	"github.com/gogpu/wgpu/hal"
)

const vertexSource = `#version 330 core
layout(location = 0) in vec2 position;
layout(location = 1) in vec4 color;
uniform mat4 u_proj;
out vec4 v_color;
void main() {
	v_color = color;
	gl_Position = u_proj * vec4(position, 0.0, 1.0);
}
`

const fragmentSource = `#version 330 core
in vec4 v_color;
uniform float u_alpha;
out vec4 frag;
void main() {
	frag = vec4(v_color.rgb, v_color.a * u_alpha);
}
`

type vertex struct {
	Pos   red.F32x2    `attr:"position"`
	Color red.U8x4Norm `attr:"color"`
}

func main() {
	var (
		backendName = flag.String("backend", "trace", "GL backend: trace or native")
		width       = flag.Int("width", 800, "viewport width")
		height      = flag.Int("height", 600, "viewport height")
		message     = flag.String("text", "Hello, red!", "text to cache in the glyph atlas")
		fontSize    = flag.Float64("size", 24, "font size in pixels")
		verbose     = flag.Bool("v", false, "log resource lifecycle")
	)
	flag.Parse()

	if *verbose {
		red.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var rec *gltest.Recorder
	if *backendName == "trace" {
		rec = gltest.New()
		backend.Register("trace", func() (gl.Context, error) { return rec, nil })
	}

	g, err := backend.Open(*backendName, red.WithErrorChecks(true))
	if err != nil {
		log.Fatalf("open backend: %v", err)
	}
	defer g.Release()

	if err := run(g, int32(*width), int32(*height), *message, *fontSize); err != nil {
		log.Fatal(err)
	}

	if rec != nil {
		for _, call := range rec.Names() {
			fmt.Println(call)
		}
		if live := rec.Live(); len(live) > 0 {
			log.Printf("leaked objects: %v", live)
		}
	}
}

func run(g *red.GL, width, height int32, message string, fontSize float64) error {
	red.ViewportForWindow(width, height).SetUsed(g)

	vs, err := red.VertexShaderFromSource(g, vertexSource)
	if err != nil {
		return err
	}
	defer vs.Delete()
	fs, err := red.FragmentShaderFromSource(g, fragmentSource)
	if err != nil {
		return err
	}
	defer fs.Delete()
	p, err := red.ProgramFromShaders(g, vs, fs)
	if err != nil {
		return err
	}
	defer p.Delete()

	vb, err := red.NewVertexBuffer(g, []vertex{
		{Pos: red.F32x2{-0.5, -0.5}, Color: red.U8x4Norm{255, 64, 64, 255}},
		{Pos: red.F32x2{0.5, -0.5}, Color: red.U8x4Norm{64, 255, 64, 255}},
		{Pos: red.F32x2{0, 0.5}, Color: red.U8x4Norm{64, 64, 255, 255}},
	})
	if err != nil {
		return err
	}
	defer vb.Delete()
	ib, err := red.NewIndexBuffer(g, []uint16{0, 1, 2})
	if err != nil {
		return err
	}
	defer ib.Delete()
	vao, err := red.NewVertexArray(g)
	if err != nil {
		return err
	}
	defer vao.Delete()
	p.SetLayout(vao, vb)

	p.SetUniform("u_proj", red.Identity())
	p.SetUniform("u_alpha", red.F32(1))

	f := red.NewFrame(g)
	defer f.Release()
	f.SetClearColor(0.1, 0.1, 0.12, 1)
	f.SetClearStencil(0)
	f.Clear(red.ClearColorBuffer | red.ClearStencilBuffer)

	// Write the triangle into the stencil buffer only.
	mask := red.DefaultDrawParameters()
	mask.ColorMask = gputypes.ColorWriteMaskNone
	mask.Stencil = &red.StencilTest{
		Compare: gputypes.CompareFunctionAlways,
		Ref:     1,
		Mask:    0xFF,
		PassOp:  hal.StencilOperationReplace,
	}
	f.Draw(vao, ib, p, mask)

	// Then draw it again where the mask was written.
	fill := red.DefaultDrawParameters()
	fill.Stencil = &red.StencilTest{
		Compare: gputypes.CompareFunctionEqual,
		Ref:     1,
		Mask:    0xFF,
		PassOp:  hal.StencilOperationKeep,
	}
	f.Draw(vao, ib, p, fill)

	face, err := text.DefaultFace(fontSize)
	if err != nil {
		return err
	}
	defer face.Close()
	atlas, err := text.NewAtlas(g, face, 256)
	if err != nil {
		return err
	}
	defer atlas.Delete()
	if err := atlas.Preload(message); err != nil {
		return err
	}
	log.Printf("cached %d glyphs of %q", atlas.Len(), message)
	return nil
}
