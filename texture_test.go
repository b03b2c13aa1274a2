package red

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"slices"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/red/gl"
)

func TestTextureFromRGBA8(t *testing.T) {
	g, rec := newTestGL(t)
	pixels := []byte{255, 0, 0, 255, 0, 255, 0, 128}

	tex, err := TextureFromRGBA8(g, 2, 1, pixels)
	if err != nil {
		t.Fatalf("TextureFromRGBA8() = %v", err)
	}
	defer tex.Delete()

	want := []string{
		"CreateTexture()",
		"ActiveTexture(TEXTURE0)",
		fmt.Sprintf("BindTexture(TEXTURE_2D, %d)", tex.ID()),
		"TexImage2D(TEXTURE_2D, 0, RGBA8, 2, 1, RGBA, UNSIGNED_BYTE, 8)",
		"TexParameteri(TEXTURE_2D, TEXTURE_WRAP_S, CLAMP_TO_EDGE)",
		"TexParameteri(TEXTURE_2D, TEXTURE_WRAP_T, CLAMP_TO_EDGE)",
		"TexParameteri(TEXTURE_2D, TEXTURE_MIN_FILTER, NEAREST)",
		"TexParameteri(TEXTURE_2D, TEXTURE_MAG_FILTER, NEAREST)",
		"BindTexture(TEXTURE_2D, 0)",
	}
	if got := rec.Names(); !slices.Equal(got, want) {
		t.Errorf("calls:\n got %q\nwant %q", got, want)
	}

	stored, _ := rec.Texture(tex.ID())
	if string(stored.Pixels) != string(pixels) {
		t.Errorf("stored pixels = %v, want %v", stored.Pixels, pixels)
	}
	if w, h := tex.Dimensions(); w != 2 || h != 1 {
		t.Errorf("Dimensions() = %dx%d, want 2x1", w, h)
	}
	if tex.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format() = %v", tex.Format())
	}
}

func TestTextureFromRGBA8Errors(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		pixels        []byte
		want          error
	}{
		{"zero width", 0, 1, nil, ErrInvalidTextureSize},
		{"negative height", 1, -1, nil, ErrInvalidTextureSize},
		{"short data", 2, 2, make([]byte, 15), ErrPixelDataSize},
		{"long data", 1, 1, make([]byte, 5), ErrPixelDataSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, rec := newTestGL(t)
			_, err := TextureFromRGBA8(g, tt.width, tt.height, tt.pixels)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if rec.Count("CreateTexture") != 0 {
				t.Error("invalid upload allocated a texture")
			}
		})
	}
}

func TestNewTexture(t *testing.T) {
	g, rec := newTestGL(t)
	tex, err := NewTexture(g, 4, 2)
	if err != nil {
		t.Fatalf("NewTexture() = %v", err)
	}
	defer tex.Delete()

	if got := rec.Filter("PixelStorei"); len(got) != 1 || got[0] != "PixelStorei(UNPACK_ALIGNMENT, 1)" {
		t.Errorf("PixelStorei calls = %q", got)
	}
	if got := rec.Filter("TexImage2D"); len(got) != 1 || got[0] != "TexImage2D(TEXTURE_2D, 0, RGBA8, 4, 2, RGBA, UNSIGNED_BYTE, 0)" {
		t.Errorf("TexImage2D calls = %q", got)
	}
	stored, _ := rec.Texture(tex.ID())
	if stored.Params[gl.TextureMinFilter] != gl.Linear || stored.Params[gl.TextureMagFilter] != gl.Nearest {
		t.Errorf("default filters = %v", stored.Params)
	}
	if rec.Bound(gl.Texture2D) != 0 {
		t.Error("NewTexture left the texture bound")
	}
}

func TestNewTextureOptions(t *testing.T) {
	g, rec := newTestGL(t)
	tex, err := NewTexture(g, 4, 2,
		WithTextureFormat(gputypes.TextureFormatR8Unorm),
		WithSampler(SamplerConfig{
			MinFilter: gputypes.FilterModeLinear,
			MagFilter: gputypes.FilterModeLinear,
			WrapS:     gputypes.AddressModeRepeat,
			WrapT:     gputypes.AddressModeMirrorRepeat,
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer tex.Delete()

	if got := rec.Filter("TexImage2D"); len(got) != 1 || got[0] != "TexImage2D(TEXTURE_2D, 0, R8, 4, 2, RED, UNSIGNED_BYTE, 0)" {
		t.Errorf("TexImage2D calls = %q", got)
	}
	stored, _ := rec.Texture(tex.ID())
	wantParams := map[uint32]int32{
		gl.TextureWrapS:     gl.Repeat,
		gl.TextureWrapT:     gl.MirroredRepeat,
		gl.TextureMinFilter: gl.Linear,
		gl.TextureMagFilter: gl.Linear,
	}
	for pname, want := range wantParams {
		if got := stored.Params[pname]; got != want {
			t.Errorf("param %#x = %#x, want %#x", pname, got, want)
		}
	}
	if len(stored.Pixels) != 8 {
		t.Errorf("R8 storage is %d bytes, want 8", len(stored.Pixels))
	}
}

func TestNewTextureUnsupportedFormat(t *testing.T) {
	g, _ := newTestGL(t)
	_, err := NewTexture(g, 1, 1, WithTextureFormat(gputypes.TextureFormatBGRA8Unorm))
	if !errors.Is(err, ErrUnsupportedTextureFormat) {
		t.Errorf("error = %v, want ErrUnsupportedTextureFormat", err)
	}
}

func TestTextureUpdate(t *testing.T) {
	g, rec := newTestGL(t)
	tex, err := NewTexture(g, 4, 2, WithTextureFormat(gputypes.TextureFormatR8Unorm))
	if err != nil {
		t.Fatal(err)
	}
	defer tex.Delete()

	if err := tex.Update(1, 1, 2, 1, []byte{9, 8}); err != nil {
		t.Fatalf("Update() = %v", err)
	}
	stored, _ := rec.Texture(tex.ID())
	want := []byte{0, 0, 0, 0, 0, 9, 8, 0}
	if string(stored.Pixels) != string(want) {
		t.Errorf("pixels = %v, want %v", stored.Pixels, want)
	}

	tests := []struct {
		name       string
		x, y, w, h int
		pixels     []byte
		want       error
	}{
		{"outside", 3, 0, 2, 1, []byte{1, 2}, ErrInvalidTextureSize},
		{"negative origin", -1, 0, 1, 1, []byte{1}, ErrInvalidTextureSize},
		{"empty", 0, 0, 0, 1, nil, ErrInvalidTextureSize},
		{"wrong size", 0, 0, 2, 1, []byte{1}, ErrPixelDataSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tex.Update(tt.x, tt.y, tt.w, tt.h, tt.pixels); !errors.Is(err, tt.want) {
				t.Errorf("Update() error = %v, want %v", err, tt.want)
			}
		})
	}
	if rec.GetError() != gl.NoError {
		t.Error("texture updates raised a GL error")
	}
}

func TestTextureSetSampler(t *testing.T) {
	g, rec := newTestGL(t)
	tex, err := TextureFromRGBA8(g, 1, 1, []byte{0, 0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	defer tex.Delete()

	tex.SetSampler(SamplerConfig{
		MinFilter: gputypes.FilterModeLinear,
		MagFilter: gputypes.FilterModeLinear,
		WrapS:     gputypes.AddressModeRepeat,
		WrapT:     gputypes.AddressModeRepeat,
	})
	stored, _ := rec.Texture(tex.ID())
	if stored.Params[gl.TextureMagFilter] != gl.Linear || stored.Params[gl.TextureWrapS] != gl.Repeat {
		t.Errorf("params after SetSampler = %v", stored.Params)
	}
}

func TestTextureDeleteOnce(t *testing.T) {
	g, rec := newTestGL(t)
	tex, err := TextureFromRGBA8(g, 1, 1, []byte{0, 0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	tex.Delete()
	tex.Delete()
	if got := rec.Count("DeleteTexture"); got != 1 {
		t.Errorf("DeleteTexture called %d times, want 1", got)
	}
	mustPanic(t, "resource has been deleted", func() { _ = tex.Update(0, 0, 1, 1, []byte{0, 0, 0, 0}) })
}

func TestTextureFromImage(t *testing.T) {
	g, rec := newTestGL(t)

	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	src.SetNRGBA(0, 1, color.NRGBA{R: 40, G: 50, B: 60, A: 255})

	tex, err := TextureFromImage(g, src)
	if err != nil {
		t.Fatalf("TextureFromImage() = %v", err)
	}
	defer tex.Delete()

	stored, _ := rec.Texture(tex.ID())
	want := []byte{
		0, 0, 0, 0, 10, 20, 30, 255,
		40, 50, 60, 255, 0, 0, 0, 0,
	}
	if string(stored.Pixels) != string(want) {
		t.Errorf("pixels = %v, want %v", stored.Pixels, want)
	}
}

func TestTextureFromSubImage(t *testing.T) {
	g, rec := newTestGL(t)

	full := image.NewRGBA(image.Rect(0, 0, 4, 4))
	full.SetRGBA(2, 2, color.RGBA{R: 1, G: 2, B: 3, A: 4})
	sub := full.SubImage(image.Rect(2, 2, 3, 3))

	tex, err := TextureFromImage(g, sub)
	if err != nil {
		t.Fatal(err)
	}
	defer tex.Delete()

	if w, h := tex.Dimensions(); w != 1 || h != 1 {
		t.Fatalf("Dimensions() = %dx%d, want 1x1", w, h)
	}
	stored, _ := rec.Texture(tex.ID())
	if string(stored.Pixels) != string([]byte{1, 2, 3, 4}) {
		t.Errorf("pixels = %v, want [1 2 3 4]", stored.Pixels)
	}
}

func TestResizedTextureFromImage(t *testing.T) {
	g, _ := newTestGL(t)
	src := image.NewRGBA(image.Rect(0, 0, 8, 4))

	tex, err := ResizedTextureFromImage(g, src, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer tex.Delete()
	if w, h := tex.Dimensions(); w != 4 || h != 2 {
		t.Errorf("Dimensions() = %dx%d, want 4x2", w, h)
	}

	if _, err := ResizedTextureFromImage(g, src, 0, 2); !errors.Is(err, ErrInvalidTextureSize) {
		t.Errorf("error = %v, want ErrInvalidTextureSize", err)
	}
}
