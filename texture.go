package red

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/red/gl"
)

// SamplerConfig selects texture filtering and wrapping.
type SamplerConfig struct {
	MinFilter gputypes.FilterMode
	MagFilter gputypes.FilterMode
	WrapS     gputypes.AddressMode
	WrapT     gputypes.AddressMode
}

// NearestClamp samples the nearest texel and clamps coordinates.
var NearestClamp = SamplerConfig{
	MinFilter: gputypes.FilterModeNearest,
	MagFilter: gputypes.FilterModeNearest,
	WrapS:     gputypes.AddressModeClampToEdge,
	WrapT:     gputypes.AddressModeClampToEdge,
}

// textureFormat is how one texture format is uploaded.
type textureFormat struct {
	internal int32
	format   uint32
	bpp      int
}

var textureFormats = map[gputypes.TextureFormat]textureFormat{
	gputypes.TextureFormatRGBA8Unorm: {internal: gl.RGBA8, format: gl.RGBA, bpp: 4},
	gputypes.TextureFormatR8Unorm:    {internal: gl.R8, format: gl.Red, bpp: 1},
}

func glFilter(f gputypes.FilterMode) int32 {
	if f == gputypes.FilterModeLinear {
		return gl.Linear
	}
	return gl.Nearest
}

func glWrap(a gputypes.AddressMode) int32 {
	switch a {
	case gputypes.AddressModeRepeat:
		return gl.Repeat
	case gputypes.AddressModeMirrorRepeat:
		return gl.MirroredRepeat
	default:
		return gl.ClampToEdge
	}
}

// TextureOption configures NewTexture.
type TextureOption func(*textureOptions)

type textureOptions struct {
	format  gputypes.TextureFormat
	sampler SamplerConfig
}

// WithTextureFormat sets the texel format. RGBA8Unorm is the default;
// R8Unorm suits single-channel data such as glyph coverage.
func WithTextureFormat(f gputypes.TextureFormat) TextureOption {
	return func(o *textureOptions) { o.format = f }
}

// WithSampler sets the initial filtering and wrapping.
func WithSampler(s SamplerConfig) TextureOption {
	return func(o *textureOptions) { o.sampler = s }
}

// Texture is an owned 2D texture object.
type Texture struct {
	resource
	width, height int
	format        gputypes.TextureFormat
}

func newTexture(g *GL, width, height int, format gputypes.TextureFormat) (*Texture, textureFormat, error) {
	tf, ok := textureFormats[format]
	if !ok {
		return nil, tf, fmt.Errorf("%w: %v", ErrUnsupportedTextureFormat, format)
	}
	if width <= 0 || height <= 0 {
		return nil, tf, fmt.Errorf("%w: %dx%d", ErrInvalidTextureSize, width, height)
	}
	r, err := newResource(g, "texture",
		func(raw gl.Context) (uint32, error) { return raw.CreateTexture() },
		func(raw gl.Context, id uint32) { raw.DeleteTexture(id) },
	)
	if err != nil {
		return nil, tf, err
	}
	t := &Texture{resource: r, width: width, height: height, format: format}
	trackLeak(t, &t.resource)
	return t, tf, nil
}

// TextureFromRGBA8 uploads width*height RGBA pixels, row by row from the
// first row in memory. The texture samples the nearest texel and clamps
// coordinates to the edge.
func TextureFromRGBA8(g *GL, width, height int, pixels []byte) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidTextureSize, width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrPixelDataSize, len(pixels), width*height*4)
	}
	t, tf, err := newTexture(g, width, height, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		return nil, err
	}
	raw := t.raw()
	raw.ActiveTexture(gl.Texture0)
	raw.BindTexture(gl.Texture2D, t.id)
	raw.TexImage2D(gl.Texture2D, 0, tf.internal, int32(width), int32(height), tf.format, gl.UnsignedByte, pixels)
	t.applySampler(raw, NearestClamp)
	raw.BindTexture(gl.Texture2D, 0)
	return t, nil
}

// NewTexture allocates uninitialized storage for a texture that is filled
// later with Update. By default it is RGBA8 with linear minification and
// nearest magnification.
func NewTexture(g *GL, width, height int, opts ...TextureOption) (*Texture, error) {
	o := textureOptions{
		format: gputypes.TextureFormatRGBA8Unorm,
		sampler: SamplerConfig{
			MinFilter: gputypes.FilterModeLinear,
			MagFilter: gputypes.FilterModeNearest,
			WrapS:     gputypes.AddressModeClampToEdge,
			WrapT:     gputypes.AddressModeClampToEdge,
		},
	}
	for _, opt := range opts {
		opt(&o)
	}
	t, tf, err := newTexture(g, width, height, o.format)
	if err != nil {
		return nil, err
	}
	raw := t.raw()
	raw.PixelStorei(gl.UnpackAlignment, 1)
	raw.ActiveTexture(gl.Texture0)
	raw.BindTexture(gl.Texture2D, t.id)
	raw.TexImage2D(gl.Texture2D, 0, tf.internal, int32(width), int32(height), tf.format, gl.UnsignedByte, nil)
	t.applySampler(raw, o.sampler)
	raw.BindTexture(gl.Texture2D, 0)
	return t, nil
}

// Update writes a w*h block of pixels at (x, y) in the texture's format.
func (t *Texture) Update(x, y, w, h int, pixels []byte) error {
	raw := t.raw()
	if x < 0 || y < 0 || w <= 0 || h <= 0 || x+w > t.width || y+h > t.height {
		return fmt.Errorf("%w: region %dx%d at (%d,%d) outside %dx%d", ErrInvalidTextureSize, w, h, x, y, t.width, t.height)
	}
	tf := textureFormats[t.format]
	if len(pixels) != w*h*tf.bpp {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrPixelDataSize, len(pixels), w*h*tf.bpp)
	}
	raw.BindTexture(gl.Texture2D, t.id)
	raw.TexSubImage2D(gl.Texture2D, 0, int32(x), int32(y), int32(w), int32(h), tf.format, gl.UnsignedByte, pixels)
	raw.BindTexture(gl.Texture2D, 0)
	return nil
}

// SetSampler changes filtering and wrapping.
func (t *Texture) SetSampler(s SamplerConfig) {
	raw := t.raw()
	raw.BindTexture(gl.Texture2D, t.id)
	t.applySampler(raw, s)
	raw.BindTexture(gl.Texture2D, 0)
}

func (t *Texture) applySampler(raw gl.Context, s SamplerConfig) {
	raw.TexParameteri(gl.Texture2D, gl.TextureWrapS, glWrap(s.WrapS))
	raw.TexParameteri(gl.Texture2D, gl.TextureWrapT, glWrap(s.WrapT))
	raw.TexParameteri(gl.Texture2D, gl.TextureMinFilter, glFilter(s.MinFilter))
	raw.TexParameteri(gl.Texture2D, gl.TextureMagFilter, glFilter(s.MagFilter))
}

// Dimensions returns the texture size in texels.
func (t *Texture) Dimensions() (width, height int) { return t.width, t.height }

// Format returns the texel format.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// Delete releases the texture. Later calls are no-ops.
func (t *Texture) Delete() {
	t.release()
}
