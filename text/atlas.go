package text

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/red"
)

// Sentinel errors for text package.
var (
	// ErrAtlasFull is returned when a glyph does not fit in the remaining space.
	ErrAtlasFull = errors.New("text: glyph atlas is full")

	// ErrMissingGlyph is returned when the face has no glyph for a rune.
	ErrMissingGlyph = errors.New("text: face has no glyph for rune")
)

// padding keeps linear filtering from bleeding between neighbours.
const padding = 1

// Glyph locates one rasterized glyph in the atlas.
type Glyph struct {
	// Rect is the glyph's texel rectangle in the atlas. It is empty for
	// glyphs without ink, such as space.
	Rect image.Rectangle
	// Bearing is the offset from the pen position on the baseline to the
	// top-left corner of Rect, y down.
	Bearing image.Point
	// Advance is the pen advance in pixels.
	Advance float32
	// UV is Rect in normalized texture coordinates: u0, v0, u1, v1.
	UV [4]float32
}

// Atlas caches glyphs of one face in a square single-channel texture,
// packed in shelves.
type Atlas struct {
	face   font.Face
	tex    *red.Texture
	size   int
	glyphs map[rune]Glyph

	x, y, shelf int
}

// NewAtlas allocates a size x size coverage texture for glyphs of face.
func NewAtlas(g *red.GL, face font.Face, size int) (*Atlas, error) {
	tex, err := red.NewTexture(g, size, size,
		red.WithTextureFormat(gputypes.TextureFormatR8Unorm),
		red.WithSampler(red.SamplerConfig{
			MinFilter: gputypes.FilterModeLinear,
			MagFilter: gputypes.FilterModeLinear,
			WrapS:     gputypes.AddressModeClampToEdge,
			WrapT:     gputypes.AddressModeClampToEdge,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("text: atlas texture: %w", err)
	}
	return &Atlas{
		face:   face,
		tex:    tex,
		size:   size,
		glyphs: make(map[rune]Glyph),
		x:      padding,
		y:      padding,
	}, nil
}

// DefaultFace returns the Go Regular face at size pixels per em.
func DefaultFace(size float64) (font.Face, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("text: parse Go Regular: %w", err)
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Glyph returns the atlas entry for r, rasterizing and uploading it on
// first use.
func (a *Atlas) Glyph(r rune) (Glyph, error) {
	if gly, ok := a.glyphs[r]; ok {
		return gly, nil
	}
	dr, mask, maskp, advance, ok := a.face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return Glyph{}, fmt.Errorf("%w: %q", ErrMissingGlyph, r)
	}
	gly := Glyph{
		Bearing: dr.Min,
		Advance: float32(advance) / 64,
	}
	if w, h := dr.Dx(), dr.Dy(); w > 0 && h > 0 {
		rect, err := a.place(w, h)
		if err != nil {
			return Glyph{}, fmt.Errorf("%w: %q needs %dx%d", err, r, w, h)
		}
		cov := image.NewAlpha(image.Rect(0, 0, w, h))
		draw.Draw(cov, cov.Bounds(), mask, maskp, draw.Src)
		if err := a.tex.Update(rect.Min.X, rect.Min.Y, w, h, cov.Pix); err != nil {
			return Glyph{}, err
		}
		s := float32(a.size)
		gly.Rect = rect
		gly.UV = [4]float32{
			float32(rect.Min.X) / s, float32(rect.Min.Y) / s,
			float32(rect.Max.X) / s, float32(rect.Max.Y) / s,
		}
	}
	a.glyphs[r] = gly
	red.Logger().Debug("text: glyph cached", "rune", string(r), "rect", gly.Rect)
	return gly, nil
}

// Preload caches every rune of s.
func (a *Atlas) Preload(s string) error {
	for _, r := range s {
		if _, err := a.Glyph(r); err != nil {
			return err
		}
	}
	return nil
}

// place reserves a w x h cell, opening a new shelf when the current one
// is out of width.
func (a *Atlas) place(w, h int) (image.Rectangle, error) {
	if a.x+w+padding > a.size {
		a.x = padding
		a.y += a.shelf + padding
		a.shelf = 0
	}
	if a.x+w+padding > a.size || a.y+h+padding > a.size {
		return image.Rectangle{}, ErrAtlasFull
	}
	rect := image.Rect(a.x, a.y, a.x+w, a.y+h)
	a.x += w + padding
	a.shelf = max(a.shelf, h)
	return rect, nil
}

// Len returns the number of cached glyphs.
func (a *Atlas) Len() int { return len(a.glyphs) }

// Texture returns the coverage texture, for binding as a sampler uniform.
func (a *Atlas) Texture() *red.Texture { return a.tex }

// Delete releases the texture.
func (a *Atlas) Delete() { a.tex.Delete() }
