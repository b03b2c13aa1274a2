package red

import (
	"image"

	"golang.org/x/image/draw"
)

// TextureFromImage uploads img as an RGBA8 texture of the same size.
// Images that are not *image.RGBA are converted first.
func TextureFromImage(g *GL, img image.Image) (*Texture, error) {
	rgba := toRGBA(img)
	b := rgba.Bounds()
	return TextureFromRGBA8(g, b.Dx(), b.Dy(), rgba.Pix)
}

// ResizedTextureFromImage scales img to width x height with bilinear
// filtering and uploads it.
func ResizedTextureFromImage(g *GL, img image.Image, width, height int) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return TextureFromRGBA8(g, width, height, nil)
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return TextureFromRGBA8(g, width, height, dst.Pix)
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == rgba.Rect.Dx()*4 {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
