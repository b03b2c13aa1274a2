// Package text rasterizes glyphs into a GPU texture for text rendering.
//
// An Atlas takes a golang.org/x/image/font.Face, rasterizes each rune on
// first use, and shelf-packs the coverage into a single-channel red.Texture.
// Shaping and layout are left to the caller; the atlas only answers where a
// glyph lives and how far it advances the pen.
//
//	face, err := text.DefaultFace(16)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	atlas, err := text.NewAtlas(g, face, 512)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer atlas.Delete()
//
//	glyph, err := atlas.Glyph('A')
package text
