package effects

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
)

// Glyph cell geometry of the embedded sheet. The tile effect's uniform
// block carries these so the shader never hardcodes them.
const (
	TileWidth  = 8
	TileHeight = 16
)

// GlyphSheet decodes the embedded glyph sprite sheet: a grid of
// TileWidth×TileHeight cells ordered row-major by ascending ink density.
func GlyphSheet() (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(glyphSheetPNG))
	if err != nil {
		return nil, fmt.Errorf("decode glyph sheet: %w", err)
	}
	b := img.Bounds()
	if b.Dx()%TileWidth != 0 || b.Dy()%TileHeight != 0 {
		return nil, fmt.Errorf("glyph sheet %dx%d is not a whole number of %dx%d cells",
			b.Dx(), b.Dy(), TileWidth, TileHeight)
	}
	return img, nil
}

// TileBrightness partitions img into tileW×tileH cells and returns the
// average luma (0.299R + 0.587G + 0.114B) of each cell, row-major, each
// value in [0,1]. This is precomputed once and uploaded as the shader's
// read-only lookup.
func TileBrightness(img image.Image, tileW, tileH int) ([]float32, error) {
	if tileW <= 0 || tileH <= 0 {
		return nil, fmt.Errorf("invalid tile size %dx%d", tileW, tileH)
	}
	b := img.Bounds()
	if b.Dx()%tileW != 0 || b.Dy()%tileH != 0 {
		return nil, fmt.Errorf("image %dx%d is not a whole number of %dx%d tiles",
			b.Dx(), b.Dy(), tileW, tileH)
	}

	gridW := b.Dx() / tileW
	gridH := b.Dy() / tileH
	lookup := make([]float32, 0, gridW*gridH)

	for ty := 0; ty < gridH; ty++ {
		for tx := 0; tx < gridW; tx++ {
			var sum float64
			for y := 0; y < tileH; y++ {
				for x := 0; x < tileW; x++ {
					r, g, bl, _ := img.At(b.Min.X+tx*tileW+x, b.Min.Y+ty*tileH+y).RGBA()
					// RGBA returns 16-bit channels
					luma := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(bl)
					sum += luma / 65535.0
				}
			}
			lookup = append(lookup, float32(sum/float64(tileW*tileH)))
		}
	}
	return lookup, nil
}
