// Package testutil provides synthetic document images for tests.
package testutil

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// CreateTestImage creates a uniform image with the given dimensions and color.
func CreateTestImage(width, height int, background color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{background}, image.Point{}, draw.Src)
	return img
}

// TextLine places a text run at a fixed position in a document image.
type TextLine struct {
	Text string
	X    int
	Y    int // baseline
}

// CreateDocumentImage renders text lines onto a light background, resembling
// a photographed identity document well enough for rendering tests.
func CreateDocumentImage(width, height int, lines []TextLine) *image.RGBA {
	img := CreateTestImage(width, height, color.RGBA{R: 245, G: 243, B: 238, A: 255})
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 28, G: 28, B: 28, A: 255}),
		Face: basicfont.Face7x13,
	}
	for _, line := range lines {
		drawer.Dot = fixed.P(line.X, line.Y)
		drawer.DrawString(line.Text)
	}
	return img
}

// RegionUniform reports whether every pixel in rect equals want.
func RegionUniform(img *image.RGBA, rect image.Rectangle, want color.RGBA) bool {
	rect = rect.Intersect(img.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if img.RGBAAt(x, y) != want {
				return false
			}
		}
	}
	return true
}
