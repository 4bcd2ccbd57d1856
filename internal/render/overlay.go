package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	// overlayStripHeight is the height of the banner strip drawn at the
	// bottom of the image.
	overlayStripHeight = 80
	// overlayOpacity is the strip's blend weight toward black.
	overlayOpacity = 0.7
	// overlayFontScale sets the banner text size relative to the base size.
	overlayFontScale = 1.2
	// overlayBaselineOffset is the text baseline distance from the bottom.
	overlayBaselineOffset = 30
)

var overlayTextColor = color.RGBA{G: 255, A: 255}

// Overlay draws a semi-transparent banner with the masked identifier at the
// bottom of the image. It is the degraded, non-targeted redaction used when
// no specific location could be resolved.
func (r *Renderer) Overlay(img *image.RGBA, maskedText string) error {
	bounds := img.Bounds()
	strip := image.Rect(bounds.Min.X, bounds.Max.Y-overlayStripHeight, bounds.Max.X, bounds.Max.Y).
		Intersect(bounds)
	black := color.RGBA{A: 255}
	for y := strip.Min.Y; y < strip.Max.Y; y++ {
		for x := strip.Min.X; x < strip.Max.X; x++ {
			img.SetRGBA(x, y, mix(img.RGBAAt(x, y), black, overlayOpacity))
		}
	}

	face, err := r.face(r.cfg.BaseFontSizePx * overlayFontScale)
	if err != nil {
		return err
	}
	label := "Masked: " + maskedText
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(overlayTextColor),
		Face: face,
	}
	w := drawer.MeasureString(label).Ceil()
	x := bounds.Min.X + (bounds.Dx()-w)/2
	y := bounds.Max.Y - overlayBaselineOffset
	drawer.Dot = fixed.P(x, y)
	drawer.DrawString(label)
	return nil
}
