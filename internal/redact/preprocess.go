package redact

import (
	"image"

	"github.com/disintegration/imaging"
)

// DefaultMaxOCRDimensionPx bounds the longest side of the image handed to the
// OCR backend. Phone camera originals routinely exceed what the recognizer
// needs; downscaling keeps recognition time bounded without affecting the
// rendered output, which always targets the original resolution.
const DefaultMaxOCRDimensionPx = 4096

// downscaleForOCR resizes img so its longest side does not exceed max and
// returns the scale factor applied to the coordinates. A factor of 1 means
// the image was passed through unchanged.
func downscaleForOCR(img image.Image, max int) (image.Image, float64) {
	b := img.Bounds()
	longest := b.Dx()
	if b.Dy() > longest {
		longest = b.Dy()
	}
	if max <= 0 || longest <= max {
		return img, 1
	}
	scale := float64(max) / float64(longest)
	w := int(float64(b.Dx())*scale + 0.5)
	h := int(float64(b.Dy())*scale + 0.5)
	resized := imaging.Resize(img, w, h, imaging.Lanczos)
	return resized, float64(w) / float64(b.Dx())
}
