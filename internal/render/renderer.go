// Package render overwrites resolved image regions with replacement text that
// blends into the surrounding document background, and provides the banner
// overlay used when no region could be resolved.
package render

import (
	"errors"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/docveil/docveil/internal/utils"
)

// Config controls region rendering.
type Config struct {
	// MinPaddingPx is the minimum padding added around a region before
	// filling; the effective padding is max(MinPaddingPx, height/10).
	MinPaddingPx int
	// BaseFontSizePx is the font size corresponding to scale 1.0.
	BaseFontSizePx float64
	// FontScales is the descending sequence of scales tried during text fit.
	FontScales []float64
	// WidthFitRatio and HeightFitRatio bound the rendered text size relative
	// to the region.
	WidthFitRatio  float64
	HeightFitRatio float64
}

// DefaultConfig returns the default rendering parameters.
func DefaultConfig() Config {
	return Config{
		MinPaddingPx:   5,
		BaseFontSizePx: 22,
		FontScales:     []float64{2.0, 1.5, 1.2, 1.0, 0.8, 0.6, 0.5, 0.4},
		WidthFitRatio:  0.9,
		HeightFitRatio: 0.8,
	}
}

// Renderer draws replacement text over image regions. It is not safe for
// concurrent use; each pipeline run owns its renderer and image buffer.
type Renderer struct {
	cfg   Config
	faces map[float64]font.Face
}

// NewRenderer creates a renderer with the given config.
func NewRenderer(cfg Config) *Renderer {
	if len(cfg.FontScales) == 0 {
		cfg.FontScales = DefaultConfig().FontScales
	}
	if cfg.BaseFontSizePx <= 0 {
		cfg.BaseFontSizePx = DefaultConfig().BaseFontSizePx
	}
	return &Renderer{cfg: cfg, faces: make(map[float64]font.Face)}
}

// Redact fills the padded region with the estimated background color and
// draws the replacement text centered over it, mutating img in place.
func (r *Renderer) Redact(img *image.RGBA, box utils.Box, text string) error {
	bounds := img.Bounds()
	rect := box.ToRect(bounds)
	if rect.Empty() {
		return errors.New("region is empty after clamping to image bounds")
	}

	pad := maxInt(r.cfg.MinPaddingPx, rect.Dy()/10)
	padded := image.Rect(rect.Min.X-pad, rect.Min.Y-pad, rect.Max.X+pad, rect.Max.Y+pad).
		Intersect(bounds)

	bg := estimateBackground(img, padded)
	r.fill(img, padded, bg)

	face, err := r.fitFace(text, padded.Dx(), padded.Dy())
	if err != nil {
		return err
	}
	drawCentered(img, padded, face, text, TextColorFor(bg))
	return nil
}

// TextColorFor picks black or white for maximum contrast against the
// background using the Rec. 601 luminance weights.
func TextColorFor(bg color.RGBA) color.RGBA {
	luminance := 0.299*float64(bg.R) + 0.587*float64(bg.G) + 0.114*float64(bg.B)
	if luminance > 128 {
		return color.RGBA{A: 255} // black
	}
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}

// fitFace returns the face for the largest scale whose rendered text fits
// within the configured ratios of the region, or the smallest scale when
// none fit.
func (r *Renderer) fitFace(text string, maxW, maxH int) (font.Face, error) {
	limitW := float64(maxW) * r.cfg.WidthFitRatio
	limitH := float64(maxH) * r.cfg.HeightFitRatio
	var face font.Face
	for _, scale := range r.cfg.FontScales {
		f, err := r.face(r.cfg.BaseFontSizePx * scale)
		if err != nil {
			return nil, err
		}
		face = f
		w, h := measureText(f, text)
		if float64(w) <= limitW && float64(h) <= limitH {
			return f, nil
		}
	}
	return face, nil
}

// fill paints rect with the background color, feathering the edges into the
// surrounding pixels and biasing the color near each edge toward the locally
// sampled side colors so the patch approximates the document's gradient.
func (r *Renderer) fill(img *image.RGBA, rect image.Rectangle, bg color.RGBA) {
	feather := maxInt(2, r.cfg.MinPaddingPx/2+1)
	biasRange := maxInt(2*feather, minInt(rect.Dx(), rect.Dy())/4)

	top, topOK := sideBandColor(img, rect, sideTop)
	bottom, bottomOK := sideBandColor(img, rect, sideBottom)
	left, leftOK := sideBandColor(img, rect, sideLeft)
	right, rightOK := sideBandColor(img, rect, sideRight)

	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dl := x - rect.Min.X
			dr := rect.Max.X - 1 - x
			dt := y - rect.Min.Y
			db := rect.Max.Y - 1 - y

			c := bg
			if leftOK {
				c = mix(c, left, edgeBias(dl, biasRange))
			}
			if rightOK {
				c = mix(c, right, edgeBias(dr, biasRange))
			}
			if topOK {
				c = mix(c, top, edgeBias(dt, biasRange))
			}
			if bottomOK {
				c = mix(c, bottom, edgeBias(db, biasRange))
			}

			// Soften the patch boundary so no hard rectangle edge remains.
			if d := minInt(minInt(dl, dr), minInt(dt, db)); d < feather {
				alpha := float64(d+1) / float64(feather+1)
				c = mix(img.RGBAAt(x, y), c, alpha)
			}
			img.SetRGBA(x, y, c)
		}
	}
}

type side int

const (
	sideTop side = iota
	sideBottom
	sideLeft
	sideRight
)

// sideBandColor samples the median color of the band just outside one edge.
func sideBandColor(img *image.RGBA, rect image.Rectangle, s side) (color.RGBA, bool) {
	var band image.Rectangle
	switch s {
	case sideTop:
		band = image.Rect(rect.Min.X, rect.Min.Y-sideBandThickness, rect.Max.X, rect.Min.Y)
	case sideBottom:
		band = image.Rect(rect.Min.X, rect.Max.Y, rect.Max.X, rect.Max.Y+sideBandThickness)
	case sideLeft:
		band = image.Rect(rect.Min.X-sideBandThickness, rect.Min.Y, rect.Min.X, rect.Max.Y)
	case sideRight:
		band = image.Rect(rect.Max.X, rect.Min.Y, rect.Max.X+sideBandThickness, rect.Max.Y)
	}
	band = band.Intersect(img.Bounds())
	if band.Empty() {
		return color.RGBA{}, false
	}
	var pixels []color.RGBA
	for y := band.Min.Y; y < band.Max.Y; y++ {
		for x := band.Min.X; x < band.Max.X; x++ {
			pixels = append(pixels, img.RGBAAt(x, y))
		}
	}
	return medianColor(pixels), true
}

// edgeBias is the blend weight toward a side color at distance d from that
// side, decaying linearly to zero at rang.
func edgeBias(d, rang int) float64 {
	if d >= rang {
		return 0
	}
	const maxBias = 0.35
	return maxBias * (1 - float64(d)/float64(rang))
}

// mix blends toward c2 by weight w in [0,1].
func mix(c1, c2 color.RGBA, w float64) color.RGBA {
	if w <= 0 {
		return c1
	}
	if w > 1 {
		w = 1
	}
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a)*(1-w) + float64(b)*w + 0.5)
	}
	return color.RGBA{
		R: lerp(c1.R, c2.R),
		G: lerp(c1.G, c2.G),
		B: lerp(c1.B, c2.B),
		A: 255,
	}
}

// drawCentered draws text centered within rect.
func drawCentered(img *image.RGBA, rect image.Rectangle, face font.Face, text string, col color.RGBA) {
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
	}
	w := drawer.MeasureString(text).Ceil()
	m := face.Metrics()
	x := rect.Min.X + (rect.Dx()-w)/2
	y := rect.Min.Y + (rect.Dy()+m.Ascent.Ceil()-m.Descent.Ceil())/2
	drawer.Dot = fixed.P(x, y)
	drawer.DrawString(text)
}
