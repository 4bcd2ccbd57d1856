package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docveil/docveil/internal/testutil"
	"github.com/docveil/docveil/internal/utils"
)

func TestTextColorFor(t *testing.T) {
	tests := []struct {
		name string
		bg   color.RGBA
		want color.RGBA
	}{
		{
			name: "near-white background gets black text",
			bg:   color.RGBA{R: 250, G: 250, B: 250, A: 255},
			want: color.RGBA{A: 255},
		},
		{
			name: "near-black background gets white text",
			bg:   color.RGBA{R: 10, G: 10, B: 10, A: 255},
			want: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		},
		{
			name: "saturated green counts as bright",
			bg:   color.RGBA{G: 255, A: 255},
			want: color.RGBA{A: 255},
		},
		{
			name: "saturated blue counts as dark",
			bg:   color.RGBA{B: 255, A: 255},
			want: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TextColorFor(tt.bg))
		})
	}
}

func TestFitFacePrefersLargestFittingScale(t *testing.T) {
	r := NewRenderer(DefaultConfig())

	large, err := r.fitFace("XXXX XXXX 9012", 2000, 400)
	require.NoError(t, err)
	small, err := r.fitFace("XXXX XXXX 9012", 120, 24)
	require.NoError(t, err)

	wLarge, _ := measureText(large, "XXXX XXXX 9012")
	wSmall, _ := measureText(small, "XXXX XXXX 9012")
	assert.Greater(t, wLarge, wSmall)
	assert.LessOrEqual(t, float64(wLarge), 2000*DefaultConfig().WidthFitRatio)
}

func TestFitFaceFallsBackToSmallestScale(t *testing.T) {
	r := NewRenderer(DefaultConfig())

	// Region too small for any scale: the smallest scale is still returned so
	// that something legible is drawn.
	face, err := r.fitFace("XXXX XXXX 9012", 10, 4)
	require.NoError(t, err)
	require.NotNil(t, face)

	smallest, err := r.face(DefaultConfig().BaseFontSizePx * 0.4)
	require.NoError(t, err)
	wGot, _ := measureText(face, "XXXX XXXX 9012")
	wWant, _ := measureText(smallest, "XXXX XXXX 9012")
	assert.Equal(t, wWant, wGot)
}

func TestRedactMutatesRegionOnly(t *testing.T) {
	img := testutil.CreateDocumentImage(400, 200, []testutil.TextLine{
		{Text: "1234 5678 9012", X: 100, Y: 100},
	})
	before := image.NewRGBA(img.Bounds())
	copy(before.Pix, img.Pix)

	r := NewRenderer(DefaultConfig())
	box := utils.NewBox(100, 88, 200, 104)
	require.NoError(t, r.Redact(img, box, "XXXX XXXX 9012"))

	changed := false
	rect := box.ToRect(img.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y && !changed; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if img.RGBAAt(x, y) != before.RGBAAt(x, y) {
				changed = true
				break
			}
		}
	}
	assert.True(t, changed, "region pixels should be overwritten")

	// Pixels well away from the padded region stay untouched.
	far := image.Rect(300, 10, 390, 40)
	for y := far.Min.Y; y < far.Max.Y; y++ {
		for x := far.Min.X; x < far.Max.X; x++ {
			require.Equal(t, before.RGBAAt(x, y), img.RGBAAt(x, y))
		}
	}
}

func TestRedactRemovesOriginalInk(t *testing.T) {
	ink := color.RGBA{R: 28, G: 28, B: 28, A: 255}
	img := testutil.CreateDocumentImage(400, 200, []testutil.TextLine{
		{Text: "1234 5678 9012", X: 100, Y: 100},
	})

	r := NewRenderer(DefaultConfig())
	box := utils.NewBox(100, 88, 200, 104)
	require.NoError(t, r.Redact(img, box, "XXXX XXXX 9012"))

	// The replacement text is black on this light background, so individual
	// dark pixels are expected; what must be gone is the original glyph
	// layout. Check a row between baseline and cap height at the left edge of
	// the original run: the fill repaints it with the sampled background.
	count := 0
	for x := 100; x < 110; x++ {
		if img.RGBAAt(x, 94) == ink {
			count++
		}
	}
	assert.Less(t, count, 10, "original glyph column should not survive intact")
}

func TestRedactEmptyRegion(t *testing.T) {
	img := testutil.CreateTestImage(100, 100, color.White)
	r := NewRenderer(DefaultConfig())

	// Entirely outside the image.
	err := r.Redact(img, utils.NewBox(200, 200, 300, 300), "XXXX XXXX 9012")
	assert.Error(t, err)
}

func TestOverlayDarkensBottomStrip(t *testing.T) {
	base := color.RGBA{R: 245, G: 243, B: 238, A: 255}
	img := testutil.CreateTestImage(400, 300, base)

	r := NewRenderer(DefaultConfig())
	require.NoError(t, r.Overlay(img, "XXXX XXXX 9012"))

	darkened := mix(base, color.RGBA{A: 255}, overlayOpacity)
	// Corners of the strip are clear of banner text.
	assert.Equal(t, darkened, img.RGBAAt(2, 300-overlayStripHeight+2))
	assert.Equal(t, darkened, img.RGBAAt(397, 297))
	// Above the strip the image is untouched.
	assert.Equal(t, base, img.RGBAAt(200, 300-overlayStripHeight-1))
}

func TestOverlayDrawsBannerText(t *testing.T) {
	img := testutil.CreateTestImage(400, 300, color.White)
	r := NewRenderer(DefaultConfig())
	require.NoError(t, r.Overlay(img, "XXXX XXXX 9012"))

	found := false
	for y := 300 - overlayStripHeight; y < 300 && !found; y++ {
		for x := 0; x < 400; x++ {
			c := img.RGBAAt(x, y)
			if c.G > 200 && c.R < 100 && c.B < 100 {
				found = true
				break
			}
		}
	}
	assert.True(t, found, "banner text pixels should be green")
}

func TestOverlayShortImage(t *testing.T) {
	// Image shorter than the strip: the strip clamps to the image instead of
	// failing.
	img := testutil.CreateTestImage(200, 40, color.White)
	r := NewRenderer(DefaultConfig())
	assert.NoError(t, r.Overlay(img, "XXXX XXXX 9012"))
}

func TestMix(t *testing.T) {
	a := color.RGBA{R: 100, G: 100, B: 100, A: 255}
	b := color.RGBA{R: 200, G: 0, B: 100, A: 255}

	assert.Equal(t, a, mix(a, b, 0))
	assert.Equal(t, color.RGBA{R: 200, G: 0, B: 100, A: 255}, mix(a, b, 1))

	half := mix(a, b, 0.5)
	assert.Equal(t, uint8(150), half.R)
	assert.Equal(t, uint8(50), half.G)
	assert.Equal(t, uint8(100), half.B)
}
