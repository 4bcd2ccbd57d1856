package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docveil/docveil/internal/testutil"
)

func TestEstimateBackgroundUniform(t *testing.T) {
	bg := color.RGBA{R: 245, G: 243, B: 238, A: 255}
	img := testutil.CreateTestImage(400, 300, bg)

	got := estimateBackground(img, image.Rect(100, 100, 300, 160))
	assert.Equal(t, bg, got)
}

func TestEstimateBackgroundIgnoresRegionInterior(t *testing.T) {
	bg := color.RGBA{R: 245, G: 243, B: 238, A: 255}
	img := testutil.CreateTestImage(400, 300, bg)

	// Fill the region itself with black ink; the estimate samples around the
	// region, not inside it.
	rect := image.Rect(100, 100, 300, 160)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetRGBA(x, y, color.RGBA{A: 255})
		}
	}

	got := estimateBackground(img, rect)
	assert.Equal(t, bg, got)
}

func TestEstimateBackgroundRegionAtImageEdge(t *testing.T) {
	bg := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	img := testutil.CreateTestImage(400, 300, bg)

	// Region flush with the top-left corner: most ring windows fall outside
	// the image, but side bands inside still produce the right answer.
	got := estimateBackground(img, image.Rect(0, 0, 120, 40))
	assert.Equal(t, bg, got)
}

func TestEstimateBackgroundConstantFallback(t *testing.T) {
	// A 1x1 image covered entirely by the region leaves nothing to sample.
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 9, G: 9, B: 9, A: 255})

	got := estimateBackground(img, img.Bounds())
	assert.Equal(t, fallbackBackground, got)
}

func TestSamplePerimeterRingNeedsEnoughWindows(t *testing.T) {
	img := testutil.CreateTestImage(30, 30, color.RGBA{R: 80, G: 80, B: 80, A: 255})

	// Region covers the full image: every window center is outside.
	_, ok := samplePerimeterRing(img, img.Bounds())
	assert.False(t, ok)

	// Inset region: windows around it are inside.
	c, ok := samplePerimeterRing(testutil.CreateTestImage(200, 200, color.RGBA{R: 80, G: 80, B: 80, A: 255}),
		image.Rect(60, 60, 140, 140))
	require.True(t, ok)
	assert.Equal(t, color.RGBA{R: 80, G: 80, B: 80, A: 255}, c)
}

func TestSampleCornerNeighbors(t *testing.T) {
	img := testutil.CreateTestImage(50, 50, color.RGBA{R: 33, G: 66, B: 99, A: 255})

	c, ok := sampleCornerNeighbors(img, image.Rect(10, 10, 40, 40))
	require.True(t, ok)
	assert.Equal(t, color.RGBA{R: 33, G: 66, B: 99, A: 255}, c)

	// Corner at the image origin still has three of eight neighbors inside.
	_, ok = sampleCornerNeighbors(img, image.Rect(0, 0, 50, 50))
	assert.True(t, ok)
}

func TestMedianColor(t *testing.T) {
	pixels := []color.RGBA{
		{R: 10, G: 200, B: 50, A: 255},
		{R: 20, G: 100, B: 60, A: 255},
		{R: 250, G: 150, B: 40, A: 255},
	}
	got := medianColor(pixels)
	assert.Equal(t, color.RGBA{R: 20, G: 150, B: 50, A: 255}, got)
}

func TestMedianColorResistsOutliers(t *testing.T) {
	pixels := make([]color.RGBA, 0, 11)
	for i := 0; i < 10; i++ {
		pixels = append(pixels, color.RGBA{R: 240, G: 240, B: 240, A: 255})
	}
	// A single glare pixel must not move the median.
	pixels = append(pixels, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	assert.Equal(t, color.RGBA{R: 240, G: 240, B: 240, A: 255}, medianColor(pixels))
}
