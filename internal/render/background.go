package render

import (
	"image"
	"image/color"
	"log/slog"
	"slices"
)

// fallbackBackground is the ultimate fill color when no sampling strategy
// yields a usable estimate.
var fallbackBackground = color.RGBA{R: 211, G: 211, B: 211, A: 255}

// backgroundStrategy is one way of estimating the local background color
// around a region. Strategies are tried in order; the first success wins.
type backgroundStrategy struct {
	name   string
	sample func(img *image.RGBA, rect image.Rectangle) (color.RGBA, bool)
}

var backgroundStrategies = []backgroundStrategy{
	{name: "perimeter-ring", sample: samplePerimeterRing},
	{name: "side-bands", sample: sampleSideBands},
	{name: "corner-neighbors", sample: sampleCornerNeighbors},
}

// estimateBackground runs the strategy chain for the region.
func estimateBackground(img *image.RGBA, rect image.Rectangle) color.RGBA {
	for _, s := range backgroundStrategies {
		if c, ok := s.sample(img, rect); ok {
			slog.Debug("estimated background color",
				"strategy", s.name, "r", c.R, "g", c.G, "b", c.B)
			return c
		}
	}
	slog.Debug("estimated background color", "strategy", "constant")
	return fallbackBackground
}

const (
	// ringSamplesPerEdge is the number of sampling windows placed along each
	// edge of the region perimeter.
	ringSamplesPerEdge = 8
	// ringWindowRadius is the half-width of each sampling window.
	ringWindowRadius = 3
	// sideBandThickness is the thickness of the fallback sampling bands.
	sideBandThickness = 10
)

// samplePerimeterRing places small windows at evenly spaced positions just
// outside each edge of rect and takes the per-channel median across the
// window medians. Medians keep glare and edge artifacts from skewing the
// estimate the way a mean would.
func samplePerimeterRing(img *image.RGBA, rect image.Rectangle) (color.RGBA, bool) {
	margin := maxInt(4, minInt(rect.Dx(), rect.Dy())/4)

	var medians []color.RGBA
	for k := 0; k < ringSamplesPerEdge; k++ {
		fx := rect.Min.X + (2*k+1)*rect.Dx()/(2*ringSamplesPerEdge)
		fy := rect.Min.Y + (2*k+1)*rect.Dy()/(2*ringSamplesPerEdge)
		centers := []image.Point{
			{X: fx, Y: rect.Min.Y - margin}, // top edge
			{X: fx, Y: rect.Max.Y + margin}, // bottom edge
			{X: rect.Min.X - margin, Y: fy}, // left edge
			{X: rect.Max.X + margin, Y: fy}, // right edge
		}
		for _, c := range centers {
			if m, ok := windowMedian(img, c, ringWindowRadius); ok {
				medians = append(medians, m)
			}
		}
	}
	if len(medians) < 4 {
		return color.RGBA{}, false
	}
	return medianColor(medians), true
}

// sampleSideBands samples rectangular bands directly above, below, left and
// right of the region. Used when the perimeter ring falls outside the image.
func sampleSideBands(img *image.RGBA, rect image.Rectangle) (color.RGBA, bool) {
	bands := []image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y-sideBandThickness, rect.Max.X, rect.Min.Y),
		image.Rect(rect.Min.X, rect.Max.Y, rect.Max.X, rect.Max.Y+sideBandThickness),
		image.Rect(rect.Min.X-sideBandThickness, rect.Min.Y, rect.Min.X, rect.Max.Y),
		image.Rect(rect.Max.X, rect.Min.Y, rect.Max.X+sideBandThickness, rect.Max.Y),
	}
	var pixels []color.RGBA
	for _, band := range bands {
		band = band.Intersect(img.Bounds())
		for y := band.Min.Y; y < band.Max.Y; y++ {
			for x := band.Min.X; x < band.Max.X; x++ {
				pixels = append(pixels, img.RGBAAt(x, y))
			}
		}
	}
	if len(pixels) == 0 {
		return color.RGBA{}, false
	}
	return medianColor(pixels), true
}

// sampleCornerNeighbors samples the 8 immediate neighbors of the region's
// top-left corner.
func sampleCornerNeighbors(img *image.RGBA, rect image.Rectangle) (color.RGBA, bool) {
	var pixels []color.RGBA
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			p := image.Pt(rect.Min.X+dx, rect.Min.Y+dy)
			if p.In(img.Bounds()) {
				pixels = append(pixels, img.RGBAAt(p.X, p.Y))
			}
		}
	}
	if len(pixels) == 0 {
		return color.RGBA{}, false
	}
	return medianColor(pixels), true
}

// windowMedian computes the median color of a square window centered at c.
// It fails when fewer than half of the window's pixels are inside the image.
func windowMedian(img *image.RGBA, c image.Point, radius int) (color.RGBA, bool) {
	var pixels []color.RGBA
	for y := c.Y - radius; y <= c.Y+radius; y++ {
		for x := c.X - radius; x <= c.X+radius; x++ {
			if image.Pt(x, y).In(img.Bounds()) {
				pixels = append(pixels, img.RGBAAt(x, y))
			}
		}
	}
	side := 2*radius + 1
	if len(pixels) < side*side/2 {
		return color.RGBA{}, false
	}
	return medianColor(pixels), true
}

// medianColor returns the per-channel median of the given pixels.
func medianColor(pixels []color.RGBA) color.RGBA {
	n := len(pixels)
	rs := make([]uint8, n)
	gs := make([]uint8, n)
	bs := make([]uint8, n)
	for i, p := range pixels {
		rs[i], gs[i], bs[i] = p.R, p.G, p.B
	}
	return color.RGBA{R: medianU8(rs), G: medianU8(gs), B: medianU8(bs), A: 255}
}

func medianU8(v []uint8) uint8 {
	slices.Sort(v)
	return v[len(v)/2]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
