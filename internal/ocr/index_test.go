package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docveil/docveil/internal/utils"
)

func frag(text string, conf float64, x, y, w, h float64) Fragment {
	return Fragment{
		Text:       text,
		Confidence: conf,
		Polygon: []utils.Point{
			{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h},
		},
	}
}

func TestIndexConfident(t *testing.T) {
	ix := NewIndex([]Fragment{
		frag("one", 0.9, 0, 0, 10, 10),
		frag("two", 0.3, 0, 20, 10, 10),
		frag("three", 0.51, 0, 40, 10, 10),
		frag("four", 0.5, 0, 60, 10, 10), // at threshold, excluded
	})

	require.Equal(t, 4, ix.Len())
	assert.Equal(t, []int{0, 2}, ix.Confident(DefaultConfidenceThreshold))
	assert.Equal(t, "three", ix.Fragment(2).Text)
}

func TestIndexJoinedText(t *testing.T) {
	ix := NewIndex([]Fragment{
		frag("1234", 0.9, 0, 0, 40, 12),
		frag("noise", 0.2, 0, 30, 40, 12),
		frag("5678", 0.8, 50, 0, 40, 12),
		frag("9012", 0.7, 100, 0, 40, 12),
	})
	assert.Equal(t, "1234 5678 9012", ix.JoinedText(DefaultConfidenceThreshold))
}

func TestFragmentBoxAndDigits(t *testing.T) {
	f := Fragment{
		Text:       "ID: 1234-99",
		Confidence: 1,
		Polygon: []utils.Point{
			{X: 5, Y: 8}, {X: 45, Y: 6}, {X: 47, Y: 20}, {X: 4, Y: 22},
		},
	}
	assert.Equal(t, "123499", f.Digits())

	box := f.Box()
	assert.InDelta(t, 4.0, box.MinX, 1e-9)
	assert.InDelta(t, 6.0, box.MinY, 1e-9)
	assert.InDelta(t, 47.0, box.MaxX, 1e-9)
	assert.InDelta(t, 22.0, box.MaxY, 1e-9)
}
