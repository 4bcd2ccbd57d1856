package render

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	fontOnce   sync.Once
	parsedFont *opentype.Font
	fontErr    error
)

// replacementFont returns the parsed typeface used for drawing replacement
// text, loading it on first use.
func replacementFont() (*opentype.Font, error) {
	fontOnce.Do(func() {
		parsedFont, fontErr = opentype.Parse(goregular.TTF)
	})
	return parsedFont, fontErr
}

// face returns a cached font.Face for the given pixel size.
func (r *Renderer) face(sizePx float64) (font.Face, error) {
	if f, ok := r.faces[sizePx]; ok {
		return f, nil
	}
	parsed, err := replacementFont()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	f, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	r.faces[sizePx] = f
	return f, nil
}

// measureText returns the rendered width and line height of text at face.
func measureText(f font.Face, text string) (width, height int) {
	width = font.MeasureString(f, text).Ceil()
	m := f.Metrics()
	height = (m.Ascent + m.Descent).Ceil()
	return width, height
}
