// Package tesseract provides a gosseract-backed ocr.Backend. A fresh client
// is created per call because Tesseract handles are not safe to share across
// concurrent recognitions.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"

	"github.com/docveil/docveil/internal/ocr"
	"github.com/docveil/docveil/internal/utils"
)

// Config controls the Tesseract engine.
type Config struct {
	// Languages lists trained-data hints, e.g. "eng".
	Languages []string
	// Whitelist restricts recognized characters when non-empty. Digit-heavy
	// documents benefit from "0123456789 ".
	Whitelist string
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{Languages: []string{"eng"}}
}

// Backend implements ocr.Backend using the gosseract client.
type Backend struct {
	cfg           Config
	clientFactory func() *gosseract.Client
}

// New constructs a Tesseract-backed OCR engine.
func New(cfg Config) *Backend {
	return &Backend{cfg: cfg, clientFactory: gosseract.NewClient}
}

// DetectText recognizes word-level fragments with confidences and rectangular
// polygons in image coordinates.
func (b *Backend) DetectText(ctx context.Context, img image.Image) ([]ocr.Fragment, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode input image: %w", err)
	}

	c := b.clientFactory()
	defer func() { _ = c.Close() }()

	if err := c.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	if len(b.cfg.Languages) > 0 {
		if err := c.SetLanguage(b.cfg.Languages...); err != nil {
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}
	if b.cfg.Whitelist != "" {
		if err := c.SetWhitelist(b.cfg.Whitelist); err != nil {
			return nil, fmt.Errorf("set whitelist: %w", err)
		}
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("recognize text: %w", err)
	}

	fragments := make([]ocr.Fragment, 0, len(boxes))
	for _, bb := range boxes {
		fragments = append(fragments, ocr.Fragment{
			Text:       bb.Word,
			Confidence: bb.Confidence / 100.0,
			Polygon:    rectPolygon(bb.Box),
		})
	}
	return fragments, nil
}

func rectPolygon(r image.Rectangle) []utils.Point {
	return []utils.Point{
		{X: float64(r.Min.X), Y: float64(r.Min.Y)},
		{X: float64(r.Max.X), Y: float64(r.Min.Y)},
		{X: float64(r.Max.X), Y: float64(r.Max.Y)},
		{X: float64(r.Min.X), Y: float64(r.Max.Y)},
	}
}
