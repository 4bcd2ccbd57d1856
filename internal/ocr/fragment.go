// Package ocr defines the text-fragment model produced by an OCR backend and
// the queryable index the location resolver works against. The backend itself
// is an external collaborator behind the Backend interface.
package ocr

import (
	"context"
	"image"

	"github.com/docveil/docveil/internal/identifier"
	"github.com/docveil/docveil/internal/utils"
)

// Fragment is one OCR-recognized text span. Fragments are immutable and kept
// in backend-emission order, which is not guaranteed to be spatial order.
type Fragment struct {
	Text       string
	Confidence float64       // in [0,1]
	Polygon    []utils.Point // 4+ points, not necessarily axis-aligned
}

// Box returns the axis-aligned bounding box of the fragment's polygon.
func (f Fragment) Box() utils.Box {
	return utils.BoundingBox(f.Polygon)
}

// Digits returns the fragment text with all non-digit characters stripped.
func (f Fragment) Digits() string {
	return identifier.Digits(f.Text)
}

// Backend abstracts the text-recognition engine. Implementations may be
// expensive and are not assumed safe for concurrent use; callers serialize or
// pool instances and impose deadlines through ctx.
type Backend interface {
	DetectText(ctx context.Context, img image.Image) ([]Fragment, error)
}
