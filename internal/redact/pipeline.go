// Package redact orchestrates the redaction pipeline: extract the identifier
// from OCR output, resolve every region where it appears, mask it, render the
// masked form over each region and encode the result.
package redact

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/docveil/docveil/internal/identifier"
	"github.com/docveil/docveil/internal/locate"
	"github.com/docveil/docveil/internal/ocr"
	"github.com/docveil/docveil/internal/render"
	"github.com/docveil/docveil/internal/utils"
)

// Config holds the pipeline's policy settings.
type Config struct {
	// MaskedDigits is the count of leading digits replaced by the mask
	// character. Deployment-wide, not per-request.
	MaskedDigits int
	// Resolver carries the location-resolution tolerances.
	Resolver locate.Config
	// Renderer carries the region-rendering parameters.
	Renderer render.Config
	// OutputFormat forces the encoded output format ("png" or "jpeg");
	// empty preserves the source format where possible.
	OutputFormat string
	// JPEGQuality applies when encoding JPEG output.
	JPEGQuality int
	// MaxOCRDimensionPx bounds the longest side of the image handed to the
	// OCR backend; zero disables downscaling.
	MaxOCRDimensionPx int
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		MaskedDigits:      identifier.DefaultMaskedDigits,
		Resolver:          locate.DefaultConfig(),
		Renderer:          render.DefaultConfig(),
		JPEGQuality:       utils.DefaultJPEGQuality,
		MaxOCRDimensionPx: DefaultMaxOCRDimensionPx,
	}
}

// Result is the caller-facing outcome of a successful redaction request.
type Result struct {
	// Identifier is the extracted identifier in canonical spaced form.
	Identifier string `json:"identifier"`
	// MaskedIdentifier is the rendered replacement text.
	MaskedIdentifier string `json:"masked_identifier"`
	// LocationsFound counts the regions that were redacted in place. Zero
	// means the overlay fallback was applied.
	LocationsFound int `json:"locations_found"`
	// Image is the encoded redacted image.
	Image []byte `json:"-"`
	// Format is the encoding of Image ("png" or "jpeg").
	Format string `json:"format"`
}

// Pipeline runs redaction requests against an externally owned OCR backend.
// A pipeline run owns its image buffer exclusively; the backend handle's
// lifecycle belongs to the caller.
type Pipeline struct {
	backend  ocr.Backend
	resolver *locate.Resolver
	cfg      Config
}

// NewPipeline constructs a pipeline around the given backend.
func NewPipeline(backend ocr.Backend, cfg Config) *Pipeline {
	return &Pipeline{
		backend:  backend,
		resolver: locate.NewResolver(cfg.Resolver),
		cfg:      cfg,
	}
}

// Run redacts every visual occurrence of the identifier in the encoded image
// and returns the redacted image. When no identifier is present it returns
// ErrNoIdentifier; when no location is resolved it applies the banner overlay
// and succeeds with LocationsFound = 0.
func (p *Pipeline) Run(ctx context.Context, imageData []byte) (*Result, error) {
	start := time.Now()
	res, err := p.run(ctx, imageData)
	redactionDuration.Observe(time.Since(start).Seconds())
	switch {
	case err != nil:
		redactionsTotal.WithLabelValues("error").Inc()
	case res.LocationsFound == 0:
		redactionsTotal.WithLabelValues("overlay_fallback").Inc()
	default:
		redactionsTotal.WithLabelValues("success").Inc()
	}
	return res, err
}

func (p *Pipeline) run(ctx context.Context, imageData []byte) (*Result, error) {
	img, srcFormat, err := utils.DecodeImage(imageData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	bounds := img.Bounds()
	slog.Debug("decoded input image",
		"format", srcFormat, "width", bounds.Dx(), "height", bounds.Dy())

	ocrImg, scale := downscaleForOCR(img, p.cfg.MaxOCRDimensionPx)
	if scale != 1 {
		slog.Debug("downscaled image for recognition", "scale", scale)
	}

	fragments, err := p.backend.DetectText(ctx, ocrImg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendFailed, err)
	}
	fragmentsDetected.Observe(float64(len(fragments)))
	index := ocr.NewIndex(fragments)

	threshold := p.cfg.Resolver.ConfidenceThreshold
	id, ok := identifier.Extract(index.JoinedText(threshold))
	if !ok {
		return nil, ErrNoIdentifier
	}

	locations := p.resolver.Resolve(id, index)
	masked := identifier.Mask(id, p.cfg.MaskedDigits)
	slog.Debug("resolved identifier", "locations", len(locations))

	canvas := utils.ToRGBA(img)
	renderer := render.NewRenderer(p.cfg.Renderer)

	redacted := 0
	if len(locations) == 0 {
		if err := renderer.Overlay(canvas, masked); err != nil {
			return nil, fmt.Errorf("overlay fallback: %w", err)
		}
	} else {
		for i, loc := range locations {
			// Fragment coordinates live in the (possibly downscaled) OCR
			// image; rendering targets the original resolution.
			box := loc.Box.Scale(1 / scale)
			if err := renderer.Redact(canvas, box, masked); err != nil {
				// Partial success is acceptable: skip the location and keep
				// going with the rest.
				slog.Warn("failed to redact location, skipping",
					"location", i, "error", err)
				continue
			}
			redacted++
		}
	}

	format := p.outputFormat(srcFormat)
	encoded, err := utils.EncodeImage(canvas, format, p.cfg.JPEGQuality)
	if err != nil {
		return nil, fmt.Errorf("encode redacted image: %w", err)
	}

	locationsRedacted.Observe(float64(redacted))
	return &Result{
		Identifier:       id.String(),
		MaskedIdentifier: masked,
		LocationsFound:   redacted,
		Image:            encoded,
		Format:           format,
	}, nil
}

// outputFormat resolves the encoding for the redacted image. Lossless PNG is
// the default for source formats without an encoder.
func (p *Pipeline) outputFormat(srcFormat string) string {
	if p.cfg.OutputFormat != "" {
		return p.cfg.OutputFormat
	}
	if srcFormat == "jpeg" {
		return "jpeg"
	}
	return "png"
}
