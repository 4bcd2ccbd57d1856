// Package config defines the application configuration and its layered
// loading from files, environment variables and command-line flags.
package config

import (
	"fmt"

	"github.com/docveil/docveil/internal/identifier"
	"github.com/docveil/docveil/internal/locate"
)

// Config represents the complete configuration for the docveil application.
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline" json:"pipeline"`
	OCR      OCRConfig      `mapstructure:"ocr" yaml:"ocr" json:"ocr"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output" json:"output"`
}

// PipelineConfig contains the redaction policy settings.
type PipelineConfig struct {
	MaskedDigits        int     `mapstructure:"masked_digits" yaml:"masked_digits" json:"masked_digits"`
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold" yaml:"confidence_threshold" json:"confidence_threshold"`
	LineTolerancePx     float64 `mapstructure:"line_tolerance_px" yaml:"line_tolerance_px" json:"line_tolerance_px"`
	DedupTolerancePx    float64 `mapstructure:"dedup_tolerance_px" yaml:"dedup_tolerance_px" json:"dedup_tolerance_px"`
}

// OCRConfig contains OCR backend settings.
type OCRConfig struct {
	Languages []string `mapstructure:"languages" yaml:"languages" json:"languages"`
	Whitelist string   `mapstructure:"whitelist" yaml:"whitelist" json:"whitelist"`
}

// OutputConfig contains output encoding settings.
type OutputConfig struct {
	// Format forces the output encoding ("png" or "jpeg"); empty preserves
	// the source format.
	Format      string `mapstructure:"format" yaml:"format" json:"format"`
	JPEGQuality int    `mapstructure:"jpeg_quality" yaml:"jpeg_quality" json:"jpeg_quality"`
}

// DefaultConfig returns the default configuration mirroring the pipeline
// defaults.
func DefaultConfig() Config {
	resolver := locate.DefaultConfig()
	return Config{
		LogLevel: "info",
		Pipeline: PipelineConfig{
			MaskedDigits:        identifier.DefaultMaskedDigits,
			ConfidenceThreshold: resolver.ConfidenceThreshold,
			LineTolerancePx:     resolver.LineTolerancePx,
			DedupTolerancePx:    resolver.DedupTolerancePx,
		},
		OCR: OCRConfig{
			Languages: []string{"eng"},
		},
		Output: OutputConfig{
			Format:      "",
			JPEGQuality: 92,
		},
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.LogLevel)
	}
	if c.Pipeline.MaskedDigits < 0 || c.Pipeline.MaskedDigits > identifier.DigitCount {
		return fmt.Errorf("invalid masked digits: %d (must be between 0 and %d)",
			c.Pipeline.MaskedDigits, identifier.DigitCount)
	}
	if c.Pipeline.ConfidenceThreshold < 0 || c.Pipeline.ConfidenceThreshold > 1 {
		return fmt.Errorf("invalid confidence threshold: %.2f (must be between 0.0 and 1.0)",
			c.Pipeline.ConfidenceThreshold)
	}
	if c.Pipeline.LineTolerancePx < 0 {
		return fmt.Errorf("invalid line tolerance: %.1f (must be non-negative)", c.Pipeline.LineTolerancePx)
	}
	if c.Pipeline.DedupTolerancePx < 0 {
		return fmt.Errorf("invalid dedup tolerance: %.1f (must be non-negative)", c.Pipeline.DedupTolerancePx)
	}
	switch c.Output.Format {
	case "", "png", "jpeg":
	default:
		return fmt.Errorf("invalid output format: %q (must be png or jpeg)", c.Output.Format)
	}
	if c.Output.JPEGQuality < 1 || c.Output.JPEGQuality > 100 {
		return fmt.Errorf("invalid jpeg quality: %d (must be between 1 and 100)", c.Output.JPEGQuality)
	}
	return nil
}
