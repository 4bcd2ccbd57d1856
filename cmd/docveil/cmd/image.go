package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docveil/docveil/internal/locate"
	"github.com/docveil/docveil/internal/ocr/tesseract"
	"github.com/docveil/docveil/internal/redact"
	"github.com/docveil/docveil/internal/render"
	"github.com/docveil/docveil/internal/utils"
)

// imageCmd redacts identifier occurrences in a single document image.
var imageCmd = &cobra.Command{
	Use:   "image <input>",
	Short: "Redact the national identifier in a document image",
	Long: `Redact every visual occurrence of the 12-digit national identifier in a
document image. The redacted image is written next to the input unless
--output is given.

Supported formats: JPEG, PNG, BMP

Examples:
  docveil image card.jpg
  docveil image card.png --output out.png --mask-digits 8 --summary json`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		if !utils.IsSupportedImage(input) {
			return fmt.Errorf("unsupported image format: %s", filepath.Ext(input))
		}

		cfg := GetConfig()
		if err := cfg.Validate(); err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		summary, _ := cmd.Flags().GetString("summary")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		if summary != "text" && summary != "json" {
			return fmt.Errorf("invalid summary format: %s (must be text or json)", summary)
		}

		data, err := os.ReadFile(input) //nolint:gosec // G304: Reading user-provided image file path is expected
		if err != nil {
			return fmt.Errorf("read input image: %w", err)
		}

		backend := tesseract.New(tesseract.Config{
			Languages: cfg.OCR.Languages,
			Whitelist: cfg.OCR.Whitelist,
		})
		pipeline := redact.NewPipeline(backend, redact.Config{
			MaskedDigits: cfg.Pipeline.MaskedDigits,
			Resolver: locate.Config{
				ConfidenceThreshold: cfg.Pipeline.ConfidenceThreshold,
				LineTolerancePx:     cfg.Pipeline.LineTolerancePx,
				DedupTolerancePx:    cfg.Pipeline.DedupTolerancePx,
			},
			Renderer:     render.DefaultConfig(),
			OutputFormat: cfg.Output.Format,
			JPEGQuality:  cfg.Output.JPEGQuality,
		})

		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		res, err := pipeline.Run(ctx, data)
		if err != nil {
			if errors.Is(err, redact.ErrNoIdentifier) {
				return fmt.Errorf("no identifier detected in %s", input)
			}
			return fmt.Errorf("redaction failed (%s): %w", redact.Reason(err), err)
		}

		if output == "" {
			output = defaultOutputPath(input, res.Format)
		}
		if err := os.WriteFile(output, res.Image, 0o600); err != nil {
			return fmt.Errorf("write redacted image: %w", err)
		}

		return writeSummary(cmd, summary, output, res)
	},
}

// defaultOutputPath derives "<name>_redacted.<ext>" from the input path,
// switching the extension when the output format differs from the source.
func defaultOutputPath(input, format string) string {
	ext := strings.ToLower(filepath.Ext(input))
	switch format {
	case "jpeg":
		if ext != ".jpg" && ext != ".jpeg" {
			ext = ".jpg"
		}
	default:
		ext = ".png"
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "_redacted" + ext
}

func writeSummary(cmd *cobra.Command, format, output string, res *redact.Result) error {
	if format == "json" {
		payload := struct {
			MaskedIdentifier string `json:"masked_identifier"`
			LocationsFound   int    `json:"locations_found"`
			Output           string `json:"output"`
			Format           string `json:"format"`
		}{res.MaskedIdentifier, res.LocationsFound, output, res.Format}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}
	if res.LocationsFound == 0 {
		_, err := fmt.Fprintf(cmd.OutOrStdout(),
			"No exact location resolved; overlay applied (%s) -> %s\n", res.MaskedIdentifier, output)
		return err
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(),
		"Redacted %d location(s) as %s -> %s\n", res.LocationsFound, res.MaskedIdentifier, output)
	return err
}

func init() {
	rootCmd.AddCommand(imageCmd)

	imageCmd.Flags().StringP("output", "o", "", "output file path (default <input>_redacted.<ext>)")
	imageCmd.Flags().String("summary", "text", "summary format (text, json)")
	imageCmd.Flags().Duration("timeout", 2*time.Minute, "request timeout (0 disables)")
	imageCmd.Flags().Int("mask-digits", 4, "number of leading digits to mask")
	imageCmd.Flags().Float64("confidence", 0.5, "minimum OCR fragment confidence")
	imageCmd.Flags().String("format", "", "output image format (png, jpeg; default preserves source)")
	imageCmd.Flags().StringSlice("languages", []string{"eng"}, "OCR language hints")

	_ = viper.BindPFlag("pipeline.masked_digits", imageCmd.Flags().Lookup("mask-digits"))
	_ = viper.BindPFlag("pipeline.confidence_threshold", imageCmd.Flags().Lookup("confidence"))
	_ = viper.BindPFlag("output.format", imageCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("ocr.languages", imageCmd.Flags().Lookup("languages"))
}
