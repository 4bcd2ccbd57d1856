package redact

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	redactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docveil_redactions_total",
			Help: "Total number of redaction requests",
		},
		[]string{"status"}, // status: success, overlay_fallback, error
	)

	redactionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "docveil_redaction_duration_seconds",
			Help:    "End-to-end redaction request duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 25, 50, 100},
		},
	)

	locationsRedacted = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "docveil_locations_redacted",
			Help:    "Number of identifier locations redacted per request",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 25},
		},
	)

	fragmentsDetected = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "docveil_ocr_fragments_detected",
			Help:    "Number of OCR fragments detected per request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
	)
)
