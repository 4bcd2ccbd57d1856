package redact

import "errors"

// Failure taxonomy for a redaction request. Extraction and decode failures
// abort the request and surface as wrapped sentinel errors; per-location
// render failures are logged and skipped.
var (
	// ErrNoIdentifier indicates extraction found no identifier in the OCR
	// text. Recoverable from the caller's point of view: there is nothing to
	// redact.
	ErrNoIdentifier = errors.New("no identifier detected")
	// ErrDecodeFailed indicates the input image could not be decoded. Fatal
	// for the request.
	ErrDecodeFailed = errors.New("image decode failed")
	// ErrBackendFailed indicates the OCR backend returned an error.
	ErrBackendFailed = errors.New("ocr backend failed")
)

// Reason maps a pipeline error to the stable reason code exposed to callers.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoIdentifier):
		return "NoIdentifierDetected"
	case errors.Is(err, ErrDecodeFailed):
		return "DecodeFailed"
	case errors.Is(err, ErrBackendFailed):
		return "BackendFailed"
	default:
		return "RenderFailed"
	}
}
