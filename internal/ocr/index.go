package ocr

import "strings"

// DefaultConfidenceThreshold excludes fragments the backend is unsure about
// from all resolution logic.
const DefaultConfidenceThreshold = 0.5

// Index wraps the raw fragment sequence for querying. Low-confidence
// fragments are retained for completeness and debugging but filtered out of
// Confident and JoinedText results.
type Index struct {
	fragments []Fragment
}

// NewIndex builds an index over the given fragments, preserving order.
func NewIndex(fragments []Fragment) *Index {
	return &Index{fragments: fragments}
}

// Len returns the total number of fragments, including low-confidence ones.
func (ix *Index) Len() int { return len(ix.fragments) }

// Fragment returns the fragment at position i in emission order.
func (ix *Index) Fragment(i int) Fragment { return ix.fragments[i] }

// Confident returns the indices of fragments whose confidence exceeds the
// threshold, in emission order.
func (ix *Index) Confident(threshold float64) []int {
	out := make([]int, 0, len(ix.fragments))
	for i, f := range ix.fragments {
		if f.Confidence > threshold {
			out = append(out, i)
		}
	}
	return out
}

// JoinedText concatenates the texts of all confident fragments with single
// spaces. It feeds the whole-frame extraction fallback.
func (ix *Index) JoinedText(threshold float64) string {
	parts := make([]string, 0, len(ix.fragments))
	for _, f := range ix.fragments {
		if f.Confidence > threshold {
			parts = append(parts, f.Text)
		}
	}
	return strings.Join(parts, " ")
}
