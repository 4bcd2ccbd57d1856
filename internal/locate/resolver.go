// Package locate resolves the image regions where a validated identifier is
// visually present, from single fragments that contain the whole number and
// from groups of adjacent fragments that carry one 4-digit group each.
package locate

import (
	"log/slog"
	"math"
	"strings"

	"github.com/docveil/docveil/internal/identifier"
	"github.com/docveil/docveil/internal/ocr"
	"github.com/docveil/docveil/internal/utils"
)

// Config holds the resolver's policy constants. The tolerances are empirical
// pixel distances, so they are configurable rather than hard-coded.
type Config struct {
	// ConfidenceThreshold excludes fragments at or below this confidence.
	ConfidenceThreshold float64
	// LineTolerancePx bounds the vertical-center distance for fragments to
	// count as being on the same text line.
	LineTolerancePx float64
	// DedupTolerancePx bounds the top-left corner distance under which two
	// locations are considered duplicates.
	DedupTolerancePx float64
}

// DefaultConfig returns the default policy constants.
func DefaultConfig() Config {
	return Config{
		ConfidenceThreshold: ocr.DefaultConfidenceThreshold,
		LineTolerancePx:     50,
		DedupTolerancePx:    50,
	}
}

// Location is one resolved occurrence of the identifier in the image.
type Location struct {
	// Box covers every fragment that contributed to the match.
	Box utils.Box
	// Fragments lists the contributing fragment indices in the index.
	Fragments []int
}

// Resolver finds identifier occurrences in a fragment index.
type Resolver struct {
	cfg Config
}

// NewResolver creates a resolver with the given config.
func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// Resolve returns the deduplicated locations of id in discovery order:
// single-fragment matches first, then multi-fragment group matches. The
// order matters because the earlier-found location wins deduplication.
// An empty result is valid; the caller falls back to overlay redaction.
func (r *Resolver) Resolve(id identifier.Identifier, ix *ocr.Index) []Location {
	if id.IsZero() || ix == nil {
		return nil
	}
	confident := ix.Confident(r.cfg.ConfidenceThreshold)

	var accepted []Location
	for _, loc := range r.singleFragmentMatches(id, ix, confident) {
		accepted = r.acceptUnlessDuplicate(accepted, loc)
	}
	for _, loc := range r.groupedMatches(id, ix, confident) {
		accepted = r.acceptUnlessDuplicate(accepted, loc)
	}
	slog.Debug("resolved identifier locations",
		"confident_fragments", len(confident), "locations", len(accepted))
	return accepted
}

// singleFragmentMatches finds fragments whose digit-only text contains the
// full identifier.
func (r *Resolver) singleFragmentMatches(id identifier.Identifier, ix *ocr.Index, confident []int) []Location {
	var out []Location
	target := id.Digits()
	for _, i := range confident {
		f := ix.Fragment(i)
		if strings.Contains(f.Digits(), target) {
			out = append(out, Location{Box: f.Box(), Fragments: []int{i}})
		}
	}
	return out
}

// groupedMatches handles identifiers printed as three visually adjacent text
// blocks. An anchor fragment holding one 4-digit group collects all other
// same-line fragments holding groups of the identifier; exactly three members
// whose concatenated digits equal the identifier form one location covering
// the union of their boxes. The same-line test checks only vertical-center
// proximity; horizontal adjacency is not required.
func (r *Resolver) groupedMatches(id identifier.Identifier, ix *ocr.Index, confident []int) []Location {
	var out []Location
	target := id.Digits()
	for _, i := range confident {
		anchor := ix.Fragment(i)
		anchorDigits := anchor.Digits()
		if len(anchorDigits) != identifier.GroupSize || !strings.Contains(target, anchorDigits) {
			continue
		}
		members := []int{i}
		concat := anchorDigits
		box := anchor.Box()
		anchorCenter := box.VerticalCenter()

		for _, j := range confident {
			if j == i {
				continue
			}
			f := ix.Fragment(j)
			digits := f.Digits()
			if len(digits) != identifier.GroupSize || !strings.Contains(target, digits) {
				continue
			}
			if math.Abs(f.Box().VerticalCenter()-anchorCenter) >= r.cfg.LineTolerancePx {
				continue
			}
			members = append(members, j)
			concat += digits
			box = box.Union(f.Box())
		}

		if len(members) == 3 && concat == target {
			out = append(out, Location{Box: box, Fragments: members})
		}
	}
	return out
}

// acceptUnlessDuplicate appends loc unless its top-left corner lies within
// the dedup tolerance of an already accepted location.
func (r *Resolver) acceptUnlessDuplicate(accepted []Location, loc Location) []Location {
	for _, a := range accepted {
		if math.Abs(loc.Box.MinX-a.Box.MinX) < r.cfg.DedupTolerancePx &&
			math.Abs(loc.Box.MinY-a.Box.MinY) < r.cfg.DedupTolerancePx {
			return accepted
		}
	}
	return append(accepted, loc)
}
