// Package match implements the match-and-normalize pipeline: field
// extraction from loosely-typed upstream payloads, candidate scoring and
// normalization into the canonical movie record.
package match

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/moviedex/moviedex/metadata/pkg/model"
)

// Probe tables, in priority order. Upstream providers and API versions
// disagree on field names; the first present value wins. Dotted entries walk
// nested objects.
var (
	titleProbes    = []string{"primaryTitle", "title", "l", "name", "originalTitle"}
	idProbes       = []string{"imdbId", "id", "tconst", "const", "i"}
	synopsisProbes = []string{"description", "plot", "plotSummary", "storyline", "plotOutline.text", "plot.plotText.plainText", "plot.plotText.text"}
	ratingProbes   = []string{"averageRating", "rating", "ratingsSummary.aggregateRating", "ratingsSummary.rating", "aggregateRating"}
	yearProbes     = []string{"startYear", "year", "releaseYear"}
	yearFallbacks  = []string{"startYear", "year", "y"}
)

// Title extracts a display title from a raw document. Empty strings count as
// absent so the scorer can skip unusable candidates. Returns "" when no
// probe matches.
func Title(doc map[string]any) string {
	for _, probe := range titleProbes {
		if v, ok := lookup(doc, probe); ok {
			if s, ok := scalarString(v); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// ExternalID extracts the upstream identifier from a raw document. No
// validation is performed here; the scorer decides whether an id is usable.
// Returns "" when no probe matches.
func ExternalID(doc map[string]any) string {
	for _, probe := range idProbes {
		if v, ok := lookup(doc, probe); ok {
			if s, ok := scalarString(v); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// Synopsis extracts a synopsis from a details document, or the documented
// default when every probe misses.
func Synopsis(doc map[string]any) string {
	for _, probe := range synopsisProbes {
		if v, ok := lookup(doc, probe); ok {
			if s, ok := scalarString(v); ok {
				return s
			}
		}
	}
	return model.DefaultSynopsis
}

// Rating extracts a rating from a details document, or the documented
// default when every probe misses. Presence is a nullity check, not a
// truthiness check: a numeric 0 is a valid rating.
func Rating(doc map[string]any) string {
	for _, probe := range ratingProbes {
		if v, ok := lookup(doc, probe); ok {
			if s, ok := scalarString(v); ok {
				return s
			}
		}
	}
	return model.DefaultRating
}

// Year extracts a release year from a details document, falling back to the
// original search candidate when the details carry none. A numeric 0 is a
// valid present value. Returns "" when every probe misses.
func Year(details, fallback map[string]any) string {
	for _, probe := range yearProbes {
		if v, ok := lookup(details, probe); ok {
			if s, ok := scalarString(v); ok {
				return s
			}
		}
	}
	for _, probe := range yearFallbacks {
		if v, ok := lookup(fallback, probe); ok {
			if s, ok := scalarString(v); ok {
				return s
			}
		}
	}
	return ""
}

// lookup resolves a dotted path against a decoded JSON document. A missing
// or null value anywhere along the path reports absence, never an error.
func lookup(doc map[string]any, path string) (any, bool) {
	cur := doc
	keys := strings.Split(path, ".")
	for i, key := range keys {
		v, ok := cur[key]
		if !ok || v == nil {
			return nil, false
		}
		if i == len(keys)-1 {
			return v, true
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

// scalarString renders a probed scalar as a string. JSON numbers decode as
// float64; they are formatted without trailing zeros, so 7.8 -> "7.8" and
// 2009 -> "2009". Composite values (objects, arrays) are not extractable and
// report false so a later, deeper probe can still match.
func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}
