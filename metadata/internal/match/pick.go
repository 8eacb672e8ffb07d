package match

import (
	"strings"

	"github.com/moviedex/moviedex/metadata/pkg/model"
)

const idPrefix = "tt"

// PickBest selects the best-matching candidate for a query, or nil when no
// candidate matches. Candidates without a usable title are skipped, as are
// candidates whose id carries a non-title prefix (person and company ids).
// Titles are compared case-insensitively: an exact match scores 3, a prefix
// match 2, a substring match 1. Ties keep the earliest candidate.
func PickBest(candidates []model.Candidate, query string) model.Candidate {
	q := strings.ToLower(strings.TrimSpace(query))

	var best model.Candidate
	bestScore := 0
	for _, c := range candidates {
		title := strings.ToLower(Title(c))
		if title == "" {
			continue
		}
		if id := ExternalID(c); id != "" && !strings.HasPrefix(id, idPrefix) {
			continue
		}
		var score int
		switch {
		case title == q:
			score = 3
		case strings.HasPrefix(title, q):
			score = 2
		case strings.Contains(title, q):
			score = 1
		default:
			continue
		}
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}
