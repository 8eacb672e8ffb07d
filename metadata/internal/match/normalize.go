package match

import "github.com/moviedex/moviedex/metadata/pkg/model"

// Normalize builds the canonical record for a selected candidate from its
// details payload. The title falls back from details to the candidate to the
// raw query, so it is never empty. The caller must have rejected candidates
// without an external id before calling.
func Normalize(best model.Candidate, query string, details model.Details) model.MovieRecord {
	title := Title(details)
	if title == "" {
		title = Title(best)
	}
	if title == "" {
		title = query
	}
	return model.MovieRecord{
		ExternalID: ExternalID(best),
		Title:      title,
		Year:       Year(details, best),
		Synopsis:   Synopsis(details),
		Rating:     Rating(details),
	}
}
