package model

// Candidate is one raw search-result entry from the upstream metadata
// source. Field names vary between response variants, so values are probed
// defensively rather than unmarshalled into a struct.
type Candidate map[string]any

// Details is the raw record returned by a details lookup for a single
// external id. Probed the same way as Candidate.
type Details map[string]any

// MovieRecord is the canonical, fully-normalized movie record. Every field
// is a defined string once the record is constructed; missing upstream data
// is replaced by documented defaults instead of absent fields.
type MovieRecord struct {
	ExternalID string `json:"externalId"`
	Title      string `json:"title"`
	Year       string `json:"year"`
	Synopsis   string `json:"synopsis"`
	Rating     string `json:"rating"`
}

// DefaultSynopsis is stored when the upstream details carry no synopsis.
const DefaultSynopsis = "No synopsis available."

// DefaultRating is stored when the upstream details carry no rating.
const DefaultRating = "N/A"
