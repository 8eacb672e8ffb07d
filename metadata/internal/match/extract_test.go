package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moviedex/moviedex/metadata/pkg/model"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		doc  map[string]any
		want string
	}{
		{name: "empty document", doc: map[string]any{}, want: ""},
		{name: "primaryTitle wins", doc: map[string]any{"primaryTitle": "Up", "title": "Up (2009)"}, want: "Up"},
		{name: "suggestion shape", doc: map[string]any{"l": "Up"}, want: "Up"},
		{name: "originalTitle last", doc: map[string]any{"originalTitle": "La Haine"}, want: "La Haine"},
		{name: "empty string falls through", doc: map[string]any{"primaryTitle": "", "name": "Up"}, want: "Up"},
		{name: "null falls through", doc: map[string]any{"title": nil, "name": "Up"}, want: "Up"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Title(tt.doc))
		})
	}
}

func TestExternalID(t *testing.T) {
	tests := []struct {
		name string
		doc  map[string]any
		want string
	}{
		{name: "empty document", doc: map[string]any{}, want: ""},
		{name: "imdbId wins", doc: map[string]any{"imdbId": "tt1049413", "id": "other"}, want: "tt1049413"},
		{name: "tconst shape", doc: map[string]any{"tconst": "tt0133093"}, want: "tt0133093"},
		{name: "non title id kept as is", doc: map[string]any{"i": "nm0000138"}, want: "nm0000138"},
		{name: "numeric id stringified", doc: map[string]any{"id": float64(603)}, want: "603"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExternalID(tt.doc))
		})
	}
}

func TestSynopsis(t *testing.T) {
	tests := []struct {
		name string
		doc  map[string]any
		want string
	}{
		{name: "empty document", doc: map[string]any{}, want: model.DefaultSynopsis},
		{name: "flat plot", doc: map[string]any{"plot": "A house flies."}, want: "A house flies."},
		{
			name: "nested plotOutline",
			doc:  map[string]any{"plotOutline": map[string]any{"text": "A house flies."}},
			want: "A house flies.",
		},
		{
			name: "deeply nested plot text",
			doc:  map[string]any{"plot": map[string]any{"plotText": map[string]any{"plainText": "A house flies."}}},
			want: "A house flies.",
		},
		{
			name: "missing intermediate key is absent",
			doc:  map[string]any{"plotOutline": map[string]any{"summary": "nope"}},
			want: model.DefaultSynopsis,
		},
		{
			name: "non object intermediate is absent",
			doc:  map[string]any{"plotOutline": "not an object"},
			want: model.DefaultSynopsis,
		},
		{name: "present empty string stays present", doc: map[string]any{"description": ""}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Synopsis(tt.doc))
		})
	}
}

func TestRating(t *testing.T) {
	tests := []struct {
		name string
		doc  map[string]any
		want string
	}{
		{name: "empty document", doc: map[string]any{}, want: model.DefaultRating},
		{name: "averageRating wins", doc: map[string]any{"averageRating": 8.3, "rating": 7.0}, want: "8.3"},
		{name: "zero is present", doc: map[string]any{"rating": float64(0)}, want: "0"},
		{name: "string rating passes through", doc: map[string]any{"rating": "8.3"}, want: "8.3"},
		{
			name: "nested ratingsSummary",
			doc:  map[string]any{"ratingsSummary": map[string]any{"aggregateRating": 8.3}},
			want: "8.3",
		},
		{name: "null is absent", doc: map[string]any{"averageRating": nil}, want: model.DefaultRating},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rating(tt.doc))
		})
	}
}

func TestYear(t *testing.T) {
	tests := []struct {
		name     string
		details  map[string]any
		fallback map[string]any
		want     string
	}{
		{name: "both empty", details: map[string]any{}, fallback: map[string]any{}, want: ""},
		{name: "details win", details: map[string]any{"startYear": float64(2009)}, fallback: map[string]any{"y": float64(1999)}, want: "2009"},
		{name: "fallback candidate year", details: map[string]any{}, fallback: map[string]any{"y": float64(1999)}, want: "1999"},
		{name: "zero is present", details: map[string]any{"year": float64(0)}, fallback: map[string]any{"y": float64(1999)}, want: "0"},
		{name: "string year passes through", details: map[string]any{"releaseYear": "2009"}, fallback: nil, want: "2009"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Year(tt.details, tt.fallback))
		})
	}
}
