package metadata

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v4"
	"go.uber.org/zap"

	"github.com/moviedex/moviedex/metadata/internal/repository/memory"
	"github.com/moviedex/moviedex/metadata/pkg/model"
)

type stubGateway struct {
	candidates []model.Candidate
	details    model.Details
	searchErr  error
	detailsErr error
}

func (g *stubGateway) Search(_ context.Context, _ string) ([]model.Candidate, error) {
	return g.candidates, g.searchErr
}

func (g *stubGateway) Details(_ context.Context, _ string) (model.Details, error) {
	return g.details, g.detailsErr
}

func newTestController(g *stubGateway) *Controller {
	return New(g, memory.New(), memory.New(), nil, zap.NewNop(), tally.NoopScope)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	g := &stubGateway{
		candidates: []model.Candidate{
			{"title": "Up All Night", "id": "tt0492506"},
			{"title": "Up", "id": "tt1049413"},
		},
		details: model.Details{
			"primaryTitle":  "Up",
			"startYear":     float64(2009),
			"plot":          "A house flies to South America.",
			"averageRating": 8.3,
		},
	}
	c := newTestController(g)

	got, err := c.Search(ctx, " Up ")
	require.NoError(t, err)
	want := &model.MovieRecord{
		ExternalID: "tt1049413",
		Title:      "Up",
		Year:       "2009",
		Synopsis:   "A house flies to South America.",
		Rating:     "8.3",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Search() mismatch (-want +got):\n%s", diff)
	}

	// The record must have been persisted under its external id.
	stored, err := c.Get(ctx, "tt1049413")
	require.NoError(t, err)
	assert.Equal(t, want, stored)
}

func TestSearchEmptyQuery(t *testing.T) {
	c := newTestController(&stubGateway{})
	_, err := c.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestSearchNoMatch(t *testing.T) {
	c := newTestController(&stubGateway{
		candidates: []model.Candidate{{"title": "Finding Nemo", "id": "tt0266543"}},
	})
	_, err := c.Search(context.Background(), "up")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestSearchMissingID(t *testing.T) {
	c := newTestController(&stubGateway{
		candidates: []model.Candidate{{"title": "Up"}},
	})
	_, err := c.Search(context.Background(), "up")
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestSearchCollaboratorFailures(t *testing.T) {
	cause := errors.New("connection refused")

	_, err := newTestController(&stubGateway{searchErr: cause}).Search(context.Background(), "up")
	require.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNoMatch)

	c := newTestController(&stubGateway{
		candidates: []model.Candidate{{"title": "Up", "id": "tt1049413"}},
		detailsErr: cause,
	})
	_, err = c.Search(context.Background(), "up")
	require.ErrorIs(t, err, cause)
}

func TestGetNotFound(t *testing.T) {
	c := newTestController(&stubGateway{})
	_, err := c.Get(context.Background(), "tt0000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	c := newTestController(&stubGateway{
		candidates: []model.Candidate{{"title": "Up", "id": "tt1049413"}},
		details:    model.Details{},
	})

	// Clearing before anything was stored succeeds with zero deletions.
	n, err := c.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	_, err = c.Search(ctx, "up")
	require.NoError(t, err)

	n, err = c.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	records, err := c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSearchUpsertsOnRepeat(t *testing.T) {
	ctx := context.Background()
	g := &stubGateway{
		candidates: []model.Candidate{{"title": "Up", "id": "tt1049413"}},
		details:    model.Details{"averageRating": 8.2},
	}
	c := newTestController(g)

	_, err := c.Search(ctx, "up")
	require.NoError(t, err)

	g.details = model.Details{"averageRating": 8.3}
	_, err = c.Search(ctx, "up")
	require.NoError(t, err)

	records, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "8.3", records[0].Rating)
}
