package http

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviedex/moviedex/metadata/pkg/model"
	"github.com/moviedex/moviedex/metadata/pkg/testutil"
	"github.com/moviedex/moviedex/movie/internal/gateway"
	"github.com/moviedex/moviedex/pkg/discovery"
	"github.com/moviedex/moviedex/pkg/discovery/memory"
)

type stubUpstream struct {
	candidates []model.Candidate
	details    model.Details
}

func (s *stubUpstream) Search(_ context.Context, _ string) ([]model.Candidate, error) {
	return s.candidates, nil
}

func (s *stubUpstream) Details(_ context.Context, _ string) (model.Details, error) {
	return s.details, nil
}

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()
	srv := httptest.NewServer(testutil.NewTestMetadataHandler(&stubUpstream{
		candidates: []model.Candidate{{"title": "Up", "id": "tt1049413"}},
		details:    model.Details{"startYear": float64(2009), "averageRating": 8.3},
	}))
	t.Cleanup(srv.Close)

	registry := memory.NewRegistry()
	instanceID := discovery.GenerateInstanceID("metadata")
	require.NoError(t, registry.Register(context.Background(), instanceID, "metadata", strings.TrimPrefix(srv.URL, "http://")))
	return New(registry)
}

func TestGatewaySearch(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway(t)

	record, err := g.Search(ctx, "up")
	require.NoError(t, err)
	assert.Equal(t, "tt1049413", record.ExternalID)
	assert.Equal(t, "8.3", record.Rating)

	_, err = g.Search(ctx, "xyzzy")
	assert.ErrorIs(t, err, gateway.ErrNotFound)

	_, err = g.Search(ctx, "")
	assert.ErrorIs(t, err, gateway.ErrBadRequest)
}

func TestGatewayListAndClear(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway(t)

	records, err := g.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = g.Search(ctx, "up")
	require.NoError(t, err)

	records, err = g.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	n, err := g.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Clearing again is a successful no-op.
	n, err = g.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestGatewayNoInstances(t *testing.T) {
	g := New(memory.NewRegistry())
	_, err := g.Search(context.Background(), "up")
	assert.ErrorIs(t, err, discovery.ErrNotFound)
}
