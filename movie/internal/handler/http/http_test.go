package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/moviedex/moviedex/metadata/pkg/model"
	"github.com/moviedex/moviedex/movie/internal/controller/movie"
	"github.com/moviedex/moviedex/movie/internal/gateway"
)

type stubGateway struct {
	record *model.MovieRecord
	list   []model.MovieRecord
	err    error
}

func (g *stubGateway) Search(_ context.Context, _ string) (*model.MovieRecord, error) {
	return g.record, g.err
}

func (g *stubGateway) List(_ context.Context) ([]model.MovieRecord, error) {
	return g.list, nil
}

func (g *stubGateway) Clear(_ context.Context) (int64, error) {
	return int64(len(g.list)), nil
}

func TestIndex(t *testing.T) {
	h := New(movie.New(&stubGateway{
		list: []model.MovieRecord{{ExternalID: "tt1049413", Title: "Up", Year: "2009", Rating: "8.3"}},
	}), zap.NewNop())

	w := httptest.NewRecorder()
	h.Index(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Up")
	assert.Contains(t, w.Body.String(), "tt1049413")
}

func TestSearch(t *testing.T) {
	record := &model.MovieRecord{
		ExternalID: "tt1049413",
		Title:      "Up",
		Year:       "2009",
		Synopsis:   "A house flies.",
		Rating:     "8.3",
	}
	tests := []struct {
		name     string
		gateway  *stubGateway
		query    string
		wantBody string
	}{
		{
			name:     "result page",
			gateway:  &stubGateway{record: record},
			query:    "up",
			wantBody: "A house flies.",
		},
		{
			name:     "no match message",
			gateway:  &stubGateway{err: gateway.ErrNotFound},
			query:    "xyzzy",
			wantBody: "No movie matched that title.",
		},
		{
			name:     "empty query message",
			gateway:  &stubGateway{err: gateway.ErrBadRequest},
			query:    "",
			wantBody: "Please provide a movie title.",
		},
		{
			name:     "generic failure hides the cause",
			gateway:  &stubGateway{err: errors.New("connection refused")},
			query:    "up",
			wantBody: "Search failed, please try again later.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(movie.New(tt.gateway), zap.NewNop())
			w := httptest.NewRecorder()
			h.Search(w, httptest.NewRequest(http.MethodGet, "/search?q="+tt.query, nil))

			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			assert.NotContains(t, w.Body.String(), "connection refused")
		})
	}
}

func TestClear(t *testing.T) {
	h := New(movie.New(&stubGateway{}), zap.NewNop())

	w := httptest.NewRecorder()
	h.Clear(w, httptest.NewRequest(http.MethodPost, "/clear", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = httptest.NewRecorder()
	h.Clear(w, httptest.NewRequest(http.MethodGet, "/clear", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
