package movie

import (
	"context"
	"errors"

	"github.com/moviedex/moviedex/metadata/pkg/model"
	"github.com/moviedex/moviedex/movie/internal/gateway"
)

// ErrNotFound is returned when no movie matched the query.
var ErrNotFound = errors.New("not found")

// ErrBadRequest is returned when the query was rejected.
var ErrBadRequest = errors.New("bad request")

type metadataGateway interface {
	Search(ctx context.Context, query string) (*model.MovieRecord, error)
	List(ctx context.Context) ([]model.MovieRecord, error)
	Clear(ctx context.Context) (int64, error)
}

// Controller defines a movie service controller.
type Controller struct {
	metadataGateway metadataGateway
}

// New creates a new movie service controller.
func New(metadataGateway metadataGateway) *Controller {
	return &Controller{metadataGateway}
}

// Search returns the cached canonical record for the best match of a
// free-text title query.
func (c *Controller) Search(ctx context.Context, query string) (*model.MovieRecord, error) {
	record, err := c.metadataGateway.Search(ctx, query)
	if err != nil {
		switch {
		case errors.Is(err, gateway.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, gateway.ErrBadRequest):
			return nil, ErrBadRequest
		}
		return nil, err
	}
	return record, nil
}

// List returns all cached movie records.
func (c *Controller) List(ctx context.Context) ([]model.MovieRecord, error) {
	return c.metadataGateway.List(ctx)
}

// Clear removes all cached movie records and returns the deleted count.
func (c *Controller) Clear(ctx context.Context) (int64, error) {
	return c.metadataGateway.Clear(ctx)
}
