package memory

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"

	"github.com/moviedex/moviedex/metadata/internal/repository"
	"github.com/moviedex/moviedex/metadata/pkg/model"
)

// Repository defines a memory movie record repository.
type Repository struct {
	sync.RWMutex
	data map[string]*model.MovieRecord
}

const tracerID = "metadata-repository-memory"

// New creates a new memory repository.
func New() *Repository {
	return &Repository{data: map[string]*model.MovieRecord{}}
}

// Get retrieves a movie record by its external id.
func (r *Repository) Get(ctx context.Context, id string) (*model.MovieRecord, error) {
	r.RLock()
	defer r.RUnlock()

	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/Get")
	defer span.End()

	m, ok := r.data[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return m, nil
}

// Put adds or replaces the movie record for a given external id.
func (r *Repository) Put(ctx context.Context, id string, record *model.MovieRecord) error {
	r.Lock()
	defer r.Unlock()

	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/Put")
	defer span.End()

	r.data[id] = record
	return nil
}

// List returns all stored movie records in unspecified order.
func (r *Repository) List(ctx context.Context) ([]model.MovieRecord, error) {
	r.RLock()
	defer r.RUnlock()

	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/List")
	defer span.End()

	res := make([]model.MovieRecord, 0, len(r.data))
	for _, m := range r.data {
		res = append(res, *m)
	}
	return res, nil
}

// Clear removes all stored movie records and returns the number removed.
// Clearing an empty store is a no-op, not an error.
func (r *Repository) Clear(ctx context.Context) (int64, error) {
	r.Lock()
	defer r.Unlock()

	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/Clear")
	defer span.End()

	n := int64(len(r.data))
	r.data = map[string]*model.MovieRecord{}
	return n, nil
}
