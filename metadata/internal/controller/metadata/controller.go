package metadata

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/uber-go/tally/v4"
	"go.uber.org/zap"

	"github.com/moviedex/moviedex/metadata/internal/match"
	"github.com/moviedex/moviedex/metadata/internal/repository"
	"github.com/moviedex/moviedex/metadata/pkg/model"
)

var (
	// ErrEmptyQuery is returned when the search query is blank.
	ErrEmptyQuery = errors.New("empty query")
	// ErrNoMatch is returned when no candidate matches the query.
	ErrNoMatch = errors.New("no matching title")
	// ErrMissingID is returned when the best candidate carries no usable
	// external id.
	ErrMissingID = errors.New("matched title has no external id")
	// ErrNotFound is returned when a requested record is not stored.
	ErrNotFound = errors.New("not found")
)

type metadataGateway interface {
	Search(ctx context.Context, query string) ([]model.Candidate, error)
	Details(ctx context.Context, externalID string) (model.Details, error)
}

type movieRepository interface {
	Get(ctx context.Context, id string) (*model.MovieRecord, error)
	Put(ctx context.Context, id string, record *model.MovieRecord) error
	List(ctx context.Context) ([]model.MovieRecord, error)
	Clear(ctx context.Context) (int64, error)
}

type recordIngester interface {
	Ingest(ctx context.Context) (chan model.RecordEvent, error)
}

// Controller defines a metadata service controller.
type Controller struct {
	gateway  metadataGateway
	repo     movieRepository
	cache    movieRepository
	ingester recordIngester
	logger   *zap.Logger

	searches  tally.Counter
	cacheHits tally.Counter
	noMatches tally.Counter
	failures  tally.Counter
}

// New creates a metadata service controller.
func New(gateway metadataGateway, repo movieRepository, cache movieRepository, ingester recordIngester, logger *zap.Logger, scope tally.Scope) *Controller {
	return &Controller{
		gateway:   gateway,
		repo:      repo,
		cache:     cache,
		ingester:  ingester,
		logger:    logger,
		searches:  scope.Counter("search_requests"),
		cacheHits: scope.Counter("cache_hits"),
		noMatches: scope.Counter("search_no_match"),
		failures:  scope.Counter("collaborator_failures"),
	}
}

// Search looks a movie up by free-text title, normalizes the best match into
// a canonical record and persists it keyed by external id. Collaborator
// failures are wrapped; callers map them to one generic user-facing message.
func (c *Controller) Search(ctx context.Context, query string) (*model.MovieRecord, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, ErrEmptyQuery
	}
	c.searches.Inc(1)

	candidates, err := c.gateway.Search(ctx, q)
	if err != nil {
		c.failures.Inc(1)
		return nil, fmt.Errorf("search titles: %w", err)
	}
	best := match.PickBest(candidates, q)
	if best == nil {
		c.noMatches.Inc(1)
		return nil, ErrNoMatch
	}
	id := match.ExternalID(best)
	if id == "" {
		return nil, ErrMissingID
	}
	details, err := c.gateway.Details(ctx, id)
	if err != nil {
		c.failures.Inc(1)
		return nil, fmt.Errorf("fetch details for %s: %w", id, err)
	}
	record := match.Normalize(best, q, details)
	if err := c.repo.Put(ctx, record.ExternalID, &record); err != nil {
		c.failures.Inc(1)
		return nil, fmt.Errorf("store record %s: %w", record.ExternalID, err)
	}
	if err := c.cache.Put(ctx, record.ExternalID, &record); err != nil {
		c.logger.Warn("Failed to update cache", zap.String("id", record.ExternalID), zap.Error(err))
	}
	return &record, nil
}

// Get returns the stored record for an external id, reading through the
// cache into the repository.
func (c *Controller) Get(ctx context.Context, id string) (*model.MovieRecord, error) {
	if record, err := c.cache.Get(ctx, id); err == nil {
		c.cacheHits.Inc(1)
		return record, nil
	}
	record, err := c.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		c.failures.Inc(1)
		return nil, fmt.Errorf("load record %s: %w", id, err)
	}
	if err := c.cache.Put(ctx, id, record); err != nil {
		c.logger.Warn("Failed to update cache", zap.String("id", id), zap.Error(err))
	}
	return record, nil
}

// List returns all stored records in unspecified order.
func (c *Controller) List(ctx context.Context) ([]model.MovieRecord, error) {
	records, err := c.repo.List(ctx)
	if err != nil {
		c.failures.Inc(1)
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// Clear removes every stored record from the repository and the cache and
// returns the repository count. Clearing an empty store succeeds with zero.
func (c *Controller) Clear(ctx context.Context) (int64, error) {
	n, err := c.repo.Clear(ctx)
	if err != nil {
		c.failures.Inc(1)
		return 0, fmt.Errorf("clear records: %w", err)
	}
	if _, err := c.cache.Clear(ctx); err != nil {
		c.logger.Warn("Failed to clear cache", zap.Error(err))
	}
	return n, nil
}

// StartIngestion starts the ingestion of movie record events and blocks
// until the stream closes or the context is cancelled.
func (c *Controller) StartIngestion(ctx context.Context) error {
	ch, err := c.ingester.Ingest(ctx)
	if err != nil {
		return err
	}
	for e := range ch {
		if e.EventType != model.RecordEventTypePut {
			continue
		}
		record := e.Record
		if record.ExternalID == "" {
			c.logger.Warn("Skipping record event without external id", zap.String("provider", e.ProviderID))
			continue
		}
		if err := c.repo.Put(ctx, record.ExternalID, &record); err != nil {
			return err
		}
	}
	return nil
}
