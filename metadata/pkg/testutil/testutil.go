package testutil

import (
	"context"
	nethttp "net/http"

	"github.com/uber-go/tally/v4"
	"go.uber.org/zap"

	"github.com/moviedex/moviedex/metadata/internal/controller/metadata"
	httphandler "github.com/moviedex/moviedex/metadata/internal/handler/http"
	"github.com/moviedex/moviedex/metadata/internal/repository/memory"
	"github.com/moviedex/moviedex/metadata/pkg/model"
)

// Gateway is the upstream metadata API surface tests stub out.
type Gateway interface {
	Search(ctx context.Context, query string) ([]model.Candidate, error)
	Details(ctx context.Context, externalID string) (model.Details, error)
}

// NewTestMetadataHandler creates a metadata HTTP handler backed by in-memory
// repositories, to be used in tests.
func NewTestMetadataHandler(gateway Gateway) nethttp.Handler {
	ctrl := metadata.New(gateway, memory.New(), memory.New(), nil, zap.NewNop(), tally.NoopScope)
	return httphandler.New(ctrl, zap.NewNop()).Router()
}
