// Package http implements a discovery-based HTTP gateway to the metadata
// service.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/moviedex/moviedex/metadata/pkg/model"
	"github.com/moviedex/moviedex/movie/internal/gateway"
	"github.com/moviedex/moviedex/pkg/discovery"
)

// Gateway defines an HTTP gateway for the metadata service.
type Gateway struct {
	registry discovery.Registry
	client   *http.Client
}

// New creates a new HTTP gateway for the metadata service.
func New(registry discovery.Registry) *Gateway {
	return &Gateway{
		registry: registry,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// addr picks a random healthy metadata service instance per call.
func (g *Gateway) addr(ctx context.Context) (string, error) {
	addrs, err := g.registry.ServiceAddresses(ctx, "metadata")
	if err != nil {
		return "", err
	}
	return addrs[rand.Intn(len(addrs))], nil
}

// Search asks the metadata service to look up, normalize and cache the best
// match for a free-text title query.
func (g *Gateway) Search(ctx context.Context, query string) (*model.MovieRecord, error) {
	addr, err := g.addr(ctx)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("http://%s/metadata/search?q=%s", addr, url.QueryEscape(query))
	var record model.MovieRecord
	if err := g.do(ctx, http.MethodGet, u, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns all cached movie records.
func (g *Gateway) List(ctx context.Context) ([]model.MovieRecord, error) {
	addr, err := g.addr(ctx)
	if err != nil {
		return nil, err
	}
	var records []model.MovieRecord
	if err := g.do(ctx, http.MethodGet, fmt.Sprintf("http://%s/metadata", addr), &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Clear removes all cached movie records and returns the deleted count.
func (g *Gateway) Clear(ctx context.Context) (int64, error) {
	addr, err := g.addr(ctx)
	if err != nil {
		return 0, err
	}
	var resp struct {
		Deleted int64 `json:"deleted"`
	}
	if err := g.do(ctx, http.MethodDelete, fmt.Sprintf("http://%s/metadata", addr), &resp); err != nil {
		return 0, err
	}
	return resp.Deleted, nil
}

func (g *Gateway) do(ctx context.Context, method, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		switch resp.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", gateway.ErrNotFound, payload.Error)
		case http.StatusBadRequest:
			return fmt.Errorf("%w: %s", gateway.ErrBadRequest, payload.Error)
		default:
			return fmt.Errorf("metadata service returned %s: %s", resp.Status, payload.Error)
		}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
