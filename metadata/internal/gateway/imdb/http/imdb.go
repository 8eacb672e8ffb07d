// Package http implements a gateway to an IMDb-style metadata API over HTTP.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/moviedex/moviedex/metadata/pkg/model"
)

// Gateway defines a movie metadata HTTP gateway.
type Gateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
	// Throttles outbound calls to the upstream API.
	limiter *rate.Limiter
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Gateway) {
		if client != nil {
			g.client = client
		}
	}
}

// New creates a new metadata API gateway.
func New(baseURL, apiKey string, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(4), 8),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Search returns the raw candidate entries for a free-text title query.
func (g *Gateway) Search(ctx context.Context, query string) ([]model.Candidate, error) {
	values := url.Values{}
	values.Set("q", query)
	body, err := g.get(ctx, g.baseURL+"/search/titles", values)
	if err != nil {
		return nil, err
	}
	return decodeCandidates(body)
}

// Details returns the raw details record for one external id.
func (g *Gateway) Details(ctx context.Context, externalID string) (model.Details, error) {
	body, err := g.get(ctx, g.baseURL+"/titles/"+url.PathEscape(externalID), url.Values{})
	if err != nil {
		return nil, err
	}
	var details model.Details
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("decode details response: %w", err)
	}
	return details, nil
}

func (g *Gateway) get(ctx context.Context, endpoint string, values url.Values) ([]byte, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	if g.apiKey != "" {
		values.Set("apiKey", g.apiKey)
	}
	if len(values) > 0 {
		endpoint += "?" + values.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("metadata api returned %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// decodeCandidates accepts both a bare JSON array of candidates and the
// wrapped variants some providers return.
func decodeCandidates(body []byte) ([]model.Candidate, error) {
	var list []model.Candidate
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	for _, key := range []string{"results", "d", "titles"} {
		raw, ok := wrapper[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("decode search response %q list: %w", key, err)
		}
		return list, nil
	}
	return nil, errors.New("search response has no candidate list")
}
