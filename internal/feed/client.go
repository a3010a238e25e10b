// Package feed fetches and caches the daily investment idea JSON feed.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// FetchError describes a failed feed fetch: either a non-success HTTP
// status or an underlying transport failure. No fetch is ever retried;
// a single failure surfaces immediately to the caller.
type FetchError struct {
	URL        string
	StatusCode int // 0 when the request never produced a response
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("feed returned %d for %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("feed unreachable at %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client fetches the four-document JSON contract published by the idea
// feed origin. The API base path under the origin is resolved once at
// construction from the origin's host name.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given feed origin
// (scheme://host[:port]). deployPrefix is the fixed deployment path used
// when the origin is not a local host.
func NewClient(origin, deployPrefix string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("invalid feed origin %q: %w", origin, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("feed origin %q must include scheme and host", origin)
	}

	base := strings.TrimRight(origin, "/") + ResolveBasePath(u.Hostname(), deployPrefix)

	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// BaseURL returns the resolved feed base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Dates fetches the list of available dates, most recent first.
// GET {base}/dates/index.json -> ["2024-05-02", "2024-05-01", ...]
func (c *Client) Dates(ctx context.Context) ([]string, error) {
	var dates []string
	if err := c.getJSON(ctx, "/dates/index.json", &dates); err != nil {
		return nil, err
	}
	return dates, nil
}

// Types fetches the set of distinct idea types.
// GET {base}/types/index.json -> ["Stock", "Sector", ...]
func (c *Client) Types(ctx context.Context) ([]string, error) {
	var types []string
	if err := c.getJSON(ctx, "/types/index.json", &types); err != nil {
		return nil, err
	}
	return types, nil
}

// Latest fetches the most recent idea collection.
// GET {base}/ideas/index.json
func (c *Client) Latest(ctx context.Context) (*IngestResult, error) {
	return c.fetchCollection(ctx, "/ideas/index.json")
}

// Collection fetches the idea collection for a specific date.
// GET {base}/ideas/investment_ideas_{date}.json
func (c *Client) Collection(ctx context.Context, date string) (*IngestResult, error) {
	return c.fetchCollection(ctx, "/ideas/investment_ideas_"+url.PathEscape(date)+".json")
}

func (c *Client) fetchCollection(ctx context.Context, path string) (*IngestResult, error) {
	var coll collectionDoc
	if err := c.getJSON(ctx, path, &coll); err != nil {
		return nil, err
	}
	return ingest(coll)
}

// getJSON performs one GET against the feed and decodes the JSON body.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	fullURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build feed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return &FetchError{URL: fullURL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{URL: fullURL, StatusCode: resp.StatusCode}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse feed document %s: %w", fullURL, err)
	}

	return nil
}
