// Package backend implements the HTTP client for the hierarchy backend.
package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/boulangers/boulanger/internal/domain"
	"github.com/google/uuid"
)

// Ensure Client implements domain.IssueSource.
var _ domain.IssueSource = (*Client)(nil)

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 32 << 20

// Client fetches search results from the hierarchy backend over HTTP.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a new Client for baseURL with a per-request timeout.
// A zero timeout falls back to domain.DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = domain.DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// NewClientWithHTTP creates a Client using a preconfigured http.Client.
// This is useful for testing.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: baseURL, http: hc}
}

// Fetch performs a single GET for req and decodes the response.
// No retries are attempted.
func (c *Client) Fetch(ctx context.Context, req domain.Request) (*domain.SearchResult, error) {
	target := req.URL(c.baseURL)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", req.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s: %s", domain.ErrBackendStatus, resp.Status, detail(body))
	}

	result, err := domain.DecodeSearchResult(body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", req.Path, err)
	}
	return result, nil
}
