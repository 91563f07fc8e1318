package api

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/justyntemme/sanpustaka-t/pkg/models"
)

const (
	// DefaultEndpoint is the public volume search endpoint
	DefaultEndpoint = "https://www.googleapis.com/books/v1/volumes"
	// DefaultMaxResults is the fixed page size of a search
	DefaultMaxResults = 24

	defaultUserAgent = "sanpustaka-t/0.1"
	maxCoverBytes    = 4 << 20
)

// Searcher runs a volume search. It is implemented by *Client and faked in tests.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]models.BookSummary, error)
}

// CoverFetcher downloads cover thumbnails.
type CoverFetcher interface {
	FetchCover(ctx context.Context, coverURL string) (image.Image, error)
}

var (
	_ Searcher     = (*Client)(nil)
	_ CoverFetcher = (*Client)(nil)
)

// Client is the HTTP client for the volume search API
type Client struct {
	endpoint   *url.URL
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new API client. A zero timeout leaves the transport
// default in place.
func NewClient(endpoint string, timeout time.Duration) (*Client, error) {
	u, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	return &Client{
		endpoint: u,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Endpoint returns the resolved search endpoint
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// Search queries the catalog and returns at most limit summaries. A response
// without items yields an empty, non-nil slice.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]models.BookSummary, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query is empty")
	}
	if limit <= 0 {
		limit = DefaultMaxResults
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(limit))

	reqURL := *c.endpoint
	reqURL.RawQuery = params.Encode()

	resp, err := c.request(ctx, reqURL.String(), "application/json")
	if err != nil {
		return nil, err
	}
	result, err := parseResponse[models.VolumesResponse](resp)
	if err != nil {
		return nil, err
	}

	books := make([]models.BookSummary, 0, len(result.Items))
	for _, item := range result.Items {
		books = append(books, item.Summary())
	}
	return books, nil
}

// FetchCover downloads and decodes a cover image
func (c *Client) FetchCover(ctx context.Context, coverURL string) (image.Image, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(coverURL) == "" {
		return nil, fmt.Errorf("cover url is empty")
	}

	resp, err := c.request(ctx, coverURL, "image/*")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("cover %s returned status %d", coverURL, resp.StatusCode)
	}
	img, _, err := image.Decode(io.LimitReader(resp.Body, maxCoverBytes))
	if err != nil {
		return nil, fmt.Errorf("decode cover: %w", err)
	}
	return img, nil
}

// request makes a GET request
func (c *Client) request(ctx context.Context, rawURL, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}

// parseResponse reads and unmarshals the response body
func parseResponse[T any](resp *http.Response) (T, error) {
	var result T
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp models.ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
			return result, fmt.Errorf("api returned status %d: %s", resp.StatusCode, errResp.Error.Message)
		}
		return result, fmt.Errorf("api returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return result, fmt.Errorf("decode response: %w", err)
	}
	return result, nil
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		trimmed = DefaultEndpoint
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse endpoint %q: missing host", endpoint)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
