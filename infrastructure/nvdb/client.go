package nvdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mrfylke/vegprofil/internal/config"
	"github.com/mrfylke/vegprofil/internal/log"
)

// Accept header for the v4 read API.
const acceptHeader = "application/vnd.vegvesen.nvdb-v3-rev1+json"

// maxPages caps pagination as a guard against a server that keeps handing
// out new page tokens.
const maxPages = 10000

// ErrTooManyPages indicates pagination ran past the page cap.
var ErrTooManyPages = errors.New("nvdb: page limit exceeded")

// ErrRepeatedPageToken indicates the API returned a page token that was
// already seen, which would loop forever.
var ErrRepeatedPageToken = errors.New("nvdb: repeated page token")

// statusError is a non-2xx API response.
type statusError struct {
	status int
	url    string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("nvdb: %s returned status %d", e.url, e.status)
}

// Client is an NVDB Les API v4 client. It identifies itself with the
// X-Client header, retries transient failures with exponential backoff and
// follows metadata.neste pagination.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientName   string
	srid         int
	pageSize     int
	maxRetries   int
	initialDelay time.Duration
	backoff      float64
	logger       *log.Logger
}

// ClientOption is a functional option for Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Client from the NVDB configuration.
func NewClient(cfg config.NVDBConfig, logger *log.Logger, opts ...ClientOption) *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: cfg.Timeout()},
		baseURL:      cfg.BaseURL(),
		clientName:   cfg.ClientName(),
		srid:         cfg.SRID(),
		pageSize:     cfg.PageSize(),
		maxRetries:   cfg.MaxRetries(),
		initialDelay: cfg.InitialDelay(),
		backoff:      cfg.Backoff(),
		logger:       logger.With("component", "nvdb"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RoadObjects fetches all objects of one type for a county, following
// pagination to the end. The returned slice preserves API order.
func (c *Client) RoadObjects(ctx context.Context, objectType, county int, roadRef string) ([]RoadObject, error) {
	params := url.Values{}
	params.Set("fylke", strconv.Itoa(county))
	params.Set("antall", strconv.Itoa(c.pageSize))
	params.Set("inkluder", "egenskaper,lokasjon,geometri")
	params.Set("srid", strconv.Itoa(c.srid))
	if roadRef != "" {
		params.Set("vegsystemreferanse", roadRef)
	}

	endpoint := fmt.Sprintf("%s/vegobjekter/api/v4/vegobjekter/%d", c.baseURL, objectType)

	var all []RoadObject
	err := c.paginate(ctx, endpoint, params, func(data []byte) (*PageMetadata, error) {
		var page ObjectPage
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, fmt.Errorf("decode object page: %w", err)
		}
		all = append(all, page.Objekter...)
		return &page.Metadata, nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("fetched road objects", "object_type", objectType, "count", len(all))
	return all, nil
}

// NetworkSegments fetches the segmented road network for a county, filtered
// to the given road system reference (e.g. "F").
func (c *Client) NetworkSegments(ctx context.Context, county int, roadRef string) ([]NetworkSegment, error) {
	params := url.Values{}
	params.Set("fylke", strconv.Itoa(county))
	params.Set("antall", strconv.Itoa(c.pageSize))
	params.Set("srid", strconv.Itoa(c.srid))
	if roadRef != "" {
		params.Set("vegsystemreferanse", roadRef)
	}

	endpoint := c.baseURL + "/vegnett/api/v4/veglenkesekvenser/segmentert"

	var all []NetworkSegment
	err := c.paginate(ctx, endpoint, params, func(data []byte) (*PageMetadata, error) {
		var page NetworkPage
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, fmt.Errorf("decode network page: %w", err)
		}
		all = append(all, page.Objekter...)
		return &page.Metadata, nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("fetched network segments", "count", len(all))
	return all, nil
}

// paginate fetches pages until metadata.neste stops advancing. The start
// token from metadata.neste.start is preferred over the href; a token seen
// before, or an empty token, ends the walk. handle decodes one page body
// and returns its metadata.
func (c *Client) paginate(ctx context.Context, endpoint string, params url.Values, handle func([]byte) (*PageMetadata, error)) error {
	seen := make(map[string]bool)
	start := ""

	for page := 0; page < maxPages; page++ {
		q := url.Values{}
		for k, v := range params {
			q[k] = v
		}
		if start != "" {
			q.Set("start", start)
		}

		body, err := c.get(ctx, endpoint+"?"+q.Encode())
		if err != nil {
			return err
		}

		meta, err := handle(body)
		if err != nil {
			return err
		}

		next := nextToken(meta)
		if next == "" || meta.Returnert == 0 {
			return nil
		}
		if seen[next] {
			return fmt.Errorf("%w: %q", ErrRepeatedPageToken, next)
		}
		seen[next] = true
		start = next
	}

	return ErrTooManyPages
}

// nextToken extracts the next-page token, preferring the explicit start
// field and falling back to the start parameter of the href URL.
func nextToken(meta *PageMetadata) string {
	if meta.Neste == nil {
		return ""
	}
	if meta.Neste.Start != "" {
		return meta.Neste.Start
	}
	if meta.Neste.Href == "" {
		return ""
	}
	u, err := url.Parse(meta.Neste.Href)
	if err != nil {
		return ""
	}
	return u.Query().Get("start")
}

// get performs one GET with the API headers, retrying transient failures.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	var body []byte

	err := c.withRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", acceptHeader)
		req.Header.Set("X-Client", c.clientName)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			// Drain so the connection can be reused.
			_, _ = io.Copy(io.Discard, resp.Body)
			return &statusError{status: resp.StatusCode, url: rawURL}
		}

		body, err = io.ReadAll(resp.Body)
		return err
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) withRetry(ctx context.Context, fn func() error) error {
	delay := c.initialDelay
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if !isRetryable(lastErr) {
			return lastErr
		}

		if attempt < c.maxRetries {
			c.logger.Warn("request failed, retrying", "attempt", attempt+1, "delay", delay.String(), "error", lastErr.Error())
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay = time.Duration(float64(delay) * c.backoff)
			}
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// isRetryable reports whether an error should be retried: rate limiting and
// server-side failures are, client errors are not.
func isRetryable(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var statusErr *statusError
	if errors.As(err, &statusErr) {
		switch statusErr.status {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}
