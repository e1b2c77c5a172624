package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single widget fetch when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps response bodies; widget APIs return small JSON payloads.
const maxBodyBytes = 1 << 20

// StatusError reports a non-success HTTP response.
type StatusError struct {
	Code   int
	Target string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch: %s returned status %d", e.Target, e.Code)
}

// HTTPOption configures the HTTP fetcher.
type HTTPOption func(*HTTPFetcher)

// WithHTTPClient overrides the underlying client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(f *HTTPFetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithTimeout bounds each request.
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(f *HTTPFetcher) {
		if timeout > 0 {
			f.timeout = timeout
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) HTTPOption {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// HTTPFetcher retrieves widget payloads over plain HTTP GET.
type HTTPFetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// NewHTTPFetcher builds a fetcher with sane defaults.
func NewHTTPFetcher(opts ...HTTPOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client:    &http.Client{},
		timeout:   DefaultTimeout,
		userAgent: "go-dashboard",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch performs a GET against the target and returns the raw body. Non-2xx
// responses surface as *StatusError.
func (f *HTTPFetcher) Fetch(ctx context.Context, target string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json")

	res, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %s: %w", target, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &StatusError{Code: res.StatusCode, Target: target}
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("fetch: read body from %s: %w", target, err)
	}
	return body, nil
}
