// Package http provides the HTTP-based implementation of scrapetask.Fetcher.
// It retrieves static server-delivered HTML only; JavaScript-rendered
// content is out of scope.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"scrapetask"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements scrapetask.Fetcher at compile time.
var _ scrapetask.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL. Transport failures
// and non-2xx statuses return EUNAVAILABLE with the status in the message.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", scrapetask.Errorf(scrapetask.EINVALID, "invalid request for %s: %v", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", scrapetask.Errorf(scrapetask.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode > 299 {
		return "", scrapetask.Errorf(scrapetask.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", scrapetask.Errorf(scrapetask.EUNAVAILABLE, "read %s: %v", url, err)
	}

	return string(body), nil
}
