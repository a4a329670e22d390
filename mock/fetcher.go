// Package mock provides hand-rolled mock implementations of the scrapetask
// service interfaces for use in tests.
package mock

import (
	"context"

	"scrapetask"
)

var _ scrapetask.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of scrapetask.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}
