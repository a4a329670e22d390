package scrapetask

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the HTML served at url.
	// The context controls timeout and cancellation.
	// Returns EUNAVAILABLE for transport failures and non-success statuses.
	Fetch(ctx context.Context, url string) (html string, err error)
}
