// Package source adapts the upstream sites into candidate lists: the
// market-cap ranking CSV, the S&P 500 member table, and the job-board
// global-offices directory.
package source

import "context"

// Client fetches a URL body. Satisfied by fetcher.HTTPFetcher.
type Client interface {
	GetString(ctx context.Context, url string) (string, error)
}
