//go:generate mockgen -destination=./mocks/download.go . Fetcher

package download

import "context"

// Fetcher downloads a single URL into a local file.
type Fetcher interface {
	// Fetch performs one GET of url and streams the body into dest. It
	// returns the response's declared content type. Failures are reported as
	// *errors.DownloadError; on a non-200 status dest is not created.
	Fetch(ctx context.Context, url, dest string) (contentType string, err error)
}
