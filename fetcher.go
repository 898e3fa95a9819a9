package kickprof

import "context"

// Fetcher retrieves raw page content from URLs. It is the transport
// collaborator of the extraction core: retry policy, TLS, and session
// handling all live behind this interface.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its raw content.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases transport resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
