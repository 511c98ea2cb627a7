package chunk

import "context"

// Reader fetches the complete byte content of a resource.
// Implementations hold only immutable configuration and are safe for
// concurrent use.
type Reader interface {
	// FetchOctets returns the bytes of the resource named by id.
	// Failures are reported as *NotFoundError, *HTTPError or *IOError.
	FetchOctets(ctx context.Context, id ResourceID) ([]byte, error)
}
