package httpreader

import (
	"fmt"
	"net/http"

	"github.com/piot/chunk-reader/internal/chunk"
)

// classify maps a response status to the chunk error taxonomy.
// It returns nil for 200.
func classify(id chunk.ResourceID, status int) error {
	switch status {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return &chunk.NotFoundError{Resource: id}
	default:
		return &chunk.HTTPError{StatusCode: uint16(status)}
	}
}

// hostFailure returns a converter turning a transport failure into a
// *chunk.IOError whose message names the failed step.
func hostFailure(problem string, id chunk.ResourceID) func(error) error {
	return func(err error) error {
		return &chunk.IOError{
			Resource: id,
			Err:      fmt.Errorf("failed some fetch with %s: %w", problem, err),
		}
	}
}
