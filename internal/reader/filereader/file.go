// Package filereader implements chunk readers backed by the local filesystem.
package filereader

import (
	"context"
	"os"
	"path/filepath"

	"github.com/piot/chunk-reader/internal/chunk"
)

// Compile-time check that Reader implements chunk.Reader.
var _ chunk.Reader = (*Reader)(nil)

// Reader reads resources as files below a prefix directory.
type Reader struct {
	prefix string
}

// New creates a Reader that resolves resource ids relative to prefix.
// The prefix is not checked; a missing directory surfaces on the first fetch.
func New(prefix string) *Reader {
	return &Reader{prefix: prefix}
}

// FetchOctets reads the whole file for id.
// Every read failure, a missing file included, is reported as *chunk.IOError.
func (r *Reader) FetchOctets(ctx context.Context, id chunk.ResourceID) ([]byte, error) {
	// Check for cancellation before starting I/O.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(r.path(id))
	if err != nil {
		return nil, &chunk.IOError{Resource: id, Err: err}
	}
	return data, nil
}

// Prefix returns the directory resource ids are resolved against.
func (r *Reader) Prefix() string {
	return r.prefix
}

func (r *Reader) path(id chunk.ResourceID) string {
	return resolve(r.prefix, id)
}

// resolve joins id onto prefix. An absolute id replaces the prefix.
func resolve(prefix string, id chunk.ResourceID) string {
	name := id.String()
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(prefix, name)
}
