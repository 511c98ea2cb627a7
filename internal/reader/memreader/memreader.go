// Package memreader provides an in-memory chunk reader for testing.
package memreader

import (
	"context"
	"sync"

	"github.com/piot/chunk-reader/internal/chunk"
)

// Compile-time check that Reader implements chunk.Reader.
var _ chunk.Reader = (*Reader)(nil)

// Reader serves chunks from a map.
type Reader struct {
	mu     sync.RWMutex
	chunks map[chunk.ResourceID][]byte
}

// New creates an empty in-memory reader.
func New() *Reader {
	return &Reader{
		chunks: make(map[chunk.ResourceID][]byte),
	}
}

// Set stores data for id (for test setup).
// The data is copied so later caller mutations do not leak into the reader.
func (r *Reader) Set(id chunk.ResourceID, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chunks[id] = append([]byte(nil), data...)
}

// Delete removes id.
func (r *Reader) Delete(id chunk.ResourceID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.chunks, id)
}

// FetchOctets returns a copy of the stored bytes, or *chunk.NotFoundError.
func (r *Reader) FetchOctets(ctx context.Context, id chunk.ResourceID) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.chunks[id]
	if !ok {
		return nil, &chunk.NotFoundError{Resource: id}
	}
	return append([]byte(nil), data...), nil
}
