// Package gcsreader implements a chunk reader backed by Google Cloud Storage.
package gcsreader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/piot/chunk-reader/internal/chunk"
	"github.com/piot/chunk-reader/internal/codec"
)

// Compile-time check that Reader implements chunk.Reader.
var _ chunk.Reader = (*Reader)(nil)

// Reader reads chunks as objects of a GCS bucket.
type Reader struct {
	client *storage.Client
	open   func(ctx context.Context, key string) (io.ReadCloser, error)
	prefix string
	codec  codec.Codec
}

// Option configures a Reader.
type Option func(*Reader)

// WithPrefix sets a key prefix for all objects.
func WithPrefix(prefix string) Option {
	return func(r *Reader) {
		r.prefix = normalizePrefix(prefix)
	}
}

// WithCodec sets the codec objects are stored with. Default is codec.Identity.
func WithCodec(c codec.Codec) Option {
	return func(r *Reader) {
		if c != nil {
			r.codec = c
		}
	}
}

// New creates a GCS reader for bucketName using application default credentials.
// The bucket must already exist.
func New(ctx context.Context, bucketName string, opts ...Option) (*Reader, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating GCS client: %w", err)
	}

	bucket := client.Bucket(bucketName)
	r := &Reader{
		client: client,
		open: func(ctx context.Context, key string) (io.ReadCloser, error) {
			return bucket.Object(key).NewReader(ctx)
		},
		codec: codec.Identity{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// FetchOctets reads and decodes the object for id.
func (r *Reader) FetchOctets(ctx context.Context, id chunk.ResourceID) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	obj, err := r.open(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, &chunk.NotFoundError{Resource: id}
		}
		return nil, &chunk.IOError{Resource: id, Err: fmt.Errorf("creating reader: %w", err)}
	}
	defer obj.Close()

	data, err := codec.Decode(r.codec, obj)
	if err != nil {
		return nil, &chunk.IOError{Resource: id, Err: err}
	}
	return data, nil
}

// Close releases the GCS client.
func (r *Reader) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

// key returns the full object key for id.
func (r *Reader) key(id chunk.ResourceID) string {
	return r.prefix + id.String()
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return prefix
}
