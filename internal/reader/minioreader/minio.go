// Package minioreader implements a chunk reader for MinIO and other
// S3-compatible object stores.
package minioreader

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/piot/chunk-reader/internal/chunk"
	"github.com/piot/chunk-reader/internal/codec"
)

// Compile-time check that Reader implements chunk.Reader.
var _ chunk.Reader = (*Reader)(nil)

// Reader reads chunks as objects of a MinIO bucket.
type Reader struct {
	open   func(ctx context.Context, key string) (io.ReadCloser, error)
	prefix string
	codec  codec.Codec
}

// Option configures a Reader.
type Option func(*Reader)

// WithPrefix sets the root prefix prepended to every key.
func WithPrefix(prefix string) Option {
	return func(r *Reader) {
		r.prefix = prefix
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

// Dial creates a MinIO client with static credentials.
func Dial(endpoint, accessKey, secretKey string, secure bool) (*minio.Client, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("creating MinIO client: %w", err)
	}
	return client, nil
}

// New creates a reader for bucket using client.
func New(client *minio.Client, bucket string, opts ...Option) *Reader {
	r := &Reader{
		open: func(ctx context.Context, key string) (io.ReadCloser, error) {
			obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
			if err != nil {
				return nil, err
			}
			// GetObject is lazy; Stat surfaces a missing key.
			if _, err := obj.Stat(); err != nil {
				obj.Close()
				return nil, err
			}
			return obj, nil
		},
		codec: codec.Identity{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FetchOctets reads and decodes the object for id.
func (r *Reader) FetchOctets(ctx context.Context, id chunk.ResourceID) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	obj, err := r.open(ctx, r.key(id))
	if err != nil {
		if isNotFound(err) {
			return nil, &chunk.NotFoundError{Resource: id}
		}
		return nil, &chunk.IOError{Resource: id, Err: fmt.Errorf("opening object: %w", err)}
	}
	defer obj.Close()

	data, err := codec.Decode(r.codec, obj)
	if err != nil {
		return nil, &chunk.IOError{Resource: id, Err: err}
	}
	return data, nil
}

func (r *Reader) key(id chunk.ResourceID) string {
	return path.Join(r.prefix, id.String())
}

func isNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NotFound"
}
