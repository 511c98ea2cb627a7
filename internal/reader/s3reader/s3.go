// Package s3reader implements a chunk reader backed by AWS S3.
package s3reader

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/piot/chunk-reader/internal/chunk"
	"github.com/piot/chunk-reader/internal/codec"
)

// Compile-time check that Reader implements chunk.Reader.
var _ chunk.Reader = (*Reader)(nil)

// getObjectAPI is the subset of *s3.Client used by Reader.
type getObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Reader reads chunks as objects of an S3 bucket.
type Reader struct {
	client getObjectAPI
	bucket string
	prefix string
	codec  codec.Codec
}

type settings struct {
	prefix   string
	region   string
	endpoint string
	codec    codec.Codec
}

// Option configures a Reader.
type Option func(*settings)

// WithPrefix sets a key prefix for all objects.
func WithPrefix(prefix string) Option {
	return func(s *settings) {
		s.prefix = strings.TrimSuffix(prefix, "/")
		if s.prefix != "" {
			s.prefix += "/"
		}
	}
}

// WithRegion sets the AWS region.
func WithRegion(region string) Option {
	return func(s *settings) {
		s.region = region
	}
}

// WithEndpoint sets a custom endpoint (for S3-compatible services) and
// switches to path-style addressing.
func WithEndpoint(endpoint string) Option {
	return func(s *settings) {
		s.endpoint = endpoint
	}
}

// WithCodec sets the codec objects are stored with. Default is codec.Identity.
func WithCodec(c codec.Codec) Option {
	return func(s *settings) {
		if c != nil {
			s.codec = c
		}
	}
}

// New creates an S3 reader for bucketName using the default AWS credential chain.
// The bucket must already exist.
func New(ctx context.Context, bucketName string, opts ...Option) (*Reader, error) {
	s := settings{codec: codec.Identity{}}
	for _, opt := range opts {
		opt(&s)
	}

	var loadOpts []func(*config.LoadOptions) error
	if s.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(s.region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s.endpoint != "" {
			o.BaseEndpoint = aws.String(s.endpoint)
			o.UsePathStyle = true
		}
	})

	return newReader(client, bucketName, s), nil
}

func newReader(client getObjectAPI, bucket string, s settings) *Reader {
	return &Reader{
		client: client,
		bucket: bucket,
		prefix: s.prefix,
		codec:  s.codec,
	}
}

// FetchOctets reads and decodes the object for id.
func (r *Reader) FetchOctets(ctx context.Context, id chunk.ResourceID) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	result, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key(id)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, &chunk.NotFoundError{Resource: id}
		}
		return nil, &chunk.IOError{Resource: id, Err: fmt.Errorf("getting object: %w", err)}
	}
	defer result.Body.Close()

	data, err := codec.Decode(r.codec, result.Body)
	if err != nil {
		return nil, &chunk.IOError{Resource: id, Err: err}
	}
	return data, nil
}

// Close is a no-op; the S3 client holds no resources that need releasing.
func (r *Reader) Close() error {
	return nil
}

func (r *Reader) key(id chunk.ResourceID) string {
	return r.prefix + id.String()
}
