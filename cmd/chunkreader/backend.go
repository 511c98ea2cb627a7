package main

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	chunkreader "github.com/piot/chunk-reader"
	"github.com/piot/chunk-reader/internal/codec"
	"github.com/piot/chunk-reader/internal/reader/filereader"
	"github.com/piot/chunk-reader/internal/reader/gcsreader"
	"github.com/piot/chunk-reader/internal/reader/httpreader"
	"github.com/piot/chunk-reader/internal/reader/minioreader"
	"github.com/piot/chunk-reader/internal/reader/s3reader"
)

// newLogger returns a development logger when --verbose is set.
func newLogger() (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// newReader builds the reader selected by --backend.
func newReader(ctx context.Context, log *zap.Logger) (chunkreader.Reader, error) {
	c, err := codec.ByName(codecName)
	if err != nil {
		return nil, err
	}

	switch backendName {
	case "file":
		return filereader.New(basePath), nil

	case "debug":
		return filereader.NewDebug(basePath, delay, filereader.WithLogger(log.Named("debugreader"))), nil

	case "http":
		opts := []httpreader.Option{httpreader.WithLogger(log.Named("httpreader"))}
		if basePath != "" {
			base, err := url.Parse(basePath)
			if err != nil {
				return nil, fmt.Errorf("parsing base url: %w", err)
			}
			opts = append(opts, httpreader.WithBaseURL(base))
		}
		return httpreader.New(opts...), nil

	case "gcs":
		if bucket == "" {
			return nil, fmt.Errorf("--bucket is required for the gcs backend")
		}
		r, err := gcsreader.New(ctx, bucket, gcsreader.WithPrefix(basePath), gcsreader.WithCodec(c))
		if err != nil {
			return nil, err
		}
		return r, nil

	case "s3":
		if bucket == "" {
			return nil, fmt.Errorf("--bucket is required for the s3 backend")
		}
		opts := []s3reader.Option{s3reader.WithPrefix(basePath), s3reader.WithCodec(c)}
		if region != "" {
			opts = append(opts, s3reader.WithRegion(region))
		}
		if endpoint != "" {
			opts = append(opts, s3reader.WithEndpoint(endpoint))
		}
		r, err := s3reader.New(ctx, bucket, opts...)
		if err != nil {
			return nil, err
		}
		return r, nil

	case "minio":
		if bucket == "" || endpoint == "" {
			return nil, fmt.Errorf("--bucket and --endpoint are required for the minio backend")
		}
		client, err := minioreader.Dial(endpoint, accessKey, secretKey, !insecure)
		if err != nil {
			return nil, err
		}
		return minioreader.New(client, bucket, minioreader.WithPrefix(basePath), minioreader.WithCodec(c)), nil

	default:
		return nil, fmt.Errorf("unknown backend: %s", backendName)
	}
}
