// Package httpreader implements a chunk reader that fetches resources over HTTP.
//
// Resource ids are used as URLs. Under GOOS=js the net/http transport is
// the host's fetch API, so the same reader serves browser windows and
// workers as well as native builds.
package httpreader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/piot/chunk-reader/internal/chunk"
)

// Compile-time check that Reader implements chunk.Reader.
var _ chunk.Reader = (*Reader)(nil)

// errNoFetchHost is reported when no fetch-capable global scope exists.
var errNoFetchHost = errors.New("could not find a window or a worker from javascript")

// Reader fetches resources with HTTP GET requests.
type Reader struct {
	client  *http.Client
	baseURL *url.URL
	logger  *zap.Logger
}

// Option configures a Reader.
type Option func(*Reader)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Reader) {
		if c != nil {
			r.client = c
		}
	}
}

// WithBaseURL resolves relative resource ids against base.
// Without it ids are passed to the transport untouched.
func WithBaseURL(base *url.URL) Option {
	return func(r *Reader) {
		r.baseURL = base
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Reader) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Reader. By default it uses http.DefaultClient and has no
// request timeout; cancellation comes from the caller's context.
func New(opts ...Option) *Reader {
	r := &Reader{
		client: http.DefaultClient,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FetchOctets fetches id and returns the response body of a 200 response.
// A 404 is reported as *chunk.NotFoundError, other statuses as
// *chunk.HTTPError and transport failures as *chunk.IOError.
func (r *Reader) FetchOctets(ctx context.Context, id chunk.ResourceID) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if !fetchAvailable() {
		return nil, &chunk.IOError{Resource: id, Err: errNoFetchHost}
	}

	target, err := r.resolve(id)
	if err != nil {
		return nil, hostFailure("invalid url", id)(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, hostFailure("invalid request", id)(err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, hostFailure("response future err", id)(err)
	}
	defer resp.Body.Close()

	r.logger.Debug("fetched",
		zap.String("resource", id.String()),
		zap.Int("status", resp.StatusCode),
	)

	if err := classify(id, resp.StatusCode); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, hostFailure("failed to get array buffer", id)(err)
	}
	return data, nil
}

func (r *Reader) resolve(id chunk.ResourceID) (string, error) {
	if r.baseURL == nil {
		return id.String(), nil
	}
	ref, err := url.Parse(id.String())
	if err != nil {
		return "", fmt.Errorf("parsing resource url: %w", err)
	}
	return r.baseURL.ResolveReference(ref).String(), nil
}
