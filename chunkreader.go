// Package chunkreader fetches named binary resources ("chunks") from
// interchangeable backends behind a single interface.
//
// Example usage:
//
//	client, err := chunkreader.New(
//	    chunkreader.WithBasePath("assets/"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	octets, err := client.FetchOctets(ctx, chunkreader.NewResourceID("ladder_top.png"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("read %d bytes\n", len(octets))
package chunkreader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/piot/chunk-reader/internal/chunk"
	"github.com/piot/chunk-reader/internal/stats"
)

// Shared types, re-exported from the internal chunk package.
type (
	// ResourceID names a requested resource.
	ResourceID = chunk.ResourceID

	// Reader fetches the complete byte content of a resource.
	Reader = chunk.Reader

	// NotFoundError reports that the resource does not exist at the backend.
	NotFoundError = chunk.NotFoundError

	// HTTPError reports a response status other than 200 or 404.
	HTTPError = chunk.HTTPError

	// IOError wraps any other failure while reading a resource.
	IOError = chunk.IOError
)

// NewResourceID returns a ResourceID wrapping s.
func NewResourceID(s string) ResourceID {
	return chunk.NewResourceID(s)
}

// Sentinel errors for well-defined error conditions.
var (
	// ErrNotFound matches *NotFoundError.
	ErrNotFound = chunk.ErrNotFound

	// ErrHTTPStatus matches *HTTPError.
	ErrHTTPStatus = chunk.ErrHTTPStatus

	// ErrIO matches *IOError.
	ErrIO = chunk.ErrIO

	// ErrClosed indicates the client has been closed.
	ErrClosed = errors.New("chunkreader: client closed")

	// ErrNoReader indicates no reader was configured.
	ErrNoReader = errors.New("chunkreader: no reader provided")
)

// Compile-time check that Client implements Reader.
var _ Reader = (*Client)(nil)

// Client fetches chunks through a configured Reader and records metrics.
// A Client is safe for concurrent use by multiple goroutines.
type Client struct {
	reader Reader
	stats  stats.Collector
	logger *zap.Logger
	closed atomic.Bool

	mu       sync.Mutex
	inFlight int64
}

// New creates a new Client with the given options.
// A reader must be configured, either directly with WithReader or through
// one of the backend options.
func New(opts ...Option) (*Client, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	if cfg.newReader == nil {
		return nil, ErrNoReader
	}

	c := &Client{
		reader: cfg.newReader(cfg.logger),
		stats:  cfg.stats,
		logger: cfg.logger,
	}

	c.logger.Debug("client initialized", zap.String("reader", fmt.Sprintf("%T", c.reader)))

	return c, nil
}

// FetchOctets fetches the bytes of id from the configured reader.
// Errors from the reader are returned unchanged.
func (c *Client) FetchOctets(ctx context.Context, id ResourceID) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	c.stats.IncCounter(stats.MetricFetches, 1)
	c.trackInFlight(1)
	start := time.Now()

	data, err := c.reader.FetchOctets(ctx, id)
	c.trackInFlight(-1)
	c.stats.ObserveHistogram(stats.MetricFetchSeconds, time.Since(start).Seconds())
	if err != nil {
		c.recordError(id, err)
		return nil, err
	}

	c.stats.ObserveHistogram(stats.MetricFetchedBytes, float64(len(data)))
	return data, nil
}

// Close releases the reader if it holds resources.
// After Close, the client should not be used.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}

	if closer, ok := c.reader.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("closing reader: %w", err)
		}
	}

	return nil
}

// Reader returns the backend used by this client.
func (c *Client) Reader() Reader {
	return c.reader
}

// trackInFlight publishes the in-flight count under the lock so gauge
// updates are applied in order.
func (c *Client) trackInFlight(delta int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight += delta
	c.stats.SetGauge(stats.MetricInFlight, c.inFlight)
}

func (c *Client) recordError(id ResourceID, err error) {
	c.stats.IncCounter(stats.MetricFetchErrors, 1)

	kind := chunk.KindOf(err)
	switch kind {
	case chunk.KindNotFound:
		c.stats.IncCounter(stats.MetricNotFound, 1)
	case chunk.KindHTTP:
		c.stats.IncCounter(stats.MetricHTTPErrors, 1)
	case chunk.KindIO:
		c.stats.IncCounter(stats.MetricIOErrors, 1)
	}

	c.logger.Debug("fetch failed",
		zap.String("resource", id.String()),
		zap.Stringer("kind", kind),
		zap.Error(err),
	)
}
