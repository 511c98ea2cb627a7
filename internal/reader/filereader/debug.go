package filereader

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/piot/chunk-reader/internal/chunk"
)

// Compile-time check that DebugReader implements chunk.Reader.
var _ chunk.Reader = (*DebugReader)(nil)

// DebugReader reads files like Reader but waits a fixed delay before each
// read, to exercise loading states under simulated latency.
//
// The delay blocks the calling goroutine and does not observe ctx.
type DebugReader struct {
	prefix string
	delay  time.Duration
	logger *zap.Logger
}

// DebugOption configures a DebugReader.
type DebugOption func(*DebugReader)

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(l *zap.Logger) DebugOption {
	return func(r *DebugReader) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewDebug creates a DebugReader rooted at prefix that sleeps for delay
// before reading each existing file.
func NewDebug(prefix string, delay time.Duration, opts ...DebugOption) *DebugReader {
	r := &DebugReader{
		prefix: prefix,
		delay:  delay,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FetchOctets reads the file for id after the configured delay.
// A missing file is reported immediately as *chunk.NotFoundError.
func (r *DebugReader) FetchOctets(ctx context.Context, id chunk.ResourceID) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	r.logger.Debug("starting fetch", zap.String("resource", id.String()))

	path := resolve(r.prefix, id)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		r.logger.Warn("path does not exist", zap.String("path", path))
		return nil, &chunk.NotFoundError{Resource: id}
	}

	time.Sleep(r.delay)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &chunk.IOError{Resource: id, Err: err}
	}
	return data, nil
}

// Delay returns the configured delay.
func (r *DebugReader) Delay() time.Duration {
	return r.delay
}
