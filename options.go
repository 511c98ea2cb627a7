package chunkreader

import (
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/piot/chunk-reader/internal/reader/filereader"
	"github.com/piot/chunk-reader/internal/reader/httpreader"
	"github.com/piot/chunk-reader/internal/stats"
)

// Option configures a Client.
type Option interface {
	apply(*options)
}

// options holds the client configuration.
type options struct {
	// newReader builds the backend once the logger is known.
	newReader func(logger *zap.Logger) Reader
	stats     stats.Collector
	logger    *zap.Logger
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		stats:  stats.NewNoop(),
		logger: zap.NewNop(),
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithReader sets the backend to use.
func WithReader(r Reader) Option {
	return optionFunc(func(o *options) {
		o.newReader = func(*zap.Logger) Reader { return r }
	})
}

// WithBasePath uses the reader for the current build target: a file
// reader rooted at path on native builds, an HTTP reader in the browser.
func WithBasePath(path string) Option {
	return optionFunc(func(o *options) {
		o.newReader = func(*zap.Logger) Reader { return PlatformReader(path) }
	})
}

// WithFileReader reads resources as files below prefix.
func WithFileReader(prefix string) Option {
	return optionFunc(func(o *options) {
		o.newReader = func(*zap.Logger) Reader { return filereader.New(prefix) }
	})
}

// WithDebugFileReader reads resources as files below prefix after
// sleeping for delay, reporting missing files as *NotFoundError.
func WithDebugFileReader(prefix string, delay time.Duration) Option {
	return optionFunc(func(o *options) {
		o.newReader = func(logger *zap.Logger) Reader {
			return filereader.NewDebug(prefix, delay, filereader.WithLogger(logger.Named("debugreader")))
		}
	})
}

// WithHTTPReader fetches resources over HTTP. Relative resource ids are
// resolved against baseURL; an empty baseURL uses ids as given.
func WithHTTPReader(baseURL string) (Option, error) {
	var base *url.URL
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("parsing base url: %w", err)
		}
		base = u
	}

	return optionFunc(func(o *options) {
		o.newReader = func(logger *zap.Logger) Reader {
			return httpreader.New(
				httpreader.WithBaseURL(base),
				httpreader.WithLogger(logger.Named("httpreader")),
			)
		}
	}), nil
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		if c != nil {
			o.stats = c
		}
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		if l != nil {
			o.logger = l
		}
	})
}
