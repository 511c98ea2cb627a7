// Package memorychunkreaderfx provides an fx module for an in-memory chunkreader client.
// Useful for testing.
package memorychunkreaderfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	chunkreader "github.com/piot/chunk-reader"
	"github.com/piot/chunk-reader/internal/reader/memreader"
	"github.com/piot/chunk-reader/internal/stats"
	"github.com/piot/chunk-reader/internal/stats/logger"
)

// Module provides an in-memory chunkreader client for testing.
// Requires a *zap.Logger to be provided.
var Module = fx.Module("memorychunkreader",
	fx.Provide(
		newStatsCollector,
		memreader.New,
		newClient,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("chunkreader.stats"))
}

// Params holds dependencies for creating the client.
type Params struct {
	fx.In

	Logger    *zap.Logger
	Collector stats.Collector
	Reader    *memreader.Reader
	Lifecycle fx.Lifecycle
}

// Result holds the provided client.
type Result struct {
	fx.Out

	Client *chunkreader.Client
}

func newClient(p Params) (Result, error) {
	client, err := chunkreader.New(
		chunkreader.WithReader(p.Reader),
		chunkreader.WithStats(p.Collector),
		chunkreader.WithLogger(p.Logger.Named("chunkreader")),
	)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return Result{Client: client}, nil
}
