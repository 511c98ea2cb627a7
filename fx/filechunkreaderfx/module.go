// Package filechunkreaderfx provides an fx module for a filesystem-backed chunkreader client.
package filechunkreaderfx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	chunkreader "github.com/piot/chunk-reader"
	"github.com/piot/chunk-reader/internal/stats"
	"github.com/piot/chunk-reader/internal/stats/logger"
)

// Config holds configuration for the filesystem-backed client.
type Config struct {
	// BasePath is the directory resource ids are resolved against.
	BasePath string

	// Delay, when positive, selects the debug reader: each fetch of an
	// existing file waits this long and missing files report ErrNotFound.
	Delay time.Duration
}

// Module provides a filesystem-backed chunkreader client.
// Requires a Config and a *zap.Logger to be provided.
var Module = fx.Module("filechunkreader",
	fx.Provide(
		newStatsCollector,
		newClient,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("chunkreader.stats"))
}

// Params holds dependencies for creating the client.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

// Result holds the provided client.
type Result struct {
	fx.Out

	Client *chunkreader.Client
}

func newClient(p Params) (Result, error) {
	backend := chunkreader.WithFileReader(p.Config.BasePath)
	if p.Config.Delay > 0 {
		backend = chunkreader.WithDebugFileReader(p.Config.BasePath, p.Config.Delay)
	}

	client, err := chunkreader.New(
		backend,
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
