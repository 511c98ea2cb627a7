package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	chunkreader "github.com/piot/chunk-reader"
	"github.com/piot/chunk-reader/internal/chunk"
	promstats "github.com/piot/chunk-reader/internal/stats/prometheus"
)

var benchCmd = &cobra.Command{
	Use:   "bench [ID...]",
	Short: "Fetch resources repeatedly and report latency",
	Long: `Fetch the given resources --count times each with --concurrency
fetches in flight and print a latency summary.

With --rate the fetches are paced to at most that many per second. With
--metrics-addr the Prometheus metrics are served on /metrics while the
benchmark runs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBench,
}

var (
	benchCount       int
	benchConcurrency int
	benchRate        float64
	metricsAddr      string
)

func init() {
	benchCmd.Flags().IntVarP(&benchCount, "count", "n", 10, "fetches per resource")
	benchCmd.Flags().IntVarP(&benchConcurrency, "concurrency", "c", 1, "fetches in flight")
	benchCmd.Flags().Float64Var(&benchRate, "rate", 0, "max fetches per second (0 = unlimited)")
	benchCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	rootCmd.AddCommand(benchCmd)
}

// benchResult holds the outcome of a benchmark run.
type benchResult struct {
	mu        sync.Mutex
	latencies []time.Duration
	bytes     int64
	errors    map[chunk.Kind]int
}

func (r *benchResult) record(elapsed time.Duration, n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.errors[chunk.KindOf(err)]++
		return
	}
	r.latencies = append(r.latencies, elapsed)
	r.bytes += int64(n)
}

func runBench(cmd *cobra.Command, args []string) error {
	if benchCount <= 0 || benchConcurrency <= 0 {
		return fmt.Errorf("--count and --concurrency must be positive")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	reader, err := newReader(ctx, log)
	if err != nil {
		return fmt.Errorf("creating reader: %w", err)
	}

	registry := prometheus.NewRegistry()
	client, err := chunkreader.New(
		chunkreader.WithReader(reader),
		chunkreader.WithStats(promstats.New(registry)),
		chunkreader.WithLogger(log.Named("chunkreader")),
	)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}
	defer client.Close()

	if metricsAddr != "" {
		srv := &http.Server{
			Addr:    metricsAddr,
			Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Warn("metrics server stopped", zap.Error(err))
			}
		}()
		defer srv.Close()
	}

	limit := rate.Inf
	if benchRate > 0 {
		limit = rate.Limit(benchRate)
	}
	limiter := rate.NewLimiter(limit, 1)

	result := &benchResult{errors: make(map[chunk.Kind]int)}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(benchConcurrency)

	start := time.Now()
	waitErr := schedule(gctx, limiter, args, func(id chunkreader.ResourceID) {
		g.Go(func() error {
			t0 := time.Now()
			data, err := client.FetchOctets(gctx, id)
			result.record(time.Since(t0), len(data), err)
			return nil
		})
	})
	// In-flight fetches finish before the client is closed.
	if err := g.Wait(); err != nil {
		return err
	}
	if waitErr != nil {
		return fmt.Errorf("pacing fetches: %w", waitErr)
	}

	printBench(cmd, result, time.Since(start))
	return nil
}

// schedule calls launch benchCount times per id, pacing each call through
// limiter. It stops at the first pacing failure and returns it.
func schedule(ctx context.Context, limiter *rate.Limiter, args []string, launch func(chunkreader.ResourceID)) error {
	for i := 0; i < benchCount; i++ {
		for _, arg := range args {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
			launch(chunkreader.NewResourceID(arg))
		}
	}
	return nil
}

func printBench(cmd *cobra.Command, r *benchResult, total time.Duration) {
	out := cmd.OutOrStdout()
	sort.Slice(r.latencies, func(i, j int) bool { return r.latencies[i] < r.latencies[j] })

	fmt.Fprintf(out, "Fetches:  %d ok, %d failed\n", len(r.latencies), r.failed())
	fmt.Fprintf(out, "Bytes:    %d\n", r.bytes)
	fmt.Fprintf(out, "Elapsed:  %s\n", total)
	if n := len(r.latencies); n > 0 {
		fmt.Fprintf(out, "Latency:  min %s, p50 %s, p99 %s, max %s\n",
			r.latencies[0], percentile(r.latencies, 0.50), percentile(r.latencies, 0.99), r.latencies[n-1])
	}
	for _, kind := range []chunk.Kind{chunk.KindNotFound, chunk.KindHTTP, chunk.KindIO, chunk.KindUnknown} {
		if n := r.errors[kind]; n > 0 {
			fmt.Fprintf(out, "Errors:   %s=%d\n", kind, n)
		}
	}
}

func (r *benchResult) failed() int {
	var n int
	for _, c := range r.errors {
		n += c
	}
	return n
}

// percentile returns the p-th percentile of sorted latencies.
func percentile(sorted []time.Duration, p float64) time.Duration {
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}
