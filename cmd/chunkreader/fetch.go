package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	chunkreader "github.com/piot/chunk-reader"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [ID]",
	Short: "Fetch one resource and write its bytes",
	Long: `Fetch the resource named by ID and write its bytes to stdout, or to
the file given with --output.

Exit status is non-zero when the resource is missing or cannot be read.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

var (
	outputFile string
	showTiming bool
)

func init() {
	fetchCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write bytes to this file instead of stdout")
	fetchCmd.Flags().BoolVar(&showTiming, "timing", false, "print size and timing to stderr")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
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

	client, err := chunkreader.New(
		chunkreader.WithReader(reader),
		chunkreader.WithLogger(log.Named("chunkreader")),
	)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}
	defer client.Close()

	start := time.Now()
	data, err := client.FetchOctets(ctx, chunkreader.NewResourceID(args[0]))
	elapsed := time.Since(start)
	if err != nil {
		if errors.Is(err, chunkreader.ErrNotFound) {
			return fmt.Errorf("resource %q not found", args[0])
		}
		return fmt.Errorf("fetch failed: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, data, 0644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	} else if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if showTiming {
		fmt.Fprintf(cmd.ErrOrStderr(), "Size:  %d bytes\n", len(data))
		fmt.Fprintf(cmd.ErrOrStderr(), "Time:  %s\n", elapsed)
	}

	return nil
}
