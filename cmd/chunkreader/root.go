package main

import (
	"time"

	"github.com/spf13/cobra"
)

var (
	// Global flags.
	backendName string
	basePath    string
	delay       time.Duration
	bucket      string
	codecName   string
	region      string
	endpoint    string
	accessKey   string
	secretKey   string
	insecure    bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "chunkreader",
	Short: "Fetch named binary resources from files, HTTP or object storage",
	Long: `chunkreader fetches resources ("chunks") by id through one of the
chunkreader backends and reports their size and timing.

Backends:
  file    read <base>/<id> from the local filesystem
  debug   like file, but sleep --delay before each read
  http    GET <id>, resolved against --base when it is relative
  gcs     read <base>/<id> from the GCS bucket --bucket
  s3      read <base>/<id> from the S3 bucket --bucket
  minio   read <base>/<id> from the bucket --bucket at --endpoint

Examples:
  # Copy a file-backed resource to stdout
  chunkreader fetch ladder_top.png --base assets/ > ladder_top.png

  # Simulate 100ms latency
  chunkreader fetch ladder_top.png --backend debug --delay 100ms --base assets/ --timing

  # Benchmark an HTTP endpoint
  chunkreader bench ladder_top.png --backend http --base https://example.com/assets/ -n 100 -c 8`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&backendName, "backend", "b", "file", "backend: file, debug, http, gcs, s3, minio")
	flags.StringVar(&basePath, "base", "", "base directory (file, debug), base URL (http) or key prefix (gcs, s3, minio)")
	flags.DurationVar(&delay, "delay", 100*time.Millisecond, "delay before each read (debug backend)")
	flags.StringVar(&bucket, "bucket", "", "bucket name (gcs, s3, minio)")
	flags.StringVar(&codecName, "codec", "", "object codec: identity, gzip, zstd (gcs, s3, minio)")
	flags.StringVar(&region, "region", "", "AWS region (s3)")
	flags.StringVar(&endpoint, "endpoint", "", "custom endpoint (s3, minio)")
	flags.StringVar(&accessKey, "access-key", "", "access key (minio)")
	flags.StringVar(&secretKey, "secret-key", "", "secret key (minio)")
	flags.BoolVar(&insecure, "insecure", false, "use plain HTTP to reach the endpoint (minio)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
