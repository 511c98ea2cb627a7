// Package main provides the chunkreader CLI tool for fetching resources
// through any of the chunkreader backends.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
