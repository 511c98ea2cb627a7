//go:build !js

package chunkreader

import "github.com/piot/chunk-reader/internal/reader/filereader"

// PlatformReader returns the reader for the current build target.
// Native builds read files below path.
func PlatformReader(path string) Reader {
	return filereader.New(path)
}
