//go:build js

package chunkreader

import "github.com/piot/chunk-reader/internal/reader/httpreader"

// PlatformReader returns the reader for the current build target.
// Browser builds fetch resource ids as URLs; path is ignored.
func PlatformReader(path string) Reader {
	return httpreader.New()
}
