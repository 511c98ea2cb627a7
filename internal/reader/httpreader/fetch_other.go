//go:build !js

package httpreader

// fetchAvailable reports whether the host can issue requests.
// Native builds always can.
var fetchAvailable = func() bool {
	return true
}
