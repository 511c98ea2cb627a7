//go:build js && wasm

package httpreader

import "syscall/js"

// fetchAvailable reports whether the global scope is a browser window or
// a worker, the two scopes that expose fetch.
var fetchAvailable = func() bool {
	global := js.Global()
	return !global.Get("Window").IsUndefined() || !global.Get("WorkerGlobalScope").IsUndefined()
}
