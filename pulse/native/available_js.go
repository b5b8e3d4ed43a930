//go:build js

package native

import "syscall/js"

// available checks for navigator.gpu, browsers without webgpu support
// do not define it.
func available() bool {
	navigator := js.Global().Get("navigator")
	if navigator.IsUndefined() || navigator.IsNull() {
		return false
	}

	return navigator.Get("gpu").Truthy()
}
