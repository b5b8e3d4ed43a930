//go:build !js

package native

// available is always true on native platforms, wgpu-native is linked
// into the binary. Missing drivers show up as a missing adapter.
func available() bool {
	return true
}
