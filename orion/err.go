package orion

import (
	"errors"

	"github.com/oliverbestmann/hellotri/pulse"
)

// alertMessage returns the text shown to the user when startup fails.
func alertMessage(err error) string {
	switch {
	case errors.Is(err, pulse.ErrCapabilityMissing):
		return "WebGPU is not supported in this browser."
	case errors.Is(err, pulse.ErrNoAdapterFound):
		return "No appropriate GPUAdapter found."
	case errors.Is(err, pulse.ErrDeviceUnavailable):
		return "The GPU device could not be acquired."
	case errors.Is(err, pulse.ErrSurfaceUnavailable):
		return "The WebGPU context could not be created."
	case errors.Is(err, pulse.ErrShaderCompile):
		return "The triangle shader failed to compile."
	case errors.Is(err, pulse.ErrPipelineUnbuildable):
		return "The render pipeline could not be created."
	default:
		return "Failed to initialize WebGPU: " + err.Error()
	}
}
