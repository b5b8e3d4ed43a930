package pulse

import (
	"errors"
	"fmt"
	"strings"
)

// Startup errors. All of these are fatal.
var (
	ErrCapabilityMissing   = errors.New("webgpu is not supported")
	ErrNoAdapterFound      = errors.New("no appropriate gpu adapter found")
	ErrDeviceUnavailable   = errors.New("gpu device could not be acquired")
	ErrShaderCompile       = errors.New("shader compilation failed")
	ErrPipelineUnbuildable = errors.New("render pipeline could not be built")
)

// ErrSurfaceUnavailable is returned when a surface operation is invoked
// without a bound surface. Fatal during startup, logged and skipped on resize.
var ErrSurfaceUnavailable = errors.New("surface unavailable")

// ErrFrameAcquisition is returned when no texture can be acquired for the
// next frame. The frame is skipped and acquisition retried on the next tick.
var ErrFrameAcquisition = errors.New("frame acquisition failed")

// Errors reported by Surface.GetCurrentTexture. Backends wrap these so that
// the View can decide whether the surface must be reconfigured.
var (
	ErrSurfaceNotConfigured = errors.New("surface not configured")
	ErrSurfaceOutdated      = errors.New("surface outdated")
	ErrSurfaceLost          = errors.New("surface lost")
	ErrSurfaceTimeout       = errors.New("surface timeout")
)

// ShaderCompileError describes why a shader could not be turned into a
// shader module.
type ShaderCompileError struct {
	Label string

	// Stage of the compilation that failed, e.g. "parse"
	Stage string

	// Entry points the source is missing, if any
	MissingEntryPoints []string

	Err error
}

func (e *ShaderCompileError) Error() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "compile shader %q: %s", e.Label, e.Stage)

	if len(e.MissingEntryPoints) > 0 {
		fmt.Fprintf(&sb, ": missing entry points %s", strings.Join(e.MissingEntryPoints, ", "))
	}

	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}

	return sb.String()
}

func (e *ShaderCompileError) Unwrap() error {
	return e.Err
}

func (e *ShaderCompileError) Is(target error) bool {
	return target == ErrShaderCompile
}
