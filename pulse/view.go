package pulse

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/hellotri/glm"
)

// View configures the surface of a Context and keeps it in sync with the
// size of the drawable area. A View must only be used from the render thread,
// resize notifications are delivered there too.
type View struct {
	*Context

	surfaceConfig SurfaceConfiguration

	// true once the surface was configured with the current surfaceConfig
	configured bool

	// set if the backend reported the surface as outdated or lost,
	// or if the last configure failed
	outdated bool

	// true between BeginFrame and EndFrame
	inFrame bool

	// size received by Resize while a frame was in flight
	pending    glm.Vec2u
	hasPending bool

	reconfigureCount int
}

// NewView queries the surface capabilities once and selects the preferred
// format and premultiplied alpha compositing.
func NewView(ctx *Context) (*View, error) {
	if ctx == nil || ctx.Surface == nil {
		return nil, ErrSurfaceUnavailable
	}

	caps := ctx.Surface.Capabilities(ctx.Adapter)
	slog.Info("Available surface formats", slog.Any("formats", caps.Formats))

	format := TextureFormatBGRA8Unorm
	if len(caps.Formats) > 0 {
		format = caps.Formats[0]
	}

	slog.Info("Preferred surface format", slog.String("format", format.String()))

	alphaMode := AlphaModePremultiplied
	if !supportsAlphaMode(caps.AlphaModes, alphaMode) && len(caps.AlphaModes) > 0 {
		alphaMode = caps.AlphaModes[0]

		slog.Warn("Surface does not support premultiplied alpha",
			slog.String("alphaMode", alphaMode.String()),
		)
	}

	st := &View{
		Context: ctx,
		surfaceConfig: SurfaceConfiguration{
			Format:    format,
			AlphaMode: alphaMode,
		},
	}

	return st, nil
}

func supportsAlphaMode(modes []AlphaMode, mode AlphaMode) bool {
	for _, candidate := range modes {
		if candidate == mode {
			return true
		}
	}

	return false
}

// Format returns the presentation format the surface is configured with.
func (vs *View) Format() TextureFormat {
	return vs.surfaceConfig.Format
}

func (vs *View) AlphaMode() AlphaMode {
	return vs.surfaceConfig.AlphaMode
}

// Size returns the size of the surface in physical pixels.
func (vs *View) Size() (width, height uint32) {
	return vs.surfaceConfig.Width, vs.surfaceConfig.Height
}

// Configured reports whether the surface can currently hand out textures.
func (vs *View) Configured() bool {
	return vs.configured && !vs.outdated
}

// ReconfigureCount returns how often the surface was configured.
func (vs *View) ReconfigureCount() int {
	return vs.reconfigureCount
}

// Configure binds the device to the surface with the given size. A surface
// without area can not be configured, frames are skipped until the next
// resize gives it a size.
func (vs *View) Configure(width, height uint32) error {
	if vs.Surface == nil {
		return ErrSurfaceUnavailable
	}

	vs.surfaceConfig.Width = width
	vs.surfaceConfig.Height = height
	vs.configured = false
	vs.outdated = false

	if width == 0 || height == 0 {
		slog.Debug("Skip configure of surface without area",
			slog.Int("width", int(width)),
			slog.Int("height", int(height)),
		)

		return nil
	}

	if err := vs.Surface.Configure(vs.Device, vs.surfaceConfig); err != nil {
		// retried before the next frame acquires its texture
		vs.outdated = true
		return fmt.Errorf("configure surface: %w", err)
	}

	vs.configured = true
	vs.reconfigureCount += 1

	slog.Debug("Surface configured",
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
		slog.String("format", vs.surfaceConfig.Format.String()),
		slog.String("alphaMode", vs.surfaceConfig.AlphaMode.String()),
	)

	return nil
}

// Resize updates the surface to the new size of the drawable area. If a frame
// is in flight, the new size is applied before the next frame acquires its
// texture. Resizing to the current size does nothing.
func (vs *View) Resize(width, height uint32) error {
	if vs.Surface == nil {
		slog.Error("WebGPU context is nil during resize")
		return ErrSurfaceUnavailable
	}

	if vs.inFrame {
		vs.pending = glm.Vec2u{width, height}
		vs.hasPending = true
		return nil
	}

	if vs.Configured() && width == vs.surfaceConfig.Width && height == vs.surfaceConfig.Height {
		return nil
	}

	slog.Debug("Resize surface",
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
	)

	return vs.Configure(width, height)
}

// BeginFrame applies any pending reconfiguration and acquires the texture
// of the next frame. Every successful call must be followed by EndFrame.
func (vs *View) BeginFrame() (SurfaceTexture, error) {
	if vs.inFrame {
		return nil, fmt.Errorf("%w: previous frame not ended", ErrFrameAcquisition)
	}

	if vs.hasPending {
		vs.hasPending = false

		width, height := vs.pending.XY()
		if err := vs.Resize(width, height); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFrameAcquisition, err)
		}
	}

	if vs.outdated {
		width, height := vs.Size()
		if err := vs.Configure(width, height); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFrameAcquisition, err)
		}
	}

	if !vs.configured {
		return nil, fmt.Errorf("%w: %w", ErrFrameAcquisition, ErrSurfaceNotConfigured)
	}

	texture, err := vs.Surface.GetCurrentTexture()
	if err != nil {
		if errors.Is(err, ErrSurfaceOutdated) || errors.Is(err, ErrSurfaceLost) {
			// reconfigure before the next attempt
			vs.outdated = true
		}

		return nil, fmt.Errorf("%w: %w", ErrFrameAcquisition, err)
	}

	vs.inFrame = true

	return texture, nil
}

// EndFrame marks the end of the frame started by BeginFrame.
func (vs *View) EndFrame() {
	vs.inFrame = false
}
