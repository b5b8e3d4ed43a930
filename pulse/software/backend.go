// Package software implements pulse.Backend on the cpu. It runs the entry
// points of a shader as Go functions and rasterizes into in-memory
// framebuffers, which makes it usable without any GPU or display.
package software

import (
	"context"
	"errors"
	"log/slog"

	"github.com/oliverbestmann/hellotri/pulse"
)

type Options struct {
	Programs Programs

	// Formats reported by the surface capabilities, the first one is preferred.
	// Defaults to rgba8unorm.
	Formats []pulse.TextureFormat

	// Defaults to premultiplied and opaque.
	AlphaModes []pulse.AlphaMode
}

type Backend struct {
	opts Options
}

var _ pulse.Backend = (*Backend)(nil)

func New(opts Options) *Backend {
	if len(opts.Formats) == 0 {
		opts.Formats = []pulse.TextureFormat{pulse.TextureFormatRGBA8Unorm}
	}

	if len(opts.AlphaModes) == 0 {
		opts.AlphaModes = []pulse.AlphaMode{pulse.AlphaModePremultiplied, pulse.AlphaModeOpaque}
	}

	return &Backend{opts: opts}
}

func (b *Backend) Name() string {
	return "software"
}

func (b *Backend) Available() bool {
	return true
}

func (b *Backend) CreateSurface(target pulse.SurfaceTarget) (pulse.Surface, error) {
	if target == nil {
		return nil, errors.New("no surface target")
	}

	return &Surface{backend: b, target: target}, nil
}

func (b *Backend) RequestAdapter(ctx context.Context, opts pulse.AdapterOptions) (pulse.Adapter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.CompatibleSurface != nil {
		if _, ok := opts.CompatibleSurface.(*Surface); !ok {
			// we can not present to surfaces of other backends
			return nil, nil
		}
	}

	return &Adapter{backend: b}, nil
}

func (b *Backend) Release() {
}

type Adapter struct {
	backend *Backend
}

func (a *Adapter) Info() pulse.AdapterInfo {
	return pulse.AdapterInfo{
		Name:        "Software Rasterizer",
		Driver:      "hellotri",
		BackendType: "cpu",
	}
}

func (a *Adapter) RequestDevice(ctx context.Context, desc pulse.DeviceDescriptor) (pulse.Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slog.Debug("Create software device", slog.String("label", desc.Label))

	return &Device{programs: a.backend.opts.Programs}, nil
}

func (a *Adapter) Release() {
}
