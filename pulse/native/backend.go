// Package native implements pulse.Backend on top of wgpu-native, or on top
// of the browsers webgpu implementation when compiled to wasm.
package native

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/hellotri/pulse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// Target is a surface target that can describe itself to wgpu,
// e.g. a glfw window or a canvas element.
type Target interface {
	pulse.SurfaceTarget
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

type Backend struct {
	instance *wgpu.Instance
}

var _ pulse.Backend = (*Backend)(nil)

func New() *Backend {
	return &Backend{}
}

func (b *Backend) Name() string {
	return "native"
}

func (b *Backend) Available() bool {
	if !available() {
		return false
	}

	if b.instance == nil {
		err := catch(func() error {
			b.instance = wgpu.CreateInstance(nil)
			return nil
		})

		if err != nil || b.instance == nil {
			slog.Warn("Failed to create webgpu instance", slog.Any("err", err))
			return false
		}
	}

	return true
}

func (b *Backend) CreateSurface(target pulse.SurfaceTarget) (pulse.Surface, error) {
	nativeTarget, ok := target.(Target)
	if !ok {
		return nil, fmt.Errorf("target %T can not be presented to by wgpu", target)
	}

	if !b.Available() {
		return nil, pulse.ErrCapabilityMissing
	}

	var surface *wgpu.Surface

	err := catch(func() error {
		surface = b.instance.CreateSurface(nativeTarget.SurfaceDescriptor())
		return nil
	})

	if err != nil {
		return nil, err
	}

	if surface == nil {
		return nil, errors.New("wgpu returned no surface")
	}

	return &Surface{surface: surface, target: target}, nil
}

func (b *Backend) RequestAdapter(ctx context.Context, opts pulse.AdapterOptions) (pulse.Adapter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !b.Available() {
		return nil, pulse.ErrCapabilityMissing
	}

	wgpuOpts := &wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: opts.ForceFallbackAdapter,
		PowerPreference:      powerPreferenceOf(opts.PowerPreference),
	}

	if opts.CompatibleSurface != nil {
		surface, ok := opts.CompatibleSurface.(*Surface)
		if !ok {
			return nil, fmt.Errorf("surface %T was not created by wgpu", opts.CompatibleSurface)
		}

		wgpuOpts.CompatibleSurface = surface.surface
	}

	var adapter *wgpu.Adapter

	err := catch(func() (err error) {
		adapter, err = b.instance.RequestAdapter(wgpuOpts)
		return err
	})

	if err != nil {
		return nil, err
	}

	if adapter == nil {
		return nil, nil
	}

	return &Adapter{adapter: adapter}, nil
}

func (b *Backend) Release() {
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

type Adapter struct {
	adapter *wgpu.Adapter
}

func (a *Adapter) Info() pulse.AdapterInfo {
	return adapterInfoOf(a.adapter.GetInfo())
}

func adapterInfoOf(info wgpu.AdapterInfo) pulse.AdapterInfo {
	return pulse.AdapterInfo{
		Name:        info.Device,
		Driver:      info.Description,
		BackendType: info.BackendType.String(),
	}
}

func (a *Adapter) RequestDevice(ctx context.Context, desc pulse.DeviceDescriptor) (pulse.Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var device *wgpu.Device

	err := catch(func() (err error) {
		device, err = a.adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: desc.Label})
		return err
	})

	if err != nil {
		return nil, err
	}

	if device == nil {
		return nil, nil
	}

	return &Device{device: device, queue: device.GetQueue()}, nil
}

func (a *Adapter) Release() {
	a.adapter.Release()
}

// catch runs fn and turns a panic raised by the bindings into an error.
func catch(fn func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		if rErr, ok := r.(error); ok {
			err = rErr
		} else {
			err = fmt.Errorf("wgpu: %v", r)
		}
	}()

	return fn()
}
