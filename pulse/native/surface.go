package native

import (
	"errors"
	"fmt"

	"github.com/oliverbestmann/hellotri/pulse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

type Surface struct {
	surface *wgpu.Surface
	target  pulse.SurfaceTarget
}

func (s *Surface) Capabilities(adapter pulse.Adapter) pulse.SurfaceCapabilities {
	nativeAdapter, ok := adapter.(*Adapter)
	if !ok {
		return pulse.SurfaceCapabilities{}
	}

	caps := s.surface.GetCapabilities(nativeAdapter.adapter)

	var result pulse.SurfaceCapabilities

	for _, format := range caps.Formats {
		if f, ok := textureFormatFromWGPU[format]; ok {
			result.Formats = append(result.Formats, f)
		}
	}

	for _, mode := range caps.AlphaModes {
		if m, ok := alphaModeFromWGPU[mode]; ok {
			result.AlphaModes = append(result.AlphaModes, m)
		}
	}

	return result
}

func (s *Surface) Configure(device pulse.Device, config pulse.SurfaceConfiguration) error {
	nativeDevice, ok := device.(*Device)
	if !ok {
		return errors.New("device was not created by wgpu")
	}

	format, ok := textureFormatToWGPU[config.Format]
	if !ok {
		return fmt.Errorf("unsupported surface format %s", config.Format)
	}

	return catch(func() error {
		s.surface.Configure(nativeDevice.device, &wgpu.SurfaceConfiguration{
			Usage:       wgpu.TextureUsageRenderAttachment,
			Format:      format,
			PresentMode: wgpu.PresentModeFifo,
			AlphaMode:   alphaModeToWGPU[config.AlphaMode],
			Width:       config.Width,
			Height:      config.Height,

			// try to reduce input latency
			DesiredMaximumFrameLatency: 1,
		})

		return nil
	})
}

func (s *Surface) GetCurrentTexture() (pulse.SurfaceTexture, error) {
	var texture *wgpu.Texture

	err := catch(func() (err error) {
		texture, err = s.surface.GetCurrentTexture()
		return err
	})

	if err != nil {
		return nil, acquireError(err)
	}

	if texture == nil {
		return nil, pulse.ErrSurfaceLost
	}

	return &SurfaceTexture{texture: texture}, nil
}

// acquireError wraps an error of GetCurrentTexture. The bindings do not
// report the acquire status, so every failure is treated as an outdated
// surface that is reconfigured before the next frame.
func acquireError(err error) error {
	return fmt.Errorf("%w: %w", pulse.ErrSurfaceOutdated, err)
}

func (s *Surface) Present() error {
	return catch(func() error {
		s.surface.Present()
		return nil
	})
}

func (s *Surface) Release() {
	s.surface.Release()
}

type SurfaceTexture struct {
	texture *wgpu.Texture
}

func (t *SurfaceTexture) Width() uint32 {
	return t.texture.GetWidth()
}

func (t *SurfaceTexture) Height() uint32 {
	return t.texture.GetHeight()
}

func (t *SurfaceTexture) CreateView() (pulse.TextureView, error) {
	view, err := t.texture.CreateView(nil)
	if err != nil {
		return nil, err
	}

	return &TextureView{view: view}, nil
}

func (t *SurfaceTexture) Release() {
	t.texture.Release()
}

type TextureView struct {
	view *wgpu.TextureView
}

func (v *TextureView) Release() {
	v.view.Release()
}
