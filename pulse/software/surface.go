package software

import (
	"errors"
	"fmt"
	"image"
	"slices"

	"github.com/oliverbestmann/hellotri/pulse"
)

// Surface presents into an in-memory framebuffer. Like a real surface it
// reports itself as outdated once the size of its target no longer matches
// the configured size.
type Surface struct {
	backend *Backend
	target  pulse.SurfaceTarget

	config     pulse.SurfaceConfiguration
	configured bool

	current *SurfaceTexture
	front   *Framebuffer

	presented  int
	configures int
}

func (s *Surface) Capabilities(adapter pulse.Adapter) pulse.SurfaceCapabilities {
	return pulse.SurfaceCapabilities{
		Formats:    slices.Clone(s.backend.opts.Formats),
		AlphaModes: slices.Clone(s.backend.opts.AlphaModes),
	}
}

func (s *Surface) Configure(device pulse.Device, config pulse.SurfaceConfiguration) error {
	if _, ok := device.(*Device); !ok {
		return errors.New("configure surface: device of another backend")
	}

	if config.Width == 0 || config.Height == 0 {
		return fmt.Errorf("configure surface: invalid size %dx%d", config.Width, config.Height)
	}

	if !slices.Contains(s.backend.opts.Formats, config.Format) {
		return fmt.Errorf("configure surface: unsupported format %s", config.Format)
	}

	if !slices.Contains(s.backend.opts.AlphaModes, config.AlphaMode) {
		return fmt.Errorf("configure surface: unsupported alpha mode %s", config.AlphaMode)
	}

	s.config = config
	s.configured = true
	s.configures += 1

	return nil
}

func (s *Surface) GetCurrentTexture() (pulse.SurfaceTexture, error) {
	if !s.configured {
		return nil, pulse.ErrSurfaceNotConfigured
	}

	if s.current != nil {
		return nil, errors.New("surface texture already acquired")
	}

	width, height := s.target.Size()
	if width != s.config.Width || height != s.config.Height {
		return nil, fmt.Errorf("%w: target is %dx%d, configured %dx%d",
			pulse.ErrSurfaceOutdated, width, height, s.config.Width, s.config.Height)
	}

	s.current = &SurfaceTexture{
		surface:     s,
		format:      s.config.Format,
		framebuffer: NewFramebuffer(int(width), int(height)),
	}

	return s.current, nil
}

func (s *Surface) Present() error {
	if s.current == nil {
		return errors.New("present: no texture acquired")
	}

	s.front = s.current.framebuffer
	s.current = nil
	s.presented += 1

	return nil
}

func (s *Surface) Release() {
	s.configured = false
	s.current = nil
}

// Frame returns the most recently presented framebuffer, or nil.
func (s *Surface) Frame() *Framebuffer {
	return s.front
}

// Presented returns the number of presented frames.
func (s *Surface) Presented() int {
	return s.presented
}

// Configures returns how often the surface was configured.
func (s *Surface) Configures() int {
	return s.configures
}

func (s *Surface) Config() pulse.SurfaceConfiguration {
	return s.config
}

type SurfaceTexture struct {
	surface     *Surface
	format      pulse.TextureFormat
	framebuffer *Framebuffer
	released    bool
}

func (t *SurfaceTexture) Width() uint32 {
	return uint32(t.framebuffer.Width)
}

func (t *SurfaceTexture) Height() uint32 {
	return uint32(t.framebuffer.Height)
}

func (t *SurfaceTexture) CreateView() (pulse.TextureView, error) {
	if t.released {
		return nil, errReleased
	}

	return &TextureView{texture: t}, nil
}

// Release drops a texture that was not presented.
func (t *SurfaceTexture) Release() {
	t.released = true

	if t.surface.current == t {
		t.surface.current = nil
	}
}

type TextureView struct {
	texture *SurfaceTexture
}

func (v *TextureView) Release() {
}

// Snapshot returns a copy of the most recently presented frame, or nil if
// no frame was presented yet.
func (s *Surface) Snapshot() image.Image {
	if s.front == nil {
		return nil
	}

	return s.front.Image()
}
