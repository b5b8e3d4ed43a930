// Package pulsetest provides a pulse.Backend wrapper that records every call
// into the backend and injects failures, for tests of code built on pulse.
package pulsetest

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/oliverbestmann/hellotri/pulse"
)

var ErrInjected = errors.New("injected failure")

// Recorder wraps a backend. Objects it hands out record their calls into
// Events, in call order.
type Recorder struct {
	inner pulse.Backend

	Events []string

	// Hook is called after each event was recorded.
	Hook func(event string)

	// Failure injection
	Unavailable       bool
	NoAdapter         bool
	FailDevice        bool
	FailShaderModule  bool
	FailSurface       bool
	FailTextureFrames int
	FailTextureWith   error

	// Number of upcoming calls that fail. Each failing call
	// decrements its counter.
	FailConfigure  int
	FailCreateView int
	FailEncoder    int
	FailRenderPass int
	FailEndPass    int
	FailFinish     int
	FailPresent    int

	// FailWith is returned by the counted failures above,
	// ErrInjected if nil.
	FailWith error
}

var _ pulse.Backend = (*Recorder)(nil)

func Wrap(backend pulse.Backend) *Recorder {
	return &Recorder{inner: backend}
}

func (r *Recorder) record(format string, args ...any) {
	event := fmt.Sprintf(format, args...)
	r.Events = append(r.Events, event)

	if r.Hook != nil {
		r.Hook(event)
	}
}

func (r *Recorder) injected() error {
	if r.FailWith != nil {
		return fmt.Errorf("%w: %w", ErrInjected, r.FailWith)
	}

	return ErrInjected
}

// take consumes one injected failure from counter.
func take(counter *int) bool {
	if *counter <= 0 {
		return false
	}

	*counter--
	return true
}

// Count returns the number of recorded events starting with prefix.
func (r *Recorder) Count(prefix string) int {
	var count int
	for _, event := range r.Events {
		if strings.HasPrefix(event, prefix) {
			count++
		}
	}

	return count
}

// Index returns the position of the first event starting with prefix, or -1.
func (r *Recorder) Index(prefix string) int {
	return slices.IndexFunc(r.Events, func(event string) bool {
		return strings.HasPrefix(event, prefix)
	})
}

// Reset forgets all recorded events.
func (r *Recorder) Reset() {
	r.Events = nil
}

func (r *Recorder) Name() string {
	return "recorder(" + r.inner.Name() + ")"
}

func (r *Recorder) Available() bool {
	r.record("available")
	return !r.Unavailable && r.inner.Available()
}

func (r *Recorder) CreateSurface(target pulse.SurfaceTarget) (pulse.Surface, error) {
	r.record("create-surface")

	if r.FailSurface {
		return nil, ErrInjected
	}

	surface, err := r.inner.CreateSurface(target)
	if err != nil || surface == nil {
		return nil, err
	}

	return &Surface{rec: r, inner: surface}, nil
}

func (r *Recorder) RequestAdapter(ctx context.Context, opts pulse.AdapterOptions) (pulse.Adapter, error) {
	r.record("request-adapter")

	if r.NoAdapter {
		return nil, nil
	}

	if surface, ok := opts.CompatibleSurface.(*Surface); ok {
		opts.CompatibleSurface = surface.inner
	}

	adapter, err := r.inner.RequestAdapter(ctx, opts)
	if err != nil || adapter == nil {
		return nil, err
	}

	return &Adapter{rec: r, inner: adapter}, nil
}

func (r *Recorder) Release() {
	r.inner.Release()
}

type Adapter struct {
	rec   *Recorder
	inner pulse.Adapter
}

func (a *Adapter) Info() pulse.AdapterInfo {
	return a.inner.Info()
}

func (a *Adapter) RequestDevice(ctx context.Context, desc pulse.DeviceDescriptor) (pulse.Device, error) {
	a.rec.record("request-device")

	if a.rec.FailDevice {
		return nil, ErrInjected
	}

	device, err := a.inner.RequestDevice(ctx, desc)
	if err != nil || device == nil {
		return nil, err
	}

	return &Device{rec: a.rec, inner: device}, nil
}

func (a *Adapter) Release() {
	a.inner.Release()
}

type Device struct {
	rec   *Recorder
	inner pulse.Device
}

func (d *Device) CreateShaderModule(desc pulse.ShaderModuleDescriptor) (pulse.ShaderModule, error) {
	d.rec.record("create-shader-module")

	if d.rec.FailShaderModule {
		return nil, ErrInjected
	}

	return d.inner.CreateShaderModule(desc)
}

func (d *Device) CreateRenderPipeline(desc pulse.RenderPipelineDescriptor) (pulse.RenderPipeline, error) {
	d.rec.record("create-render-pipeline %s %s %s", desc.VertexEntryPoint, desc.FragmentEntryPoint, desc.TargetFormat)
	return d.inner.CreateRenderPipeline(desc)
}

func (d *Device) CreateCommandEncoder(label string) (pulse.CommandEncoder, error) {
	d.rec.record("create-command-encoder")

	if take(&d.rec.FailEncoder) {
		return nil, d.rec.injected()
	}

	enc, err := d.inner.CreateCommandEncoder(label)
	if err != nil {
		return nil, err
	}

	return &CommandEncoder{rec: d.rec, inner: enc}, nil
}

func (d *Device) Submit(buffers ...pulse.CommandBuffer) {
	d.rec.record("submit %d", len(buffers))
	d.inner.Submit(buffers...)
}

func (d *Device) Release() {
	d.inner.Release()
}

type Surface struct {
	rec   *Recorder
	inner pulse.Surface
}

// Inner returns the wrapped surface.
func (s *Surface) Inner() pulse.Surface {
	return s.inner
}

func (s *Surface) Capabilities(adapter pulse.Adapter) pulse.SurfaceCapabilities {
	s.rec.record("capabilities")

	if a, ok := adapter.(*Adapter); ok {
		adapter = a.inner
	}

	return s.inner.Capabilities(adapter)
}

func (s *Surface) Configure(device pulse.Device, config pulse.SurfaceConfiguration) error {
	s.rec.record("configure %dx%d %s %s", config.Width, config.Height, config.Format, config.AlphaMode)

	if take(&s.rec.FailConfigure) {
		return s.rec.injected()
	}

	if d, ok := device.(*Device); ok {
		device = d.inner
	}

	return s.inner.Configure(device, config)
}

func (s *Surface) GetCurrentTexture() (pulse.SurfaceTexture, error) {
	s.rec.record("get-current-texture")

	if s.rec.FailTextureFrames > 0 {
		s.rec.FailTextureFrames--

		err := s.rec.FailTextureWith
		if err == nil {
			err = pulse.ErrSurfaceTimeout
		}

		return nil, fmt.Errorf("%w: %w", ErrInjected, err)
	}

	texture, err := s.inner.GetCurrentTexture()
	if err != nil {
		return nil, err
	}

	return &SurfaceTexture{rec: s.rec, inner: texture}, nil
}

func (s *Surface) Present() error {
	s.rec.record("present")

	if take(&s.rec.FailPresent) {
		return s.rec.injected()
	}

	return s.inner.Present()
}

func (s *Surface) Release() {
	s.inner.Release()
}

type SurfaceTexture struct {
	rec   *Recorder
	inner pulse.SurfaceTexture
}

func (t *SurfaceTexture) Width() uint32 {
	return t.inner.Width()
}

func (t *SurfaceTexture) Height() uint32 {
	return t.inner.Height()
}

func (t *SurfaceTexture) CreateView() (pulse.TextureView, error) {
	t.rec.record("create-view %dx%d", t.inner.Width(), t.inner.Height())

	if take(&t.rec.FailCreateView) {
		return nil, t.rec.injected()
	}

	return t.inner.CreateView()
}

func (t *SurfaceTexture) Release() {
	t.rec.record("release-texture")
	t.inner.Release()
}

type CommandEncoder struct {
	rec   *Recorder
	inner pulse.CommandEncoder
}

func (e *CommandEncoder) BeginRenderPass(desc pulse.RenderPassDescriptor) (pulse.RenderPass, error) {
	r, g, b, a := desc.ClearValue.Components()
	e.rec.record("begin-render-pass clear(%g,%g,%g,%g)", r, g, b, a)

	if take(&e.rec.FailRenderPass) {
		return nil, e.rec.injected()
	}

	pass, err := e.inner.BeginRenderPass(desc)
	if err != nil {
		return nil, err
	}

	return &RenderPass{rec: e.rec, inner: pass}, nil
}

func (e *CommandEncoder) Finish(label string) (pulse.CommandBuffer, error) {
	e.rec.record("finish")

	if take(&e.rec.FailFinish) {
		return nil, e.rec.injected()
	}

	return e.inner.Finish(label)
}

func (e *CommandEncoder) Release() {
	e.inner.Release()
}

type RenderPass struct {
	rec   *Recorder
	inner pulse.RenderPass
}

func (p *RenderPass) SetPipeline(pipeline pulse.RenderPipeline) {
	p.rec.record("set-pipeline")
	p.inner.SetPipeline(pipeline)
}

func (p *RenderPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.rec.record("draw %d %d", vertexCount, instanceCount)
	p.inner.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

func (p *RenderPass) End() error {
	p.rec.record("end-render-pass")

	if take(&p.rec.FailEndPass) {
		return p.rec.injected()
	}

	return p.inner.End()
}

func (p *RenderPass) Release() {
	p.inner.Release()
}
