package pulse

import (
	"context"
	"time"
)

// Backend is the explicit entry point into a GPU API. It replaces the
// ambient global a browser offers (navigator.gpu) so that more than one
// surface or a test double can be used side by side.
type Backend interface {
	// Name identifies the backend in log output.
	Name() string

	// Available reports whether the GPU API can be used at all.
	Available() bool

	// CreateSurface binds a drawable host area to this backend.
	CreateSurface(target SurfaceTarget) (Surface, error)

	// RequestAdapter asks the host for a physical GPU. A nil adapter
	// without an error means that no compatible adapter exists.
	RequestAdapter(ctx context.Context, opts AdapterOptions) (Adapter, error)

	Release()
}

// SurfaceTarget is the drawable area of the host a surface renders into.
// Backends may require additional methods, e.g. a native window handle.
type SurfaceTarget interface {
	// Size returns the current size of the drawable area in physical pixels.
	Size() (width, height uint32)
}

type PowerPreference uint32

const (
	PowerPreferenceUndefined PowerPreference = iota
	PowerPreferenceLowPower
	PowerPreferenceHighPerformance
)

func (p PowerPreference) String() string {
	switch p {
	case PowerPreferenceLowPower:
		return "low-power"
	case PowerPreferenceHighPerformance:
		return "high-performance"
	default:
		return "undefined"
	}
}

type AdapterOptions struct {
	PowerPreference      PowerPreference
	ForceFallbackAdapter bool

	// Surface the adapter must be able to present to, may be nil.
	CompatibleSurface Surface

	// Timeout for each of the adapter and device requests.
	// Defaults to DefaultRequestTimeout.
	Timeout time.Duration
}

type AdapterInfo struct {
	Name        string
	Driver      string
	BackendType string
}

type Adapter interface {
	Info() AdapterInfo
	RequestDevice(ctx context.Context, desc DeviceDescriptor) (Device, error)
	Release()
}

type DeviceDescriptor struct {
	Label string
}

// Device is the logical connection to an Adapter. It creates all GPU
// resources and owns the queue command buffers are submitted to.
type Device interface {
	CreateShaderModule(desc ShaderModuleDescriptor) (ShaderModule, error)
	CreateRenderPipeline(desc RenderPipelineDescriptor) (RenderPipeline, error)
	CreateCommandEncoder(label string) (CommandEncoder, error)

	// Submit enqueues the command buffers. Submissions are executed
	// in the order they were made.
	Submit(buffers ...CommandBuffer)

	Release()
}

type SurfaceCapabilities struct {
	// Formats supported by the surface, the preferred format comes first.
	Formats    []TextureFormat
	AlphaModes []AlphaMode
}

// SurfaceConfiguration describes how a surface presents. Presentation always
// waits for the vertical blank.
type SurfaceConfiguration struct {
	Format    TextureFormat
	AlphaMode AlphaMode
	Width     uint32
	Height    uint32
}

// Surface is the presentable target bound to a window or canvas.
type Surface interface {
	Capabilities(adapter Adapter) SurfaceCapabilities

	// Configure binds the device as producer of frames for this surface.
	Configure(device Device, config SurfaceConfiguration) error

	// GetCurrentTexture acquires the texture of the next frame.
	GetCurrentTexture() (SurfaceTexture, error)

	// Present shows the most recently acquired texture.
	Present() error

	Release()
}

type SurfaceTexture interface {
	Width() uint32
	Height() uint32
	CreateView() (TextureView, error)
	Release()
}

type TextureView interface {
	Release()
}

type ShaderModuleDescriptor struct {
	Label string

	// WGSL source code
	Code string
}

type ShaderModule interface {
	Release()
}

// RenderPipelineDescriptor describes a pipeline with one vertex and one fragment
// stage writing a single color target. Primitives are always triangle lists and
// the pipeline layout is inferred from the resource bindings of the shader.
type RenderPipelineDescriptor struct {
	Label string

	Module             ShaderModule
	VertexEntryPoint   string
	FragmentEntryPoint string

	TargetFormat TextureFormat
}

type RenderPipeline interface {
	Release()
}

// RenderPassDescriptor describes a render pass with a single color attachment.
// The attachment is cleared to ClearValue when the pass begins and stored
// when it ends.
type RenderPassDescriptor struct {
	Label string

	View       TextureView
	ClearValue Color
}

type CommandEncoder interface {
	BeginRenderPass(desc RenderPassDescriptor) (RenderPass, error)
	Finish(label string) (CommandBuffer, error)
	Release()
}

type RenderPass interface {
	SetPipeline(pipeline RenderPipeline)
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
	End() error
	Release()
}

type CommandBuffer interface {
	Release()
}
