package native

import (
	"errors"
	"fmt"

	"github.com/oliverbestmann/hellotri/pulse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

type Device struct {
	device *wgpu.Device
	queue  *wgpu.Queue
}

func (d *Device) CreateShaderModule(desc pulse.ShaderModuleDescriptor) (pulse.ShaderModule, error) {
	module, err := d.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:      desc.Label,
		WGSLSource: &wgpu.ShaderSourceWGSL{Code: desc.Code},
	})

	if err != nil {
		return nil, err
	}

	return &ShaderModule{module: module}, nil
}

func (d *Device) CreateRenderPipeline(desc pulse.RenderPipelineDescriptor) (pulse.RenderPipeline, error) {
	module, ok := desc.Module.(*ShaderModule)
	if !ok || module == nil {
		return nil, fmt.Errorf("pipeline %q: shader module was not created by wgpu", desc.Label)
	}

	format, ok := textureFormatToWGPU[desc.TargetFormat]
	if !ok {
		return nil, fmt.Errorf("pipeline %q: unsupported target format %s", desc.Label, desc.TargetFormat)
	}

	wgpuDesc := &wgpu.RenderPipelineDescriptor{
		Label: desc.Label,
		Vertex: wgpu.VertexState{
			Module:     module.module,
			EntryPoint: desc.VertexEntryPoint,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module.module,
			EntryPoint: desc.FragmentEntryPoint,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					Blend:     &wgpu.BlendStateReplace,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	}

	pipeline, err := d.device.CreateRenderPipeline(wgpuDesc)
	if err != nil {
		return nil, err
	}

	return &RenderPipeline{pipeline: pipeline}, nil
}

func (d *Device) CreateCommandEncoder(label string) (pulse.CommandEncoder, error) {
	enc, err := d.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, err
	}

	return &CommandEncoder{encoder: enc}, nil
}

func (d *Device) Submit(buffers ...pulse.CommandBuffer) {
	wgpuBuffers := make([]*wgpu.CommandBuffer, 0, len(buffers))

	for _, buffer := range buffers {
		if buf, ok := buffer.(*CommandBuffer); ok {
			wgpuBuffers = append(wgpuBuffers, buf.buffer)
		}
	}

	d.queue.Submit(wgpuBuffers...)
}

func (d *Device) Release() {
	if d.queue != nil {
		d.queue.Release()
		d.queue = nil
	}

	if d.device != nil {
		d.device.Release()
		d.device = nil
	}
}

type ShaderModule struct {
	module *wgpu.ShaderModule
}

func (m *ShaderModule) Release() {
	m.module.Release()
}

type RenderPipeline struct {
	pipeline *wgpu.RenderPipeline
}

func (p *RenderPipeline) Release() {
	p.pipeline.Release()
}

type CommandEncoder struct {
	encoder *wgpu.CommandEncoder
}

func (e *CommandEncoder) BeginRenderPass(desc pulse.RenderPassDescriptor) (pulse.RenderPass, error) {
	view, ok := desc.View.(*TextureView)
	if !ok || view == nil {
		return nil, errors.New("color attachment was not created by wgpu")
	}

	r, g, b, a := desc.ClearValue.Components()

	// validation errors of the pass are reported by End
	pass := e.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: desc.Label,
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    view.view,
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: wgpu.StoreOpStore,
				ClearValue: wgpu.Color{
					R: float64(r),
					G: float64(g),
					B: float64(b),
					A: float64(a),
				},
			},
		},
	})

	return &RenderPass{pass: pass}, nil
}

func (e *CommandEncoder) Finish(label string) (pulse.CommandBuffer, error) {
	buf, err := e.encoder.Finish(&wgpu.CommandBufferDescriptor{Label: label})
	if err != nil {
		return nil, err
	}

	return &CommandBuffer{buffer: buf}, nil
}

func (e *CommandEncoder) Release() {
	e.encoder.Release()
}

type RenderPass struct {
	pass *wgpu.RenderPassEncoder
}

func (p *RenderPass) SetPipeline(pipeline pulse.RenderPipeline) {
	if pl, ok := pipeline.(*RenderPipeline); ok {
		p.pass.SetPipeline(pl.pipeline)
	}
}

func (p *RenderPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.pass.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

func (p *RenderPass) End() error {
	return p.pass.End()
}

func (p *RenderPass) Release() {
	p.pass.Release()
}

type CommandBuffer struct {
	buffer *wgpu.CommandBuffer
}

func (b *CommandBuffer) Release() {
	b.buffer.Release()
}
