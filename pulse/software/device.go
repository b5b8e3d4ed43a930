package software

import (
	"errors"
	"fmt"
	"slices"

	"github.com/oliverbestmann/hellotri/pulse"
)

type Device struct {
	programs  Programs
	submitted int
}

var errReleased = errors.New("use of released object")

// Submitted returns the number of command buffers executed so far.
func (d *Device) Submitted() int {
	return d.submitted
}

func (d *Device) CreateShaderModule(desc pulse.ShaderModuleDescriptor) (pulse.ShaderModule, error) {
	names, err := pulse.ShaderEntryPoints(desc.Label, desc.Code)
	if err != nil {
		return nil, err
	}

	return &ShaderModule{label: desc.Label, entryPoints: names}, nil
}

func (d *Device) CreateRenderPipeline(desc pulse.RenderPipelineDescriptor) (pulse.RenderPipeline, error) {
	module, ok := desc.Module.(*ShaderModule)
	if !ok || module == nil {
		return nil, fmt.Errorf("pipeline %q: shader module of another backend", desc.Label)
	}

	for _, entryPoint := range []string{desc.VertexEntryPoint, desc.FragmentEntryPoint} {
		if !slices.Contains(module.entryPoints, entryPoint) {
			return nil, fmt.Errorf("pipeline %q: shader %q has no entry point %q", desc.Label, module.label, entryPoint)
		}
	}

	vertex, ok := d.programs.Vertex[desc.VertexEntryPoint]
	if !ok {
		return nil, fmt.Errorf("pipeline %q: no program for vertex entry point %q", desc.Label, desc.VertexEntryPoint)
	}

	fragment, ok := d.programs.Fragment[desc.FragmentEntryPoint]
	if !ok {
		return nil, fmt.Errorf("pipeline %q: no program for fragment entry point %q", desc.Label, desc.FragmentEntryPoint)
	}

	pipeline := &RenderPipeline{
		label:    desc.Label,
		format:   desc.TargetFormat,
		vertex:   vertex,
		fragment: fragment,
	}

	return pipeline, nil
}

func (d *Device) CreateCommandEncoder(label string) (pulse.CommandEncoder, error) {
	return &CommandEncoder{label: label}, nil
}

// Submit executes the command buffers in order.
func (d *Device) Submit(buffers ...pulse.CommandBuffer) {
	for _, buffer := range buffers {
		buf, ok := buffer.(*CommandBuffer)
		if !ok || buf.released {
			continue
		}

		for _, pass := range buf.passes {
			pass.execute()
		}

		d.submitted += 1
	}
}

func (d *Device) Release() {
}

type ShaderModule struct {
	label       string
	entryPoints []string
}

func (m *ShaderModule) Release() {
}

type RenderPipeline struct {
	label    string
	format   pulse.TextureFormat
	vertex   VertexFunc
	fragment FragmentFunc
}

func (p *RenderPipeline) Release() {
}

type CommandEncoder struct {
	label  string
	passes []*RenderPass
	open   *RenderPass
}

func (e *CommandEncoder) BeginRenderPass(desc pulse.RenderPassDescriptor) (pulse.RenderPass, error) {
	if e.open != nil {
		return nil, fmt.Errorf("encoder %q: render pass %q is still open", e.label, e.open.desc.Label)
	}

	view, ok := desc.View.(*TextureView)
	if !ok || view == nil {
		return nil, fmt.Errorf("encoder %q: color attachment of another backend", e.label)
	}

	if view.texture.released {
		return nil, fmt.Errorf("encoder %q: color attachment: %w", e.label, errReleased)
	}

	e.open = &RenderPass{encoder: e, desc: desc, target: view.texture}

	return e.open, nil
}

func (e *CommandEncoder) Finish(label string) (pulse.CommandBuffer, error) {
	if e.open != nil {
		return nil, fmt.Errorf("encoder %q: render pass %q was not ended", e.label, e.open.desc.Label)
	}

	buf := &CommandBuffer{label: label, passes: e.passes}
	e.passes = nil

	return buf, nil
}

func (e *CommandEncoder) Release() {
}

type draw struct {
	pipeline      *RenderPipeline
	vertexCount   uint32
	instanceCount uint32
	firstVertex   uint32
}

type RenderPass struct {
	encoder  *CommandEncoder
	desc     pulse.RenderPassDescriptor
	target   *SurfaceTexture
	pipeline *RenderPipeline
	draws    []draw
	err      error
	ended    bool
}

func (p *RenderPass) SetPipeline(pipeline pulse.RenderPipeline) {
	pl, ok := pipeline.(*RenderPipeline)
	if !ok || pl == nil {
		p.err = errors.New("pipeline of another backend")
		return
	}

	if pl.format != p.target.format {
		p.err = fmt.Errorf("pipeline %q writes %s, target is %s", pl.label, pl.format, p.target.format)
		return
	}

	p.pipeline = pl
}

func (p *RenderPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	if p.pipeline == nil {
		if p.err == nil {
			p.err = errors.New("draw without pipeline")
		}

		return
	}

	p.draws = append(p.draws, draw{
		pipeline:      p.pipeline,
		vertexCount:   vertexCount,
		instanceCount: instanceCount,
		firstVertex:   firstVertex,
	})
}

func (p *RenderPass) End() error {
	if p.ended {
		return errors.New("render pass already ended")
	}

	p.ended = true
	p.encoder.open = nil

	if p.err != nil {
		return fmt.Errorf("render pass %q: %w", p.desc.Label, p.err)
	}

	p.encoder.passes = append(p.encoder.passes, p)

	return nil
}

func (p *RenderPass) Release() {
}

func (p *RenderPass) execute() {
	fb := p.target.framebuffer

	fb.Clear(p.desc.ClearValue.ToVec())

	for _, d := range p.draws {
		for range d.instanceCount {
			// triangle list: every three vertices form one triangle
			for idx := uint32(0); idx+3 <= d.vertexCount; idx += 3 {
				v := d.firstVertex + idx

				fb.DrawTriangle(
					d.pipeline.vertex(v),
					d.pipeline.vertex(v+1),
					d.pipeline.vertex(v+2),
					d.pipeline.fragment,
				)
			}
		}
	}
}

type CommandBuffer struct {
	label    string
	passes   []*RenderPass
	released bool
}

func (b *CommandBuffer) Release() {
	b.released = true
}
