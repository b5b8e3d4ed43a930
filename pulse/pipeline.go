package pulse

import (
	"fmt"
	"log/slog"
)

// BuildPipeline links the vertex and fragment stage of the triangle shader
// into a render pipeline writing to a target of the given format. The layout
// is inferred from the shader, which uses no bindings.
func BuildPipeline(device Device, module ShaderModule, format TextureFormat) (RenderPipeline, error) {
	if module == nil {
		return nil, fmt.Errorf("%w: no shader module", ErrPipelineUnbuildable)
	}

	pipeline, err := device.CreateRenderPipeline(RenderPipelineDescriptor{
		Label:              "Our First Pipeline",
		Module:             module,
		VertexEntryPoint:   TriangleVertexEntryPoint,
		FragmentEntryPoint: TriangleFragmentEntryPoint,
		TargetFormat:       format,
	})

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPipelineUnbuildable, err)
	}

	return pipeline, nil
}

// TrianglePipeline is the configuration of the triangle pipeline. The output
// format is the only part that can vary, it follows the surface format.
type TrianglePipeline struct {
	Format TextureFormat
}

func (conf TrianglePipeline) Specialize(device Device) (RenderPipeline, error) {
	slog.Info(
		"Create RenderPipeline for triangle",
		slog.String("format", conf.Format.String()),
	)

	shader, err := CompileShader(device, TriangleShader())
	if err != nil {
		return nil, err
	}

	// the pipeline keeps its own reference to the module
	defer shader.Release()

	return BuildPipeline(device, shader, conf.Format)
}
