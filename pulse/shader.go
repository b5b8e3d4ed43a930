package pulse

import (
	"log/slog"
	"slices"

	"github.com/gogpu/naga"
)

type ShaderDescriptor struct {
	Label  string
	Source string

	// Entry points the source must define
	EntryPoints []string
}

// ShaderEntryPoints parses and lowers the WGSL source and returns the names
// of all entry points it defines.
func ShaderEntryPoints(label, source string) ([]string, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, &ShaderCompileError{Label: label, Stage: "parse", Err: err}
	}

	module, err := naga.Lower(ast)
	if err != nil {
		return nil, &ShaderCompileError{Label: label, Stage: "lower", Err: err}
	}

	var names []string
	for _, entryPoint := range module.EntryPoints {
		names = append(names, entryPoint.Name)
	}

	return names, nil
}

// ValidateShader checks that the source is valid WGSL defining all
// entry points of the descriptor.
func ValidateShader(desc ShaderDescriptor) error {
	names, err := ShaderEntryPoints(desc.Label, desc.Source)
	if err != nil {
		return err
	}

	var missing []string
	for _, required := range desc.EntryPoints {
		if !slices.Contains(names, required) {
			missing = append(missing, required)
		}
	}

	if len(missing) > 0 {
		return &ShaderCompileError{
			Label:              desc.Label,
			Stage:              "entry points",
			MissingEntryPoints: missing,
		}
	}

	return nil
}

// CompileShader validates the source and creates a shader module on the device.
// There is no way to recover from a failure here, the source is static.
func CompileShader(device Device, desc ShaderDescriptor) (ShaderModule, error) {
	if err := ValidateShader(desc); err != nil {
		return nil, err
	}

	module, err := device.CreateShaderModule(ShaderModuleDescriptor{
		Label: desc.Label,
		Code:  desc.Source,
	})

	if err != nil {
		return nil, &ShaderCompileError{Label: desc.Label, Stage: "create module", Err: err}
	}

	slog.Info("Shader module created",
		slog.String("label", desc.Label),
		slog.Any("entryPoints", desc.EntryPoints),
	)

	return module, nil
}

// TriangleShader describes the embedded triangle shader.
func TriangleShader() ShaderDescriptor {
	return ShaderDescriptor{
		Label:  "Hardcoded Triangle Shaders",
		Source: TriangleShaderSource,
		EntryPoints: []string{
			TriangleVertexEntryPoint,
			TriangleFragmentEntryPoint,
		},
	}
}
