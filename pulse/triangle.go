package pulse

import (
	_ "embed"

	"github.com/oliverbestmann/hellotri/glm"
)

//go:embed triangle.wgsl
var TriangleShaderSource string

const (
	TriangleVertexEntryPoint   = "vs_main"
	TriangleFragmentEntryPoint = "fs_main"

	// TriangleVertexCount is the number of vertices of the single draw call.
	TriangleVertexCount = 3
)

// TriangleVertices is the vertex table embedded in the shader,
// in normalized device coordinates.
var TriangleVertices = [TriangleVertexCount]glm.Vec2f{
	{0.0, 0.5},
	{-0.5, -0.5},
	{0.5, -0.5},
}

// TriangleColor is the color the fragment stage emits for every covered pixel.
var TriangleColor = ColorLinearRGBA(1, 0, 0, 1)

// BackgroundColor is the clear value of every frame.
var BackgroundColor = ColorLinearRGBA(0, 0, 0.5, 1)

// TriangleVertex computes the same clip space position as vs_main.
// Out of bounds indices are clamped, like the shader's array access.
func TriangleVertex(vertexIndex uint32) glm.Vec4f {
	return TriangleVertices[min(vertexIndex, TriangleVertexCount-1)].Extend(0, 1)
}

// TriangleFragment computes the same color as fs_main.
func TriangleFragment() glm.Vec4f {
	return TriangleColor.ToVec()
}
