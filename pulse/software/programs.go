package software

import (
	"github.com/oliverbestmann/hellotri/glm"
	"github.com/oliverbestmann/hellotri/pulse"
)

// VertexFunc computes the clip space position of a vertex from its index.
type VertexFunc func(vertexIndex uint32) glm.Vec4f

// FragmentFunc computes the color of a covered pixel.
type FragmentFunc func() glm.Vec4f

// Programs maps shader entry points to their implementation on the cpu.
// A pipeline can only be created for entry points that have one.
type Programs struct {
	Vertex   map[string]VertexFunc
	Fragment map[string]FragmentFunc
}

// TrianglePrograms implements the entry points of the triangle shader.
func TrianglePrograms() Programs {
	return Programs{
		Vertex: map[string]VertexFunc{
			pulse.TriangleVertexEntryPoint: pulse.TriangleVertex,
		},
		Fragment: map[string]FragmentFunc{
			pulse.TriangleFragmentEntryPoint: pulse.TriangleFragment,
		},
	}
}
