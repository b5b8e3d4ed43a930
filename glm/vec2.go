package glm

type Vec2[T numeric] [2]T

func (lhs Vec2[T]) Sub(rhs Vec2[T]) Vec2[T] {
	return Vec2[T]{
		lhs[0] - rhs[0],
		lhs[1] - rhs[1],
	}
}

// Cross returns the z component of the cross product of the two vectors
// extended into 3d space. It is positive if rhs lies counter clockwise of lhs.
func (lhs Vec2[T]) Cross(rhs Vec2[T]) T {
	return lhs[0]*rhs[1] - lhs[1]*rhs[0]
}

// Extend converts a 2d position into a homogeneous clip space position.
func (lhs Vec2[T]) Extend(z, w T) Vec4[T] {
	return Vec4[T]{lhs[0], lhs[1], z, w}
}

func (lhs Vec2[T]) XY() (x, y T) {
	x = lhs[0]
	y = lhs[1]
	return
}

// Edge evaluates the edge function of the directed edge a -> b at point p.
// The sign tells on which side of the edge p is located, zero means on the edge.
func Edge[T float](a, b, p Vec2[T]) T {
	return b.Sub(a).Cross(p.Sub(a))
}
