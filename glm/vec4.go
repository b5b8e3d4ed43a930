package glm

type Vec4[T numeric] [4]T

// PerspectiveDivide maps a clip space position to normalized device coordinates.
func (lhs Vec4[T]) PerspectiveDivide() Vec4[T] {
	w := lhs[3]
	return Vec4[T]{lhs[0] / w, lhs[1] / w, lhs[2] / w, 1}
}

func (lhs Vec4[T]) XYZW() (x, y, z, w T) {
	x = lhs[0]
	y = lhs[1]
	z = lhs[2]
	w = lhs[3]
	return
}
