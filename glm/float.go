package glm

import "golang.org/x/exp/constraints"

type float interface {
	constraints.Float
}

type numeric interface {
	constraints.Float | constraints.Integer
}

// Clamp limits value to the closed interval [lo, hi].
func Clamp[T numeric](value, lo, hi T) T {
	return max(lo, min(hi, value))
}
