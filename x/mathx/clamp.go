package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// StepClamp adds delta to v and saturates the result to [lo, hi].
// The sum is taken in int so unsigned values do not wrap below zero.
func StepClamp[T constraints.Integer](v T, delta int, lo, hi T) T {
	return T(Clamp(int(v)+delta, int(lo), int(hi)))
}

// Between reports lo <= v && v <= hi (order-insensitive).
func Between[T constraints.Ordered](v, lo, hi T) bool {
	if hi < lo {
		lo, hi = hi, lo
	}
	return v >= lo && v <= hi
}
