// Package numeric holds the handful of generic numeric helpers shared by
// internal/editor and internal/workspace, so the row/column/share clamping
// arithmetic each does isn't duplicated per-package.
package numeric

import "golang.org/x/exp/constraints"

// Clamp restricts v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Max returns the larger of a and b.
func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Min returns the smaller of a and b.
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}
