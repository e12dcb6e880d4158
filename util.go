package zedit

import "golang.org/x/exp/constraints"

// clamp returns v limited to [lo, hi]. If hi < lo, lo wins.
func clamp[T constraints.Integer](lo, v, hi T) T {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
