package utils

import "cmp"

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// ArgMax returns the index of the first maximum element, or -1 for an
// empty slice.
func ArgMax[T cmp.Ordered](slice []T) int {
	if len(slice) == 0 {
		return -1
	}
	best := 0
	for i, v := range slice[1:] {
		if v > slice[best] {
			best = i + 1
		}
	}
	return best
}
