package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Combinations returns every k-element subset of items, preserving input order
// inside each subset and ordering subsets lexicographically by index.
func Combinations[T any](items []T, k int) [][]T {
	if k <= 0 || k > len(items) {
		return nil
	}
	var out [][]T
	indices := make([]int, k)
	for i := range indices {
		indices[i] = i
	}
	for {
		subset := make([]T, k)
		for i, idx := range indices {
			subset[i] = items[idx]
		}
		out = append(out, subset)

		// Advance the rightmost index that still has room
		i := k - 1
		for i >= 0 && indices[i] == len(items)-k+i {
			i--
		}
		if i < 0 {
			return out
		}
		indices[i]++
		for j := i + 1; j < k; j++ {
			indices[j] = indices[j-1] + 1
		}
	}
}
