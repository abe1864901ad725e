package variants

// Cartesian returns every combination that picks one element from each
// non-empty axis, varying the last axis fastest. Empty axes are ignored, so
// no axes at all yields a single empty combination.
func Cartesian[T any](axes ...[]T) [][]T {
	result := [][]T{{}}
	for _, axis := range axes {
		if len(axis) == 0 {
			continue
		}
		next := make([][]T, 0, len(result)*len(axis))
		for _, prefix := range result {
			for _, item := range axis {
				combo := make([]T, len(prefix), len(prefix)+1)
				copy(combo, prefix)
				next = append(next, append(combo, item))
			}
		}
		result = next
	}
	return result
}

// CombinationCount is len(Cartesian(axes...)) without building it.
func CombinationCount(lengths ...int) int {
	n := 1
	for _, l := range lengths {
		if l > 0 {
			n *= l
		}
	}
	return n
}
