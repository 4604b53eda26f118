package common

import (
	"iter"
	"math"

	"gonum.org/v1/gonum/stat/combin"
)

const maxExactBinomial = 1e15

// Combinations yields every k-element subset of items in lexicographic order
// of the item indexes. Each yielded slice is freshly allocated and may be kept
// by the caller. Nothing is yielded when k <= 0 or k > len(items).
func Combinations[T any](items []T, k int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		if k <= 0 || k > len(items) {
			return
		}

		current := make([]T, 0, k)
		var backtrack func(start int) bool
		backtrack = func(start int) bool {
			if len(current) == k {
				subset := make([]T, k)
				copy(subset, current)
				return yield(subset)
			}
			// Stop early once there are not enough items left to fill the
			// subset.
			for i := start; i <= len(items)-(k-len(current)); i++ {
				current = append(current, items[i])
				if !backtrack(i + 1) {
					return false
				}
				current = current[:len(current)-1]
			}
			return true
		}
		backtrack(0)
	}
}

// CombinationCount returns C(n, k), or 0 when k is out of [1, n]. Counts too
// large to compute exactly saturate at math.MaxInt.
func CombinationCount(n, k int) int {
	if k <= 0 || k > n {
		return 0
	}
	if combin.GeneralizedBinomial(float64(n), float64(k)) > maxExactBinomial {
		return math.MaxInt
	}
	return combin.Binomial(n, k)
}
