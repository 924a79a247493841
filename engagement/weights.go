package engagement

import (
	"math"
	"math/rand"
)

// Weights converts usage counts into sampling weights that bias toward
// less-used items. Each weight is base / (1 + count/maxCount), where
// maxCount is the maximum across all known labels (floored at 1), so
// weights stay in [base/2, base] and every item remains selectable.
// Degenerate input degrades to a uniform list rather than failing.
func Weights(items []string, counts map[string]int, base float64) []float64 {
	if base <= 0 {
		base = 1.0
	}
	maxCount := 1
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	weights := make([]float64, len(items))
	for i, item := range items {
		w := base / (1 + float64(counts[item])/float64(maxCount))
		if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
			return uniform(len(items), base)
		}
		weights[i] = w
	}
	return weights
}

func uniform(n int, base float64) []float64 {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = base
	}
	return weights
}

// Pick draws one item using the given weights. A mismatched or
// non-positive weight list falls back to a uniform draw.
func Pick(rng *rand.Rand, items []string, weights []float64) string {
	if len(items) == 0 {
		return ""
	}
	total := 0.0
	if len(weights) == len(items) {
		for _, w := range weights {
			total += w
		}
	}
	if total <= 0 {
		return items[rng.Intn(len(items))]
	}
	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r < 0 {
			return items[i]
		}
	}
	return items[len(items)-1]
}
