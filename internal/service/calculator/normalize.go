package calculator

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// NormalizeShares maps weights onto a probability vector over keys.
// Negative (and NaN) weights count as zero. When nothing positive remains the
// result is the uniform distribution.
func NormalizeShares(weights map[string]float64, keys []string) map[string]float64 {
	vals := make([]float64, len(keys))
	for i, k := range keys {
		vals[i] = weights[k]
	}
	vals = NormalizeWeights(vals)

	out := make(map[string]float64, len(keys))
	for i, k := range keys {
		out[k] = vals[i]
	}
	return out
}

// NormalizeWeights is NormalizeShares for an ordered weight vector.
func NormalizeWeights(weights []float64) []float64 {
	out := make([]float64, len(weights))
	if len(weights) == 0 {
		return out
	}
	for i, w := range weights {
		if w > 0 && !math.IsInf(w, 1) {
			out[i] = w
		}
	}

	total := floats.Sum(out)
	if total <= 0 {
		for i := range out {
			out[i] = 1.0 / float64(len(out))
		}
		return out
	}
	for i := range out {
		out[i] /= total
	}
	return out
}

// sharesVector lays a share map out in runway order.
func sharesVector(shares map[string]float64, keys []string) []float64 {
	out := make([]float64, len(keys))
	for i, k := range keys {
		out[i] = shares[k]
	}
	return out
}
