package core

import (
	"math"
	"sort"
)

// Quantile returns the q-th quantile of values using linear interpolation
// between order statistics (the R-7 rule). The same function backs both the
// benchmark resolver and the aggregator median, so the two can never drift
// apart. Returns 0 for an empty slice; q is assumed to be in (0, 1).
func Quantile(values []float64, q float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return values[0]
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Median is the 0.5 quantile.
func Median(values []float64) float64 {
	return Quantile(values, 0.5)
}
