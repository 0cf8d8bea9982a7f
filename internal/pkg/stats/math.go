package stats

import (
	"math"
	"sort"
)

func mean(xs []int) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0
	for _, x := range xs {
		sum += x
	}
	return float64(sum) / float64(len(xs))
}

// sampleStderr is the standard error of the mean: sample standard deviation
// (N−1 denominator) divided by √N. Returns 0 for N ≤ 1.
//
// Stderr, not raw std-dev, is deliberate: with per-team samples of 5-30
// matches it expresses how precisely the typical minute is known, which is
// what the alert narrative needs.
func sampleStderr(xs []int) float64 {
	n := len(xs)
	if n <= 1 {
		return 0
	}
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		d := float64(x) - m
		ss += d * d
	}
	sd := math.Sqrt(ss / float64(n-1))
	return sd / math.Sqrt(float64(n))
}

// floorQuartiles returns the elements at index N/4 and 3N/4 of the sorted
// input. This is a simplified floor-indexed order statistic, not an
// interpolated quartile; preserved as-is for compatibility with historical
// aggregate output. Returns (0, 0) for an empty input.
func floorQuartiles(xs []int) (low, high int) {
	n := len(xs)
	if n == 0 {
		return 0, 0
	}
	sorted := make([]int, n)
	copy(sorted, xs)
	sort.Ints(sorted)

	hi := 3 * n / 4
	if hi >= n {
		hi = n - 1
	}
	return sorted[n/4], sorted[hi]
}
