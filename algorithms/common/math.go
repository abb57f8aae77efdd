package common

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Numeric helpers shared by the spectral and PSD packages, using gonum where it fits

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// PrevPow2 returns the largest power of two not exceeding x.
// Values below 1 yield 0.
func PrevPow2(x float64) int {
	if x < 1 || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return int(math.Pow(2, math.Floor(math.Log2(x))))
}

// CentralMax returns the maximum of data after trimming frac of the samples
// (by index, not by value) from each end. If trimming leaves nothing, the
// maximum of the whole slice is returned.
func CentralMax(data []float64, frac float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}

	cut := int(frac * float64(len(data)))
	central := data[cut : len(data)-cut]
	if len(central) == 0 {
		central = data
	}

	return floats.Max(central)
}

// AnyInOpenRange reports whether any value lies strictly between lo and hi.
func AnyInOpenRange(data []float64, lo, hi float64) bool {
	for _, v := range data {
		if v > lo && v < hi {
			return true
		}
	}
	return false
}

// MinMax returns the smallest and largest values using gonum
func MinMax(data []float64) (float64, float64) {
	if len(data) == 0 {
		return math.NaN(), math.NaN()
	}
	return floats.Min(data), floats.Max(data)
}

// Reciprocal returns 1/x element-wise in a new slice.
func Reciprocal(data []float64) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = 1.0 / v
	}
	return out
}

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if n == 1 {
		return []float64{start}
	}
	return floats.Span(make([]float64, n), start, stop)
}
