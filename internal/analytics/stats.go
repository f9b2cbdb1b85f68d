// Package analytics implements the descriptive statistics behind the
// dashboard's analytics views: distribution summaries, correlations,
// declaration trends, and climate scenario projections. All functions are
// pure; callers supply the county rows.
package analytics

import (
	"math"
	"sort"
)

func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the sample standard deviation (n-1 denominator).
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}

func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Quantile returns the q-th quantile (q in [0,1]) using linear
// interpolation between closest ranks.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	if q < 0 {
		q = 0
	}
	if q > 1 {
		q = 1
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	index := q * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Percentile is Quantile over a 0-100 scale.
func Percentile(values []float64, p float64) float64 {
	return Quantile(values, p/100.0)
}

// PercentileRank returns the share of values strictly below v, as a
// percentage of the series.
func PercentileRank(v float64, values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	below := 0
	for _, x := range values {
		if x < v {
			below++
		}
	}
	return float64(below) / float64(len(values)) * 100
}

// Summary mirrors a describe() row: count, mean, std, min, quartiles, max.
type Summary struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	P25   float64 `json:"p25"`
	P50   float64 `json:"p50"`
	P75   float64 `json:"p75"`
	Max   float64 `json:"max"`
}

func Describe(values []float64) Summary {
	return Summary{
		Count: len(values),
		Mean:  Mean(values),
		Std:   StdDev(values),
		Min:   Min(values),
		P25:   Quantile(values, 0.25),
		P50:   Quantile(values, 0.5),
		P75:   Quantile(values, 0.75),
		Max:   Max(values),
	}
}

// Bin is one histogram bucket over [Lower, Upper).
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Histogram buckets values into n equal-width bins spanning [min, max].
// The final bin is closed on both ends so the maximum lands in it.
func Histogram(values []float64, n int) []Bin {
	if len(values) == 0 || n < 1 {
		return nil
	}
	lo, hi := Min(values), Max(values)
	width := (hi - lo) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Lower = lo + float64(i)*width
		bins[i].Upper = lo + float64(i+1)*width
	}
	if width == 0 {
		bins[0].Count = len(values)
		return bins
	}
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= n {
			idx = n - 1
		}
		bins[idx].Count++
	}
	return bins
}
