// Package stats holds the numeric building blocks of the dashboard statistics:
// quartile fences, medians, behaviour profiles, peak detection and group comparison.
package stats

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// ErrInsufficientData is returned when a statistic would be computed on too few points.
var ErrInsufficientData = errors.New("stats: insufficient data")

// OutlierFenceFactor is the IQR multiplier of the Tukey fences.
const OutlierFenceFactor = 1.5

// SafeDiv returns a/b, or 0 when b is 0.
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// Sorted returns an ascending copy of values.
func Sorted(values []float64) []float64 {
	s := make([]float64, len(values))
	copy(s, values)
	sort.Float64s(s)
	return s
}

// Quantile computes the q-quantile of an ascending slice by linear interpolation between
// the closest ranks. An empty slice yields 0.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

func Median(values []float64) float64 {
	return Quantile(Sorted(values), 0.5)
}

func Sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}

func Mean(values []float64) float64 {
	return SafeDiv(Sum(values), float64(len(values)))
}

type Fence struct {
	Q1    float64 `json:"q1"`
	Q3    float64 `json:"q3"`
	IQR   float64 `json:"iqr"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Fences computes the Tukey fences of a series.
func Fences(values []float64) Fence {
	sorted := Sorted(values)
	f := Fence{
		Q1: Quantile(sorted, 0.25),
		Q3: Quantile(sorted, 0.75),
	}
	f.IQR = f.Q3 - f.Q1
	f.Lower = f.Q1 - OutlierFenceFactor*f.IQR
	f.Upper = f.Q3 + OutlierFenceFactor*f.IQR
	return f
}

// IsOutlier reports whether v falls outside [Lower, Upper].
func (f Fence) IsOutlier(v float64) bool {
	return v < f.Lower || v > f.Upper
}

// Outliers returns the fence of values and the indices of the values outside it.
func Outliers(values []float64) (Fence, []int) {
	f := Fences(values)
	idx := make([]int, 0)
	for i, v := range values {
		if f.IsOutlier(v) {
			idx = append(idx, i)
		}
	}
	return f, idx
}
