package analytics

import (
	"math"
)

const (
	// PriceChangeWindow is the trailing window for smoothed price change
	PriceChangeWindow = 5

	// PriceChangeMinPeriods is the number of observed values a window needs
	PriceChangeMinPeriods = 2
)

// PercentChange returns the fractional change between consecutive values.
// Gaps are padded with the last observed value first, so a missing period
// changes by 0 and the next one is measured against the last observation.
// Leading gaps and changes from a zero base are NaN.
func PercentChange(series []float64) []float64 {
	out := make([]float64, len(series))
	last := math.NaN()
	for i, cur := range series {
		if math.IsNaN(cur) {
			cur = last
		}
		if math.IsNaN(last) || math.IsNaN(cur) || last == 0 {
			out[i] = math.NaN()
		} else {
			out[i] = (cur - last) / last
		}
		last = cur
	}
	return out
}

// Scale multiplies every value by factor
func Scale(series []float64, factor float64) []float64 {
	out := make([]float64, len(series))
	for i, v := range series {
		out[i] = v * factor
	}
	return out
}

// RollingMean is a trailing moving average over the last window values.
// Positions with fewer than minPeriods non-NaN values in the window are NaN.
func RollingMean(series []float64, window, minPeriods int) []float64 {
	out := make([]float64, len(series))
	if window < 1 {
		window = 1
	}
	if minPeriods < 1 {
		minPeriods = 1
	}
	for i := range series {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		sum, n := 0.0, 0
		for _, v := range series[start : i+1] {
			if !math.IsNaN(v) {
				sum += v
				n++
			}
		}
		if n < minPeriods {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(n)
	}
	return out
}

// FillNaN replaces NaN values with v
func FillNaN(series []float64, v float64) []float64 {
	out := make([]float64, len(series))
	for i, x := range series {
		if math.IsNaN(x) {
			out[i] = v
			continue
		}
		out[i] = x
	}
	return out
}

// RollingPriceChange is the smoothed period-over-period price change in percent.
// Insufficient history resolves to 0, so the result never contains NaN.
func RollingPriceChange(closes []float64, window, minPeriods int) []float64 {
	pct := Scale(PercentChange(closes), 100)
	return FillNaN(RollingMean(pct, window, minPeriods), 0)
}

// RollingPriceChangeFilled is RollingPriceChange with the first undefined
// change filled to 0 before smoothing, so the first period counts toward the window.
func RollingPriceChangeFilled(closes []float64, window, minPeriods int) []float64 {
	pct := Scale(FillNaN(PercentChange(closes), 0), 100)
	return FillNaN(RollingMean(pct, window, minPeriods), 0)
}
