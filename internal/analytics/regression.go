package analytics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// NotAvailable is the placeholder for an undefined statistic
const NotAvailable = "N/A"

// TrendResult is an ordinary least-squares fit of y on x.
// Values is aligned with the input; it is all NaN when the fit is undefined.
type TrendResult struct {
	Values    []float64
	Slope     float64
	Intercept float64
	Points    int
	Defined   bool
}

// LinearTrend fits y = Intercept + Slope*x over the paired non-NaN observations.
// Fewer than two pairs yield an undefined result. When x has no variance the
// fit is the flat line through mean(y).
func LinearTrend(x, y []float64) TrendResult {
	xs, ys := pairs(x, y)
	values := make([]float64, len(x))

	if len(xs) < 2 {
		for i := range values {
			values[i] = math.NaN()
		}
		return TrendResult{Values: values, Slope: math.NaN(), Intercept: math.NaN(), Points: len(xs)}
	}

	var intercept, slope float64
	if stat.Variance(xs, nil) == 0 {
		intercept, slope = stat.Mean(ys, nil), 0
	} else {
		intercept, slope = stat.LinearRegression(xs, ys, nil, false)
	}

	for i := range values {
		if i >= len(y) || math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			values[i] = math.NaN()
			continue
		}
		values[i] = intercept + slope*x[i]
	}

	return TrendResult{
		Values:    values,
		Slope:     slope,
		Intercept: intercept,
		Points:    len(xs),
		Defined:   true,
	}
}

// PearsonCorrelation is the correlation coefficient of the paired non-NaN
// observations. It is NaN for fewer than two pairs or zero variance in either series.
func PearsonCorrelation(x, y []float64) float64 {
	xs, ys := pairs(x, y)
	if len(xs) < 2 {
		return math.NaN()
	}
	if stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}

// FormatCorrelation renders r with two decimals, or NotAvailable when undefined
func FormatCorrelation(r float64) string {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f", r)
}

// pairs keeps the positions where both x and y are defined
func pairs(x, y []float64) ([]float64, []float64) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}
