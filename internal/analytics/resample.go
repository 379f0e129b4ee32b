package analytics

import (
	"math"
	"sort"
	"time"
)

// TimeValue is one observation at a point in time
type TimeValue struct {
	Time  time.Time
	Value float64
}

// QuarterEnd returns the last calendar day of the quarter containing t
func QuarterEnd(t time.Time) time.Time {
	endMonth := ((int(t.Month())-1)/3 + 1) * 3
	return time.Date(t.Year(), time.Month(endMonth)+1, 0, 0, 0, 0, 0, time.UTC)
}

// YearEnd returns December 31 of the year containing t
func YearEnd(t time.Time) time.Time {
	return time.Date(t.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
}

// ResampleQuarterlyMean buckets samples by calendar quarter and averages the
// non-NaN values. Every quarter from the first to the last sample is present;
// quarters without data are NaN.
func ResampleQuarterlyMean(samples []TimeValue) []TimeValue {
	return resample(samples, QuarterEnd, nextQuarterEnd, mean)
}

// ResampleYearlyMedian buckets samples by calendar year and takes the median
// of the non-NaN values. Years without data are NaN.
func ResampleYearlyMedian(samples []TimeValue) []TimeValue {
	return resample(samples, YearEnd, func(t time.Time) time.Time { return YearEnd(t.AddDate(1, 0, 0)) }, Median)
}

// Median of the values; NaN for an empty slice
func Median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func nextQuarterEnd(end time.Time) time.Time {
	return QuarterEnd(time.Date(end.Year(), end.Month()+1, 1, 0, 0, 0, 0, time.UTC))
}

func resample(samples []TimeValue, bucket, next func(time.Time) time.Time, reduce func([]float64) float64) []TimeValue {
	if len(samples) == 0 {
		return nil
	}

	groups := make(map[time.Time][]float64)
	first, last := bucket(samples[0].Time), bucket(samples[0].Time)
	for _, s := range samples {
		key := bucket(s.Time)
		if key.Before(first) {
			first = key
		}
		if key.After(last) {
			last = key
		}
		values := groups[key]
		if !math.IsNaN(s.Value) {
			values = append(values, s.Value)
		}
		groups[key] = values
	}

	var out []TimeValue
	for key := first; !key.After(last); key = next(key) {
		out = append(out, TimeValue{Time: key, Value: reduce(groups[key])})
	}
	return out
}
