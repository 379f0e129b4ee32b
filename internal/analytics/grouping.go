package analytics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/Xin-10/Netflix-Data-Visualization/pkg/contracts/domain"
)

// YearSample is one observation tagged with its year
type YearSample struct {
	Year  int
	Value float64
}

// MeanByYear averages the non-NaN samples of each year, years ascending.
// A year whose samples are all NaN yields NaN.
func MeanByYear(samples []YearSample) []domain.YearValue {
	byYear := make(map[int][]float64)
	for _, s := range samples {
		values := byYear[s.Year]
		if !math.IsNaN(s.Value) {
			values = append(values, s.Value)
		}
		byYear[s.Year] = values
	}

	years := sortedKeys(byYear)
	out := make([]domain.YearValue, 0, len(years))
	for _, year := range years {
		out = append(out, domain.YearValue{Year: year, Value: domain.Float(mean(byYear[year]))})
	}
	return out
}

// CountByYear counts samples per year, years ascending
func CountByYear(years []int) []YearCount {
	counts := make(map[int]int)
	for _, y := range years {
		counts[y]++
	}
	keys := sortedKeys(counts)
	out := make([]YearCount, 0, len(keys))
	for _, y := range keys {
		out = append(out, YearCount{Year: y, Count: counts[y]})
	}
	return out
}

// YearCount is a row count for one year
type YearCount struct {
	Year  int
	Count int
}

// YearlyMeanScore is the mean IMDb score per release year. Undated records are skipped.
func YearlyMeanScore(records []domain.ContentRecord) []domain.YearValue {
	samples := make([]YearSample, 0, len(records))
	for _, r := range records {
		if r.HasDate {
			samples = append(samples, YearSample{Year: r.Year, Value: r.IMDbScore})
		}
	}
	return MeanByYear(samples)
}

// YearlyHighQualityRatio is the share of high-quality titles per release year
func YearlyHighQualityRatio(records []domain.ContentRecord) []domain.YearValue {
	samples := make([]YearSample, 0, len(records))
	for _, r := range records {
		if r.HasDate {
			samples = append(samples, YearSample{Year: r.Year, Value: boolToFloat(IsHighQuality(r.IMDbScore))})
		}
	}
	return MeanByYear(samples)
}

type yearType struct {
	year int
	kind domain.ContentType
}

// YearlyTypeCounts counts titles per release year and content type
func YearlyTypeCounts(records []domain.ContentRecord) []domain.YearTypeCount {
	counts := make(map[yearType]int)
	for _, r := range records {
		if r.HasDate {
			counts[yearType{r.Year, r.Type}]++
		}
	}

	out := make([]domain.YearTypeCount, 0, len(counts))
	for key, n := range counts {
		out = append(out, domain.YearTypeCount{Year: key.year, Type: key.kind, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// YearlyTypeMeanScore averages IMDb scores per release year and content type
func YearlyTypeMeanScore(records []domain.ContentRecord) []domain.YearTypeValue {
	scores := make(map[yearType][]float64)
	for _, r := range records {
		if !r.HasDate {
			continue
		}
		key := yearType{r.Year, r.Type}
		values := scores[key]
		if r.HasScore() {
			values = append(values, r.IMDbScore)
		}
		scores[key] = values
	}

	out := make([]domain.YearTypeValue, 0, len(scores))
	for key, values := range scores {
		out = append(out, domain.YearTypeValue{Year: key.year, Type: key.kind, Value: domain.Float(mean(values))})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// YearlyAggregate summarises one release year
type YearlyAggregate struct {
	Year             int
	Titles           int
	MeanScore        float64
	HighQualityCount int
	HighQualityRatio float64
	MeanClose        float64
}

// YearlyAggregates groups dated records by year, years ascending
func YearlyAggregates(records []domain.ContentRecord) []YearlyAggregate {
	type acc struct {
		titles, highQuality int
		scores, closes      []float64
	}
	byYear := make(map[int]*acc)
	for _, r := range records {
		if !r.HasDate {
			continue
		}
		a, ok := byYear[r.Year]
		if !ok {
			a = &acc{}
			byYear[r.Year] = a
		}
		a.titles++
		if IsHighQuality(r.IMDbScore) {
			a.highQuality++
		}
		if r.HasScore() {
			a.scores = append(a.scores, r.IMDbScore)
		}
		if r.HasClose() {
			a.closes = append(a.closes, r.Close)
		}
	}

	years := sortedKeys(byYear)
	out := make([]YearlyAggregate, 0, len(years))
	for _, year := range years {
		a := byYear[year]
		out = append(out, YearlyAggregate{
			Year:             year,
			Titles:           a.titles,
			MeanScore:        mean(a.scores),
			HighQualityCount: a.highQuality,
			HighQualityRatio: float64(a.highQuality) / float64(a.titles),
			MeanClose:        mean(a.closes),
		})
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return stat.Mean(values, nil)
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
