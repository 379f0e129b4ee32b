package charts

import (
	"sort"

	"github.com/Xin-10/Netflix-Data-Visualization/internal/analytics"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/dataprocessing"
	"github.com/Xin-10/Netflix-Data-Visualization/pkg/contracts/domain"
)

const (
	topGenreCount       = 10
	internationalWindow = 3
)

type yearCategory struct {
	year     int
	category string
}

// categoryCounter counts exploded (year, category) pairs
type categoryCounter struct {
	counts map[yearCategory]int
	totals map[int]int
	// categories in order of first appearance
	categories []string
	seen       map[string]struct{}
}

func newCategoryCounter() *categoryCounter {
	return &categoryCounter{
		counts: make(map[yearCategory]int),
		totals: make(map[int]int),
		seen:   make(map[string]struct{}),
	}
}

func (c *categoryCounter) add(year int, category string) {
	c.counts[yearCategory{year, category}]++
	c.totals[year]++
	if _, ok := c.seen[category]; !ok {
		c.seen[category] = struct{}{}
		c.categories = append(c.categories, category)
	}
}

// shares returns one row per observed pair, sorted by year then category
func (c *categoryCounter) shares() []domain.CategoryShare {
	out := make([]domain.CategoryShare, 0, len(c.counts))
	for key, n := range c.counts {
		total := c.totals[key.year]
		out = append(out, domain.CategoryShare{
			Year:       key.year,
			Category:   key.category,
			Count:      n,
			Total:      total,
			Percentage: domain.Float(float64(n) / float64(total)),
		})
	}
	sortShares(out)
	return out
}

func (c *categoryCounter) years() []int {
	years := make([]int, 0, len(c.totals))
	for y := range c.totals {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

func sortShares(shares []domain.CategoryShare) {
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Year != shares[j].Year {
			return shares[i].Year < shares[j].Year
		}
		return shares[i].Category < shares[j].Category
	})
}

// GenreShares is the per-year share of each genre, restricted to the ten
// genres with the highest count across all years
func GenreShares(snap *dataprocessing.Snapshot) (domain.Table, error) {
	counter := newCategoryCounter()
	for _, r := range snap.DatedRows() {
		for _, g := range r.GenreList {
			counter.add(r.Year, g)
		}
	}

	all := counter.shares()
	top := topCategories(all, topGenreCount)
	keep := make(map[string]struct{}, len(top))
	for _, g := range top {
		keep[g] = struct{}{}
	}

	filtered := make([]domain.CategoryShare, 0, len(all))
	for _, s := range all {
		if _, ok := keep[s.Category]; ok {
			filtered = append(filtered, s)
		}
	}

	return &domain.ShareTable{
		Chart:        string(GenreTrends),
		CategoryName: "genre",
		Categories:   top,
		Shares:       filtered,
	}, nil
}

// topCategories ranks categories by total count, ties broken alphabetically
func topCategories(shares []domain.CategoryShare, n int) []string {
	totals := make(map[string]int)
	for _, s := range shares {
		totals[s.Category] += s.Count
	}
	ranked := make([]string, 0, len(totals))
	for c := range totals {
		ranked = append(ranked, c)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if totals[ranked[i]] != totals[ranked[j]] {
			return totals[ranked[i]] > totals[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// InternationalShare is the yearly share of titles tagged international with
// a 3-year trailing mean
func InternationalShare(snap *dataprocessing.Snapshot) (domain.Table, error) {
	rows := snap.DatedRows()
	samples := make([]analytics.YearSample, len(rows))
	for i, r := range rows {
		v := 0.0
		if r.IsInternational {
			v = 1
		}
		samples[i] = analytics.YearSample{Year: r.Year, Value: v}
	}

	yearly := analytics.MeanByYear(samples)
	series := make([]float64, len(yearly))
	for i, y := range yearly {
		series[i] = float64(y.Value)
	}
	smoothed := analytics.RollingMean(series, internationalWindow, 1)

	points := make([]domain.InternationalPoint, len(yearly))
	for i, y := range yearly {
		points[i] = domain.InternationalPoint{Year: y.Year, Share: y.Value, Smoothed: domain.Float(smoothed[i])}
	}

	return &domain.InternationalTable{Chart: string(InternationalTrend), Points: points}, nil
}

// CountryShares is the per-year share of each producing country. Shares are
// reindexed over every observed year and country with absent pairs at zero,
// then zero rows are dropped again.
func CountryShares(snap *dataprocessing.Snapshot) (domain.Table, error) {
	counter := newCategoryCounter()
	for _, r := range snap.DatedRows() {
		for _, c := range r.CountryList {
			counter.add(r.Year, c)
		}
	}

	grid := ReindexFillZero(counter.shares(), counter.years(), counter.categories)

	return &domain.ShareTable{
		Chart:        string(CountryProductionGrowth),
		CategoryName: "country",
		Categories:   counter.categories,
		Shares:       FilterPositive(grid),
	}, nil
}

// ReindexFillZero expands shares to every (year, category) pair, years
// ascending and categories in the given order. Missing pairs get zero count,
// total and percentage.
func ReindexFillZero(shares []domain.CategoryShare, years []int, categories []string) []domain.CategoryShare {
	index := make(map[yearCategory]domain.CategoryShare, len(shares))
	for _, s := range shares {
		index[yearCategory{s.Year, s.Category}] = s
	}

	out := make([]domain.CategoryShare, 0, len(years)*len(categories))
	for _, y := range years {
		for _, c := range categories {
			if s, ok := index[yearCategory{y, c}]; ok {
				out = append(out, s)
				continue
			}
			out = append(out, domain.CategoryShare{Year: y, Category: c})
		}
	}
	return out
}

// FilterPositive keeps rows with a percentage above zero
func FilterPositive(shares []domain.CategoryShare) []domain.CategoryShare {
	out := make([]domain.CategoryShare, 0, len(shares))
	for _, s := range shares {
		if s.Percentage.Valid() && s.Percentage > 0 {
			out = append(out, s)
		}
	}
	return out
}
