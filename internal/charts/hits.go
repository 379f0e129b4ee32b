package charts

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/Xin-10/Netflix-Data-Visualization/internal/analytics"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/dataprocessing"
	"github.com/Xin-10/Netflix-Data-Visualization/pkg/contracts/domain"
)

const (
	// maxJitter bounds the plotting offset applied to hit-show release times
	maxJitter = 5 * time.Second

	markerVotesPerPixel = 20000

	hitTrendWindow = 5
)

// Jitter returns a timestamp offset used only to de-overlap plotted points
type Jitter func() time.Duration

// NoJitter leaves timestamps unchanged
func NoJitter() time.Duration { return 0 }

// NewRandomJitter draws offsets uniformly from [-5s, 5s). A zero seed uses the current time.
func NewRandomJitter(seed int64) Jitter {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	var mu sync.Mutex
	rng := rand.New(rand.NewSource(seed))
	return func() time.Duration {
		mu.Lock()
		defer mu.Unlock()
		return time.Duration((rng.Float64()*2 - 1) * float64(maxJitter))
	}
}

// HitShowImpact overlays hit shows on the full closing-price series
func HitShowImpact(jitter Jitter) Producer {
	if jitter == nil {
		jitter = NoJitter
	}
	return func(snap *dataprocessing.Snapshot) (domain.Table, error) {
		rows := snap.DatedRows()

		prices := make([]domain.PricePoint, 0, len(rows))
		for _, r := range rows {
			if r.HasClose() {
				prices = append(prices, domain.PricePoint{Date: r.ReleaseDate, Close: domain.Float(r.Close)})
			}
		}
		sort.SliceStable(prices, func(i, j int) bool {
			return prices[i].Date.Before(prices[j].Date)
		})

		var hits []domain.HitShow
		for _, r := range rows {
			if !r.IsHit {
				continue
			}
			hits = append(hits, domain.HitShow{
				Title:        r.Title,
				ReleaseDate:  r.ReleaseDate,
				JitteredDate: r.ReleaseDate.Truncate(time.Second).Add(jitter()),
				Close:        domain.Float(r.Close),
				Score:        domain.Float(r.IMDbScore),
				Votes:        r.IMDbVotes,
				MarkerSize:   domain.Float(float64(r.IMDbVotes) / markerVotesPerPixel),
			})
		}

		return &domain.HitImpactTable{
			Chart:  string(ImpactOfHitShowsOnStock),
			Prices: prices,
			Hits:   hits,
		}, nil
	}
}

// HitShowTrend counts hit shows per year with a 5-year trailing mean and
// pairs it with the yearly median closing price
func HitShowTrend(snap *dataprocessing.Snapshot) (domain.Table, error) {
	rows := snap.DatedRows()

	var hitYears []int
	closes := make([]analytics.TimeValue, 0, len(rows))
	for _, r := range rows {
		if r.IsHit {
			hitYears = append(hitYears, r.Year)
		}
		closes = append(closes, analytics.TimeValue{Time: r.ReleaseDate, Value: r.Close})
	}

	counts := analytics.CountByYear(hitYears)
	series := make([]float64, len(counts))
	for i, c := range counts {
		series[i] = float64(c.Count)
	}
	smoothed := analytics.RollingMean(series, hitTrendWindow, 1)

	hits := make([]domain.HitCount, len(counts))
	for i, c := range counts {
		hits[i] = domain.HitCount{Year: c.Year, Count: c.Count, Smoothed: domain.Float(smoothed[i])}
	}

	medians := analytics.ResampleYearlyMedian(closes)
	stock := make([]domain.YearValue, len(medians))
	for i, m := range medians {
		stock[i] = domain.YearValue{Year: m.Time.Year(), Value: domain.Float(m.Value)}
	}

	return &domain.HitTrendTable{
		Chart: string(HitShowsVsStockLongTerm),
		Hits:  hits,
		Stock: stock,
	}, nil
}
