package charts

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/Xin-10/Netflix-Data-Visualization/internal/analytics"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/dataprocessing"
	"github.com/Xin-10/Netflix-Data-Visualization/pkg/contracts/domain"
)

const (
	y2LowerPadding = 0.8
	y2UpperPadding = 1.2
)

// StockReleases pairs the yearly mean close with the number of releases and
// the smoothed yearly price change
func StockReleases(snap *dataprocessing.Snapshot) (domain.Table, error) {
	yearly := analytics.YearlyAggregates(snap.Records())

	closes := make([]float64, len(yearly))
	for i, y := range yearly {
		closes[i] = y.MeanClose
	}
	change := analytics.RollingPriceChange(closes, analytics.PriceChangeWindow, analytics.PriceChangeMinPeriods)

	points := make([]domain.StockReleasePoint, len(yearly))
	for i, y := range yearly {
		points[i] = domain.StockReleasePoint{
			Year:        y.Year,
			MeanClose:   domain.Float(y.MeanClose),
			Titles:      y.Titles,
			PriceChange: domain.Float(change[i]),
		}
	}

	return &domain.StockReleaseTable{Chart: string(StockVsReleases), Points: points}, nil
}

// StockQuality pairs the yearly mean close with the high-quality ratio in
// percent and the smoothed yearly price change. The first year's undefined
// change counts as 0 inside the smoothing window.
func StockQuality(snap *dataprocessing.Snapshot) (domain.Table, error) {
	yearly := analytics.YearlyAggregates(snap.Records())

	closes := make([]float64, len(yearly))
	for i, y := range yearly {
		closes[i] = y.MeanClose
	}
	change := analytics.RollingPriceChangeFilled(closes, analytics.PriceChangeWindow, analytics.PriceChangeMinPeriods)

	points := make([]domain.StockQualityPoint, len(yearly))
	secondary := make([]float64, 0, 2*len(yearly))
	for i, y := range yearly {
		ratio := y.HighQualityRatio * 100
		if math.IsNaN(ratio) {
			ratio = 0
		}
		points[i] = domain.StockQualityPoint{
			Year:             y.Year,
			MeanClose:        domain.Float(y.MeanClose),
			Titles:           y.Titles,
			HighQuality:      y.HighQualityCount,
			HighQualityRatio: domain.Float(ratio),
			PriceChange:      domain.Float(change[i]),
		}
		secondary = append(secondary, ratio, change[i])
	}

	table := &domain.StockQualityTable{
		Chart:  string(StockVsQuality),
		Points: points,
		Y2Min:  domain.NaN(),
		Y2Max:  domain.NaN(),
	}
	if len(secondary) > 0 {
		table.Y2Min = domain.Float(floats.Min(secondary) * y2LowerPadding)
		table.Y2Max = domain.Float(floats.Max(secondary) * y2UpperPadding)
	}
	return table, nil
}
