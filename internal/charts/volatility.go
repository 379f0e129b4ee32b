package charts

import (
	"fmt"
	"math"
	"time"

	"github.com/Xin-10/Netflix-Data-Visualization/internal/analytics"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/dataprocessing"
	"github.com/Xin-10/Netflix-Data-Visualization/pkg/contracts/domain"
)

// Cohort boundaries. Releases from 2010 through 2015 belong to neither cohort.
var (
	earlyCohortEnd    = time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC)
	recentCohortStart = time.Date(2016, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// VolatilitySplit compares IMDb score against stock volatility for releases
// before 2010 and after 2015. Each cohort is resampled into quarterly means
// and gets its own least-squares trend and correlation.
func VolatilitySplit(snap *dataprocessing.Snapshot) (domain.Table, error) {
	var early, recent []dataprocessing.Row
	for _, r := range snap.DatedRows() {
		switch {
		case r.ReleaseDate.Before(earlyCohortEnd):
			early = append(early, r)
		case !r.ReleaseDate.Before(recentCohortStart):
			recent = append(recent, r)
		}
	}

	return &domain.VolatilityTable{
		Chart:  string(QualityVsStockVolatility),
		Early:  buildCohort("early", "Early Years (<2010)", early),
		Recent: buildCohort("recent", "Recent Years (>2015)", recent),
	}, nil
}

func buildCohort(name, label string, rows []dataprocessing.Row) domain.VolatilityCohort {
	scores := make([]analytics.TimeValue, len(rows))
	vols := make([]analytics.TimeValue, len(rows))
	for i, r := range rows {
		scores[i] = analytics.TimeValue{Time: r.ReleaseDate, Value: r.IMDbScore}
		vols[i] = analytics.TimeValue{Time: r.ReleaseDate, Value: r.Volatility}
	}

	quarterScores := analytics.ResampleQuarterlyMean(scores)
	quarterVols := analytics.ResampleQuarterlyMean(vols)

	var (
		quarters []time.Time
		x, y     []float64
	)
	for i := range quarterScores {
		s, v := quarterScores[i].Value, quarterVols[i].Value
		if math.IsNaN(s) || math.IsNaN(v) {
			continue
		}
		quarters = append(quarters, quarterScores[i].Time)
		x = append(x, s)
		y = append(y, v)
	}

	trend := analytics.LinearTrend(x, y)
	corr := analytics.PearsonCorrelation(x, y)

	points := make([]domain.VolatilityPoint, len(x))
	for i := range x {
		points[i] = domain.VolatilityPoint{
			Quarter:    quarters[i],
			Score:      domain.Float(x[i]),
			Volatility: domain.Float(y[i]),
			Trend:      domain.Float(trend.Values[i]),
		}
	}

	return domain.VolatilityCohort{
		Name:            name,
		Label:           fmt.Sprintf("%s: Corr=%s", label, analytics.FormatCorrelation(corr)),
		Points:          points,
		Correlation:     domain.Float(corr),
		CorrelationText: analytics.FormatCorrelation(corr),
		TrendDefined:    trend.Defined,
	}
}
