package charts

import (
	"github.com/Xin-10/Netflix-Data-Visualization/internal/analytics"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/dataprocessing"
	"github.com/Xin-10/Netflix-Data-Visualization/pkg/contracts/domain"
)

// ScoreTrend is the mean IMDb score per release year. Years without titles are absent.
func ScoreTrend(snap *dataprocessing.Snapshot) (domain.Table, error) {
	return &domain.YearValueTable{
		Chart:     string(IMDbScoreTrend),
		ValueName: "imdb_score",
		Points:    analytics.YearlyMeanScore(snap.Records()),
	}, nil
}

// HighQualityShare is the fraction of high-quality titles per release year
func HighQualityShare(snap *dataprocessing.Snapshot) (domain.Table, error) {
	return &domain.YearValueTable{
		Chart:     string(HighQualityProportion),
		ValueName: "high_quality",
		Points:    analytics.YearlyHighQualityRatio(snap.Records()),
	}, nil
}

// ProductionByType counts titles per release year and content type
func ProductionByType(snap *dataprocessing.Snapshot) (domain.Table, error) {
	return &domain.YearTypeCountTable{
		Chart:  string(MovieVsTVProduction),
		Points: analytics.YearlyTypeCounts(snap.Records()),
	}, nil
}

// ScoreByType is the mean IMDb score per release year and content type
func ScoreByType(snap *dataprocessing.Snapshot) (domain.Table, error) {
	return &domain.YearTypeValueTable{
		Chart:     string(MovieVsTVIMDb),
		ValueName: "imdb_score",
		Points:    analytics.YearlyTypeMeanScore(snap.Records()),
	}, nil
}
