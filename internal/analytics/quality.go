package analytics

const (
	// HighQualityThreshold is the inclusive IMDb score for a high-quality title
	HighQualityThreshold = 7.5

	// HitScoreThreshold is the inclusive IMDb score for a hit show
	HitScoreThreshold = 8.0

	// HitVotesThreshold is the inclusive IMDb vote count for a hit show
	HitVotesThreshold = 100000
)

// IsHighQuality reports whether a score reaches the high-quality threshold.
// NaN scores are never high quality.
func IsHighQuality(score float64) bool {
	return score >= HighQualityThreshold
}

// IsHitShow reports whether a title is both highly rated and widely voted
func IsHitShow(score float64, votes int64) bool {
	return score >= HitScoreThreshold && votes >= HitVotesThreshold
}
