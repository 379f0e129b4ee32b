package domain

import (
	"math"
	"time"
)

// ContentType is the catalog type of a title as found in the dataset
type ContentType string

const (
	ContentTypeMovie ContentType = "MOVIE"
	ContentTypeShow  ContentType = "SHOW"
)

// ContentRecord represents one title joined with the stock observation of its release date
type ContentRecord struct {
	Title       string      `json:"title" validate:"required"`
	Type        ContentType `json:"type"`
	ReleaseDate time.Time   `json:"release_date"`
	HasDate     bool        `json:"has_date"`
	Year        int         `json:"year"`
	Genres      string      `json:"genres"`
	Country     string      `json:"country"`
	IMDbScore   float64     `json:"imdb_score"`
	IMDbVotes   int64       `json:"imdb_votes"`
	Close       float64     `json:"close"`
	Volatility  float64     `json:"volatility"`
}

// HasScore reports whether the record carries an IMDb score
func (r ContentRecord) HasScore() bool {
	return !math.IsNaN(r.IMDbScore)
}

// HasClose reports whether the record carries a closing price
func (r ContentRecord) HasClose() bool {
	return !math.IsNaN(r.Close)
}

// WithReleaseDate sets the release date and derives the year from it.
// A zero time clears both.
func (r ContentRecord) WithReleaseDate(date time.Time) ContentRecord {
	if date.IsZero() {
		r.ReleaseDate = time.Time{}
		r.HasDate = false
		r.Year = 0
		return r
	}
	r.ReleaseDate = date
	r.HasDate = true
	r.Year = date.Year()
	return r
}
