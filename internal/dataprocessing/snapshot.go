package dataprocessing

import (
	"sort"
	"time"

	"github.com/Xin-10/Netflix-Data-Visualization/internal/analytics"
	"github.com/Xin-10/Netflix-Data-Visualization/pkg/contracts/domain"
)

// Row is a loaded record together with its derived columns
type Row struct {
	domain.ContentRecord

	HighQuality      bool     `json:"high_quality"`
	IsHit            bool     `json:"is_hit"`
	IsInternational  bool     `json:"is_international"`
	NormalizedGenres string   `json:"normalized_genres"`
	GenreList        []string `json:"genre_list"`
	CountryList      []string `json:"country_list"`
}

// Snapshot is the read-only dataset shared by every analysis.
// Rows keep file order. Slices handed out by accessors must not be modified.
type Snapshot struct {
	rows     []Row
	years    []int
	source   string
	loadedAt time.Time
}

// NewSnapshot derives per-row columns and freezes the dataset
func NewSnapshot(records []domain.ContentRecord, source string) *Snapshot {
	rows := make([]Row, len(records))
	seen := make(map[int]struct{})
	years := make([]int, 0)

	for i, record := range records {
		normalized := NormalizeGenres(record.Genres)
		rows[i] = Row{
			ContentRecord:    record,
			HighQuality:      analytics.IsHighQuality(record.IMDbScore),
			IsHit:            analytics.IsHitShow(record.IMDbScore, record.IMDbVotes),
			IsInternational:  IsInternational(record.Genres),
			NormalizedGenres: normalized,
			GenreList:        SplitGenres(normalized),
			CountryList:      SplitCountries(record.Country),
		}

		if !record.HasDate {
			continue
		}
		if _, ok := seen[record.Year]; !ok {
			seen[record.Year] = struct{}{}
			years = append(years, record.Year)
		}
	}
	sort.Ints(years)

	return &Snapshot{
		rows:     rows,
		years:    years,
		source:   source,
		loadedAt: time.Now(),
	}
}

// Len returns the number of rows
func (s *Snapshot) Len() int {
	return len(s.rows)
}

// Rows returns a copy of the row slice
func (s *Snapshot) Rows() []Row {
	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out
}

// DatedRows returns the rows that carry a release date
func (s *Snapshot) DatedRows() []Row {
	out := make([]Row, 0, len(s.rows))
	for _, r := range s.rows {
		if r.HasDate {
			out = append(out, r)
		}
	}
	return out
}

// Records returns the plain records in file order
func (s *Snapshot) Records() []domain.ContentRecord {
	out := make([]domain.ContentRecord, len(s.rows))
	for i, r := range s.rows {
		out[i] = r.ContentRecord
	}
	return out
}

// Years returns the distinct release years in ascending order
func (s *Snapshot) Years() []int {
	out := make([]int, len(s.years))
	copy(out, s.years)
	return out
}

// Source returns the path the snapshot was loaded from
func (s *Snapshot) Source() string {
	return s.source
}

// LoadedAt returns when the snapshot was built
func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}
