package charts

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Xin-10/Netflix-Data-Visualization/internal/dataprocessing"
	"github.com/Xin-10/Netflix-Data-Visualization/pkg/contracts/domain"
)

// title builds a record; an empty date leaves it undated
type title struct {
	name       string
	kind       domain.ContentType
	date       string
	genres     string
	country    string
	score      float64
	votes      int64
	close      float64
	volatility float64
}

func (tt title) record() domain.ContentRecord {
	r := domain.ContentRecord{
		Title:      tt.name,
		Type:       tt.kind,
		Genres:     tt.genres,
		Country:    tt.country,
		IMDbScore:  tt.score,
		IMDbVotes:  tt.votes,
		Close:      tt.close,
		Volatility: tt.volatility,
	}
	if r.Type == "" {
		r.Type = domain.ContentTypeMovie
	}
	if tt.date != "" {
		d, err := time.Parse("2006-01-02", tt.date)
		if err != nil {
			panic(err)
		}
		r = r.WithReleaseDate(d)
	}
	return r
}

func snapshotOf(titles ...title) *dataprocessing.Snapshot {
	records := make([]domain.ContentRecord, len(titles))
	for i, tt := range titles {
		records[i] = tt.record()
	}
	return dataprocessing.NewSnapshot(records, "test")
}

func produce[T domain.Table](t *testing.T, p Producer, snap *dataprocessing.Snapshot) T {
	t.Helper()
	table, err := p(snap)
	require.NoError(t, err)
	typed, ok := table.(T)
	require.True(t, ok, "unexpected table type %T", table)
	return typed
}

var nan = math.NaN()
