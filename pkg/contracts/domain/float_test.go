package domain

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatMarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		value Float
		want  string
	}{
		{name: "defined value", value: 7.25, want: "7.25"},
		{name: "zero", value: 0, want: "0"},
		{name: "NaN becomes null", value: NaN(), want: "null"},
		{name: "positive infinity becomes null", value: Float(math.Inf(1)), want: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestFloatUnmarshalNull(t *testing.T) {
	var point YearValue
	require.NoError(t, json.Unmarshal([]byte(`{"year":2019,"value":null}`), &point))

	assert.Equal(t, 2019, point.Year)
	assert.False(t, point.Value.Valid())
}

func TestFloatString(t *testing.T) {
	assert.Equal(t, "", NaN().String())
	assert.Equal(t, "0.5", Float(0.5).String())
	assert.Equal(t, "12", Float(12).String())
}

func TestContentRecordWithReleaseDate(t *testing.T) {
	record := ContentRecord{Title: "Dark", IMDbScore: 8.7}

	dated := record.WithReleaseDate(time.Date(2017, 12, 1, 0, 0, 0, 0, time.UTC))
	assert.True(t, dated.HasDate)
	assert.Equal(t, 2017, dated.Year)

	cleared := dated.WithReleaseDate(time.Time{})
	assert.False(t, cleared.HasDate)
	assert.Equal(t, 0, cleared.Year)
	assert.True(t, cleared.HasScore())
	assert.False(t, ContentRecord{Close: math.NaN()}.HasClose())
}

func TestTablesRenderRows(t *testing.T) {
	share := &ShareTable{
		Chart:        "genre_trends",
		CategoryName: "genre",
		Shares: []CategoryShare{
			{Year: 2020, Category: "drama", Count: 3, Total: 4, Percentage: 0.75},
		},
	}

	assert.Equal(t, []string{"year", "genre", "count", "total", "percentage"}, share.Columns())
	assert.Equal(t, [][]string{{"2020", "drama", "3", "4", "0.75"}}, share.Rows())
	assert.Equal(t, 1, share.Len())

	volatility := &VolatilityTable{
		Chart: "quality_vs_stock_volatility",
		Early: VolatilityCohort{Name: "early", Points: []VolatilityPoint{
			{Quarter: time.Date(2008, 3, 31, 0, 0, 0, 0, time.UTC), Score: 7, Volatility: 0.2, Trend: NaN()},
		}},
	}
	assert.Equal(t, [][]string{{"early", "2008-03-31", "7", "0.2", ""}}, volatility.Rows())
}
