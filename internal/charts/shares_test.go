package charts

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xin-10/Netflix-Data-Visualization/pkg/contracts/domain"
)

func TestGenreSharesTopTen(t *testing.T) {
	snap := snapshotOf(
		title{name: "A", date: "2020-01-01", genres: "Dramas, Action"},
		title{name: "B", date: "2020-02-01", genres: "Drama, Comedies"},
		title{name: "C", date: "2020-03-01", genres: "b, c, d, e, f, g, h, i, j, k"},
		title{name: "D", date: "2020-04-01", genres: ""},
		title{name: "Undated", genres: "Westerns"},
	)

	table := produce[*domain.ShareTable](t, GenreShares, snap)

	assert.Equal(t,
		[]string{"drama", "action", "b", "c", "comedy", "d", "e", "f", "g", "h"},
		table.Categories)

	var sum float64
	for _, s := range table.Shares {
		assert.Equal(t, 14, s.Total)
		sum += float64(s.Percentage)
	}
	assert.LessOrEqual(t, sum, 1.0+1e-12)

	require.NotEmpty(t, table.Shares)
	for _, s := range table.Shares {
		if s.Category == "drama" {
			assert.Equal(t, 2, s.Count)
			assert.InDelta(t, 2.0/14, float64(s.Percentage), 1e-12)
		}
		assert.NotEqual(t, "westerns", s.Category)
	}
}

func TestInternationalShare(t *testing.T) {
	snap := snapshotOf(
		title{name: "A", date: "2019-01-01", genres: "International TV Shows, Dramas"},
		title{name: "B", date: "2019-05-01", genres: "Comedies"},
		title{name: "C", date: "2020-01-01", genres: "international movies"},
		title{name: "D", date: "2021-01-01", genres: "Documentaries"},
	)

	table := produce[*domain.InternationalTable](t, InternationalShare, snap)
	assert.Equal(t, []domain.InternationalPoint{
		{Year: 2019, Share: 0.5, Smoothed: 0.5},
		{Year: 2020, Share: 1, Smoothed: 0.75},
		{Year: 2021, Share: 0, Smoothed: 0.5},
	}, table.Points)
}

func TestCountryShares(t *testing.T) {
	snap := snapshotOf(
		title{name: "A", date: "2019-01-01", country: "United States, India"},
		title{name: "B", date: "2019-02-01", country: "Unknown"},
		title{name: "C", date: "2020-01-01", country: "India"},
		title{name: "D", date: "2020-02-01", country: ""},
	)

	table := produce[*domain.ShareTable](t, CountryShares, snap)

	assert.Equal(t, []string{"United States", "India"}, table.Categories)
	assert.Equal(t, []domain.CategoryShare{
		{Year: 2019, Category: "India", Count: 1, Total: 2, Percentage: 0.5},
		{Year: 2019, Category: "United States", Count: 1, Total: 2, Percentage: 0.5},
		{Year: 2020, Category: "India", Count: 1, Total: 1, Percentage: 1},
	}, sortedCopy(table.Shares))
}

func TestReindexFillZeroRoundTrip(t *testing.T) {
	shares := []domain.CategoryShare{
		{Year: 2018, Category: "France", Count: 2, Total: 4, Percentage: 0.5},
		{Year: 2018, Category: "Japan", Count: 2, Total: 4, Percentage: 0.5},
		{Year: 2020, Category: "Japan", Count: 3, Total: 3, Percentage: 1},
	}
	years := []int{2018, 2019, 2020}
	categories := []string{"Japan", "France"}

	grid := ReindexFillZero(shares, years, categories)
	require.Len(t, grid, len(years)*len(categories))
	assert.Equal(t, domain.CategoryShare{Year: 2019, Category: "Japan"}, grid[2])

	if diff := cmp.Diff(sortedCopy(FilterPositive(shares)), sortedCopy(FilterPositive(grid))); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func sortedCopy(shares []domain.CategoryShare) []domain.CategoryShare {
	out := append([]domain.CategoryShare(nil), shares...)
	sortShares(out)
	return out
}
