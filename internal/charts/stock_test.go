package charts

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xin-10/Netflix-Data-Visualization/pkg/contracts/domain"
)

func stockSnapshot() []title {
	return []title{
		{name: "A", date: "2010-01-10", score: 8.0, close: 100},
		{name: "B", date: "2010-06-10", score: 6.0, close: 100},
		{name: "C", date: "2011-01-10", score: 7.0, close: 110},
		{name: "D", date: "2012-01-10", score: 7.5, close: 121},
		{name: "E", date: "2012-05-10", score: 9.0, close: 121},
		{name: "F", date: "2012-09-10", score: 5.0, close: 121},
	}
}

func TestStockReleases(t *testing.T) {
	table := produce[*domain.StockReleaseTable](t, StockReleases, snapshotOf(stockSnapshot()...))

	require.Len(t, table.Points, 3)
	assert.Equal(t, []int{2, 1, 3}, []int{table.Points[0].Titles, table.Points[1].Titles, table.Points[2].Titles})
	assert.InDelta(t, 100, float64(table.Points[0].MeanClose), 1e-9)

	// the first two years lack two observed changes
	assert.Equal(t, domain.Float(0), table.Points[0].PriceChange)
	assert.Equal(t, domain.Float(0), table.Points[1].PriceChange)
	assert.InDelta(t, 10, float64(table.Points[2].PriceChange), 1e-9)
}

func TestStockQuality(t *testing.T) {
	table := produce[*domain.StockQualityTable](t, StockQuality, snapshotOf(stockSnapshot()...))

	require.Len(t, table.Points, 3)
	assert.InDelta(t, 50, float64(table.Points[0].HighQualityRatio), 1e-9)
	assert.InDelta(t, 0, float64(table.Points[1].HighQualityRatio), 1e-9)
	assert.InDelta(t, 200.0/3, float64(table.Points[2].HighQualityRatio), 1e-9)

	assert.InDelta(t, 0, float64(table.Points[0].PriceChange), 1e-9)
	assert.InDelta(t, 5, float64(table.Points[1].PriceChange), 1e-9)
	assert.InDelta(t, 20.0/3, float64(table.Points[2].PriceChange), 1e-9)

	assert.InDelta(t, 0, float64(table.Y2Min), 1e-9)
	assert.InDelta(t, 200.0/3*1.2, float64(table.Y2Max), 1e-9)

	for _, p := range table.Points {
		assert.False(t, math.IsNaN(float64(p.PriceChange)))
		assert.False(t, math.IsNaN(float64(p.HighQualityRatio)))
	}
}

func TestStockQualityEmpty(t *testing.T) {
	table := produce[*domain.StockQualityTable](t, StockQuality, snapshotOf(title{name: "Undated"}))
	assert.Empty(t, table.Points)
	assert.False(t, table.Y2Min.Valid())
	assert.False(t, table.Y2Max.Valid())
}
