package domain

import (
	"strconv"
	"time"
)

// Table is a chart-ready result produced by one analysis
type Table interface {
	ChartID() string
	Columns() []string
	Rows() [][]string
	Len() int
}

const dateLayout = "2006-01-02"

// YearValue is a single value keyed by year
type YearValue struct {
	Year  int   `json:"year"`
	Value Float `json:"value"`
}

// YearValueTable holds one yearly series
type YearValueTable struct {
	Chart     string      `json:"chart"`
	ValueName string      `json:"value_name"`
	Points    []YearValue `json:"points"`
}

func (t *YearValueTable) ChartID() string   { return t.Chart }
func (t *YearValueTable) Columns() []string { return []string{"year", t.ValueName} }
func (t *YearValueTable) Len() int          { return len(t.Points) }

func (t *YearValueTable) Rows() [][]string {
	rows := make([][]string, 0, len(t.Points))
	for _, p := range t.Points {
		rows = append(rows, []string{strconv.Itoa(p.Year), p.Value.String()})
	}
	return rows
}

// YearTypeCount is a title count keyed by year and content type
type YearTypeCount struct {
	Year  int         `json:"year"`
	Type  ContentType `json:"type"`
	Count int         `json:"count"`
}

// YearTypeCountTable holds production counts per type
type YearTypeCountTable struct {
	Chart  string          `json:"chart"`
	Points []YearTypeCount `json:"points"`
}

func (t *YearTypeCountTable) ChartID() string   { return t.Chart }
func (t *YearTypeCountTable) Columns() []string { return []string{"year", "type", "count"} }
func (t *YearTypeCountTable) Len() int          { return len(t.Points) }

func (t *YearTypeCountTable) Rows() [][]string {
	rows := make([][]string, 0, len(t.Points))
	for _, p := range t.Points {
		rows = append(rows, []string{strconv.Itoa(p.Year), string(p.Type), strconv.Itoa(p.Count)})
	}
	return rows
}

// YearTypeValue is a value keyed by year and content type
type YearTypeValue struct {
	Year  int         `json:"year"`
	Type  ContentType `json:"type"`
	Value Float       `json:"value"`
}

// YearTypeValueTable holds a per-type yearly series
type YearTypeValueTable struct {
	Chart     string          `json:"chart"`
	ValueName string          `json:"value_name"`
	Points    []YearTypeValue `json:"points"`
}

func (t *YearTypeValueTable) ChartID() string { return t.Chart }
func (t *YearTypeValueTable) Columns() []string {
	return []string{"year", "type", t.ValueName}
}
func (t *YearTypeValueTable) Len() int { return len(t.Points) }

func (t *YearTypeValueTable) Rows() [][]string {
	rows := make([][]string, 0, len(t.Points))
	for _, p := range t.Points {
		rows = append(rows, []string{strconv.Itoa(p.Year), string(p.Type), p.Value.String()})
	}
	return rows
}

// StockReleasePoint pairs yearly stock movement with release volume
type StockReleasePoint struct {
	Year        int   `json:"year"`
	MeanClose   Float `json:"close"`
	Titles      int   `json:"titles"`
	PriceChange Float `json:"price_change"`
}

// StockReleaseTable is the stock price versus content releases table
type StockReleaseTable struct {
	Chart  string              `json:"chart"`
	Points []StockReleasePoint `json:"points"`
}

func (t *StockReleaseTable) ChartID() string { return t.Chart }
func (t *StockReleaseTable) Columns() []string {
	return []string{"year", "close", "title", "price_change"}
}
func (t *StockReleaseTable) Len() int { return len(t.Points) }

func (t *StockReleaseTable) Rows() [][]string {
	rows := make([][]string, 0, len(t.Points))
	for _, p := range t.Points {
		rows = append(rows, []string{
			strconv.Itoa(p.Year),
			p.MeanClose.String(),
			strconv.Itoa(p.Titles),
			p.PriceChange.String(),
		})
	}
	return rows
}

// StockQualityPoint pairs yearly stock movement with the high-quality ratio
type StockQualityPoint struct {
	Year             int   `json:"year"`
	MeanClose        Float `json:"close"`
	Titles           int   `json:"titles"`
	HighQuality      int   `json:"high_quality"`
	HighQualityRatio Float `json:"high_quality_ratio"`
	PriceChange      Float `json:"price_change"`
}

// StockQualityTable is the stock price versus content quality table.
// Y2Min and Y2Max bound the secondary axis shared by the ratio and price change.
type StockQualityTable struct {
	Chart  string              `json:"chart"`
	Points []StockQualityPoint `json:"points"`
	Y2Min  Float               `json:"y2_min"`
	Y2Max  Float               `json:"y2_max"`
}

func (t *StockQualityTable) ChartID() string { return t.Chart }
func (t *StockQualityTable) Columns() []string {
	return []string{"year", "close", "title", "high_quality", "high_quality_ratio", "price_change"}
}
func (t *StockQualityTable) Len() int { return len(t.Points) }

func (t *StockQualityTable) Rows() [][]string {
	rows := make([][]string, 0, len(t.Points))
	for _, p := range t.Points {
		rows = append(rows, []string{
			strconv.Itoa(p.Year),
			p.MeanClose.String(),
			strconv.Itoa(p.Titles),
			strconv.Itoa(p.HighQuality),
			p.HighQualityRatio.String(),
			p.PriceChange.String(),
		})
	}
	return rows
}

// VolatilityPoint is one quarterly bucket of a volatility cohort
type VolatilityPoint struct {
	Quarter    time.Time `json:"quarter"`
	Score      Float     `json:"imdb_score"`
	Volatility Float     `json:"volatility"`
	Trend      Float     `json:"trendline"`
}

// VolatilityCohort is a calendar partition with its own trend and correlation
type VolatilityCohort struct {
	Name            string            `json:"name"`
	Label           string            `json:"label"`
	Points          []VolatilityPoint `json:"points"`
	Correlation     Float             `json:"correlation"`
	CorrelationText string            `json:"correlation_text"`
	TrendDefined    bool              `json:"trend_defined"`
}

// VolatilityTable compares early and recent cohorts
type VolatilityTable struct {
	Chart  string           `json:"chart"`
	Early  VolatilityCohort `json:"early"`
	Recent VolatilityCohort `json:"recent"`
}

func (t *VolatilityTable) ChartID() string { return t.Chart }
func (t *VolatilityTable) Columns() []string {
	return []string{"cohort", "release_date", "imdb_score", "volatility", "trendline"}
}
func (t *VolatilityTable) Len() int { return len(t.Early.Points) + len(t.Recent.Points) }

func (t *VolatilityTable) Rows() [][]string {
	rows := make([][]string, 0, t.Len())
	for _, c := range []VolatilityCohort{t.Early, t.Recent} {
		for _, p := range c.Points {
			rows = append(rows, []string{
				c.Name,
				p.Quarter.Format(dateLayout),
				p.Score.String(),
				p.Volatility.String(),
				p.Trend.String(),
			})
		}
	}
	return rows
}

// PricePoint is one closing price observation
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close Float     `json:"close"`
}

// HitShow is a highly rated, widely voted title placed on the price line
type HitShow struct {
	Title        string    `json:"title"`
	ReleaseDate  time.Time `json:"release_date"`
	JitteredDate time.Time `json:"release_date_jitter"`
	Close        Float     `json:"close"`
	Score        Float     `json:"imdb_score"`
	Votes        int64     `json:"imdb_votes"`
	MarkerSize   Float     `json:"marker_size"`
}

// HitImpactTable overlays hit shows on the full price series
type HitImpactTable struct {
	Chart  string       `json:"chart"`
	Prices []PricePoint `json:"prices"`
	Hits   []HitShow    `json:"hits"`
}

func (t *HitImpactTable) ChartID() string { return t.Chart }
func (t *HitImpactTable) Columns() []string {
	return []string{"series", "title", "release_date", "close", "imdb_score", "imdb_votes", "marker_size"}
}
func (t *HitImpactTable) Len() int { return len(t.Prices) + len(t.Hits) }

func (t *HitImpactTable) Rows() [][]string {
	rows := make([][]string, 0, t.Len())
	for _, p := range t.Prices {
		rows = append(rows, []string{"stock", "", p.Date.Format(dateLayout), p.Close.String(), "", "", ""})
	}
	for _, h := range t.Hits {
		rows = append(rows, []string{
			"hit",
			h.Title,
			h.JitteredDate.Format(time.RFC3339),
			h.Close.String(),
			h.Score.String(),
			strconv.FormatInt(h.Votes, 10),
			h.MarkerSize.String(),
		})
	}
	return rows
}

// HitCount is the number of hit shows released in a year
type HitCount struct {
	Year     int   `json:"year"`
	Count    int   `json:"hit_count"`
	Smoothed Float `json:"hit_count_smoothed"`
}

// HitTrendTable compares annual hit counts with the yearly median price
type HitTrendTable struct {
	Chart string      `json:"chart"`
	Hits  []HitCount  `json:"hits"`
	Stock []YearValue `json:"stock"`
}

func (t *HitTrendTable) ChartID() string { return t.Chart }
func (t *HitTrendTable) Columns() []string {
	return []string{"series", "year", "value"}
}
func (t *HitTrendTable) Len() int { return 2*len(t.Hits) + len(t.Stock) }

func (t *HitTrendTable) Rows() [][]string {
	rows := make([][]string, 0, t.Len())
	for _, s := range t.Stock {
		rows = append(rows, []string{"close_median", strconv.Itoa(s.Year), s.Value.String()})
	}
	for _, h := range t.Hits {
		rows = append(rows,
			[]string{"hit_count", strconv.Itoa(h.Year), strconv.Itoa(h.Count)},
			[]string{"hit_count_smoothed", strconv.Itoa(h.Year), h.Smoothed.String()},
		)
	}
	return rows
}

// CategoryShare is the share of a year's output held by one category
type CategoryShare struct {
	Year       int    `json:"year"`
	Category   string `json:"category"`
	Count      int    `json:"count"`
	Total      int    `json:"total"`
	Percentage Float  `json:"percentage"`
}

// ShareTable holds per-year category shares (genres or countries)
type ShareTable struct {
	Chart        string          `json:"chart"`
	CategoryName string          `json:"category_name"`
	Categories   []string        `json:"categories"`
	Shares       []CategoryShare `json:"shares"`
}

func (t *ShareTable) ChartID() string { return t.Chart }
func (t *ShareTable) Columns() []string {
	return []string{"year", t.CategoryName, "count", "total", "percentage"}
}
func (t *ShareTable) Len() int { return len(t.Shares) }

func (t *ShareTable) Rows() [][]string {
	rows := make([][]string, 0, len(t.Shares))
	for _, s := range t.Shares {
		rows = append(rows, []string{
			strconv.Itoa(s.Year),
			s.Category,
			strconv.Itoa(s.Count),
			strconv.Itoa(s.Total),
			s.Percentage.String(),
		})
	}
	return rows
}

// InternationalPoint is the yearly share of international titles
type InternationalPoint struct {
	Year     int   `json:"year"`
	Share    Float `json:"is_international"`
	Smoothed Float `json:"smoothed"`
}

// InternationalTable holds the international content trend
type InternationalTable struct {
	Chart  string               `json:"chart"`
	Points []InternationalPoint `json:"points"`
}

func (t *InternationalTable) ChartID() string { return t.Chart }
func (t *InternationalTable) Columns() []string {
	return []string{"year", "is_international", "smoothed"}
}
func (t *InternationalTable) Len() int { return len(t.Points) }

func (t *InternationalTable) Rows() [][]string {
	rows := make([][]string, 0, len(t.Points))
	for _, p := range t.Points {
		rows = append(rows, []string{strconv.Itoa(p.Year), p.Share.String(), p.Smoothed.String()})
	}
	return rows
}
