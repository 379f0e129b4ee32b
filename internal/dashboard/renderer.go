package dashboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"

	"github.com/Xin-10/Netflix-Data-Visualization/internal/infrastructure"
	"github.com/Xin-10/Netflix-Data-Visualization/pkg/contracts/domain"
)

const (
	// DefaultWidth and DefaultHeight size a chart when no dimensions are configured
	DefaultWidth  = 1000
	DefaultHeight = 500

	rangeMargin = 0.05

	// rendered category lines per share chart
	maxShareSeries = 10

	minMarkerWidth = 3.0
	maxMarkerWidth = 18.0
)

// marker is a labelled point on a figure, optionally with a dashed vertical
// rule through the whole plot at x
type marker struct {
	x, y  float64
	label string
	rule  bool
}

// expansionMarkers are Netflix's international launch milestones
var expansionMarkers = []marker{
	{x: 2010, y: 0.05, label: "Netflix expands to Canada", rule: true},
	{x: 2016, y: 0.3, label: "Global Expansion", rule: true},
	{x: 2015, y: 0.05, label: "Growth starts"},
}

// ErrUnsupportedTable is returned for a table type without a chart layout
var ErrUnsupportedTable = errors.New("unsupported chart table")

var (
	colorNetflixRed = drawing.ColorFromHex("E50914")
	colorSilver     = drawing.ColorFromHex("B3B3B3")
	colorOrange     = drawing.ColorFromHex("FFA500")
	colorLightBlue  = drawing.ColorFromHex("ADD8E6")
	colorEarly      = drawing.ColorFromHex("FF4C4C")
	colorEarlyTrend = drawing.ColorFromHex("FFAA4C")
	colorTrend      = drawing.ColorFromHex("FFC14C")
	colorLightGrey  = drawing.ColorFromHex("D3D3D3")
	colorWhite      = drawing.ColorFromHex("FFFFFF")
	colorBackground = drawing.ColorFromHex("000000")
	colorAxis       = drawing.ColorFromHex("666666")
	colorRule       = drawing.ColorFromHex("808080")

	// category lines cycle through this palette
	categoryPalette = []drawing.Color{
		colorNetflixRed, colorSilver, colorOrange, colorLightBlue, colorEarly,
		colorEarlyTrend, colorTrend, drawing.ColorFromHex("8FBC8F"),
		drawing.ColorFromHex("DA70D6"), drawing.ColorFromHex("F0E68C"),
	}
)

// Renderer draws chart tables as SVG
type Renderer struct {
	width  int
	height int
	logger *slog.Logger
}

// NewRenderer creates a renderer producing width x height charts
func NewRenderer(width, height int, logger *slog.Logger) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		width:  width,
		height: height,
		logger: infrastructure.WithComponent(logger, "chart_renderer"),
	}
}

// Render draws table under title. Tables without any plottable point render
// as a placeholder instead of failing.
func (r *Renderer) Render(ctx context.Context, title string, table domain.Table) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fig, err := layout(title, table)
	if err != nil {
		return nil, err
	}
	if fig.empty() {
		r.logger.DebugContext(ctx, "rendering placeholder", slog.String("chart", table.ChartID()))
		return Placeholder(r.width, r.height, title), nil
	}

	ch := fig.chart(r.width, r.height)
	var buf bytes.Buffer
	if err := ch.Render(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart %s: %w", table.ChartID(), err)
	}
	return buf.Bytes(), nil
}

// Placeholder is the SVG shown for a chart without data
func Placeholder(width, height int, title string) []byte {
	return []byte(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
			`<rect width="100%%" height="100%%" fill="#000000"/>`+
			`<text x="50%%" y="40" fill="#FFFFFF" font-family="Arial" font-size="16" text-anchor="middle">%s</text>`+
			`<text x="50%%" y="50%%" fill="#B3B3B3" font-family="Arial" font-size="14" text-anchor="middle">No data</text>`+
			`</svg>`,
		width, height, width, height, html.EscapeString(title)))
}

func layout(title string, table domain.Table) (*figure, error) {
	switch t := table.(type) {
	case *domain.YearValueTable:
		return yearValueFigure(title, t), nil
	case *domain.YearTypeCountTable:
		return typeCountFigure(title, t), nil
	case *domain.YearTypeValueTable:
		return typeValueFigure(title, t), nil
	case *domain.StockReleaseTable:
		return stockReleaseFigure(title, t), nil
	case *domain.StockQualityTable:
		return stockQualityFigure(title, t), nil
	case *domain.VolatilityTable:
		return volatilityFigure(title, t), nil
	case *domain.HitImpactTable:
		return hitImpactFigure(title, t), nil
	case *domain.HitTrendTable:
		return hitTrendFigure(title, t), nil
	case *domain.ShareTable:
		return shareFigure(title, t), nil
	case *domain.InternationalTable:
		return internationalFigure(title, t), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedTable, table)
	}
}

func yearValueFigure(title string, t *domain.YearValueTable) *figure {
	fig := newFigure(title, "Year", t.ValueName)
	xs, ys := make([]float64, len(t.Points)), make([]float64, len(t.Points))
	for i, p := range t.Points {
		xs[i], ys[i] = float64(p.Year), float64(p.Value)
	}
	if t.ValueName == "high_quality" {
		fig.yName = "Proportion of High-Rated Content"
		fig.line("High-Quality Share", xs, ys, lineMarkerStyle(colorNetflixRed), chart.YAxisPrimary)
		return fig
	}
	fig.yName = "Average IMDb Score"
	fig.line("Average IMDb Score", xs, ys, lineStyle(colorNetflixRed), chart.YAxisPrimary)
	return fig
}

func typeCountFigure(title string, t *domain.YearTypeCountTable) *figure {
	fig := newFigure(title, "Year", "Number of Titles")
	byType := make(map[domain.ContentType][][2]float64)
	for _, p := range t.Points {
		byType[p.Type] = append(byType[p.Type], [2]float64{float64(p.Year), float64(p.Count)})
	}
	for i, kind := range sortedTypes(byType) {
		xs, ys := unzip(byType[kind])
		fig.line(string(kind), xs, ys, lineMarkerStyle(typeColor(kind, i)), chart.YAxisPrimary)
	}
	return fig
}

func typeValueFigure(title string, t *domain.YearTypeValueTable) *figure {
	fig := newFigure(title, "Year", "Average IMDb Score")
	byType := make(map[domain.ContentType][][2]float64)
	for _, p := range t.Points {
		byType[p.Type] = append(byType[p.Type], [2]float64{float64(p.Year), float64(p.Value)})
	}
	for i, kind := range sortedTypes(byType) {
		xs, ys := unzip(byType[kind])
		fig.line(string(kind), xs, ys, lineMarkerStyle(typeColor(kind, i)), chart.YAxisPrimary)
	}
	return fig
}

func stockReleaseFigure(title string, t *domain.StockReleaseTable) *figure {
	fig := newFigure(title, "Year", "Stock Price (USD)")
	fig.y2Name = "Content Releases & Stock Price Change (%)"
	n := len(t.Points)
	years, closes, titles, change := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for i, p := range t.Points {
		years[i] = float64(p.Year)
		closes[i] = float64(p.MeanClose)
		titles[i] = float64(p.Titles)
		change[i] = float64(p.PriceChange)
	}
	fig.line("Stock Price", years, closes, lineStyle(colorNetflixRed), chart.YAxisPrimary)
	fig.line("Content Releases", years, titles, dashedStyle(colorWhite), chart.YAxisSecondary)
	fig.line("Stock Price Change (%)", years, change, lineMarkerStyle(colorOrange), chart.YAxisSecondary)
	return fig
}

func stockQualityFigure(title string, t *domain.StockQualityTable) *figure {
	fig := newFigure(title, "Year", "Stock Price (USD)")
	fig.y2Name = "High-Quality Content Ratio (%) & Stock Price Change (%)"
	n := len(t.Points)
	years, closes, ratio, change := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for i, p := range t.Points {
		years[i] = float64(p.Year)
		closes[i] = float64(p.MeanClose)
		ratio[i] = float64(p.HighQualityRatio)
		change[i] = float64(p.PriceChange)
	}
	fig.line("Stock Price", years, closes, lineStyle(colorNetflixRed), chart.YAxisPrimary)
	fig.line("High-Quality Ratio (%)", years, ratio, dashedStyle(colorLightBlue), chart.YAxisSecondary)
	fig.line("Stock Price Change (%)", years, change, lineMarkerStyle(colorOrange), chart.YAxisSecondary)
	if t.Y2Min.Valid() && t.Y2Max.Valid() && t.Y2Max > t.Y2Min {
		fig.y2Range = &chart.ContinuousRange{Min: float64(t.Y2Min), Max: float64(t.Y2Max)}
	}
	return fig
}

func volatilityFigure(title string, t *domain.VolatilityTable) *figure {
	fig := newFigure(title, "IMDb Score", "Stock Volatility")
	cohorts := []struct {
		cohort     domain.VolatilityCohort
		dots, line drawing.Color
	}{
		{t.Early, colorEarly, colorEarlyTrend},
		{t.Recent, colorNetflixRed, colorTrend},
	}
	for _, c := range cohorts {
		n := len(c.cohort.Points)
		xs, ys, trend := make([]float64, n), make([]float64, n), make([]float64, n)
		for i, p := range c.cohort.Points {
			xs[i], ys[i], trend[i] = float64(p.Score), float64(p.Volatility), float64(p.Trend)
		}
		fig.line(c.cohort.Label, xs, ys, markerStyle(c.dots, 6), chart.YAxisPrimary)
		if c.cohort.TrendDefined {
			sx, st := sortByX(xs, trend)
			fig.line("Trend ("+c.cohort.Name+")", sx, st, lineStyle(c.line), chart.YAxisPrimary)
		}
	}
	return fig
}

func hitImpactFigure(title string, t *domain.HitImpactTable) *figure {
	fig := newFigure(title, "Release Date", "Stock Price (USD)")
	fig.timeX = true

	dates, closes := make([]time.Time, len(t.Prices)), make([]float64, len(t.Prices))
	for i, p := range t.Prices {
		dates[i], closes[i] = p.Date, float64(p.Close)
	}
	fig.timeLine("Stock Price", dates, closes, nil, lineStyle(colorLightGrey))

	hitDates, hitCloses, sizes := make([]time.Time, len(t.Hits)), make([]float64, len(t.Hits)), make([]float64, len(t.Hits))
	for i, h := range t.Hits {
		hitDates[i], hitCloses[i], sizes[i] = h.JitteredDate, float64(h.Close), float64(h.MarkerSize)
	}
	fig.timeLine("Hit Shows", hitDates, hitCloses, sizes, markerStyle(colorTrend, minMarkerWidth))
	return fig
}

func hitTrendFigure(title string, t *domain.HitTrendTable) *figure {
	fig := newFigure(title, "Year", "Number of Hit Shows")
	fig.y2Name = "Median Stock Price (USD)"
	n := len(t.Hits)
	years, counts, smoothed := make([]float64, n), make([]float64, n), make([]float64, n)
	for i, h := range t.Hits {
		years[i], counts[i], smoothed[i] = float64(h.Year), float64(h.Count), float64(h.Smoothed)
	}
	fig.line("Hit Shows", years, counts, markerStyle(colorSilver, 5), chart.YAxisPrimary)
	fig.line("Hit Shows (5-year mean)", years, smoothed, lineStyle(colorNetflixRed), chart.YAxisPrimary)

	stockYears, stock := make([]float64, len(t.Stock)), make([]float64, len(t.Stock))
	for i, s := range t.Stock {
		stockYears[i], stock[i] = float64(s.Year), float64(s.Value)
	}
	fig.line("Median Stock Price", stockYears, stock, lineMarkerStyle(colorLightBlue), chart.YAxisSecondary)
	return fig
}

func shareFigure(title string, t *domain.ShareTable) *figure {
	fig := newFigure(title, "Year", "Share of Titles (%)")
	byCategory := make(map[string][][2]float64)
	totals := make(map[string]int)
	for _, s := range t.Shares {
		byCategory[s.Category] = append(byCategory[s.Category], [2]float64{float64(s.Year), float64(s.Percentage) * 100})
		totals[s.Category] += s.Count
	}

	categories := make([]string, 0, len(byCategory))
	for _, c := range t.Categories {
		if _, ok := byCategory[c]; ok {
			categories = append(categories, c)
		}
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return totals[categories[i]] > totals[categories[j]]
	})
	if len(categories) > maxShareSeries {
		categories = categories[:maxShareSeries]
	}

	for i, c := range categories {
		xs, ys := unzip(byCategory[c])
		color := categoryPalette[i%len(categoryPalette)]
		fig.line(c, xs, ys, lineMarkerStyle(color), chart.YAxisPrimary)
	}
	return fig
}

func internationalFigure(title string, t *domain.InternationalTable) *figure {
	fig := newFigure(title, "Year", "Share of International Titles")
	n := len(t.Points)
	years, share, smoothed := make([]float64, n), make([]float64, n), make([]float64, n)
	for i, p := range t.Points {
		years[i], share[i], smoothed[i] = float64(p.Year), float64(p.Share), float64(p.Smoothed)
	}
	fig.line("International Share", years, share, markerStyle(colorSilver, 5), chart.YAxisPrimary)
	fig.line("3-Year Mean", years, smoothed, lineStyle(colorNetflixRed), chart.YAxisPrimary)
	fig.markers = expansionMarkers
	return fig
}

// figure collects series and axis extents before building a go-chart Chart
type figure struct {
	title  string
	xName  string
	yName  string
	y2Name string
	timeX  bool

	series  []chart.Series
	markers []marker
	xs      []float64
	ys      []float64
	y2s     []float64
	y2Range *chart.ContinuousRange
}

func newFigure(title, xName, yName string) *figure {
	return &figure{title: title, xName: xName, yName: yName}
}

func (f *figure) empty() bool {
	return len(f.series) == 0
}

// line adds a continuous series, skipping undefined points. A single point
// is duplicated at a small offset so the series keeps a non-zero range.
func (f *figure) line(name string, xs, ys []float64, style chart.Style, axis chart.YAxisType) {
	xs, ys = finitePairs(xs, ys)
	if len(xs) == 0 {
		return
	}
	if len(xs) == 1 {
		xs = []float64{xs[0], xs[0] + 0.5}
		ys = []float64{ys[0], ys[0]}
	}

	f.xs = append(f.xs, xs...)
	if axis == chart.YAxisSecondary {
		f.y2s = append(f.y2s, ys...)
	} else {
		f.ys = append(f.ys, ys...)
	}
	f.series = append(f.series, chart.ContinuousSeries{
		Name:    html.EscapeString(name),
		Style:   style,
		YAxis:   axis,
		XValues: xs,
		YValues: ys,
	})
}

// timeLine adds a time series on the primary axis. Non-nil sizes scale each dot.
func (f *figure) timeLine(name string, ts []time.Time, ys []float64, sizes []float64, style chart.Style) {
	var (
		keptT     []time.Time
		keptY     []float64
		keptSizes []float64
	)
	for i := range ts {
		if i >= len(ys) || !isFinite(ys[i]) {
			continue
		}
		keptT = append(keptT, ts[i])
		keptY = append(keptY, ys[i])
		if sizes != nil {
			keptSizes = append(keptSizes, sizes[i])
		}
	}
	if len(keptT) == 0 {
		return
	}
	if len(keptT) == 1 {
		keptT = append(keptT, keptT[0].Add(12*time.Hour))
		keptY = append(keptY, keptY[0])
		if sizes != nil {
			keptSizes = append(keptSizes, keptSizes[0])
		}
	}

	if keptSizes != nil {
		style.DotWidthProvider = func(_, _ chart.Range, index int, _, _ float64) float64 {
			if index < 0 || index >= len(keptSizes) {
				return minMarkerWidth
			}
			return clamp(keptSizes[index]/2, minMarkerWidth, maxMarkerWidth)
		}
	}

	for _, t := range keptT {
		f.xs = append(f.xs, chart.TimeToFloat64(t))
	}
	f.ys = append(f.ys, keptY...)
	f.series = append(f.series, chart.TimeSeries{
		Name:    html.EscapeString(name),
		Style:   style,
		XValues: keptT,
		YValues: keptY,
	})
}

// chart builds the go-chart Chart. go-chart writes text verbatim into the
// SVG, so every label is escaped here.
func (f *figure) chart(width, height int) chart.Chart {
	text := chart.Style{FontColor: colorWhite, StrokeColor: colorAxis}
	xRange, yRange := paddedRange(f.xs), paddedRange(f.ys)

	xAxis := chart.XAxis{
		Name:           html.EscapeString(f.xName),
		NameStyle:      text,
		Style:          text,
		Range:          xRange,
		ValueFormatter: numberFormatter,
	}
	if f.timeX {
		xAxis.ValueFormatter = chart.TimeValueFormatterWithFormat("2006")
	} else if isYearAxis(f.xName) {
		xAxis.ValueFormatter = yearFormatter
	}

	ch := chart.Chart{
		Title:      html.EscapeString(f.title),
		TitleStyle: chart.Style{FontColor: colorWhite, FontSize: 14},
		Width:      width,
		Height:     height,
		Background: chart.Style{
			Padding:   chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
			FillColor: colorBackground,
		},
		Canvas: chart.Style{FillColor: colorBackground},
		XAxis:  xAxis,
		YAxis: chart.YAxis{
			Name:           html.EscapeString(f.yName),
			NameStyle:      text,
			Style:          text,
			Range:          yRange,
			ValueFormatter: numberFormatter,
		},
		Series: append([]chart.Series(nil), f.series...),
	}

	if len(f.y2s) > 0 {
		r := f.y2Range
		if r == nil {
			r = paddedRange(f.y2s)
		}
		ch.YAxisSecondary = chart.YAxis{
			Name:           html.EscapeString(f.y2Name),
			NameStyle:      text,
			Style:          text,
			Range:          r,
			ValueFormatter: numberFormatter,
		}
	}

	var notes []chart.Value2
	for _, m := range f.markers {
		if m.x < xRange.Min || m.x > xRange.Max {
			continue
		}
		if m.rule {
			ch.Elements = append(ch.Elements, verticalRule(m.x, xRange))
		}
		notes = append(notes, chart.Value2{
			XValue: m.x,
			YValue: clamp(m.y, yRange.Min, yRange.Max),
			Label:  html.EscapeString(m.label),
		})
	}
	if len(notes) > 0 {
		ch.Series = append(ch.Series, chart.AnnotationSeries{
			Style:       chart.Style{FillColor: colorBackground, FontColor: colorWhite, StrokeColor: colorRule},
			Annotations: notes,
		})
	}

	ch.Elements = append(ch.Elements, chart.Legend(&ch, chart.Style{
		FillColor:   colorBackground,
		FontColor:   colorWhite,
		StrokeColor: colorAxis,
	}))
	return ch
}

// verticalRule draws a dashed line across the plot at x
func verticalRule(x float64, xRange *chart.ContinuousRange) chart.Renderable {
	return func(r chart.Renderer, canvas chart.Box, _ chart.Style) {
		if xRange.Max <= xRange.Min {
			return
		}
		px := canvas.Left + int(math.Round((x-xRange.Min)/(xRange.Max-xRange.Min)*float64(canvas.Width())))
		r.SetStrokeColor(colorRule)
		r.SetStrokeWidth(2)
		r.SetStrokeDashArray([]float64{5, 5})
		r.MoveTo(px, canvas.Top)
		r.LineTo(px, canvas.Bottom)
		r.Stroke()
		r.ResetStyle()
	}
}

func lineStyle(c drawing.Color) chart.Style {
	return chart.Style{StrokeColor: c, StrokeWidth: 2}
}

func dashedStyle(c drawing.Color) chart.Style {
	return chart.Style{StrokeColor: c, StrokeWidth: 1.5, StrokeDashArray: []float64{5, 5}}
}

func lineMarkerStyle(c drawing.Color) chart.Style {
	return chart.Style{StrokeColor: c, StrokeWidth: 2, DotColor: c, DotWidth: 3}
}

// markerStyle renders points only
func markerStyle(c drawing.Color, width float64) chart.Style {
	return chart.Style{StrokeWidth: chart.Disabled, DotColor: c, DotWidth: width}
}

func typeColor(kind domain.ContentType, i int) drawing.Color {
	switch kind {
	case domain.ContentTypeMovie:
		return colorNetflixRed
	case domain.ContentTypeShow:
		return colorSilver
	}
	return categoryPalette[(i+2)%len(categoryPalette)]
}

func sortedTypes[V any](m map[domain.ContentType]V) []domain.ContentType {
	out := make([]domain.ContentType, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func unzip(points [][2]float64) ([]float64, []float64) {
	xs, ys := make([]float64, len(points)), make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p[0], p[1]
	}
	return xs, ys
}

func sortByX(xs, ys []float64) ([]float64, []float64) {
	points := make([][2]float64, len(xs))
	for i := range xs {
		points[i] = [2]float64{xs[i], ys[i]}
	}
	sort.Slice(points, func(i, j int) bool { return points[i][0] < points[j][0] })
	return unzip(points)
}

func finitePairs(xs, ys []float64) ([]float64, []float64) {
	outX := make([]float64, 0, len(xs))
	outY := make([]float64, 0, len(ys))
	for i := range xs {
		if i >= len(ys) || !isFinite(xs[i]) || !isFinite(ys[i]) {
			continue
		}
		outX = append(outX, xs[i])
		outY = append(outY, ys[i])
	}
	return outX, outY
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// paddedRange spans values with a small margin; a flat series gets +/-1
func paddedRange(values []float64) *chart.ContinuousRange {
	if len(values) == 0 {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	lo, hi := floats.Min(values), floats.Max(values)
	if lo == hi {
		return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	pad := (hi - lo) * rangeMargin
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func isYearAxis(name string) bool {
	return name == "Year"
}

func yearFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.Itoa(int(math.Round(f)))
	}
	return ""
}

// numberFormatter prints at most two decimals without trailing zeros
func numberFormatter(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return fmt.Sprintf("%v", v)
	}
	s := strconv.FormatFloat(f, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}
