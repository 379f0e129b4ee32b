package charts

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Xin-10/Netflix-Data-Visualization/internal/dataprocessing"
	"github.com/Xin-10/Netflix-Data-Visualization/pkg/contracts/domain"
)

// ID identifies one analysis
type ID string

const (
	IMDbScoreTrend           ID = "imdb_score_trend"
	HighQualityProportion    ID = "high_quality_proportion"
	MovieVsTVProduction      ID = "movie_vs_tv_production"
	MovieVsTVIMDb            ID = "movie_vs_tv_imdb"
	StockVsReleases          ID = "stock_vs_releases"
	StockVsQuality           ID = "stock_vs_quality"
	QualityVsStockVolatility ID = "quality_vs_stock_volatility"
	ImpactOfHitShowsOnStock  ID = "impact_of_hit_shows_on_stock"
	HitShowsVsStockLongTerm  ID = "hit_shows_vs_stock_long_term"
	GenreTrends              ID = "genre_trends"
	InternationalTrend       ID = "international_trend"
	CountryProductionGrowth  ID = "country_production_growth"
)

// DefaultOrder is the order charts appear on the page
var DefaultOrder = []ID{
	IMDbScoreTrend,
	HighQualityProportion,
	MovieVsTVProduction,
	MovieVsTVIMDb,
	StockVsReleases,
	StockVsQuality,
	QualityVsStockVolatility,
	ImpactOfHitShowsOnStock,
	HitShowsVsStockLongTerm,
	GenreTrends,
	InternationalTrend,
	CountryProductionGrowth,
}

var (
	// ErrUnknownAnalysis is returned for an ID with no registered analysis
	ErrUnknownAnalysis = errors.New("unknown analysis")

	// ErrDuplicateAnalysis is returned when an order lists an ID twice
	ErrDuplicateAnalysis = errors.New("duplicate analysis")

	// ErrMissingAnalysis is returned when an order leaves out a registered ID
	ErrMissingAnalysis = errors.New("missing analysis")
)

// Producer computes one chart table from the snapshot
type Producer func(snap *dataprocessing.Snapshot) (domain.Table, error)

// Analysis is a registered chart with its page text
type Analysis struct {
	ID          ID
	Section     string
	Title       string
	Description string
	Produce     Producer
}

// Heading is the chart heading shown on the page, the ID in title case
func (a Analysis) Heading() string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(a.ID), "_", " "))
}

// Registry maps analysis IDs to their producers
type Registry struct {
	analyses map[ID]Analysis
	order    []ID
}

// Option configures a Registry
type Option func(*registryOptions)

type registryOptions struct {
	jitter Jitter
}

// WithJitter sets the timestamp jitter source for the hit-show chart
func WithJitter(j Jitter) Option {
	return func(o *registryOptions) {
		o.jitter = j
	}
}

// NewRegistry registers the twelve dashboard analyses in DefaultOrder
func NewRegistry(opts ...Option) *Registry {
	options := registryOptions{jitter: NewRandomJitter(0)}
	for _, opt := range opts {
		opt(&options)
	}

	r := &Registry{analyses: make(map[ID]Analysis, len(DefaultOrder))}
	for _, a := range []Analysis{
		{ID: IMDbScoreTrend, Produce: ScoreTrend},
		{ID: HighQualityProportion, Produce: HighQualityShare},
		{ID: MovieVsTVProduction, Produce: ProductionByType},
		{ID: MovieVsTVIMDb, Produce: ScoreByType},
		{ID: StockVsReleases, Produce: StockReleases},
		{ID: StockVsQuality, Produce: StockQuality},
		{ID: QualityVsStockVolatility, Produce: VolatilitySplit},
		{ID: ImpactOfHitShowsOnStock, Produce: HitShowImpact(options.jitter)},
		{ID: HitShowsVsStockLongTerm, Produce: HitShowTrend},
		{ID: GenreTrends, Produce: GenreShares},
		{ID: InternationalTrend, Produce: InternationalShare},
		{ID: CountryProductionGrowth, Produce: CountryShares},
	} {
		text := pageText[a.ID]
		a.Section, a.Title, a.Description = text.section, text.title, text.description
		r.register(a)
	}
	return r
}

func (r *Registry) register(a Analysis) {
	r.analyses[a.ID] = a
	r.order = append(r.order, a.ID)
}

// Validate checks that order lists every registered ID exactly once
func (r *Registry) Validate(order []ID) error {
	seen := make(map[ID]struct{}, len(order))
	for _, id := range order {
		a, ok := r.analyses[id]
		if !ok || a.Produce == nil {
			return fmt.Errorf("%w: %s", ErrUnknownAnalysis, id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateAnalysis, id)
		}
		seen[id] = struct{}{}
	}
	for _, id := range r.order {
		if _, ok := seen[id]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingAnalysis, id)
		}
	}
	return nil
}

// Get returns the analysis registered under id
func (r *Registry) Get(id ID) (Analysis, error) {
	a, ok := r.analyses[id]
	if !ok {
		return Analysis{}, fmt.Errorf("%w: %s", ErrUnknownAnalysis, id)
	}
	return a, nil
}

// Ordered returns the analyses in registration order
func (r *Registry) Ordered() []Analysis {
	out := make([]Analysis, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.analyses[id])
	}
	return out
}

// ParseID resolves a string against the known IDs
func ParseID(s string) (ID, error) {
	for _, id := range DefaultOrder {
		if string(id) == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownAnalysis, s)
}

type chartText struct {
	section     string
	title       string
	description string
}

var pageText = map[ID]chartText{
	IMDbScoreTrend: {
		section: "Section 1: Content Quality Decline",
		title:   "Netflix IMDb Score Trend Over Time",
		description: "Does the overall IMDb rating trend show a decline in Netflix content quality? " +
			"This graph illustrates the trend of average IMDb scores over time, revealing a significant drop after 2015.",
	},
	HighQualityProportion: {
		title: "High-Quality Content Proportion Over Time",
		description: "Even if the overall scores decline, is the proportion of high-rated content (IMDb ≥ 7.5) stable? " +
			"This graph demonstrates that high-rated content also shows a declining trend over time.",
	},
	MovieVsTVProduction: {
		section: "Section 2: Netflix Production Trends",
		title:   "Movie vs. TV Show Production Trend",
		description: "Is Netflix increasing content production? This graph shows trends in movie and TV show production over time, " +
			"suggesting that Netflix has been focusing on quantity, possibly at the cost of quality.",
	},
	MovieVsTVIMDb: {
		title: "Movie vs. TV Show IMDb Score Trend",
		description: "Are Netflix movies and TV shows rated differently? This graph explores their IMDb score trends, revealing that " +
			"TV shows generally receive higher ratings than movies.",
	},
	StockVsReleases: {
		section: "Section 3: Stock Price vs. Content",
		title:   "Netflix Content Releases & Stock Price Over Time",
		description: "Does the quantity of content released influence Netflix’s stock price? " +
			"This graph explores the relationship between content production and stock price growth.",
	},
	StockVsQuality: {
		title: "Netflix High-Quality Content & Stock Price Over Time",
		description: "Is there a direct link between high-quality content and Netflix stock prices? " +
			"This graph suggests that Netflix’s success depends more on market expansion and subscription growth " +
			"rather than pure content quality.",
	},
	QualityVsStockVolatility: {
		title: "Does Content Quality Affect Stock Volatility? (Early vs. Recent)",
		description: "Over time, has content quality influenced Netflix's stock volatility? " +
			"This graph compares early Netflix trends (pre-2010) vs. recent years (post-2015). " +
			"We observe that in the early years, IMDb ratings had a stronger correlation with stock volatility.",
	},
	ImpactOfHitShowsOnStock: {
		section: "Section 4: Impact of Hit Shows",
		title:   "Impact of Hit Shows on Netflix Stock (Short-term)",
		description: "Do blockbuster shows (IMDb ≥ 8.0, ≥ 100k votes) cause short-term stock price fluctuations? " +
			"The data suggests that major hits do not immediately trigger significant stock price changes.",
	},
	HitShowsVsStockLongTerm: {
		title: "Netflix Annual Hit Shows vs. Stock Price (Long-term)",
		description: "How does the number of annual hit shows correlate with stock performance? " +
			"The stock price follows a steady upward trend, seemingly independent of the number of hit shows.",
	},
	GenreTrends: {
		section: "Section 5: Content & Global Expansion",
		title:   "Netflix Content Genre Trends Over Time",
		description: "How has Netflix’s content strategy changed in terms of genre distribution? " +
			"This graph reveals long-term shifts in genre popularity.",
	},
	InternationalTrend: {
		title: "Trend of International Content Over Time",
		description: "Is Netflix investing more in international content? This graph shows a sharp rise in global content after 2015, " +
			"coinciding with Netflix’s expansion into over 190 countries in 2016.",
	},
	CountryProductionGrowth: {
		title: "Netflix Content Production Growth by Country",
		description: "Which countries contribute the most Netflix content? This world map highlights content production growth trends, " +
			"showing a diversification beyond the U.S. to Europe and Asia.",
	},
}
