// Package synthetic generates stand-in market data when providers are unavailable
package synthetic

import (
	"context"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

// Compile-time interface check
var _ interfaces.QuoteProvider = (*Generator)(nil)

type mockEntry struct {
	name         string
	base         float64
	priceSpread  float64
	changeSpread float64
	pctSpread    float64
}

// mockTable holds the well-known symbols that get jittered quotes around a
// fixed reference price.
var mockTable = map[string]mockEntry{
	"AAPL":  {name: "Apple Inc.", base: 175.25, priceSpread: 10, changeSpread: 5, pctSpread: 3},
	"GOOGL": {name: "Alphabet Inc.", base: 2750.8, priceSpread: 100, changeSpread: 20, pctSpread: 2},
	"MSFT":  {name: "Microsoft Corporation", base: 420.15, priceSpread: 20, changeSpread: 8, pctSpread: 2},
	"TSLA":  {name: "Tesla Inc.", base: 245.67, priceSpread: 30, changeSpread: 15, pctSpread: 5},
	"AMZN":  {name: "Amazon.com Inc.", base: 155.89, priceSpread: 15, changeSpread: 6, pctSpread: 3},
}

// Generator produces synthetic quotes, performance series and placeholder
// metrics. Safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a generator. A zero seed seeds from the clock.
func NewGenerator(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now: time.Now,
	}
}

// KnownName returns the display name of a symbol in the mock table.
func KnownName(symbol string) (string, bool) {
	e, ok := mockTable[strings.ToUpper(symbol)]
	return e.name, ok
}

// IsKnown reports whether the symbol is in the mock table.
func IsKnown(symbol string) bool {
	_, ok := mockTable[strings.ToUpper(symbol)]
	return ok
}

// centered returns a draw in [-spread/2, spread/2). Caller holds g.mu.
func (g *Generator) centered(spread float64) float64 {
	return (g.rng.Float64() - 0.5) * spread
}

// MockQuote returns a jittered quote for a mock table symbol, or false.
func (g *Generator) MockQuote(symbol string) (*models.StockQuote, bool) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	e, ok := mockTable[symbol]
	if !ok {
		return nil, false
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return &models.StockQuote{
		Symbol:        symbol,
		Name:          e.name,
		Price:         e.base + g.centered(e.priceSpread),
		Change:        g.centered(e.changeSpread),
		ChangePercent: g.centered(e.pctSpread),
	}, true
}

// SynthesizeQuote fabricates a quote for any symbol. An empty name becomes
// "<SYMBOL> Corporation".
func (g *Generator) SynthesizeQuote(symbol, name string) *models.StockQuote {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if name == "" {
		name = symbol + " Corporation"
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return &models.StockQuote{
		Symbol:        symbol,
		Name:          name,
		Price:         g.rng.Float64()*200 + 50,
		Change:        g.centered(10),
		ChangePercent: g.centered(5),
	}
}

// Quote returns the mock table quote when known, otherwise a synthesized one.
func (g *Generator) Quote(symbol string) *models.StockQuote {
	if q, ok := g.MockQuote(symbol); ok {
		return q
	}
	return g.SynthesizeQuote(symbol, "")
}

// GetQuote implements QuoteProvider. Always Found for a non-empty symbol.
func (g *Generator) GetQuote(_ context.Context, symbol string) models.QuoteResult {
	if strings.TrimSpace(symbol) == "" {
		return models.QuoteNotFoundResult()
	}
	return models.QuoteFoundResult(g.Quote(symbol))
}

// SearchSymbols implements QuoteProvider. Keywords matching mock table
// symbols or names return those entries; anything else returns a single
// synthesized match for the keyword itself.
func (g *Generator) SearchSymbols(_ context.Context, keywords string) models.SymbolSearchResult {
	kw := strings.ToUpper(strings.TrimSpace(keywords))
	if kw == "" {
		return models.SymbolSearchResult{Status: models.SearchEmpty}
	}

	var matches []models.SymbolMatch
	for _, sym := range mockSymbols {
		e := mockTable[sym]
		if strings.HasPrefix(sym, kw) || strings.Contains(strings.ToUpper(e.name), kw) {
			matches = append(matches, models.SymbolMatch{
				Symbol:   sym,
				Name:     e.name,
				Type:     "Equity",
				Region:   "United States",
				Currency: "USD",
			})
		}
	}
	if len(matches) == 0 {
		matches = append(matches, models.SymbolMatch{
			Symbol:   kw,
			Name:     kw + " Corporation",
			Type:     "Equity",
			Region:   "United States",
			Currency: "USD",
		})
	}
	return models.SymbolSearchResult{Status: models.SearchMatched, Matches: matches}
}

// mockSymbols fixes the iteration order over mockTable.
var mockSymbols = []string{"AAPL", "AMZN", "GOOGL", "MSFT", "TSLA"}

// timeframeParams maps a timeframe to its sample count, sample spacing and
// per-step volatility.
type timeframeParams struct {
	periods    int
	step       time.Duration
	volatility float64
}

var timeframes = map[string]timeframeParams{
	"1D": {periods: 24, step: time.Hour, volatility: 0.02},
	"1W": {periods: 7, step: 24 * time.Hour, volatility: 0.03},
	"1M": {periods: 30, step: 24 * time.Hour, volatility: 0.05},
	"3M": {periods: 90, step: 24 * time.Hour, volatility: 0.08},
	"6M": {periods: 180, step: 24 * time.Hour, volatility: 0.12},
	"1Y": {periods: 365, step: 24 * time.Hour, volatility: 0.18},
}

// DefaultTimeframe is used for unrecognised timeframe values.
const DefaultTimeframe = "1M"

// DefaultStartValue seeds the performance series of an empty portfolio.
const DefaultStartValue = 100000.0

// trendWeight scales the sinusoidal drift added to each step.
const trendWeight = 0.01

// NormalizeTimeframe returns the canonical timeframe key, or DefaultTimeframe.
func NormalizeTimeframe(tf string) string {
	tf = strings.ToUpper(strings.TrimSpace(tf))
	if _, ok := timeframes[tf]; ok {
		return tf
	}
	return DefaultTimeframe
}

// PerformanceSeries builds a random walk ending at the current time. Each step
// multiplies the value by 1 + noise*volatility + sin(i/periods*pi)*trendWeight.
func (g *Generator) PerformanceSeries(timeframe string, startValue float64) *models.PerformanceSeries {
	timeframe = NormalizeTimeframe(timeframe)
	p := timeframes[timeframe]
	if startValue <= 0 {
		startValue = DefaultStartValue
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	end := g.now()
	points := make([]models.PerformancePoint, 0, p.periods+1)
	value := startValue
	for i := p.periods; i >= 0; i-- {
		step := p.periods - i
		if step > 0 {
			noise := g.centered(p.volatility)
			trend := math.Sin(float64(step)/float64(p.periods)*math.Pi) * trendWeight
			value *= 1 + noise + trend
		}
		points = append(points, models.PerformancePoint{
			Date:   end.Add(-time.Duration(i) * p.step),
			Value:  round(value, 2),
			Return: round((value-startValue)/startValue*100, 2),
		})
	}

	return &models.PerformanceSeries{
		Timeframe: timeframe,
		Data:      points,
		Summary: models.PerformanceSummary{
			Return:      points[len(points)-1].Return,
			Volatility:  round(g.rng.Float64()*20+10, 2),
			Sharpe:      round(g.rng.Float64()*2+0.5, 2),
			MaxDrawdown: round(-(g.rng.Float64()*15 + 5), 2),
		},
	}
}

// RiskMetrics returns placeholder risk figures centered on market-like values.
func (g *Generator) RiskMetrics() models.RiskMetrics {
	g.mu.Lock()
	defer g.mu.Unlock()
	return models.RiskMetrics{
		Beta:        round(1+g.centered(0.3), 2),
		SharpeRatio: round(1+g.centered(1), 2),
		Volatility:  round(15+g.centered(10), 1),
		MaxDrawdown: round(-(5 + g.centered(10)), 1),
	}
}

// PriceTarget returns a price target uniformly drawn from [low, low+spread),
// rounded to cents.
func (g *Generator) PriceTarget(low, spread float64) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return round(g.rng.Float64()*spread+low, 2)
}

// Float64 returns a uniform draw in [0, 1).
func (g *Generator) Float64() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Float64()
}

func round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
