package synthetic

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/folio/internal/models"
)

func TestMockQuote_KnownSymbolStaysInBand(t *testing.T) {
	g := NewGenerator(42)
	for i := 0; i < 200; i++ {
		q, ok := g.MockQuote("aapl")
		require.True(t, ok)
		assert.Equal(t, "AAPL", q.Symbol)
		assert.Equal(t, "Apple Inc.", q.Name)
		assert.GreaterOrEqual(t, q.Price, 170.25)
		assert.Less(t, q.Price, 180.25)
		assert.LessOrEqual(t, q.Change, 2.5)
		assert.GreaterOrEqual(t, q.Change, -2.5)
	}
}

func TestMockQuote_UnknownSymbol(t *testing.T) {
	g := NewGenerator(1)
	_, ok := g.MockQuote("ZZZZ")
	assert.False(t, ok)
}

func TestSynthesizeQuote_DefaultName(t *testing.T) {
	g := NewGenerator(7)
	q := g.SynthesizeQuote("xyz", "")
	assert.Equal(t, "XYZ", q.Symbol)
	assert.Equal(t, "XYZ Corporation", q.Name)
	assert.GreaterOrEqual(t, q.Price, 50.0)
	assert.Less(t, q.Price, 250.0)

	named := g.SynthesizeQuote("IBM", "International Business Machines")
	assert.Equal(t, "International Business Machines", named.Name)
}

func TestNewGenerator_SameSeedSameSequence(t *testing.T) {
	a := NewGenerator(99)
	b := NewGenerator(99)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestGetQuote_AlwaysFound(t *testing.T) {
	g := NewGenerator(3)
	res := g.GetQuote(context.Background(), "MSFT")
	require.True(t, res.Found())
	assert.Equal(t, "Microsoft Corporation", res.Quote.Name)

	res = g.GetQuote(context.Background(), "NEWCO")
	require.True(t, res.Found())
	assert.Equal(t, "NEWCO Corporation", res.Quote.Name)

	res = g.GetQuote(context.Background(), "  ")
	assert.Equal(t, models.QuoteNotFound, res.Status)
}

func TestSearchSymbols(t *testing.T) {
	g := NewGenerator(3)
	ctx := context.Background()

	res := g.SearchSymbols(ctx, "apple")
	require.Equal(t, models.SearchMatched, res.Status)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, "AAPL", res.Matches[0].Symbol)

	res = g.SearchSymbols(ctx, "a")
	require.Equal(t, models.SearchMatched, res.Status)
	// AAPL and AMZN by symbol prefix, plus names containing "A"
	assert.GreaterOrEqual(t, len(res.Matches), 2)
	assert.Equal(t, "AAPL", res.Matches[0].Symbol)

	res = g.SearchSymbols(ctx, "qqqx")
	require.Len(t, res.Matches, 1)
	assert.Equal(t, "QQQX", res.Matches[0].Symbol)
	assert.Equal(t, "QQQX Corporation", res.Matches[0].Name)

	res = g.SearchSymbols(ctx, "")
	assert.Equal(t, models.SearchEmpty, res.Status)
}

func TestPerformanceSeries_Shape(t *testing.T) {
	g := NewGenerator(11)
	fixed := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return fixed }

	tests := []struct {
		timeframe string
		want      string
		points    int
		step      time.Duration
	}{
		{"1D", "1D", 25, time.Hour},
		{"1w", "1W", 8, 24 * time.Hour},
		{"1M", "1M", 31, 24 * time.Hour},
		{"1Y", "1Y", 366, 24 * time.Hour},
		{"bogus", "1M", 31, 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.timeframe, func(t *testing.T) {
			s := g.PerformanceSeries(tt.timeframe, 50000)
			assert.Equal(t, tt.want, s.Timeframe)
			require.Len(t, s.Data, tt.points)
			assert.Equal(t, 50000.0, s.Data[0].Value)
			assert.Equal(t, 0.0, s.Data[0].Return)
			assert.Equal(t, fixed, s.Data[len(s.Data)-1].Date)
			assert.Equal(t, tt.step, s.Data[1].Date.Sub(s.Data[0].Date))
			assert.Equal(t, s.Data[len(s.Data)-1].Return, s.Summary.Return)
			assert.GreaterOrEqual(t, s.Summary.Volatility, 10.0)
			assert.Less(t, s.Summary.MaxDrawdown, 0.0)
		})
	}
}

func TestPerformanceSeries_EmptyPortfolioStartsAtDefault(t *testing.T) {
	g := NewGenerator(5)
	s := g.PerformanceSeries("1W", 0)
	assert.Equal(t, DefaultStartValue, s.Data[0].Value)
}

func TestRiskMetrics_Bands(t *testing.T) {
	g := NewGenerator(8)
	for i := 0; i < 100; i++ {
		m := g.RiskMetrics()
		assert.InDelta(t, 1.0, m.Beta, 0.151)
		assert.InDelta(t, 15.0, m.Volatility, 5.05)
		assert.LessOrEqual(t, m.MaxDrawdown, 0.0)
	}
}

func TestPriceTarget_Range(t *testing.T) {
	g := NewGenerator(8)
	for i := 0; i < 100; i++ {
		v := g.PriceTarget(150, 50)
		assert.GreaterOrEqual(t, v, 150.0)
		assert.LessOrEqual(t, v, 200.0)
	}
}

func TestKnownName(t *testing.T) {
	name, ok := KnownName("amzn")
	assert.True(t, ok)
	assert.Equal(t, "Amazon.com Inc.", name)
	assert.False(t, IsKnown("IBM"))
}
