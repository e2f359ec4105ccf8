package portfolio

import (
	"context"
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

// Sector names
const (
	SectorTechnology = "Technology"
	SectorHealthcare = "Healthcare"
	SectorFinance    = "Finance"
	SectorConsumer   = "Consumer"
	SectorEnergy     = "Energy"
	SectorOther      = "Other"
)

var symbolSectors = map[string]string{
	"AAPL":  SectorTechnology,
	"MSFT":  SectorTechnology,
	"GOOGL": SectorTechnology,
	"AMZN":  SectorTechnology,
	"TSLA":  SectorTechnology,
	"JNJ":   SectorHealthcare,
	"PFE":   SectorHealthcare,
	"JPM":   SectorFinance,
	"BAC":   SectorFinance,
	"KO":    SectorConsumer,
	"PG":    SectorConsumer,
	"XOM":   SectorEnergy,
	"CVX":   SectorEnergy,
}

var sectorColors = map[string]string{
	SectorTechnology: "#3B82F6",
	SectorHealthcare: "#10B981",
	SectorFinance:    "#F59E0B",
	SectorConsumer:   "#EF4444",
	SectorEnergy:     "#8B5CF6",
	"Industrial":     "#06B6D4",
	"Utilities":      "#6D28D9",
	"Real Estate":    "#D97706",
	SectorOther:      "#6B7280",
}

// SectorFor returns the sector bucket of a symbol.
func SectorFor(symbol string) string {
	if s, ok := symbolSectors[symbol]; ok {
		return s
	}
	return SectorOther
}

// Summary totals the displayed holdings and attaches the sector breakdown
// and placeholder risk metrics.
func (s *Service) Summary(ctx context.Context, userID string, p models.SubscriptionPlan) (*models.PortfolioSummary, error) {
	holdings, err := s.Holdings(ctx, userID, p)
	if err != nil {
		return nil, err
	}

	value := decimal.Zero
	cost := decimal.Zero
	for _, h := range holdings {
		shares := decimal.NewFromFloat(h.Shares)
		value = value.Add(decimal.NewFromFloat(h.Price).Mul(shares))
		cost = cost.Add(decimal.NewFromFloat(h.PurchasePrice).Mul(shares))
	}
	gain := value.Sub(cost)
	gainPct := decimal.Zero
	if cost.IsPositive() {
		gainPct = gain.Div(cost).Mul(decimal.NewFromInt(100))
	}

	return &models.PortfolioSummary{
		TotalValue:       value.Round(2).InexactFloat64(),
		TotalCost:        cost.Round(2).InexactFloat64(),
		TotalGain:        gain.Round(2).InexactFloat64(),
		TotalGainPercent: gainPct.Round(2).InexactFloat64(),
		HoldingsCount:    len(holdings),
		Sectors:          allocate(holdings),
		RiskMetrics:      s.synthetic.RiskMetrics(),
	}, nil
}

// Sectors returns the sector breakdown of the displayed holdings.
func (s *Service) Sectors(ctx context.Context, userID string, p models.SubscriptionPlan) ([]models.SectorAllocation, error) {
	holdings, err := s.Holdings(ctx, userID, p)
	if err != nil {
		return nil, err
	}
	return allocate(holdings), nil
}

// allocate buckets holdings by sector. Percentages and changes are rounded
// to one decimal; the result is sorted by percentage, largest first.
func allocate(holdings []models.DisplayHolding) []models.SectorAllocation {
	type bucket struct {
		value  decimal.Decimal
		change decimal.Decimal
	}

	total := decimal.Zero
	buckets := make(map[string]*bucket)
	for _, h := range holdings {
		name := SectorFor(h.Symbol)
		b, ok := buckets[name]
		if !ok {
			b = &bucket{value: decimal.Zero, change: decimal.Zero}
			buckets[name] = b
		}
		shares := decimal.NewFromFloat(h.Shares)
		v := decimal.NewFromFloat(h.Price).Mul(shares)
		b.value = b.value.Add(v)
		b.change = b.change.Add(decimal.NewFromFloat(h.Change).Mul(shares))
		total = total.Add(v)
	}

	hundred := decimal.NewFromInt(100)
	out := make([]models.SectorAllocation, 0, len(buckets))
	for name, b := range buckets {
		pct := decimal.Zero
		if total.IsPositive() {
			pct = b.value.Div(total).Mul(hundred)
		}
		denom := b.value
		if !denom.IsPositive() {
			denom = decimal.NewFromInt(1)
		}
		out = append(out, models.SectorAllocation{
			Name:       name,
			Value:      b.value.Round(2).InexactFloat64(),
			Percentage: pct.Round(1).InexactFloat64(),
			Change:     b.change.Div(denom).Mul(hundred).Round(1).InexactFloat64(),
			Color:      sectorColors[name],
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Percentage != out[j].Percentage {
			return out[i].Percentage > out[j].Percentage
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Performance returns a synthetic value series for the timeframe, seeded
// from the current portfolio value. Without a market data key the cost basis
// seeds the series; without a portfolio the default start value does.
func (s *Service) Performance(ctx context.Context, userID string, p models.SubscriptionPlan, timeframe string) (*models.PerformanceSeries, error) {
	start, err := s.currentValue(ctx, userID, p)
	if err != nil {
		return nil, err
	}
	return s.synthetic.PerformanceSeries(timeframe, start), nil
}

func (s *Service) currentValue(ctx context.Context, userID string, p models.SubscriptionPlan) (float64, error) {
	holdings, err := s.Holdings(ctx, userID, p)
	switch {
	case errors.Is(err, interfaces.ErrNotFound):
		return 0, nil
	case errors.Is(err, common.ErrNotConfigured):
		_, raw, lerr := s.portfolioHoldings(ctx, userID)
		if lerr != nil {
			return 0, lerr
		}
		var cost float64
		for _, h := range raw {
			cost += h.PurchasePrice * h.Shares
		}
		return cost, nil
	case err != nil:
		return 0, err
	}

	var total float64
	for _, h := range holdings {
		total += h.Value
	}
	return total, nil
}
