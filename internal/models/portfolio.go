package models

import "time"

// Portfolio is the container a user's holdings belong to.
type Portfolio struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Holding is a persisted position in a portfolio.
type Holding struct {
	ID            string    `json:"id"`
	PortfolioID   string    `json:"portfolio_id"`
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Shares        float64   `json:"shares"`
	PurchasePrice float64   `json:"purchase_price"`
	CreatedAt     time.Time `json:"created_at"`
}

// Quote sources for a DisplayHolding
const (
	QuoteSourceLive     = "live"
	QuoteSourceMock     = "mock"
	QuoteSourcePurchase = "purchase_price"
)

// DisplayHolding is a holding merged with its current quote.
// Value is Price*Shares; Gain is (Price-PurchasePrice)*Shares.
type DisplayHolding struct {
	Holding
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Value         float64 `json:"value"`
	Gain          float64 `json:"gain"`
	QuoteSource   string  `json:"quoteSource"`
}

// NewHolding is the caller supplied input for adding a position.
type NewHolding struct {
	Symbol        string
	Name          string
	Shares        float64
	PurchasePrice float64
}

// SectorAllocation is one slice of the sector breakdown. Change is the
// share-weighted daily change relative to the sector value, in percent.
type SectorAllocation struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
	Change     float64 `json:"change"`
	Color      string  `json:"color"`
}

// RiskMetrics are placeholder figures, randomly generated rather than computed.
type RiskMetrics struct {
	Beta        float64 `json:"beta"`
	SharpeRatio float64 `json:"sharpeRatio"`
	Volatility  float64 `json:"volatility"`
	MaxDrawdown float64 `json:"maxDrawdown"`
}

// PortfolioSummary aggregates the displayed holdings.
type PortfolioSummary struct {
	TotalValue       float64            `json:"totalValue"`
	TotalCost        float64            `json:"totalCost"`
	TotalGain        float64            `json:"totalGain"`
	TotalGainPercent float64            `json:"totalGainPercent"`
	HoldingsCount    int                `json:"holdingsCount"`
	Sectors          []SectorAllocation `json:"sectors"`
	RiskMetrics      RiskMetrics        `json:"riskMetrics"`
}

// PerformancePoint is one sample of a synthetic portfolio value series.
// Return is the cumulative percent return since the first sample.
type PerformancePoint struct {
	Date   time.Time `json:"date"`
	Value  float64   `json:"value"`
	Return float64   `json:"return"`
}

// PerformanceSummary describes a synthetic performance series. Only Return is
// derived from the series; the other figures are placeholders.
type PerformanceSummary struct {
	Return      float64 `json:"return"`
	Volatility  float64 `json:"volatility"`
	Sharpe      float64 `json:"sharpe"`
	MaxDrawdown float64 `json:"maxDrawdown"`
}

// PerformanceSeries is the response of the performance endpoint.
type PerformanceSeries struct {
	Timeframe string             `json:"timeframe"`
	Data      []PerformancePoint `json:"data"`
	Summary   PerformanceSummary `json:"summary"`
}
