package interfaces

import (
	"context"

	"github.com/bobmcallan/folio/internal/models"
)

// MarketService provides the market overview and stock search
type MarketService interface {
	// GetOverview returns the three index proxies, defaulting missing entries
	GetOverview(ctx context.Context) (*models.MarketOverview, error)

	// SearchStocks resolves a query through live quotes, symbol search and
	// synthetic data. The result is never empty for a non-empty query.
	SearchStocks(ctx context.Context, query string) (*models.StockSearchResult, error)

	// ResolveQuote returns a live quote, falling back to the mock table.
	// Returns nil when neither source knows the symbol.
	ResolveQuote(ctx context.Context, symbol string) (*models.StockQuote, string, error)
}

// NewsService provides the curated news feed
type NewsService interface {
	Feed(ctx context.Context, category string, limit int, plan models.SubscriptionPlan) (*models.NewsPage, error)
}

// PortfolioService manages holdings and derived portfolio views
type PortfolioService interface {
	Holdings(ctx context.Context, userID string, plan models.SubscriptionPlan) ([]models.DisplayHolding, error)
	AddHolding(ctx context.Context, userID string, plan models.SubscriptionPlan, input models.NewHolding) (*models.Holding, error)
	RemoveHolding(ctx context.Context, userID, holdingID string) error
	Summary(ctx context.Context, userID string, plan models.SubscriptionPlan) (*models.PortfolioSummary, error)
	Sectors(ctx context.Context, userID string, plan models.SubscriptionPlan) ([]models.SectorAllocation, error)
	Performance(ctx context.Context, userID string, plan models.SubscriptionPlan, timeframe string) (*models.PerformanceSeries, error)
	RenderPerformanceChart(series *models.PerformanceSeries) ([]byte, error)
}

// InsightService produces AI recommendations and sentiment analysis
type InsightService interface {
	Recommendations(ctx context.Context, plan models.SubscriptionPlan) *models.RecommendationsResponse
	EnhancedRecommendations(ctx context.Context, plan models.SubscriptionPlan) (*models.RecommendationsResponse, error)
	StockInsights(ctx context.Context, symbol string, plan models.SubscriptionPlan) (*models.StockInsightsResponse, error)
	AnalyzeSentiment(ctx context.Context, text string) (*models.SentimentResponse, error)
}

// AccountService manages registration, profiles and plan changes
type AccountService interface {
	Register(ctx context.Context, email, password, fullName string) (*models.InternalUser, *models.Profile, error)
	Authenticate(ctx context.Context, email, password string) (*models.InternalUser, error)
	Profile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID, fullName string) (*models.Profile, error)
	Preferences(ctx context.Context, userID string) (*models.Preferences, error)
	UpdatePreferences(ctx context.Context, userID string, prefs *models.Preferences) (*models.Preferences, error)
	Upgrade(ctx context.Context, userID, plan string) (*models.Profile, error)
}
