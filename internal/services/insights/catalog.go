package insights

import (
	"context"

	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/plan"
)

var baseCatalog = []models.AIInsight{
	{
		ID:          "1",
		Type:        models.InsightRecommendation,
		Title:       "Strong Buy Signal for AAPL",
		Description: "Technical indicators and sentiment analysis suggest Apple stock is undervalued with strong upward momentum expected.",
		Confidence:  85,
		Impact:      models.ImpactHigh,
		Symbol:      "AAPL",
		Action:      "buy",
		Reasoning: []string{
			"RSI indicates oversold conditions",
			"Positive earnings surprise expected",
			"Strong institutional buying",
		},
	},
	{
		ID:          "2",
		Type:        models.InsightRiskAlert,
		Title:       "High Volatility Warning",
		Description: "Market volatility is expected to increase due to upcoming Federal Reserve announcements.",
		Confidence:  78,
		Impact:      models.ImpactMedium,
		Reasoning:   []string{"FOMC meeting scheduled", "Economic data releases pending", "Options expiration approaching"},
	},
}

var premiumCatalog = []models.AIInsight{
	{
		ID:          "3",
		Type:        models.InsightOpportunity,
		Title:       "Sector Rotation Opportunity",
		Description: "Healthcare sector showing signs of recovery with several stocks presenting attractive entry points.",
		Confidence:  72,
		Impact:      models.ImpactMedium,
		Reasoning: []string{
			"Sector underperformance creating value",
			"Regulatory clarity improving",
			"Demographic trends favorable",
		},
	},
	{
		ID:          "4",
		Type:        models.InsightMarketSentiment,
		Title:       "Bullish Market Sentiment",
		Description: "Overall market sentiment remains positive with 68% of analyzed news articles showing bullish indicators.",
		Confidence:  91,
		Impact:      models.ImpactHigh,
		Reasoning:   []string{"News sentiment analysis", "Social media trends", "Institutional positioning"},
	},
}

var proCatalog = []models.AIInsight{
	{
		ID:          "5",
		Type:        models.InsightTradingSignal,
		Title:       "Automated Trading Signal: TSLA",
		Description: "Algorithm detected breakout pattern in Tesla with high probability of continued upward movement.",
		Confidence:  88,
		Impact:      models.ImpactHigh,
		Symbol:      "TSLA",
		Action:      "buy",
		Reasoning:   []string{"Technical breakout confirmed", "Volume surge detected", "Momentum indicators aligned"},
	},
}

// cannedSentiment is the fixed market sentiment reported with the catalog.
var cannedSentiment = models.MarketSentimentSummary{Overall: 68, Bullish: 68, Bearish: 22, Neutral: 10}

// Recommendations returns the canned insight catalog filtered by plan tier.
func (s *Service) Recommendations(_ context.Context, p models.SubscriptionPlan) *models.RecommendationsResponse {
	recs := append([]models.AIInsight{}, baseCatalog...)
	if plan.Unlocked(p, models.PlanPremium) {
		recs = append(recs, premiumCatalog...)
	}
	if plan.Unlocked(p, models.PlanPro) {
		recs = append(recs, proCatalog...)
	}
	return &models.RecommendationsResponse{
		Recommendations: recs,
		MarketSentiment: cannedSentiment,
		LastUpdated:     s.now().UTC(),
	}
}
