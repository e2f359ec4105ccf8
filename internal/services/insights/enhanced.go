package insights

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/plan"
)

const (
	// marketNewsQuery selects the articles behind the market wide sentiment
	marketNewsQuery = "stock market OR finance OR investment"
	marketNewsCount = 10
	// marketScoreCount is how many of the fetched articles are classified
	marketScoreCount = 5

	analysisSource = "Hugging Face AI + News API"
)

// Overall market labels
const (
	Bullish = "bullish"
	Bearish = "bearish"
	Neutral = "neutral"
)

// EnhancedRecommendations classifies recent finance news and builds insights
// whose content follows the majority label. Requires both the news and
// sentiment providers.
func (s *Service) EnhancedRecommendations(ctx context.Context, p models.SubscriptionPlan) (*models.RecommendationsResponse, error) {
	if s.news == nil || s.sentiment == nil {
		return nil, fmt.Errorf("enhanced recommendations: %w", common.ErrNotConfigured)
	}

	page, err := s.news.SearchNews(ctx, models.NewsQuery{Query: marketNewsQuery, PageSize: marketNewsCount})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch market news: %w", err)
	}

	scored, _ := s.classify(ctx, s.sentiment, plan.Cap(page.Articles, marketScoreCount))
	pos, neg, _ := tally(scored)
	n := len(scored)
	overall := majority(pos, neg)

	s.logger.Info().Int("analyzed", n).Int("positive", pos).Int("negative", neg).Str("overall", overall).Msg("Market sentiment analysed")

	recs := []models.AIInsight{{
		ID:          "ai_sentiment_1",
		Type:        models.InsightMarketSentiment,
		Title:       "Market Sentiment: " + titleCase(overall),
		Description: fmt.Sprintf("Based on AI analysis of recent financial news, market sentiment appears %s. %d positive vs %d negative signals detected.", overall, pos, neg),
		Confidence:  majorityConfidence(pos, neg, n),
		Impact:      models.ImpactHigh,
		Reasoning: []string{
			fmt.Sprintf("Analyzed %d recent news articles", n),
			fmt.Sprintf("Sentiment distribution: %d positive, %d negative", pos, neg),
			"AI model: " + s.sentiment.Model(),
		},
	}}

	if plan.Unlocked(p, models.PlanPremium) {
		recs = append(recs, models.AIInsight{
			ID:          "ai_enhanced_2",
			Type:        models.InsightRecommendation,
			Title:       "AI-Enhanced Portfolio Suggestion",
			Description: portfolioSuggestion(overall),
			Confidence:  82,
			Impact:      models.ImpactMedium,
			Reasoning:   []string{"Real-time sentiment analysis", "Market trend correlation", "Risk-adjusted recommendations"},
		})
	}
	if plan.Unlocked(p, models.PlanPro) {
		recs = append(recs, models.AIInsight{
			ID:          "ai_pro_3",
			Type:        models.InsightTradingSignal,
			Title:       "AI Trading Signal",
			Description: "Advanced AI models detect potential breakout patterns in large-cap technology stocks with 85% historical accuracy.",
			Confidence:  85,
			Impact:      models.ImpactHigh,
			Reasoning:   []string{"Multi-model ensemble prediction", "Technical pattern recognition", "Sentiment-momentum correlation"},
		})
	}

	return &models.RecommendationsResponse{
		Recommendations: recs,
		MarketSentiment: marketSentiment(pos, neg, n),
		LastUpdated:     s.now().UTC(),
	}, nil
}

func majority(pos, neg int) string {
	switch {
	case pos > neg:
		return Bullish
	case neg > pos:
		return Bearish
	}
	return Neutral
}

// majorityConfidence is the winning share in percent, or 70 when nothing
// was classified or no article was polar.
func majorityConfidence(pos, neg, n int) int {
	top := max(pos, neg)
	if n == 0 || top == 0 {
		return 70
	}
	return percent(top, n)
}

// marketSentiment converts counts to percentages. With no classified
// articles the shares default to 50/30/20; with no polar articles the
// overall score defaults to 50.
func marketSentiment(pos, neg, n int) models.MarketSentimentSummary {
	analyzed := n
	summary := models.MarketSentimentSummary{
		Overall:          50,
		Bullish:          50,
		Bearish:          30,
		Neutral:          20,
		AnalysisSource:   analysisSource,
		ArticlesAnalyzed: &analyzed,
	}
	if n == 0 {
		return summary
	}
	if pos+neg > 0 {
		summary.Overall = percent(pos, pos+neg)
	}
	summary.Bullish = percent(pos, n)
	summary.Bearish = percent(neg, n)
	summary.Neutral = percent(n-pos-neg, n)
	return summary
}

func portfolioSuggestion(overall string) string {
	switch overall {
	case Bullish:
		return "Current market sentiment suggests increasing exposure to growth stocks and technology sector."
	case Bearish:
		return "Market sentiment indicates defensive positioning with utilities and consumer staples."
	}
	return "Mixed market signals suggest maintaining balanced portfolio allocation."
}

func percent(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
