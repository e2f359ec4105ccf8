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

// stockNewsCount is how many articles are classified per symbol.
const stockNewsCount = 5

// NotConfiguredMessage is reported in place of a news analysis when either
// the news provider or the stock classifier has no key.
const NotConfiguredMessage = "News or sentiment provider not configured for detailed news analysis."

// StockInsights builds the per-symbol insight set. News and classifier
// problems are reported in the response rather than failing the request.
func (s *Service) StockInsights(ctx context.Context, symbol string, p models.SubscriptionPlan) (*models.StockInsightsResponse, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, common.NewValidationError("Stock symbol is required")
	}

	resp := &models.StockInsightsResponse{
		Symbol: symbol,
		Plan:   string(p),
	}

	model := ""
	if s.news == nil || s.classifier == nil {
		resp.NewsFetchError = NotConfiguredMessage
		s.logger.Warn().Str("symbol", symbol).Msg(NotConfiguredMessage)
	} else {
		model = s.classifier.Model()
		resp.NewsAnalysis, resp.NewsFetchError, resp.SentimentAnalysisError = s.analyzeStockNews(ctx, symbol)
	}

	resp.Insights = s.stockInsights(symbol, p, resp.NewsAnalysis, model)
	resp.LastUpdated = s.now().UTC()
	return resp, nil
}

// analyzeStockNews fetches and classifies the symbol's recent news. The
// analysis is nil when no article could be classified.
func (s *Service) analyzeStockNews(ctx context.Context, symbol string) (*models.NewsAnalysis, string, string) {
	page, err := s.news.SearchNews(ctx, models.NewsQuery{Query: symbol, PageSize: stockNewsCount})
	if err != nil {
		s.logger.Warn().Str("symbol", symbol).Err(err).Msg("Stock news fetch failed")
		return nil, fmt.Sprintf("News fetch failed: %v", err), ""
	}

	articles := plan.Cap(page.Articles, stockNewsCount)
	if len(articles) == 0 {
		return nil, "", ""
	}

	scored, lastErr := s.classify(ctx, s.classifier, articles)
	if len(scored) == 0 {
		return nil, "", fmt.Sprintf("Sentiment analysis failed for all %d articles: %v", len(articles), lastErr)
	}

	pos, neg, neu := tally(scored)
	n := float64(len(scored))
	analysis := &models.NewsAnalysis{
		TotalArticlesAnalyzed: len(scored),
		PositivePercent:       round1(float64(pos) / n * 100),
		NeutralPercent:        round1(float64(neu) / n * 100),
		NegativePercent:       round1(float64(neg) / n * 100),
		RecentArticles:        make([]models.AnalyzedArticle, 0, len(scored)),
	}
	for _, c := range scored {
		analysis.RecentArticles = append(analysis.RecentArticles, models.AnalyzedArticle{
			Title:     c.article.Title,
			Summary:   c.article.Summary,
			Sentiment: c.label,
			URL:       c.article.URL,
		})
	}
	return analysis, "", ""
}

func (s *Service) stockInsights(symbol string, p models.SubscriptionPlan, analysis *models.NewsAnalysis, model string) []models.AIInsight {
	insights := []models.AIInsight{sentimentInsight(symbol, analysis, model)}

	if plan.Unlocked(p, models.PlanPremium) {
		technical := s.synthetic.PriceTarget(150, 50)
		earnings := s.synthetic.PriceTarget(180, 30)
		insights = append(insights,
			models.AIInsight{
				ID:          symbol + "_technical",
				Type:        models.InsightTechnicalAnalysis,
				Title:       "Technical Breakout Pattern Detected",
				Description: fmt.Sprintf("%s is showing signs of a potential breakout above key resistance levels. Volume patterns suggest institutional accumulation.", symbol),
				Confidence:  78,
				Impact:      models.ImpactHigh,
				Action:      "watch",
				PriceTarget: &technical,
				Timeframe:   "2-4 weeks",
				Reasoning: []string{
					"Price approaching 20-day moving average resistance",
					"Volume 25% above average in last 5 days",
					"RSI showing bullish divergence",
					"MACD crossover signal detected",
				},
			},
			models.AIInsight{
				ID:          symbol + "_opportunity",
				Type:        models.InsightOpportunity,
				Title:       "Earnings Season Opportunity",
				Description: fmt.Sprintf("Historical analysis suggests %s typically outperforms during earnings season. Current valuation appears attractive relative to sector peers.", symbol),
				Confidence:  82,
				Impact:      models.ImpactMedium,
				Action:      "buy",
				PriceTarget: &earnings,
				Timeframe:   "1-3 months",
				Reasoning: []string{
					"Trading below historical P/E ratio",
					"Earnings estimates trending upward",
					"Sector rotation favoring this industry",
					"Options flow showing bullish positioning",
				},
			},
		)
	}

	if plan.Unlocked(p, models.PlanPro) {
		forecast := s.synthetic.PriceTarget(200, 40)
		insights = append(insights,
			models.AIInsight{
				ID:          symbol + "_ai_forecast",
				Type:        models.InsightRecommendation,
				Title:       "AI Price Forecast Model",
				Description: fmt.Sprintf("Advanced machine learning models predict %s has 85%% probability of reaching new highs within 3 months based on multi-factor analysis.", symbol),
				Confidence:  85,
				Impact:      models.ImpactHigh,
				Action:      "buy",
				PriceTarget: &forecast,
				Timeframe:   "3 months",
				Reasoning: []string{
					"Multi-model ensemble prediction",
					"Fundamental analysis integration",
					"Market microstructure analysis",
					"Alternative data correlation",
					"Options flow and dark pool activity",
				},
			},
			models.AIInsight{
				ID:          symbol + "_risk_assessment",
				Type:        models.InsightRiskAlert,
				Title:       "Portfolio Risk Assessment",
				Description: fmt.Sprintf("Current position size in %s represents optimal allocation based on your risk profile. Consider rebalancing if position exceeds 8%% of total portfolio.", symbol),
				Confidence:  90,
				Impact:      models.ImpactMedium,
				Timeframe:   "Ongoing",
				Reasoning: []string{
					"Portfolio correlation analysis",
					"Risk-adjusted return optimization",
					"Volatility clustering detection",
					"Sector concentration limits",
					"Drawdown protection protocols",
				},
			},
		)
	}
	return insights
}

// sentimentInsight summarises the news analysis, or describes general
// conditions when there is none.
func sentimentInsight(symbol string, a *models.NewsAnalysis, model string) models.AIInsight {
	insight := models.AIInsight{
		ID:        symbol + "_sentiment",
		Type:      models.InsightNewsSentiment,
		Title:     "News Sentiment Analysis for " + symbol,
		Impact:    models.ImpactMedium,
		Timeframe: "1-2 weeks",
	}

	if a == nil {
		insight.Description = fmt.Sprintf("Market sentiment for %s appears stable based on general market conditions and trading patterns.", symbol)
		insight.Confidence = 70
		insight.Reasoning = []string{"General market sentiment analysis", "Technical indicator correlation", "Historical pattern recognition"}
		return insight
	}

	label := models.SentimentNeutral
	switch {
	case a.PositivePercent > a.NegativePercent:
		label = models.SentimentPositive
	case a.NegativePercent > a.PositivePercent:
		label = models.SentimentNegative
	}

	insight.Description = fmt.Sprintf("Recent news analysis shows %s sentiment. Analyzed %d articles.", label, a.TotalArticlesAnalyzed)
	insight.Confidence = int(math.Round(max(a.PositivePercent, a.NegativePercent, a.NeutralPercent)))
	insight.Reasoning = []string{
		fmt.Sprintf("Analyzed %d recent news articles", a.TotalArticlesAnalyzed),
		fmt.Sprintf("Sentiment distribution: %s%% positive, %s%% negative, %s%% neutral",
			formatPercent(a.PositivePercent), formatPercent(a.NegativePercent), formatPercent(a.NeutralPercent)),
		"AI sentiment model: " + model,
	}
	return insight
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// formatPercent prints a one-decimal percentage without a trailing ".0".
func formatPercent(v float64) string {
	return strings.TrimSuffix(fmt.Sprintf("%.1f", v), ".0")
}
