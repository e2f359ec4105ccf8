package models

import "time"

// Insight types
const (
	InsightRecommendation    = "recommendation"
	InsightRiskAlert         = "risk_alert"
	InsightOpportunity       = "opportunity"
	InsightMarketSentiment   = "market_sentiment"
	InsightTradingSignal     = "trading_signal"
	InsightTechnicalAnalysis = "technical_analysis"
	InsightNewsSentiment     = "news_sentiment"
)

// Impact levels
const (
	ImpactHigh   = "high"
	ImpactMedium = "medium"
	ImpactLow    = "low"
)

// AIInsight is a generated recommendation card. Not persisted.
type AIInsight struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Confidence  int      `json:"confidence"`
	Impact      string   `json:"impact"`
	Symbol      string   `json:"symbol,omitempty"`
	Action      string   `json:"action,omitempty"`
	PriceTarget *float64 `json:"priceTarget,omitempty"`
	Timeframe   string   `json:"timeframe,omitempty"`
	Reasoning   []string `json:"reasoning"`
}

// MarketSentimentSummary holds bullish/bearish/neutral percentages.
// The three shares are expected to total roughly 100.
type MarketSentimentSummary struct {
	Overall          int    `json:"overall"`
	Bullish          int    `json:"bullish"`
	Bearish          int    `json:"bearish"`
	Neutral          int    `json:"neutral"`
	AnalysisSource   string `json:"analysisSource,omitempty"`
	ArticlesAnalyzed *int   `json:"articlesAnalyzed,omitempty"`
}

// RecommendationsResponse is the body of both recommendation endpoints.
type RecommendationsResponse struct {
	Recommendations []AIInsight            `json:"recommendations"`
	MarketSentiment MarketSentimentSummary `json:"marketSentiment"`
	LastUpdated     time.Time              `json:"lastUpdated"`
}

// Sentiment labels
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// LabelScore is one raw label/score pair from a classifier.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// SentimentResult is a normalized classification of a text.
// Score is signed: positive confidence as returned, negative negated, neutral 0.
type SentimentResult struct {
	Sentiment  string       `json:"sentiment"`
	Score      float64      `json:"score"`
	Confidence float64      `json:"confidence"`
	Model      string       `json:"-"`
	RawLabel   string       `json:"-"`
	Raw        []LabelScore `json:"-"`
}

// SentimentDetails is the diagnostic block of the sentiment endpoint.
type SentimentDetails struct {
	RawResults []LabelScore `json:"rawResults,omitempty"`
	Model      string       `json:"model,omitempty"`
	Error      string       `json:"error,omitempty"`
}

// SentimentResponse is the body of the sentiment endpoint.
type SentimentResponse struct {
	Sentiment  string           `json:"sentiment"`
	Score      float64          `json:"score"`
	Confidence float64          `json:"confidence"`
	Details    SentimentDetails `json:"details"`
}

// AnalyzedArticle is an article with its classified sentiment.
type AnalyzedArticle struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Sentiment string `json:"sentiment"`
	URL       string `json:"url"`
}

// NewsAnalysis is the per-stock news sentiment breakdown.
type NewsAnalysis struct {
	TotalArticlesAnalyzed int               `json:"totalArticlesAnalyzed"`
	PositivePercent       float64           `json:"positivePercent"`
	NeutralPercent        float64           `json:"neutralPercent"`
	NegativePercent       float64           `json:"negativePercent"`
	RecentArticles        []AnalyzedArticle `json:"recentArticles"`
}

// StockInsightsResponse is the body of the per-stock insights endpoint.
// The error fields are diagnostic and carry the raw provider failure.
type StockInsightsResponse struct {
	Symbol                 string        `json:"symbol"`
	Plan                   string        `json:"plan"`
	Insights               []AIInsight   `json:"insights"`
	NewsAnalysis           *NewsAnalysis `json:"newsAnalysis"`
	NewsFetchError         string        `json:"newsFetchError,omitempty"`
	SentimentAnalysisError string        `json:"sentimentAnalysisError,omitempty"`
	LastUpdated            time.Time     `json:"lastUpdated"`
}
