package insights

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/synthetic"
	testcommon "github.com/bobmcallan/folio/test/common"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(news *testcommon.MockNewsProvider, sentiment, classifier *testcommon.MockSentimentProvider) *Service {
	svc := NewService(nil, nil, nil, synthetic.NewGenerator(5), common.NewSilentLogger())
	if news != nil {
		svc.news = news
	}
	if sentiment != nil {
		svc.sentiment = sentiment
	}
	if classifier != nil {
		svc.classifier = classifier
	}
	svc.now = func() time.Time { return fixedNow }
	return svc
}

// labelledArticles returns articles whose titles carry the given labels.
func labelledArticles(labels ...string) []models.NewsArticle {
	out := testcommon.SampleArticles(len(labels))
	for i, l := range labels {
		out[i].Title = fmt.Sprintf("%s story %d", l, i)
	}
	return out
}

func polarMock() *testcommon.MockSentimentProvider {
	return &testcommon.MockSentimentProvider{
		Name: "cardiffnlp/twitter-roberta-base-sentiment-latest",
		Labels: map[string]string{
			"good": models.SentimentPositive,
			"bad":  models.SentimentNegative,
		},
	}
}

func ids(recs []models.AIInsight) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func TestRecommendations_TierFiltered(t *testing.T) {
	svc := newTestService(nil, nil, nil)
	ctx := context.Background()

	tests := []struct {
		plan models.SubscriptionPlan
		want []string
	}{
		{models.PlanFree, []string{"1", "2"}},
		{models.PlanPremium, []string{"1", "2", "3", "4"}},
		{models.PlanPro, []string{"1", "2", "3", "4", "5"}},
	}
	for _, tt := range tests {
		resp := svc.Recommendations(ctx, tt.plan)
		assert.Equal(t, tt.want, ids(resp.Recommendations), "plan %s", tt.plan)
		assert.Equal(t, models.MarketSentimentSummary{Overall: 68, Bullish: 68, Bearish: 22, Neutral: 10}, resp.MarketSentiment)
		assert.Equal(t, fixedNow, resp.LastUpdated)
	}
}

func TestEnhanced_NotConfigured(t *testing.T) {
	svc := newTestService(&testcommon.MockNewsProvider{}, nil, nil)
	_, err := svc.EnhancedRecommendations(context.Background(), models.PlanFree)
	assert.True(t, errors.Is(err, common.ErrNotConfigured))
}

func TestEnhanced_BullishMajority(t *testing.T) {
	news := &testcommon.MockNewsProvider{Articles: labelledArticles("good", "good", "good", "bad", "meh", "good", "good")}
	sent := polarMock()
	svc := newTestService(news, sent, nil)

	resp, err := svc.EnhancedRecommendations(context.Background(), models.PlanPro)
	require.NoError(t, err)

	// only the first five of the fetched articles are scored
	assert.Equal(t, 5, sent.Calls)
	require.Len(t, news.Queries, 1)
	assert.Equal(t, 10, news.Queries[0].PageSize)

	assert.Equal(t, []string{"ai_sentiment_1", "ai_enhanced_2", "ai_pro_3"}, ids(resp.Recommendations))
	first := resp.Recommendations[0]
	assert.Equal(t, "Market Sentiment: Bullish", first.Title)
	assert.Equal(t, 60, first.Confidence)
	assert.Contains(t, first.Description, "3 positive vs 1 negative")
	assert.Equal(t, "AI model: cardiffnlp/twitter-roberta-base-sentiment-latest", first.Reasoning[2])
	assert.Contains(t, resp.Recommendations[1].Description, "growth stocks")

	ms := resp.MarketSentiment
	assert.Equal(t, 75, ms.Overall)
	assert.Equal(t, 60, ms.Bullish)
	assert.Equal(t, 20, ms.Bearish)
	assert.Equal(t, 20, ms.Neutral)
	require.NotNil(t, ms.ArticlesAnalyzed)
	assert.Equal(t, 5, *ms.ArticlesAnalyzed)
	assert.Equal(t, "Hugging Face AI + News API", ms.AnalysisSource)
}

func TestEnhanced_AllClassificationsFail(t *testing.T) {
	news := &testcommon.MockNewsProvider{Articles: labelledArticles("good", "bad")}
	sent := &testcommon.MockSentimentProvider{Err: common.ErrProviderUnavailable}
	svc := newTestService(news, sent, nil)

	resp, err := svc.EnhancedRecommendations(context.Background(), models.PlanFree)
	require.NoError(t, err)
	require.Len(t, resp.Recommendations, 1)
	assert.Equal(t, "Market Sentiment: Neutral", resp.Recommendations[0].Title)
	assert.Equal(t, 70, resp.Recommendations[0].Confidence)

	ms := resp.MarketSentiment
	assert.Equal(t, 50, ms.Overall)
	assert.Equal(t, 50, ms.Bullish)
	assert.Equal(t, 30, ms.Bearish)
	assert.Equal(t, 20, ms.Neutral)
	assert.Equal(t, 0, *ms.ArticlesAnalyzed)
}

func TestEnhanced_BearishSuggestion(t *testing.T) {
	news := &testcommon.MockNewsProvider{Articles: labelledArticles("bad", "bad", "good")}
	svc := newTestService(news, polarMock(), nil)

	resp, err := svc.EnhancedRecommendations(context.Background(), models.PlanPremium)
	require.NoError(t, err)
	require.Len(t, resp.Recommendations, 2)
	assert.Equal(t, "Market Sentiment: Bearish", resp.Recommendations[0].Title)
	assert.Contains(t, resp.Recommendations[1].Description, "defensive positioning")
}

func TestEnhanced_NewsFailure(t *testing.T) {
	news := &testcommon.MockNewsProvider{Err: common.ErrProviderUnavailable}
	svc := newTestService(news, polarMock(), nil)

	_, err := svc.EnhancedRecommendations(context.Background(), models.PlanFree)
	assert.True(t, errors.Is(err, common.ErrProviderUnavailable))
}

func TestStockInsights_MissingSymbol(t *testing.T) {
	svc := newTestService(nil, nil, nil)
	_, err := svc.StockInsights(context.Background(), " ", models.PlanPro)
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestStockInsights_TierCounts(t *testing.T) {
	svc := newTestService(nil, nil, nil)
	ctx := context.Background()

	free, err := svc.StockInsights(ctx, "aapl", models.PlanFree)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL_sentiment"}, ids(free.Insights))
	assert.Equal(t, NotConfiguredMessage, free.NewsFetchError)
	assert.Nil(t, free.NewsAnalysis)
	assert.Equal(t, 70, free.Insights[0].Confidence)

	premium, err := svc.StockInsights(ctx, "AAPL", models.PlanPremium)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL_sentiment", "AAPL_technical", "AAPL_opportunity"}, ids(premium.Insights))
	require.NotNil(t, premium.Insights[1].PriceTarget)
	assert.GreaterOrEqual(t, *premium.Insights[1].PriceTarget, 150.0)
	assert.LessOrEqual(t, *premium.Insights[1].PriceTarget, 200.0)

	pro, err := svc.StockInsights(ctx, "AAPL", models.PlanPro)
	require.NoError(t, err)
	assert.Len(t, pro.Insights, 5)
	assert.Equal(t, "AAPL_risk_assessment", pro.Insights[4].ID)
	assert.Nil(t, pro.Insights[4].PriceTarget)
	assert.Equal(t, "pro", pro.Plan)
}

func TestStockInsights_NewsAnalysis(t *testing.T) {
	news := &testcommon.MockNewsProvider{Articles: labelledArticles("good", "good", "bad")}
	classifier := &testcommon.MockSentimentProvider{
		Name:   "groq/llama3-8b-8192",
		Labels: map[string]string{"good": models.SentimentPositive, "bad": models.SentimentNegative},
	}
	svc := newTestService(news, nil, classifier)

	resp, err := svc.StockInsights(context.Background(), "TSLA", models.PlanFree)
	require.NoError(t, err)
	assert.Equal(t, "TSLA", news.Queries[0].Query)
	assert.Equal(t, 5, news.Queries[0].PageSize)

	a := resp.NewsAnalysis
	require.NotNil(t, a)
	assert.Equal(t, 3, a.TotalArticlesAnalyzed)
	assert.Equal(t, 66.7, a.PositivePercent)
	assert.Equal(t, 33.3, a.NegativePercent)
	assert.Equal(t, 0.0, a.NeutralPercent)
	require.Len(t, a.RecentArticles, 3)
	assert.Equal(t, models.SentimentPositive, a.RecentArticles[0].Sentiment)

	insight := resp.Insights[0]
	assert.Equal(t, "Recent news analysis shows positive sentiment. Analyzed 3 articles.", insight.Description)
	assert.Equal(t, 67, insight.Confidence)
	assert.Equal(t, "Sentiment distribution: 66.7% positive, 33.3% negative, 0% neutral", insight.Reasoning[1])
	assert.Equal(t, "AI sentiment model: groq/llama3-8b-8192", insight.Reasoning[2])
	assert.Empty(t, resp.NewsFetchError)
	assert.Empty(t, resp.SentimentAnalysisError)
}

func TestStockInsights_ProviderFailuresReported(t *testing.T) {
	ctx := context.Background()

	news := &testcommon.MockNewsProvider{Err: fmt.Errorf("newsapi: %w", common.ErrRateLimited)}
	svc := newTestService(news, nil, polarMock())
	resp, err := svc.StockInsights(ctx, "MSFT", models.PlanFree)
	require.NoError(t, err)
	assert.Contains(t, resp.NewsFetchError, "rate limit")
	assert.Nil(t, resp.NewsAnalysis)

	news = &testcommon.MockNewsProvider{Articles: labelledArticles("good")}
	svc = newTestService(news, nil, &testcommon.MockSentimentProvider{Err: common.ErrProviderUnavailable})
	resp, err = svc.StockInsights(ctx, "MSFT", models.PlanFree)
	require.NoError(t, err)
	assert.Contains(t, resp.SentimentAnalysisError, "failed for all 1 articles")
	assert.Nil(t, resp.NewsAnalysis)
	assert.Len(t, resp.Insights, 1)
}

func TestAnalyzeSentiment(t *testing.T) {
	ctx := context.Background()

	svc := newTestService(nil, polarMock(), nil)
	resp, err := svc.AnalyzeSentiment(ctx, "a good quarter")
	require.NoError(t, err)
	assert.Equal(t, models.SentimentPositive, resp.Sentiment)
	assert.Equal(t, 0.9, resp.Score)
	assert.Equal(t, "cardiffnlp/twitter-roberta-base-sentiment-latest", resp.Details.Model)
	assert.NotEmpty(t, resp.Details.RawResults)

	_, err = svc.AnalyzeSentiment(ctx, "")
	assert.True(t, errors.Is(err, common.ErrValidation))

	svc = newTestService(nil, nil, nil)
	_, err = svc.AnalyzeSentiment(ctx, "text")
	assert.True(t, errors.Is(err, common.ErrNotConfigured))
}

func TestAnalyzeSentiment_MalformedFallsBackToNeutral(t *testing.T) {
	svc := newTestService(nil, &testcommon.MockSentimentProvider{Err: fmt.Errorf("hf: %w", common.ErrMalformedResponse)}, nil)

	resp, err := svc.AnalyzeSentiment(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, models.SentimentNeutral, resp.Sentiment)
	assert.Equal(t, 0.0, resp.Score)
	assert.Equal(t, 50.0, resp.Confidence)
	assert.Equal(t, UnexpectedFormatMessage, resp.Details.Error)
}

func TestAnalyzeSentiment_ProviderFailure(t *testing.T) {
	svc := newTestService(nil, &testcommon.MockSentimentProvider{Err: common.ErrProviderUnavailable}, nil)
	_, err := svc.AnalyzeSentiment(context.Background(), "anything")
	assert.True(t, errors.Is(err, common.ErrProviderUnavailable))
}
