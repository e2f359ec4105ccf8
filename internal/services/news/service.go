// Package news provides the curated market news feed
package news

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/plan"
)

// Compile-time interface check
var _ interfaces.NewsService = (*Service)(nil)

const (
	// DefaultCategory is expanded to FinanceKeywords
	DefaultCategory = "business"

	// DefaultLimit is the page size when the caller gives none
	DefaultLimit = 10

	// FinanceKeywords is the query used for the business category
	FinanceKeywords = "stock market OR finance OR investment OR trading OR economy OR Federal Reserve OR inflation OR earnings"
)

// Service implements NewsService
type Service struct {
	news     interfaces.NewsProvider
	lookback time.Duration
	logger   *common.Logger
}

// NewService creates a new news service. news may be nil when no key is
// configured; lookback <= 0 uses the provider default.
func NewService(news interfaces.NewsProvider, lookback time.Duration, logger *common.Logger) *Service {
	return &Service{
		news:     news,
		lookback: lookback,
		logger:   logger,
	}
}

// Feed returns the latest articles for a category, capped by the plan.
// Total reports the provider's match count and is not capped.
func (s *Service) Feed(ctx context.Context, category string, limit int, p models.SubscriptionPlan) (*models.NewsPage, error) {
	if s.news == nil {
		return nil, fmt.Errorf("news feed: %w", common.ErrNotConfigured)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	page, err := s.news.SearchNews(ctx, models.NewsQuery{
		Query:    Keywords(category),
		PageSize: limit,
		Lookback: s.lookback,
	})
	if err != nil {
		return nil, fmt.Errorf("news feed: %w", err)
	}

	articles := plan.Cap(plan.Cap(page.Articles, limit), plan.Limits(p).MaxNews)
	s.logger.Debug().Str("category", category).Int("limit", limit).Str("plan", string(p)).Int("returned", len(articles)).Msg("News feed served")

	return &models.NewsPage{Articles: articles, Total: page.Total}, nil
}

// Keywords maps a feed category onto a provider search query.
func Keywords(category string) string {
	category = strings.TrimSpace(category)
	if category == "" || category == DefaultCategory {
		return FinanceKeywords
	}
	return category
}
