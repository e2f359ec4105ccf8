// Package insights produces AI recommendations and sentiment analysis
package insights

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/synthetic"
)

// Compile-time interface check
var _ interfaces.InsightService = (*Service)(nil)

// Service implements InsightService.
// Any provider may be nil when its key is not configured.
type Service struct {
	news       interfaces.NewsProvider
	sentiment  interfaces.SentimentProvider
	classifier interfaces.SentimentProvider
	synthetic  *synthetic.Generator
	logger     *common.Logger
	now        func() time.Time
}

// NewService creates a new insight service. sentiment backs the market wide
// analysis and the sentiment endpoint; classifier labels per-stock news.
func NewService(news interfaces.NewsProvider, sentiment, classifier interfaces.SentimentProvider, gen *synthetic.Generator, logger *common.Logger) *Service {
	return &Service{
		news:       news,
		sentiment:  sentiment,
		classifier: classifier,
		synthetic:  gen,
		logger:     logger,
		now:        time.Now,
	}
}

// classified pairs an article with its sentiment label.
type classified struct {
	article models.NewsArticle
	label   string
}

// classify scores articles concurrently. Articles whose classification fails
// are dropped; the last failure is returned alongside the successes.
func (s *Service) classify(ctx context.Context, provider interfaces.SentimentProvider, articles []models.NewsArticle) ([]classified, error) {
	results := make([]*classified, len(articles))
	errs := make([]error, len(articles))

	g, gctx := errgroup.WithContext(ctx)
	for i, a := range articles {
		g.Go(func() error {
			res, err := provider.AnalyzeSentiment(gctx, a.Title+" "+a.Summary)
			if err != nil {
				s.logger.Warn().Str("title", a.Title).Str("model", provider.Model()).Err(err).Msg("Article sentiment failed")
				errs[i] = err
				return nil
			}
			results[i] = &classified{article: a, label: res.Sentiment}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]classified, 0, len(articles))
	var lastErr error
	for i, r := range results {
		if r != nil {
			out = append(out, *r)
		} else if errs[i] != nil {
			lastErr = errs[i]
		}
	}
	return out, lastErr
}

// tally counts labels.
func tally(items []classified) (pos, neg, neu int) {
	for _, c := range items {
		switch c.label {
		case models.SentimentPositive:
			pos++
		case models.SentimentNegative:
			neg++
		default:
			neu++
		}
	}
	return pos, neg, neu
}
