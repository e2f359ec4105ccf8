// Package market provides the market overview and stock search
package market

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/synthetic"
)

// Compile-time interface check
var _ interfaces.MarketService = (*Service)(nil)

// MockDataMessage accompanies search results served from synthetic data
// after the symbol search itself failed.
const MockDataMessage = "Using mock data due to API limitations"

// maxSearchMatches bounds the follow-up quote calls made per search.
const maxSearchMatches = 2

// index is one card on the market overview. The ETF stands in for the index
// and the default is shown when its quote is missing.
type index struct {
	symbol string
	def    models.IndexSnapshot
}

var overviewIndices = []index{
	{symbol: "SPY", def: models.IndexSnapshot{Value: 450.25, Change: 1.2}},
	{symbol: "QQQ", def: models.IndexSnapshot{Value: 375.75, Change: -0.8}},
	{symbol: "DIA", def: models.IndexSnapshot{Value: 340.5, Change: 0.5}},
}

// Service implements MarketService
type Service struct {
	quotes      interfaces.QuoteProvider
	synthetic   *synthetic.Generator
	policy      synthetic.Policy
	logger      *common.Logger
	searchDelay time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
	now         func() time.Time
}

// NewService creates a new market service.
// quotes may be nil when no market data key is configured.
func NewService(quotes interfaces.QuoteProvider, gen *synthetic.Generator, policy synthetic.Policy, logger *common.Logger) *Service {
	return &Service{
		quotes:      quotes,
		synthetic:   gen,
		policy:      policy,
		logger:      logger,
		searchDelay: time.Second,
		sleep:       sleepContext,
		now:         time.Now,
	}
}

// SetSearchDelay sets the pause between sequential quote calls made for
// symbol search matches.
func (s *Service) SetSearchDelay(d time.Duration) {
	s.searchDelay = d
}

// provider returns the quote source for the current policy.
func (s *Service) provider() (interfaces.QuoteProvider, error) {
	if !s.policy.AllowLive() {
		return s.synthetic, nil
	}
	if s.quotes == nil {
		return nil, fmt.Errorf("market data: %w", common.ErrNotConfigured)
	}
	return s.quotes, nil
}

// GetOverview fetches the three index proxies concurrently. Entries whose
// quote is missing or zero fall back to fixed defaults field by field. With
// live data disabled the defaults are returned as they are.
func (s *Service) GetOverview(ctx context.Context) (*models.MarketOverview, error) {
	snapshots := make([]models.IndexSnapshot, len(overviewIndices))
	if !s.policy.AllowLive() {
		for i, idx := range overviewIndices {
			snapshots[i] = idx.def
		}
		return s.overview(snapshots), nil
	}

	provider, err := s.provider()
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, idx := range overviewIndices {
		g.Go(func() error {
			snap := idx.def
			res := provider.GetQuote(gctx, idx.symbol)
			if res.Found() {
				if res.Quote.Price != 0 {
					snap.Value = res.Quote.Price
				}
				if res.Quote.ChangePercent != 0 {
					snap.Change = res.Quote.ChangePercent
				}
			} else {
				s.logger.Warn().Str("symbol", idx.symbol).Str("status", res.Status.String()).Err(res.Err).Msg("Index quote unavailable, using default")
			}
			snapshots[i] = snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s.overview(snapshots), nil
}

func (s *Service) overview(snapshots []models.IndexSnapshot) *models.MarketOverview {
	return &models.MarketOverview{
		SP500:       snapshots[0],
		Nasdaq:      snapshots[1],
		Dow:         snapshots[2],
		LastUpdated: s.now().UTC(),
	}
}

// SearchStocks resolves a query in three tiers: a direct quote, then a
// symbol search with follow-up quotes, then synthetic data. A rate limited
// symbol search is returned as ErrRateLimited rather than synthesized.
func (s *Service) SearchStocks(ctx context.Context, query string) (*models.StockSearchResult, error) {
	q := strings.ToUpper(strings.TrimSpace(query))
	if q == "" {
		return nil, common.NewValidationError("Query parameter is required")
	}

	provider, err := s.provider()
	if err != nil {
		return nil, err
	}

	direct := provider.GetQuote(ctx, q)
	if direct.Found() {
		quote := *direct.Quote
		quote.Name = directName(quote.Symbol)
		return &models.StockSearchResult{Stocks: []models.StockQuote{quote}}, nil
	}
	s.logger.Debug().Str("query", q).Str("status", direct.Status.String()).Msg("Direct quote missed, trying symbol search")

	found := provider.SearchSymbols(ctx, q)
	switch found.Status {
	case models.SearchRateLimited:
		s.logger.Warn().Str("query", q).Str("note", found.Note).Msg("Symbol search rate limited")
		return nil, fmt.Errorf("symbol search for %s: %w", q, common.ErrRateLimited)
	case models.SearchFailed:
		s.logger.Warn().Str("query", q).Err(found.Err).Msg("Symbol search failed")
		return s.fallbackResult(q, MockDataMessage, found.Err)
	case models.SearchEmpty:
		return s.fallbackResult(q, "", nil)
	}

	stocks, err := s.quoteMatches(ctx, provider, found.Matches)
	if err != nil {
		return nil, err
	}
	if len(stocks) == 0 {
		return s.fallbackResult(q, MockDataMessage, nil)
	}
	return &models.StockSearchResult{Stocks: stocks}, nil
}

// quoteMatches quotes the leading matches one at a time with a fixed pause
// between calls. Matches whose quote fails get a synthetic price under the
// match name.
func (s *Service) quoteMatches(ctx context.Context, provider interfaces.QuoteProvider, matches []models.SymbolMatch) ([]models.StockQuote, error) {
	if len(matches) > maxSearchMatches {
		matches = matches[:maxSearchMatches]
	}

	stocks := make([]models.StockQuote, 0, len(matches))
	for i, m := range matches {
		if i > 0 {
			if err := s.sleep(ctx, s.searchDelay); err != nil {
				return nil, err
			}
		}

		res := provider.GetQuote(ctx, m.Symbol)
		if res.Found() {
			quote := *res.Quote
			quote.Symbol = m.Symbol
			quote.Name = m.Name
			stocks = append(stocks, quote)
			continue
		}

		s.logger.Debug().Str("symbol", m.Symbol).Str("status", res.Status.String()).Msg("Match quote unavailable")
		if s.policy.AllowSynthetic() {
			stocks = append(stocks, *s.synthetic.SynthesizeQuote(m.Symbol, m.Name))
		}
	}
	return stocks, nil
}

// fallbackResult serves the query from synthetic data, or reports the
// provider failure when the policy forbids synthesis.
func (s *Service) fallbackResult(q, message string, cause error) (*models.StockSearchResult, error) {
	if !s.policy.AllowSynthetic() {
		if cause == nil {
			cause = fmt.Errorf("no quote for %s", q)
		}
		return nil, fmt.Errorf("stock search: %w: %w", common.ErrProviderUnavailable, cause)
	}
	quote := s.synthetic.Quote(q)
	return &models.StockSearchResult{
		Stocks:  []models.StockQuote{*quote},
		Message: message,
	}, nil
}

// ResolveQuote returns the live quote for a symbol, then the mock table
// quote. A nil quote with a nil error means neither source knows the symbol.
func (s *Service) ResolveQuote(ctx context.Context, symbol string) (*models.StockQuote, string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	if s.policy.AllowLive() {
		if s.quotes == nil {
			return nil, "", fmt.Errorf("market data: %w", common.ErrNotConfigured)
		}
		res := s.quotes.GetQuote(ctx, symbol)
		if res.Found() {
			return res.Quote, models.QuoteSourceLive, nil
		}
		s.logger.Debug().Str("symbol", symbol).Str("status", res.Status.String()).Err(res.Err).Msg("Live quote unavailable")
	}

	if s.policy.AllowSynthetic() {
		if quote, ok := s.synthetic.MockQuote(symbol); ok {
			return quote, models.QuoteSourceMock, nil
		}
	}
	return nil, "", nil
}

// directName is the display name for a direct quote hit, which carries no
// company name of its own.
func directName(symbol string) string {
	if name, ok := synthetic.KnownName(symbol); ok {
		return name
	}
	return symbol + " Inc."
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
