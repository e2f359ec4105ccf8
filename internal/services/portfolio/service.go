// Package portfolio manages holdings and the views derived from them
package portfolio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/plan"
	"github.com/bobmcallan/folio/internal/services/synthetic"
)

// Compile-time interface check
var _ interfaces.PortfolioService = (*Service)(nil)

// DefaultPortfolioName names the portfolio created with each account.
const DefaultPortfolioName = "My Portfolio"

// Service implements PortfolioService
type Service struct {
	storage   interfaces.StorageManager
	market    interfaces.MarketService
	synthetic *synthetic.Generator
	logger    *common.Logger
	now       func() time.Time
}

// NewService creates a new portfolio service
func NewService(storage interfaces.StorageManager, market interfaces.MarketService, gen *synthetic.Generator, logger *common.Logger) *Service {
	return &Service{
		storage:   storage,
		market:    market,
		synthetic: gen,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateDefaultPortfolio creates the user's portfolio if it does not exist.
func (s *Service) CreateDefaultPortfolio(ctx context.Context, userID string) (*models.Portfolio, error) {
	store := s.storage.PortfolioStore()
	existing, err := store.GetPortfolioByUser(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up portfolio: %w", err)
	}

	p := &models.Portfolio{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      DefaultPortfolioName,
		CreatedAt: s.now().UTC(),
	}
	if err := store.SavePortfolio(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}
	s.logger.Info().Str("user_id", userID).Str("portfolio_id", p.ID).Msg("Default portfolio created")
	return p, nil
}

// portfolioHoldings loads the user's portfolio and its holdings.
func (s *Service) portfolioHoldings(ctx context.Context, userID string) (*models.Portfolio, []*models.Holding, error) {
	store := s.storage.PortfolioStore()
	p, err := store.GetPortfolioByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("portfolio for user %s: %w", userID, err)
	}
	holdings, err := store.ListHoldings(ctx, p.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	return p, holdings, nil
}

// Holdings returns the user's holdings merged with current quotes, capped by
// the plan's stock limit. Quotes are fetched concurrently.
func (s *Service) Holdings(ctx context.Context, userID string, p models.SubscriptionPlan) ([]models.DisplayHolding, error) {
	_, holdings, err := s.portfolioHoldings(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.display(ctx, plan.Cap(holdings, plan.Limits(p).MaxStocks))
}

// display quotes each holding. A holding whose symbol is unknown to every
// quote source is valued at its purchase price with no change.
func (s *Service) display(ctx context.Context, holdings []*models.Holding) ([]models.DisplayHolding, error) {
	out := make([]models.DisplayHolding, len(holdings))
	g, gctx := errgroup.WithContext(ctx)
	for i, h := range holdings {
		g.Go(func() error {
			quote, source, err := s.market.ResolveQuote(gctx, h.Symbol)
			if err != nil {
				return err
			}
			out[i] = toDisplay(h, quote, source)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to quote holdings: %w", err)
	}
	return out, nil
}

func toDisplay(h *models.Holding, quote *models.StockQuote, source string) models.DisplayHolding {
	d := models.DisplayHolding{Holding: *h}
	if quote != nil && quote.Price > 0 {
		d.Price = quote.Price
		d.Change = quote.Change
		d.ChangePercent = quote.ChangePercent
		d.QuoteSource = source
	} else {
		d.Price = h.PurchasePrice
		d.QuoteSource = models.QuoteSourcePurchase
	}
	d.Value = d.Price * h.Shares
	d.Gain = (d.Price - h.PurchasePrice) * h.Shares
	return d
}

// AddHolding validates and stores a new position in the user's portfolio.
// Rejected with ErrPlanLimit once the plan's stock cap is reached.
func (s *Service) AddHolding(ctx context.Context, userID string, p models.SubscriptionPlan, input models.NewHolding) (*models.Holding, error) {
	symbol := strings.ToUpper(strings.TrimSpace(input.Symbol))
	name := strings.TrimSpace(input.Name)
	if symbol == "" || name == "" || input.Shares <= 0 || input.PurchasePrice <= 0 {
		return nil, common.NewValidationError("Missing required fields")
	}

	portfolio, holdings, err := s.portfolioHoldings(ctx, userID)
	if err != nil {
		return nil, err
	}

	maxStocks := plan.Limits(p).MaxStocks
	if !plan.Within(len(holdings), maxStocks) {
		return nil, fmt.Errorf("%s plan allows %d stocks: %w", p, maxStocks, common.ErrPlanLimit)
	}

	h := &models.Holding{
		ID:            uuid.New().String(),
		PortfolioID:   portfolio.ID,
		Symbol:        symbol,
		Name:          name,
		Shares:        input.Shares,
		PurchasePrice: input.PurchasePrice,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.storage.PortfolioStore().SaveHolding(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to add stock to portfolio: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Str("symbol", symbol).Float64("shares", input.Shares).Msg("Holding added")
	return h, nil
}

// RemoveHolding deletes a holding after checking that the portfolio it
// belongs to is owned by the caller.
func (s *Service) RemoveHolding(ctx context.Context, userID, holdingID string) error {
	store := s.storage.PortfolioStore()

	h, err := store.GetHolding(ctx, holdingID)
	if err != nil {
		return fmt.Errorf("holding %s: %w", holdingID, err)
	}

	owner, err := store.GetPortfolio(ctx, h.PortfolioID)
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return fmt.Errorf("failed to verify portfolio ownership: %w", err)
	}
	if owner == nil || owner.UserID != userID {
		s.logger.Warn().Str("user_id", userID).Str("holding_id", holdingID).Msg("Rejected delete of foreign holding")
		return fmt.Errorf("holding %s: %w", holdingID, common.ErrForbidden)
	}

	if err := store.DeleteHolding(ctx, holdingID); err != nil {
		return fmt.Errorf("failed to remove stock from portfolio: %w", err)
	}
	s.logger.Info().Str("user_id", userID).Str("holding_id", holdingID).Str("symbol", h.Symbol).Msg("Holding removed")
	return nil
}
