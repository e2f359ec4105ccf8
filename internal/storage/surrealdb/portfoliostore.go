package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

type portfolioRecord struct {
	PortfolioID string    `json:"portfolio_id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
}

func (r portfolioRecord) model() *models.Portfolio {
	return &models.Portfolio{
		ID:        r.PortfolioID,
		UserID:    r.UserID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
	}
}

type holdingRecord struct {
	HoldingID     string    `json:"holding_id"`
	PortfolioID   string    `json:"portfolio_id"`
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Shares        float64   `json:"shares"`
	PurchasePrice float64   `json:"purchase_price"`
	CreatedAt     time.Time `json:"created_at"`
}

func newHoldingRecord(h *models.Holding) holdingRecord {
	return holdingRecord{
		HoldingID:     h.ID,
		PortfolioID:   h.PortfolioID,
		Symbol:        h.Symbol,
		Name:          h.Name,
		Shares:        h.Shares,
		PurchasePrice: h.PurchasePrice,
		CreatedAt:     h.CreatedAt,
	}
}

func (r holdingRecord) model() *models.Holding {
	return &models.Holding{
		ID:            r.HoldingID,
		PortfolioID:   r.PortfolioID,
		Symbol:        r.Symbol,
		Name:          r.Name,
		Shares:        r.Shares,
		PurchasePrice: r.PurchasePrice,
		CreatedAt:     r.CreatedAt,
	}
}

// PortfolioStore holds portfolios and their holdings.
type PortfolioStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

var _ interfaces.PortfolioStore = (*PortfolioStore)(nil)

func NewPortfolioStore(db *surrealdb.DB, logger *common.Logger) *PortfolioStore {
	return &PortfolioStore{
		db:     db,
		logger: logger,
	}
}

// GetPortfolioByUser returns the user's earliest portfolio.
func (s *PortfolioStore) GetPortfolioByUser(ctx context.Context, userID string) (*models.Portfolio, error) {
	sql := "SELECT * FROM portfolio WHERE user_id = $user_id ORDER BY created_at ASC LIMIT 1"
	recs, err := queryAll[portfolioRecord](ctx, s.db, sql, map[string]any{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio: %w", err)
	}
	if len(recs) == 0 {
		return nil, notFound("portfolio for user", userID)
	}
	return recs[0].model(), nil
}

func (s *PortfolioStore) GetPortfolio(ctx context.Context, portfolioID string) (*models.Portfolio, error) {
	rec, err := surrealdb.Select[portfolioRecord](ctx, s.db, surrealmodels.NewRecordID(tablePortfolio, portfolioID))
	if err != nil {
		if isNotFoundError(err) {
			return nil, notFound("portfolio", portfolioID)
		}
		return nil, fmt.Errorf("failed to select portfolio: %w", err)
	}
	if rec == nil || rec.PortfolioID == "" {
		return nil, notFound("portfolio", portfolioID)
	}
	return rec.model(), nil
}

func (s *PortfolioStore) SavePortfolio(ctx context.Context, portfolio *models.Portfolio) error {
	rec := portfolioRecord{
		PortfolioID: portfolio.ID,
		UserID:      portfolio.UserID,
		Name:        portfolio.Name,
		CreatedAt:   portfolio.CreatedAt,
	}
	return upsert(ctx, s.db, tablePortfolio, portfolio.ID, rec)
}

func (s *PortfolioStore) ListHoldings(ctx context.Context, portfolioID string) ([]*models.Holding, error) {
	sql := "SELECT * FROM holding WHERE portfolio_id = $portfolio_id ORDER BY created_at ASC, holding_id ASC"
	recs, err := queryAll[holdingRecord](ctx, s.db, sql, map[string]any{"portfolio_id": portfolioID})
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}

	holdings := make([]*models.Holding, 0, len(recs))
	for _, r := range recs {
		holdings = append(holdings, r.model())
	}
	return holdings, nil
}

func (s *PortfolioStore) GetHolding(ctx context.Context, holdingID string) (*models.Holding, error) {
	rec, err := surrealdb.Select[holdingRecord](ctx, s.db, surrealmodels.NewRecordID(tableHolding, holdingID))
	if err != nil {
		if isNotFoundError(err) {
			return nil, notFound("holding", holdingID)
		}
		return nil, fmt.Errorf("failed to select holding: %w", err)
	}
	if rec == nil || rec.HoldingID == "" {
		return nil, notFound("holding", holdingID)
	}
	return rec.model(), nil
}

func (s *PortfolioStore) SaveHolding(ctx context.Context, holding *models.Holding) error {
	return upsert(ctx, s.db, tableHolding, holding.ID, newHoldingRecord(holding))
}

// DeleteHolding removes a holding. Deleting a missing holding is not an error.
func (s *PortfolioStore) DeleteHolding(ctx context.Context, holdingID string) error {
	_, err := surrealdb.Delete[holdingRecord](ctx, s.db, surrealmodels.NewRecordID(tableHolding, holdingID))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete holding: %w", err)
	}
	return nil
}

func (s *PortfolioStore) Close() error {
	return nil
}
