package interfaces

import (
	"context"
	"errors"

	"github.com/bobmcallan/folio/internal/models"
)

// ErrNotFound is wrapped by stores when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// StorageManager coordinates the storage areas
type StorageManager interface {
	// InternalStore holds accounts, profiles and preferences
	InternalStore() InternalStore

	// PortfolioStore holds portfolios and their holdings
	PortfolioStore() PortfolioStore

	// Close closes all storage backends
	Close() error
}

// InternalStore manages user accounts, profiles and preferences
type InternalStore interface {
	GetUser(ctx context.Context, userID string) (*models.InternalUser, error)
	GetUserByEmail(ctx context.Context, email string) (*models.InternalUser, error)
	SaveUser(ctx context.Context, user *models.InternalUser) error

	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	SaveProfile(ctx context.Context, profile *models.Profile) error

	GetPreferences(ctx context.Context, userID string) (*models.Preferences, error)
	SavePreferences(ctx context.Context, prefs *models.Preferences) error

	Close() error
}

// PortfolioStore manages portfolios and holdings
type PortfolioStore interface {
	// GetPortfolioByUser returns the caller's default portfolio
	GetPortfolioByUser(ctx context.Context, userID string) (*models.Portfolio, error)
	GetPortfolio(ctx context.Context, portfolioID string) (*models.Portfolio, error)
	SavePortfolio(ctx context.Context, portfolio *models.Portfolio) error

	// ListHoldings returns holdings ordered by creation time
	ListHoldings(ctx context.Context, portfolioID string) ([]*models.Holding, error)
	GetHolding(ctx context.Context, holdingID string) (*models.Holding, error)
	SaveHolding(ctx context.Context, holding *models.Holding) error
	DeleteHolding(ctx context.Context, holdingID string) error

	Close() error
}
