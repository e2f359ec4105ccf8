// Package surrealdb implements the storage interfaces on SurrealDB.
package surrealdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
)

// Table names
const (
	tableUser        = "user"
	tableProfile     = "profile"
	tablePreferences = "preferences"
	tablePortfolio   = "portfolio"
	tableHolding     = "holding"
)

// saveAttempts bounds the UPSERT retry loop
const saveAttempts = 3

// Manager implements interfaces.StorageManager using SurrealDB.
type Manager struct {
	db     *surrealdb.DB
	logger *common.Logger

	internalStore  *InternalStore
	portfolioStore *PortfolioStore
}

// NewManager creates a new StorageManager connected to SurrealDB.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ctx := context.Background()

	db, err := surrealdb.New(config.Storage.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": config.Storage.Username,
		"pass": config.Storage.Password,
	}); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}

	if err := db.Use(ctx, config.Storage.Namespace, config.Storage.Database); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to select namespace/database: %w", err)
	}

	if err := defineTables(ctx, db); err != nil {
		db.Close(ctx)
		return nil, err
	}

	m := &Manager{
		db:             db,
		logger:         logger,
		internalStore:  NewInternalStore(db, logger),
		portfolioStore: NewPortfolioStore(db, logger),
	}

	logger.Info().
		Str("address", config.Storage.Address).
		Str("namespace", config.Storage.Namespace).
		Str("database", config.Storage.Database).
		Msg("SurrealDB storage manager initialized")

	return m, nil
}

// defineTables creates the tables up front; SurrealDB v3 errors when
// querying a table that does not exist yet.
func defineTables(ctx context.Context, db *surrealdb.DB) error {
	tables := []string{tableUser, tableProfile, tablePreferences, tablePortfolio, tableHolding}
	for _, table := range tables {
		sql := fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", table)
		if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
			return fmt.Errorf("failed to define table %s: %w", table, err)
		}
	}

	indexes := []string{
		"DEFINE INDEX IF NOT EXISTS user_email ON TABLE user FIELDS email UNIQUE",
		"DEFINE INDEX IF NOT EXISTS portfolio_user ON TABLE portfolio FIELDS user_id",
		"DEFINE INDEX IF NOT EXISTS holding_portfolio ON TABLE holding FIELDS portfolio_id",
	}
	for _, sql := range indexes {
		if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
			return fmt.Errorf("failed to define index: %w", err)
		}
	}
	return nil
}

func (m *Manager) InternalStore() interfaces.InternalStore {
	return m.internalStore
}

func (m *Manager) PortfolioStore() interfaces.PortfolioStore {
	return m.portfolioStore
}

func (m *Manager) Close() error {
	m.db.Close(context.Background())
	return nil
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)

// upsert writes content to table:id, retrying transient failures.
func upsert[T any](ctx context.Context, db *surrealdb.DB, table, id string, content T) error {
	sql := "UPSERT type::record($tb, $id) CONTENT $content"
	vars := map[string]any{"tb": table, "id": id, "content": content}

	var lastErr error
	for attempt := 1; attempt <= saveAttempts; attempt++ {
		_, err := surrealdb.Query[[]T](ctx, db, sql, vars)
		if err == nil {
			return nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return fmt.Errorf("failed to save %s after retries: %w", table, lastErr)
}

// queryAll runs a SELECT and flattens the first statement's rows.
func queryAll[T any](ctx context.Context, db *surrealdb.DB, sql string, vars map[string]any) ([]T, error) {
	results, err := surrealdb.Query[[]T](ctx, db, sql, vars)
	if err != nil {
		return nil, err
	}
	if results == nil || len(*results) == 0 {
		return nil, nil
	}
	return (*results)[0].Result, nil
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, interfaces.ErrNotFound)
}

func isNotFoundError(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "not found")
}
