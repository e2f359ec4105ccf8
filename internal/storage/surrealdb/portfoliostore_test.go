package surrealdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

func TestPortfolio_GetByUserReturnsEarliest(t *testing.T) {
	store := NewPortfolioStore(testDB(t), testLogger())
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.SavePortfolio(ctx, &models.Portfolio{ID: "p2", UserID: "u1", Name: "Second", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, store.SavePortfolio(ctx, &models.Portfolio{ID: "p1", UserID: "u1", Name: "My Portfolio", CreatedAt: base}))
	require.NoError(t, store.SavePortfolio(ctx, &models.Portfolio{ID: "p3", UserID: "u2", Name: "Other", CreatedAt: base}))

	got, err := store.GetPortfolioByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, "My Portfolio", got.Name)

	byID, err := store.GetPortfolio(ctx, "p3")
	require.NoError(t, err)
	assert.Equal(t, "u2", byID.UserID)

	_, err = store.GetPortfolioByUser(ctx, "nobody")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
	_, err = store.GetPortfolio(ctx, "missing")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestHoldings_ListOrderedByCreation(t *testing.T) {
	store := NewPortfolioStore(testDB(t), testLogger())
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	holdings := []*models.Holding{
		{ID: "h3", PortfolioID: "p1", Symbol: "MSFT", Shares: 1, PurchasePrice: 300, CreatedAt: base.Add(2 * time.Minute)},
		{ID: "h1", PortfolioID: "p1", Symbol: "AAPL", Shares: 10, PurchasePrice: 150, CreatedAt: base},
		{ID: "h2", PortfolioID: "p1", Symbol: "TSLA", Shares: 2.5, PurchasePrice: 200, CreatedAt: base.Add(time.Minute)},
		{ID: "hx", PortfolioID: "p2", Symbol: "AMZN", Shares: 1, PurchasePrice: 100, CreatedAt: base},
	}
	for _, h := range holdings {
		require.NoError(t, store.SaveHolding(ctx, h))
	}

	got, err := store.ListHoldings(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "h1", got[0].ID)
	assert.Equal(t, "h2", got[1].ID)
	assert.Equal(t, "h3", got[2].ID)
	assert.InDelta(t, 2.5, got[1].Shares, 1e-9)

	empty, err := store.ListHoldings(ctx, "p-none")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestHoldings_GetAndDelete(t *testing.T) {
	store := NewPortfolioStore(testDB(t), testLogger())
	ctx := context.Background()

	require.NoError(t, store.SaveHolding(ctx, &models.Holding{
		ID: "h1", PortfolioID: "p1", Symbol: "AAPL", Name: "Apple Inc.", Shares: 10, PurchasePrice: 150,
	}))

	got, err := store.GetHolding(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", got.Symbol)
	assert.Equal(t, "Apple Inc.", got.Name)
	assert.Equal(t, "p1", got.PortfolioID)

	require.NoError(t, store.DeleteHolding(ctx, "h1"))
	_, err = store.GetHolding(ctx, "h1")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)

	assert.NoError(t, store.DeleteHolding(ctx, "h1"), "deleting twice is not an error")
}
