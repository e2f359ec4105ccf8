package server

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/folio/internal/models"
)

type addHoldingResponse struct {
	Success bool           `json:"success"`
	Data    models.Holding `json:"data"`
}

func (e *testEnv) addHolding(t *testing.T, token string, body interface{}) *models.Holding {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/api/portfolio/stocks", token, body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	resp := decode[addHoldingResponse](t, rr)
	require.True(t, resp.Success)
	return &resp.Data
}

func TestPortfolioStocks_AddAndList(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.signup(t, "holder@example.com", models.PlanFree)

	h := env.addHolding(t, token, map[string]string{
		"symbol": "aapl", "name": "Apple Inc.", "shares": "10", "purchase_price": "150.5",
	})
	assert.Equal(t, "AAPL", h.Symbol)
	assert.Equal(t, 10.0, h.Shares)
	assert.Equal(t, 150.5, h.PurchasePrice)
	assert.NotEmpty(t, h.ID)

	env.quotes.SetQuote("UNKN", 20, 1, 5)
	env.addHolding(t, token, map[string]interface{}{
		"symbol": "UNKN", "name": "Unknown Co", "shares": 2, "purchase_price": 10,
	})

	rr := env.do(t, http.MethodGet, "/api/portfolio/stocks", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[struct {
		Stocks []models.DisplayHolding `json:"stocks"`
	}](t, rr)
	require.Len(t, list.Stocks, 2)

	bySymbol := map[string]models.DisplayHolding{}
	for _, s := range list.Stocks {
		bySymbol[s.Symbol] = s
	}
	assert.Equal(t, models.QuoteSourceMock, bySymbol["AAPL"].QuoteSource)
	assert.Equal(t, models.QuoteSourceLive, bySymbol["UNKN"].QuoteSource)
	assert.Equal(t, 40.0, bySymbol["UNKN"].Value)
	assert.Equal(t, 20.0, bySymbol["UNKN"].Gain)
}

func TestPortfolioStocks_AddValidation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.signup(t, "holder@example.com", models.PlanFree)

	tests := []struct {
		name string
		body interface{}
	}{
		{"missing symbol", map[string]interface{}{"name": "Apple", "shares": 1, "purchase_price": 1}},
		{"zero shares", map[string]interface{}{"symbol": "AAPL", "name": "Apple", "shares": 0, "purchase_price": 1}},
		{"negative price", map[string]interface{}{"symbol": "AAPL", "name": "Apple", "shares": 1, "purchase_price": -3}},
		{"non numeric", map[string]interface{}{"symbol": "AAPL", "name": "Apple", "shares": "ten", "purchase_price": 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(t, http.MethodPost, "/api/portfolio/stocks", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestPortfolioStocks_FreePlanLimit(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.signup(t, "limited@example.com", models.PlanFree)

	for _, sym := range []string{"AAPL", "MSFT", "TSLA"} {
		env.addHolding(t, token, map[string]interface{}{"symbol": sym, "name": sym, "shares": 1, "purchase_price": 100})
	}

	rr := env.do(t, http.MethodPost, "/api/portfolio/stocks", token, map[string]interface{}{
		"symbol": "AMZN", "name": "Amazon", "shares": 1, "purchase_price": 100,
	})
	require.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "plan_limit", decode[ErrorResponse](t, rr).Code)
}

func TestPortfolioStocks_ListCappedByPlan(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.signup(t, "capped@example.com", models.PlanPremium)

	for _, sym := range []string{"AAPL", "MSFT", "TSLA", "AMZN"} {
		env.addHolding(t, token, map[string]interface{}{"symbol": sym, "name": sym, "shares": 1, "purchase_price": 100})
	}

	// Downgrade behind the service's back: the stored holdings stay, the view shrinks.
	profile, err := env.store.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	profile.SubscriptionPlan = models.PlanFree
	require.NoError(t, env.store.SaveProfile(context.Background(), profile))

	rr := env.do(t, http.MethodGet, "/api/portfolio/stocks", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[struct {
		Stocks []models.DisplayHolding `json:"stocks"`
	}](t, rr)
	assert.Len(t, list.Stocks, 3)
}

func TestPortfolioStocks_Search(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.signup(t, "search@example.com", models.PlanFree)

	rr := env.do(t, http.MethodGet, "/api/portfolio/stocks?q=aapl", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	res := decode[models.StockSearchResult](t, rr)
	require.NotEmpty(t, res.Stocks)
	assert.Equal(t, "AAPL", res.Stocks[0].Symbol)
}

func TestPortfolioStockDelete(t *testing.T) {
	env := newTestEnv(t)
	_, owner := env.signup(t, "owner@example.com", models.PlanFree)
	_, other := env.signup(t, "other@example.com", models.PlanFree)

	h := env.addHolding(t, owner, map[string]interface{}{"symbol": "AAPL", "name": "Apple", "shares": 1, "purchase_price": 100})

	t.Run("foreign holding", func(t *testing.T) {
		rr := env.do(t, http.MethodDelete, "/api/portfolio/stocks/"+h.ID, other, nil)
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, "Unauthorized to delete this stock", decode[ErrorResponse](t, rr).Error)

		_, err := env.store.GetHolding(context.Background(), h.ID)
		assert.NoError(t, err, "holding should survive a foreign delete")
	})

	t.Run("missing holding", func(t *testing.T) {
		rr := env.do(t, http.MethodDelete, "/api/portfolio/stocks/does-not-exist", owner, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Stock not found or unauthorized", decode[ErrorResponse](t, rr).Error)
	})

	t.Run("owner", func(t *testing.T) {
		rr := env.do(t, http.MethodDelete, "/api/portfolio/stocks/"+h.ID, owner, nil)
		require.Equal(t, http.StatusOK, rr.Code)

		_, err := env.store.GetHolding(context.Background(), h.ID)
		assert.Error(t, err)
	})
}

func TestPortfolioSummaryAndSectors(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.signup(t, "summary@example.com", models.PlanPro)

	env.quotes.SetQuote("JPM", 200, 2, 1)
	env.quotes.SetQuote("XOM", 100, -1, -1)
	env.addHolding(t, token, map[string]interface{}{"symbol": "JPM", "name": "JPMorgan", "shares": 3, "purchase_price": 150})
	env.addHolding(t, token, map[string]interface{}{"symbol": "XOM", "name": "Exxon", "shares": 4, "purchase_price": 110})

	rr := env.do(t, http.MethodGet, "/api/portfolio/summary", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	summary := decode[models.PortfolioSummary](t, rr)
	assert.Equal(t, 1000.0, summary.TotalValue)
	assert.Equal(t, 890.0, summary.TotalCost)
	assert.Equal(t, 110.0, summary.TotalGain)
	assert.Equal(t, 2, summary.HoldingsCount)
	require.Len(t, summary.Sectors, 2)
	assert.Equal(t, "Finance", summary.Sectors[0].Name)
	assert.Equal(t, 60.0, summary.Sectors[0].Percentage)

	rr = env.do(t, http.MethodGet, "/api/portfolio/sectors", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	sectors := decode[struct {
		Sectors    []models.SectorAllocation `json:"sectors"`
		TotalValue float64                   `json:"totalValue"`
	}](t, rr)
	assert.Len(t, sectors.Sectors, 2)
	assert.Equal(t, 1000.0, sectors.TotalValue)
}

func TestPortfolio_MissingPortfolio(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.signup(t, "orphan@example.com", models.PlanFree)

	// Rebuild the store without the portfolio but with the account.
	user, err := env.store.GetUser(context.Background(), userID)
	require.NoError(t, err)
	profile, err := env.store.GetProfile(context.Background(), userID)
	require.NoError(t, err)

	fresh := newTestEnv(t)
	require.NoError(t, fresh.store.SaveUser(context.Background(), user))
	require.NoError(t, fresh.store.SaveProfile(context.Background(), profile))

	rr := fresh.do(t, http.MethodGet, "/api/portfolio/summary", token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "User portfolio not found", decode[ErrorResponse](t, rr).Error)
}

func TestPortfolioPerformance(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.signup(t, "perf@example.com", models.PlanFree)

	rr := env.do(t, http.MethodGet, "/api/portfolio/performance?timeframe=1w", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	series := decode[models.PerformanceSeries](t, rr)
	assert.Equal(t, "1W", series.Timeframe)
	assert.Len(t, series.Data, 8)
	assert.Equal(t, 100000.0, series.Data[0].Value)

	rr = env.do(t, http.MethodGet, "/api/portfolio/performance?timeframe=bogus", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1M", decode[models.PerformanceSeries](t, rr).Timeframe)
}

func TestPortfolioPerformanceChart(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.signup(t, "chart@example.com", models.PlanFree)

	rr := env.do(t, http.MethodGet, "/api/portfolio/performance/chart?timeframe=1M", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("\x89PNG")), "body should be a PNG")
}
