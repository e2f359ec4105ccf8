package server

import (
	"errors"
	"net/http"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/news"
)

// searchRateLimited is the 429 body for a throttled symbol search.
type searchRateLimited struct {
	Error  string              `json:"error"`
	Stocks []models.StockQuote `json:"stocks"`
}

func (s *Server) handleMarketOverview(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	overview, err := s.app.MarketService.GetOverview(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Market overview failed")
		WriteError(w, http.StatusInternalServerError, "Failed to fetch market data")
		return
	}
	WriteJSON(w, http.StatusOK, overview)
}

func (s *Server) handleStockSearch(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	s.writeSearch(w, r, r.URL.Query().Get("q"))
}

// writeSearch is shared by the public search route and the portfolio add-stock lookup.
func (s *Server) writeSearch(w http.ResponseWriter, r *http.Request, query string) {
	result, err := s.app.MarketService.SearchStocks(r.Context(), query)
	if err != nil {
		if errors.Is(err, common.ErrRateLimited) {
			WriteJSON(w, http.StatusTooManyRequests, searchRateLimited{
				Error:  rateLimitMessage,
				Stocks: []models.StockQuote{},
			})
			return
		}
		s.logger.Warn().Err(err).Str("query", query).Msg("Stock search failed")
		writeServiceError(w, err, "Failed to search stocks")
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// handleNews serves the curated feed. Authentication is optional; anonymous
// callers get the free plan cap.
func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	category := q.Get("category")
	if category == "" {
		category = news.DefaultCategory
	}
	limit := queryInt(r, "limit", news.DefaultLimit)

	page, err := s.app.NewsService.Feed(r.Context(), category, limit, requestPlan(r))
	if err != nil {
		s.logger.Error().Err(err).Str("category", category).Msg("News feed failed")
		WriteError(w, http.StatusInternalServerError, "Failed to fetch news data")
		return
	}
	WriteJSON(w, http.StatusOK, page)
}
