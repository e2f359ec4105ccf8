package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/synthetic"
)

const portfolioNotFound = "User portfolio not found"

// writePortfolioError maps a missing portfolio to 404 and everything else
// through the shared taxonomy.
func writePortfolioError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, interfaces.ErrNotFound) {
		WriteError(w, http.StatusNotFound, portfolioNotFound)
		return
	}
	writeServiceError(w, err, fallback)
}

// handlePortfolioStocks handles GET and POST /api/portfolio/stocks.
// GET with q searches for a stock to add; without q it lists the holdings.
func (s *Server) handlePortfolioStocks(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodPost {
		s.handleAddHolding(w, r, userID)
		return
	}

	if q := r.URL.Query().Get("q"); strings.TrimSpace(q) != "" {
		s.writeSearch(w, r, q)
		return
	}

	holdings, err := s.app.PortfolioService.Holdings(r.Context(), userID, requestPlan(r))
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load holdings")
		writePortfolioError(w, err, "Failed to process request")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"stocks": holdings})
}

func (s *Server) handleAddHolding(w http.ResponseWriter, r *http.Request, userID string) {
	var body struct {
		Symbol        string    `json:"symbol"`
		Name          string    `json:"name"`
		Shares        flexFloat `json:"shares"`
		PurchasePrice flexFloat `json:"purchase_price"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	h, err := s.app.PortfolioService.AddHolding(r.Context(), userID, requestPlan(r), models.NewHolding{
		Symbol:        body.Symbol,
		Name:          body.Name,
		Shares:        float64(body.Shares),
		PurchasePrice: float64(body.PurchasePrice),
	})
	if err != nil {
		writePortfolioError(w, err, "Failed to add stock to portfolio")
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "data": h})
}

// handlePortfolioStockDelete handles DELETE /api/portfolio/stocks/{id}.
func (s *Server) handlePortfolioStockDelete(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	holdingID := PathParam(r, "/api/portfolio/stocks/", "")
	if holdingID == "" {
		WriteError(w, http.StatusNotFound, "Stock not found or unauthorized")
		return
	}

	err := s.app.PortfolioService.RemoveHolding(r.Context(), userID, holdingID)
	switch {
	case err == nil:
		WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Stock removed successfully"})
	case errors.Is(err, interfaces.ErrNotFound):
		WriteError(w, http.StatusNotFound, "Stock not found or unauthorized")
	case errors.Is(err, common.ErrForbidden):
		WriteError(w, http.StatusForbidden, "Unauthorized to delete this stock")
	default:
		s.logger.Error().Err(err).Str("holding_id", holdingID).Msg("Failed to remove holding")
		WriteError(w, http.StatusInternalServerError, "Failed to remove stock from portfolio")
	}
}

func (s *Server) handlePortfolioSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	summary, err := s.app.PortfolioService.Summary(r.Context(), userID, requestPlan(r))
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Portfolio summary failed")
		writePortfolioError(w, err, "Failed to fetch portfolio summary")
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

func (s *Server) handlePortfolioSectors(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	sectors, err := s.app.PortfolioService.Sectors(r.Context(), userID, requestPlan(r))
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Sector allocation failed")
		writePortfolioError(w, err, "Failed to fetch sector data")
		return
	}

	var total float64
	for _, sec := range sectors {
		total += sec.Value
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"sectors":     sectors,
		"totalValue":  total,
		"lastUpdated": time.Now().UTC(),
	})
}

func (s *Server) performanceSeries(w http.ResponseWriter, r *http.Request) (*models.PerformanceSeries, bool) {
	userID, ok := requireUser(w, r)
	if !ok {
		return nil, false
	}

	timeframe := synthetic.NormalizeTimeframe(r.URL.Query().Get("timeframe"))
	series, err := s.app.PortfolioService.Performance(r.Context(), userID, requestPlan(r), timeframe)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Performance series failed")
		writePortfolioError(w, err, "Failed to fetch performance data")
		return nil, false
	}
	return series, true
}

func (s *Server) handlePortfolioPerformance(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if series, ok := s.performanceSeries(w, r); ok {
		WriteJSON(w, http.StatusOK, series)
	}
}

// handlePortfolioPerformanceChart renders the performance series as a PNG.
func (s *Server) handlePortfolioPerformanceChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	series, ok := s.performanceSeries(w, r)
	if !ok {
		return
	}

	png, err := s.app.PortfolioService.RenderPerformanceChart(series)
	if err != nil {
		s.logger.Error().Err(err).Msg("Chart render failed")
		WriteError(w, http.StatusInternalServerError, "Failed to render performance chart")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
