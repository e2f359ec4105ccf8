package server

import (
	"net/http"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/services/plan"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/plans", s.handlePlans)

	// Auth
	mux.HandleFunc("/api/auth/register", s.handleAuthRegister)
	mux.HandleFunc("/api/auth/login", s.handleAuthLogin)

	// Market data and news
	mux.HandleFunc("/api/market/overview", s.handleMarketOverview)
	mux.HandleFunc("/api/stocks/search", s.handleStockSearch)
	mux.HandleFunc("/api/news", s.handleNews)

	// Portfolio
	mux.HandleFunc("/api/portfolio/stocks/", s.handlePortfolioStockDelete)
	mux.HandleFunc("/api/portfolio/stocks", s.handlePortfolioStocks)
	mux.HandleFunc("/api/portfolio/summary", s.handlePortfolioSummary)
	mux.HandleFunc("/api/portfolio/sectors", s.handlePortfolioSectors)
	mux.HandleFunc("/api/portfolio/performance/chart", s.handlePortfolioPerformanceChart)
	mux.HandleFunc("/api/portfolio/performance", s.handlePortfolioPerformance)

	// AI
	mux.HandleFunc("/api/ai/recommendations/enhanced", s.handleEnhancedRecommendations)
	mux.HandleFunc("/api/ai/recommendations", s.handleRecommendations)
	mux.HandleFunc("/api/ai/stock-insights", s.handleStockInsights)
	mux.HandleFunc("/api/ai/sentiment", s.handleSentiment)

	// Account
	mux.HandleFunc("/api/upgrade", s.handleUpgrade)
	mux.HandleFunc("/api/profile/preferences", s.handlePreferences)
	mux.HandleFunc("/api/profile", s.handleProfile)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// handlePlans returns the caps of every plan; unlimited caps are null.
func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"plans":   plan.All(),
		"current": requestPlan(r),
	})
}
