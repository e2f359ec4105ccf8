package server

import (
	"net/http"

	"github.com/bobmcallan/folio/internal/models"
)

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if _, ok := requireUser(w, r); !ok {
		return
	}
	WriteJSON(w, http.StatusOK, s.app.InsightService.Recommendations(r.Context(), requestPlan(r)))
}

func (s *Server) handleEnhancedRecommendations(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if _, ok := requireUser(w, r); !ok {
		return
	}

	resp, err := s.app.InsightService.EnhancedRecommendations(r.Context(), requestPlan(r))
	if err != nil {
		s.logger.Error().Err(err).Msg("Enhanced recommendations failed")
		writeServiceError(w, err, "Failed to generate AI recommendations")
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

// stockInsightsPlan picks the lower of the requested and the stored plan so
// a query parameter can never unlock a higher tier. An absent parameter uses
// the stored plan; an unknown one counts as free.
func stockInsightsPlan(requested string, stored models.SubscriptionPlan) models.SubscriptionPlan {
	if requested == "" {
		return stored
	}
	p, ok := models.ParsePlan(requested)
	if !ok {
		return models.PlanFree
	}
	if p.AtLeast(stored) {
		return stored
	}
	return p
}

func (s *Server) handleStockInsights(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if _, ok := requireUser(w, r); !ok {
		return
	}

	q := r.URL.Query()
	effective := stockInsightsPlan(q.Get("plan"), requestPlan(r))

	resp, err := s.app.InsightService.StockInsights(r.Context(), q.Get("symbol"), effective)
	if err != nil {
		s.logger.Error().Err(err).Str("symbol", q.Get("symbol")).Msg("Stock insights failed")
		writeServiceError(w, err, "Failed to generate stock insights")
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var body struct {
		Text string `json:"text"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	resp, err := s.app.InsightService.AnalyzeSentiment(r.Context(), body.Text)
	if err != nil {
		s.logger.Error().Err(err).Msg("Sentiment analysis failed")
		writeServiceError(w, err, "Failed to analyze sentiment")
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}
