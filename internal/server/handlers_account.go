package server

import (
	"fmt"
	"net/http"

	"github.com/bobmcallan/folio/internal/models"
)

// handleUpgrade handles POST /api/upgrade. No payment is taken; the plan on
// the profile is simply raised.
func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body struct {
		Plan string `json:"plan"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	profile, err := s.app.AccountService.Upgrade(r.Context(), userID, body.Plan)
	if err != nil {
		writeServiceError(w, err, "Failed to process upgrade")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Successfully upgraded to %s plan", profile.SubscriptionPlan),
		"plan":    profile.SubscriptionPlan,
	})
}

// handleProfile handles GET and PUT /api/profile.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPut) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodGet {
		profile, err := s.app.AccountService.Profile(r.Context(), userID)
		if err != nil {
			writeServiceError(w, err, "Failed to load profile")
			return
		}
		WriteJSON(w, http.StatusOK, profile)
		return
	}

	var body struct {
		FullName string `json:"full_name"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}
	profile, err := s.app.AccountService.UpdateProfile(r.Context(), userID, body.FullName)
	if err != nil {
		writeServiceError(w, err, "Failed to update profile")
		return
	}
	WriteJSON(w, http.StatusOK, profile)
}

// handlePreferences handles GET and PUT /api/profile/preferences.
func (s *Server) handlePreferences(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPut) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodGet {
		prefs, err := s.app.AccountService.Preferences(r.Context(), userID)
		if err != nil {
			writeServiceError(w, err, "Failed to load preferences")
			return
		}
		WriteJSON(w, http.StatusOK, prefs)
		return
	}

	var prefs models.Preferences
	if !DecodeJSON(w, r, &prefs) {
		return
	}
	saved, err := s.app.AccountService.UpdatePreferences(r.Context(), userID, &prefs)
	if err != nil {
		writeServiceError(w, err, "Failed to update preferences")
		return
	}
	WriteJSON(w, http.StatusOK, saved)
}
