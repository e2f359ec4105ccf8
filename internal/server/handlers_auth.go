package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

const tokenIssuer = "folio-server"

// signJWT creates a signed session token for the user.
func signJWT(user *models.InternalUser, profile *models.Profile, config *common.AuthConfig) (string, error) {
	now := time.Now()
	name := ""
	if profile != nil {
		name = profile.FullName
	}
	claims := jwt.MapClaims{
		"sub":      user.UserID,
		"email":    user.Email,
		"name":     name,
		"provider": "email",
		"iss":      tokenIssuer,
		"iat":      now.Unix(),
		"exp":      now.Add(config.GetTokenExpiry()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret))
}

// validateJWT parses and validates a JWT token string using the given secret.
func validateJWT(tokenString string, secret []byte) (*jwt.Token, jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, nil, err
	}
	return token, claims, nil
}

type authUser struct {
	ID               string                  `json:"id"`
	Email            string                  `json:"email"`
	FullName         string                  `json:"full_name"`
	SubscriptionPlan models.SubscriptionPlan `json:"subscription_plan"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  authUser `json:"user"`
}

func newAuthResponse(token string, user *models.InternalUser, profile *models.Profile) authResponse {
	au := authUser{ID: user.UserID, Email: user.Email, SubscriptionPlan: models.PlanFree}
	if profile != nil {
		au.FullName = profile.FullName
		au.SubscriptionPlan = profile.SubscriptionPlan
	}
	return authResponse{Token: token, User: au}
}

// handleAuthRegister handles POST /api/auth/register.
func (s *Server) handleAuthRegister(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	user, profile, err := s.app.AccountService.Register(r.Context(), body.Email, body.Password, body.FullName)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Registration failed")
		writeServiceError(w, err, "Failed to create account")
		return
	}

	token, err := signJWT(user, profile, &s.app.Config.Auth)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign token")
		WriteError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	WriteJSON(w, http.StatusCreated, newAuthResponse(token, user, profile))
}

// handleAuthLogin handles POST /api/auth/login.
func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}
	if body.Email == "" || body.Password == "" {
		WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := s.app.AccountService.Authenticate(r.Context(), body.Email, body.Password)
	if err != nil {
		writeServiceError(w, err, "Failed to sign in")
		return
	}

	profile, err := s.app.AccountService.Profile(r.Context(), user.UserID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.UserID).Msg("Profile missing at login")
		profile = nil
	}

	token, err := signJWT(user, profile, &s.app.Config.Auth)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign token")
		WriteError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	WriteJSON(w, http.StatusOK, newAuthResponse(token, user, profile))
}
