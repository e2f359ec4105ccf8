// Package account manages registration, profiles, preferences and plan changes
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

// Compile-time interface check
var _ interfaces.AccountService = (*Service)(nil)

const (
	bcryptCost = 10
	// bcrypt ignores input beyond 72 bytes; longer passwords are truncated
	maxPasswordBytes = 72
	minPasswordLen   = 6
)

// PortfolioCreator provisions the default portfolio of a new account.
type PortfolioCreator interface {
	CreateDefaultPortfolio(ctx context.Context, userID string) (*models.Portfolio, error)
}

// Service implements AccountService
type Service struct {
	storage    interfaces.StorageManager
	portfolios PortfolioCreator
	logger     *common.Logger
	now        func() time.Time
}

// NewService creates a new account service
func NewService(storage interfaces.StorageManager, portfolios PortfolioCreator, logger *common.Logger) *Service {
	return &Service{
		storage:    storage,
		portfolios: portfolios,
		logger:     logger,
		now:        time.Now,
	}
}

func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account on the free plan together with its profile,
// default preferences and default portfolio.
func (s *Service) Register(ctx context.Context, email, password, fullName string) (*models.InternalUser, *models.Profile, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, nil, common.NewValidationError("Email and password are required")
	}
	if !strings.Contains(email, "@") {
		return nil, nil, common.NewValidationError("Invalid email address")
	}
	if len(password) < minPasswordLen {
		return nil, nil, common.NewValidationError(fmt.Sprintf("Password must be at least %d characters", minPasswordLen))
	}

	store := s.storage.InternalStore()
	if _, err := store.GetUserByEmail(ctx, email); err == nil {
		return nil, nil, fmt.Errorf("account for %s: %w", email, common.ErrConflict)
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword(passwordBytes(password), bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now().UTC()
	user := &models.InternalUser{
		UserID:       uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		ModifiedAt:   now,
	}
	if err := store.SaveUser(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("failed to save user: %w", err)
	}

	profile := &models.Profile{
		UserID:           user.UserID,
		Email:            email,
		FullName:         strings.TrimSpace(fullName),
		SubscriptionPlan: models.PlanFree,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := store.SaveProfile(ctx, profile); err != nil {
		return nil, nil, fmt.Errorf("failed to save profile: %w", err)
	}

	prefs := models.DefaultPreferences(user.UserID)
	prefs.UpdatedAt = now
	if err := store.SavePreferences(ctx, prefs); err != nil {
		return nil, nil, fmt.Errorf("failed to save preferences: %w", err)
	}

	if s.portfolios != nil {
		if _, err := s.portfolios.CreateDefaultPortfolio(ctx, user.UserID); err != nil {
			return nil, nil, err
		}
	}

	s.logger.Info().Str("user_id", user.UserID).Str("email", email).Msg("Account registered")
	return user, profile, nil
}

// Authenticate checks an email and password pair. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.InternalUser, error) {
	user, err := s.storage.InternalStore().GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), passwordBytes(password)); err != nil {
		return nil, common.ErrUnauthorized
	}
	return user, nil
}

// Profile returns the user's profile
func (s *Service) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	p, err := s.storage.InternalStore().GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("profile for %s: %w", userID, err)
	}
	return p, nil
}

// UpdateProfile changes the display name
func (s *Service) UpdateProfile(ctx context.Context, userID, fullName string) (*models.Profile, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.FullName = strings.TrimSpace(fullName)
	p.UpdatedAt = s.now().UTC()
	if err := s.storage.InternalStore().SaveProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return p, nil
}

// Preferences returns the stored preferences, or the defaults when the user
// has never saved any.
func (s *Service) Preferences(ctx context.Context, userID string) (*models.Preferences, error) {
	prefs, err := s.storage.InternalStore().GetPreferences(ctx, userID)
	if errors.Is(err, interfaces.ErrNotFound) {
		return models.DefaultPreferences(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	return prefs, nil
}

// UpdatePreferences replaces the user's preferences
func (s *Service) UpdatePreferences(ctx context.Context, userID string, prefs *models.Preferences) (*models.Preferences, error) {
	if prefs == nil {
		return nil, common.NewValidationError("Preferences are required")
	}
	switch prefs.RiskTolerance {
	case "":
		prefs.RiskTolerance = models.RiskModerate
	case models.RiskConservative, models.RiskModerate, models.RiskAggressive:
	default:
		return nil, common.NewValidationError("Invalid risk tolerance")
	}
	if prefs.InvestmentGoals == nil {
		prefs.InvestmentGoals = []string{}
	}
	if prefs.PreferredSectors == nil {
		prefs.PreferredSectors = []string{}
	}
	prefs.UserID = userID
	prefs.UpdatedAt = s.now().UTC()

	if err := s.storage.InternalStore().SavePreferences(ctx, prefs); err != nil {
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}
	return prefs, nil
}

// Upgrade moves the user to a paid plan. Only premium and pro are valid
// targets and a plan can never move down; requesting the current plan is a
// no-op.
func (s *Service) Upgrade(ctx context.Context, userID, planName string) (*models.Profile, error) {
	target, ok := models.ParsePlan(planName)
	if !ok || target == models.PlanFree {
		return nil, common.NewValidationError("Invalid plan")
	}

	p, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	current := p.SubscriptionPlan
	if current == target {
		return p, nil
	}
	if !target.AtLeast(current) {
		return nil, common.NewValidationError(fmt.Sprintf("Cannot downgrade from %s to %s", current, target))
	}

	p.SubscriptionPlan = target
	p.UpdatedAt = s.now().UTC()
	if err := s.storage.InternalStore().SaveProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Str("from", string(current)).Str("to", string(target)).Msg("Plan upgraded")
	return p, nil
}
