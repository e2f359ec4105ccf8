package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

// profileRecord is the stored form of models.Profile. The model's json id
// would collide with the SurrealDB record id.
type profileRecord struct {
	UserID           string    `json:"user_id"`
	Email            string    `json:"email"`
	FullName         string    `json:"full_name"`
	SubscriptionPlan string    `json:"subscription_plan"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func newProfileRecord(p *models.Profile) profileRecord {
	return profileRecord{
		UserID:           p.UserID,
		Email:            p.Email,
		FullName:         p.FullName,
		SubscriptionPlan: string(p.SubscriptionPlan),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func (r profileRecord) model() *models.Profile {
	plan, ok := models.ParsePlan(r.SubscriptionPlan)
	if !ok {
		plan = models.PlanFree
	}
	return &models.Profile{
		UserID:           r.UserID,
		Email:            r.Email,
		FullName:         r.FullName,
		SubscriptionPlan: plan,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// InternalStore holds accounts, profiles and preferences.
type InternalStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

var _ interfaces.InternalStore = (*InternalStore)(nil)

func NewInternalStore(db *surrealdb.DB, logger *common.Logger) *InternalStore {
	return &InternalStore{
		db:     db,
		logger: logger,
	}
}

func (s *InternalStore) GetUser(ctx context.Context, userID string) (*models.InternalUser, error) {
	user, err := surrealdb.Select[models.InternalUser](ctx, s.db, surrealmodels.NewRecordID(tableUser, userID))
	if err != nil {
		if isNotFoundError(err) {
			return nil, notFound("user", userID)
		}
		return nil, fmt.Errorf("failed to select user: %w", err)
	}
	if user == nil || user.UserID == "" {
		return nil, notFound("user", userID)
	}
	return user, nil
}

func (s *InternalStore) GetUserByEmail(ctx context.Context, email string) (*models.InternalUser, error) {
	sql := "SELECT * FROM user WHERE email = $email LIMIT 1"
	users, err := queryAll[models.InternalUser](ctx, s.db, sql, map[string]any{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}
	if len(users) == 0 {
		return nil, notFound("user", email)
	}
	return &users[0], nil
}

func (s *InternalStore) SaveUser(ctx context.Context, user *models.InternalUser) error {
	return upsert(ctx, s.db, tableUser, user.UserID, user)
}

func (s *InternalStore) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	rec, err := surrealdb.Select[profileRecord](ctx, s.db, surrealmodels.NewRecordID(tableProfile, userID))
	if err != nil {
		if isNotFoundError(err) {
			return nil, notFound("profile", userID)
		}
		return nil, fmt.Errorf("failed to select profile: %w", err)
	}
	if rec == nil || rec.UserID == "" {
		return nil, notFound("profile", userID)
	}
	return rec.model(), nil
}

func (s *InternalStore) SaveProfile(ctx context.Context, profile *models.Profile) error {
	return upsert(ctx, s.db, tableProfile, profile.UserID, newProfileRecord(profile))
}

func (s *InternalStore) GetPreferences(ctx context.Context, userID string) (*models.Preferences, error) {
	prefs, err := surrealdb.Select[models.Preferences](ctx, s.db, surrealmodels.NewRecordID(tablePreferences, userID))
	if err != nil {
		if isNotFoundError(err) {
			return nil, notFound("preferences", userID)
		}
		return nil, fmt.Errorf("failed to select preferences: %w", err)
	}
	if prefs == nil || prefs.UserID == "" {
		return nil, notFound("preferences", userID)
	}
	return prefs, nil
}

func (s *InternalStore) SavePreferences(ctx context.Context, prefs *models.Preferences) error {
	return upsert(ctx, s.db, tablePreferences, prefs.UserID, prefs)
}

func (s *InternalStore) Close() error {
	return nil
}
