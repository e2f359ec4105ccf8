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

func TestGetUser(t *testing.T) {
	store := NewInternalStore(testDB(t), testLogger())
	ctx := context.Background()

	user := &models.InternalUser{
		UserID:       "testuser1",
		Email:        "test@example.com",
		PasswordHash: "hash123",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.SaveUser(ctx, user))

	got, err := store.GetUser(ctx, "testuser1")
	require.NoError(t, err)
	assert.Equal(t, "testuser1", got.UserID)
	assert.Equal(t, "test@example.com", got.Email)
	assert.Equal(t, "hash123", got.PasswordHash)
}

func TestGetUserNotFound(t *testing.T) {
	store := NewInternalStore(testDB(t), testLogger())

	_, err := store.GetUser(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestGetUserByEmail(t *testing.T) {
	store := NewInternalStore(testDB(t), testLogger())
	ctx := context.Background()

	for _, u := range []*models.InternalUser{
		{UserID: "a", Email: "a@example.com"},
		{UserID: "b", Email: "b@example.com"},
	} {
		require.NoError(t, store.SaveUser(ctx, u))
	}

	got, err := store.GetUserByEmail(ctx, "b@example.com")
	require.NoError(t, err)
	assert.Equal(t, "b", got.UserID)

	_, err = store.GetUserByEmail(ctx, "c@example.com")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestSaveUser_Overwrites(t *testing.T) {
	store := NewInternalStore(testDB(t), testLogger())
	ctx := context.Background()

	require.NoError(t, store.SaveUser(ctx, &models.InternalUser{UserID: "u", Email: "old@example.com"}))
	require.NoError(t, store.SaveUser(ctx, &models.InternalUser{UserID: "u", Email: "new@example.com"}))

	got, err := store.GetUser(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", got.Email)
}

func TestProfile_RoundTrip(t *testing.T) {
	store := NewInternalStore(testDB(t), testLogger())
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.SaveProfile(ctx, &models.Profile{
		UserID:           "u1",
		Email:            "u1@example.com",
		FullName:         "User One",
		SubscriptionPlan: models.PlanPro,
		CreatedAt:        now,
		UpdatedAt:        now,
	}))

	got, err := store.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "User One", got.FullName)
	assert.Equal(t, models.PlanPro, got.SubscriptionPlan)
	assert.True(t, now.Equal(got.UpdatedAt))

	_, err = store.GetProfile(ctx, "missing")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestPreferences_RoundTrip(t *testing.T) {
	store := NewInternalStore(testDB(t), testLogger())
	ctx := context.Background()

	prefs := models.DefaultPreferences("u1")
	prefs.RiskTolerance = models.RiskAggressive
	prefs.PreferredSectors = []string{"Technology"}
	require.NoError(t, store.SavePreferences(ctx, prefs))

	got, err := store.GetPreferences(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.RiskAggressive, got.RiskTolerance)
	assert.Equal(t, []string{"Technology"}, got.PreferredSectors)
	assert.True(t, got.NotificationSettings.PriceAlerts)

	_, err = store.GetPreferences(ctx, "missing")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}
