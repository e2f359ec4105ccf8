package models

import "time"

// InternalUser is an account used for authentication.
type InternalUser struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	ModifiedAt   time.Time `json:"modified_at"`
}

// Profile is the user facing account record holding the subscription plan.
type Profile struct {
	UserID           string           `json:"id"`
	Email            string           `json:"email"`
	FullName         string           `json:"full_name"`
	SubscriptionPlan SubscriptionPlan `json:"subscription_plan"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// NotificationSettings toggles the notification channels.
type NotificationSettings struct {
	PriceAlerts        bool `json:"price_alerts"`
	NewsUpdates        bool `json:"news_updates"`
	PortfolioUpdates   bool `json:"portfolio_updates"`
	MarketAlerts       bool `json:"market_alerts"`
	EmailNotifications bool `json:"email_notifications"`
}

// Risk tolerance values
const (
	RiskConservative = "conservative"
	RiskModerate     = "moderate"
	RiskAggressive   = "aggressive"
)

// Preferences are per-user dashboard settings.
type Preferences struct {
	UserID               string               `json:"user_id"`
	NotificationSettings NotificationSettings `json:"notification_settings"`
	RiskTolerance        string               `json:"risk_tolerance"`
	InvestmentGoals      []string             `json:"investment_goals"`
	PreferredSectors     []string             `json:"preferred_sectors"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

// DefaultPreferences returns the settings a new account starts with.
func DefaultPreferences(userID string) *Preferences {
	return &Preferences{
		UserID: userID,
		NotificationSettings: NotificationSettings{
			PriceAlerts:        true,
			NewsUpdates:        true,
			PortfolioUpdates:   true,
			MarketAlerts:       false,
			EmailNotifications: true,
		},
		RiskTolerance:    RiskModerate,
		InvestmentGoals:  []string{},
		PreferredSectors: []string{},
	}
}
