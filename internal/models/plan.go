package models

import (
	"encoding/json"
	"strings"
)

// SubscriptionPlan is the caller's tier. Plans are totally ordered free < premium < pro.
type SubscriptionPlan string

const (
	PlanFree    SubscriptionPlan = "free"
	PlanPremium SubscriptionPlan = "premium"
	PlanPro     SubscriptionPlan = "pro"
)

// Unlimited marks a PlanLimits field without a cap.
const Unlimited = -1

// ParsePlan normalizes a plan name. The second result is false for unknown plans.
func ParsePlan(s string) (SubscriptionPlan, bool) {
	switch SubscriptionPlan(strings.ToLower(strings.TrimSpace(s))) {
	case PlanFree:
		return PlanFree, true
	case PlanPremium:
		return PlanPremium, true
	case PlanPro:
		return PlanPro, true
	}
	return "", false
}

// Rank orders plans; unknown plans rank below free.
func (p SubscriptionPlan) Rank() int {
	switch p {
	case PlanFree:
		return 1
	case PlanPremium:
		return 2
	case PlanPro:
		return 3
	}
	return 0
}

// AtLeast reports whether p is the same tier as min or higher.
func (p SubscriptionPlan) AtLeast(min SubscriptionPlan) bool {
	return p.Rank() >= min.Rank()
}

// PlanLimits are the per-plan list caps. Unlimited fields hold -1.
type PlanLimits struct {
	MaxStocks int `json:"maxStocks"`
	MaxNews   int `json:"maxNews"`
	MaxAlerts int `json:"maxAlerts"`
}

// MarshalJSON renders unlimited caps as null.
func (l PlanLimits) MarshalJSON() ([]byte, error) {
	capOrNil := func(n int) *int {
		if n < 0 {
			return nil
		}
		return &n
	}
	return json.Marshal(struct {
		MaxStocks *int `json:"maxStocks"`
		MaxNews   *int `json:"maxNews"`
		MaxAlerts *int `json:"maxAlerts"`
	}{capOrNil(l.MaxStocks), capOrNil(l.MaxNews), capOrNil(l.MaxAlerts)})
}
