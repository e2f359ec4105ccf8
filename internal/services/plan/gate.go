// Package plan maps subscription plans to their feature caps
package plan

import "github.com/bobmcallan/folio/internal/models"

var limits = map[models.SubscriptionPlan]models.PlanLimits{
	models.PlanFree:    {MaxStocks: 3, MaxNews: 5, MaxAlerts: 3},
	models.PlanPremium: {MaxStocks: models.Unlimited, MaxNews: models.Unlimited, MaxAlerts: 10},
	models.PlanPro:     {MaxStocks: models.Unlimited, MaxNews: models.Unlimited, MaxAlerts: models.Unlimited},
}

// Limits returns the caps for a plan. Unknown plans get the free caps.
func Limits(p models.SubscriptionPlan) models.PlanLimits {
	if l, ok := limits[p]; ok {
		return l
	}
	return limits[models.PlanFree]
}

// All returns the caps of every plan keyed by plan name.
func All() map[models.SubscriptionPlan]models.PlanLimits {
	out := make(map[models.SubscriptionPlan]models.PlanLimits, len(limits))
	for k, v := range limits {
		out[k] = v
	}
	return out
}

// Cap truncates items to max entries. A negative max leaves items unchanged.
func Cap[T any](items []T, max int) []T {
	if max < 0 || len(items) <= max {
		return items
	}
	return items[:max]
}

// Unlocked reports whether plan p includes features of the min tier.
func Unlocked(p, min models.SubscriptionPlan) bool {
	return p.AtLeast(min)
}

// Within reports whether count more items still fit under max.
// Used to reject additions once a cap is reached.
func Within(count, max int) bool {
	return max < 0 || count < max
}
