package common

import (
	"context"
)

// UserContext holds the authenticated caller resolved from the bearer token.
// Plan is the subscription plan stored on the caller's profile.
type UserContext struct {
	UserID string
	Email  string
	Plan   string
}

type contextKey int

const userContextKey contextKey = iota

// WithUserContext stores a UserContext in the request context.
func WithUserContext(ctx context.Context, uc *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, uc)
}

// UserContextFromContext retrieves the UserContext from context, or nil if absent.
func UserContextFromContext(ctx context.Context) *UserContext {
	uc, _ := ctx.Value(userContextKey).(*UserContext)
	return uc
}

// ResolveUserID returns the UserID from context, or "" for anonymous requests.
func ResolveUserID(ctx context.Context) string {
	if uc := UserContextFromContext(ctx); uc != nil {
		return uc.UserID
	}
	return ""
}

// ResolvePlan returns the caller's plan, or "free" for anonymous requests.
func ResolvePlan(ctx context.Context) string {
	if uc := UserContextFromContext(ctx); uc != nil && uc.Plan != "" {
		return uc.Plan
	}
	return "free"
}
