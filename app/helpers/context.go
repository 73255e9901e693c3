package helpers

import (
	"context"

	"github.com/farsishop/storefront/app/models"
	"github.com/farsishop/storefront/app/utils/sessions"
)

func WithClaims(ctx context.Context, claims *sessions.Claims) context.Context {
	return context.WithValue(ctx, ContextKeyClaims, claims)
}

// GetClaims returns the session claims, or nil for anonymous requests.
func GetClaims(ctx context.Context) *sessions.Claims {
	claims, _ := ctx.Value(ContextKeyClaims).(*sessions.Claims)
	return claims
}

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, ContextKeyUser, user)
}

// GetUser returns the user loaded by the admin middleware, if any.
func GetUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(ContextKeyUser).(*models.User)
	return user
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyRequestID).(string)
	return id
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, id)
}
