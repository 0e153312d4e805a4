package utils

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	TokenClaimsKey contextKey = "jwtClaims"
	UserEmailKey   contextKey = "email"
)

// SetClaimsContext stores verified token claims (called by the auth middleware).
func SetClaimsContext(ctx context.Context, claims jwt.MapClaims) context.Context {
	ctx = context.WithValue(ctx, TokenClaimsKey, claims)
	if email, ok := claims["email"].(string); ok {
		ctx = context.WithValue(ctx, UserEmailKey, email)
	}
	return ctx
}

func GetClaimsFromContext(ctx context.Context) (jwt.MapClaims, bool) {
	claims, ok := ctx.Value(TokenClaimsKey).(jwt.MapClaims)
	return claims, ok
}

// GetUserEmailFromContext returns the verified caller email, or "" when the
// request did not pass through the auth middleware.
func GetUserEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(UserEmailKey).(string)
	return email
}
