package middleware

import (
	"context"
	"errors"
	"net/http"

	"gadgetshop-be/internal/auth"
	"gadgetshop-be/internal/logger"
	"gadgetshop-be/internal/user"
	"gadgetshop-be/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// TokenVerifier is satisfied by *auth.Issuer.
type TokenVerifier interface {
	Parse(token string) (jwt.MapClaims, error)
}

// RoleLookup returns the stored role for an email, or user.ErrUserNotFound.
type RoleLookup interface {
	RoleOf(ctx context.Context, email string) (string, error)
}

// Authenticate rejects requests without a valid credential and stores the
// verified claims in the request context. It never touches the store.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				utils.WriteJSONError(w, auth.ErrUnauthenticated.Error(), http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Parse(tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Debug("token rejected", zap.Error(err))
				utils.WriteJSONError(w, auth.ErrInvalidToken.Error(), http.StatusUnauthorized)
				return
			}

			ctx := utils.SetClaimsContext(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole must run after Authenticate. The role is re-read from the store
// on every request and compared exactly.
func RequireRole(users RoleLookup, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.FromCtx(ctx).With(zap.String("required_role", role))

			claims, ok := utils.GetClaimsFromContext(ctx)
			if !ok {
				log.Error("role gate reached without verified claims")
				utils.WriteJSONError(w, auth.ErrUnauthenticated.Error(), http.StatusUnauthorized)
				return
			}

			email := auth.EmailFromClaims(claims)
			if email == "" {
				utils.WriteJSONError(w, auth.ErrForbidden.Error(), http.StatusForbidden)
				return
			}

			actual, err := users.RoleOf(ctx, email)
			switch {
			case errors.Is(err, user.ErrUserNotFound):
				utils.WriteJSONError(w, auth.ErrForbidden.Error(), http.StatusForbidden)
				return
			case err != nil:
				log.Error("failed to load caller role", zap.String("email", email), zap.Error(err))
				utils.WriteJSONError(w, "Failed to verify role", http.StatusInternalServerError)
				return
			}

			if actual != role {
				log.Info("forbidden: role mismatch", zap.String("email", email), zap.String("role", actual))
				utils.WriteJSONError(w, auth.ErrForbidden.Error(), http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
