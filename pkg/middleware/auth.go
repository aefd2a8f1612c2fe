// Package middleware provides the HTTP middleware stack for the API.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/nikhilmekle/mern-ecommerce-app/pkg/auth"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/logger"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/response"
)

// userIDKey is the unexported context key holding the authenticated user id.
type userIDKey struct{}

// UserIDFromCtx returns the authenticated user's id set by RequireSignIn.
func UserIDFromCtx(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userIDKey{}).(uint)
	return id, ok
}

// RoleLookup resolves a user's current role flag from storage.
// 0 = ordinary user, 1 = admin.
type RoleLookup func(ctx context.Context, userID uint) (int, error)

// RequireSignIn verifies the Authorization token and attaches the subject
// id to the request context. The header may carry the raw token or a
// "Bearer " prefix. Any failure short-circuits with a 401.
func RequireSignIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
		if token == "" {
			response.Unauthorized(w, "Authorization token is required")
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin allows only users whose current role flag is 1. The role is
// re-read from storage on every request rather than trusted from the token,
// so revoking admin takes effect on the very next request.
// Must run after RequireSignIn.
func RequireAdmin(lookup RoleLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromCtx(r.Context())
			if !ok {
				response.Unauthorized(w, "Unauthorized Access")
				return
			}

			role, err := lookup(r.Context(), userID)
			if err != nil {
				logger.WithCtx(r.Context()).Warn("admin gate: role lookup failed",
					"user_id", userID, "error", err)
				response.Unauthorized(w, "Unauthorized Access")
				return
			}
			if role != 1 {
				response.Unauthorized(w, "Unauthorized Access")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
