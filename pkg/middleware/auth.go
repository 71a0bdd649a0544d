package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/buildmaster/storefront/pkg/auth"
	"github.com/buildmaster/storefront/pkg/response"
)

type userIDKey struct{}
type roleKey struct{}

// AuthMiddleware validates the Bearer token and stores the user ID and role
// in the request context for downstream handlers and rbac middleware.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		if token == "" || token == r.Header.Get("Authorization") {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, claims.UserID)
		ctx = context.WithValue(ctx, roleKey{}, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth stores the user ID and role when a valid token is present but
// lets anonymous requests through. Used by the chat endpoints, which serve
// guests and customers alike.
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token != "" && token != r.Header.Get("Authorization") {
			if claims, err := auth.ValidateToken(token); err == nil {
				ctx := context.WithValue(r.Context(), userIDKey{}, claims.UserID)
				ctx = context.WithValue(ctx, roleKey{}, claims.Role)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// UserIDFromCtx returns the authenticated user ID stored by AuthMiddleware.
func UserIDFromCtx(r *http.Request) (uint, bool) {
	id, ok := r.Context().Value(userIDKey{}).(uint)
	return id, ok
}

// RoleFromCtx returns the authenticated user's role stored by AuthMiddleware.
func RoleFromCtx(r *http.Request) (string, bool) {
	role, ok := r.Context().Value(roleKey{}).(string)
	return role, ok
}
