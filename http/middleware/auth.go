package middleware

import (
	"context"
	"net/http"
	"strings"

	"eduportal/http/response"
	"eduportal/services"
)

// AdminCookieName is the session cookie set on login.
const AdminCookieName = "admin_token"

type contextKey string

const adminClaimsKey contextKey = "adminClaims"

// RequireAdmin guards a handler behind a valid admin session. The token is
// read from the session cookie, with an Authorization bearer fallback for
// API clients.
func RequireAdmin(admins *services.AdminService, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if cookie, err := r.Cookie(AdminCookieName); err == nil {
			token = cookie.Value
		}
		if token == "" {
			if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}
		if token == "" {
			response.ErrorResponse(w, http.StatusUnauthorized, "authentication required")
			return
		}

		claims, err := admins.VerifyToken(token)
		if err != nil {
			response.ErrorResponse(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}

		next(w, r.WithContext(WithAdmin(r.Context(), claims)))
	}
}

// WithAdmin attaches the admin's claims to the request context.
func WithAdmin(ctx context.Context, claims *services.AdminClaims) context.Context {
	return context.WithValue(ctx, adminClaimsKey, claims)
}

// AdminFrom returns the authenticated admin's claims, or nil outside a
// guarded route.
func AdminFrom(ctx context.Context) *services.AdminClaims {
	claims, _ := ctx.Value(adminClaimsKey).(*services.AdminClaims)
	return claims
}
