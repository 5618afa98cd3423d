package auth

import (
	"net/http"
	"strings"

	"github.com/olybars/olybars/internal/middleware"
)

// Middleware resolves the caller's identity from the Authorization header
// and stores the user ID in the request context. Requests without a valid
// access token proceed as the guest user: browsing is open to everyone, and
// point-bearing endpoints reject guests themselves with a structured error.
func Middleware(svc *JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := "guest"

			if header := r.Header.Get("Authorization"); header != "" {
				if token, ok := strings.CutPrefix(header, "Bearer "); ok {
					if claims, err := svc.ValidateToken(token); err == nil && claims.Type == TokenTypeAccess {
						userID = claims.Subject
					}
				}
			}

			ctx := middleware.SetUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
