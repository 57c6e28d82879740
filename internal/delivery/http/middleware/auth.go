package middleware

import (
	"net/http"

	"filehub/internal/application/auth"
	"filehub/internal/delivery/http/handler"
	"filehub/internal/domain/user"
)

// Auth middleware validates the authorization token
func Auth(authService auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := handler.ExtractToken(r)
			if token == "" {
				handler.SendError(w, "Authorization required", http.StatusUnauthorized)
				return
			}

			u, err := authService.ValidateToken(token)
			if err != nil {
				handler.SendError(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(handler.WithUser(r.Context(), u)))
		})
	}
}

// RequireCapability rejects users whose role does not satisfy allowed,
// e.g. user.Role.CanUpload
func RequireCapability(allowed func(user.Role) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := handler.GetUserFromContext(r.Context())
			if u == nil {
				handler.SendError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !allowed(u.Role) {
				handler.SendError(w, "Insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
