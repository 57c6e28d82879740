package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"filehub/internal/application/auth"
	"filehub/internal/domain/user"
)

// UserHandler handles user profile operations
type UserHandler struct {
	authService auth.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService auth.Service) *UserHandler {
	return &UserHandler{authService: authService}
}

// GetProfile handles GET /api/user/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	u := GetUserFromContext(r.Context())
	if u == nil {
		SendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	SendSuccess(w, "", u.ToResponse())
}

// UpdatePassword handles PUT /api/user/password. All sessions of the
// account end, so the client has to sign in again.
func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	u := GetUserFromContext(r.Context())
	if u == nil {
		SendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req user.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		SendError(w, "Current and new password are required", http.StatusBadRequest)
		return
	}

	if err := h.authService.ChangePassword(u, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, user.ErrPasswordNotSet):
			SendError(w, "Google users cannot change password", http.StatusBadRequest)
		case errors.Is(err, user.ErrInvalidPassword):
			SendError(w, "New password must be at least 6 characters", http.StatusBadRequest)
		case errors.Is(err, user.ErrInvalidCredentials):
			SendError(w, "Current password is incorrect", http.StatusUnauthorized)
		default:
			SendError(w, "Failed to update password", http.StatusInternalServerError)
		}
		return
	}

	SendSuccess(w, "Password updated successfully", nil)
}
