package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"filehub/internal/application/auth"
	domain "filehub/internal/domain/auth"
	"filehub/internal/domain/user"
)

type AuthHandler struct {
	service auth.Service
	logger  *slog.Logger
}

func NewAuthHandler(service auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Username == "" || req.Password == "" {
		SendError(w, "Email, username, and password are required", http.StatusBadRequest)
		return
	}

	newUser, err := h.service.Register(req)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserAlreadyExists):
			SendError(w, "User already exists", http.StatusConflict)
		case errors.Is(err, user.ErrInvalidEmail):
			SendError(w, "Invalid email address", http.StatusBadRequest)
		case errors.Is(err, user.ErrInvalidUsername):
			SendError(w, "Username must be 3-64 characters of letters, digits, '.', '_' or '-'", http.StatusBadRequest)
		case errors.Is(err, user.ErrInvalidPassword):
			SendError(w, "Password must be at least 6 characters", http.StatusBadRequest)
		default:
			h.logger.Error("registration failed", slog.String("error", err.Error()))
			SendError(w, "Failed to register user", http.StatusInternalServerError)
		}
		return
	}

	h.logger.Info("user registered",
		slog.String("username", newUser.Username),
		slog.String("role", string(newUser.Role)),
	)
	SendSuccess(w, "User registered successfully", newUser.ToResponse())
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		SendError(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Login(req)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			SendError(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		h.logger.Error("login failed", slog.String("error", err.Error()))
		SendError(w, "Failed to login", http.StatusInternalServerError)
		return
	}

	SendSuccess(w, "Login successful", resp)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := ExtractToken(r)
	if token == "" {
		SendError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	if err := h.service.Logout(token); err != nil {
		SendError(w, "Failed to logout", http.StatusInternalServerError)
		return
	}

	SendSuccess(w, "Logged out successfully", nil)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u := GetUserFromContext(r.Context())
	if u == nil {
		SendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	SendSuccess(w, "", u.ToResponse())
}

// ExtractToken returns the bearer token from the Authorization header,
// falling back to the token query parameter used by download links
func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}

	return ""
}
