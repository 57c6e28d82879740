package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"filehub/internal/application/auth"
	"filehub/internal/domain/user"
	"filehub/internal/infrastructure/config"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var usernameStrip = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// GoogleUserInfo represents the user info returned by Google
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// OAuthHandler handles Google OAuth authentication
type OAuthHandler struct {
	oauthConfig *oauth2.Config
	authService auth.Service
	userRepo    user.Repository
	frontendURL string
	userInfoURL string
	logger      *slog.Logger
}

// NewOAuthHandler creates a new OAuth handler
func NewOAuthHandler(cfg *config.Config, authService auth.Service, userRepo user.Repository, logger *slog.Logger) *OAuthHandler {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.BaseURL + "/api/auth/google/callback",
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &OAuthHandler{
		oauthConfig: oauthConfig,
		authService: authService,
		userRepo:    userRepo,
		frontendURL: cfg.FrontendURL,
		userInfoURL: googleUserInfoURL,
		logger:      logger,
	}
}

// GoogleLogin redirects to Google OAuth login page
func (h *OAuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if h.oauthConfig.ClientID == "" {
		SendError(w, "Google OAuth not configured", http.StatusServiceUnavailable)
		return
	}

	state := uuid.New().String()

	// Store state in cookie for verification
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   strings.HasPrefix(h.frontendURL, "https"),
		MaxAge:   600, // 10 minutes
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.oauthConfig.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallback handles the OAuth callback from Google
func (h *OAuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil {
		h.redirectWithError(w, r, "Invalid state")
		return
	}

	if r.URL.Query().Get("state") != stateCookie.Value {
		h.redirectWithError(w, r, "State mismatch")
		return
	}

	// Clear state cookie
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	if errMsg := r.URL.Query().Get("error"); errMsg != "" {
		h.redirectWithError(w, r, errMsg)
		return
	}

	ctx := r.Context()
	token, err := h.oauthConfig.Exchange(ctx, r.URL.Query().Get("code"))
	if err != nil {
		h.logger.Warn("google token exchange failed", slog.String("error", err.Error()))
		h.redirectWithError(w, r, "Failed to exchange token")
		return
	}

	googleUser, err := h.getGoogleUserInfo(ctx, token)
	if err != nil {
		h.logger.Warn("google userinfo failed", slog.String("error", err.Error()))
		h.redirectWithError(w, r, "Failed to get user info")
		return
	}

	u, err := h.findOrCreateGoogleUser(googleUser)
	if err != nil {
		h.logger.Error("google user provisioning failed", slog.String("error", err.Error()))
		h.redirectWithError(w, r, "Failed to create user")
		return
	}

	session, err := h.authService.StartSession(u)
	if err != nil {
		h.redirectWithError(w, r, "Failed to create session")
		return
	}

	redirectURL := fmt.Sprintf("%s/auth/callback?token=%s", h.frontendURL, url.QueryEscape(session.Token))
	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}

// getGoogleUserInfo fetches user info with an OAuth2-authenticated client
func (h *OAuthHandler) getGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*GoogleUserInfo, error) {
	resp, err := h.oauthConfig.Client(ctx, token).Get(h.userInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned %s", resp.Status)
	}

	var userInfo GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, err
	}
	if userInfo.ID == "" || userInfo.Email == "" {
		return nil, errors.New("userinfo missing id or email")
	}

	return &userInfo, nil
}

// findOrCreateGoogleUser finds an existing user or creates a new one
func (h *OAuthHandler) findOrCreateGoogleUser(googleUser *GoogleUserInfo) (*user.User, error) {
	u, err := h.userRepo.GetByGoogleID(googleUser.ID)
	if err == nil {
		return u, nil
	}

	// Link an existing local account with the same email
	u, err = h.userRepo.GetByEmail(googleUser.Email)
	if err == nil {
		u.GoogleID = googleUser.ID
		if err := h.userRepo.Update(u); err != nil {
			return nil, err
		}
		return u, nil
	}

	if !errors.Is(err, user.ErrUserNotFound) {
		return nil, err
	}

	username, err := h.uniqueUsername(googleUser)
	if err != nil {
		return nil, err
	}

	role, err := h.authService.AccountRole()
	if err != nil {
		return nil, err
	}

	newUser := &user.User{
		ID:           uuid.New().String(),
		Email:        googleUser.Email,
		Username:     username,
		Password:     "", // No password for Google users
		Role:         role,
		AuthProvider: user.AuthProviderGoogle,
		GoogleID:     googleUser.ID,
	}

	if err := h.userRepo.Create(newUser); err != nil {
		return nil, err
	}

	return newUser, nil
}

// uniqueUsername derives a namespace-safe username from the Google profile
// and appends a counter until it is unused
func (h *OAuthHandler) uniqueUsername(googleUser *GoogleUserInfo) (string, error) {
	base := usernameBase(googleUser)
	username := base
	for i := 1; ; i++ {
		_, err := h.userRepo.GetByUsername(username)
		if errors.Is(err, user.ErrUserNotFound) {
			return username, nil
		}
		if err != nil {
			return "", err
		}
		username = fmt.Sprintf("%s%d", base, i)
	}
}

func usernameBase(googleUser *GoogleUserInfo) string {
	for _, candidate := range []string{googleUser.GivenName, strings.Split(googleUser.Email, "@")[0]} {
		name := strings.Trim(usernameStrip.ReplaceAllString(candidate, ""), ".")
		if len(name) > 48 {
			name = name[:48]
		}
		if auth.ValidUsername(name) {
			return name
		}
	}
	return "user"
}

// redirectWithError redirects to frontend with error message
func (h *OAuthHandler) redirectWithError(w http.ResponseWriter, r *http.Request, errMsg string) {
	redirectURL := fmt.Sprintf("%s/auth/callback?error=%s", h.frontendURL, url.QueryEscape(errMsg))
	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}

// GoogleStatus returns whether Google OAuth is configured
func (h *OAuthHandler) GoogleStatus(w http.ResponseWriter, r *http.Request) {
	SendSuccess(w, "", map[string]any{
		"enabled": h.oauthConfig.ClientID != "",
	})
}
