package user

import "time"

// Role represents user roles in the system
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleUser   Role = "user"
	RoleViewer Role = "viewer"
)

// AuthProvider represents the authentication provider
type AuthProvider string

const (
	AuthProviderLocal  AuthProvider = "local"
	AuthProviderGoogle AuthProvider = "google"
)

// User represents an account. Username doubles as the name of the
// account's file namespace.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	Username     string       `json:"username"`
	Password     string       `json:"-"` // Never expose password in JSON
	Role         Role         `json:"role"`
	AuthProvider AuthProvider `json:"authProvider"`
	GoogleID     string       `json:"-"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// UserResponse is the safe user representation for API responses
type UserResponse struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	Username     string       `json:"username"`
	Role         Role         `json:"role"`
	AuthProvider AuthProvider `json:"authProvider"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// ToResponse converts a User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		Role:         u.Role,
		AuthProvider: u.AuthProvider,
		CreatedAt:    u.CreatedAt,
	}
}

// UpdatePasswordRequest represents the request to change password
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// CanUpload returns true if the role can upload files
func (r Role) CanUpload() bool {
	return r == RoleAdmin || r == RoleUser
}

// CanDelete returns true if the role can delete files
func (r Role) CanDelete() bool {
	return r == RoleAdmin || r == RoleUser
}
