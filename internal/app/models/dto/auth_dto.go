package dto

import "github.com/pintando7/escolinha/internal/app/models"

// LoginRequest carries login credentials. Username is either an email
// for managed accounts or the local-override identifier.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest creates a managed operator account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

// RefreshTokenRequest rotates an access token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// SessionUser is the session-scoped identity returned to clients.
type SessionUser struct {
	ID       string          `json:"id"`
	Username string          `json:"username"`
	Name     string          `json:"name"`
	Role     models.RoleType `json:"role"`
	Local    bool            `json:"local"` // true for local-override sessions
}

// TokenResponse is returned on successful login/refresh.
type TokenResponse struct {
	AccessToken      string      `json:"accessToken"`
	RefreshToken     string      `json:"refreshToken,omitempty"`
	ExpiresIn        int         `json:"expiresIn"`
	RefreshExpiresIn int         `json:"refreshExpiresIn,omitempty"`
	User             SessionUser `json:"user"`
}

// RegisterDeviceRequest registers a push token for this installation.
type RegisterDeviceRequest struct {
	Platform string `json:"platform" binding:"required"` // "android" | "ios"
	Token    string `json:"token" binding:"required"`
}
