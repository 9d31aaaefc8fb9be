package auth

import (
	"time"

	"libraryapi/internal/apperr"
)

var (
	// ErrUnauthorized is returned for missing, malformed, expired or revoked
	// tokens and for tokens whose reader no longer exists.
	ErrUnauthorized = apperr.New(apperr.ErrUnauthorized, "could not validate credentials")
	// ErrInvalidCredentials is returned by Login.
	ErrInvalidCredentials = apperr.New(apperr.ErrUnauthorized, "incorrect email or password")
)

// TokenType is the OAuth2 token type reported to clients.
const TokenType = "bearer"

// Token is the login response.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}
