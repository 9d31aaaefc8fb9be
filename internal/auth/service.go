package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"libraryapi/internal/apperr"
	"libraryapi/internal/httpx"
	"libraryapi/internal/logging"
	"libraryapi/internal/platform/crypto"
)

// Service issues, validates and revokes reader access tokens.
type Service struct {
	secret  string
	ttl     time.Duration
	readers ReaderFinder
	revoked RevocationRepository
	log     logging.Logger
}

func NewService(secret string, ttl time.Duration, readers ReaderFinder, revoked RevocationRepository, log logging.Logger) *Service {
	return &Service{
		secret:  secret,
		ttl:     ttl,
		readers: readers,
		revoked: revoked,
		log:     log,
	}
}

// Login exchanges an email and password for a signed access token.
func (s *Service) Login(ctx context.Context, email, password string) (Token, error) {
	rd, err := s.readers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Token{}, ErrInvalidCredentials
		}
		return Token{}, err
	}
	if !crypto.VerifyPassword(rd.PasswordHash, password) {
		s.log.Debug(ctx, "login rejected", "reader_id", rd.ID)
		return Token{}, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.ttl)
	token, _, err := crypto.GenerateToken(s.secret, rd.ID, rd.Email, s.ttl)
	if err != nil {
		return Token{}, fmt.Errorf("generate token: %w", err)
	}
	return Token{AccessToken: token, TokenType: TokenType, ExpiresAt: expiresAt.UTC().Truncate(time.Second)}, nil
}

// Validate parses the token and checks that it was not revoked and that its
// reader still exists.
func (s *Service) Validate(ctx context.Context, token string) (*crypto.Claims, error) {
	claims, err := crypto.ParseToken(s.secret, token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, ErrUnauthorized
	}

	if _, err := s.readers.Get(ctx, claims.ReaderID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return claims, nil
}

// Authenticate implements httpx.TokenValidator.
func (s *Service) Authenticate(ctx context.Context, token string) (httpx.Principal, error) {
	claims, err := s.Validate(ctx, token)
	if err != nil {
		return httpx.Principal{}, err
	}
	return httpx.Principal{
		ReaderID: claims.ReaderID,
		Email:    claims.Email,
		TokenID:  claims.ID,
		Token:    token,
	}, nil
}

// Logout revokes the token until it would have expired anyway.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := crypto.ParseToken(s.secret, token)
	if err != nil {
		return ErrUnauthorized
	}

	expiresAt := time.Now().Add(s.ttl)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := s.revoked.Revoke(ctx, claims.ID, claims.ReaderID, expiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.log.Info(ctx, "token revoked", "reader_id", claims.ReaderID)
	return nil
}

// PruneRevoked drops revocations whose tokens have expired.
func (s *Service) PruneRevoked(ctx context.Context) (int64, error) {
	return s.revoked.CleanupExpired(ctx)
}
