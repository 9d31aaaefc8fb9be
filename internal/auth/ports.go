package auth

import (
	"context"
	"time"

	"libraryapi/internal/reader"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=auth

// RevocationRepository stores the ids of logged-out tokens until they expire.
type RevocationRepository interface {
	Revoke(ctx context.Context, jti string, readerID int64, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	CleanupExpired(ctx context.Context) (int64, error)
}

// ReaderFinder looks up token owners. *reader.Service satisfies it.
type ReaderFinder interface {
	Get(ctx context.Context, id int64) (reader.Reader, error)
	GetByEmail(ctx context.Context, email string) (reader.Reader, error)
}
