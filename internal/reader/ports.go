package reader

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=reader

// Repository defines the contract for reader storage.
type Repository interface {
	Create(ctx context.Context, r *Reader) error
	GetByID(ctx context.Context, id int64) (Reader, error)
	GetByEmail(ctx context.Context, email string) (Reader, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, offset, limit int) ([]Reader, error)
	Delete(ctx context.Context, id int64) error
}
