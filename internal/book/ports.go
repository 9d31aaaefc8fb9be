package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage. Create and Update
// resolve the author and genre ids and write the book with both
// association sets atomically.
type Repository interface {
	Create(ctx context.Context, in Input) (Book, error)
	Update(ctx context.Context, id int64, in Input) (Book, error)
	GetByID(ctx context.Context, id int64) (Book, error)
	List(ctx context.Context, offset, limit int) ([]Book, error)
	Delete(ctx context.Context, id int64) error
}
