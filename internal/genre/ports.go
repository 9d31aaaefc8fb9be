package genre

import "context"

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=genre

// Repository defines the contract for genre storage.
type Repository interface {
	Create(ctx context.Context, g *Genre) error
	NameExists(ctx context.Context, name string) (bool, error)
	List(ctx context.Context, offset, limit int) ([]Genre, error)
}
