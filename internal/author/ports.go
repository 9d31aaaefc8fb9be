package author

import "context"

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=author

// Repository defines the contract for author storage.
type Repository interface {
	Create(ctx context.Context, a *Author) error
	GetByID(ctx context.Context, id int64) (Author, error)
	List(ctx context.Context, offset, limit int) ([]Author, error)
	Update(ctx context.Context, a *Author) error
	Delete(ctx context.Context, id int64) error
	// NameExists reports whether an author other than excludeID has name.
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)
}
