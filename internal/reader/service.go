package reader

import (
	"context"
	"fmt"
	"strings"

	"libraryapi/internal/logging"
	"libraryapi/internal/platform/crypto"
)

// Service provides reader registration and lookup.
type Service struct {
	repo Repository
	log  logging.Logger
}

// NewService creates a new reader service.
func NewService(repo Repository, log logging.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// NormalizeEmail trims and lower-cases an address so uniqueness is
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a reader with a bcrypt-hashed password. The existence
// pre-check gives a fast answer; the unique index settles races.
func (s *Service) Register(ctx context.Context, name, email, rawPassword string) (Reader, error) {
	email = NormalizeEmail(email)
	// bcrypt limits bytes, not characters.
	if len(rawPassword) > crypto.MaxPasswordBytes {
		return Reader{}, crypto.ErrPasswordTooLong
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return Reader{}, err
	}
	if exists {
		return Reader{}, ErrEmailTaken
	}

	hash, err := crypto.HashPassword(rawPassword)
	if err != nil {
		return Reader{}, fmt.Errorf("hash password: %w", err)
	}

	rd := Reader{Name: strings.TrimSpace(name), Email: email, PasswordHash: hash}
	if err := s.repo.Create(ctx, &rd); err != nil {
		return Reader{}, err
	}
	s.log.Info(ctx, "reader registered", "reader_id", rd.ID)
	return rd, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Reader, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByEmail is used by the login flow.
func (s *Service) GetByEmail(ctx context.Context, email string) (Reader, error) {
	return s.repo.GetByEmail(ctx, NormalizeEmail(email))
}

func (s *Service) List(ctx context.Context, offset, limit int) ([]Reader, error) {
	return s.repo.List(ctx, offset, limit)
}

// Delete removes the reader and, by cascade, all of their loans.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info(ctx, "reader deleted", "reader_id", id)
	return nil
}
