package book

import (
	"context"
	"strings"

	"libraryapi/internal/logging"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
	log  logging.Logger
}

// NewService creates a new book service.
func NewService(repo Repository, log logging.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func normalize(in Input) Input {
	in.Title = strings.TrimSpace(in.Title)
	in.AuthorIDs = UniqueIDs(in.AuthorIDs)
	in.GenreIDs = UniqueIDs(in.GenreIDs)
	return in
}

// Create stores a book with its authors and genres.
func (s *Service) Create(ctx context.Context, in Input) (Book, error) {
	b, err := s.repo.Create(ctx, normalize(in))
	if err != nil {
		return Book{}, err
	}
	s.log.Info(ctx, "book created", "book_id", b.ID, "copies", b.AvailableCopies)
	return b, nil
}

// Update overwrites the book and replaces both association sets.
func (s *Service) Update(ctx context.Context, id int64, in Input) (Book, error) {
	b, err := s.repo.Update(ctx, id, normalize(in))
	if err != nil {
		return Book{}, err
	}
	s.log.Info(ctx, "book updated", "book_id", b.ID)
	return b, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, offset, limit int) ([]Book, error) {
	return s.repo.List(ctx, offset, limit)
}

// Delete removes the book together with its association rows and loans.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info(ctx, "book deleted", "book_id", id)
	return nil
}
