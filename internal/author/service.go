package author

import (
	"context"
	"strings"

	"libraryapi/internal/logging"
)

// Service provides author CRUD.
type Service struct {
	repo Repository
	log  logging.Logger
}

func NewService(repo Repository, log logging.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) Create(ctx context.Context, in Input) (Author, error) {
	a := fromInput(0, in)
	exists, err := s.repo.NameExists(ctx, a.Name, 0)
	if err != nil {
		return Author{}, err
	}
	if exists {
		return Author{}, ErrNameTaken
	}
	if err := s.repo.Create(ctx, &a); err != nil {
		return Author{}, err
	}
	s.log.Info(ctx, "author created", "author_id", a.ID)
	return a, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Author, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, offset, limit int) ([]Author, error) {
	return s.repo.List(ctx, offset, limit)
}

// Update replaces every writable field of the author. A missing author is
// reported before a name clash; the unique index catches renames onto an
// existing name.
func (s *Service) Update(ctx context.Context, id int64, in Input) (Author, error) {
	a := fromInput(id, in)
	if err := s.repo.Update(ctx, &a); err != nil {
		return Author{}, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info(ctx, "author deleted", "author_id", id)
	return nil
}

func fromInput(id int64, in Input) Author {
	return Author{
		ID:        id,
		Name:      strings.TrimSpace(in.Name),
		Biography: in.Biography,
		BirthDate: in.BirthDate,
	}
}
