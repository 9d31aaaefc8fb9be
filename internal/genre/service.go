package genre

import (
	"context"
	"strings"

	"libraryapi/internal/logging"
)

// Service provides genre creation and listing. Genres are never updated
// or deleted.
type Service struct {
	repo Repository
	log  logging.Logger
}

func NewService(repo Repository, log logging.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) Create(ctx context.Context, name string) (Genre, error) {
	g := Genre{Name: strings.TrimSpace(name)}
	exists, err := s.repo.NameExists(ctx, g.Name)
	if err != nil {
		return Genre{}, err
	}
	if exists {
		return Genre{}, ErrNameTaken
	}
	if err := s.repo.Create(ctx, &g); err != nil {
		return Genre{}, err
	}
	s.log.Info(ctx, "genre created", "genre_id", g.ID)
	return g, nil
}

func (s *Service) List(ctx context.Context, offset, limit int) ([]Genre, error) {
	return s.repo.List(ctx, offset, limit)
}
