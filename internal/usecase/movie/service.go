package movie

import (
	"context"
	"strings"

	domain "github.com/cannoahgkt/moviesapi/internal/domain/movie"
)

// Service encapsulates catalog read use cases. Movies are never written
// through the API.
type Service struct {
	repo domain.Repository
}

// NewService constructs a movie service.
func NewService(repo domain.Repository) *Service {
	return &Service{repo: repo}
}

// List retrieves the full catalog.
func (s *Service) List(ctx context.Context) ([]*domain.Movie, error) {
	return s.repo.List(ctx)
}

// GetByTitle fetches a movie by exact title.
func (s *Service) GetByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetByTitle(ctx, title)
}

// GetGenre returns the genre sub-document of the first movie matching the
// genre name.
func (s *Service) GetGenre(ctx context.Context, name string) (*domain.Genre, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNotFound
	}
	m, err := s.repo.GetByGenreName(ctx, name)
	if err != nil {
		return nil, err
	}
	return &m.Genre, nil
}

// GetDirector returns the director sub-document of the first movie matching
// the director name.
func (s *Service) GetDirector(ctx context.Context, name string) (*domain.Director, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNotFound
	}
	m, err := s.repo.GetByDirectorName(ctx, name)
	if err != nil {
		return nil, err
	}
	return &m.Director, nil
}
