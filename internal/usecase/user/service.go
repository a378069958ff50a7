package user

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "github.com/cannoahgkt/moviesapi/internal/domain/user"

	"golang.org/x/crypto/bcrypt"
)

// Service provides profile and favorite-list use cases.
type Service struct {
	repo    domain.Repository
	nowFunc func() time.Time
}

// NewService constructs a user service around the provided repository.
func NewService(repo domain.Repository) *Service {
	return &Service{
		repo:    repo,
		nowFunc: time.Now,
	}
}

// UpdateInput defines a partial profile update. Nil fields are left
// untouched; the password is re-hashed only when it is present.
type UpdateInput struct {
	Username *string
	Password *string
	Email    *string
	Birthday *time.Time
}

// List returns all users with password hashes stripped.
func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return sanitizeUsers(users), nil
}

// Update applies a partial profile update to the named user.
func (s *Service) Update(ctx context.Context, username string, input UpdateInput) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.ErrNotFound
	}

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	var ve domain.ValidationError
	if input.Username != nil {
		newName := strings.TrimSpace(*input.Username)
		if fe := domain.ValidateUsername(newName); fe != nil {
			ve.Fields = append(ve.Fields, *fe)
		} else if newName != u.Username {
			if _, err := s.repo.GetByUsername(ctx, newName); err == nil {
				return nil, domain.ErrUsernameTaken
			} else if !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			u.Username = newName
		}
	}
	if input.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*input.Email))
		if fe := domain.ValidateEmail(email); fe != nil {
			ve.Fields = append(ve.Fields, *fe)
		} else {
			u.Email = email
		}
	}
	if input.Password != nil {
		if fe := domain.ValidatePassword(*input.Password); fe != nil {
			ve.Fields = append(ve.Fields, *fe)
		}
	}
	if len(ve.Fields) > 0 {
		return nil, &ve
	}
	if input.Birthday != nil {
		u.Birthday = input.Birthday
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hashed)
	}

	u.UpdatedAt = s.nowFunc().UTC()
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return sanitizeUser(u), nil
}

// Delete removes the target account. Tokens already issued to it remain
// valid until they expire.
func (s *Service) Delete(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, username)
}

// AddFavorite adds a movie id to the user's favorites. Adding an id that is
// already present is a no-op.
func (s *Service) AddFavorite(ctx context.Context, username, movieID string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	movieID = strings.TrimSpace(movieID)
	if username == "" {
		return nil, domain.ErrNotFound
	}
	if movieID == "" {
		return nil, &domain.ValidationError{Fields: []domain.FieldError{{Field: "movieId", Message: "is required"}}}
	}
	u, err := s.repo.AddFavorite(ctx, username, movieID)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(u), nil
}

// RemoveFavorite deletes a movie id from the user's favorites. Removing an
// absent id is a no-op.
func (s *Service) RemoveFavorite(ctx context.Context, username, movieID string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	movieID = strings.TrimSpace(movieID)
	if username == "" {
		return nil, domain.ErrNotFound
	}
	if movieID == "" {
		return nil, &domain.ValidationError{Fields: []domain.FieldError{{Field: "movieId", Message: "is required"}}}
	}
	u, err := s.repo.RemoveFavorite(ctx, username, movieID)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(u), nil
}

func sanitizeUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	copy := *u
	copy.PasswordHash = ""
	return &copy
}

func sanitizeUsers(items []*domain.User) []*domain.User {
	out := make([]*domain.User, 0, len(items))
	for _, item := range items {
		out = append(out, sanitizeUser(item))
	}
	return out
}
