package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "github.com/cannoahgkt/moviesapi/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service coordinates registration, credential verification and token
// issuance between domain and infrastructure.
type Service struct {
	users   domain.Repository
	tokens  TokenManager
	nowFunc func() time.Time
}

// NewService constructs an auth service.
func NewService(users domain.Repository, tokens TokenManager) *Service {
	return &Service{
		users:   users,
		tokens:  tokens,
		nowFunc: time.Now,
	}
}

// RegisterInput carries the registration payload.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	Birthday *time.Time
}

// Register creates a new user. The password is hashed before anything is
// persisted; the returned entity never carries the hash.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))

	if err := domain.ValidateRegistration(username, input.Password, email); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.nowFunc().UTC()
	u := &domain.User{
		ID:             uuid.NewString(),
		Username:       username,
		Email:          email,
		Birthday:       input.Birthday,
		PasswordHash:   string(hashed),
		FavoriteMovies: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	return sanitizeUser(u), nil
}

// Login verifies credentials and returns a signed token plus the user.
// Unknown usernames and wrong passwords are indistinguishable in the result.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) (string, *domain.User, error) {
	username := strings.TrimSpace(creds.Username)
	if username == "" || creds.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(creds.Password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(Identity{UserID: u.ID, Username: u.Username})
	if err != nil {
		return "", nil, err
	}

	return token, sanitizeUser(u), nil
}

// Authenticate validates a bearer token and returns the embedded identity.
// No database read happens here: a token stays valid until its expiry even if
// the account changed or was deleted in the interim.
func (s *Service) Authenticate(ctx context.Context, token string) (Identity, error) {
	return s.tokens.Validate(token)
}

func sanitizeUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	copy := *u
	copy.PasswordHash = ""
	return &copy
}
