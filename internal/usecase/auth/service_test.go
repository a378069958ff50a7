package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	domain "github.com/cannoahgkt/moviesapi/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- fakes ---

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Username]; ok {
		return domain.ErrUsernameTaken
	}
	clone := *u
	r.users[u.Username] = &clone
	return nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) List(_ context.Context) ([]*domain.User, error) { return nil, nil }

func (r *memUserRepo) Update(_ context.Context, _ *domain.User) error { return nil }

func (r *memUserRepo) Delete(_ context.Context, _ string) error { return nil }

func (r *memUserRepo) AddFavorite(_ context.Context, username, _ string) (*domain.User, error) {
	return r.GetByUsername(context.Background(), username)
}

func (r *memUserRepo) RemoveFavorite(_ context.Context, username, _ string) (*domain.User, error) {
	return r.GetByUsername(context.Background(), username)
}

type stubTokenManager struct {
	generateErr error
	validateOut Identity
	validateErr error
	generated   []Identity
}

func (m *stubTokenManager) Generate(identity Identity) (string, error) {
	if m.generateErr != nil {
		return "", m.generateErr
	}
	m.generated = append(m.generated, identity)
	return fmt.Sprintf("token-for-%s", identity.Username), nil
}

func (m *stubTokenManager) Validate(token string) (Identity, error) {
	if m.validateErr != nil {
		return Identity{}, m.validateErr
	}
	return m.validateOut, nil
}

// --- tests ---

func TestRegister_HashesPassword(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo()
	svc := NewService(repo, &stubTokenManager{})

	u, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice01",
		Password: "Secret123!",
		Email:    "a@example.com",
	})
	require.NoError(t, err)

	assert.Empty(t, u.PasswordHash, "returned user must not carry the hash")
	assert.NotNil(t, u.FavoriteMovies)
	assert.Empty(t, u.FavoriteMovies)

	stored, err := repo.GetByUsername(context.Background(), "alice01")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123!", stored.PasswordHash, "plaintext must never be stored")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Secret123!")),
		"stored hash must verify against the plaintext")
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	svc := NewService(newMemUserRepo(), &stubTokenManager{})

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "ab!",
		Password: "short",
		Email:    "not-an-email",
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 3)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()

	svc := NewService(newMemUserRepo(), &stubTokenManager{})
	input := RegisterInput{Username: "alice01", Password: "Secret123!", Email: "a@example.com"}

	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo()
	tokens := &stubTokenManager{}
	svc := NewService(repo, tokens)

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice01", Password: "Secret123!", Email: "a@example.com",
	})
	require.NoError(t, err)

	token, u, err := svc.Login(context.Background(), domain.Credentials{
		Username: "alice01", Password: "Secret123!",
	})
	require.NoError(t, err)
	assert.Equal(t, "token-for-alice01", token)
	assert.Equal(t, "alice01", u.Username)
	assert.Empty(t, u.PasswordHash)
	require.Len(t, tokens.generated, 1)
	assert.Equal(t, "alice01", tokens.generated[0].Username)
	assert.NotEmpty(t, tokens.generated[0].UserID)
}

func TestLogin_EnumerationSafety(t *testing.T) {
	t.Parallel()

	svc := NewService(newMemUserRepo(), &stubTokenManager{})
	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice01", Password: "Secret123!", Email: "a@example.com",
	})
	require.NoError(t, err)

	// Unknown user and wrong password must be indistinguishable.
	_, _, unknownErr := svc.Login(context.Background(), domain.Credentials{
		Username: "nosuchuser", Password: "Secret123!",
	})
	_, _, wrongPassErr := svc.Login(context.Background(), domain.Credentials{
		Username: "alice01", Password: "WrongPass1!",
	})

	assert.ErrorIs(t, unknownErr, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassErr, domain.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
}

func TestLogin_EmptyInput(t *testing.T) {
	t.Parallel()

	svc := NewService(newMemUserRepo(), &stubTokenManager{})

	for _, creds := range []domain.Credentials{
		{},
		{Username: "alice01"},
		{Password: "Secret123!"},
	} {
		_, _, err := svc.Login(context.Background(), creds)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}
}

func TestAuthenticate_PassesThroughTokenErrors(t *testing.T) {
	t.Parallel()

	tokens := &stubTokenManager{validateErr: ErrTokenExpired}
	svc := NewService(newMemUserRepo(), tokens)

	_, err := svc.Authenticate(context.Background(), "whatever")
	assert.ErrorIs(t, err, ErrTokenExpired)

	tokens.validateErr = nil
	tokens.validateOut = Identity{UserID: "u1", Username: "alice01"}
	identity, err := svc.Authenticate(context.Background(), "whatever")
	require.NoError(t, err)
	assert.Equal(t, "alice01", identity.Username)
}

func TestRegister_RepoErrorPropagates(t *testing.T) {
	t.Parallel()

	svc := NewService(&failingRepo{err: errors.New("connection reset")}, &stubTokenManager{})
	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice01", Password: "Secret123!", Email: "a@example.com",
	})
	assert.EqualError(t, err, "connection reset")
}

type failingRepo struct {
	memUserRepo
	err error
}

func (r *failingRepo) GetByUsername(_ context.Context, _ string) (*domain.User, error) {
	return nil, r.err
}
