package user

import (
	"context"
	"sync"
	"testing"
	"time"

	moviedomain "github.com/cannoahgkt/moviesapi/internal/domain/movie"
	domain "github.com/cannoahgkt/moviesapi/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memUserRepo mimics the PostgreSQL repository: favorites behave like a set
// and mutations are applied atomically under a single lock.
type memUserRepo struct {
	mu       sync.Mutex
	users    map[string]*domain.User
	movieIDs map[string]bool
}

func newMemUserRepo(movieIDs ...string) *memUserRepo {
	r := &memUserRepo{
		users:    make(map[string]*domain.User),
		movieIDs: make(map[string]bool),
	}
	for _, id := range movieIDs {
		r.movieIDs[id] = true
	}
	return r
}

func (r *memUserRepo) seed(u *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *u
	if clone.FavoriteMovies == nil {
		clone.FavoriteMovies = []string{}
	}
	r.users[u.Username] = &clone
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
	return r.getLocked(username)
}

func (r *memUserRepo) getLocked(username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *u
	clone.FavoriteMovies = append([]string{}, u.FavoriteMovies...)
	return &clone, nil
}

func (r *memUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for username := range r.users {
		u, _ := r.getLocked(username)
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) Update(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for username, existing := range r.users {
		if existing.ID == u.ID {
			if username != u.Username {
				if _, taken := r.users[u.Username]; taken {
					return domain.ErrUsernameTaken
				}
				delete(r.users, username)
			}
			clone := *u
			r.users[u.Username] = &clone
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memUserRepo) Delete(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[username]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, username)
	return nil
}

func (r *memUserRepo) AddFavorite(_ context.Context, username, movieID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.movieIDs[movieID] {
		return nil, moviedomain.ErrNotFound
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	present := false
	for _, id := range u.FavoriteMovies {
		if id == movieID {
			present = true
			break
		}
	}
	if !present {
		u.FavoriteMovies = append(u.FavoriteMovies, movieID)
	}
	return r.getLocked(username)
}

func (r *memUserRepo) RemoveFavorite(_ context.Context, username, movieID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	kept := u.FavoriteMovies[:0]
	for _, id := range u.FavoriteMovies {
		if id != movieID {
			kept = append(kept, id)
		}
	}
	u.FavoriteMovies = kept
	return r.getLocked(username)
}

func seedUser(t *testing.T, repo *memUserRepo, username, password string) *domain.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	u := &domain.User{
		ID:           "id-" + username,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hashed),
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	repo.seed(u)
	return u
}

func TestUpdate_RehashOnlyWhenPasswordChanges(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo()
	svc := NewService(repo)
	seedUser(t, repo, "alice01", "Secret123!")

	before, err := repo.GetByUsername(context.Background(), "alice01")
	require.NoError(t, err)

	newEmail := "new@example.com"
	u, err := svc.Update(context.Background(), "alice01", UpdateInput{Email: &newEmail})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", u.Email)

	after, err := repo.GetByUsername(context.Background(), "alice01")
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, after.PasswordHash,
		"unrelated field update must not touch the hash")

	newPass := "Changed456!"
	_, err = svc.Update(context.Background(), "alice01", UpdateInput{Password: &newPass})
	require.NoError(t, err)

	rehashed, err := repo.GetByUsername(context.Background(), "alice01")
	require.NoError(t, err)
	assert.NotEqual(t, before.PasswordHash, rehashed.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(rehashed.PasswordHash), []byte(newPass)))
}

func TestUpdate_UsernameChange(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo()
	svc := NewService(repo)
	seedUser(t, repo, "alice01", "Secret123!")
	seedUser(t, repo, "bobby99", "Secret123!")

	taken := "bobby99"
	_, err := svc.Update(context.Background(), "alice01", UpdateInput{Username: &taken})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	fresh := "alice02"
	u, err := svc.Update(context.Background(), "alice01", UpdateInput{Username: &fresh})
	require.NoError(t, err)
	assert.Equal(t, "alice02", u.Username)

	_, err = repo.GetByUsername(context.Background(), "alice01")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_Validation(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo()
	svc := NewService(repo)
	seedUser(t, repo, "alice01", "Secret123!")

	short := "ab"
	badEmail := "nope"
	_, err := svc.Update(context.Background(), "alice01", UpdateInput{
		Username: &short,
		Email:    &badEmail,
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 2)
}

func TestUpdate_UnknownUser(t *testing.T) {
	t.Parallel()

	svc := NewService(newMemUserRepo())
	email := "a@example.com"
	_, err := svc.Update(context.Background(), "ghost", UpdateInput{Email: &email})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFavorites_SetSemantics(t *testing.T) {
	t.Parallel()

	const movieID = "3f1b9a2c-0000-4000-8000-000000000001"
	repo := newMemUserRepo(movieID)
	svc := NewService(repo)
	seedUser(t, repo, "alice01", "Secret123!")

	// Adding twice leaves exactly one occurrence.
	_, err := svc.AddFavorite(context.Background(), "alice01", movieID)
	require.NoError(t, err)
	u, err := svc.AddFavorite(context.Background(), "alice01", movieID)
	require.NoError(t, err)
	assert.Equal(t, []string{movieID}, u.FavoriteMovies)

	// Removing once leaves zero.
	u, err = svc.RemoveFavorite(context.Background(), "alice01", movieID)
	require.NoError(t, err)
	assert.Empty(t, u.FavoriteMovies)

	// Removing an absent id is a no-op, not an error.
	u, err = svc.RemoveFavorite(context.Background(), "alice01", movieID)
	require.NoError(t, err)
	assert.Empty(t, u.FavoriteMovies)
}

func TestFavorites_UnknownTargets(t *testing.T) {
	t.Parallel()

	const movieID = "3f1b9a2c-0000-4000-8000-000000000001"
	repo := newMemUserRepo(movieID)
	svc := NewService(repo)
	seedUser(t, repo, "alice01", "Secret123!")

	_, err := svc.AddFavorite(context.Background(), "ghost", movieID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.AddFavorite(context.Background(), "alice01", "not-seeded")
	assert.ErrorIs(t, err, moviedomain.ErrNotFound)
}

func TestListAndDelete(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo()
	svc := NewService(repo)
	seedUser(t, repo, "alice01", "Secret123!")
	seedUser(t, repo, "bobby99", "Secret123!")

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
	}

	require.NoError(t, svc.Delete(context.Background(), "bobby99"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "bobby99"), domain.ErrNotFound)
}
