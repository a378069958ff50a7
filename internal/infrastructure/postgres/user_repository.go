package postgres

import (
	"context"
	"errors"

	moviedomain "github.com/cannoahgkt/moviesapi/internal/domain/movie"
	domain "github.com/cannoahgkt/moviesapi/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository persists users in PostgreSQL. Favorite movies live in the
// user_favorites join table; the composite primary key gives add/remove set
// semantics without a read-modify-write cycle.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a repository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userSelect = `
SELECT u.id, u.username, u.email, u.birthday, u.password_hash, u.created_at, u.updated_at,
       COALESCE(array_agg(f.movie_id::text) FILTER (WHERE f.movie_id IS NOT NULL), '{}')
FROM users u
LEFT JOIN user_favorites f ON f.user_id = u.id
`

// Create inserts a new user record.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
INSERT INTO users (id, username, email, birthday, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.Birthday,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return err
	}
	return nil
}

// GetByUsername fetches a user by exact username match, favorites included.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := userSelect + `
WHERE u.username = $1
GROUP BY u.id
`
	row := r.pool.QueryRow(ctx, query, username)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// List returns all users ordered by registration time.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := userSelect + `
GROUP BY u.id
ORDER BY u.created_at DESC
`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update writes profile fields to the database, keyed by id so username
// changes are possible.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
UPDATE users
SET username = $2, email = $3, birthday = $4, password_hash = $5, updated_at = $6
WHERE id = $1
`
	ct, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.Birthday,
		user.PasswordHash,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a user; favorites go with it via the FK cascade.
func (r *UserRepository) Delete(ctx context.Context, username string) error {
	const query = `DELETE FROM users WHERE username = $1`
	ct, err := r.pool.Exec(ctx, query, username)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddFavorite inserts the favorite in a single statement; ON CONFLICT makes
// a duplicate add a no-op.
func (r *UserRepository) AddFavorite(ctx context.Context, username, movieID string) (*domain.User, error) {
	if err := uuid.Validate(movieID); err != nil {
		return nil, moviedomain.ErrNotFound
	}

	const query = `
INSERT INTO user_favorites (user_id, movie_id)
SELECT u.id, $2 FROM users u WHERE u.username = $1
ON CONFLICT (user_id, movie_id) DO NOTHING
`
	if _, err := r.pool.Exec(ctx, query, username, movieID); err != nil {
		if isForeignKeyViolation(err) || isInvalidTextRepr(err) {
			return nil, moviedomain.ErrNotFound
		}
		return nil, err
	}

	// Zero rows means either an unknown user or an already-present favorite;
	// the re-read distinguishes the two.
	return r.GetByUsername(ctx, username)
}

// RemoveFavorite deletes the favorite; an absent or malformed movie id
// leaves the list untouched.
func (r *UserRepository) RemoveFavorite(ctx context.Context, username, movieID string) (*domain.User, error) {
	if err := uuid.Validate(movieID); err == nil {
		const query = `
DELETE FROM user_favorites f
USING users u
WHERE f.user_id = u.id AND u.username = $1 AND f.movie_id = $2
`
		if _, err := r.pool.Exec(ctx, query, username, movieID); err != nil {
			return nil, err
		}
	}
	return r.GetByUsername(ctx, username)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.Birthday,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.FavoriteMovies,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
