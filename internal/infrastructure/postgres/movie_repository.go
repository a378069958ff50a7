package postgres

import (
	"context"
	"errors"

	domain "github.com/cannoahgkt/moviesapi/internal/domain/movie"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MovieRepository reads the catalog from PostgreSQL. The API never writes
// movies; seeding happens out-of-band.
type MovieRepository struct {
	pool *pgxpool.Pool
}

// NewMovieRepository constructs a repository.
func NewMovieRepository(pool *pgxpool.Pool) *MovieRepository {
	return &MovieRepository{pool: pool}
}

const movieSelect = `
SELECT id, title, description, genre_name, genre_description,
       director_name, director_bio, actors, image_path, featured
FROM movies
`

// List returns the full catalog sorted by title.
func (r *MovieRepository) List(ctx context.Context) ([]*domain.Movie, error) {
	rows, err := r.pool.Query(ctx, movieSelect+`ORDER BY title ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []*domain.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// GetByTitle fetches one movie by exact title.
func (r *MovieRepository) GetByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	return r.getOne(ctx, movieSelect+`WHERE title = $1`, title)
}

// GetByGenreName returns the first movie whose genre matches the name.
func (r *MovieRepository) GetByGenreName(ctx context.Context, name string) (*domain.Movie, error) {
	return r.getOne(ctx, movieSelect+`WHERE genre_name = $1 ORDER BY title ASC LIMIT 1`, name)
}

// GetByDirectorName returns the first movie whose director matches the name.
func (r *MovieRepository) GetByDirectorName(ctx context.Context, name string) (*domain.Movie, error) {
	return r.getOne(ctx, movieSelect+`WHERE director_name = $1 ORDER BY title ASC LIMIT 1`, name)
}

func (r *MovieRepository) getOne(ctx context.Context, query string, args ...any) (*domain.Movie, error) {
	row := r.pool.QueryRow(ctx, query, args...)
	m, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func scanMovie(row pgx.Row) (*domain.Movie, error) {
	var m domain.Movie
	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Description,
		&m.Genre.Name,
		&m.Genre.Description,
		&m.Director.Name,
		&m.Director.Bio,
		&m.Actors,
		&m.ImagePath,
		&m.Featured,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
