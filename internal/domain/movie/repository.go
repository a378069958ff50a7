package movie

import "context"

// Repository defines read-only persistence behaviours for the catalog.
// GetByGenreName and GetByDirectorName return the first matching movie.
type Repository interface {
	List(ctx context.Context) ([]*Movie, error)
	GetByTitle(ctx context.Context, title string) (*Movie, error)
	GetByGenreName(ctx context.Context, name string) (*Movie, error)
	GetByDirectorName(ctx context.Context, name string) (*Movie, error)
}
