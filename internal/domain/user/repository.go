package user

import "context"

// Repository defines persistence operations for users.
//
// AddFavorite and RemoveFavorite must be atomic in the store (no
// read-modify-write) and idempotent: adding a present id or removing an
// absent one is a no-op. Both return the user in its post-mutation state.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, username string) error
	AddFavorite(ctx context.Context, username, movieID string) (*User, error)
	RemoveFavorite(ctx context.Context, username, movieID string) (*User, error)
}
