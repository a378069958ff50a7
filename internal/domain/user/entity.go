package user

import (
	"errors"
	"time"
)

var (
	// ErrInvalidCredentials indicates a login failure. Unknown usernames and
	// wrong passwords both map here so responses cannot be used to enumerate
	// accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken signals a duplicate username registration.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrNotFound indicates a missing user.
	ErrNotFound = errors.New("user not found")
)

// User models the account entity persisted in storage.
//
// FavoriteMovies holds movie ids with set semantics: membership only, no
// duplicates, order irrelevant.
type User struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	Birthday       *time.Time `json:"birthday,omitempty"`
	PasswordHash   string     `json:"-"`
	FavoriteMovies []string   `json:"favoriteMovies"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Credentials captures raw credential input for login.
type Credentials struct {
	Username string
	Password string
}
