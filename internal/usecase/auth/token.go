package auth

import "errors"

var (
	// ErrTokenInvalid means a supplied token cannot be verified against the
	// signing secret or carries malformed claims.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired means the token verified but its expiry has elapsed.
	ErrTokenExpired = errors.New("token expired")
)

// Identity is the authenticated principal embedded in a token. Validation is
// stateless: the user record is not re-read, so the identity reflects the
// account as it was at issuance.
type Identity struct {
	UserID   string
	Username string
}

// TokenManager abstracts token issuance and verification.
type TokenManager interface {
	Generate(identity Identity) (string, error)
	Validate(token string) (Identity, error)
}
