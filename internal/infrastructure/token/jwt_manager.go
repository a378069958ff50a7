package token

import (
	"errors"
	"time"

	usecase "github.com/cannoahgkt/moviesapi/internal/usecase/auth"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager issues and validates HS256 JWT tokens.
type JWTManager struct {
	secret     []byte
	expiration time.Duration
	issuer     string
	nowFunc    func() time.Time
}

// NewJWTManager constructs a manager with the provided secret and expiration.
func NewJWTManager(secret string, expiration time.Duration, issuer string) *JWTManager {
	return &JWTManager{
		secret:     []byte(secret),
		expiration: expiration,
		issuer:     issuer,
		nowFunc:    time.Now,
	}
}

// Ensure JWTManager implements the TokenManager interface.
var _ usecase.TokenManager = (*JWTManager)(nil)

// Claims represents token claims. The subject carries the user id; the
// username rides along so protected handlers never re-read the user record.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Generate creates a signed JWT for the identity, expiring after the
// configured TTL.
func (m *JWTManager) Generate(identity usecase.Identity) (string, error) {
	now := m.nowFunc().UTC()
	claims := Claims{
		Username: identity.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiration)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.secret)
}

// Validate parses and verifies the token, returning the embedded identity.
// An elapsed expiry is reported as ErrTokenExpired; every other failure,
// including a foreign signing secret or method, as ErrTokenInvalid.
func (m *JWTManager) Validate(tokenString string) (usecase.Identity, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.nowFunc() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return usecase.Identity{}, usecase.ErrTokenExpired
		}
		return usecase.Identity{}, usecase.ErrTokenInvalid
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.Subject == "" {
		return usecase.Identity{}, usecase.ErrTokenInvalid
	}
	return usecase.Identity{UserID: claims.Subject, Username: claims.Username}, nil
}
