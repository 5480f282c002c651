package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers every verification failure: bad signature, wrong
// signing method, malformed token, or expiry in the past. Callers must not
// distinguish between these cases.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carried by access tokens. Refresh tokens reuse the registered
// claims only (sub, jti, exp).
type Claims struct {
	Username string   `json:"username,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Issuer mints and verifies HS256-signed tokens. Access tokens are
// self-contained (identity + roles); refresh tokens are meaningful only
// together with their session row.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewIssuer(secret []byte, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// RefreshTTL is the lifetime applied to refresh tokens and their session rows.
func (i *Issuer) RefreshTTL() time.Duration {
	return i.refreshTTL
}

// IssueAccessToken produces a short-lived token encoding the subject's
// identity and role set.
func (i *Issuer) IssueAccessToken(userID uuid.UUID, username string, roles []string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// IssueRefreshToken produces a long-lived opaque token string. The random
// jti guarantees that consecutive rotations for the same user never produce
// the same string, keeping the unique token column satisfiable.
func (i *Issuer) IssueRefreshToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.refreshTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify checks signature and expiry and returns the decoded claims.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
