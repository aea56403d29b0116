// Package auth issues and verifies the access/refresh JWT pair and hashes
// passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carried by both tokens. Subject holds the user id; ID (jti) is
// random so two tokens minted in the same second still differ.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// UserID returns the subject claim.
func (c *Claims) UserID() string { return c.Subject }

// TokenPair is what Issue returns.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Issuer signs access and refresh tokens with independent HS256 secrets.
// It is safe for concurrent use.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewIssuer fails with common.ErrMisconfigured when a secret is empty, the
// secrets are equal, or a lifetime is not positive.
func NewIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (*Issuer, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, fmt.Errorf("%w: token secrets must be set", common.ErrMisconfigured)
	}
	if accessSecret == refreshSecret {
		return nil, fmt.Errorf("%w: access and refresh secrets must differ", common.ErrMisconfigured)
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, fmt.Errorf("%w: token lifetimes must be positive", common.ErrMisconfigured)
	}
	return &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}, nil
}

// RefreshTTL is the refresh token lifetime, used by stores with expiry.
func (i *Issuer) RefreshTTL() time.Duration { return i.refreshTTL }

// Issue mints a fresh pair for the user.
func (i *Issuer) Issue(userID, email string) (TokenPair, error) {
	access, err := i.sign(userID, email, i.accessSecret, i.accessTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := i.sign(userID, email, i.refreshSecret, i.refreshTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ParseAccess verifies an access token.
func (i *Issuer) ParseAccess(token string) (*Claims, error) {
	return i.parse(token, i.accessSecret)
}

// ParseRefresh verifies a refresh token.
func (i *Issuer) ParseRefresh(token string) (*Claims, error) {
	return i.parse(token, i.refreshSecret)
}

func (i *Issuer) sign(userID, email string, secret []byte, ttl time.Duration) (string, error) {
	now := i.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// parse returns common.ErrTokenExpired for an expired but otherwise valid
// token and common.ErrInvalidToken for every other failure.
func (i *Issuer) parse(tokenString string, secret []byte) (*Claims, error) {
	if tokenString == "" {
		return nil, common.ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}
