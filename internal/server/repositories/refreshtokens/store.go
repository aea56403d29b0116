// Package refreshtokens keeps the single valid refresh token of each user,
// stored as a hash.
package refreshtokens

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Store holds at most one refresh token hash per user.
//
// Validate and Rotate return common.ErrInvalidToken when nothing is stored
// for the user, the user is unknown, or the token does not match. Rotate is
// a compare-and-swap: of two concurrent rotations presenting the same old
// token exactly one wins.
type Store interface {
	Save(ctx context.Context, userID, token string) error
	Validate(ctx context.Context, userID, token string) error
	Rotate(ctx context.Context, userID, oldToken, newToken string) error
	Revoke(ctx context.Context, userID string) error
}

// HashToken returns the hex SHA-256 of token. Refresh tokens are high-entropy
// JWTs, so a fast deterministic hash is enough.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Matches compares a stored hash with a presented token in constant time.
func Matches(storedHash, token string) bool {
	if storedHash == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(HashToken(token))) == 1
}
