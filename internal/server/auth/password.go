package auth

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher wraps bcrypt. It keeps a hash of a throwaway password so a
// lookup miss can still pay for one comparison.
type PasswordHasher struct {
	cost  int
	dummy []byte
}

func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("authkeeper-dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("bcrypt init: %w", err)
	}
	return &PasswordHasher{cost: cost, dummy: dummy}, nil
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

// Compare returns common.ErrInvalidCredentials on mismatch.
func (h *PasswordHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return common.ErrInvalidCredentials
	default:
		return fmt.Errorf("bcrypt: %w", err)
	}
}

// CompareDummy burns the same work as a failed Compare.
func (h *PasswordHasher) CompareDummy(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
}
