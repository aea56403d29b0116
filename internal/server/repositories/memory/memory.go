// Package memory provides in-process user and refresh token stores with the
// same semantics as the PostgreSQL ones. Used by service and transport tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/refreshtokens"
	"github.com/google/uuid"
)

// Store keeps users keyed by id; refresh token hashes live on the user
// record, as in the users table.
type Store struct {
	mu      sync.Mutex
	byID    map[string]*models.User
	byEmail map[string]string
}

func New() *Store {
	return &Store{byID: map[string]*models.User{}, byEmail: map[string]string{}}
}

func (s *Store) Create(_ context.Context, email, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[email]; ok {
		return nil, common.ErrConflict
	}
	u := &models.User{ID: uuid.NewString(), Email: email, PasswordHash: passwordHash, CreatedAt: time.Now().UTC()}
	s.byID[u.ID] = u
	s.byEmail[email] = u.ID
	return clone(u), nil
}

func (s *Store) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return clone(s.byID[id]), nil
}

func (s *Store) GetByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return clone(u), nil
}

// Delete removes a user; used to simulate an account vanishing mid-session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.byID[id]; ok {
		delete(s.byEmail, u.Email)
		delete(s.byID, id)
	}
}

// RefreshTokens returns a refreshtokens.Store backed by this user set.
func (s *Store) RefreshTokens() refreshtokens.Store {
	return &tokenStore{s: s}
}

type tokenStore struct {
	s *Store
}

func (t *tokenStore) Save(_ context.Context, userID, token string) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	u, ok := t.s.byID[userID]
	if !ok {
		return common.ErrNotFound
	}
	h := refreshtokens.HashToken(token)
	u.RefreshTokenHash = &h
	return nil
}

func (t *tokenStore) Validate(_ context.Context, userID, token string) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	return t.check(userID, token)
}

func (t *tokenStore) Rotate(_ context.Context, userID, oldToken, newToken string) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if err := t.check(userID, oldToken); err != nil {
		return err
	}
	h := refreshtokens.HashToken(newToken)
	t.s.byID[userID].RefreshTokenHash = &h
	return nil
}

func (t *tokenStore) Revoke(_ context.Context, userID string) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if u, ok := t.s.byID[userID]; ok {
		u.RefreshTokenHash = nil
	}
	return nil
}

func (t *tokenStore) check(userID, token string) error {
	u, ok := t.s.byID[userID]
	if !ok || !u.HasSession() || !refreshtokens.Matches(*u.RefreshTokenHash, token) {
		return common.ErrInvalidToken
	}
	return nil
}

func clone(u *models.User) *models.User {
	c := *u
	if u.RefreshTokenHash != nil {
		h := *u.RefreshTokenHash
		c.RefreshTokenHash = &h
	}
	return &c
}
