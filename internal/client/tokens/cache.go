// Package tokens holds the client's two token slots: the access token in
// memory and the refresh token in durable storage.
package tokens

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/authkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// Pair is a freshly issued access/refresh token pair.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

// Cache is safe for concurrent use. The access token is lost on restart;
// the refresh token is not.
type Cache struct {
	mu     sync.RWMutex
	access string
	store  metadata.Repository
}

func NewCache(store metadata.Repository) *Cache {
	return &Cache{store: store}
}

func (c *Cache) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.access
}

func (c *Cache) SetAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.access = token
}

func (c *Cache) ClearAccessToken() {
	c.SetAccessToken("")
}

// RefreshToken returns "" when none is stored.
func (c *Cache) RefreshToken(ctx context.Context) (string, error) {
	v, ok, err := c.store.Get(ctx, common.RefreshTokenKey)
	if err != nil {
		return "", fmt.Errorf("read refresh token: %w", err)
	}
	if !ok {
		return "", nil
	}
	return v, nil
}

func (c *Cache) SetRefreshToken(ctx context.Context, token string) error {
	if err := c.store.Set(ctx, common.RefreshTokenKey, token); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

func (c *Cache) ClearRefreshToken(ctx context.Context) error {
	if err := c.store.Delete(ctx, common.RefreshTokenKey); err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	return nil
}

// Store writes both slots. The refresh token goes first so a crash in
// between leaves a usable session.
func (c *Cache) Store(ctx context.Context, p Pair) error {
	if err := c.SetRefreshToken(ctx, p.RefreshToken); err != nil {
		return err
	}
	c.SetAccessToken(p.AccessToken)
	return nil
}

// ClearAll empties both slots. The access token is cleared even if the
// durable delete fails.
func (c *Cache) ClearAll(ctx context.Context) error {
	c.ClearAccessToken()
	return c.ClearRefreshToken(ctx)
}
