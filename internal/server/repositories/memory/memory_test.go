package memory

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers(t *testing.T) {
	s := New()
	ctx := context.Background()

	u, err := s.Create(ctx, "alice@example.com", "hash")
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)

	_, err = s.Create(ctx, "alice@example.com", "other")
	require.ErrorIs(t, err, common.ErrConflict)

	got, err := s.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)

	_, err = s.GetByEmail(ctx, "Alice@example.com")
	require.ErrorIs(t, err, common.ErrNotFound)

	s.Delete(u.ID)
	_, err = s.GetByID(ctx, u.ID)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestTokenStore(t *testing.T) {
	s := New()
	ctx := context.Background()
	u, err := s.Create(ctx, "alice@example.com", "hash")
	require.NoError(t, err)
	ts := s.RefreshTokens()

	require.ErrorIs(t, ts.Validate(ctx, u.ID, "r1"), common.ErrInvalidToken)
	require.ErrorIs(t, ts.Save(ctx, "ghost", "r1"), common.ErrNotFound)

	require.NoError(t, ts.Save(ctx, u.ID, "r1"))
	require.NoError(t, ts.Validate(ctx, u.ID, "r1"))

	require.NoError(t, ts.Rotate(ctx, u.ID, "r1", "r2"))
	require.ErrorIs(t, ts.Rotate(ctx, u.ID, "r1", "r3"), common.ErrInvalidToken)
	require.NoError(t, ts.Validate(ctx, u.ID, "r2"))

	got, err := s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.HasSession())

	require.NoError(t, ts.Revoke(ctx, u.ID))
	require.NoError(t, ts.Revoke(ctx, u.ID))
	require.ErrorIs(t, ts.Validate(ctx, u.ID, "r2"), common.ErrInvalidToken)
}

func TestTokenStore_EmptyTokenNeverMatches(t *testing.T) {
	s := New()
	ctx := context.Background()
	u, err := s.Create(ctx, "alice@example.com", "hash")
	require.NoError(t, err)
	ts := s.RefreshTokens()

	require.NoError(t, ts.Save(ctx, u.ID, ""))
	require.ErrorIs(t, ts.Validate(ctx, u.ID, ""), common.ErrInvalidToken)
	require.ErrorIs(t, ts.Rotate(ctx, u.ID, "", "r1"), common.ErrInvalidToken)
}
