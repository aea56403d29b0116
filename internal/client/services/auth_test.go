package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/authkeeper/internal/api"
	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/client/tokens"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct{ data map[string]string }

func (m *memRepo) Get(_ context.Context, k string) (string, bool, error) {
	v, ok := m.data[k]
	return v, ok, nil
}
func (m *memRepo) Set(_ context.Context, k, v string) error { m.data[k] = v; return nil }
func (m *memRepo) Delete(_ context.Context, k string) error { delete(m.data, k); return nil }

// fakeClient implements client.Client for AuthService unit tests.
type fakeClient struct {
	RegisterErr error
	LoginResp   *api.LoginResponse
	LoginErr    error
	LogoutErr   error
	ProfileResp *api.ProfileResponse
	ProfileErr  error
	PingErr     error
	CloseErr    error

	LastEmail    string
	LastPassword string
	LogoutCalls  int
	Closed       bool
}

func (f *fakeClient) Register(_ context.Context, email, password string) (*api.User, error) {
	f.LastEmail, f.LastPassword = email, password
	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	return &api.User{ID: "u1", Email: email}, nil
}

func (f *fakeClient) Login(_ context.Context, email, password string) (*api.LoginResponse, error) {
	f.LastEmail, f.LastPassword = email, password
	return f.LoginResp, f.LoginErr
}

func (f *fakeClient) Refresh(context.Context, string) (*api.TokenPair, error) {
	return nil, errors.New("not used")
}

func (f *fakeClient) Logout(context.Context) error {
	f.LogoutCalls++
	return f.LogoutErr
}

func (f *fakeClient) Profile(context.Context) (*api.ProfileResponse, error) {
	return f.ProfileResp, f.ProfileErr
}

func (f *fakeClient) Ping(context.Context) error { return f.PingErr }

func (f *fakeClient) Close() error {
	f.Closed = true
	return f.CloseErr
}

func newSvc(fc *fakeClient) (AuthService, *tokens.Cache) {
	cache := tokens.NewCache(&memRepo{data: map[string]string{}})
	return NewAuthService(fc, cache, logging.Nop()), cache
}

func TestRegister_WipesPassword(t *testing.T) {
	fc := &fakeClient{}
	svc, _ := newSvc(fc)
	pw := []byte("secret1")

	u, err := svc.Register(context.Background(), "alice@example.com", pw)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "secret1", fc.LastPassword)
	assert.Equal(t, make([]byte, len(pw)), pw)
}

func TestRegister_Error(t *testing.T) {
	svc, _ := newSvc(&fakeClient{RegisterErr: client.ErrConflict})
	_, err := svc.Register(context.Background(), "alice@example.com", []byte("secret1"))
	require.ErrorIs(t, err, client.ErrConflict)
}

func TestLogin_StoresPair(t *testing.T) {
	fc := &fakeClient{LoginResp: &api.LoginResponse{
		AccessToken: "a1", RefreshToken: "r1",
		User: api.User{ID: "u1", Email: "alice@example.com"},
	}}
	svc, cache := newSvc(fc)
	ctx := context.Background()

	ok, err := svc.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	u, err := svc.Login(ctx, "alice@example.com", []byte("secret1"))
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "a1", cache.AccessToken())

	ok, err = svc.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLogin_FailureLeavesCacheEmpty(t *testing.T) {
	svc, cache := newSvc(&fakeClient{LoginErr: client.ErrUnauthorized})
	_, err := svc.Login(context.Background(), "alice@example.com", []byte("nope"))
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Empty(t, cache.AccessToken())
}

func TestLogout_ClearsLocallyEvenOnServerFailure(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"ok", nil, nil},
		{"already revoked", client.ErrUnauthorized, nil},
		{"server down", client.ErrUnavailable, client.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{LogoutErr: tt.err}
			svc, cache := newSvc(fc)
			ctx := context.Background()
			require.NoError(t, cache.Store(ctx, tokens.Pair{AccessToken: "a1", RefreshToken: "r1"}))

			err := svc.Logout(ctx)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, 1, fc.LogoutCalls)
			assert.Empty(t, cache.AccessToken())
			ok, _ := svc.IsAuthenticated(ctx)
			assert.False(t, ok)
		})
	}
}

func TestProfile_PingClose(t *testing.T) {
	fc := &fakeClient{ProfileResp: &api.ProfileResponse{ID: "u1", Email: "alice@example.com"}, PingErr: client.ErrUnavailable}
	svc, _ := newSvc(fc)
	ctx := context.Background()

	p, err := svc.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", p.ID)

	require.ErrorIs(t, svc.Ping(ctx), client.ErrUnavailable)
	require.NoError(t, svc.Close(ctx))
	assert.True(t, fc.Closed)
}
