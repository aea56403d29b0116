package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestJSONCodecRegistered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, CodecName, c.Name())

	b, err := c.Marshal(&LoginResponse{AccessToken: "a", RefreshToken: "r", User: User{ID: "1", Email: "alice@example.com"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"accessToken":"a","refreshToken":"r","user":{"id":"1","email":"alice@example.com"}}`, string(b))

	var out LoginResponse
	require.NoError(t, c.Unmarshal(b, &out))
	assert.Equal(t, "alice@example.com", out.User.Email)
}

func TestMethodNames(t *testing.T) {
	assert.Equal(t, "/authkeeper.AuthService/Login", MethodLogin)
	assert.Contains(t, AnonymousRoutes, RouteRefresh)
	assert.NotContains(t, AnonymousRoutes, RouteLogout)
	assert.NotContains(t, AnonymousMethods, MethodProfile)
}
