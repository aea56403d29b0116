package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) lookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestParseEnv(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	err := parseEnv(cfg, mapLookup(map[string]string{
		EnvAccessSecret:  "acc",
		EnvRefreshSecret: "ref",
		EnvAccessTTL:     "15m",
		EnvRefreshTTL:    "7d",
		EnvPort:          "8080",
		EnvGRPCAddr:      "127.0.0.1:6000",
		EnvDatabaseURL:   "postgres://db",
		EnvFrontendURL:   "https://app.example.com",
		EnvRefreshStore:  StoreRedis,
		EnvRedisAddr:     "redis:6379",
		EnvRedisPassword: "pw",
		EnvRedisDB:       "2",
	}))
	require.NoError(t, err)

	assert.Equal(t, "acc", cfg.AccessSecret)
	assert.Equal(t, "ref", cfg.RefreshSecret)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "127.0.0.1:6000", cfg.GRPCAddr)
	assert.Equal(t, "postgres://db", cfg.DatabaseDSN)
	assert.Equal(t, "https://app.example.com", cfg.FrontendURL)
	assert.Equal(t, StoreRedis, cfg.RefreshStore)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, "pw", cfg.RedisPassword)
	assert.Equal(t, 2, cfg.RedisDB)
}

func TestParseEnv_EmptyLeavesValues(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.NoError(t, parseEnv(cfg, mapLookup(map[string]string{EnvPort: ""})))
	assert.Equal(t, ":3001", cfg.HTTPAddr)
}

func TestParseEnv_Errors(t *testing.T) {
	for _, env := range []map[string]string{
		{EnvAccessTTL: "soon"},
		{EnvRefreshTTL: "forever"},
		{EnvRedisDB: "zero"},
	} {
		cfg := &Config{}
		require.Error(t, parseEnv(cfg, mapLookup(env)))
	}
}

func TestPortToAddr(t *testing.T) {
	assert.Equal(t, ":3001", portToAddr("3001"))
	assert.Equal(t, "0.0.0.0:3001", portToAddr("0.0.0.0:3001"))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()

	lookup, err := loadDotEnv(filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	require.NotNil(t, lookup)

	good := filepath.Join(dir, "good.env")
	require.NoError(t, os.WriteFile(good, []byte("AUTHKEEPER_DOTENV_TEST=from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("AUTHKEEPER_DOTENV_TEST") })

	lookup, err = loadDotEnv(good)
	require.NoError(t, err)
	v, ok := lookup("AUTHKEEPER_DOTENV_TEST")
	assert.True(t, ok)
	assert.Equal(t, "from-file", v)
}

func TestLoadDotEnv_MalformedFails(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.env")
	require.NoError(t, os.WriteFile(bad, []byte("BAD-KEY=1\n"), 0o600))

	_, err := loadDotEnv(bad)
	require.Error(t, err)

	_, err = loadDotEnv(t.TempDir())
	require.Error(t, err, "a directory is not a readable .env")
}
