package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:3001", c.ServerURL)
	assert.Equal(t, "127.0.0.1:50051", c.GRPCAddr)
	assert.Equal(t, TransportHTTP, c.Transport)
	assert.Equal(t, "authkeeper.db", c.DatabaseDSN)
	assert.Equal(t, 10*time.Second, c.RefreshTimeout)
}

func TestLoadConfig(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"client"}
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:3001", cfg.ServerURL)

	os.Args = []string{"client", "-transport", "grpc", "-rt", "3s"}
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, TransportGRPC, cfg.Transport)
	assert.Equal(t, 3*time.Second, cfg.RefreshTimeout)

	os.Args = []string{"client", "-transport", "carrier-pigeon"}
	_, err = LoadConfig()
	require.Error(t, err)
}

func TestParseFlags(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	err := parseFlags(cfg, []string{"-u", "http://api:3001", "-g", "api:50051", "-transport", "grpc", "-db", ":memory:", "-rt", "2s", "-zzz"})
	require.NoError(t, err)

	want := &Config{
		ServerURL:      "http://api:3001",
		GRPCAddr:       "api:50051",
		Transport:      TransportGRPC,
		DatabaseDSN:    ":memory:",
		RefreshTimeout: 2 * time.Second,
	}
	assert.Empty(t, cmp.Diff(want, cfg))

	require.Error(t, parseFlags(cfg, []string{"-rt", "later"}))
}
