package config

import (
	"fmt"
	"os"
	"time"
)

const (
	TransportHTTP = "http"
	TransportGRPC = "grpc"
)

type Config struct {
	ServerURL      string
	GRPCAddr       string
	Transport      string
	DatabaseDSN    string
	RefreshTimeout time.Duration
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3001"
	c.GRPCAddr = "127.0.0.1:50051"
	c.Transport = TransportHTTP
	c.DatabaseDSN = "authkeeper.db"
	c.RefreshTimeout = 10 * time.Second
}

// LoadConfig applies defaults, then JSON, then flags.
func LoadConfig() (*Config, error) {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if cfg.Transport != TransportHTTP && cfg.Transport != TransportGRPC {
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
	return cfg, nil
}
