package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/authkeeper/internal/flagx"
	"github.com/dmitrijs2005/authkeeper/internal/timex"
)

type JSONConfig struct {
	ServerURL      string         `json:"server_url"`
	GRPCAddr       string         `json:"grpc_addr"`
	Transport      string         `json:"transport"`
	DatabaseDSN    string         `json:"database_dsn"`
	RefreshTimeout timex.Duration `json:"refresh_timeout"`
}

// parseJSON overlays the file given by -c/-config. Absent keys keep their
// current values.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.GRPCAddr != "" {
		cfg.GRPCAddr = jc.GRPCAddr
	}
	if jc.Transport != "" {
		cfg.Transport = jc.Transport
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.RefreshTimeout.Duration > 0 {
		cfg.RefreshTimeout = jc.RefreshTimeout.Duration
	}
	return nil
}
