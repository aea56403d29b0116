package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/authkeeper/internal/flagx"
	"github.com/dmitrijs2005/authkeeper/internal/timex"
)

// JSONConfig mirrors Config for file loading. Lifetimes accept "15m", "7d"
// or integer nanoseconds.
type JSONConfig struct {
	HTTPAddr        string         `json:"http_addr"`
	GRPCAddr        string         `json:"grpc_addr"`
	DatabaseDSN     string         `json:"database_dsn"`
	FrontendURL     string         `json:"frontend_url"`
	AccessSecret    string         `json:"jwt_access_secret"`
	RefreshSecret   string         `json:"jwt_refresh_secret"`
	AccessTokenTTL  timex.Duration `json:"jwt_access_expiration"`
	RefreshTokenTTL timex.Duration `json:"jwt_refresh_expiration"`
	RefreshStore    string         `json:"refresh_store"`
	RedisAddr       string         `json:"redis_addr"`
	RedisPassword   string         `json:"redis_password"`
	RedisDB         *int           `json:"redis_db"`
}

// parseJSON overlays the file named by -c/-config onto config. Keys missing
// from the file leave the current value untouched.
func parseJSON(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var c JSONConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return err
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCAddr, c.GRPCAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.FrontendURL, c.FrontendURL)
	setString(&config.AccessSecret, c.AccessSecret)
	setString(&config.RefreshSecret, c.RefreshSecret)
	setString(&config.RefreshStore, c.RefreshStore)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.RedisPassword, c.RedisPassword)

	if c.AccessTokenTTL.Duration != 0 {
		config.AccessTokenTTL = c.AccessTokenTTL.Duration
	}
	if c.RefreshTokenTTL.Duration != 0 {
		config.RefreshTokenTTL = c.RefreshTokenTTL.Duration
	}
	if c.RedisDB != nil {
		config.RedisDB = *c.RedisDB
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
