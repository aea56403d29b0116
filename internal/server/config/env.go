package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/timex"
	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAccessSecret  = "JWT_ACCESS_SECRET"
	EnvRefreshSecret = "JWT_REFRESH_SECRET"
	EnvAccessTTL     = "JWT_ACCESS_EXPIRATION"
	EnvRefreshTTL    = "JWT_REFRESH_EXPIRATION"
	EnvPort          = "PORT"
	EnvGRPCAddr      = "GRPC_ADDRESS"
	EnvDatabaseURL   = "DATABASE_URL"
	EnvFrontendURL   = "FRONTEND_URL"
	EnvRefreshStore  = "REFRESH_STORE"
	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRedisDB       = "REDIS_DB"
)

type lookupFunc func(key string) (string, bool)

// loadDotEnv reads the given files (./.env by default) when present.
// Variables already set in the process environment win over the files.
// A missing file is fine; an unreadable or malformed one is not.
func loadDotEnv(filenames ...string) (lookupFunc, error) {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return os.LookupEnv, nil
}

func parseEnv(config *Config, lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str(EnvAccessSecret, &config.AccessSecret)
	str(EnvRefreshSecret, &config.RefreshSecret)
	str(EnvGRPCAddr, &config.GRPCAddr)
	str(EnvDatabaseURL, &config.DatabaseDSN)
	str(EnvFrontendURL, &config.FrontendURL)
	str(EnvRefreshStore, &config.RefreshStore)
	str(EnvRedisAddr, &config.RedisAddr)
	str(EnvRedisPassword, &config.RedisPassword)

	if v, ok := lookup(EnvPort); ok && v != "" {
		config.HTTPAddr = portToAddr(v)
	}

	if err := durationEnv(lookup, EnvAccessTTL, &config.AccessTokenTTL); err != nil {
		return err
	}
	if err := durationEnv(lookup, EnvRefreshTTL, &config.RefreshTokenTTL); err != nil {
		return err
	}

	if v, ok := lookup(EnvRedisDB); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRedisDB, err)
		}
		config.RedisDB = n
	}
	return nil
}

func durationEnv(lookup lookupFunc, key string, dst *time.Duration) error {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	d, err := timex.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

// portToAddr turns a bare port such as "3001" into ":3001".
func portToAddr(v string) string {
	if strings.Contains(v, ":") {
		return v
	}
	return ":" + v
}
