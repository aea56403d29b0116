package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/authkeeper/internal/flagx"
	"github.com/dmitrijs2005/authkeeper/internal/timex"
)

// parseFlags applies command-line overrides.
//
//	-a  string   HTTP listen address
//	-g  string   gRPC listen address
//	-d  string   PostgreSQL DSN
//	-as string   access token secret
//	-rs string   refresh token secret
//	-t  duration access token lifetime ("15m", "1h")
//	-r  duration refresh token lifetime ("7d")
//	-o  string   allowed CORS origin
//	-s  string   refresh store (postgres|redis)
//	-ra string   redis address
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-as", "-rs", "-t", "-r", "-o", "-s", "-ra"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP listen address")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC listen address")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.AccessSecret, "as", config.AccessSecret, "access token secret")
	fs.StringVar(&config.RefreshSecret, "rs", config.RefreshSecret, "refresh token secret")
	fs.StringVar(&config.FrontendURL, "o", config.FrontendURL, "allowed CORS origin")
	fs.StringVar(&config.RefreshStore, "s", config.RefreshStore, "refresh store: postgres or redis")
	fs.StringVar(&config.RedisAddr, "ra", config.RedisAddr, "redis address")

	accessTTL := timex.Duration{Duration: config.AccessTokenTTL}
	refreshTTL := timex.Duration{Duration: config.RefreshTokenTTL}
	fs.Var(&accessTTL, "t", "access token lifetime")
	fs.Var(&refreshTTL, "r", "refresh token lifetime")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.AccessTokenTTL = accessTTL.Duration
	config.RefreshTokenTTL = refreshTTL.Duration
	return nil
}
