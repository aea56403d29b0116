package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/authkeeper/internal/flagx"
	"github.com/dmitrijs2005/authkeeper/internal/timex"
)

func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-u", "-g", "-transport", "-db", "-rt"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "u", cfg.ServerURL, "HTTP API base URL")
	fs.StringVar(&cfg.GRPCAddr, "g", cfg.GRPCAddr, "gRPC endpoint address")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "http or grpc")
	fs.StringVar(&cfg.DatabaseDSN, "db", cfg.DatabaseDSN, "local SQLite file")

	timeout := timex.Duration{Duration: cfg.RefreshTimeout}
	fs.Var(&timeout, "rt", "refresh timeout")

	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.RefreshTimeout = timeout.Duration
	return nil
}
