// Package config loads runtime configuration for the authkeeper CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags.
//
// Flags
//
//	-u string    base URL of the HTTP API
//	-g string    address:port of the gRPC endpoint
//	-transport   http or grpc
//	-db string   SQLite file that keeps the refresh token between runs
//	-rt duration timeout of a single token refresh
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:3001",
//	  "grpc_addr": "127.0.0.1:50051",
//	  "transport": "http",
//	  "database_dsn": "authkeeper.db",
//	  "refresh_timeout": "10s"
//	}
package config
