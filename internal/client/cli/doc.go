// Package cli provides the interactive authkeeper command-line client.
//
// It wires configuration, the local SQLite store, the session gatekeeper and
// the API client, then runs a small REPL:
//
//	help | register | login | profile | logout | status | exit
//
// The refresh token survives restarts, so a user who logged in earlier is
// authenticated on the next start without typing a password. When a renewal
// fails the app drops back to the anonymous state and says so.
package cli
