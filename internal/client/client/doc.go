// Package client talks to the authkeeper server.
//
// Client is the transport-agnostic contract. HTTPClient speaks JSON over
// HTTP; GRPCClient speaks the same messages over gRPC with the JSON codec.
// Both route protected calls through a session.Session, so an expired access
// token is renewed once and the call replayed without the caller noticing.
//
// Server rejections surface as the sentinel errors in errors.go and can be
// matched with errors.Is. A renewal that fails additionally matches
// session.ErrSessionExpired.
//
// InitDatabase opens the local SQLite file and applies the embedded
// migrations.
package client
