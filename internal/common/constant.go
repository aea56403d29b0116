// Package common contains shared constants and sentinel errors used across
// authkeeper components.
package common

// AuthorizationHeaderName is the HTTP header (and gRPC metadata key) used to
// carry the access token on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the access token in the authorization header.
const BearerPrefix = "Bearer "

// RefreshTokenKey is the durable client-side slot holding the refresh token.
const RefreshTokenKey = "refreshToken"
