// Package common contains shared constants and sentinel errors used across
// NoteVault components.
package common

// AuthorizationHeaderName is the gRPC metadata key carrying the bearer token
// on authenticated requests.
const AuthorizationHeaderName = "authorization"

// BearerScheme prefixes the token inside the authorization metadata value.
const BearerScheme = "Bearer"
