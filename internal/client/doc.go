// Package client is a gRPC client for the NoteVault service.
//
// A Client owns one connection. The bearer token returned by Register or
// Login is kept on the Client and attached to every later call by a unary
// interceptor. Server status codes come back as the sentinel errors of the
// common package so callers can match them with errors.Is.
package client
