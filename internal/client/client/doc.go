// Package client talks to the idkeeper account service.
//
// Client is the transport-agnostic contract the CLI works against. GRPCClient
// implements it over gRPC: it keeps the bearer token returned by Login in
// memory, attaches it as "authorization: Bearer <token>" metadata, bounds
// every call with a timeout and maps status codes to errors callers can
// match with errors.Is:
//
//   - ErrUnauthorized     Unauthenticated / PermissionDenied
//   - ErrUnavailable      Unavailable / DeadlineExceeded
//   - common.ErrInvalidArgument, common.ErrAlreadyExists, common.ErrNotFound
//
// The server's message is kept in the error text.
package client
