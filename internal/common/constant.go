// Package common contains shared constants and sentinel errors used across
// idkeeper components.
package common

// AuthorizationHeaderName is the gRPC metadata key that carries the bearer
// token on inbound and outbound requests.
const AuthorizationHeaderName = "authorization"

// BearerPrefix precedes the token inside the authorization header value.
const BearerPrefix = "Bearer "
