// Package cli provides the interactive idkeeper command-line client.
//
// It wires configuration and the gRPC account client into a small REPL:
// register, login, whoami, update, list, logout. The bearer token obtained by
// login lives only in memory and is dropped on logout or exit.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
