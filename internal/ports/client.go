// Package ports define interfaces for dependency inversion.
// These interfaces allow the core business logic to remain independent of the
// concrete protocol adapter, and allow services to be tested against mocks.
package ports

import (
	"context"

	"github.com/CamilleScholtz/swmpc-sub002/internal/domain"
)

// CommandRunner executes raw MPD commands on a command-mode connection.
//
// Implementations must guarantee at-most-one in-flight protocol exchange per
// connection: MPD's line protocol is strictly request/response and
// interleaving two commands on one socket corrupts both. Callers queue behind
// a serialized handle rather than race.
type CommandRunner interface {
	// Run sends one command, or a command list when more than one command is
	// given, and returns every response line up to and including the terminal
	// "OK" line. A terminal "ACK" line fails with a *domain.ProtocolError
	// carrying the raw line. Responses arrive in strict FIFO order relative
	// to issued commands.
	Run(ctx context.Context, commands ...string) ([]string, error)
}

// Connector manages the lifecycle of a single-mode connection.
type Connector interface {
	// Connect establishes the session. It is a no-op when already connected.
	// The server greeting is consumed and validated, and the configured
	// password is sent before Connect returns.
	Connect(ctx context.Context) error

	// Disconnect tears the session down unconditionally. It is idempotent,
	// never fails, and leaves the receive buffer empty.
	Disconnect()
}

// Client is the command-mode connection surface consumed by services:
// lifecycle plus raw command execution.
type Client interface {
	Connector
	CommandRunner

	// WithConnection connects, runs fn, and disconnects on success, error and
	// cancellation paths alike.
	WithConnection(ctx context.Context, fn func(ctx context.Context) error) error
}

// ArtworkFetcher retrieves binary artwork blobs over an artwork-tuned
// connection.
type ArtworkFetcher interface {
	Connector

	// GetArtworkData reassembles the complete artwork blob for the given file
	// URI using the server's chunked offset protocol, falling back across the
	// configured candidate commands. Partial blobs are never returned.
	GetArtworkData(ctx context.Context, file string) ([]byte, error)
}

// EventWaiter is the idle-mode connection surface. A connection in idle mode
// is blocked awaiting a server notification and cannot run other commands;
// mode correctness is enforced by this type-level split.
type EventWaiter interface {
	Connector

	// IdleForEvents blocks until the server reports a change in one of the
	// masked subsystems (or any subsystem when the mask is empty) and returns
	// the decoded tag.
	IdleForEvents(ctx context.Context, mask ...domain.Subsystem) (domain.Subsystem, error)
}
