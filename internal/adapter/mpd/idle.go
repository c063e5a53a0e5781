package mpd

import (
	"context"
	"strings"

	"github.com/CamilleScholtz/swmpc-sub002/internal/domain"
	"github.com/CamilleScholtz/swmpc-sub002/internal/ports"
)

// IdleConn is the idle-mode connection. The idle command parks the socket in
// a blocking wait the server only releases on a subsystem change, which is
// incompatible with issuing other commands; keeping idle waits on their own
// connection type makes mode correctness a compile-time property.
type IdleConn struct {
	conn
}

// NewIdleConn creates an idle-mode connection. No I/O happens until Connect.
func NewIdleConn(opts Options) *IdleConn {
	return &IdleConn{conn: newConn(opts)}
}

// IdleForEvents blocks until the server reports a change in one of the masked
// subsystems (any subsystem when the mask is empty) and returns the decoded
// tag. The read blocks indefinitely by design; callers wanting a timeout race
// it against an external timer, and Disconnect from another goroutine
// unblocks a pending wait with a connection error.
func (c *IdleConn) IdleForEvents(ctx context.Context, mask ...domain.Subsystem) (domain.Subsystem, error) {
	command := "idle"
	if len(mask) > 0 {
		names := make([]string, len(mask))
		for i, sub := range mask {
			names[i] = string(sub)
		}
		command += " " + strings.Join(names, " ")
	}

	c.opMu.Lock()
	lines, err := c.exchange(ctx, command)
	c.opMu.Unlock()
	if err != nil {
		return "", err
	}

	for _, line := range lines {
		if isTerminal(line) {
			break
		}
		key, value, err := parsePair("idle", line)
		if err != nil {
			return "", err
		}
		if key != "changed" {
			continue
		}
		sub, ok := domain.ParseSubsystem(value)
		if !ok {
			return "", domain.NewMalformedResponseError("idle", "unrecognized subsystem "+value)
		}
		return sub, nil
	}

	return "", domain.NewMalformedResponseError("idle", "response carried no changed line")
}

// Verify interface conformance.
var _ ports.EventWaiter = (*IdleConn)(nil)
