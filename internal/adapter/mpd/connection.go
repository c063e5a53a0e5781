package mpd

import (
	"context"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/CamilleScholtz/swmpc-sub002/internal/domain"
	"github.com/CamilleScholtz/swmpc-sub002/internal/ports"
)

// DialFunc opens the TCP session. Injectable so tests can serve the protocol
// over an in-memory pipe instead of a real listener.
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// Options configures a connection of any mode.
type Options struct {
	// Addr is the host:port of the server
	Addr string

	// Password, when non-empty, is sent via the password command right after
	// the greeting. An authentication failure surfaces as the ACK protocol
	// error the server responds with.
	Password string

	// ReadChunkSize bounds each socket read (0 means the 4096-byte default).
	// Artwork connections use a larger chunk.
	ReadChunkSize int

	// Dial overrides the dialer (nil means net.Dialer.DialContext)
	Dial DialFunc

	// Logger receives connection lifecycle logs (nil disables logging)
	Logger *slog.Logger
}

// conn is the state shared by all connection modes: one exclusively-owned
// socket plus receive buffer. Two locks split the concerns: opMu serializes
// logical protocol exchanges so no two operations interleave raw reads or
// writes, while stateMu guards only the transport pointer. Disconnect takes
// stateMu alone, so it can close the socket out from under an exchange parked
// on a blocking read; that is what unblocks a pending idle wait.
type conn struct {
	addr      string
	password  string
	chunkSize int
	dial      DialFunc
	logger    *slog.Logger

	opMu    sync.Mutex
	stateMu sync.Mutex
	tr      *transport
}

func newConn(opts Options) conn {
	dial := opts.Dial
	if dial == nil {
		dial = (&net.Dialer{}).DialContext
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return conn{
		addr:      opts.Addr,
		password:  opts.Password,
		chunkSize: opts.ReadChunkSize,
		dial:      dial,
		logger:    logger,
	}
}

// transport returns the current transport, nil when disconnected.
func (c *conn) transport() *transport {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.tr
}

// Connect establishes the session: dial, consume and validate the greeting,
// then authenticate when a password is configured. A no-op when already
// connected.
func (c *conn) Connect(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.transport() != nil {
		return nil
	}

	socket, err := c.dial(ctx, "tcp", c.addr)
	if err != nil {
		return domain.NewConnectionError("connect", c.addr, err)
	}

	tr := newTransport(socket, c.chunkSize)
	applyDeadline(ctx, socket)

	greeting, err := tr.ReadLine()
	if err != nil {
		tr.Close()
		return err
	}
	if !strings.HasPrefix(greeting, "OK MPD") {
		tr.Close()
		return domain.ErrInvalidGreeting
	}

	c.stateMu.Lock()
	c.tr = tr
	c.stateMu.Unlock()
	c.logger.Debug("connected", slog.String("addr", c.addr), slog.String("greeting", greeting))

	if c.password != "" {
		if _, err := c.exchange(ctx, "password "+Quote(c.password)); err != nil {
			c.closeTransport()
			return err
		}
	}

	return nil
}

// Disconnect tears the session down unconditionally: the socket is closed and
// the buffer discarded. Idempotent, safe on a never-connected conn, and safe
// to call while another goroutine is blocked in an exchange; the blocked read
// fails with a connection error.
func (c *conn) Disconnect() {
	c.closeTransport()
}

func (c *conn) closeTransport() {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	if c.tr == nil {
		return
	}
	c.tr.Close()
	c.tr = nil
	c.logger.Debug("disconnected", slog.String("addr", c.addr))
}

// Connected reports whether the session is established.
func (c *conn) Connected() bool {
	return c.transport() != nil
}

// exchange performs one full request/response round trip: write the payload,
// then read lines until a terminal line appears. The caller must hold opMu.
// On OK the returned slice includes the terminal line; on ACK the raw line is
// surfaced as a *domain.ProtocolError.
func (c *conn) exchange(ctx context.Context, payload string) ([]string, error) {
	tr := c.transport()
	if tr == nil {
		return nil, domain.ErrNotConnected
	}

	applyDeadline(ctx, tr.conn)

	if err := tr.WriteLine(payload); err != nil {
		return nil, err
	}

	var lines []string
	for {
		line, err := tr.ReadLine()
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(line, "ACK") {
			return nil, domain.NewProtocolError(line)
		}
		lines = append(lines, line)
		if strings.HasPrefix(line, "OK") {
			return lines, nil
		}
	}
}

// applyDeadline maps a context deadline onto socket deadlines. Without a
// deadline the socket blocks indefinitely, which is the intended behavior for
// the idle command.
func applyDeadline(ctx context.Context, socket net.Conn) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = socket.SetDeadline(deadline)
	} else {
		_ = socket.SetDeadline(time.Time{})
	}
}

// Client is the command-mode connection. Typed commands (services) are built
// purely atop Run and the parser. It must not be used for idle waits; that is
// IdleConn's job.
type Client struct {
	conn
}

// NewClient creates a command-mode connection. No I/O happens until Connect.
func NewClient(opts Options) *Client {
	return &Client{conn: newConn(opts)}
}

// Run executes commands as a single protocol exchange. More than one command
// is wrapped in command_list_begin/command_list_end; exactly one command is
// sent bare. The returned lines include the terminal OK. Any ACK line fails
// the call with a *domain.ProtocolError carrying that exact line.
//
// Transport failures are not retried here; reconnect policy belongs to the
// caller. Protocol ACKs are definite rejections and are never retried.
func (c *Client) Run(ctx context.Context, commands ...string) ([]string, error) {
	if len(commands) == 0 {
		return nil, domain.ErrUnsupportedOperation
	}

	payload := commands[0]
	if len(commands) > 1 {
		parts := make([]string, 0, len(commands)+2)
		parts = append(parts, "command_list_begin")
		parts = append(parts, commands...)
		parts = append(parts, "command_list_end")
		payload = strings.Join(parts, "\n")
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()
	return c.exchange(ctx, payload)
}

// WithConnection connects, runs fn, and disconnects on success, error and
// cancellation paths alike.
func (c *Client) WithConnection(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := c.Connect(ctx); err != nil {
		return err
	}
	defer c.Disconnect()
	return fn(ctx)
}

// Verify interface conformance.
var _ ports.Client = (*Client)(nil)
