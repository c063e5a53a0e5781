// Package mpd implements the MPD wire protocol: a line-oriented, stateful
// TCP protocol with raw binary spans interleaved between text lines.
//
// The package provides three mode-distinct connection types (command, idle,
// artwork) over a shared transport, a response parser producing domain
// records, and an idle watcher that drives the event bus.
package mpd

import (
	"io"
	"net"
	"strings"
	"unicode/utf8"

	"github.com/CamilleScholtz/swmpc-sub002/internal/domain"
)

// transport owns a socket and a growing receive buffer, and extracts
// newline-delimited text lines and fixed-length binary spans from it.
//
// The buffer is the single source of truth for unconsumed bytes: a ReadLine
// immediately following a ReadBinary resumes at the first byte after the
// binary span. The artwork protocol interleaves binary payloads between text
// lines, so splitting on newlines at the socket level would corrupt any blob
// containing a 0x0A byte.
type transport struct {
	conn      net.Conn
	buf       []byte
	chunkSize int
}

// newTransport wraps an established socket. chunkSize bounds each socket
// read; artwork connections use a larger chunk for binary throughput.
func newTransport(conn net.Conn, chunkSize int) *transport {
	if chunkSize <= 0 {
		chunkSize = 4096
	}
	return &transport{conn: conn, chunkSize: chunkSize}
}

// fill reads one bounded chunk from the socket into the buffer.
// EOF maps to domain.ErrConnectionClosed.
func (t *transport) fill() error {
	chunk := make([]byte, t.chunkSize)
	n, err := t.conn.Read(chunk)
	if n > 0 {
		t.buf = append(t.buf, chunk[:n]...)
		return nil
	}
	if err == io.EOF {
		return domain.ErrConnectionClosed
	}
	if err != nil {
		return domain.NewConnectionError("read", t.conn.RemoteAddr().String(), err)
	}
	return nil
}

// ReadLine pops one line (bytes up to the first 0x0A, exclusive) from the
// buffer, topping the buffer up from the socket until a complete line is
// available. The trailing CR, if any, is trimmed.
func (t *transport) ReadLine() (string, error) {
	for {
		for i, b := range t.buf {
			if b != '\n' {
				continue
			}
			raw := t.buf[:i]
			t.buf = t.buf[i+1:]
			line := strings.TrimSuffix(string(raw), "\r")
			if !utf8.ValidString(line) {
				return "", domain.NewMalformedResponseError("readLine", "response line is not valid UTF-8")
			}
			return line, nil
		}
		if err := t.fill(); err != nil {
			return "", err
		}
	}
}

// ReadBinary returns exactly n bytes, consumed first from the existing buffer
// and then topped up by further socket reads. It never over-consumes into the
// bytes of the following line.
func (t *transport) ReadBinary(n int) ([]byte, error) {
	if n < 0 {
		return nil, domain.NewMalformedResponseError("readBinary", "negative binary length")
	}
	for len(t.buf) < n {
		if err := t.fill(); err != nil {
			return nil, err
		}
	}
	out := make([]byte, n)
	copy(out, t.buf[:n])
	t.buf = t.buf[n:]
	return out, nil
}

// WriteLine appends a newline and writes the whole payload to the socket.
func (t *transport) WriteLine(s string) error {
	if _, err := t.conn.Write(append([]byte(s), '\n')); err != nil {
		return domain.NewConnectionError("write", t.conn.RemoteAddr().String(), err)
	}
	return nil
}

// Close closes the socket. The transport must not be used afterwards.
func (t *transport) Close() {
	_ = t.conn.Close()
}
