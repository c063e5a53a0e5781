package mpd

import (
	"bufio"
	"context"
	"net"
	"strings"
	"testing"
)

// script is the server side of an in-memory protocol session. Its methods run
// inside the server goroutine, so failures are reported with Errorf rather
// than Fatalf.
type script struct {
	t    *testing.T
	sock net.Conn
	r    *bufio.Reader
}

// expect reads one request line and checks it verbatim.
func (s *script) expect(want string) {
	s.t.Helper()
	line, err := s.r.ReadString('\n')
	if err != nil {
		s.t.Errorf("server read failed waiting for %q: %v", want, err)
		return
	}
	got := strings.TrimSuffix(line, "\n")
	if got != want {
		s.t.Errorf("server received %q, want %q", got, want)
	}
}

// send writes response lines, each newline-terminated. Write errors are
// ignored: failure-path tests legitimately hang up before consuming the whole
// script, and pipe writes fail once the client side closes.
func (s *script) send(lines ...string) {
	for _, line := range lines {
		if _, err := s.sock.Write([]byte(line + "\n")); err != nil {
			return
		}
	}
}

// sendRaw writes bytes without any framing, for binary payloads.
func (s *script) sendRaw(b []byte) {
	_, _ = s.sock.Write(b)
}

// greet sends the protocol greeting.
func (s *script) greet() {
	s.send("OK MPD 0.23.5")
}

// scriptedDialer returns a DialFunc serving each dialed connection with fn in
// a background goroutine over an in-memory pipe.
func scriptedDialer(t *testing.T, fn func(s *script)) DialFunc {
	return func(_ context.Context, _, _ string) (net.Conn, error) {
		client, server := net.Pipe()
		go func() {
			defer func() { _ = server.Close() }()
			fn(&script{t: t, sock: server, r: bufio.NewReader(server)})
		}()
		return client, nil
	}
}

// testOptions builds Options wired to a scripted server.
func testOptions(t *testing.T, fn func(s *script)) Options {
	return Options{
		Addr: "test:6600",
		Dial: scriptedDialer(t, fn),
	}
}
