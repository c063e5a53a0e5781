package mpd

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CamilleScholtz/swmpc-sub002/internal/domain"
)

// feed writes b to the server side of a pipe in a background goroutine, then
// closes it. net.Pipe writes are synchronous, so the write must not share the
// reader's goroutine.
func feed(t *testing.T, b []byte) *transport {
	t.Helper()
	client, server := net.Pipe()
	t.Cleanup(func() { _ = client.Close() })
	go func() {
		_, _ = server.Write(b)
		_ = server.Close()
	}()
	return newTransport(client, 0)
}

func TestTransport_ReadLine(t *testing.T) {
	tr := feed(t, []byte("OK MPD 0.23.5\nvolume: 50\n"))

	line, err := tr.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "OK MPD 0.23.5", line)

	line, err = tr.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "volume: 50", line)
}

func TestTransport_ReadLine_TrimsCR(t *testing.T) {
	tr := feed(t, []byte("status: ok\r\n"))

	line, err := tr.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "status: ok", line)
}

func TestTransport_ReadLine_AcrossReads(t *testing.T) {
	// One line delivered byte by byte: the transport must keep topping the
	// buffer up until the newline arrives.
	client, server := net.Pipe()
	t.Cleanup(func() { _ = client.Close() })
	go func() {
		for _, b := range []byte("changed: player\n") {
			_, _ = server.Write([]byte{b})
		}
		_ = server.Close()
	}()

	tr := newTransport(client, 0)
	line, err := tr.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "changed: player", line)
}

func TestTransport_ReadLine_EOF(t *testing.T) {
	tr := feed(t, []byte("partial without newline"))

	_, err := tr.ReadLine()
	require.ErrorIs(t, err, domain.ErrConnectionClosed)
}

func TestTransport_ReadLine_InvalidUTF8(t *testing.T) {
	tr := feed(t, []byte{0xff, 0xfe, '\n'})

	_, err := tr.ReadLine()
	var malformed *domain.MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestTransport_ReadBinary_PreservesNewlines(t *testing.T) {
	// A blob containing 0x0A bytes must come through intact, and the line
	// after it must resume exactly at the byte following the blob.
	blob := []byte("ab\ncd\n\nef")
	payload := append([]byte("binary: 9\n"), blob...)
	payload = append(payload, []byte("\nOK\n")...)
	tr := feed(t, payload)

	line, err := tr.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "binary: 9", line)

	data, err := tr.ReadBinary(len(blob))
	require.NoError(t, err)
	assert.Equal(t, blob, data)

	line, err = tr.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "", line)

	line, err = tr.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "OK", line)
}

func TestTransport_ReadBinary_SpansChunks(t *testing.T) {
	// A blob larger than the read chunk forces multiple socket reads.
	blob := make([]byte, 10_000)
	for i := range blob {
		blob[i] = byte(i % 251)
	}
	payload := append(append([]byte{}, blob...), []byte("\nOK\n")...)

	client, server := net.Pipe()
	t.Cleanup(func() { _ = client.Close() })
	go func() {
		_, _ = server.Write(payload)
		_ = server.Close()
	}()

	tr := newTransport(client, 4096)
	data, err := tr.ReadBinary(len(blob))
	require.NoError(t, err)
	assert.Equal(t, blob, data)

	line, err := tr.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "", line)
}

func TestTransport_ReadBinary_Negative(t *testing.T) {
	tr := feed(t, nil)

	_, err := tr.ReadBinary(-1)
	var malformed *domain.MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestTransport_WriteLine(t *testing.T) {
	client, server := net.Pipe()
	t.Cleanup(func() { _ = client.Close() })

	got := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 64)
		n, _ := server.Read(buf)
		got <- buf[:n]
		_ = server.Close()
	}()

	tr := newTransport(client, 0)
	require.NoError(t, tr.WriteLine("status"))

	select {
	case b := <-got:
		assert.Equal(t, "status\n", string(b))
	case <-time.After(time.Second):
		t.Fatal("server never received the write")
	}
}
