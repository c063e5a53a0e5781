package mpd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/CamilleScholtz/swmpc-sub002/internal/domain"
	"github.com/CamilleScholtz/swmpc-sub002/internal/ports"
)

// artworkReadChunkSize is the default socket read size for artwork
// connections, tuned for binary throughput.
const artworkReadChunkSize = 64 * 1024

// ArtworkConn is the artwork-mode connection. It reassembles complete binary
// blobs from the server's chunked offset protocol and keeps its own socket so
// large transfers never queue behind ordinary commands.
type ArtworkConn struct {
	conn
	commands []string
}

// NewArtworkConn creates an artwork-mode connection. commands is the ordered
// list of candidate retrieval commands (nil means albumart then readpicture).
func NewArtworkConn(opts Options, commands []string) *ArtworkConn {
	if opts.ReadChunkSize == 0 {
		opts.ReadChunkSize = artworkReadChunkSize
	}
	if len(commands) == 0 {
		commands = []string{"albumart", "readpicture"}
	}
	return &ArtworkConn{conn: newConn(opts), commands: commands}
}

// GetArtworkData fetches the complete artwork blob for a file URI.
//
// Candidate commands are tried in order: a server ACK (command unsupported,
// or no artwork reachable via that command) records the failure and moves on
// to the next candidate; any other failure aborts immediately. When every
// candidate is rejected, the last recorded failure is returned — or
// domain.ErrNoArtwork if none was recorded. Partial blobs are never returned.
func (a *ArtworkConn) GetArtworkData(ctx context.Context, file string) ([]byte, error) {
	var lastErr error
	for _, command := range a.commands {
		data, err := a.fetchAllChunks(ctx, command, file)
		if err == nil {
			return data, nil
		}
		if domain.IsProtocolError(err) {
			a.logger.Debug("artwork command rejected, trying next candidate",
				slog.String("command", command),
				slog.Any("error", err))
			lastErr = err
			continue
		}
		return nil, err
	}
	if lastErr == nil {
		lastErr = domain.ErrNoArtwork
	}
	return nil, lastErr
}

// fetchAllChunks loops the offset-based read command until the transfer
// reaches the total length announced by the first chunk's size header.
//
// The size header is optional beyond the first chunk; if the server never
// reports it at all, the loop terminates after the first chunk rather than
// risk spinning forever. A zero-length binary header likewise terminates the
// loop once data has been received.
func (a *ArtworkConn) fetchAllChunks(ctx context.Context, command, file string) ([]byte, error) {
	a.opMu.Lock()
	defer a.opMu.Unlock()

	tr := a.transport()
	if tr == nil {
		return nil, domain.ErrNotConnected
	}

	var data []byte
	offset := 0
	totalSize := -1

	for {
		applyDeadline(ctx, tr.conn)

		request := fmt.Sprintf("%s %s %d", command, Quote(file), offset)
		if err := tr.WriteLine(request); err != nil {
			return nil, err
		}

		// Prologue: read header lines until the binary header announces the
		// length of the raw span that follows.
		chunkSize := -1
		for chunkSize < 0 {
			line, err := tr.ReadLine()
			if err != nil {
				return nil, err
			}
			if strings.HasPrefix(line, "ACK") {
				return nil, domain.NewProtocolError(line)
			}
			if strings.HasPrefix(line, "OK") {
				return nil, domain.NewMalformedResponseError("artwork", "missing binary header before terminal line")
			}
			key, value, err := parsePair("artwork", line)
			if err != nil {
				return nil, err
			}
			switch key {
			case "size":
				if n, err := strconv.Atoi(value); err == nil && n >= 0 {
					totalSize = n
				}
			case "binary":
				n, err := strconv.Atoi(value)
				if err != nil || n < 0 {
					return nil, domain.NewMalformedResponseError("artwork", "unparsable binary length "+value)
				}
				chunkSize = n
			}
		}

		if chunkSize == 0 {
			// A data-bearing response must carry a positive binary length;
			// returning here would hand the caller a partial blob.
			return nil, domain.NewMalformedResponseError("artwork", "zero-length binary chunk")
		}

		chunk, err := tr.ReadBinary(chunkSize)
		if err != nil {
			return nil, err
		}
		data = append(data, chunk...)

		if err := drainToOK(tr); err != nil {
			return nil, err
		}

		offset += chunkSize
		if totalSize >= 0 && offset >= totalSize {
			return data, nil
		}
		if totalSize < 0 {
			// Size was never reported; stop after the first chunk.
			return data, nil
		}
	}
}

// drainToOK consumes trailing lines up to the terminal OK of one chunk
// response.
func drainToOK(tr *transport) error {
	for {
		line, err := tr.ReadLine()
		if err != nil {
			return err
		}
		if strings.HasPrefix(line, "ACK") {
			return domain.NewProtocolError(line)
		}
		if strings.HasPrefix(line, "OK") {
			return nil
		}
	}
}

// Verify interface conformance.
var _ ports.ArtworkFetcher = (*ArtworkConn)(nil)
