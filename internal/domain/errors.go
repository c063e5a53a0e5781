// Package domain defines domain-specific errors.
// These errors represent protocol and connection failures and are independent
// of the transport that produced them.
package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Common errors that the client and services can return.
var (
	// ErrConnectionClosed is returned when the server closes the socket
	// before a complete response has been read.
	ErrConnectionClosed = errors.New("connection closed by server")

	// ErrNotConnected is returned when a protocol exchange is attempted on a
	// disconnected connection.
	ErrNotConnected = errors.New("not connected")

	// ErrInvalidGreeting is returned when the server greeting does not start
	// with "OK MPD".
	ErrInvalidGreeting = errors.New("invalid server greeting")

	// ErrNoArtwork is returned when no candidate command produced artwork
	// data for a file.
	ErrNoArtwork = errors.New("no artwork found")

	// ErrUnsupportedOperation is returned when a caller invokes a command
	// against a source or mode that does not support it. Detected before any
	// network I/O.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrInvalidArgument is returned when a caller-supplied value is outside
	// the range the protocol accepts. Detected before any network I/O.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ProtocolError represents an ACK response from the server: the request was
// well-formed at the wire level but the server rejected it. The raw ACK line
// is preserved verbatim for callers that key off specific failures.
type ProtocolError struct {
	// Line is the complete raw ACK line, including the "ACK " prefix
	Line string

	// Code is the numeric error code extracted from the line (-1 when the
	// line did not carry a parseable code)
	Code int
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	return e.Line
}

// NewProtocolError creates a ProtocolError from a raw ACK line, extracting
// the numeric code when present. MPD formats the line as
// "ACK [code@index] {command} message".
func NewProtocolError(line string) *ProtocolError {
	code := -1
	if open := strings.IndexByte(line, '['); open >= 0 {
		rest := line[open+1:]
		if at := strings.IndexByte(rest, '@'); at > 0 {
			if n, err := strconv.Atoi(rest[:at]); err == nil {
				code = n
			}
		}
	}
	return &ProtocolError{Line: line, Code: code}
}

// MalformedResponseError represents a byte stream that did not conform to the
// expected response grammar. Always fatal to the current operation and never
// retried.
type MalformedResponseError struct {
	// Op is the operation that was decoding the response
	Op string

	// Message describes the grammar violation
	Message string
}

// Error implements the error interface.
func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response in %s: %s", e.Op, e.Message)
}

// NewMalformedResponseError creates a new MalformedResponseError.
func NewMalformedResponseError(op, message string) *MalformedResponseError {
	return &MalformedResponseError{Op: op, Message: message}
}

// ConnectionError wraps a transport-level failure with the operation that hit
// it. Connection errors are never retried by the protocol engine; retry and
// reconnect are caller concerns.
type ConnectionError struct {
	// Op is the operation that failed (e.g. "connect", "read", "write")
	Op string

	// Addr is the server address, when known
	Addr string

	// Err is the underlying error
	Err error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	if e.Addr != "" {
		return fmt.Sprintf("connection %s failed for %s: %v", e.Op, e.Addr, e.Err)
	}
	return fmt.Sprintf("connection %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// NewConnectionError creates a new ConnectionError.
func NewConnectionError(op, addr string, err error) *ConnectionError {
	return &ConnectionError{Op: op, Addr: addr, Err: err}
}

// IsProtocolError reports whether err is (or wraps) a server ACK rejection.
// The artwork fallback loop uses this to distinguish "try the next candidate
// command" from failures that must abort the whole fetch.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}
