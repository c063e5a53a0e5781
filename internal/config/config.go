// Package config loads client configuration from the environment.
// A .env file in the working directory is honored when present; explicit
// environment variables override it. The loaded Config is a plain value
// handed to constructors, never a process-global.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults applied when the environment does not say otherwise.
const (
	DefaultHost = "localhost"
	DefaultPort = 6600

	// DefaultReadChunkSize is the socket read size for command and idle
	// connections.
	DefaultReadChunkSize = 4096

	// DefaultArtworkChunkSize is the socket read size for the artwork-tuned
	// connection, sized for binary throughput.
	DefaultArtworkChunkSize = 64 * 1024

	// DefaultReconnectBackoff is the fixed wait between idle-watcher
	// reconnect attempts.
	DefaultReconnectBackoff = 5 * time.Second
)

// DefaultArtworkCommands is the candidate order for artwork retrieval.
// Either command may be unsupported or lack data for a given file, so the
// fetcher tries them in order.
var DefaultArtworkCommands = []string{"albumart", "readpicture"}

// Config carries everything the client needs to reach a server.
type Config struct {
	// Host and Port locate the MPD server (default localhost:6600)
	Host string
	Port int

	// Password is sent via the password command right after connecting when
	// non-empty. Authentication failures surface as ACK protocol errors.
	Password string

	// ArtworkCommands is the ordered list of candidate artwork-fetch command
	// names.
	ArtworkCommands []string

	// ReconnectBackoff is the fixed wait between watcher reconnect attempts.
	ReconnectBackoff time.Duration

	// LogLevel is the textual log level (parsed by the logger package).
	LogLevel string
}

// Addr returns the host:port dial address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from a .env file (if present) and the process
// environment. Recognized variables: MPD_HOST, MPD_PORT, MPD_PASSWORD,
// SWMPC_ARTWORK_COMMANDS (comma-separated), SWMPC_RECONNECT_BACKOFF
// (Go duration), SWMPC_LOG_LEVEL.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Host:             DefaultHost,
		Port:             DefaultPort,
		ArtworkCommands:  DefaultArtworkCommands,
		ReconnectBackoff: DefaultReconnectBackoff,
		LogLevel:         "info",
	}

	if host := os.Getenv("MPD_HOST"); host != "" {
		// MPD_HOST follows the mpc convention: an optional "password@" prefix.
		if at := strings.IndexByte(host, '@'); at >= 0 {
			cfg.Password = host[:at]
			cfg.Host = host[at+1:]
		} else {
			cfg.Host = host
		}
	}
	if port := os.Getenv("MPD_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Port = n
		} else {
			fmt.Fprintf(os.Stderr, "invalid MPD_PORT value %q\n", port)
		}
	}
	if pw := os.Getenv("MPD_PASSWORD"); pw != "" {
		cfg.Password = pw
	}
	if cmds := os.Getenv("SWMPC_ARTWORK_COMMANDS"); cmds != "" {
		var list []string
		for _, c := range strings.Split(cmds, ",") {
			if c = strings.TrimSpace(c); c != "" {
				list = append(list, c)
			}
		}
		if len(list) > 0 {
			cfg.ArtworkCommands = list
		}
	}
	if backoff := os.Getenv("SWMPC_RECONNECT_BACKOFF"); backoff != "" {
		if d, err := time.ParseDuration(backoff); err == nil && d > 0 {
			cfg.ReconnectBackoff = d
		} else {
			fmt.Fprintf(os.Stderr, "invalid SWMPC_RECONNECT_BACKOFF value %q\n", backoff)
		}
	}
	if level := os.Getenv("SWMPC_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	return cfg
}
