// Command swmpc is a small MPD console: it prints the current player state,
// then follows server-side changes live until interrupted.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/CamilleScholtz/swmpc-sub002/internal/app"
	"github.com/CamilleScholtz/swmpc-sub002/internal/config"
	"github.com/CamilleScholtz/swmpc-sub002/internal/domain"
)

func main() {
	host := pflag.String("host", "", "server host (overrides MPD_HOST)")
	port := pflag.Int("port", 0, "server port (overrides MPD_PORT)")
	password := pflag.String("password", "", "server password (overrides MPD_PASSWORD)")
	logLevel := pflag.String("log-level", "", "log level: debug, info, warn, error")
	showVersion := pflag.Bool("version", false, "print version and exit")
	pflag.Parse()

	if *showVersion {
		fmt.Println(app.GetVersionInfo().FullString())
		return
	}

	cfg := config.Load()
	if *host != "" {
		cfg.Host = *host
	}
	if *port > 0 {
		cfg.Port = *port
	}
	if *password != "" {
		cfg.Password = *password
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "swmpc:", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	application := app.NewApplication(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := application.Run(ctx); err != nil {
		return err
	}
	defer application.Shutdown()

	logger := application.Logger()
	player := application.Player()

	printState := func() {
		status, err := player.Status(ctx)
		if err != nil {
			logger.Error("status", slog.Any("error", err))
			return
		}
		song, ok, err := player.CurrentSong(ctx)
		if err != nil {
			logger.Error("currentsong", slog.Any("error", err))
			return
		}
		if !ok {
			fmt.Printf("[%s] queue of %d songs\n", status.State, status.PlaylistLength)
			return
		}
		fmt.Printf("[%s] %s - %s (%s)\n", status.State, song.Artist, song.Title, song.Album)
	}

	printState()

	application.EventBus().Subscribe(domain.EventSubsystemChanged, func(event domain.Event) {
		changed, ok := event.(domain.SubsystemChangedEvent)
		if !ok {
			return
		}
		logger.Debug("subsystem changed", slog.String("subsystem", string(changed.Subsystem)))
		switch changed.Subsystem {
		case domain.SubsystemPlayer, domain.SubsystemPlaylist, domain.SubsystemMixer:
			printState()
		}
	})
	application.EventBus().Subscribe(domain.EventWatcherDisconnected, func(event domain.Event) {
		logger.Warn("watcher disconnected, reconnecting")
	})

	<-ctx.Done()
	return nil
}
