// Package app provides application-level orchestration and dependency injection.
// This package wires together all components and manages the client lifecycle.
package app

import (
	"context"
	"log/slog"

	"github.com/CamilleScholtz/swmpc-sub002/internal/adapter/eventbus"
	"github.com/CamilleScholtz/swmpc-sub002/internal/adapter/mpd"
	"github.com/CamilleScholtz/swmpc-sub002/internal/config"
	"github.com/CamilleScholtz/swmpc-sub002/internal/logger"
	"github.com/CamilleScholtz/swmpc-sub002/internal/ports"
	"github.com/CamilleScholtz/swmpc-sub002/internal/service"
)

// Application is the root structure that holds all dependencies.
// It follows the Dependency Injection pattern with constructor-based injection.
//
// The Application struct is responsible for:
// - Creating and wiring all dependencies
// - Managing the client lifecycle (connect, watch, shutdown)
// - Providing a clean entry point for main.go
type Application struct {
	// Core dependencies
	logger *slog.Logger
	config config.Config

	// Infrastructure
	eventBus ports.EventBus

	// Connections, one per mode
	client  *mpd.Client
	artwork *mpd.ArtworkConn
	idle    *mpd.IdleConn
	watcher *mpd.Watcher

	// Services
	playerService   *service.PlayerService
	queueService    *service.QueueService
	libraryService  *service.LibraryService
	playlistService *service.PlaylistService
	artworkService  *service.ArtworkService
}

// NewApplication creates a new application with all dependencies wired.
// This is the main dependency injection function. No I/O happens here;
// connections are established by Run.
func NewApplication(cfg config.Config) *Application {
	app := &Application{config: cfg}

	// Step 1: Create logger
	app.logger = logger.NewLogger(logger.Config{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: "text",
	})
	app.logger.Info("initializing client",
		slog.String("addr", cfg.Addr()))

	// Step 2: Create an event bus
	syncBus := eventbus.NewSyncEventBus()
	syncBus.SetLogger(app.logger.With(slog.String("component", "eventbus")))
	app.eventBus = syncBus

	// Step 3: Create the per-mode connections
	app.client = mpd.NewClient(mpd.Options{
		Addr:          cfg.Addr(),
		Password:      cfg.Password,
		ReadChunkSize: config.DefaultReadChunkSize,
		Logger:        app.logger.With(slog.String("component", "client")),
	})
	app.artwork = mpd.NewArtworkConn(mpd.Options{
		Addr:          cfg.Addr(),
		Password:      cfg.Password,
		ReadChunkSize: config.DefaultArtworkChunkSize,
		Logger:        app.logger.With(slog.String("component", "artwork")),
	}, cfg.ArtworkCommands)
	app.idle = mpd.NewIdleConn(mpd.Options{
		Addr:          cfg.Addr(),
		Password:      cfg.Password,
		ReadChunkSize: config.DefaultReadChunkSize,
		Logger:        app.logger.With(slog.String("component", "idle")),
	})
	app.watcher = mpd.NewWatcher(
		app.logger.With(slog.String("component", "watcher")),
		app.idle,
		app.eventBus,
		cfg.Addr(),
		cfg.ReconnectBackoff,
	)

	// Step 4: Create services
	app.playerService = service.NewPlayerService(
		app.logger.With(slog.String("service", "player")), app.client)
	app.queueService = service.NewQueueService(
		app.logger.With(slog.String("service", "queue")), app.client)
	app.libraryService = service.NewLibraryService(
		app.logger.With(slog.String("service", "library")), app.client)
	app.playlistService = service.NewPlaylistService(
		app.logger.With(slog.String("service", "playlist")), app.client)
	app.artworkService = service.NewArtworkService(
		app.logger.With(slog.String("service", "artwork")), app.artwork)

	return app
}

// Run connects the command connection and starts the idle watcher. The
// artwork connection is lazy; ArtworkService.Connect establishes it on first
// use.
func (a *Application) Run(ctx context.Context) error {
	if err := a.client.Connect(ctx); err != nil {
		return err
	}
	a.watcher.Start()
	a.logger.Info("client running", slog.String("addr", a.config.Addr()))
	return nil
}

// Shutdown stops the watcher and tears down every connection. Safe to call
// more than once.
func (a *Application) Shutdown() {
	a.logger.Info("shutting down")
	a.watcher.Shutdown()
	a.artwork.Disconnect()
	a.client.Disconnect()
	if err := a.eventBus.Close(); err != nil {
		a.logger.Warn("event bus close", slog.Any("error", err))
	}
}

// Logger exposes the root logger for the composition root.
func (a *Application) Logger() *slog.Logger { return a.logger }

// EventBus exposes the event bus for subscribing to server change events.
func (a *Application) EventBus() ports.EventBus { return a.eventBus }

// Player returns the playback control service.
func (a *Application) Player() *service.PlayerService { return a.playerService }

// Queue returns the play queue service.
func (a *Application) Queue() *service.QueueService { return a.queueService }

// Library returns the database browsing service.
func (a *Application) Library() *service.LibraryService { return a.libraryService }

// Playlists returns the stored playlist service.
func (a *Application) Playlists() *service.PlaylistService { return a.playlistService }

// Artwork returns the cover art service.
func (a *Application) Artwork() *service.ArtworkService { return a.artworkService }
