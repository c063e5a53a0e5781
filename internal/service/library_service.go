package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/CamilleScholtz/swmpc-sub002/internal/adapter/mpd"
	"github.com/CamilleScholtz/swmpc-sub002/internal/domain"
	"github.com/CamilleScholtz/swmpc-sub002/internal/ports"
)

// LibraryService browses the music database and manages outputs.
type LibraryService struct {
	logger *slog.Logger
	client ports.CommandRunner
}

// NewLibraryService creates a new library service.
func NewLibraryService(logger *slog.Logger, client ports.CommandRunner) *LibraryService {
	return &LibraryService{
		logger: logger,
		client: client,
	}
}

// Artists lists all distinct album artists in the database.
func (s *LibraryService) Artists(ctx context.Context) ([]domain.Artist, error) {
	lines, err := s.client.Run(ctx, "list artist")
	if err != nil {
		return nil, err
	}
	return mpd.ParseArtists(lines)
}

// Albums lists the albums of one artist, derived from a full song listing so
// each album carries its release date.
func (s *LibraryService) Albums(ctx context.Context, artist string) ([]domain.Album, error) {
	if artist == "" {
		return nil, domain.ErrInvalidArgument
	}
	filter := mpd.FilterExpr("albumartist", artist)
	lines, err := s.client.Run(ctx, "find "+mpd.Quote(filter))
	if err != nil {
		return nil, err
	}
	return mpd.ParseAlbums(lines)
}

// AlbumSongs lists the songs of one album in database order.
func (s *LibraryService) AlbumSongs(ctx context.Context, album domain.Album) ([]domain.Song, error) {
	filter := mpd.AndFilters(
		mpd.FilterExpr("albumartist", album.Artist),
		mpd.FilterExpr("album", album.Title),
	)
	lines, err := s.client.Run(ctx, "find "+mpd.Quote(filter))
	if err != nil {
		return nil, err
	}
	return mpd.ParseSongs(lines)
}

// Search performs a case-insensitive substring search over any tag.
func (s *LibraryService) Search(ctx context.Context, query string) ([]domain.Song, error) {
	if query == "" {
		return nil, domain.ErrInvalidArgument
	}
	filter := fmt.Sprintf("(any contains %s)", mpd.Quote(query))
	lines, err := s.client.Run(ctx, "search "+mpd.Quote(filter))
	if err != nil {
		return nil, err
	}
	return mpd.ParseSongs(lines)
}

// Update triggers a database rescan. The server answers immediately; progress
// arrives through the update and database idle subsystems.
func (s *LibraryService) Update(ctx context.Context) error {
	_, err := s.client.Run(ctx, "update")
	return err
}

// Outputs lists the audio outputs configured on the server.
func (s *LibraryService) Outputs(ctx context.Context) ([]domain.Output, error) {
	lines, err := s.client.Run(ctx, "outputs")
	if err != nil {
		return nil, err
	}
	return mpd.ParseOutputs(lines)
}

// EnableOutput enables the output with the given id.
func (s *LibraryService) EnableOutput(ctx context.Context, id int) error {
	if id < 0 {
		return domain.ErrInvalidArgument
	}
	_, err := s.client.Run(ctx, fmt.Sprintf("enableoutput %d", id))
	return err
}

// DisableOutput disables the output with the given id.
func (s *LibraryService) DisableOutput(ctx context.Context, id int) error {
	if id < 0 {
		return domain.ErrInvalidArgument
	}
	_, err := s.client.Run(ctx, fmt.Sprintf("disableoutput %d", id))
	return err
}
