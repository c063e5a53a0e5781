package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/CamilleScholtz/swmpc-sub002/internal/adapter/mpd"
	"github.com/CamilleScholtz/swmpc-sub002/internal/domain"
	"github.com/CamilleScholtz/swmpc-sub002/internal/ports"
)

// PlaylistService manages stored playlists.
type PlaylistService struct {
	logger *slog.Logger
	client ports.CommandRunner
}

// NewPlaylistService creates a new playlist service.
func NewPlaylistService(logger *slog.Logger, client ports.CommandRunner) *PlaylistService {
	return &PlaylistService{
		logger: logger,
		client: client,
	}
}

// List returns all stored playlists.
func (s *PlaylistService) List(ctx context.Context) ([]domain.Playlist, error) {
	lines, err := s.client.Run(ctx, "listplaylists")
	if err != nil {
		return nil, err
	}
	return mpd.ParsePlaylists(lines)
}

// Songs returns the songs of a stored playlist in order.
func (s *PlaylistService) Songs(ctx context.Context, playlist domain.Playlist) ([]domain.Song, error) {
	if playlist.Name == "" {
		return nil, domain.ErrInvalidArgument
	}
	lines, err := s.client.Run(ctx, "listplaylistinfo "+mpd.Quote(playlist.Name))
	if err != nil {
		return nil, err
	}
	return mpd.ParseSongs(lines)
}

// Load replaces the play queue with the contents of a stored playlist. The
// clear and load travel as one batch.
func (s *PlaylistService) Load(ctx context.Context, playlist domain.Playlist) error {
	if playlist.Name == "" {
		return domain.ErrInvalidArgument
	}
	_, err := s.client.Run(ctx, "clear", "load "+mpd.Quote(playlist.Name))
	return err
}

// Save stores the current queue under the given name.
func (s *PlaylistService) Save(ctx context.Context, name string) error {
	if name == "" {
		return domain.ErrInvalidArgument
	}
	_, err := s.client.Run(ctx, "save "+mpd.Quote(name))
	return err
}

// Delete removes a stored playlist.
func (s *PlaylistService) Delete(ctx context.Context, playlist domain.Playlist) error {
	if playlist.Name == "" {
		return domain.ErrInvalidArgument
	}
	_, err := s.client.Run(ctx, "rm "+mpd.Quote(playlist.Name))
	return err
}

// AddSong appends a song to a stored playlist.
func (s *PlaylistService) AddSong(ctx context.Context, playlist domain.Playlist, song domain.Song) error {
	if playlist.Name == "" || song.URI == "" {
		return domain.ErrInvalidArgument
	}
	_, err := s.client.Run(ctx, fmt.Sprintf("playlistadd %s %s", mpd.Quote(playlist.Name), mpd.Quote(song.URI)))
	return err
}

// RemoveSong deletes the entry at the given position from a stored playlist.
func (s *PlaylistService) RemoveSong(ctx context.Context, playlist domain.Playlist, position int) error {
	if playlist.Name == "" || position < 0 {
		return domain.ErrInvalidArgument
	}
	_, err := s.client.Run(ctx, fmt.Sprintf("playlistdelete %s %d", mpd.Quote(playlist.Name), position))
	return err
}
