package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/CamilleScholtz/swmpc-sub002/internal/adapter/mpd"
	"github.com/CamilleScholtz/swmpc-sub002/internal/domain"
	"github.com/CamilleScholtz/swmpc-sub002/internal/ports"
)

// QueueService manages the play queue.
type QueueService struct {
	logger *slog.Logger
	client ports.CommandRunner
}

// NewQueueService creates a new queue service.
func NewQueueService(logger *slog.Logger, client ports.CommandRunner) *QueueService {
	return &QueueService{
		logger: logger,
		client: client,
	}
}

// List returns the full play queue in order.
func (s *QueueService) List(ctx context.Context) ([]domain.Song, error) {
	lines, err := s.client.Run(ctx, "playlistinfo")
	if err != nil {
		return nil, err
	}
	return mpd.ParseSongs(lines)
}

// Add appends a file URI to the end of the queue.
func (s *QueueService) Add(ctx context.Context, uri string) error {
	if uri == "" {
		return domain.ErrInvalidArgument
	}
	_, err := s.client.Run(ctx, "add "+mpd.Quote(uri))
	return err
}

// AddID appends a file URI to the end of the queue and returns the queue id
// the server assigned to the new entry.
func (s *QueueService) AddID(ctx context.Context, uri string) (int, error) {
	if uri == "" {
		return 0, domain.ErrInvalidArgument
	}
	lines, err := s.client.Run(ctx, "addid "+mpd.Quote(uri))
	if err != nil {
		return 0, err
	}
	return mpd.ParseID(lines)
}

// AddMedia enqueues a media entity. Songs add their single file; albums and
// artists expand server-side through a database filter so the client never
// has to page song listings over the wire.
func (s *QueueService) AddMedia(ctx context.Context, media domain.Media) error {
	switch media.Kind {
	case domain.MediaSong:
		return s.Add(ctx, media.Song.URI)
	case domain.MediaAlbum:
		filter := mpd.AndFilters(
			mpd.FilterExpr("albumartist", media.Album.Artist),
			mpd.FilterExpr("album", media.Album.Title),
		)
		_, err := s.client.Run(ctx, "findadd "+mpd.Quote(filter))
		return err
	case domain.MediaArtist:
		filter := mpd.FilterExpr("albumartist", media.Artist.Name)
		_, err := s.client.Run(ctx, "findadd "+mpd.Quote(filter))
		return err
	default:
		return domain.ErrUnsupportedOperation
	}
}

// Remove deletes the queue entry at the given position.
func (s *QueueService) Remove(ctx context.Context, position int) error {
	if position < 0 {
		return domain.ErrInvalidArgument
	}
	_, err := s.client.Run(ctx, fmt.Sprintf("delete %d", position))
	return err
}

// RemoveID deletes the queue entry with the given id.
func (s *QueueService) RemoveID(ctx context.Context, id int) error {
	if id < 0 {
		return domain.ErrInvalidArgument
	}
	_, err := s.client.Run(ctx, fmt.Sprintf("deleteid %d", id))
	return err
}

// Move relocates the entry at from to position to.
func (s *QueueService) Move(ctx context.Context, from, to int) error {
	if from < 0 || to < 0 {
		return domain.ErrInvalidArgument
	}
	_, err := s.client.Run(ctx, fmt.Sprintf("move %d %d", from, to))
	return err
}

// Clear empties the queue.
func (s *QueueService) Clear(ctx context.Context) error {
	_, err := s.client.Run(ctx, "clear")
	return err
}

// Shuffle randomizes the queue order.
func (s *QueueService) Shuffle(ctx context.Context) error {
	_, err := s.client.Run(ctx, "shuffle")
	return err
}

// Replace atomically swaps the queue contents for the given URIs and starts
// playback at the head. The clear, adds and play travel as one batch so other
// clients never observe a half-built queue.
func (s *QueueService) Replace(ctx context.Context, uris []string) error {
	commands := make([]string, 0, len(uris)+2)
	commands = append(commands, "clear")
	for _, uri := range uris {
		commands = append(commands, "add "+mpd.Quote(uri))
	}
	commands = append(commands, "play 0")
	_, err := s.client.Run(ctx, commands...)
	return err
}
