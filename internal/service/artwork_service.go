package service

import (
	"context"
	"log/slog"

	"github.com/CamilleScholtz/swmpc-sub002/internal/domain"
	"github.com/CamilleScholtz/swmpc-sub002/internal/ports"
)

// ArtworkService retrieves cover art over a dedicated artwork connection so
// bulk binary transfers never delay playback commands.
type ArtworkService struct {
	logger  *slog.Logger
	fetcher ports.ArtworkFetcher
}

// NewArtworkService creates a new artwork service.
func NewArtworkService(logger *slog.Logger, fetcher ports.ArtworkFetcher) *ArtworkService {
	return &ArtworkService{
		logger:  logger,
		fetcher: fetcher,
	}
}

// Get returns the complete artwork blob for a song.
func (s *ArtworkService) Get(ctx context.Context, song domain.Song) ([]byte, error) {
	if song.URI == "" {
		return nil, domain.ErrInvalidArgument
	}
	data, err := s.fetcher.GetArtworkData(ctx, song.URI)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("artwork fetched",
		slog.String("uri", song.URI),
		slog.Int("bytes", len(data)))
	return data, nil
}

// GetForMedia resolves artwork for any media kind: songs use their own file,
// albums and artists are represented by the artwork of a contained song.
func (s *ArtworkService) GetForMedia(ctx context.Context, media domain.Media, representative domain.Song) ([]byte, error) {
	switch media.Kind {
	case domain.MediaSong:
		return s.Get(ctx, media.Song)
	case domain.MediaAlbum, domain.MediaArtist:
		return s.Get(ctx, representative)
	default:
		return nil, domain.ErrUnsupportedOperation
	}
}

// Connect establishes the artwork connection.
func (s *ArtworkService) Connect(ctx context.Context) error {
	return s.fetcher.Connect(ctx)
}

// Disconnect tears the artwork connection down.
func (s *ArtworkService) Disconnect() {
	s.fetcher.Disconnect()
}
