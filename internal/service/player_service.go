// Package service provides typed MPD commands built purely atop the raw
// command runner and the response parser. Services hold no authoritative
// server state; every read is a fresh round trip.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/CamilleScholtz/swmpc-sub002/internal/adapter/mpd"
	"github.com/CamilleScholtz/swmpc-sub002/internal/domain"
	"github.com/CamilleScholtz/swmpc-sub002/internal/ports"
)

// PlayerService controls playback and reads player state.
type PlayerService struct {
	logger *slog.Logger
	client ports.CommandRunner
}

// NewPlayerService creates a new player service.
func NewPlayerService(logger *slog.Logger, client ports.CommandRunner) *PlayerService {
	return &PlayerService{
		logger: logger,
		client: client,
	}
}

// Status returns a snapshot of the player state.
func (s *PlayerService) Status(ctx context.Context) (domain.Status, error) {
	lines, err := s.client.Run(ctx, "status")
	if err != nil {
		return domain.Status{}, err
	}
	return mpd.ParseStatus(lines)
}

// CurrentSong returns the song the player is on. The zero Song with a false
// flag is returned when nothing is loaded.
func (s *PlayerService) CurrentSong(ctx context.Context) (domain.Song, bool, error) {
	lines, err := s.client.Run(ctx, "currentsong")
	if err != nil {
		return domain.Song{}, false, err
	}
	song, err := mpd.ParseSong(lines)
	if err != nil {
		return domain.Song{}, false, err
	}
	if song.URI == "" {
		return domain.Song{}, false, nil
	}
	return song, true, nil
}

// Play starts playback at the given queue position.
func (s *PlayerService) Play(ctx context.Context, position int) error {
	_, err := s.client.Run(ctx, fmt.Sprintf("play %d", position))
	return err
}

// PlayID starts playback of the queue entry with the given id.
func (s *PlayerService) PlayID(ctx context.Context, id int) error {
	_, err := s.client.Run(ctx, fmt.Sprintf("playid %d", id))
	return err
}

// Pause pauses (true) or resumes (false) playback.
func (s *PlayerService) Pause(ctx context.Context, paused bool) error {
	_, err := s.client.Run(ctx, "pause "+boolArg(paused))
	return err
}

// Stop stops playback.
func (s *PlayerService) Stop(ctx context.Context) error {
	_, err := s.client.Run(ctx, "stop")
	return err
}

// Next skips to the next queue entry.
func (s *PlayerService) Next(ctx context.Context) error {
	_, err := s.client.Run(ctx, "next")
	return err
}

// Previous skips to the previous queue entry.
func (s *PlayerService) Previous(ctx context.Context) error {
	_, err := s.client.Run(ctx, "previous")
	return err
}

// Seek sets the position within the current song.
func (s *PlayerService) Seek(ctx context.Context, position time.Duration) error {
	if position < 0 {
		return domain.ErrInvalidArgument
	}
	_, err := s.client.Run(ctx, fmt.Sprintf("seekcur %.3f", position.Seconds()))
	return err
}

// SetVolume sets the mixer volume (0-100).
func (s *PlayerService) SetVolume(ctx context.Context, volume int) error {
	if volume < 0 || volume > 100 {
		return domain.ErrInvalidArgument
	}
	_, err := s.client.Run(ctx, fmt.Sprintf("setvol %d", volume))
	return err
}

// SetRandom toggles random playback.
func (s *PlayerService) SetRandom(ctx context.Context, enabled bool) error {
	_, err := s.client.Run(ctx, "random "+boolArg(enabled))
	return err
}

// SetRepeat toggles repeat playback.
func (s *PlayerService) SetRepeat(ctx context.Context, enabled bool) error {
	_, err := s.client.Run(ctx, "repeat "+boolArg(enabled))
	return err
}

// SetSingle toggles single-song playback.
func (s *PlayerService) SetSingle(ctx context.Context, enabled bool) error {
	_, err := s.client.Run(ctx, "single "+boolArg(enabled))
	return err
}

// SetConsume toggles consume mode.
func (s *PlayerService) SetConsume(ctx context.Context, enabled bool) error {
	_, err := s.client.Run(ctx, "consume "+boolArg(enabled))
	return err
}

func boolArg(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
