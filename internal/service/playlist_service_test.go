package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CamilleScholtz/swmpc-sub002/internal/domain"
)

func TestPlaylistService_List(t *testing.T) {
	runner := &mockRunner{responses: [][]string{{
		"playlist: road trip",
		"Last-Modified: 2024-01-01T00:00:00Z",
		"playlist: focus",
		"Last-Modified: 2024-02-01T00:00:00Z",
		"OK",
	}}}
	svc := NewPlaylistService(testLogger(), runner)

	playlists, err := svc.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"listplaylists"}, runner.lastCall())
	require.Len(t, playlists, 2)
	assert.Equal(t, "road trip", playlists[0].Name)
}

func TestPlaylistService_Songs(t *testing.T) {
	runner := &mockRunner{responses: [][]string{{
		"file: a.mp3",
		"Title: A",
		"OK",
	}}}
	svc := NewPlaylistService(testLogger(), runner)

	songs, err := svc.Songs(context.Background(), domain.Playlist{Name: "road trip"})
	require.NoError(t, err)

	assert.Equal(t, []string{`listplaylistinfo "road trip"`}, runner.lastCall())
	require.Len(t, songs, 1)
	assert.Equal(t, "A", songs[0].Title)
}

func TestPlaylistService_Load_Batches(t *testing.T) {
	runner := &mockRunner{}
	svc := NewPlaylistService(testLogger(), runner)

	require.NoError(t, svc.Load(context.Background(), domain.Playlist{Name: "focus"}))

	assert.Equal(t, 1, runner.callCount())
	assert.Equal(t, []string{"clear", `load "focus"`}, runner.lastCall())
}

func TestPlaylistService_SaveAndDelete(t *testing.T) {
	runner := &mockRunner{}
	svc := NewPlaylistService(testLogger(), runner)

	require.NoError(t, svc.Save(context.Background(), "new list"))
	assert.Equal(t, []string{`save "new list"`}, runner.lastCall())

	require.NoError(t, svc.Delete(context.Background(), domain.Playlist{Name: "new list"}))
	assert.Equal(t, []string{`rm "new list"`}, runner.lastCall())
}

func TestPlaylistService_AddAndRemoveSong(t *testing.T) {
	runner := &mockRunner{}
	svc := NewPlaylistService(testLogger(), runner)

	playlist := domain.Playlist{Name: "mix"}
	require.NoError(t, svc.AddSong(context.Background(), playlist, domain.Song{URI: "a.mp3"}))
	assert.Equal(t, []string{`playlistadd "mix" "a.mp3"`}, runner.lastCall())

	require.NoError(t, svc.RemoveSong(context.Background(), playlist, 2))
	assert.Equal(t, []string{`playlistdelete "mix" 2`}, runner.lastCall())
}

func TestPlaylistService_InvalidArguments(t *testing.T) {
	runner := &mockRunner{}
	svc := NewPlaylistService(testLogger(), runner)
	ctx := context.Background()

	require.ErrorIs(t, svc.Load(ctx, domain.Playlist{}), domain.ErrInvalidArgument)
	require.ErrorIs(t, svc.Save(ctx, ""), domain.ErrInvalidArgument)
	require.ErrorIs(t, svc.Delete(ctx, domain.Playlist{}), domain.ErrInvalidArgument)
	_, err := svc.Songs(ctx, domain.Playlist{})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
	require.ErrorIs(t, svc.AddSong(ctx, domain.Playlist{}, domain.Song{URI: "a.mp3"}), domain.ErrInvalidArgument)
	require.ErrorIs(t, svc.AddSong(ctx, domain.Playlist{Name: "mix"}, domain.Song{}), domain.ErrInvalidArgument)
	require.ErrorIs(t, svc.RemoveSong(ctx, domain.Playlist{Name: "mix"}, -1), domain.ErrInvalidArgument)
	assert.Zero(t, runner.callCount())
}
