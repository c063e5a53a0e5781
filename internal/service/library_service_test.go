package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CamilleScholtz/swmpc-sub002/internal/domain"
)

func TestLibraryService_Artists(t *testing.T) {
	runner := &mockRunner{responses: [][]string{{
		"Artist: Alpha",
		"Artist: Beta",
		"OK",
	}}}
	svc := NewLibraryService(testLogger(), runner)

	artists, err := svc.Artists(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"list artist"}, runner.lastCall())
	require.Len(t, artists, 2)
	assert.Equal(t, "Alpha", artists[0].Name)
}

func TestLibraryService_Albums(t *testing.T) {
	runner := &mockRunner{responses: [][]string{{
		"file: x/1.mp3",
		"Artist: X",
		"Album: One",
		"Date: 1999",
		"file: x/2.mp3",
		"Artist: X",
		"Album: Two",
		"OK",
	}}}
	svc := NewLibraryService(testLogger(), runner)

	albums, err := svc.Albums(context.Background(), "X")
	require.NoError(t, err)

	assert.Equal(t, []string{`find "(albumartist == \'X\')"`}, runner.lastCall())
	require.Len(t, albums, 2)
	assert.Equal(t, "One", albums[0].Title)
	assert.Equal(t, "1999", albums[0].Date)
	assert.Equal(t, "Two", albums[1].Title)
}

func TestLibraryService_Albums_EmptyArtist(t *testing.T) {
	runner := &mockRunner{}
	svc := NewLibraryService(testLogger(), runner)

	_, err := svc.Albums(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Zero(t, runner.callCount())
}

func TestLibraryService_AlbumSongs(t *testing.T) {
	runner := &mockRunner{responses: [][]string{{
		"file: x/1.mp3",
		"Title: First",
		"Track: 1",
		"OK",
	}}}
	svc := NewLibraryService(testLogger(), runner)

	songs, err := svc.AlbumSongs(context.Background(), domain.Album{Title: "One", Artist: "X"})
	require.NoError(t, err)

	assert.Equal(t,
		[]string{`find "((albumartist == \'X\') AND (album == \'One\'))"`},
		runner.lastCall())
	require.Len(t, songs, 1)
	assert.Equal(t, "First", songs[0].Title)
}

func TestLibraryService_Search(t *testing.T) {
	runner := &mockRunner{responses: [][]string{{
		"file: hit.mp3",
		"Title: Hit",
		"OK",
	}}}
	svc := NewLibraryService(testLogger(), runner)

	songs, err := svc.Search(context.Background(), "hit")
	require.NoError(t, err)

	assert.Equal(t, []string{`search "(any contains \"hit\")"`}, runner.lastCall())
	require.Len(t, songs, 1)
}

func TestLibraryService_Search_Empty(t *testing.T) {
	svc := NewLibraryService(testLogger(), &mockRunner{})

	_, err := svc.Search(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestLibraryService_Update(t *testing.T) {
	runner := &mockRunner{responses: [][]string{{"updating_db: 3", "OK"}}}
	svc := NewLibraryService(testLogger(), runner)

	require.NoError(t, svc.Update(context.Background()))
	assert.Equal(t, []string{"update"}, runner.lastCall())
}

func TestLibraryService_Outputs(t *testing.T) {
	runner := &mockRunner{responses: [][]string{{
		"outputid: 0",
		"outputname: Built-in",
		"outputenabled: 1",
		"OK",
	}}}
	svc := NewLibraryService(testLogger(), runner)

	outputs, err := svc.Outputs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"outputs"}, runner.lastCall())
	require.Len(t, outputs, 1)
	assert.True(t, outputs[0].Enabled)
}

func TestLibraryService_ToggleOutputs(t *testing.T) {
	runner := &mockRunner{}
	svc := NewLibraryService(testLogger(), runner)

	require.NoError(t, svc.EnableOutput(context.Background(), 1))
	assert.Equal(t, []string{"enableoutput 1"}, runner.lastCall())

	require.NoError(t, svc.DisableOutput(context.Background(), 1))
	assert.Equal(t, []string{"disableoutput 1"}, runner.lastCall())

	require.ErrorIs(t, svc.EnableOutput(context.Background(), -1), domain.ErrInvalidArgument)
	require.ErrorIs(t, svc.DisableOutput(context.Background(), -1), domain.ErrInvalidArgument)
}
