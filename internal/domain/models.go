// Package domain contains core business models and logic with no external dependencies.
// This package defines the fundamental entities exchanged with an MPD server.
package domain

import (
	"time"
)

// Default values applied when an optional tag is absent from a server response.
const (
	UnknownArtist = "Unknown Artist"
	UnknownTitle  = "Unknown Title"
	UnknownAlbum  = "Unknown Album"
)

// Song represents a single track known to the server, either inside the
// music database or as an entry of the play queue.
type Song struct {
	// URI is the file path identifying the song on the server
	URI string

	// Title is the song title
	Title string

	// Artist is the performing artist name
	Artist string

	// Album is the album name
	Album string

	// Track is the track number on the album (defaults to 1)
	Track int

	// Disc is the disc number for multi-disc albums (defaults to 1)
	Disc int

	// Date is the release date string as reported by the server
	Date string

	// Duration is the total length of the song (0 when unreported)
	Duration time.Duration

	// Position is the 0-based position in the play queue (-1 outside the queue)
	Position int

	// ID is the stable queue identifier assigned by the server (-1 outside the queue)
	ID int
}

// Album represents an album, typically derived from the first song of a
// grouped database listing.
type Album struct {
	// Title is the album name
	Title string

	// Artist is the album artist
	Artist string

	// Date is the release date string
	Date string
}

// Artist represents a single artist name from the music database.
type Artist struct {
	// Name is the artist name
	Name string
}

// Playlist represents a stored playlist by name.
type Playlist struct {
	// Name is the playlist name as known to the server
	Name string
}

// Output represents an audio output configured on the server.
type Output struct {
	// ID is the output identifier
	ID int

	// Name is the human-readable output name
	Name string

	// Enabled reports whether the output is currently enabled
	Enabled bool
}

// PlayState represents the player state reported by the server.
type PlayState int

const (
	// StateStop indicates playback is stopped
	StateStop PlayState = iota

	// StatePlay indicates playback is active
	StatePlay

	// StatePause indicates playback is paused
	StatePause
)

// String returns a human-readable representation of the play state.
func (s PlayState) String() string {
	switch s {
	case StateStop:
		return "stop"
	case StatePlay:
		return "play"
	case StatePause:
		return "pause"
	default:
		return "unknown"
	}
}

// ParsePlayState decodes the "state:" value of a status response.
// Unknown values map to StateStop.
func ParsePlayState(s string) PlayState {
	switch s {
	case "play":
		return StatePlay
	case "pause":
		return StatePause
	default:
		return StateStop
	}
}

// Status is a snapshot of the server's player state. Every field reflects a
// fresh round-trip; nothing here is cached authoritatively by the client.
type Status struct {
	// State is the playback state (play/pause/stop)
	State PlayState

	// Volume is the mixer volume 0-100 (-1 when no mixer is available)
	Volume int

	// Elapsed is the position within the current song
	Elapsed time.Duration

	// Duration is the length of the current song
	Duration time.Duration

	// Song is the queue position of the current song (-1 if none)
	Song int

	// SongID is the queue id of the current song (-1 if none)
	SongID int

	// PlaylistLength is the number of songs in the queue
	PlaylistLength int

	// PlaylistVersion is the queue version number, bumped on every change
	PlaylistVersion int

	// Random, Repeat, Single and Consume mirror the playback option flags
	Random  bool
	Repeat  bool
	Single  bool
	Consume bool
}

// MediaKind discriminates the Media sum type.
type MediaKind int

const (
	// MediaSong tags a Media holding a Song
	MediaSong MediaKind = iota

	// MediaAlbum tags a Media holding an Album
	MediaAlbum

	// MediaArtist tags a Media holding an Artist
	MediaArtist
)

// Media is a tagged union over the three database entity kinds. Dispatch
// sites switch on Kind exhaustively instead of type-asserting a shared
// interface.
type Media struct {
	Kind   MediaKind
	Song   Song
	Album  Album
	Artist Artist
}

// NewSongMedia wraps a Song as a Media value.
func NewSongMedia(s Song) Media {
	return Media{Kind: MediaSong, Song: s}
}

// NewAlbumMedia wraps an Album as a Media value.
func NewAlbumMedia(a Album) Media {
	return Media{Kind: MediaAlbum, Album: a}
}

// NewArtistMedia wraps an Artist as a Media value.
func NewArtistMedia(a Artist) Media {
	return Media{Kind: MediaArtist, Artist: a}
}

// Subsystem identifies a server subsystem reported by the idle command.
type Subsystem string

// The documented MPD subsystem set. Decoding is strict against this set; it
// deliberately covers every subsystem current servers report so the set stays
// effectively open across server versions.
const (
	SubsystemDatabase       Subsystem = "database"
	SubsystemUpdate         Subsystem = "update"
	SubsystemStoredPlaylist Subsystem = "stored_playlist"
	SubsystemPlaylist       Subsystem = "playlist"
	SubsystemPlayer         Subsystem = "player"
	SubsystemMixer          Subsystem = "mixer"
	SubsystemOutput         Subsystem = "output"
	SubsystemOptions        Subsystem = "options"
	SubsystemPartition      Subsystem = "partition"
	SubsystemSticker        Subsystem = "sticker"
	SubsystemSubscription   Subsystem = "subscription"
	SubsystemMessage        Subsystem = "message"
	SubsystemNeighbor       Subsystem = "neighbor"
	SubsystemMount          Subsystem = "mount"
)

var knownSubsystems = map[Subsystem]bool{
	SubsystemDatabase:       true,
	SubsystemUpdate:         true,
	SubsystemStoredPlaylist: true,
	SubsystemPlaylist:       true,
	SubsystemPlayer:         true,
	SubsystemMixer:          true,
	SubsystemOutput:         true,
	SubsystemOptions:        true,
	SubsystemPartition:      true,
	SubsystemSticker:        true,
	SubsystemSubscription:   true,
	SubsystemMessage:        true,
	SubsystemNeighbor:       true,
	SubsystemMount:          true,
}

// ParseSubsystem decodes a "changed:" value into a Subsystem.
// It returns false for tags outside the documented set.
func ParseSubsystem(s string) (Subsystem, bool) {
	sub := Subsystem(s)
	return sub, knownSubsystems[sub]
}
