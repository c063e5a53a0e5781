package mpd

import (
	"strconv"
	"strings"
	"time"

	"github.com/CamilleScholtz/swmpc-sub002/internal/domain"
)

// parsePair splits a response line on the first ':' and trims whitespace on
// both sides. The key is lowercased so records can be built with
// case-insensitive key matching.
func parsePair(op, line string) (key, value string, err error) {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return "", "", domain.NewMalformedResponseError(op, "missing ':' separator in line "+strconv.Quote(line))
	}
	key = strings.ToLower(strings.TrimSpace(line[:i]))
	value = strings.TrimSpace(line[i+1:])
	return key, value, nil
}

// isTerminal reports whether a line terminates a response.
func isTerminal(line string) bool {
	return strings.HasPrefix(line, "OK") || strings.HasPrefix(line, "ACK")
}

// fields accumulates the key/value lines of one record. Keys are lowercased;
// duplicate keys keep the last written value. Structurally malformed lines
// fail; unknown keys are kept and simply never read.
type fields map[string]string

// collectFields decodes consecutive key/value lines into a field record,
// stopping at (and excluding) a terminal line.
func collectFields(op string, lines []string) (fields, error) {
	f := make(fields, len(lines))
	for _, line := range lines {
		if isTerminal(line) {
			break
		}
		key, value, err := parsePair(op, line)
		if err != nil {
			return nil, err
		}
		f[key] = value
	}
	return f, nil
}

// str returns the value for key, or fallback when the tag is absent or empty.
func (f fields) str(key, fallback string) string {
	if v, ok := f[key]; ok && v != "" {
		return v
	}
	return fallback
}

// num returns the base-10 integer value for key, or fallback when the tag is
// absent or unparsable. Values of the "3/12" form common for Track and Disc
// tags yield the leading number.
func (f fields) num(key string, fallback int) int {
	v, ok := f[key]
	if !ok {
		return fallback
	}
	if slash := strings.IndexByte(v, '/'); slash > 0 {
		v = v[:slash]
	}
	if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
		return n
	}
	return fallback
}

// seconds returns the duration value (fractional seconds) for key, or
// fallback when absent or unparsable.
func (f fields) seconds(key string, fallback time.Duration) time.Duration {
	v, ok := f[key]
	if !ok {
		return fallback
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(secs * float64(time.Second))
	}
	return fallback
}

// boolean returns true when the tag holds "1".
func (f fields) boolean(key string) bool {
	return f[key] == "1"
}

// songFromFields builds a Song applying the documented fallback defaults:
// missing artist/title/album get "Unknown ..." placeholders, track and disc
// default to 1, duration to 0. The parser never fails merely because an
// optional tag is absent.
func songFromFields(f fields) domain.Song {
	duration := f.seconds("duration", 0)
	if duration == 0 {
		// Older servers report whole seconds under "time".
		duration = f.seconds("time", 0)
	}
	return domain.Song{
		URI:      f.str("file", ""),
		Title:    f.str("title", domain.UnknownTitle),
		Artist:   f.str("artist", domain.UnknownArtist),
		Album:    f.str("album", domain.UnknownAlbum),
		Track:    f.num("track", 1),
		Disc:     f.num("disc", 1),
		Date:     f.str("date", ""),
		Duration: duration,
		Position: f.num("pos", -1),
		ID:       f.num("id", -1),
	}
}

// ParseSong decodes a single-song response (e.g. currentsong).
func ParseSong(lines []string) (domain.Song, error) {
	f, err := collectFields("parseSong", lines)
	if err != nil {
		return domain.Song{}, err
	}
	return songFromFields(f), nil
}

// chunkLines splits a flat multi-record response into per-record groups. A
// new group starts whenever a line carrying one of the marker keys recurs.
// Lines preceding the first marker are discarded; the terminal line ends the
// scan.
func chunkLines(lines []string, markers ...string) [][]string {
	var groups [][]string
	var current []string
	for _, line := range lines {
		if isTerminal(line) {
			break
		}
		i := strings.IndexByte(line, ':')
		if i > 0 {
			key := strings.ToLower(strings.TrimSpace(line[:i]))
			for _, m := range markers {
				if key == m {
					if current != nil {
						groups = append(groups, current)
					}
					current = []string{}
					break
				}
			}
		}
		if current != nil {
			current = append(current, line)
		}
	}
	if current != nil {
		groups = append(groups, current)
	}
	return groups
}

// ParseSongs decodes a bulk song listing (playlistinfo, find, search).
// Queue listings do not always carry an explicit Pos field, so the 0-based
// emission index is injected when the tag is absent.
func ParseSongs(lines []string) ([]domain.Song, error) {
	groups := chunkLines(lines, "file")
	songs := make([]domain.Song, 0, len(groups))
	for i, group := range groups {
		f, err := collectFields("parseSongs", group)
		if err != nil {
			return nil, err
		}
		song := songFromFields(f)
		if song.Position < 0 {
			song.Position = i
		}
		songs = append(songs, song)
	}
	return songs, nil
}

// ParseAlbums derives albums from a grouped song listing: each distinct
// album/artist pair contributes one Album, taken from the first song seen.
func ParseAlbums(lines []string) ([]domain.Album, error) {
	songs, err := ParseSongs(lines)
	if err != nil {
		return nil, err
	}
	var albums []domain.Album
	seen := make(map[string]bool)
	for _, song := range songs {
		key := song.Artist + "\x00" + song.Album
		if seen[key] {
			continue
		}
		seen[key] = true
		albums = append(albums, domain.Album{
			Title:  song.Album,
			Artist: song.Artist,
			Date:   song.Date,
		})
	}
	return albums, nil
}

// ParseArtists decodes a "list artist" response.
func ParseArtists(lines []string) ([]domain.Artist, error) {
	var artists []domain.Artist
	for _, line := range lines {
		if isTerminal(line) {
			break
		}
		key, value, err := parsePair("parseArtists", line)
		if err != nil {
			return nil, err
		}
		if key != "artist" || value == "" {
			continue
		}
		artists = append(artists, domain.Artist{Name: value})
	}
	return artists, nil
}

// ParsePlaylists decodes a listplaylists response.
func ParsePlaylists(lines []string) ([]domain.Playlist, error) {
	var playlists []domain.Playlist
	for _, line := range lines {
		if isTerminal(line) {
			break
		}
		key, value, err := parsePair("parsePlaylists", line)
		if err != nil {
			return nil, err
		}
		if key != "playlist" {
			continue
		}
		playlists = append(playlists, domain.Playlist{Name: value})
	}
	return playlists, nil
}

// ParseOutputs decodes an outputs response, one record per outputid line.
func ParseOutputs(lines []string) ([]domain.Output, error) {
	groups := chunkLines(lines, "outputid")
	outputs := make([]domain.Output, 0, len(groups))
	for _, group := range groups {
		f, err := collectFields("parseOutputs", group)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, domain.Output{
			ID:      f.num("outputid", -1),
			Name:    f.str("outputname", ""),
			Enabled: f.boolean("outputenabled"),
		})
	}
	return outputs, nil
}

// ParseID extracts the queue id of an addid response.
func ParseID(lines []string) (int, error) {
	f, err := collectFields("parseID", lines)
	if err != nil {
		return 0, err
	}
	id := f.num("id", -1)
	if id < 0 {
		return 0, domain.NewMalformedResponseError("parseID", "response carried no id")
	}
	return id, nil
}

// ParseStatus decodes a status response.
func ParseStatus(lines []string) (domain.Status, error) {
	f, err := collectFields("parseStatus", lines)
	if err != nil {
		return domain.Status{}, err
	}
	status := domain.Status{
		State:           domain.ParsePlayState(f.str("state", "stop")),
		Volume:          f.num("volume", -1),
		Elapsed:         f.seconds("elapsed", 0),
		Duration:        f.seconds("duration", 0),
		Song:            f.num("song", -1),
		SongID:          f.num("songid", -1),
		PlaylistLength:  f.num("playlistlength", 0),
		PlaylistVersion: f.num("playlist", 0),
		Random:          f.boolean("random"),
		Repeat:          f.boolean("repeat"),
		Single:          f.boolean("single"),
		Consume:         f.boolean("consume"),
	}
	return status, nil
}

// Quote wraps a command argument in double quotes, backslash-escaping
// backslashes, single quotes and double quotes in that priority order.
func Quote(arg string) string {
	var b strings.Builder
	b.Grow(len(arg) + 2)
	b.WriteByte('"')
	for i := 0; i < len(arg); i++ {
		switch c := arg[i]; c {
		case '\\', '\'', '"':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// FilterExpr builds one parenthesized comparator of MPD's filter syntax,
// e.g. (album == 'value'). Backslashes and single quotes inside the value are
// escaped.
func FilterExpr(key, value string) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(key)
	b.WriteString(" == '")
	for i := 0; i < len(value); i++ {
		switch c := value[i]; c {
		case '\\', '\'':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteString("')")
	return b.String()
}

// AndFilters combines filter expressions with AND.
func AndFilters(exprs ...string) string {
	if len(exprs) == 1 {
		return exprs[0]
	}
	return "(" + strings.Join(exprs, " AND ") + ")"
}
