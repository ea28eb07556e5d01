package domain

import (
	"strings"
	"time"
)

// UnknownGenre is the reserved grouping key for events without a genre tag.
const UnknownGenre = "Unknown"

// PlaybackEvent is the atomic, immutable record of one listen.
// Events are append-only - every statistic derives from them.
type PlaybackEvent struct {
	ID          string `json:"id"`
	SongID      string `json:"song_id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Album       string `json:"album"`
	Genre       string `json:"genre,omitempty"`
	AlbumArtRef string `json:"album_art_ref,omitempty"`

	StartedAt  time.Time `json:"started_at"`
	ListenedMs int64     `json:"listened_ms"` // may be less than the track length

	CreatedAt time.Time `json:"created_at"`
}

// NewPlaybackEvent creates a new event with computed fields.
func NewPlaybackEvent(
	id, songID, title, artist, album, genre, albumArtRef string,
	startedAt time.Time,
	listenedMs int64,
) *PlaybackEvent {
	return &PlaybackEvent{
		ID:          id,
		SongID:      songID,
		Title:       title,
		Artist:      artist,
		Album:       album,
		Genre:       genre,
		AlbumArtRef: albumArtRef,
		StartedAt:   startedAt,
		ListenedMs:  listenedMs,
		CreatedAt:   time.Now(),
	}
}

// EndedAt returns the instant the listen stopped.
func (e *PlaybackEvent) EndedAt() time.Time {
	return e.StartedAt.Add(time.Duration(e.ListenedMs) * time.Millisecond)
}

// Malformed reports whether the event must be excluded from every aggregation.
// Malformed events are counted, never fatal: one corrupt record must not blank
// the whole history.
func (e *PlaybackEvent) Malformed() bool {
	return strings.TrimSpace(e.SongID) == "" || e.ListenedMs < 0
}

// GenreKey returns the grouping key for the genre dimension.
// Blank genres group under UnknownGenre rather than being discarded.
func (e *PlaybackEvent) GenreKey() string {
	g := strings.TrimSpace(e.Genre)
	if g == "" {
		return UnknownGenre
	}
	return g
}
