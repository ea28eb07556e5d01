package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/playtally/playtally/internal/domain"
	"github.com/playtally/playtally/internal/store"
)

// playbackEventColumns is the ordered list of columns selected in playback
// event queries. Must match the scan order in scanPlaybackEvent.
const playbackEventColumns = `id, song_id, title, artist, album,
	genre, album_art_ref, started_at, listened_ms, created_at`

// scanPlaybackEvent scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.PlaybackEvent.
func scanPlaybackEvent(scanner interface{ Scan(dest ...any) error }) (*domain.PlaybackEvent, error) {
	var e domain.PlaybackEvent

	var (
		genre       sql.NullString
		albumArtRef sql.NullString
		startedAt   string
		createdAt   string
	)

	err := scanner.Scan(
		&e.ID,
		&e.SongID,
		&e.Title,
		&e.Artist,
		&e.Album,
		&genre,
		&albumArtRef,
		&startedAt,
		&e.ListenedMs,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	// Parse timestamps.
	e.StartedAt, err = parseTime(startedAt)
	if err != nil {
		return nil, err
	}
	e.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	// Optional string fields.
	if genre.Valid {
		e.Genre = genre.String
	}
	if albumArtRef.Valid {
		e.AlbumArtRef = albumArtRef.String
	}

	return &e, nil
}

// AppendEvent inserts a new playback event into the log.
// Returns store.ErrAlreadyExists if the event ID already exists.
func (s *Store) AppendEvent(ctx context.Context, event *domain.PlaybackEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO playback_events (
			id, song_id, title, artist, album,
			genre, album_art_ref, started_at, listened_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID,
		event.SongID,
		event.Title,
		event.Artist,
		event.Album,
		nullString(event.Genre),
		nullString(event.AlbumArtRef),
		formatTime(event.StartedAt),
		event.ListenedMs,
		formatTime(event.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetEvent retrieves a playback event by ID.
// Returns store.ErrNotFound if the event does not exist.
func (s *Store) GetEvent(ctx context.Context, id string) (*domain.PlaybackEvent, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+playbackEventColumns+` FROM playback_events WHERE id = ?`, id)

	event, err := scanPlaybackEvent(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return event, nil
}

// ListEvents retrieves events with start instant in
// [startInclusive, endExclusive), ordered ascending by start instant with
// insertion order breaking ties.
func (s *Store) ListEvents(ctx context.Context, startInclusive, endExclusive time.Time) ([]*domain.PlaybackEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+playbackEventColumns+` FROM playback_events
		WHERE started_at >= ? AND started_at < ?
		ORDER BY started_at ASC, rowid ASC`,
		formatTime(startInclusive), formatTime(endExclusive))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.PlaybackEvent
	for rows.Next() {
		event, err := scanPlaybackEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// FirstEventTime returns the earliest event start instant, or the zero time
// when the log is empty.
func (s *Store) FirstEventTime(ctx context.Context) (time.Time, error) {
	return s.boundaryEventTime(ctx, "MIN")
}

// LatestEventTime returns the highest-seen event start instant, or the zero
// time when the log is empty.
func (s *Store) LatestEventTime(ctx context.Context) (time.Time, error) {
	return s.boundaryEventTime(ctx, "MAX")
}

func (s *Store) boundaryEventTime(ctx context.Context, fn string) (time.Time, error) {
	var value sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT `+fn+`(started_at) FROM playback_events`).Scan(&value)
	if err != nil {
		return time.Time{}, err
	}
	if !value.Valid {
		return time.Time{}, nil
	}
	return parseTime(value.String)
}

// CountEvents returns the total number of events in the log.
func (s *Store) CountEvents(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM playback_events`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
