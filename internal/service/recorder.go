package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/playtally/playtally/internal/domain"
	"github.com/playtally/playtally/internal/id"
	"github.com/playtally/playtally/internal/store"
)

// RecorderService appends playback events to the log.
type RecorderService struct {
	store  store.EventStore
	logger *slog.Logger
}

// NewRecorderService creates a new recorder service.
func NewRecorderService(store store.EventStore, logger *slog.Logger) *RecorderService {
	return &RecorderService{
		store:  store,
		logger: logger,
	}
}

// RecordEventRequest contains the data for one finished listen.
type RecordEventRequest struct {
	SongID      string    `json:"song_id" validate:"required"`
	Title       string    `json:"title"`
	Artist      string    `json:"artist"`
	Album       string    `json:"album"`
	Genre       string    `json:"genre"`
	AlbumArtRef string    `json:"album_art_ref"`
	StartedAt   time.Time `json:"started_at" validate:"required"`
	ListenedMs  int64     `json:"listened_ms" validate:"gte=0"`
}

// RecordEvent validates the request and appends it to the event log.
// Events are immutable once written.
func (s *RecorderService) RecordEvent(ctx context.Context, req RecordEventRequest) (*domain.PlaybackEvent, error) {
	// Validate request
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	eventID, err := id.Generate("evt")
	if err != nil {
		return nil, fmt.Errorf("generate event ID: %w", err)
	}

	event := domain.NewPlaybackEvent(
		eventID,
		req.SongID,
		req.Title,
		req.Artist,
		req.Album,
		req.Genre,
		req.AlbumArtRef,
		req.StartedAt,
		req.ListenedMs,
	)

	if err := s.store.AppendEvent(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Debug("recorded playback event",
		"event_id", event.ID,
		"song_id", event.SongID,
		"started_at", event.StartedAt.Format(time.RFC3339),
		"listened_ms", event.ListenedMs,
	)

	return event, nil
}
