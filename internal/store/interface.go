// Package store defines the event store boundary consumed by the engine.
// The log is append-only and externally owned: the engine requests reads
// and never mutates it.
package store

import (
	"context"
	"time"

	"github.com/playtally/playtally/internal/domain"
	apperrors "github.com/playtally/playtally/internal/errors"
)

// Sentinel errors shared by store implementations.
var (
	// ErrNotFound indicates the requested event does not exist.
	ErrNotFound = apperrors.NotFound("event not found")
	// ErrAlreadyExists indicates an append collided with an existing event ID.
	ErrAlreadyExists = apperrors.AlreadyExists("event already exists")
)

// EventStore is the durable playback-event log.
type EventStore interface {
	// AppendEvent appends one event. Returns ErrAlreadyExists on a
	// duplicate ID.
	AppendEvent(ctx context.Context, event *domain.PlaybackEvent) error

	// ListEvents returns events with start instant in
	// [startInclusive, endExclusive), ordered ascending by start instant
	// with log arrival order breaking ties. Events are never skipped,
	// duplicated, or reordered within the bound.
	ListEvents(ctx context.Context, startInclusive, endExclusive time.Time) ([]*domain.PlaybackEvent, error)

	// FirstEventTime returns the earliest event start instant, or the zero
	// time when the log is empty.
	FirstEventTime(ctx context.Context) (time.Time, error)

	// LatestEventTime returns the highest-seen event start instant, or the
	// zero time when the log is empty. Serves as the log version for
	// memoization.
	LatestEventTime(ctx context.Context) (time.Time, error)

	// CountEvents returns the total number of events in the log.
	CountEvents(ctx context.Context) (int64, error)
}
