// Package stats implements the playback statistics aggregation engine: a
// pure, side-effect-free pipeline that turns an ordered snapshot of playback
// events into a PlaybackStatsSummary for a resolved time range. Nothing in
// this package performs I/O or holds state between calls, so independent
// computations may run fully in parallel.
package stats

import (
	"time"

	"github.com/playtally/playtally/internal/domain"
	apperrors "github.com/playtally/playtally/internal/errors"
)

// Interval is a resolved half-open [Start, End) instant interval.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within the interval.
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// ResolveRange maps a range identifier plus "now" into an absolute interval.
// firstEvent anchors ALL_TIME; pass the zero time when the log is empty.
// A "now" preceding the computed start (clock skew) is fatal and surfaced,
// never silently clamped.
func ResolveRange(rng domain.TimeRange, now, firstEvent time.Time) (Interval, error) {
	if !rng.Valid() {
		return Interval{}, apperrors.InvalidRangef("unknown range %q", rng)
	}
	start, end := rng.Bounds(now, firstEvent)
	if end.Before(start) {
		return Interval{}, apperrors.InvalidRangef(
			"range %s resolved to end %s before start %s", rng,
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	if now.Before(start) {
		return Interval{}, apperrors.InvalidRangef(
			"now %s precedes range start %s", now.Format(time.RFC3339),
			start.Format(time.RFC3339))
	}
	return Interval{Start: start, End: end}, nil
}
