package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playtally/playtally/internal/domain"
)

// evt builds a minimal valid event starting at base+offset.
func evt(base time.Time, offset time.Duration, listenedMs int64) *domain.PlaybackEvent {
	return &domain.PlaybackEvent{
		ID:         "evt",
		SongID:     "song-1",
		Artist:     "Artist",
		Album:      "Album",
		StartedAt:  base.Add(offset),
		ListenedMs: listenedMs,
	}
}

func TestReconstructSessions_Empty(t *testing.T) {
	assert.Nil(t, ReconstructSessions(nil, DefaultSessionGap))
}

func TestReconstructSessions_SingleEvent(t *testing.T) {
	base := time.Date(2024, 1, 10, 20, 0, 0, 0, time.UTC)
	sessions := ReconstructSessions([]*domain.PlaybackEvent{
		evt(base, 0, 60_000),
	}, DefaultSessionGap)

	require.Len(t, sessions, 1)
	assert.Equal(t, base, sessions[0].StartedAt)
	assert.Equal(t, base.Add(time.Minute), sessions[0].EndedAt)
	assert.Equal(t, int64(60_000), sessions[0].DurationMs)
	assert.Equal(t, 1, sessions[0].EventCount)
}

func TestReconstructSessions_MergeAndSplit(t *testing.T) {
	base := time.Date(2024, 1, 10, 20, 0, 0, 0, time.UTC)

	// Event 1: 0s for 60s, ends at 60s.
	// Event 2: 61s for 30s, gap 1s, merges; ends at 91s.
	// Event 3: 500s for 10s, gap 409s > 180s, new session.
	events := []*domain.PlaybackEvent{
		evt(base, 0, 60_000),
		evt(base, 61*time.Second, 30_000),
		evt(base, 500*time.Second, 10_000),
	}

	sessions := ReconstructSessions(events, DefaultSessionGap)
	require.Len(t, sessions, 2)

	assert.Equal(t, base, sessions[0].StartedAt)
	assert.Equal(t, base.Add(91*time.Second), sessions[0].EndedAt)
	assert.Equal(t, int64(90_000), sessions[0].DurationMs)
	assert.Equal(t, 2, sessions[0].EventCount)

	assert.Equal(t, base.Add(500*time.Second), sessions[1].StartedAt)
	assert.Equal(t, int64(10_000), sessions[1].DurationMs)
	assert.Equal(t, 1, sessions[1].EventCount)
}

func TestReconstructSessions_GapExactlyAtThreshold(t *testing.T) {
	base := time.Date(2024, 1, 10, 20, 0, 0, 0, time.UTC)

	// Second event starts exactly gap after the first ends: still merged.
	events := []*domain.PlaybackEvent{
		evt(base, 0, 60_000),
		evt(base, time.Minute+DefaultSessionGap, 30_000),
	}

	sessions := ReconstructSessions(events, DefaultSessionGap)
	assert.Len(t, sessions, 1)
}

func TestReconstructSessions_GapMeasuredFromPreviousEvent(t *testing.T) {
	base := time.Date(2024, 1, 10, 20, 0, 0, 0, time.UTC)

	// The chain gap is measured against the previous event's end, not the
	// session's furthest end. The first event keeps playing until 10m, but
	// the second ends at 1m30s, so a third event 190s later starts a new
	// session even though the first event still overlaps it.
	events := []*domain.PlaybackEvent{
		evt(base, 0, 600_000),            // ends at 10m
		evt(base, 1*time.Minute, 30_000), // ends at 1m30s
		evt(base, 1*time.Minute+30*time.Second+DefaultSessionGap+10*time.Second, 30_000),
	}

	sessions := ReconstructSessions(events, DefaultSessionGap)
	assert.Len(t, sessions, 2)
}

func TestSummarizeSessions_Empty(t *testing.T) {
	s := SummarizeSessions(nil, 0)
	assert.Equal(t, 0, s.TotalSessions)
	assert.Equal(t, int64(0), s.AverageSessionDurationMs)
	assert.Equal(t, int64(0), s.LongestSessionDurationMs)
	assert.Equal(t, 0.0, s.AverageSessionsPerDay)
}

func TestSummarizeSessions(t *testing.T) {
	sessions := []domain.Session{
		{DurationMs: 60_000},
		{DurationMs: 120_000},
		{DurationMs: 30_000},
	}

	s := SummarizeSessions(sessions, 2)
	assert.Equal(t, 3, s.TotalSessions)
	assert.Equal(t, int64(70_000), s.AverageSessionDurationMs)
	assert.Equal(t, int64(120_000), s.LongestSessionDurationMs)
	assert.Equal(t, 1.5, s.AverageSessionsPerDay)
}

func TestCountActiveDays(t *testing.T) {
	base := time.Date(2024, 1, 10, 20, 0, 0, 0, time.UTC)

	events := []*domain.PlaybackEvent{
		evt(base, 0, 60_000),
		evt(base, time.Hour, 60_000),             // same day
		evt(base, 26*time.Hour, 60_000),          // next day
		evt(base, 5*24*time.Hour, 60_000),        // five days on
	}

	assert.Equal(t, 3, countActiveDays(events, time.UTC))
	assert.Equal(t, 0, countActiveDays(nil, time.UTC))
}
