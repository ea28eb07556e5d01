package stats

import (
	"time"

	"github.com/playtally/playtally/internal/domain"
)

// DefaultSessionGap is the largest silence between the end of one event and
// the start of the next that still belongs to the same listening session.
const DefaultSessionGap = 3 * time.Minute

// ReconstructSessions groups chronologically ordered events into maximal
// listening sessions in a single forward pass. An event whose gap from the
// previous event's end is at most gap extends the current session; a larger
// gap closes it and opens a new one. Events with identical start instants
// keep their log arrival order, so the result is stable.
func ReconstructSessions(events []*domain.PlaybackEvent, gap time.Duration) []domain.Session {
	if len(events) == 0 {
		return nil
	}

	var sessions []domain.Session
	first := events[0]
	current := domain.Session{
		StartedAt:  first.StartedAt,
		EndedAt:    first.EndedAt(),
		DurationMs: first.ListenedMs,
		EventCount: 1,
	}
	prevEnd := first.EndedAt()

	for _, e := range events[1:] {
		if e.StartedAt.Sub(prevEnd) <= gap {
			current.EndedAt = e.EndedAt()
			current.DurationMs += e.ListenedMs
			current.EventCount++
		} else {
			sessions = append(sessions, current)
			current = domain.Session{
				StartedAt:  e.StartedAt,
				EndedAt:    e.EndedAt(),
				DurationMs: e.ListenedMs,
				EventCount: 1,
			}
		}
		prevEnd = e.EndedAt()
	}

	return append(sessions, current)
}

// SessionStats are the session-derived headline numbers of a summary.
type SessionStats struct {
	TotalSessions            int
	AverageSessionDurationMs int64
	LongestSessionDurationMs int64
	AverageSessionsPerDay    float64
}

// SummarizeSessions derives the headline numbers from reconstructed
// sessions. activeDays is the count of distinct calendar days with at least
// one event; dividing by it rather than the full calendar span keeps short
// or sparse ranges from deflating the per-day average. Every average is 0
// when its denominator is 0.
func SummarizeSessions(sessions []domain.Session, activeDays int) SessionStats {
	s := SessionStats{TotalSessions: len(sessions)}
	if len(sessions) == 0 {
		return s
	}

	var total int64
	for _, sess := range sessions {
		total += sess.DurationMs
		if sess.DurationMs > s.LongestSessionDurationMs {
			s.LongestSessionDurationMs = sess.DurationMs
		}
	}
	s.AverageSessionDurationMs = total / int64(len(sessions))
	if activeDays > 0 {
		s.AverageSessionsPerDay = float64(len(sessions)) / float64(activeDays)
	}
	return s
}

// countActiveDays counts distinct calendar days (in loc) holding at least
// one event.
func countActiveDays(events []*domain.PlaybackEvent, loc *time.Location) int {
	days := make(map[string]struct{})
	for _, e := range events {
		days[e.StartedAt.In(loc).Format(dayKeyLayout)] = struct{}{}
	}
	return len(days)
}
