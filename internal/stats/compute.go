package stats

import (
	"context"
	"time"

	"github.com/playtally/playtally/internal/domain"
)

// Params tunes one summary computation. Zero values select the defaults.
type Params struct {
	Range domain.TimeRange
	// Now anchors the range resolution; its location is the time zone every
	// calendar computation uses. Caller-supplied for determinism.
	Now           time.Time
	TopN          int
	SessionGap    time.Duration
	BucketMinutes int
	SongListCap   int
}

// Compute builds a PlaybackStatsSummary from an immutable snapshot of
// events, ordered ascending by start instant as the event store returns
// them. The computation is pure: it performs no I/O, owns no state, and
// mutates nothing it is given, so independent calls may run fully in
// parallel. Cancellation is checked cooperatively between phases. An empty
// snapshot yields a zero-valued summary, never an error; malformed events
// are dropped from every aggregation and counted in SkippedEventCount.
func Compute(ctx context.Context, events []*domain.PlaybackEvent, p Params) (*domain.PlaybackStatsSummary, error) {
	if p.Now.IsZero() {
		p.Now = time.Now()
	}
	if p.TopN <= 0 {
		p.TopN = DefaultTopN
	}
	if p.SessionGap <= 0 {
		p.SessionGap = DefaultSessionGap
	}
	if p.BucketMinutes <= 0 {
		p.BucketMinutes = DefaultBucketMinutes
	}
	if p.SongListCap <= 0 {
		p.SongListCap = DefaultSongListCap
	}
	loc := p.Now.Location()

	var firstEvent time.Time
	if len(events) > 0 {
		firstEvent = events[0].StartedAt
	}
	iv, err := ResolveRange(p.Range, p.Now, firstEvent)
	if err != nil {
		return nil, err
	}

	valid, skipped := filterEvents(events, iv)

	summary := &domain.PlaybackStatsSummary{
		Range:             p.Range,
		StartAt:           iv.Start,
		EndAt:             iv.End,
		SkippedEventCount: skipped,
	}
	for _, e := range valid {
		summary.TotalDurationMs += e.ListenedMs
		summary.TotalPlayCount++
	}

	if err := phaseDone(ctx); err != nil {
		return nil, err
	}

	sessions := ReconstructSessions(valid, p.SessionGap)
	sessionStats := SummarizeSessions(sessions, countActiveDays(valid, loc))
	summary.TotalSessions = sessionStats.TotalSessions
	summary.AverageSessionDurationMs = sessionStats.AverageSessionDurationMs
	summary.LongestSessionDurationMs = sessionStats.LongestSessionDurationMs
	summary.AverageSessionsPerDay = sessionStats.AverageSessionsPerDay

	if err := phaseDone(ctx); err != nil {
		return nil, err
	}

	summary.Timeline = BuildTimeline(valid, p.Range, iv, loc)
	summary.DayDistribution = BuildIntradayDistribution(
		valid, loc, p.BucketMinutes, p.Range != domain.RangeDay)

	if err := phaseDone(ctx); err != nil {
		return nil, err
	}

	rankings := AggregateDimensions(valid)
	summary.TopGenres = truncateGroups(rankings.Genres, p.TopN)
	summary.TopArtists = truncateGroups(rankings.Artists, p.TopN)
	summary.TopAlbums = truncateGroups(rankings.Albums, p.TopN)
	summary.TopSongs = truncateGroups(rankings.Songs, p.TopN)
	summary.Songs = truncateGroups(rankings.Songs, p.SongListCap)

	summary.PeakDayLabel, summary.PeakDayDurationMs = PeakDay(valid, loc)
	summary.PeakTimelineEntry = PeakTimelineEntry(summary.Timeline)

	return summary, nil
}

// filterEvents keeps events whose start lies in the interval, dropping
// malformed ones and counting them. Events outside the interval are simply
// out of scope, not counted as skipped.
func filterEvents(events []*domain.PlaybackEvent, iv Interval) (valid []*domain.PlaybackEvent, skipped int) {
	valid = make([]*domain.PlaybackEvent, 0, len(events))
	for _, e := range events {
		if e.Malformed() {
			skipped++
			continue
		}
		if !iv.Contains(e.StartedAt) {
			continue
		}
		valid = append(valid, e)
	}
	return valid, skipped
}

// phaseDone reports the context error, if any, between pipeline phases.
func phaseDone(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
