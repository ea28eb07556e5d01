package stats

import (
	"sort"
	"time"

	"github.com/playtally/playtally/internal/domain"
)

// PeakDay returns the calendar day with the maximum summed duration and its
// total, with ties broken by the earliest date. The label uses the
// 2006-01-02 layout. Empty input yields an empty label and 0.
func PeakDay(events []*domain.PlaybackEvent, loc *time.Location) (label string, durationMs int64) {
	if len(events) == 0 {
		return "", 0
	}

	totals := make(map[string]int64)
	for _, e := range events {
		totals[e.StartedAt.In(loc).Format(dayKeyLayout)] += e.ListenedMs
	}

	days := make([]string, 0, len(totals))
	for day := range totals {
		days = append(days, day)
	}
	sort.Strings(days)

	for _, day := range days {
		// Strictly greater keeps the earliest day on ties.
		if label == "" || totals[day] > durationMs {
			label = day
			durationMs = totals[day]
		}
	}
	return label, durationMs
}

// PeakTimelineEntry returns a copy of the timeline entry with the maximum
// duration, the earliest on ties, or nil when every entry is silent. Peaks
// by play count or average are the caller's to derive from the timeline.
func PeakTimelineEntry(timeline []domain.TimelineEntry) *domain.TimelineEntry {
	best := -1
	for i, e := range timeline {
		if e.DurationMs > 0 && (best < 0 || e.DurationMs > timeline[best].DurationMs) {
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	entry := timeline[best]
	return &entry
}

// peakIntradayBucket returns a copy of the busiest minute-of-day bucket,
// the earliest start minute on ties, or nil when the day is silent.
func peakIntradayBucket(buckets []domain.IntradayBucket) *domain.IntradayBucket {
	best := -1
	for i, b := range buckets {
		if b.DurationMs > 0 && (best < 0 || b.DurationMs > buckets[best].DurationMs) {
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	bucket := buckets[best]
	return &bucket
}
