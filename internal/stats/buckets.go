package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/playtally/playtally/internal/domain"
)

// DefaultBucketMinutes is the intraday heatmap bucket width: 30 minutes,
// 48 slots per day.
const DefaultBucketMinutes = 30

const minutesPerDay = 24 * 60

const dayKeyLayout = "2006-01-02"

// Boundary policy for both partitions: an event counts wholly in the bucket
// containing its start instant. Durations are never split across a bucket
// boundary even when the listened duration extends past it, which keeps the
// partition deterministic and loss-free: the bucket durations of a partition
// always sum to the event durations.

// BuildIntradayDistribution partitions events into fixed-width minute-of-day
// buckets, flattened across every day in range. When perDay is set (multi-day
// ranges) the same buckets are additionally retained per calendar day for a
// day-by-day view.
func BuildIntradayDistribution(events []*domain.PlaybackEvent, loc *time.Location, bucketMinutes int, perDay bool) domain.DayDistribution {
	if bucketMinutes <= 0 {
		bucketMinutes = DefaultBucketMinutes
	}
	bucketCount := minutesPerDay / bucketMinutes

	newBuckets := func() []domain.IntradayBucket {
		buckets := make([]domain.IntradayBucket, bucketCount)
		for i := range buckets {
			buckets[i].StartMinute = i * bucketMinutes
			buckets[i].EndMinuteExclusive = (i + 1) * bucketMinutes
		}
		return buckets
	}

	flat := newBuckets()
	byDay := make(map[string]*domain.DayBreakdown)

	for _, e := range events {
		local := e.StartedAt.In(loc)
		idx := (local.Hour()*60 + local.Minute()) / bucketMinutes
		if idx >= bucketCount {
			idx = bucketCount - 1
		}
		flat[idx].DurationMs += e.ListenedMs
		flat[idx].PlayCount++

		if !perDay {
			continue
		}
		key := local.Format(dayKeyLayout)
		day := byDay[key]
		if day == nil {
			day = &domain.DayBreakdown{
				Date: time.Date(local.Year(), local.Month(), local.Day(),
					0, 0, 0, 0, loc),
				Buckets: newBuckets(),
			}
			byDay[key] = day
		}
		day.Buckets[idx].DurationMs += e.ListenedMs
		day.Buckets[idx].PlayCount++
		day.DurationMs += e.ListenedMs
	}

	dist := domain.DayDistribution{
		BucketMinutes: bucketMinutes,
		Buckets:       flat,
		PeakBucket:    peakIntradayBucket(flat),
	}

	if perDay && len(byDay) > 0 {
		keys := make([]string, 0, len(byDay))
		for key := range byDay {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		dist.Days = make([]domain.DayBreakdown, 0, len(keys))
		for _, key := range keys {
			dist.Days = append(dist.Days, *byDay[key])
		}
	}

	return dist
}

// timelineSlot pairs a label with the instant its bucket begins.
type timelineSlot struct {
	label string
	start time.Time
}

// buildTimelineSlots enumerates the calendar-correct slots covering the
// interval at the range's native granularity. Labels use Go's English
// calendar constants, independent of any locale.
func buildTimelineSlots(rng domain.TimeRange, iv Interval, loc *time.Location) []timelineSlot {
	var slots []timelineSlot
	cursor := iv.Start.In(loc)
	for cursor.Before(iv.End) {
		var label string
		var next time.Time
		switch rng.Granularity() {
		case domain.GranularityHour:
			label = fmt.Sprintf("%02d:00–%02d:00", cursor.Hour(), (cursor.Hour()+1)%24)
			next = time.Date(cursor.Year(), cursor.Month(), cursor.Day(),
				cursor.Hour()+1, 0, 0, 0, loc)
		case domain.GranularityDay:
			if rng == domain.RangeWeek {
				label = cursor.Weekday().String()[:3]
			} else {
				label = cursor.Format("Jan 2")
			}
			next = cursor.AddDate(0, 0, 1)
		case domain.GranularityMonth:
			label = cursor.Format("Jan")
			next = cursor.AddDate(0, 1, 0)
		default:
			label = cursor.Format("2006")
			next = time.Date(cursor.Year()+1, 1, 1, 0, 0, 0, 0, loc)
		}
		slots = append(slots, timelineSlot{label: label, start: cursor})
		cursor = next
	}
	return slots
}

// BuildTimeline partitions events into the range's native timeline buckets.
// The slots are exhaustive over the interval and stay zero-valued when
// silent, so an empty range still yields the full zeroed timeline.
func BuildTimeline(events []*domain.PlaybackEvent, rng domain.TimeRange, iv Interval, loc *time.Location) []domain.TimelineEntry {
	slots := buildTimelineSlots(rng, iv, loc)
	entries := make([]domain.TimelineEntry, len(slots))
	for i, slot := range slots {
		entries[i].Label = slot.label
	}

	for _, e := range events {
		idx := slotIndex(slots, e.StartedAt)
		if idx < 0 {
			continue
		}
		entries[idx].DurationMs += e.ListenedMs
		entries[idx].PlayCount++
	}
	return entries
}

// slotIndex finds the slot containing t: the last slot whose start is not
// after t. Returns -1 for instants before the first slot.
func slotIndex(slots []timelineSlot, t time.Time) int {
	i := sort.Search(len(slots), func(i int) bool {
		return slots[i].start.After(t)
	})
	return i - 1
}
