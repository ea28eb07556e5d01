package domain

import "time"

// TimeRange identifies a statistics window.
type TimeRange string

// TimeRange constants for summary queries.
const (
	RangeDay     TimeRange = "day"
	RangeWeek    TimeRange = "week"
	RangeMonth   TimeRange = "month"
	RangeYear    TimeRange = "year"
	RangeAllTime TimeRange = "all"
)

// WeekStart fixes the start-of-week convention: weeks are Monday-aligned
// (ISO 8601), not a rolling seven days ending today.
const WeekStart = time.Monday

// AvailableRanges returns every supported range. Static, no I/O.
func AvailableRanges() []TimeRange {
	return []TimeRange{RangeDay, RangeWeek, RangeMonth, RangeYear, RangeAllTime}
}

// Valid returns true if the range is a recognized value.
func (r TimeRange) Valid() bool {
	switch r {
	case RangeDay, RangeWeek, RangeMonth, RangeYear, RangeAllTime:
		return true
	default:
		return false
	}
}

// Granularity is the native timeline bucket width for a range.
type Granularity string

// Granularity constants.
const (
	GranularityHour  Granularity = "hour"
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// Granularity returns the timeline granularity native to the range.
func (r TimeRange) Granularity() Granularity {
	switch r {
	case RangeDay:
		return GranularityHour
	case RangeWeek, RangeMonth:
		return GranularityDay
	case RangeYear:
		return GranularityMonth
	default:
		return GranularityYear
	}
}

// Bounds returns the half-open [start, end) interval for the range relative
// to now, in now's location. ALL_TIME starts at firstEvent (the earliest
// event instant); a zero firstEvent falls back to the start of today.
func (r TimeRange) Bounds(now time.Time, firstEvent time.Time) (start, end time.Time) {
	year, month, day := now.Date()
	loc := now.Location()
	today := time.Date(year, month, day, 0, 0, 0, 0, loc)

	switch r {
	case RangeDay:
		return today, today.AddDate(0, 0, 1)
	case RangeWeek:
		weekday := int(today.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday = 7
		}
		startOfWeek := today.AddDate(0, 0, -(weekday - int(WeekStart)))
		return startOfWeek, startOfWeek.AddDate(0, 0, 7)
	case RangeMonth:
		startOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, loc)
		return startOfMonth, startOfMonth.AddDate(0, 1, 0)
	case RangeYear:
		startOfYear := time.Date(year, 1, 1, 0, 0, 0, 0, loc)
		return startOfYear, startOfYear.AddDate(1, 0, 0)
	case RangeAllTime:
		if firstEvent.IsZero() {
			firstEvent = today
		}
		// End is exclusive; nudge past now so an event recorded at exactly
		// now is still included.
		return firstEvent.In(loc), now.Add(time.Millisecond)
	default:
		return today, today.AddDate(0, 0, 1)
	}
}

// Session is a maximal run of events whose inter-event gaps stay below the
// gap threshold: one continuous listening episode.
type Session struct {
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
	DurationMs int64     `json:"duration_ms"`
	EventCount int       `json:"event_count"`
}

// TimelineEntry is one bucket of the range timeline.
type TimelineEntry struct {
	Label      string `json:"label"`
	DurationMs int64  `json:"duration_ms"`
	PlayCount  int    `json:"play_count"`
}

// IntradayBucket is one fixed-width minute-of-day slot.
type IntradayBucket struct {
	StartMinute        int   `json:"start_minute"`
	EndMinuteExclusive int   `json:"end_minute_exclusive"`
	DurationMs         int64 `json:"duration_ms"`
	PlayCount          int   `json:"play_count"`
}

// DayBreakdown is the intraday distribution of a single calendar day.
type DayBreakdown struct {
	Date       time.Time        `json:"date"`
	Buckets    []IntradayBucket `json:"buckets"`
	DurationMs int64            `json:"duration_ms"`
}

// DayDistribution is the intraday listening heatmap: the flattened
// minute-of-day buckets accumulated across every day in range, plus a
// per-calendar-day breakdown for multi-day ranges.
type DayDistribution struct {
	BucketMinutes int              `json:"bucket_minutes"`
	Buckets       []IntradayBucket `json:"buckets"`
	PeakBucket    *IntradayBucket  `json:"peak_bucket,omitempty"`
	Days          []DayBreakdown   `json:"days,omitempty"`
}

// DimensionGroup is the aggregate for one key of a grouping dimension
// (genre, artist, album, or song).
type DimensionGroup struct {
	Key        string `json:"key"`
	DurationMs int64  `json:"duration_ms"`
	PlayCount  int    `json:"play_count"`
	// UniqueSubCount counts distinct sub-entities: artists within a genre,
	// songs within an artist or album. Zero for song groups.
	UniqueSubCount int `json:"unique_sub_count,omitempty"`
}

// PlaybackStatsSummary is the immutable result of one summary computation.
// Every field derives from the event snapshot; nothing is mutated after
// construction.
type PlaybackStatsSummary struct {
	Range   TimeRange `json:"range"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`

	TotalDurationMs int64 `json:"total_duration_ms"`
	TotalPlayCount  int   `json:"total_play_count"`

	TotalSessions            int     `json:"total_sessions"`
	AverageSessionDurationMs int64   `json:"average_session_duration_ms"`
	LongestSessionDurationMs int64   `json:"longest_session_duration_ms"`
	AverageSessionsPerDay    float64 `json:"average_sessions_per_day"`

	PeakDayLabel      string `json:"peak_day_label,omitempty"`
	PeakDayDurationMs int64  `json:"peak_day_duration_ms"`

	Timeline          []TimelineEntry `json:"timeline"`
	PeakTimelineEntry *TimelineEntry  `json:"peak_timeline_entry,omitempty"`

	DayDistribution DayDistribution `json:"day_listening_distribution"`

	TopGenres  []DimensionGroup `json:"top_genres"`
	TopArtists []DimensionGroup `json:"top_artists"`
	TopAlbums  []DimensionGroup `json:"top_albums"`
	TopSongs   []DimensionGroup `json:"top_songs"`
	// Songs is the full ranked song list, bounded by the configured cap.
	Songs []DimensionGroup `json:"songs"`

	SkippedEventCount int `json:"skipped_event_count"`
}
