package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playtally/playtally/internal/domain"
)

func TestBuildIntradayDistribution_Empty(t *testing.T) {
	dist := BuildIntradayDistribution(nil, time.UTC, DefaultBucketMinutes, false)

	assert.Equal(t, DefaultBucketMinutes, dist.BucketMinutes)
	require.Len(t, dist.Buckets, 48)
	assert.Nil(t, dist.PeakBucket)
	assert.Empty(t, dist.Days)

	// Slots are exhaustive and contiguous.
	assert.Equal(t, 0, dist.Buckets[0].StartMinute)
	assert.Equal(t, 30, dist.Buckets[0].EndMinuteExclusive)
	assert.Equal(t, 1410, dist.Buckets[47].StartMinute)
	assert.Equal(t, 1440, dist.Buckets[47].EndMinuteExclusive)
}

func TestBuildIntradayDistribution_WholeEventAssignment(t *testing.T) {
	// An event starting at 23:59 that runs past midnight counts wholly in
	// the 23:30-24:00 bucket. Nothing spills into the first bucket.
	start := time.Date(2024, 1, 10, 23, 59, 0, 0, time.UTC)
	events := []*domain.PlaybackEvent{
		{SongID: "song-1", StartedAt: start, ListenedMs: 10 * 60 * 1000},
	}

	dist := BuildIntradayDistribution(events, time.UTC, DefaultBucketMinutes, false)

	assert.Equal(t, int64(600_000), dist.Buckets[47].DurationMs)
	assert.Equal(t, 1, dist.Buckets[47].PlayCount)
	assert.Equal(t, int64(0), dist.Buckets[0].DurationMs)

	require.NotNil(t, dist.PeakBucket)
	assert.Equal(t, 1410, dist.PeakBucket.StartMinute)
}

func TestBuildIntradayDistribution_Conservation(t *testing.T) {
	base := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	var events []*domain.PlaybackEvent
	var want int64
	for i := 0; i < 20; i++ {
		ms := int64((i + 1) * 90_000)
		events = append(events, &domain.PlaybackEvent{
			SongID:     "song-1",
			StartedAt:  base.Add(time.Duration(i) * 73 * time.Minute),
			ListenedMs: ms,
		})
		want += ms
	}

	dist := BuildIntradayDistribution(events, time.UTC, DefaultBucketMinutes, true)

	var flatSum, daySum int64
	for _, b := range dist.Buckets {
		flatSum += b.DurationMs
	}
	for _, d := range dist.Days {
		daySum += d.DurationMs
	}
	assert.Equal(t, want, flatSum)
	assert.Equal(t, want, daySum)
}

func TestBuildIntradayDistribution_PerDay(t *testing.T) {
	day1 := time.Date(2024, 1, 10, 9, 15, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 12, 21, 40, 0, 0, time.UTC)
	events := []*domain.PlaybackEvent{
		{SongID: "song-1", StartedAt: day1, ListenedMs: 60_000},
		{SongID: "song-1", StartedAt: day2, ListenedMs: 120_000},
		{SongID: "song-1", StartedAt: day2.Add(time.Minute), ListenedMs: 30_000},
	}

	dist := BuildIntradayDistribution(events, time.UTC, DefaultBucketMinutes, true)

	// Only days with events appear, sorted ascending.
	require.Len(t, dist.Days, 2)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), dist.Days[0].Date)
	assert.Equal(t, time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC), dist.Days[1].Date)
	assert.Equal(t, int64(60_000), dist.Days[0].DurationMs)
	assert.Equal(t, int64(150_000), dist.Days[1].DurationMs)

	// 21:40 falls in the 21:30-22:00 bucket (index 43).
	assert.Equal(t, 2, dist.Days[1].Buckets[43].PlayCount)
}

func TestBuildTimeline_DayRange(t *testing.T) {
	now := time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)
	iv, err := ResolveRange(domain.RangeDay, now, time.Time{})
	require.NoError(t, err)

	events := []*domain.PlaybackEvent{
		{SongID: "song-1", StartedAt: now.Add(-15 * time.Minute), ListenedMs: 60_000},
	}

	timeline := BuildTimeline(events, domain.RangeDay, iv, time.UTC)
	require.Len(t, timeline, 24)

	assert.Equal(t, "00:00–01:00", timeline[0].Label)
	assert.Equal(t, "23:00–00:00", timeline[23].Label)

	// The 15:15 event lands in the 15:00 slot.
	assert.Equal(t, int64(60_000), timeline[15].DurationMs)
	assert.Equal(t, 1, timeline[15].PlayCount)

	// Everything else stays zeroed, not missing.
	for i, entry := range timeline {
		if i == 15 {
			continue
		}
		assert.Zero(t, entry.DurationMs)
		assert.Zero(t, entry.PlayCount)
	}
}

func TestBuildTimeline_WeekRange(t *testing.T) {
	now := time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC) // Wednesday
	iv, err := ResolveRange(domain.RangeWeek, now, time.Time{})
	require.NoError(t, err)

	timeline := BuildTimeline(nil, domain.RangeWeek, iv, time.UTC)
	require.Len(t, timeline, 7)

	labels := make([]string, len(timeline))
	for i, e := range timeline {
		labels[i] = e.Label
	}
	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, labels)
}

func TestBuildTimeline_MonthRange(t *testing.T) {
	now := time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)
	iv, err := ResolveRange(domain.RangeMonth, now, time.Time{})
	require.NoError(t, err)

	timeline := BuildTimeline(nil, domain.RangeMonth, iv, time.UTC)
	require.Len(t, timeline, 31)
	assert.Equal(t, "Jan 1", timeline[0].Label)
	assert.Equal(t, "Jan 31", timeline[30].Label)
}

func TestBuildTimeline_YearRange(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)
	iv, err := ResolveRange(domain.RangeYear, now, time.Time{})
	require.NoError(t, err)

	timeline := BuildTimeline(nil, domain.RangeYear, iv, time.UTC)
	require.Len(t, timeline, 12)
	assert.Equal(t, "Jan", timeline[0].Label)
	assert.Equal(t, "Dec", timeline[11].Label)
}

func TestBuildTimeline_AllTimeYearSlots(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)
	first := time.Date(2022, 11, 3, 8, 0, 0, 0, time.UTC)
	iv, err := ResolveRange(domain.RangeAllTime, now, first)
	require.NoError(t, err)

	events := []*domain.PlaybackEvent{
		{SongID: "song-1", StartedAt: first, ListenedMs: 60_000},
		{SongID: "song-1", StartedAt: now, ListenedMs: 30_000},
	}

	timeline := BuildTimeline(events, domain.RangeAllTime, iv, time.UTC)
	require.Len(t, timeline, 3)
	assert.Equal(t, "2022", timeline[0].Label)
	assert.Equal(t, "2024", timeline[2].Label)
	assert.Equal(t, int64(60_000), timeline[0].DurationMs)
	assert.Equal(t, int64(30_000), timeline[2].DurationMs)
	assert.Zero(t, timeline[1].DurationMs)
}

func TestBuildTimeline_Conservation(t *testing.T) {
	now := time.Date(2024, 1, 10, 23, 30, 0, 0, time.UTC)
	iv, err := ResolveRange(domain.RangeDay, now, time.Time{})
	require.NoError(t, err)

	var events []*domain.PlaybackEvent
	var want int64
	for i := 0; i < 24; i++ {
		ms := int64(i * 10_000)
		events = append(events, &domain.PlaybackEvent{
			SongID:     "song-1",
			StartedAt:  iv.Start.Add(time.Duration(i)*time.Hour + 59*time.Minute),
			ListenedMs: ms,
		})
		want += ms
	}

	timeline := BuildTimeline(events, domain.RangeDay, iv, time.UTC)

	var sum int64
	count := 0
	for _, e := range timeline {
		sum += e.DurationMs
		count += e.PlayCount
	}
	assert.Equal(t, want, sum)
	assert.Equal(t, len(events), count)
}
