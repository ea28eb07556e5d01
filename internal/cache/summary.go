package cache

import (
	"github.com/playtally/playtally/internal/domain"
)

// Key identifies one cached summary: the range, the top-N bound, and the
// log version (the highest-seen event start instant, in unix milliseconds).
// Any append moves the version forward, so entries for an older version
// simply stop being hit - including ALL_TIME and every range whose interval
// is open-ended toward "now".
type Key struct {
	Range      domain.TimeRange
	TopN       int
	LogVersion int64
}

// SummaryCache memoizes computed summaries. It owns no engine-internal
// mutable data: values are the engine's immutable results, shared as-is.
type SummaryCache struct {
	entries *SyncMap[Key, *domain.PlaybackStatsSummary]
}

// NewSummaryCache creates an empty summary cache.
func NewSummaryCache() *SummaryCache {
	return &SummaryCache{
		entries: NewSyncMap[Key, *domain.PlaybackStatsSummary](),
	}
}

// Get returns the cached summary for the key, if present.
func (c *SummaryCache) Get(rng domain.TimeRange, topN int, logVersion int64) (*domain.PlaybackStatsSummary, bool) {
	return c.entries.Load(Key{Range: rng, TopN: topN, LogVersion: logVersion})
}

// Put stores a computed summary under the key.
func (c *SummaryCache) Put(rng domain.TimeRange, topN int, logVersion int64, summary *domain.PlaybackStatsSummary) {
	c.entries.Store(Key{Range: rng, TopN: topN, LogVersion: logVersion}, summary)
}

// Prune drops every entry computed for a log version other than the current
// one, bounding memory across appends.
func (c *SummaryCache) Prune(currentVersion int64) {
	c.entries.DeleteFunc(func(key Key, _ *domain.PlaybackStatsSummary) bool {
		return key.LogVersion != currentVersion
	})
}

// Len returns the number of cached summaries.
func (c *SummaryCache) Len() int {
	return c.entries.Len()
}
