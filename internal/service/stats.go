package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/playtally/playtally/internal/cache"
	"github.com/playtally/playtally/internal/config"
	"github.com/playtally/playtally/internal/domain"
	domainerrors "github.com/playtally/playtally/internal/errors"
	"github.com/playtally/playtally/internal/stats"
	"github.com/playtally/playtally/internal/store"
)

// StatsService serves playback statistics summaries over the event log,
// memoizing results per log version.
type StatsService struct {
	store  store.EventStore
	cache  *cache.SummaryCache
	cfg    config.StatsConfig
	loc    *time.Location
	logger *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewStatsService creates a new stats service.
func NewStatsService(
	store store.EventStore,
	cache *cache.SummaryCache,
	cfg config.StatsConfig,
	loc *time.Location,
	logger *slog.Logger,
) *StatsService {
	if loc == nil {
		loc = time.Local
	}
	return &StatsService{
		store:  store,
		cache:  cache,
		cfg:    cfg,
		loc:    loc,
		logger: logger,
		now:    time.Now,
	}
}

// AvailableRanges returns the ranges a summary can be requested for.
func (s *StatsService) AvailableRanges() []domain.TimeRange {
	return domain.AvailableRanges()
}

// ComputeSummary computes (or returns a memoized copy of) the statistics
// summary for one range. topN <= 0 selects the configured default.
func (s *StatsService) ComputeSummary(ctx context.Context, rng domain.TimeRange, topN int) (*domain.PlaybackStatsSummary, error) {
	if !rng.Valid() {
		return nil, domainerrors.InvalidRangef("unknown range %q", rng)
	}
	if topN <= 0 {
		topN = s.cfg.TopN
	}

	now := s.now().In(s.loc)

	latest, err := s.store.LatestEventTime(ctx)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeStoreUnavailable, "read latest event time")
	}
	var logVersion int64
	if !latest.IsZero() {
		logVersion = latest.UnixMilli()
	}

	if summary, ok := s.cache.Get(rng, topN, logVersion); ok {
		s.logger.Debug("summary cache hit",
			"range", rng,
			"top_n", topN,
			"log_version", logVersion,
		)
		return summary, nil
	}

	var firstEvent time.Time
	if rng == domain.RangeAllTime {
		firstEvent, err = s.store.FirstEventTime(ctx)
		if err != nil {
			return nil, domainerrors.Wrap(err, domainerrors.CodeStoreUnavailable, "read first event time")
		}
	}

	iv, err := stats.ResolveRange(rng, now, firstEvent)
	if err != nil {
		return nil, err
	}

	events, err := s.store.ListEvents(ctx, iv.Start, iv.End)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeStoreUnavailable, "list events")
	}

	s.logger.Info("computing playback summary",
		"range", rng,
		"range_start", iv.Start.Format(time.RFC3339),
		"range_end", iv.End.Format(time.RFC3339),
		"event_count", len(events),
	)

	summary, err := stats.Compute(ctx, events, stats.Params{
		Range:         rng,
		Now:           now,
		TopN:          topN,
		SessionGap:    s.cfg.SessionGap,
		BucketMinutes: s.cfg.BucketMinutes,
		SongListCap:   s.cfg.SongListCap,
	})
	if err != nil {
		return nil, err
	}

	s.cache.Put(rng, topN, logVersion, summary)
	s.cache.Prune(logVersion)

	return summary, nil
}
