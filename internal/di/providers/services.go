package providers

import (
	"github.com/samber/do/v2"

	"github.com/playtally/playtally/internal/cache"
	"github.com/playtally/playtally/internal/config"
	"github.com/playtally/playtally/internal/logger"
	"github.com/playtally/playtally/internal/service"
	"github.com/playtally/playtally/internal/store"
)

// ProvideSummaryCache provides the per-log-version summary cache.
func ProvideSummaryCache(i do.Injector) (*cache.SummaryCache, error) {
	return cache.NewSummaryCache(), nil
}

// ProvideRecorderService provides the playback event recorder.
func ProvideRecorderService(i do.Injector) (*service.RecorderService, error) {
	eventStore := do.MustInvoke[store.EventStore](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRecorderService(eventStore, log.Logger), nil
}

// ProvideStatsService provides the statistics service.
func ProvideStatsService(i do.Injector) (*service.StatsService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	eventStore := do.MustInvoke[store.EventStore](i)
	summaryCache := do.MustInvoke[*cache.SummaryCache](i)
	log := do.MustInvoke[*logger.Logger](i)

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	return service.NewStatsService(eventStore, summaryCache, cfg.Stats, loc, log.Logger), nil
}
