// Package di provides dependency injection configuration for PlayTally.
package di

import (
	"github.com/samber/do/v2"

	"github.com/playtally/playtally/internal/cache"
	"github.com/playtally/playtally/internal/config"
	"github.com/playtally/playtally/internal/di/providers"
	"github.com/playtally/playtally/internal/logger"
	"github.com/playtally/playtally/internal/service"
	"github.com/playtally/playtally/internal/store"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)

	// Event log
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideEventStore)
	do.Provide(injector, providers.ProvideSummaryCache)

	// Business services
	do.Provide(injector, providers.ProvideRecorderService)
	do.Provide(injector, providers.ProvideStatsService)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[store.EventStore](injector)
	_ = do.MustInvoke[*cache.SummaryCache](injector)

	// Business services
	_ = do.MustInvoke[*service.RecorderService](injector)
	_ = do.MustInvoke[*service.StatsService](injector)

	return nil
}
