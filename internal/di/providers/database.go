package providers

import (
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/playtally/playtally/internal/config"
	"github.com/playtally/playtally/internal/logger"
	"github.com/playtally/playtally/internal/store"
	"github.com/playtally/playtally/internal/store/sqlite"
)

// StoreHandle wraps the event store with shutdown capability.
type StoreHandle struct {
	store.EventStore
	closer interface{ Close() error }
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.closer.Close()
}

// ProvideStore provides the durable event log.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o750); err != nil {
		return nil, err
	}

	db, err := sqlite.Open(cfg.Database.Path, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Event store initialized", "path", cfg.Database.Path)

	return &StoreHandle{EventStore: db, closer: db}, nil
}

// ProvideEventStore exposes the store behind its interface for services.
func ProvideEventStore(i do.Injector) (store.EventStore, error) {
	handle := do.MustInvoke[*StoreHandle](i)
	return handle.EventStore, nil
}
