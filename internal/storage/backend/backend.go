// Package backend constructs the store handle selected by configuration.
package backend

import (
	"fmt"

	"ecosync/backend/internal/config"
	"ecosync/backend/internal/logger"
	"ecosync/backend/internal/storage"
	"ecosync/backend/internal/storage/memstore"
	"ecosync/backend/internal/storage/rest"
)

// Open returns the store for cfg and a function that releases it.
func Open(cfg config.Config) (storage.Storage, func() error, error) {
	log := logger.Default().WithField("backend", cfg.Backend())

	switch cfg.Backend() {
	case config.BackendREST:
		log.WithField("url", cfg.SupabaseURL).Info("using REST store")
		return rest.New(cfg.SupabaseURL, cfg.SupabaseKey), noop, nil

	case config.BackendPostgres:
		db, err := storage.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if cfg.AutoMigrate {
			if err := storage.Migrate(db); err != nil {
				return nil, nil, err
			}
			log.Info("schema migrated")
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("postgres handle: %w", err)
		}
		log.Info("using postgres store")
		return storage.NewStorageService(db), sqlDB.Close, nil

	case config.BackendMemory:
		log.Warn("using in-memory store; data is lost on exit")
		return memstore.New(), noop, nil
	}
	return nil, nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
}

func noop() error { return nil }
