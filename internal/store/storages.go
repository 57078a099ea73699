package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-page-builder/internal/config"
	"github.com/MKhiriev/go-page-builder/internal/logger"
)

// Storages groups the stores the services are built on.
type Storages struct {
	Host Host
}

// NewStorages opens the host selected by cfg.Driver and applies migrations
// for SQL drivers.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.Driver {
	case config.DriverMemory:
		log.Info().Str("func", "NewStorages").Msg("using in-memory host")
		return &Storages{Host: NewMemoryHost(cfg.UnslashRounds)}, nil
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg, log)
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Str("driver", cfg.Driver).Msg("failed to apply migrations")
		_ = db.Close()
		return nil, err
	}

	return &Storages{Host: NewSQLHost(db, cfg.UnslashRounds)}, nil
}
