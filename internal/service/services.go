package service

import (
	"github.com/MKhiriev/go-page-builder/internal/config"
	"github.com/MKhiriev/go-page-builder/internal/guard"
	"github.com/MKhiriev/go-page-builder/internal/logger"
	"github.com/MKhiriev/go-page-builder/internal/store"
	"github.com/MKhiriev/go-page-builder/models"
)

type Services struct {
	SyncService    SyncService
	DedupService   DedupService
	BuilderService BuilderService
	AppInfoService AppInfoService
}

// NewServices wires the services over storages and subscribes the
// synchronizer to the host's option-updated events.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, err
	}

	dedup := NewDedupService(storages.Host, cfg.App, logger)
	sync := NewSyncService(storages.Host, dedup, guard.New(), cfg.App, logger)
	storages.Host.Subscribe(sync.OnOptionUpdated)

	builder := NewBuilderValidationService().Wrap(
		NewBuilderService(storages.Host, sync, cfg.App, logger),
	)

	return &Services{
		SyncService:    sync,
		DedupService:   dedup,
		BuilderService: builder,
		AppInfoService: appInfo,
	}, nil
}
