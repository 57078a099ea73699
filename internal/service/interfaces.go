package service

import (
	"context"

	"github.com/MKhiriev/go-page-builder/models"
)

// SyncService keeps entity bodies in line with their builder option.
type SyncService interface {
	// OnOptionUpdated is the host event listener. It reports failures only.
	OnOptionUpdated(ctx context.Context, event models.OptionUpdatedEvent) error

	// Sync handles one option-updated event and reports what it did.
	Sync(ctx context.Context, event models.OptionUpdatedEvent) (models.SyncResult, error)
}

// DedupService removes duplicate backup snapshots left behind by a materialization.
type DedupService interface {
	Dedupe(ctx context.Context, canonicalID int64) (deleted []int64, err error)
}

// BuilderService is the surface the HTTP facade and importers use.
type BuilderService interface {
	IsBuilderEntity(ctx context.Context, id int64) (bool, error)
	RenderContent(ctx context.Context, id int64, content string) (string, error)
	DecodeShortcodeAtts(atts map[string]string) map[string]any
	BuilderOptionsDescriptor(ctx context.Context, entityType string) (*models.OptionsDescriptor, error)

	CreateEntity(ctx context.Context, request models.CreateEntityRequest) (models.Entity, error)
	GetEntity(ctx context.Context, id int64) (models.Entity, error)
	DeclareSupport(ctx context.Context, entityType string) error

	SaveBuilderOption(ctx context.Context, id int64, option models.BuilderOption) error
	UpdateBody(ctx context.Context, id int64, body string) error
	NotifyOptionUpdated(ctx context.Context, event models.OptionUpdatedEvent) (models.SyncResult, error)
	ImportOptions(ctx context.Context, request models.ImportRequest) (bool, error)
	ResyncAll(ctx context.Context) (models.ResyncResponse, error)
}

// AppInfoService exposes build metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.VersionResponse
}

// BuilderServiceWrapper defines middleware composition for BuilderService.
// Implementations wrap an existing BuilderService to add behavior such as
// validation.
type BuilderServiceWrapper interface {
	Wrap(BuilderService) BuilderService // returns a decorated BuilderService applying additional behavior
}
