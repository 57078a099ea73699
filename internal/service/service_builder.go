package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-page-builder/internal/capability"
	"github.com/MKhiriev/go-page-builder/internal/codec"
	"github.com/MKhiriev/go-page-builder/internal/config"
	"github.com/MKhiriev/go-page-builder/internal/logger"
	"github.com/MKhiriev/go-page-builder/internal/render"
	"github.com/MKhiriev/go-page-builder/internal/store"
	"github.com/MKhiriev/go-page-builder/models"
)

// builderOptionType is the option type the editor box declares for the builder.
const builderOptionType = "page-builder"

type builderService struct {
	host    store.Host
	sync    SyncService
	gate    *capability.Gate
	wrapper *render.Wrapper

	optionKey string
	importKey string

	logger *logger.Logger
}

// NewBuilderService returns the [BuilderService] over host. Option writes
// reach sync through the host's event stream; sync is only called directly
// for raw events and resyncs.
func NewBuilderService(host store.Host, sync SyncService, cfg config.App, logger *logger.Logger) BuilderService {
	return &builderService{
		host:      host,
		sync:      sync,
		gate:      capability.NewGate(host, cfg.FeatureName),
		wrapper:   render.NewWrapper(cfg.EffectiveWrapperClass()),
		optionKey: cfg.BuilderOptionKey,
		importKey: cfg.ImportOptionsKey,
		logger:    logger,
	}
}

// IsBuilderEntity reports whether id exists, its type supports the builder
// and its builder option is active. The id is used as is, without resolution.
func (b *builderService) IsBuilderEntity(ctx context.Context, id int64) (bool, error) {
	entity, err := b.host.GetEntity(ctx, id)
	if errors.Is(err, store.ErrEntityNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	supported, err := b.gate.Supports(ctx, entity.Type)
	if err != nil || !supported {
		return false, err
	}

	option, err := readBuilderOption(ctx, b.host, id, b.optionKey)
	if err != nil {
		return false, err
	}

	return option != nil && option.Active, nil
}

// RenderContent wraps content in the display container when id is a builder entity.
func (b *builderService) RenderContent(ctx context.Context, id int64, content string) (string, error) {
	ok, err := b.IsBuilderEntity(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "builderService.RenderContent").
			Int64("entity_id", id).
			Msg("failed to check builder state")
		return "", err
	}
	if !ok {
		return content, nil
	}

	return b.wrapper.Wrap(content), nil
}

// DecodeShortcodeAtts decodes encoded shortcode attribute values for rendering.
func (b *builderService) DecodeShortcodeAtts(atts map[string]string) map[string]any {
	return codec.DecodeAtts(atts)
}

// BuilderOptionsDescriptor returns the editor box definition for entityType,
// or nil when the type does not support the builder.
func (b *builderService) BuilderOptionsDescriptor(ctx context.Context, entityType string) (*models.OptionsDescriptor, error) {
	supported, err := b.gate.Supports(ctx, entityType)
	if err != nil || !supported {
		return nil, err
	}

	return &models.OptionsDescriptor{
		Key:               b.optionKey,
		Type:              builderOptionType,
		Priority:          "high",
		EditorIntegration: true,
		Fullscreen:        true,
		TemplateSaving:    true,
		History:           true,
	}, nil
}

func (b *builderService) CreateEntity(ctx context.Context, request models.CreateEntityRequest) (models.Entity, error) {
	if request.ParentID != 0 {
		return b.host.CreateAutosave(ctx, request.ParentID, request.Body)
	}
	return b.host.CreateEntity(ctx, request.Type, request.Body)
}

func (b *builderService) GetEntity(ctx context.Context, id int64) (models.Entity, error) {
	return b.host.GetEntity(ctx, id)
}

// DeclareSupport marks entityType as builder capable.
func (b *builderService) DeclareSupport(ctx context.Context, entityType string) error {
	return b.host.DeclareSupport(ctx, entityType, b.gate.FeatureName())
}

// SaveBuilderOption stores option the way the editor does. The host then
// fires the option-updated event that materializes it.
func (b *builderService) SaveBuilderOption(ctx context.Context, id int64, option models.BuilderOption) error {
	raw, err := json.Marshal(option)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingOption, err)
	}

	return b.host.SetOption(ctx, id, b.optionKey, raw, "builder_active", "shortcode_notation")
}

// UpdateBody is a host side body save.
func (b *builderService) UpdateBody(ctx context.Context, id int64, body string) error {
	return b.host.UpdateEntityBody(ctx, id, body)
}

// NotifyOptionUpdated forwards a raw host event to the synchronizer.
func (b *builderService) NotifyOptionUpdated(ctx context.Context, event models.OptionUpdatedEvent) (models.SyncResult, error) {
	return b.sync.Sync(ctx, event)
}

// ImportOptions re-applies the builder option found in an imported option
// bundle through the host, so that it goes through the regular option write
// path instead of the importer's. Other bundles are ignored.
func (b *builderService) ImportOptions(ctx context.Context, request models.ImportRequest) (bool, error) {
	if request.Key != b.importKey {
		return false, nil
	}

	raw, ok := request.Values[b.optionKey]
	if !ok {
		return false, nil
	}

	if err := b.host.SetOption(ctx, request.EntityID, b.optionKey, raw); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "builderService.ImportOptions").
			Int64("entity_id", request.EntityID).
			Msg("failed to re-apply imported builder option")
		return false, err
	}

	return true, nil
}

// ResyncAll replays a builder option update for every canonical entity of a
// supported type. A failure is recorded and the run goes on with the next entity.
func (b *builderService) ResyncAll(ctx context.Context) (models.ResyncResponse, error) {
	log := logger.FromContext(ctx)

	entities, err := b.host.ListCanonical(ctx)
	if err != nil {
		log.Err(err).Str("func", "builderService.ResyncAll").Msg("failed to list entities")
		return models.ResyncResponse{}, err
	}

	var response models.ResyncResponse
	for _, entity := range entities {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return response, ctxErr
		}

		supported, err := b.gate.Supports(ctx, entity.Type)
		if err != nil {
			response.Failed = append(response.Failed, entity.ID)
			continue
		}
		if !supported {
			continue
		}

		response.Processed++
		result, err := b.sync.Sync(ctx, models.OptionUpdatedEvent{EntityID: entity.ID, OptionKey: b.optionKey})
		if err != nil {
			log.Err(err).
				Str("func", "builderService.ResyncAll").
				Int64("entity_id", entity.ID).
				Msg("resync failed")
			response.Failed = append(response.Failed, entity.ID)
			continue
		}
		if result.Written {
			response.Written++
		}
	}

	log.Info().
		Str("func", "builderService.ResyncAll").
		Int("processed", response.Processed).
		Int("written", response.Written).
		Int("failed", len(response.Failed)).
		Msg("resync finished")

	return response, nil
}
