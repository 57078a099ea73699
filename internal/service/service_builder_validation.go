package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-page-builder/internal/validators"
	"github.com/MKhiriev/go-page-builder/models"
)

// BuilderValidationService rejects malformed requests before they reach the
// wrapped [BuilderService].
type BuilderValidationService struct {
	inner     BuilderService
	validator validators.Validator
}

// NewBuilderValidationService returns the validating wrapper.
func NewBuilderValidationService() BuilderServiceWrapper {
	return &BuilderValidationService{
		validator: validators.NewBuilderValidator(),
	}
}

// Wrap implements [BuilderServiceWrapper].
func (v *BuilderValidationService) Wrap(inner BuilderService) BuilderService {
	v.inner = inner
	return v
}

func (v *BuilderValidationService) validate(ctx context.Context, obj any, fields ...string) error {
	if err := v.validator.Validate(ctx, obj, fields...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return nil
}

func (v *BuilderValidationService) IsBuilderEntity(ctx context.Context, id int64) (bool, error) {
	if err := v.validate(ctx, validators.EntityID(id)); err != nil {
		return false, err
	}
	return v.inner.IsBuilderEntity(ctx, id)
}

func (v *BuilderValidationService) RenderContent(ctx context.Context, id int64, content string) (string, error) {
	if err := v.validate(ctx, validators.EntityID(id)); err != nil {
		return "", err
	}
	return v.inner.RenderContent(ctx, id, content)
}

func (v *BuilderValidationService) DecodeShortcodeAtts(atts map[string]string) map[string]any {
	return v.inner.DecodeShortcodeAtts(atts)
}

func (v *BuilderValidationService) BuilderOptionsDescriptor(ctx context.Context, entityType string) (*models.OptionsDescriptor, error) {
	if err := v.validate(ctx, models.CreateEntityRequest{Type: entityType}, validators.FieldEntityType); err != nil {
		return nil, err
	}
	return v.inner.BuilderOptionsDescriptor(ctx, entityType)
}

func (v *BuilderValidationService) CreateEntity(ctx context.Context, request models.CreateEntityRequest) (models.Entity, error) {
	if err := v.validate(ctx, request); err != nil {
		return models.Entity{}, err
	}
	return v.inner.CreateEntity(ctx, request)
}

func (v *BuilderValidationService) GetEntity(ctx context.Context, id int64) (models.Entity, error) {
	if err := v.validate(ctx, validators.EntityID(id)); err != nil {
		return models.Entity{}, err
	}
	return v.inner.GetEntity(ctx, id)
}

func (v *BuilderValidationService) DeclareSupport(ctx context.Context, entityType string) error {
	if err := v.validate(ctx, models.CreateEntityRequest{Type: entityType}, validators.FieldEntityType); err != nil {
		return err
	}
	return v.inner.DeclareSupport(ctx, entityType)
}

func (v *BuilderValidationService) SaveBuilderOption(ctx context.Context, id int64, option models.BuilderOption) error {
	if err := v.validate(ctx, validators.EntityID(id)); err != nil {
		return err
	}
	return v.inner.SaveBuilderOption(ctx, id, option)
}

func (v *BuilderValidationService) UpdateBody(ctx context.Context, id int64, body string) error {
	if err := v.validate(ctx, validators.EntityID(id)); err != nil {
		return err
	}
	return v.inner.UpdateBody(ctx, id, body)
}

func (v *BuilderValidationService) NotifyOptionUpdated(ctx context.Context, event models.OptionUpdatedEvent) (models.SyncResult, error) {
	if err := v.validate(ctx, event); err != nil {
		return models.SyncResult{}, err
	}
	return v.inner.NotifyOptionUpdated(ctx, event)
}

func (v *BuilderValidationService) ImportOptions(ctx context.Context, request models.ImportRequest) (bool, error) {
	if err := v.validate(ctx, request); err != nil {
		return false, err
	}
	return v.inner.ImportOptions(ctx, request)
}

func (v *BuilderValidationService) ResyncAll(ctx context.Context) (models.ResyncResponse, error) {
	return v.inner.ResyncAll(ctx)
}
