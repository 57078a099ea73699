package validators

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-page-builder/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldEntityID       = "entity_id"
	FieldOptionKey      = "option_key"
	FieldChangedSubkeys = "changed_subkeys"
	FieldImportKey      = "import_key"
	FieldImportValues   = "import_values"
	FieldEntityType     = "entity_type"
	FieldParentID       = "parent_id"
	FieldNotation       = "notation"
)

// EntityID marks a bare id for validation.
type EntityID int64

// BuilderValidator validates page builder requests.
type BuilderValidator struct{}

// NewBuilderValidator returns a [Validator] for page builder requests.
func NewBuilderValidator() Validator {
	return &BuilderValidator{}
}

// Validate implements [Validator].
func (v *BuilderValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case EntityID:
		return validateEntityID(int64(value))

	case models.OptionUpdatedEvent:
		return v.validateEvent(value, fields...)
	case *models.OptionUpdatedEvent:
		return v.validateEvent(*value, fields...)

	case models.ImportRequest:
		return v.validateImport(value, fields...)
	case *models.ImportRequest:
		return v.validateImport(*value, fields...)

	case models.CreateEntityRequest:
		return v.validateCreate(value, fields...)
	case *models.CreateEntityRequest:
		return v.validateCreate(*value, fields...)

	case models.BuilderOption:
		return v.validateOption(value, fields...)
	case *models.BuilderOption:
		return v.validateOption(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func validateEntityID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidEntityID, id)
	}
	return nil
}

func (v *BuilderValidator) validateEvent(event models.OptionUpdatedEvent, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEntityID, FieldChangedSubkeys}
	}

	for _, f := range fields {
		switch f {
		case FieldEntityID:
			if err := validateEntityID(event.EntityID); err != nil {
				return err
			}
		case FieldChangedSubkeys:
			for _, key := range event.ChangedSubkeys {
				if key == "" {
					return ErrEmptyChangedSubkey
				}
			}
		case FieldOptionKey:
			if event.OptionKey == "" {
				return ErrEmptyOptionKey
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

func (v *BuilderValidator) validateImport(request models.ImportRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEntityID, FieldImportKey, FieldImportValues}
	}

	for _, f := range fields {
		switch f {
		case FieldEntityID:
			if err := validateEntityID(request.EntityID); err != nil {
				return err
			}
		case FieldImportKey:
			if request.Key == "" {
				return ErrEmptyOptionKey
			}
		case FieldImportValues:
			if len(request.Values) == 0 {
				return ErrEmptyImportValues
			}
			for key, value := range request.Values {
				if !json.Valid(value) {
					return fmt.Errorf("%w: %s", ErrInvalidOptionValue, key)
				}
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

func (v *BuilderValidator) validateCreate(request models.CreateEntityRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEntityType, FieldParentID}
	}

	for _, f := range fields {
		switch f {
		case FieldEntityType:
			if request.Type == "" && request.ParentID == 0 {
				return ErrEmptyEntityType
			}
		case FieldParentID:
			if request.ParentID < 0 {
				return fmt.Errorf("%w: %d", ErrInvalidEntityID, request.ParentID)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

// validateOption checks nothing by default: an active builder with an empty
// notation is a legitimate empty page. FieldNotation opts into requiring one.
func (v *BuilderValidator) validateOption(option models.BuilderOption, fields ...string) error {
	for _, f := range fields {
		switch f {
		case FieldNotation:
			if option.Active && option.Notation == "" {
				return ErrInvalidBuilderState
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}
