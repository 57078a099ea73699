package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEntityID     = errors.New("invalid entity ID")
	ErrEmptyChangedSubkey  = errors.New("changed subkeys cannot contain empty keys")
	ErrEmptyOptionKey      = errors.New("option key is required")
	ErrEmptyImportValues   = errors.New("import values cannot be empty")
	ErrInvalidOptionValue  = errors.New("option value must be valid JSON")
	ErrEmptyEntityType     = errors.New("entity type is required")
	ErrInvalidBuilderState = errors.New("active builder requires a notation")
)
