package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-page-builder/internal/logger"
	"github.com/MKhiriev/go-page-builder/models"
)

// optionReader is the part of the host needed to read a builder option.
type optionReader interface {
	GetOption(ctx context.Context, id int64, key string) ([]byte, bool, error)
}

// readBuilderOption loads and decodes the builder option of id. An absent
// option is (nil, nil). A value that is not a JSON object is logged and
// treated as absent, the way an unreadable option never activates the builder.
func readBuilderOption(ctx context.Context, host optionReader, id int64, key string) (*models.BuilderOption, error) {
	raw, ok, err := host.GetOption(ctx, id, key)
	if err != nil {
		return nil, fmt.Errorf("%w: reading option %q of %d: %w", ErrLoadingHostState, key, id, err)
	}
	if !ok {
		return nil, nil
	}

	var option models.BuilderOption
	if err = json.Unmarshal(raw, &option); err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "readBuilderOption").
			Int64("entity_id", id).
			Str("option_key", key).
			Msg("stored builder option is not an object, ignoring it")
		return nil, nil
	}

	return &option, nil
}
