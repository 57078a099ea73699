package store

import (
	"context"

	"github.com/MKhiriev/go-page-builder/models"
)

// OptionListener receives option-updated events. Hosts call listeners
// synchronously, on the goroutine that changed the option or the body.
type OptionListener func(ctx context.Context, event models.OptionUpdatedEvent) error

// EventSource is the subscription side of a host.
type EventSource interface {
	Subscribe(listener OptionListener)
}

// HostAdmin groups the host writes that the synchronization core never
// performs itself but the facade and the import shim need.
type HostAdmin interface {
	// CreateEntity inserts a canonical entity of entityType.
	CreateEntity(ctx context.Context, entityType, body string) (models.Entity, error)

	// CreateAutosave inserts a draft linked to canonicalID.
	CreateAutosave(ctx context.Context, canonicalID int64, body string) (models.Entity, error)

	// SetOption stores value under key and fires an option-updated event.
	SetOption(ctx context.Context, id int64, key string, value []byte, changedSubkeys ...string) error

	// DeclareSupport marks entityType as supporting feature.
	DeclareSupport(ctx context.Context, entityType, feature string) error

	// ListCanonical returns every canonical entity ordered by id.
	ListCanonical(ctx context.Context) ([]models.Entity, error)
}

// Host is a complete content store: the read/write contract used by the
// synchronization core, its event stream and the administrative writes.
type Host interface {
	HostStore
	EventSource
	HostAdmin
	Close() error
}

// ErrorClassificator decides whether a failed database operation is worth retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
