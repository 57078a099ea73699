package store

//go:generate mockgen -source=host_interfaces.go -destination=../mock/host_store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-page-builder/models"
)

// HostStore is what the synchronization core reads from and writes to.
type HostStore interface {
	// GetEntity returns the entity with id or ErrEntityNotFound.
	GetEntity(ctx context.Context, id int64) (models.Entity, error)

	// UpdateEntityBody replaces the body of a canonical entity or an autosave.
	// Updating a canonical entity stores a backup snapshot of its prior state
	// first. After the write the host fires an option-updated event with an
	// empty key, synchronously, before UpdateEntityBody returns. An error
	// matching ErrOptionListener means the body was written but a listener failed.
	UpdateEntityBody(ctx context.Context, id int64, body string) error

	// AutosaveOf returns the canonical id of autosave id; ok is false when id is not an autosave.
	AutosaveOf(ctx context.Context, id int64) (canonicalID int64, ok bool, err error)

	// SnapshotOf returns the canonical id of snapshot id; ok is false when id is not a snapshot.
	SnapshotOf(ctx context.Context, id int64) (canonicalID int64, ok bool, err error)

	// RecentSnapshots returns at most limit snapshots of canonicalID, newest first.
	RecentSnapshots(ctx context.Context, canonicalID int64, limit int) ([]models.SnapshotRef, error)

	// DeleteSnapshot removes a snapshot and its stored options.
	DeleteSnapshot(ctx context.Context, id int64) error

	// TypeSupports reports whether entityType declares feature.
	TypeSupports(ctx context.Context, entityType, feature string) (bool, error)

	// GetOption returns the raw stored value of key for id; ok is false when absent.
	GetOption(ctx context.Context, id int64, key string) (value []byte, ok bool, err error)
}
