// Package resolver maps ids of autosaves and backup snapshots to the
// canonical entity they belong to.
package resolver

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-page-builder/models"
)

// Lookup is the host side of resolution.
type Lookup interface {
	AutosaveOf(ctx context.Context, id int64) (canonicalID int64, ok bool, err error)
	SnapshotOf(ctx context.Context, id int64) (canonicalID int64, ok bool, err error)
}

// Resolver resolves raw ids into [models.EntityRef] values.
type Resolver struct {
	lookup Lookup
}

// New returns a resolver backed by lookup.
func New(lookup Lookup) *Resolver {
	return &Resolver{lookup: lookup}
}

// Resolve classifies id. Autosaves are checked first, then snapshots;
// anything else is treated as canonical.
func (r *Resolver) Resolve(ctx context.Context, id int64) (models.EntityRef, error) {
	canonicalID, ok, err := r.lookup.AutosaveOf(ctx, id)
	if err != nil {
		return models.EntityRef{}, fmt.Errorf("resolving autosave %d: %w", id, err)
	}
	if ok {
		return models.Autosave(id, canonicalID), nil
	}

	canonicalID, ok, err = r.lookup.SnapshotOf(ctx, id)
	if err != nil {
		return models.EntityRef{}, fmt.Errorf("resolving snapshot %d: %w", id, err)
	}
	if ok {
		return models.Snapshot(id, canonicalID), nil
	}

	return models.Canonical(id), nil
}
