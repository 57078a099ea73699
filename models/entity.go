// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// EntityKind tells apart the three kinds of records that share the host's id space.
type EntityKind string

const (
	// KindCanonical is a regular content item (page, post, ...).
	KindCanonical EntityKind = "canonical"

	// KindAutosave is a transient draft linked to a canonical entity.
	KindAutosave EntityKind = "autosave"

	// KindSnapshot is an immutable backup of a canonical entity's prior state.
	KindSnapshot EntityKind = "snapshot"
)

// Entity is a content item owned by the host store.
//
// ParentID is set for autosaves and snapshots and points at the canonical
// entity they belong to. It is zero for canonical entities.
type Entity struct {
	ID        int64      `json:"id"`
	Kind      EntityKind `json:"kind"`
	ParentID  int64      `json:"parent_id,omitempty"`
	Type      string     `json:"type"`
	Body      string     `json:"body"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// IsCanonical reports whether e is a regular content item.
func (e Entity) IsCanonical() bool {
	return e.Kind == KindCanonical || e.Kind == ""
}

// SnapshotRef identifies one backup snapshot in a canonical entity's history.
type SnapshotRef struct {
	ID          int64      `json:"id"`
	CanonicalID int64      `json:"canonical_id"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// EntityRef is an id resolved once at the entry point of a synchronization.
//
// For Canonical refs ID == CanonicalID. For Autosave and Snapshot refs ID is
// the draft/backup id and CanonicalID the entity it is linked to.
type EntityRef struct {
	Kind        EntityKind `json:"kind"`
	ID          int64      `json:"id"`
	CanonicalID int64      `json:"canonical_id"`
}

// Canonical builds a ref for a regular entity.
func Canonical(id int64) EntityRef {
	return EntityRef{Kind: KindCanonical, ID: id, CanonicalID: id}
}

// Autosave builds a ref for a draft of canonicalID.
func Autosave(id, canonicalID int64) EntityRef {
	return EntityRef{Kind: KindAutosave, ID: id, CanonicalID: canonicalID}
}

// Snapshot builds a ref for a backup of canonicalID.
func Snapshot(id, canonicalID int64) EntityRef {
	return EntityRef{Kind: KindSnapshot, ID: id, CanonicalID: canonicalID}
}

// IsSnapshot reports whether the ref denotes a backup snapshot.
func (r EntityRef) IsSnapshot() bool {
	return r.Kind == KindSnapshot
}
