// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-page-builder/internal/codec"
	"github.com/MKhiriev/go-page-builder/internal/logger"
	"github.com/MKhiriev/go-page-builder/models"
)

// memoryHost is a [Host] kept entirely in process memory. It follows the
// same rules as the SQL host: canonical body updates store a snapshot first
// and every write fires its event after the lock is released.
type memoryHost struct {
	dispatcher

	mu       sync.RWMutex
	nextID   int64
	entities map[int64]models.Entity
	options  map[int64]map[string][]byte
	features map[string]map[string]struct{}

	unslashRounds int
	now           func() time.Time
}

// NewMemoryHost returns an empty in-memory host.
func NewMemoryHost(unslashRounds int) Host {
	return &memoryHost{
		nextID:        1,
		entities:      make(map[int64]models.Entity),
		options:       make(map[int64]map[string][]byte),
		features:      make(map[string]map[string]struct{}),
		unslashRounds: unslashRounds,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// GetEntity implements [HostStore].
func (m *memoryHost) GetEntity(_ context.Context, id int64) (models.Entity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entity, ok := m.entities[id]
	if !ok {
		return models.Entity{}, fmt.Errorf("%w: id %d", ErrEntityNotFound, id)
	}

	return entity, nil
}

// AutosaveOf implements [HostStore].
func (m *memoryHost) AutosaveOf(_ context.Context, id int64) (int64, bool, error) {
	return m.parentOf(id, models.KindAutosave)
}

// SnapshotOf implements [HostStore].
func (m *memoryHost) SnapshotOf(_ context.Context, id int64) (int64, bool, error) {
	return m.parentOf(id, models.KindSnapshot)
}

func (m *memoryHost) parentOf(id int64, kind models.EntityKind) (int64, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entity, ok := m.entities[id]
	if !ok || entity.Kind != kind {
		return 0, false, nil
	}

	return entity.ParentID, true, nil
}

// RecentSnapshots implements [HostStore].
func (m *memoryHost) RecentSnapshots(_ context.Context, canonicalID int64, limit int) ([]models.SnapshotRef, error) {
	if limit <= 0 {
		return nil, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var snapshots []models.SnapshotRef
	for _, entity := range m.entities {
		if entity.Kind == models.KindSnapshot && entity.ParentID == canonicalID {
			snapshots = append(snapshots, models.SnapshotRef{
				ID:          entity.ID,
				CanonicalID: canonicalID,
				CreatedAt:   entity.CreatedAt,
			})
		}
	}

	slices.SortFunc(snapshots, func(a, b models.SnapshotRef) int {
		if c := b.CreatedAt.Compare(*a.CreatedAt); c != 0 {
			return c
		}
		return int(b.ID - a.ID)
	})

	if len(snapshots) > limit {
		snapshots = snapshots[:limit]
	}

	return snapshots, nil
}

// DeleteSnapshot implements [HostStore].
func (m *memoryHost) DeleteSnapshot(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entity, ok := m.entities[id]
	if !ok || entity.Kind != models.KindSnapshot {
		return fmt.Errorf("%w: id %d", ErrSnapshotNotFound, id)
	}

	delete(m.entities, id)
	delete(m.options, id)

	return nil
}

// TypeSupports implements [HostStore].
func (m *memoryHost) TypeSupports(_ context.Context, entityType, feature string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.features[entityType][feature]
	return ok, nil
}

// GetOption implements [HostStore].
func (m *memoryHost) GetOption(_ context.Context, id int64, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.options[id][key]
	if !ok {
		return nil, false, nil
	}

	return slices.Clone(value), true, nil
}

// UpdateEntityBody implements [HostStore].
func (m *memoryHost) UpdateEntityBody(ctx context.Context, id int64, body string) error {
	snapshotID, err := m.updateBody(id, codec.UnslashN(body, m.unslashRounds))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "memoryHost.UpdateEntityBody").
			Int64("entity_id", id).
			Msg("failed to update entity body")
		return err
	}

	if snapshotID != 0 {
		logger.FromContext(ctx).Debug().
			Str("func", "memoryHost.UpdateEntityBody").
			Int64("entity_id", id).
			Int64("snapshot_id", snapshotID).
			Msg("stored backup snapshot")
	}

	return m.publish(ctx, models.OptionUpdatedEvent{EntityID: id})
}

func (m *memoryHost) updateBody(id int64, body string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entity, ok := m.entities[id]
	if !ok {
		return 0, fmt.Errorf("%w: id %d", ErrEntityNotFound, id)
	}

	var snapshotID int64
	switch {
	case entity.Kind == models.KindSnapshot:
		return 0, fmt.Errorf("%w: id %d", ErrSnapshotImmutable, id)
	case entity.IsCanonical():
		snapshot := m.insertLocked(models.KindSnapshot, id, entity.Type, entity.Body)
		snapshotID = snapshot.ID
		for key, value := range m.options[id] {
			m.setOptionLocked(snapshotID, key, value)
		}
	}

	entity.Body = body
	m.entities[id] = entity

	return snapshotID, nil
}

// CreateEntity implements [HostAdmin].
func (m *memoryHost) CreateEntity(_ context.Context, entityType, body string) (models.Entity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.insertLocked(models.KindCanonical, 0, entityType, codec.UnslashN(body, m.unslashRounds)), nil
}

// CreateAutosave implements [HostAdmin].
func (m *memoryHost) CreateAutosave(_ context.Context, canonicalID int64, body string) (models.Entity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	parent, ok := m.entities[canonicalID]
	if !ok {
		return models.Entity{}, fmt.Errorf("%w: id %d", ErrEntityNotFound, canonicalID)
	}
	if !parent.IsCanonical() {
		return models.Entity{}, fmt.Errorf("%w: id %d", ErrInvalidParent, canonicalID)
	}

	return m.insertLocked(models.KindAutosave, canonicalID, parent.Type, codec.UnslashN(body, m.unslashRounds)), nil
}

func (m *memoryHost) insertLocked(kind models.EntityKind, parentID int64, entityType, body string) models.Entity {
	createdAt := m.now()
	entity := models.Entity{
		ID:        m.nextID,
		Kind:      kind,
		ParentID:  parentID,
		Type:      entityType,
		Body:      body,
		CreatedAt: &createdAt,
	}
	m.nextID++
	m.entities[entity.ID] = entity

	return entity
}

// SetOption implements [HostAdmin].
func (m *memoryHost) SetOption(ctx context.Context, id int64, key string, value []byte, changedSubkeys ...string) error {
	m.mu.Lock()
	if _, ok := m.entities[id]; !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: id %d", ErrEntityNotFound, id)
	}
	m.setOptionLocked(id, key, value)
	m.mu.Unlock()

	return m.publish(ctx, models.OptionUpdatedEvent{EntityID: id, OptionKey: key, ChangedSubkeys: changedSubkeys})
}

func (m *memoryHost) setOptionLocked(id int64, key string, value []byte) {
	if m.options[id] == nil {
		m.options[id] = make(map[string][]byte)
	}
	m.options[id][key] = slices.Clone(value)
}

// DeclareSupport implements [HostAdmin].
func (m *memoryHost) DeclareSupport(_ context.Context, entityType, feature string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.features[entityType] == nil {
		m.features[entityType] = make(map[string]struct{})
	}
	m.features[entityType][feature] = struct{}{}

	return nil
}

// ListCanonical implements [HostAdmin].
func (m *memoryHost) ListCanonical(_ context.Context) ([]models.Entity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var entities []models.Entity
	for _, entity := range m.entities {
		if entity.IsCanonical() {
			entities = append(entities, entity)
		}
	}
	slices.SortFunc(entities, func(a, b models.Entity) int { return int(a.ID - b.ID) })

	return entities, nil
}

// Close implements [Host]. There is nothing to release.
func (m *memoryHost) Close() error {
	return nil
}
