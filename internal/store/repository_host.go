package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-page-builder/internal/codec"
	"github.com/MKhiriev/go-page-builder/internal/logger"
	"github.com/MKhiriev/go-page-builder/models"
)

// sqlHost is a [Host] backed by a relational database.
//
// Entities of all three kinds live in one table and share the id space;
// options are stored as raw JSON text per (entity, key).
type sqlHost struct {
	dispatcher

	db            *DB
	q             hostQueries
	unslashRounds int
	now           func() time.Time
}

// NewSQLHost returns a host over db. unslashRounds is the number of slash
// stripping rounds applied to every body the host stores.
func NewSQLHost(db *DB, unslashRounds int) Host {
	return &sqlHost{
		db:            db,
		q:             hostQueries{sb: db.builder},
		unslashRounds: unslashRounds,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntity(row rowScanner) (models.Entity, error) {
	var (
		entity    models.Entity
		kind      string
		parentID  sql.NullInt64
		createdAt sql.NullTime
	)

	if err := row.Scan(&entity.ID, &kind, &parentID, &entity.Type, &entity.Body, &createdAt); err != nil {
		return models.Entity{}, err
	}

	entity.Kind = models.EntityKind(kind)
	entity.ParentID = parentID.Int64
	if createdAt.Valid {
		t := createdAt.Time
		entity.CreatedAt = &t
	}

	return entity, nil
}

// GetEntity implements [HostStore].
func (h *sqlHost) GetEntity(ctx context.Context, id int64) (models.Entity, error) {
	log := logger.FromContext(ctx)

	query, args, err := h.q.selectEntity(id)
	if err != nil {
		log.Err(err).Str("func", "sqlHost.GetEntity").Int64("entity_id", id).Msg("failed to create query")
		return models.Entity{}, err
	}

	entity, err := scanEntity(h.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Entity{}, fmt.Errorf("%w: id %d", ErrEntityNotFound, id)
	}
	if err != nil {
		log.Err(err).Str("func", "sqlHost.GetEntity").Int64("entity_id", id).Msg("failed to scan entity row")
		return models.Entity{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return entity, nil
}

// AutosaveOf implements [HostStore].
func (h *sqlHost) AutosaveOf(ctx context.Context, id int64) (int64, bool, error) {
	return h.parentOf(ctx, id, models.KindAutosave)
}

// SnapshotOf implements [HostStore].
func (h *sqlHost) SnapshotOf(ctx context.Context, id int64) (int64, bool, error) {
	return h.parentOf(ctx, id, models.KindSnapshot)
}

func (h *sqlHost) parentOf(ctx context.Context, id int64, kind models.EntityKind) (int64, bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := h.q.selectParent(id, kind)
	if err != nil {
		log.Err(err).Str("func", "sqlHost.parentOf").Int64("entity_id", id).Msg("failed to create query")
		return 0, false, err
	}

	var parentID sql.NullInt64
	err = h.db.QueryRowContext(ctx, query, args...).Scan(&parentID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "sqlHost.parentOf").
			Int64("entity_id", id).
			Str("kind", string(kind)).
			Msg("failed to look up parent")
		return 0, false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return parentID.Int64, parentID.Valid, nil
}

// RecentSnapshots implements [HostStore].
func (h *sqlHost) RecentSnapshots(ctx context.Context, canonicalID int64, limit int) ([]models.SnapshotRef, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		return nil, nil
	}

	query, args, err := h.q.selectRecentSnapshots(canonicalID, limit)
	if err != nil {
		log.Err(err).Str("func", "sqlHost.RecentSnapshots").Int64("entity_id", canonicalID).Msg("failed to create query")
		return nil, err
	}

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "sqlHost.RecentSnapshots").Int64("entity_id", canonicalID).Msg("failed to query snapshots")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	snapshots := make([]models.SnapshotRef, 0, limit)
	for rows.Next() {
		var (
			ref       models.SnapshotRef
			createdAt sql.NullTime
		)
		if err = rows.Scan(&ref.ID, &ref.CanonicalID, &createdAt); err != nil {
			log.Err(err).Str("func", "sqlHost.RecentSnapshots").Int64("entity_id", canonicalID).Msg("failed to scan snapshot row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if createdAt.Valid {
			t := createdAt.Time
			ref.CreatedAt = &t
		}
		snapshots = append(snapshots, ref)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "sqlHost.RecentSnapshots").Int64("entity_id", canonicalID).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return snapshots, nil
}

// TypeSupports implements [HostStore].
func (h *sqlHost) TypeSupports(ctx context.Context, entityType, feature string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := h.q.countFeature(entityType, feature)
	if err != nil {
		log.Err(err).Str("func", "sqlHost.TypeSupports").Msg("failed to create query")
		return false, err
	}

	var count int
	if err = h.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "sqlHost.TypeSupports").
			Str("entity_type", entityType).
			Str("feature", feature).
			Msg("failed to count feature flags")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count > 0, nil
}

// GetOption implements [HostStore].
func (h *sqlHost) GetOption(ctx context.Context, id int64, key string) ([]byte, bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := h.q.selectOption(id, key)
	if err != nil {
		log.Err(err).Str("func", "sqlHost.GetOption").Int64("entity_id", id).Msg("failed to create query")
		return nil, false, err
	}

	var value []byte
	err = h.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "sqlHost.GetOption").
			Int64("entity_id", id).
			Str("option_key", key).
			Msg("failed to read option")
		return nil, false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, true, nil
}

// UpdateEntityBody implements [HostStore].
func (h *sqlHost) UpdateEntityBody(ctx context.Context, id int64, body string) error {
	log := logger.FromContext(ctx)

	body = codec.UnslashN(body, h.unslashRounds)

	err := h.db.withRetry(ctx, "sqlHost.UpdateEntityBody", func() error {
		return h.updateBodyTx(ctx, id, body)
	})
	if err != nil {
		log.Err(err).
			Str("func", "sqlHost.UpdateEntityBody").
			Int64("entity_id", id).
			Str("pg_code", postgresCode(err)).
			Msg("failed to update entity body")
		return err
	}

	return h.publish(ctx, models.OptionUpdatedEvent{EntityID: id})
}

func (h *sqlHost) updateBodyTx(ctx context.Context, id int64, body string) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err = h.updateBodyInTx(ctx, tx, id, body); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (h *sqlHost) updateBodyInTx(ctx context.Context, tx *sql.Tx, id int64, body string) error {
	query, args, err := h.q.selectEntity(id)
	if err != nil {
		return err
	}

	entity, err := scanEntity(tx.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: id %d", ErrEntityNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	switch {
	case entity.Kind == models.KindSnapshot:
		return fmt.Errorf("%w: id %d", ErrSnapshotImmutable, id)
	case entity.IsCanonical():
		if err = h.snapshotInTx(ctx, tx, entity); err != nil {
			return err
		}
	}

	query, args, err = h.q.updateBody(id, body)
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// snapshotInTx stores a copy of entity, options included, as its newest snapshot.
func (h *sqlHost) snapshotInTx(ctx context.Context, tx *sql.Tx, entity models.Entity) error {
	query, args, err := h.q.insertEntity(models.KindSnapshot, entity.ID, entity.Type, entity.Body, h.now())
	if err != nil {
		return err
	}

	var snapshotID int64
	if err = tx.QueryRowContext(ctx, query, args...).Scan(&snapshotID); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	query, args, err = h.q.selectOptions(entity.ID)
	if err != nil {
		return err
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	type option struct {
		key   string
		value []byte
	}
	var options []option
	for rows.Next() {
		var opt option
		if err = rows.Scan(&opt.key, &opt.value); err != nil {
			rows.Close()
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		options = append(options, opt)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	rows.Close()

	for _, opt := range options {
		query, args, err = h.q.insertOption(snapshotID, opt.key, opt.value)
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	logger.FromContext(ctx).Debug().
		Str("func", "sqlHost.snapshotInTx").
		Int64("entity_id", entity.ID).
		Int64("snapshot_id", snapshotID).
		Int("options", len(options)).
		Msg("stored backup snapshot")

	return nil
}

// DeleteSnapshot implements [HostStore].
func (h *sqlHost) DeleteSnapshot(ctx context.Context, id int64) error {
	err := h.db.withRetry(ctx, "sqlHost.DeleteSnapshot", func() error {
		return h.deleteSnapshotTx(ctx, id)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sqlHost.DeleteSnapshot").
			Int64("snapshot_id", id).
			Str("pg_code", postgresCode(err)).
			Msg("failed to delete snapshot")
		return err
	}

	return nil
}

func (h *sqlHost) deleteSnapshotTx(ctx context.Context, id int64) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	query, args, err := h.q.deleteSnapshot(id)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		_ = tx.Rollback()
		return fmt.Errorf("%w: id %d", ErrSnapshotNotFound, id)
	}

	query, args, err = h.q.deleteOptions(id)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// CreateEntity implements [HostAdmin].
func (h *sqlHost) CreateEntity(ctx context.Context, entityType, body string) (models.Entity, error) {
	return h.insert(ctx, models.KindCanonical, 0, entityType, codec.UnslashN(body, h.unslashRounds))
}

// CreateAutosave implements [HostAdmin].
func (h *sqlHost) CreateAutosave(ctx context.Context, canonicalID int64, body string) (models.Entity, error) {
	parent, err := h.GetEntity(ctx, canonicalID)
	if err != nil {
		return models.Entity{}, err
	}
	if !parent.IsCanonical() {
		return models.Entity{}, fmt.Errorf("%w: id %d", ErrInvalidParent, canonicalID)
	}

	return h.insert(ctx, models.KindAutosave, canonicalID, parent.Type, codec.UnslashN(body, h.unslashRounds))
}

func (h *sqlHost) insert(ctx context.Context, kind models.EntityKind, parentID int64, entityType, body string) (models.Entity, error) {
	log := logger.FromContext(ctx)

	createdAt := h.now()
	query, args, err := h.q.insertEntity(kind, parentID, entityType, body, createdAt)
	if err != nil {
		log.Err(err).Str("func", "sqlHost.insert").Msg("failed to create query")
		return models.Entity{}, err
	}

	entity := models.Entity{
		Kind:      kind,
		ParentID:  parentID,
		Type:      entityType,
		Body:      body,
		CreatedAt: &createdAt,
	}

	err = h.db.withRetry(ctx, "sqlHost.insert", func() error {
		return h.db.QueryRowContext(ctx, query, args...).Scan(&entity.ID)
	})
	if err != nil {
		log.Err(err).
			Str("func", "sqlHost.insert").
			Str("kind", string(kind)).
			Str("pg_code", postgresCode(err)).
			Msg("failed to insert entity")
		return models.Entity{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return entity, nil
}

// SetOption implements [HostAdmin].
func (h *sqlHost) SetOption(ctx context.Context, id int64, key string, value []byte, changedSubkeys ...string) error {
	log := logger.FromContext(ctx)

	if _, err := h.GetEntity(ctx, id); err != nil {
		return err
	}

	query, args, err := h.q.upsertOption(id, key, value)
	if err != nil {
		log.Err(err).Str("func", "sqlHost.SetOption").Int64("entity_id", id).Msg("failed to create query")
		return err
	}

	err = h.db.withRetry(ctx, "sqlHost.SetOption", func() error {
		_, execErr := h.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "sqlHost.SetOption").
			Int64("entity_id", id).
			Str("option_key", key).
			Str("pg_code", postgresCode(err)).
			Msg("failed to store option")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return h.publish(ctx, models.OptionUpdatedEvent{EntityID: id, OptionKey: key, ChangedSubkeys: changedSubkeys})
}

// DeclareSupport implements [HostAdmin].
func (h *sqlHost) DeclareSupport(ctx context.Context, entityType, feature string) error {
	query, args, err := h.q.insertFeature(entityType, feature)
	if err != nil {
		return err
	}

	if _, err = h.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sqlHost.DeclareSupport").
			Str("entity_type", entityType).
			Str("feature", feature).
			Msg("failed to declare feature")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// ListCanonical implements [HostAdmin].
func (h *sqlHost) ListCanonical(ctx context.Context) ([]models.Entity, error) {
	log := logger.FromContext(ctx)

	query, args, err := h.q.selectCanonical()
	if err != nil {
		log.Err(err).Str("func", "sqlHost.ListCanonical").Msg("failed to create query")
		return nil, err
	}

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "sqlHost.ListCanonical").Msg("failed to query entities")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var entities []models.Entity
	for rows.Next() {
		entity, scanErr := scanEntity(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "sqlHost.ListCanonical").Msg("failed to scan entity row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		entities = append(entities, entity)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "sqlHost.ListCanonical").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entities, nil
}

// Close closes the underlying database handle.
func (h *sqlHost) Close() error {
	return h.db.Close()
}
