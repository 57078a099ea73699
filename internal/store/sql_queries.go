package store

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-page-builder/models"
)

const (
	entitiesTable     = "entities"
	optionsTable      = "entity_options"
	typeFeaturesTable = "type_features"

	upsertOptionSuffix  = "ON CONFLICT (entity_id, option_key) DO UPDATE SET value = excluded.value"
	insertFeatureSuffix = "ON CONFLICT DO NOTHING"
)

var entityColumns = []string{"id", "kind", "parent_id", "entity_type", "body", "created_at"}

// hostQueries builds every statement the SQL host runs, in the placeholder
// format of the underlying dialect.
type hostQueries struct {
	sb sq.StatementBuilderType
}

func (q hostQueries) selectEntity(id int64) (string, []any, error) {
	return wrapBuild(q.sb.Select(entityColumns...).
		From(entitiesTable).
		Where(sq.Eq{"id": id}).
		ToSql())
}

func (q hostQueries) selectParent(id int64, kind models.EntityKind) (string, []any, error) {
	return wrapBuild(q.sb.Select("parent_id").
		From(entitiesTable).
		Where(sq.Eq{"id": id, "kind": string(kind)}).
		ToSql())
}

func (q hostQueries) selectRecentSnapshots(canonicalID int64, limit int) (string, []any, error) {
	return wrapBuild(q.sb.Select("id", "parent_id", "created_at").
		From(entitiesTable).
		Where(sq.Eq{"kind": string(models.KindSnapshot), "parent_id": canonicalID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql())
}

func (q hostQueries) selectCanonical() (string, []any, error) {
	return wrapBuild(q.sb.Select(entityColumns...).
		From(entitiesTable).
		Where(sq.Eq{"kind": string(models.KindCanonical)}).
		OrderBy("id").
		ToSql())
}

func (q hostQueries) insertEntity(kind models.EntityKind, parentID int64, entityType, body string, createdAt time.Time) (string, []any, error) {
	parent := sql.NullInt64{Int64: parentID, Valid: parentID != 0}

	return wrapBuild(q.sb.Insert(entitiesTable).
		Columns("kind", "parent_id", "entity_type", "body", "created_at").
		Values(string(kind), parent, entityType, body, createdAt).
		Suffix("RETURNING id").
		ToSql())
}

func (q hostQueries) updateBody(id int64, body string) (string, []any, error) {
	return wrapBuild(q.sb.Update(entitiesTable).
		Set("body", body).
		Where(sq.Eq{"id": id}).
		ToSql())
}

func (q hostQueries) deleteSnapshot(id int64) (string, []any, error) {
	return wrapBuild(q.sb.Delete(entitiesTable).
		Where(sq.Eq{"id": id, "kind": string(models.KindSnapshot)}).
		ToSql())
}

func (q hostQueries) deleteOptions(entityID int64) (string, []any, error) {
	return wrapBuild(q.sb.Delete(optionsTable).
		Where(sq.Eq{"entity_id": entityID}).
		ToSql())
}

func (q hostQueries) selectOption(entityID int64, key string) (string, []any, error) {
	return wrapBuild(q.sb.Select("value").
		From(optionsTable).
		Where(sq.Eq{"entity_id": entityID, "option_key": key}).
		ToSql())
}

func (q hostQueries) selectOptions(entityID int64) (string, []any, error) {
	return wrapBuild(q.sb.Select("option_key", "value").
		From(optionsTable).
		Where(sq.Eq{"entity_id": entityID}).
		OrderBy("option_key").
		ToSql())
}

func (q hostQueries) insertOption(entityID int64, key string, value []byte) (string, []any, error) {
	return wrapBuild(q.sb.Insert(optionsTable).
		Columns("entity_id", "option_key", "value").
		Values(entityID, key, string(value)).
		ToSql())
}

func (q hostQueries) upsertOption(entityID int64, key string, value []byte) (string, []any, error) {
	return wrapBuild(q.sb.Insert(optionsTable).
		Columns("entity_id", "option_key", "value").
		Values(entityID, key, string(value)).
		Suffix(upsertOptionSuffix).
		ToSql())
}

func (q hostQueries) countFeature(entityType, feature string) (string, []any, error) {
	return wrapBuild(q.sb.Select("COUNT(*)").
		From(typeFeaturesTable).
		Where(sq.Eq{"entity_type": entityType, "feature": feature}).
		ToSql())
}

func (q hostQueries) insertFeature(entityType, feature string) (string, []any, error) {
	return wrapBuild(q.sb.Insert(typeFeaturesTable).
		Columns("entity_type", "feature").
		Values(entityType, feature).
		Suffix(insertFeatureSuffix).
		ToSql())
}

func wrapBuild(query string, args []any, err error) (string, []any, error) {
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
