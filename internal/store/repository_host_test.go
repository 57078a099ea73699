package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-page-builder/internal/config"
	"github.com/MKhiriev/go-page-builder/internal/logger"
	"github.com/MKhiriev/go-page-builder/models"
)

const (
	qSelectEntity   = "SELECT id, kind, parent_id, entity_type, body, created_at FROM entities WHERE id = ?"
	qSelectParent   = "SELECT parent_id FROM entities WHERE id = ? AND kind = ?"
	qRecent         = "SELECT id, parent_id, created_at FROM entities WHERE kind = ? AND parent_id = ? ORDER BY created_at DESC, id DESC LIMIT 3"
	qInsertEntity   = "INSERT INTO entities (kind,parent_id,entity_type,body,created_at) VALUES (?,?,?,?,?) RETURNING id"
	qSelectOptions  = "SELECT option_key, value FROM entity_options WHERE entity_id = ? ORDER BY option_key"
	qInsertOption   = "INSERT INTO entity_options (entity_id,option_key,value) VALUES (?,?,?)"
	qUpdateBody     = "UPDATE entities SET body = ? WHERE id = ?"
	qDeleteSnapshot = "DELETE FROM entities WHERE id = ? AND kind = ?"
	qDeleteOptions  = "DELETE FROM entity_options WHERE entity_id = ?"
	qSelectOption   = "SELECT value FROM entity_options WHERE entity_id = ? AND option_key = ?"
	qCountFeature   = "SELECT COUNT(*) FROM type_features WHERE entity_type = ? AND feature = ?"
)

func q(query string) string {
	return regexp.QuoteMeta(query)
}

func newTestSQLHost(t *testing.T, classifier ErrorClassificator) (*sqlHost, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db := newDB(conn, config.DriverSQLite, classifier, logger.Nop())
	db.retryDelay = 0

	host := NewSQLHost(db, 0).(*sqlHost)
	host.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	return host, mock
}

func entityRow(id int64, kind models.EntityKind, parentID any, entityType, body string) *sqlmock.Rows {
	return sqlmock.NewRows(entityColumns).
		AddRow(id, string(kind), parentID, entityType, body, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
}

type recordedEvents struct {
	events []models.OptionUpdatedEvent
}

func (r *recordedEvents) listener(_ context.Context, event models.OptionUpdatedEvent) error {
	r.events = append(r.events, event)
	return nil
}

func TestSQLHost_GetEntity(t *testing.T) {
	host, mock := newTestSQLHost(t, nil)

	mock.ExpectQuery(q(qSelectEntity)).
		WithArgs(int64(7)).
		WillReturnRows(entityRow(7, models.KindCanonical, nil, "page", "[section]"))

	entity, err := host.GetEntity(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), entity.ID)
	assert.Equal(t, models.KindCanonical, entity.Kind)
	assert.Zero(t, entity.ParentID)
	assert.Equal(t, "page", entity.Type)
	assert.Equal(t, "[section]", entity.Body)
	require.NotNil(t, entity.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLHost_GetEntity_NotFound(t *testing.T) {
	host, mock := newTestSQLHost(t, nil)

	mock.ExpectQuery(q(qSelectEntity)).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(entityColumns))

	_, err := host.GetEntity(context.Background(), 404)
	require.ErrorIs(t, err, ErrEntityNotFound)
}

func TestSQLHost_AutosaveOf(t *testing.T) {
	tests := []struct {
		name       string
		rows       *sqlmock.Rows
		queryErr   error
		wantParent int64
		wantOK     bool
		wantErr    error
	}{
		{
			name:       "autosave",
			rows:       sqlmock.NewRows([]string{"parent_id"}).AddRow(int64(3)),
			wantParent: 3,
			wantOK:     true,
		},
		{
			name: "not an autosave",
			rows: sqlmock.NewRows([]string{"parent_id"}),
		},
		{
			name:     "query error",
			queryErr: errors.New("connection reset"),
			wantErr:  ErrExecutingQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, mock := newTestSQLHost(t, nil)

			exp := mock.ExpectQuery(q(qSelectParent)).WithArgs(int64(5), "autosave")
			if tt.queryErr != nil {
				exp.WillReturnError(tt.queryErr)
			} else {
				exp.WillReturnRows(tt.rows)
			}

			parent, ok, err := host.AutosaveOf(context.Background(), 5)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantParent, parent)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestSQLHost_SnapshotOf(t *testing.T) {
	host, mock := newTestSQLHost(t, nil)

	mock.ExpectQuery(q(qSelectParent)).
		WithArgs(int64(12), "snapshot").
		WillReturnRows(sqlmock.NewRows([]string{"parent_id"}).AddRow(int64(7)))

	parent, ok, err := host.SnapshotOf(context.Background(), 12)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(7), parent)
}

func TestSQLHost_RecentSnapshots(t *testing.T) {
	host, mock := newTestSQLHost(t, nil)

	newest := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(q(qRecent)).
		WithArgs("snapshot", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "parent_id", "created_at"}).
			AddRow(int64(14), int64(7), newest).
			AddRow(int64(13), int64(7), newest.Add(-time.Hour)).
			AddRow(int64(12), int64(7), newest.Add(-2*time.Hour)))

	snapshots, err := host.RecentSnapshots(context.Background(), 7, 3)
	require.NoError(t, err)
	require.Len(t, snapshots, 3)
	assert.Equal(t, []int64{14, 13, 12}, []int64{snapshots[0].ID, snapshots[1].ID, snapshots[2].ID})
	assert.Equal(t, int64(7), snapshots[0].CanonicalID)
	assert.True(t, snapshots[0].CreatedAt.Equal(newest))
}

func TestSQLHost_RecentSnapshots_ZeroLimit(t *testing.T) {
	host, mock := newTestSQLHost(t, nil)

	snapshots, err := host.RecentSnapshots(context.Background(), 7, 0)
	require.NoError(t, err)
	assert.Empty(t, snapshots)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLHost_RecentSnapshots_ScanError(t *testing.T) {
	host, mock := newTestSQLHost(t, nil)

	mock.ExpectQuery(q(qRecent)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	_, err := host.RecentSnapshots(context.Background(), 7, 3)
	require.ErrorIs(t, err, ErrScanningRow)
}

func TestSQLHost_TypeSupports(t *testing.T) {
	host, mock := newTestSQLHost(t, nil)

	mock.ExpectQuery(q(qCountFeature)).
		WithArgs("page", "page-builder").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(q(qCountFeature)).
		WithArgs("attachment", "page-builder").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	ok, err := host.TypeSupports(context.Background(), "page", "page-builder")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = host.TypeSupports(context.Background(), "attachment", "page-builder")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLHost_GetOption(t *testing.T) {
	host, mock := newTestSQLHost(t, nil)

	mock.ExpectQuery(q(qSelectOption)).
		WithArgs(int64(7), "page-builder").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"builder_active":true}`))
	mock.ExpectQuery(q(qSelectOption)).
		WithArgs(int64(8), "page-builder").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	value, ok, err := host.GetOption(context.Background(), 7, "page-builder")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"builder_active":true}`, string(value))

	_, ok, err = host.GetOption(context.Background(), 8, "page-builder")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLHost_UpdateEntityBody_CanonicalStoresSnapshotAndFiresEvent(t *testing.T) {
	host, mock := newTestSQLHost(t, nil)
	events := &recordedEvents{}
	host.Subscribe(events.listener)

	mock.ExpectBegin()
	mock.ExpectQuery(q(qSelectEntity)).
		WithArgs(int64(7)).
		WillReturnRows(entityRow(7, models.KindCanonical, nil, "page", "old"))
	mock.ExpectQuery(q(qInsertEntity)).
		WithArgs("snapshot", int64(7), "page", "old", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(20)))
	mock.ExpectQuery(q(qSelectOptions)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"option_key", "value"}).
			AddRow("page-builder", `{"builder_active":true,"shortcode_notation":"[a]"}`).
			AddRow("seo", `{}`))
	mock.ExpectExec(q(qInsertOption)).
		WithArgs(int64(20), "page-builder", `{"builder_active":true,"shortcode_notation":"[a]"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q(qInsertOption)).
		WithArgs(int64(20), "seo", `{}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q(qUpdateBody)).
		WithArgs("new", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := host.UpdateEntityBody(context.Background(), 7, "new")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, events.events, 1)
	assert.Equal(t, models.OptionUpdatedEvent{EntityID: 7}, events.events[0])
}

func TestSQLHost_UpdateEntityBody_AutosaveHasNoSnapshot(t *testing.T) {
	host, mock := newTestSQLHost(t, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(q(qSelectEntity)).
		WithArgs(int64(9)).
		WillReturnRows(entityRow(9, models.KindAutosave, int64(7), "page", "draft"))
	mock.ExpectExec(q(qUpdateBody)).
		WithArgs("draft 2", int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, host.UpdateEntityBody(context.Background(), 9, "draft 2"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLHost_UpdateEntityBody_Unslashes(t *testing.T) {
	host, mock := newTestSQLHost(t, nil)
	host.unslashRounds = 2

	mock.ExpectBegin()
	mock.ExpectQuery(q(qSelectEntity)).
		WithArgs(int64(9)).
		WillReturnRows(entityRow(9, models.KindAutosave, int64(7), "page", ""))
	mock.ExpectExec(q(qUpdateBody)).
		WithArgs(`a\b`, int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, host.UpdateEntityBody(context.Background(), 9, `a\\\\\b`))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLHost_UpdateEntityBody_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "snapshot is immutable",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(q(qSelectEntity)).
					WillReturnRows(entityRow(12, models.KindSnapshot, int64(7), "page", ""))
				mock.ExpectRollback()
			},
			wantErr: ErrSnapshotImmutable,
		},
		{
			name: "entity not found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(q(qSelectEntity)).WillReturnRows(sqlmock.NewRows(entityColumns))
				mock.ExpectRollback()
			},
			wantErr: ErrEntityNotFound,
		},
		{
			name: "begin fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))
			},
			wantErr: ErrBeginningTransaction,
		},
		{
			name: "update fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(q(qSelectEntity)).
					WillReturnRows(entityRow(12, models.KindAutosave, int64(7), "page", ""))
				mock.ExpectExec(q(qUpdateBody)).WillReturnError(errors.New("disk full"))
				mock.ExpectRollback()
			},
			wantErr: ErrExecutingStatement,
		},
		{
			name: "commit fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(q(qSelectEntity)).
					WillReturnRows(entityRow(12, models.KindAutosave, int64(7), "page", ""))
				mock.ExpectExec(q(qUpdateBody)).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit().WillReturnError(errors.New("io"))
			},
			wantErr: ErrCommitingTransaction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, mock := newTestSQLHost(t, nil)
			events := &recordedEvents{}
			host.Subscribe(events.listener)

			tt.setup(mock)

			err := host.UpdateEntityBody(context.Background(), 12, "x")
			require.ErrorIs(t, err, tt.wantErr)
			require.NoError(t, mock.ExpectationsWereMet())
			assert.Empty(t, events.events, "failed writes fire no event")
		})
	}
}

func TestSQLHost_UpdateEntityBody_RetriesBusyDatabase(t *testing.T) {
	host, mock := newTestSQLHost(t, NewSQLiteErrorClassifier())

	mock.ExpectBegin()
	mock.ExpectQuery(q(qSelectEntity)).
		WillReturnRows(entityRow(9, models.KindAutosave, int64(7), "page", ""))
	mock.ExpectExec(q(qUpdateBody)).WillReturnError(sqlite3.Error{Code: sqlite3.ErrBusy})
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectQuery(q(qSelectEntity)).
		WillReturnRows(entityRow(9, models.KindAutosave, int64(7), "page", ""))
	mock.ExpectExec(q(qUpdateBody)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, host.UpdateEntityBody(context.Background(), 9, "body"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLHost_UpdateEntityBody_PropagatesListenerError(t *testing.T) {
	host, mock := newTestSQLHost(t, nil)
	listenerErr := errors.New("sync failed")
	host.Subscribe(func(context.Context, models.OptionUpdatedEvent) error { return listenerErr })

	mock.ExpectBegin()
	mock.ExpectQuery(q(qSelectEntity)).
		WillReturnRows(entityRow(9, models.KindAutosave, int64(7), "page", ""))
	mock.ExpectExec(q(qUpdateBody)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := host.UpdateEntityBody(context.Background(), 9, "body")
	require.ErrorIs(t, err, listenerErr)
	require.ErrorIs(t, err, ErrOptionListener)
	require.NoError(t, mock.ExpectationsWereMet(), "the update is committed before listeners run")
}

func TestSQLHost_DeleteSnapshot(t *testing.T) {
	host, mock := newTestSQLHost(t, nil)

	mock.ExpectBegin()
	mock.ExpectExec(q(qDeleteSnapshot)).
		WithArgs(int64(12), "snapshot").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q(qDeleteOptions)).
		WithArgs(int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, host.DeleteSnapshot(context.Background(), 12))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLHost_DeleteSnapshot_NotFound(t *testing.T) {
	host, mock := newTestSQLHost(t, nil)

	mock.ExpectBegin()
	mock.ExpectExec(q(qDeleteSnapshot)).
		WithArgs(int64(7), "snapshot").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := host.DeleteSnapshot(context.Background(), 7)
	require.ErrorIs(t, err, ErrSnapshotNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLHost_DeleteSnapshot_RetriesSerializationFailure(t *testing.T) {
	host, mock := newTestSQLHost(t, NewPostgresErrorClassifier())

	mock.ExpectBegin()
	mock.ExpectExec(q(qDeleteSnapshot)).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectExec(q(qDeleteSnapshot)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q(qDeleteOptions)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, host.DeleteSnapshot(context.Background(), 12))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLHost_DeleteSnapshot_GivesUpOnNonRetryable(t *testing.T) {
	host, mock := newTestSQLHost(t, NewPostgresErrorClassifier())

	mock.ExpectBegin()
	mock.ExpectExec(q(qDeleteSnapshot)).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})
	mock.ExpectRollback()

	err := host.DeleteSnapshot(context.Background(), 12)
	require.ErrorIs(t, err, ErrExecutingStatement)
	assert.Equal(t, pgerrcode.ForeignKeyViolation, postgresCode(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLHost_SetOption(t *testing.T) {
	host, mock := newTestSQLHost(t, nil)
	events := &recordedEvents{}
	host.Subscribe(events.listener)

	value := []byte(`{"builder_active":true}`)

	mock.ExpectQuery(q(qSelectEntity)).
		WithArgs(int64(7)).
		WillReturnRows(entityRow(7, models.KindCanonical, nil, "page", ""))
	mock.ExpectExec(q(qInsertOption + " " + upsertOptionSuffix)).
		WithArgs(int64(7), "page-builder", string(value)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := host.SetOption(context.Background(), 7, "page-builder", value, "builder_active")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, events.events, 1)
	assert.Equal(t, models.OptionUpdatedEvent{
		EntityID:       7,
		OptionKey:      "page-builder",
		ChangedSubkeys: []string{"builder_active"},
	}, events.events[0])
}

func TestSQLHost_SetOption_UnknownEntity(t *testing.T) {
	host, mock := newTestSQLHost(t, nil)

	mock.ExpectQuery(q(qSelectEntity)).WillReturnRows(sqlmock.NewRows(entityColumns))

	err := host.SetOption(context.Background(), 99, "k", []byte(`{}`))
	require.ErrorIs(t, err, ErrEntityNotFound)
}

func TestSQLHost_CreateEntity(t *testing.T) {
	host, mock := newTestSQLHost(t, nil)

	mock.ExpectQuery(q(qInsertEntity)).
		WithArgs("canonical", nil, "page", "hello", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	entity, err := host.CreateEntity(context.Background(), "page", "hello")
	require.NoError(t, err)
	assert.Equal(t, int64(1), entity.ID)
	assert.Equal(t, models.KindCanonical, entity.Kind)
	assert.Equal(t, "page", entity.Type)
}

func TestSQLHost_CreateAutosave_RejectsNonCanonicalParent(t *testing.T) {
	host, mock := newTestSQLHost(t, nil)

	mock.ExpectQuery(q(qSelectEntity)).
		WithArgs(int64(12)).
		WillReturnRows(entityRow(12, models.KindSnapshot, int64(7), "page", ""))

	_, err := host.CreateAutosave(context.Background(), 12, "draft")
	require.ErrorIs(t, err, ErrInvalidParent)
}

func TestSQLHost_ListCanonical(t *testing.T) {
	host, mock := newTestSQLHost(t, nil)

	rows := sqlmock.NewRows(entityColumns).
		AddRow(int64(1), "canonical", nil, "page", "a", time.Now()).
		AddRow(int64(4), "canonical", nil, "post", "b", time.Now())
	mock.ExpectQuery(q("SELECT id, kind, parent_id, entity_type, body, created_at FROM entities WHERE kind = ? ORDER BY id")).
		WithArgs("canonical").
		WillReturnRows(rows)

	entities, err := host.ListCanonical(context.Background())
	require.NoError(t, err)
	require.Len(t, entities, 2)
	assert.Equal(t, "post", entities[1].Type)
}
