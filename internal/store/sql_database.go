package store

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-page-builder/internal/config"
	"github.com/MKhiriev/go-page-builder/internal/logger"
	"github.com/MKhiriev/go-page-builder/migrations"
)

const (
	defaultMaxRetries = 3
	defaultRetryDelay = 50 * time.Millisecond
)

// DB is a database handle together with the dialect specific pieces the
// host needs: placeholder format, error classification and migrations.
type DB struct {
	*sql.DB
	dialect            string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger

	maxRetries int
	retryDelay time.Duration
}

func newDB(conn *sql.DB, dialect string, classifier ErrorClassificator, log *logger.Logger) *DB {
	var placeholder sq.PlaceholderFormat = sq.Question
	if dialect == config.DriverPostgres {
		placeholder = sq.Dollar
	}

	return &DB{
		DB:                 conn,
		dialect:            dialect,
		builder:            sq.StatementBuilder.PlaceholderFormat(placeholder),
		errorClassificator: classifier,
		logger:             log,
		maxRetries:         defaultMaxRetries,
		retryDelay:         defaultRetryDelay,
	}
}

// Migrate applies the embedded migrations of the handle's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// withRetry runs op until it succeeds, fails with an error the classifier
// does not consider retryable, or maxRetries attempts are used up.
func (db *DB) withRetry(ctx context.Context, funcName string, op func() error) error {
	var err error
	for attempt := 1; attempt <= db.maxRetries; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
		if db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}

		logger.FromContext(ctx).Warn().Err(err).
			Str("func", funcName).
			Int("attempt", attempt).
			Msg("retryable database error")

		if attempt == db.maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * db.retryDelay):
		}
	}

	return err
}
