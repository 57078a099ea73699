package store

import "errors"

// Sentinel errors returned by host methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEntityNotFound is returned when no entity has the requested id.
	ErrEntityNotFound = errors.New("entity was not found")

	// ErrSnapshotNotFound is returned when a snapshot to delete does not exist.
	ErrSnapshotNotFound = errors.New("snapshot was not found")

	// ErrSnapshotImmutable is returned when a caller tries to change the body of a snapshot.
	ErrSnapshotImmutable = errors.New("snapshots are immutable")

	// ErrInvalidParent is returned when an autosave is attached to a non canonical entity.
	ErrInvalidParent = errors.New("parent is not a canonical entity")

	// ErrUnknownDriver is returned by NewHost for an unsupported driver name.
	ErrUnknownDriver = errors.New("unknown storage driver")

	// ErrOptionListener wraps failures of option-updated listeners. The write
	// that fired the event has already been committed when it is returned.
	ErrOptionListener = errors.New("option listener failed")
)

// Low-level database operation errors. These are returned (or wrapped) by
// host methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction fails.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a result set fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
