package repository

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrNotFound is returned when a mutation targets a record that does not
// exist. Reads represent absence as a nil result instead.
var ErrNotFound = errors.New("record not found")

// ConstraintKind classifies the schema constraint a write violated.
type ConstraintKind string

const (
	ConstraintUnique     ConstraintKind = "unique"
	ConstraintForeignKey ConstraintKind = "foreign_key"
	ConstraintNotNull    ConstraintKind = "not_null"
	ConstraintOther      ConstraintKind = "constraint"
)

// ValidationError reports a write rejected by a uniqueness, not-null, or
// foreign-key constraint. The driver error is preserved for Unwrap.
type ValidationError struct {
	Kind  ConstraintKind
	Table string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("%s constraint violated on %s: %v", e.Kind, e.Table, e.Err)
	}
	return fmt.Sprintf("%s constraint violated: %v", e.Kind, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ConnectionError reports that the underlying storage was unreachable or a
// transaction boundary failed.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("database connection failed during %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConnection reports whether err wraps a ConnectionError.
func IsConnection(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}

// classifyError normalizes driver errors into the repository taxonomy.
// Constraint violations become ValidationError, dead connections become
// ConnectionError, everything else passes through unmodified.
func classifyError(table string, err error) error {
	if err == nil {
		return nil
	}

	if kind, ok := constraintKind(err); ok {
		return &ValidationError{Kind: kind, Table: table, Err: err}
	}

	if errors.Is(err, driver.ErrBadConn) {
		return &ConnectionError{Op: "query", Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &ConnectionError{Op: "query", Err: err}
	}

	return err
}

// constraintKind maps driver-specific constraint errors. Both backends are
// handled: lib/pq reports SQLSTATE class 23, modernc.org/sqlite reports
// SQLITE_CONSTRAINT result codes.
func constraintKind(err error) (ConstraintKind, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return ConstraintUnique, true
		case "23503":
			return ConstraintForeignKey, true
		case "23502":
			return ConstraintNotNull, true
		}
		if pqErr.Code.Class() == "23" {
			return ConstraintOther, true
		}
		return "", false
	}

	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		switch sqErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return ConstraintUnique, true
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, sqlite3.SQLITE_CONSTRAINT_TRIGGER:
			return ConstraintForeignKey, true
		case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return ConstraintNotNull, true
		}
		if sqErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			return ConstraintOther, true
		}
		return "", false
	}

	return "", false
}
