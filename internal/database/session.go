package database

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/coursekit/coursekit/internal/database/repository"
)

// ErrSessionClosed is returned when an operation is attempted on a closed session.
var ErrSessionClosed = errors.New("session is closed")

// ErrNoTransaction is returned by Commit and Rollback when no transaction is open.
var ErrNoTransaction = errors.New("no open transaction")

// Session owns one database connection and a transaction boundary scoped to
// one logical operation or request. It satisfies repository.Querier, routing
// statements through the open transaction when one exists, so every
// repository bound to the session participates in the same unit of work.
//
// A session must be used by a single logical caller; it provides no internal
// locking.
type Session struct {
	conn   *sql.Conn
	tx     *sql.Tx
	id     string
	log    *slog.Logger
	closed bool
}

// OpenSession checks a connection out of the pool and wraps it in a Session.
// The caller must Close the session to return the connection.
func OpenSession(ctx context.Context, db *sql.DB) (*Session, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, &repository.ConnectionError{Op: "open", Err: err}
	}

	id := uuid.New().String()
	log := slog.Default().With("session_id", id)
	log.Debug("session opened")

	return &Session{conn: conn, id: id, log: log}, nil
}

// ID returns the session's correlation identifier.
func (s *Session) ID() string {
	return s.id
}

// InTransaction reports whether a transaction is currently open.
func (s *Session) InTransaction() bool {
	return s.tx != nil
}

// Begin opens a transaction on the session's connection. Repository writes
// made after Begin are invisible to other sessions until Commit.
func (s *Session) Begin(ctx context.Context) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.tx != nil {
		return errors.New("transaction already open")
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return &repository.ConnectionError{Op: "begin", Err: err}
	}
	s.tx = tx
	s.log.Debug("transaction started")
	return nil
}

// Commit persists all writes made through the session since Begin.
func (s *Session) Commit() error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.tx == nil {
		return ErrNoTransaction
	}

	err := s.tx.Commit()
	s.tx = nil
	if err != nil {
		return &repository.ConnectionError{Op: "commit", Err: err}
	}
	s.log.Debug("transaction committed")
	return nil
}

// Rollback discards all writes made through the session since Begin.
func (s *Session) Rollback() error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.tx == nil {
		return ErrNoTransaction
	}

	err := s.tx.Rollback()
	s.tx = nil
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		return &repository.ConnectionError{Op: "rollback", Err: err}
	}
	s.log.Debug("transaction rolled back")
	return nil
}

// Close releases the underlying connection unconditionally. An open
// transaction is rolled back first. Close is safe to call more than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if s.tx != nil {
		// Best effort: the connection is released either way.
		_ = s.tx.Rollback()
		s.tx = nil
	}

	err := s.conn.Close()
	s.log.Debug("session closed")
	if err != nil && !errors.Is(err, sql.ErrConnDone) {
		return &repository.ConnectionError{Op: "close", Err: err}
	}
	return nil
}

// querier returns the active statement target: the open transaction if one
// exists, else the bare connection.
func (s *Session) querier() repository.Querier {
	if s.tx != nil {
		return s.tx
	}
	return s.conn
}

// ExecContext implements repository.Querier.
func (s *Session) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	return s.querier().ExecContext(ctx, query, args...)
}

// QueryContext implements repository.Querier.
func (s *Session) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	return s.querier().QueryContext(ctx, query, args...)
}

// QueryRowContext implements repository.Querier.
func (s *Session) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return s.querier().QueryRowContext(ctx, query, args...)
}
