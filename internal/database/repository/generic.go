package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/coursekit/coursekit/pkg/metrics"
)

// Repository implements CRUD once for every entity. It is bound at
// construction to a Querier (usually a session) and an entity descriptor;
// all SQL is derived from the descriptor, so the implementation never
// mentions a concrete table or column.
type Repository[E any] struct {
	db   Querier
	desc Descriptor[E]
}

// New creates a generic repository from a querier and a descriptor.
func New[E any](db Querier, desc Descriptor[E]) *Repository[E] {
	desc.validate()
	return &Repository[E]{db: db, desc: desc}
}

// WithQuerier returns a repository bound to a different querier, keeping
// the descriptor. Used by concrete repositories for transaction rebinding.
func (r *Repository[E]) WithQuerier(db Querier) *Repository[E] {
	return &Repository[E]{db: db, desc: r.desc}
}

// Descriptor returns the bound entity descriptor.
func (r *Repository[E]) Descriptor() Descriptor[E] {
	return r.desc
}

// GetByID retrieves the entity with the given key, or nil when no row
// matches. Absence is an expected outcome, not an error.
func (r *Repository[E]) GetByID(ctx context.Context, id int64) (*E, error) {
	timer := metrics.Global().DB().NewQueryTimer(metrics.OperationSelect, r.desc.Table)

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		r.desc.selectList(), r.desc.Table, r.desc.Key,
	)

	e := new(E)
	err := r.db.QueryRowContext(ctx, query, id).Scan(r.desc.Fields(e)...)
	if errors.Is(err, sql.ErrNoRows) {
		timer.Done(nil)
		return nil, nil
	}
	if err != nil {
		err = classifyError(r.desc.Table, err)
		timer.Done(err)
		return nil, err
	}
	timer.Done(nil)
	return e, nil
}

// List retrieves all entities matching the filter, in a stable order.
func (r *Repository[E]) List(ctx context.Context, f Filter) ([]*E, error) {
	timer := metrics.Global().DB().NewQueryTimer(metrics.OperationSelect, r.desc.Table)

	where, args, err := buildWhere(r.desc, f)
	if err != nil {
		timer.Done(err)
		return nil, err
	}
	order, err := buildOrder(r.desc, f)
	if err != nil {
		timer.Done(err)
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s", r.desc.selectList(), r.desc.Table) +
		where + order + buildLimit(f)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err = classifyError(r.desc.Table, err)
		timer.Done(err)
		return nil, err
	}
	defer rows.Close()

	var entities []*E
	for rows.Next() {
		e := new(E)
		if err := rows.Scan(r.desc.Fields(e)...); err != nil {
			timer.Done(err)
			return nil, err
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		err = classifyError(r.desc.Table, err)
		timer.Done(err)
		return nil, err
	}
	timer.Done(nil)
	return entities, nil
}

// Count returns the number of rows matching the filter.
func (r *Repository[E]) Count(ctx context.Context, f Filter) (int64, error) {
	timer := metrics.Global().DB().NewQueryTimer(metrics.OperationSelect, r.desc.Table)

	where, args, err := buildWhere(r.desc, f)
	if err != nil {
		timer.Done(err)
		return 0, err
	}

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", r.desc.Table) + where

	var n int64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&n)
	if err != nil {
		err = classifyError(r.desc.Table, err)
		timer.Done(err)
		return 0, err
	}
	timer.Done(nil)
	return n, nil
}

// Create inserts a new row from the entity's persisted attributes and sets
// the engine-generated key on the entity. Constraint violations surface as
// ValidationError and nothing is persisted.
func (r *Repository[E]) Create(ctx context.Context, e *E) error {
	timer := metrics.Global().DB().NewQueryTimer(metrics.OperationInsert, r.desc.Table)

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		r.desc.Table,
		strings.Join(r.desc.Columns, ", "),
		placeholders(len(r.desc.Columns)),
		r.desc.Key,
	)

	keyDest := r.desc.Fields(e)[0]
	err := r.db.QueryRowContext(ctx, query, r.desc.Values(e)...).Scan(keyDest)
	if err != nil {
		err = classifyError(r.desc.Table, err)
		timer.Done(err)
		return err
	}
	timer.Done(nil)
	return nil
}

// Update applies partial or full attribute changes to the row identified by
// id and returns the stored entity. Returns ErrNotFound when no such row
// exists. Reapplying the same changes leaves the row unchanged.
func (r *Repository[E]) Update(ctx context.Context, id int64, changes map[string]any) (*E, error) {
	for column := range changes {
		if column == r.desc.Key {
			return nil, fmt.Errorf("cannot update key column %q of table %s", column, r.desc.Table)
		}
		if !r.desc.hasColumn(column) {
			return nil, fmt.Errorf("unknown column %q for table %s", column, r.desc.Table)
		}
	}

	if len(changes) > 0 {
		timer := metrics.Global().DB().NewQueryTimer(metrics.OperationUpdate, r.desc.Table)

		// Iterate descriptor order so the generated SQL is deterministic.
		var sets []string
		var args []any
		for _, column := range r.desc.Columns {
			if value, ok := changes[column]; ok {
				args = append(args, value)
				sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
			}
		}
		args = append(args, id)

		query := fmt.Sprintf(
			"UPDATE %s SET %s WHERE %s = $%d",
			r.desc.Table, strings.Join(sets, ", "), r.desc.Key, len(args),
		)

		result, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			err = classifyError(r.desc.Table, err)
			timer.Done(err)
			return nil, err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			timer.Done(err)
			return nil, err
		}
		if affected == 0 {
			timer.Done(ErrNotFound)
			return nil, ErrNotFound
		}
		timer.Done(nil)
	}

	e, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNotFound
	}
	return e, nil
}

// Delete removes the row identified by id and reports whether a row was
// actually removed. Cascading effects on dependent rows are the storage
// engine's declared constraints, not reimplemented here.
func (r *Repository[E]) Delete(ctx context.Context, id int64) (bool, error) {
	timer := metrics.Global().DB().NewQueryTimer(metrics.OperationDelete, r.desc.Table)

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", r.desc.Table, r.desc.Key)
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		err = classifyError(r.desc.Table, err)
		timer.Done(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		timer.Done(err)
		return false, err
	}
	timer.Done(nil)
	return affected > 0, nil
}

// Exists reports whether a row with the given key exists, without
// materializing the entity.
func (r *Repository[E]) Exists(ctx context.Context, id int64) (bool, error) {
	timer := metrics.Global().DB().NewQueryTimer(metrics.OperationSelect, r.desc.Table)

	query := fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
		r.desc.Table, r.desc.Key,
	)

	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	if err != nil {
		err = classifyError(r.desc.Table, err)
		timer.Done(err)
		return false, err
	}
	timer.Done(nil)
	return exists, nil
}
