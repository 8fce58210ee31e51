package repository

import (
	"fmt"
	"strings"
)

// CompareOp is a comparison operator usable in a list filter.
type CompareOp string

const (
	OpEquals       CompareOp = "="
	OpNotEquals    CompareOp = "!="
	OpGreaterThan  CompareOp = ">"
	OpGreaterEqual CompareOp = ">="
	OpLessThan     CompareOp = "<"
	OpLessEqual    CompareOp = "<="
)

// Condition is one column comparison in a filter.
type Condition struct {
	Column string
	Op     CompareOp
	Value  any
}

// Filter narrows and orders a List or Count. The zero value matches all
// rows ordered by primary key. Column names are checked against the
// entity's descriptor before any SQL is built.
type Filter struct {
	Conditions []Condition
	OrderBy    string
	Descending bool
	Limit      int
	Offset     int
}

// Where adds an equality condition and returns the filter for chaining.
func (f Filter) Where(column string, value any) Filter {
	f.Conditions = append(f.Conditions, Condition{Column: column, Op: OpEquals, Value: value})
	return f
}

// WhereOp adds a condition with an explicit operator.
func (f Filter) WhereOp(column string, op CompareOp, value any) Filter {
	f.Conditions = append(f.Conditions, Condition{Column: column, Op: op, Value: value})
	return f
}

// valid reports whether op is one of the declared comparison operators.
func (op CompareOp) valid() bool {
	switch op {
	case OpEquals, OpNotEquals, OpGreaterThan, OpGreaterEqual, OpLessThan, OpLessEqual:
		return true
	}
	return false
}

// buildWhere renders the WHERE clause and its arguments. Columns and
// operators are both validated before any SQL is assembled; values only
// ever travel as bound parameters.
func buildWhere[E any](d Descriptor[E], f Filter) (string, []any, error) {
	if len(f.Conditions) == 0 {
		return "", nil, nil
	}

	var clauses []string
	var args []any
	for _, c := range f.Conditions {
		if !d.hasColumn(c.Column) {
			return "", nil, fmt.Errorf("unknown column %q for table %s", c.Column, d.Table)
		}
		op := c.Op
		if op == "" {
			op = OpEquals
		}
		if !op.valid() {
			return "", nil, fmt.Errorf("unsupported comparison operator %q", op)
		}
		clauses = append(clauses, fmt.Sprintf("%s %s $%d", c.Column, op, len(args)+1))
		args = append(args, c.Value)
	}

	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

// buildOrder renders the ORDER BY clause; ordering defaults to the primary
// key so one call always observes a stable order.
func buildOrder[E any](d Descriptor[E], f Filter) (string, error) {
	column := f.OrderBy
	if column == "" {
		column = d.Key
	}
	if !d.hasColumn(column) {
		return "", fmt.Errorf("unknown order column %q for table %s", column, d.Table)
	}

	clause := " ORDER BY " + column
	if f.Descending {
		clause += " DESC"
	}
	return clause, nil
}

// buildLimit renders LIMIT/OFFSET when set.
func buildLimit(f Filter) string {
	var clause string
	if f.Limit > 0 {
		clause += fmt.Sprintf(" LIMIT %d", f.Limit)
	}
	if f.Offset > 0 {
		clause += fmt.Sprintf(" OFFSET %d", f.Offset)
	}
	return clause
}
