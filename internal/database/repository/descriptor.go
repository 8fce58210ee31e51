package repository

import (
	"fmt"
	"strings"
)

// Descriptor is the static metadata binding a generic repository to one
// entity's schema shape: where rows live, which column is the key, which
// columns are persisted, and how they map onto the entity struct.
// Descriptors carry no behavior beyond mapping; they are defined once per
// entity, next to its concrete repository, and shared by every operation.
type Descriptor[E any] struct {
	// Table is the storage location of the entity's rows.
	Table string
	// Key is the engine-generated primary key column.
	Key string
	// Columns lists the persisted non-key columns, in query order.
	Columns []string
	// Fields returns scan destinations for the key followed by Columns,
	// in the same order.
	Fields func(e *E) []any
	// Values returns the write values for Columns, in the same order.
	Values func(e *E) []any
}

// selectList returns "key, col1, col2, ..." for SELECT statements.
func (d Descriptor[E]) selectList() string {
	return d.Key + ", " + strings.Join(d.Columns, ", ")
}

// placeholders returns "$1, $2, ..., $n". Numbered markers run on both
// lib/pq and modernc.org/sqlite, so query text is driver-independent.
func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(parts, ", ")
}

// hasColumn reports whether name is the key or a persisted column.
func (d Descriptor[E]) hasColumn(name string) bool {
	if name == d.Key {
		return true
	}
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// validate panics if the descriptor is structurally unusable. Descriptors
// are package-level values, so a broken one is a programming error caught
// at init time, not a runtime condition.
func (d Descriptor[E]) validate() {
	if d.Table == "" || d.Key == "" {
		panic(fmt.Sprintf("repository: descriptor for %q is missing table or key", d.Table))
	}
	if len(d.Columns) == 0 || d.Fields == nil || d.Values == nil {
		panic(fmt.Sprintf("repository: descriptor for %q has no column mapping", d.Table))
	}
}
