package metrics

import (
	"database/sql"
	"time"
)

// DBMetrics provides methods to record database-related metrics.
type DBMetrics struct {
	registry *Registry
}

// DB returns the database metrics interface for the registry.
func (r *Registry) DB() *DBMetrics {
	return &DBMetrics{registry: r}
}

// Operation represents a database operation type.
type Operation string

const (
	OperationSelect Operation = "SELECT"
	OperationInsert Operation = "INSERT"
	OperationUpdate Operation = "UPDATE"
	OperationDelete Operation = "DELETE"
)

// QueryStatus represents the result status of a database query.
type QueryStatus string

const (
	QueryStatusSuccess QueryStatus = "success"
	QueryStatusError   QueryStatus = "error"
)

// RecordQuery records metrics for a database query.
func (d *DBMetrics) RecordQuery(operation Operation, table string, duration time.Duration, err error) {
	status := QueryStatusSuccess
	if err != nil {
		status = QueryStatusError
	}

	d.registry.dbQueriesTotal.WithLabelValues(
		string(operation),
		table,
		string(status),
	).Inc()

	d.registry.dbQueryDuration.WithLabelValues(
		string(operation),
		table,
	).Observe(duration.Seconds())
}

// UpdateFromDBStats updates connection gauges from sql.DBStats.
func (d *DBMetrics) UpdateFromDBStats(stats sql.DBStats) {
	d.registry.dbConnectionsActive.Set(float64(stats.InUse))
	d.registry.dbConnectionsIdle.Set(float64(stats.Idle))
	d.registry.dbConnectionsMax.Set(float64(stats.MaxOpenConnections))
}

// QueryTimer provides a convenient way to time database queries.
type QueryTimer struct {
	dbMetrics *DBMetrics
	operation Operation
	table     string
	start     time.Time
}

// NewQueryTimer creates a new query timer.
func (d *DBMetrics) NewQueryTimer(operation Operation, table string) *QueryTimer {
	return &QueryTimer{
		dbMetrics: d,
		operation: operation,
		table:     table,
		start:     time.Now(),
	}
}

// Done records the query duration and any error.
func (qt *QueryTimer) Done(err error) {
	qt.dbMetrics.RecordQuery(qt.operation, qt.table, time.Since(qt.start), err)
}
