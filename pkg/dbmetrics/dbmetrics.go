package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// DB обертка над *sql.DB, которая считает длительность и ошибки запросов
type DB struct {
	*sql.DB

	queryDuration *prometheus.HistogramVec
	queryErrors   *prometheus.CounterVec
}

// Wrap оборачивает соединение и регистрирует метрики запросов и пула соединений в reg
func Wrap(db *sql.DB, dbName, serviceName string, reg prometheus.Registerer) *DB {
	constLabels := prometheus.Labels{"service": serviceName}

	w := &DB{
		DB: db,
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		queryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),
	}

	reg.MustRegister(
		w.queryDuration,
		w.queryErrors,
		collectors.NewDBStatsCollector(db, dbName),
	)

	return w
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.DB.ExecContext(ctx, query, args...)
	d.observe(query, start, err)
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.DB.QueryContext(ctx, query, args...)
	d.observe(query, start, err)
	return rows, err
}

// QueryRowContext ошибка *sql.Row узнается только при Scan, поэтому здесь учитывается лишь время
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.DB.QueryRowContext(ctx, query, args...)
	d.observe(query, start, row.Err())
	return row
}

func (d *DB) observe(query string, start time.Time, err error) {
	op := Operation(query)
	d.queryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil && err != sql.ErrNoRows {
		d.queryErrors.WithLabelValues(op).Inc()
	}
}

// Operation возвращает SQL-глагол запроса в нижнем регистре (select, insert, ...)
func Operation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
