package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/heavyrent/rental-service/pkg/metrics"
)

const defaultStatsInterval = 15 * time.Second

// DBExecutor is the common surface of *sql.DB, *sql.Tx and the wrappers below.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor is an executor bound to an open transaction.
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

type txKey struct{}

// DB wraps *sql.DB and records query latency and pool statistics.
// A nil metrics collector turns recording off.
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// Wrap returns a DB without the pool statistics loop.
func Wrap(db *sql.DB, m *metrics.Metrics) *DB {
	return &DB{db: db, metrics: m}
}

// WrapWithDefault wraps db and starts a goroutine publishing pool statistics until stopCh is closed.
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, serviceName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m)
	if m != nil {
		go wrapped.collectStats(defaultStatsInterval, stopCh)
	}
	return wrapped
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer d.observe("exec", time.Now())
	return d.db.ExecContext(ctx, query, args...)
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	defer d.observe("query", time.Now())
	return d.db.QueryContext(ctx, query, args...)
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	defer d.observe("query_row", time.Now())
	return d.db.QueryRowContext(ctx, query, args...)
}

// BeginTx opens a transaction whose calls are measured the same way.
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &txWrapper{tx: tx, db: d}, nil
}

// PingContext checks the underlying connection.
func (d *DB) PingContext(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DB) observe(operation string, start time.Time) {
	if d.metrics == nil {
		return
	}
	d.metrics.DBQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (d *DB) outcome(outcome string) {
	if d.metrics == nil {
		return
	}
	d.metrics.DBTransactionsTotal.WithLabelValues(outcome).Inc()
}

func (d *DB) collectStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.metrics.DBOpenConnections.Set(float64(stats.OpenConnections))
			d.metrics.DBInUseConnections.Set(float64(stats.InUse))
			d.metrics.DBIdleConnections.Set(float64(stats.Idle))
			d.metrics.DBWaitCount.Set(float64(stats.WaitCount))
		}
	}
}

type txWrapper struct {
	tx *sql.Tx
	db *DB
}

func (t *txWrapper) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer t.db.observe("tx_exec", time.Now())
	return t.tx.ExecContext(ctx, query, args...)
}

func (t *txWrapper) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	defer t.db.observe("tx_query", time.Now())
	return t.tx.QueryContext(ctx, query, args...)
}

func (t *txWrapper) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	defer t.db.observe("tx_query_row", time.Now())
	return t.tx.QueryRowContext(ctx, query, args...)
}

func (t *txWrapper) Commit() error {
	err := t.tx.Commit()
	if err == nil {
		t.db.outcome("commit")
	}
	return err
}

func (t *txWrapper) Rollback() error {
	err := t.tx.Rollback()
	if err == nil {
		t.db.outcome("rollback")
	}
	return err
}

// WithTx stores tx in ctx so repositories pick it up through GetExecutor.
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext returns the transaction stored in ctx, if any.
func TxFromContext(ctx context.Context) (TxExecutor, bool) {
	tx, ok := ctx.Value(txKey{}).(TxExecutor)
	return tx, ok
}

// IsInTransaction reports whether ctx carries a transaction.
func IsInTransaction(ctx context.Context) bool {
	_, ok := TxFromContext(ctx)
	return ok
}

// GetExecutor returns the transaction from ctx or db when there is none.
func GetExecutor(ctx context.Context, db DBExecutor) DBExecutor {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return db
}
