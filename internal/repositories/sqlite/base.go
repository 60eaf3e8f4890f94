package sqlite

import (
	"context"
	"database/sql"
	"time"

	"prompt-relay-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// BaseRepository provides shared query execution with operation-scoped logging
type BaseRepository struct {
	db     *sql.DB
	table  string
	logger *logrus.Logger
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(db *sql.DB, table string, logger *logrus.Logger) *BaseRepository {
	if logger == nil {
		logger = logrus.New()
	}
	return &BaseRepository{db: db, table: table, logger: logger}
}

// validateID checks that an entity ID is usable in a query
func (r *BaseRepository) validateID(id string) error {
	if id == "" {
		return repositories.NewRepositoryError("validate", r.table, id, repositories.ErrInvalidID)
	}
	return nil
}

// executeExec runs a statement and logs the operation with timing
func (r *BaseRepository) executeExec(ctx context.Context, op, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := r.db.ExecContext(ctx, query, args...)
	r.logOperation(op, start, err)
	if err != nil {
		return nil, repositories.NewRepositoryError(op, r.table, "", err)
	}
	return result, nil
}

// executeQueryRow runs a single-row query and logs the operation with timing
func (r *BaseRepository) executeQueryRow(ctx context.Context, op, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := r.db.QueryRowContext(ctx, query, args...)
	r.logOperation(op, start, nil)
	return row
}

// executeQuery runs a multi-row query and logs the operation with timing
func (r *BaseRepository) executeQuery(ctx context.Context, op, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, args...)
	r.logOperation(op, start, err)
	if err != nil {
		return nil, repositories.NewRepositoryError(op, r.table, "", err)
	}
	return rows, nil
}

func (r *BaseRepository) logOperation(op string, start time.Time, err error) {
	fields := logrus.Fields{
		"table":      r.table,
		"operation":  op,
		"latency_ms": float64(time.Since(start).Nanoseconds()) / 1e6,
	}
	if err != nil {
		r.logger.WithFields(fields).WithError(err).Error("Database operation failed")
		return
	}
	r.logger.WithFields(fields).Debug("Database operation completed")
}
