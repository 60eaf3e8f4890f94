package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"prompt-relay-api/internal/models"
	"prompt-relay-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// RequestAuditRepository implements the RequestAuditRepository interface for SQLite
type RequestAuditRepository struct {
	*BaseRepository
}

// NewRequestAuditRepository creates a new SQLite request audit repository
func NewRequestAuditRepository(db *sql.DB, logger *logrus.Logger) repositories.RequestAuditRepository {
	return &RequestAuditRepository{
		BaseRepository: NewBaseRepository(db, "request_audit", logger),
	}
}

// Create creates a new request audit record
func (r *RequestAuditRepository) Create(ctx context.Context, audit *models.RequestAudit) error {
	if err := audit.Validate(); err != nil {
		return repositories.ValidationError("request_audit", audit.ID, err)
	}

	query := `
		INSERT INTO request_audit (
			id, request_id, model, prompt_chars, status, status_code, error_message, latency_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.executeExec(ctx, "create", query,
		audit.ID,
		audit.RequestID,
		audit.Model,
		audit.PromptChars,
		audit.Status,
		audit.StatusCode,
		audit.ErrorMessage,
		audit.LatencyMs,
		audit.CreatedAt,
	)

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return repositories.DuplicateError("request_audit", "id", audit.ID)
		}
		return err
	}

	return nil
}

// GetByID retrieves a request audit record by ID
func (r *RequestAuditRepository) GetByID(ctx context.Context, id string) (*models.RequestAudit, error) {
	if err := r.validateID(id); err != nil {
		return nil, err
	}

	query := `
		SELECT id, request_id, model, prompt_chars, status, status_code, error_message, latency_ms, created_at
		FROM request_audit
		WHERE id = ?`

	row := r.executeQueryRow(ctx, "get_by_id", query, id)

	audit := &models.RequestAudit{}
	err := row.Scan(
		&audit.ID,
		&audit.RequestID,
		&audit.Model,
		&audit.PromptChars,
		&audit.Status,
		&audit.StatusCode,
		&audit.ErrorMessage,
		&audit.LatencyMs,
		&audit.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repositories.NotFoundError("request_audit", id)
		}
		return nil, repositories.NewRepositoryError("get_by_id", "request_audit", id, err)
	}

	return audit, nil
}

// ListRecent retrieves the most recent audit records, newest first
func (r *RequestAuditRepository) ListRecent(ctx context.Context, limit int) ([]*models.RequestAudit, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, request_id, model, prompt_chars, status, status_code, error_message, latency_ms, created_at
		FROM request_audit
		ORDER BY created_at DESC
		LIMIT ?`

	rows, err := r.executeQuery(ctx, "list_recent", query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var audits []*models.RequestAudit
	for rows.Next() {
		audit := &models.RequestAudit{}
		if err := rows.Scan(
			&audit.ID,
			&audit.RequestID,
			&audit.Model,
			&audit.PromptChars,
			&audit.Status,
			&audit.StatusCode,
			&audit.ErrorMessage,
			&audit.LatencyMs,
			&audit.CreatedAt,
		); err != nil {
			return nil, repositories.NewRepositoryError("list_recent", "request_audit", "", err)
		}
		audits = append(audits, audit)
	}

	if err := rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("list_recent", "request_audit", "", err)
	}

	return audits, nil
}

// Summary aggregates audit records created at or after the given time
func (r *RequestAuditRepository) Summary(ctx context.Context, since time.Time) (*repositories.UsageSummary, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'succeeded' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'rejected' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(latency_ms), 0),
			COALESCE(SUM(prompt_chars), 0)
		FROM request_audit
		WHERE created_at >= ?`

	row := r.executeQueryRow(ctx, "summary", query, since)

	summary := &repositories.UsageSummary{}
	if err := row.Scan(
		&summary.TotalRequests,
		&summary.Succeeded,
		&summary.Rejected,
		&summary.Failed,
		&summary.AvgLatencyMs,
		&summary.TotalPromptSize,
	); err != nil {
		return nil, repositories.NewRepositoryError("summary", "request_audit", "", err)
	}

	return summary, nil
}
