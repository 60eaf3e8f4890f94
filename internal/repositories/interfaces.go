package repositories

import (
	"context"
	"time"

	"prompt-relay-api/internal/models"
)

// UsageSummary aggregates the audit store by outcome
type UsageSummary struct {
	TotalRequests   int64   `json:"total_requests"`
	Succeeded       int64   `json:"succeeded"`
	Rejected        int64   `json:"rejected"`
	Failed          int64   `json:"failed"`
	AvgLatencyMs    float64 `json:"avg_latency_ms"`
	TotalPromptSize int64   `json:"total_prompt_chars"`
}

// RequestAuditRepository defines persistence operations for generation request audits
type RequestAuditRepository interface {
	Create(ctx context.Context, audit *models.RequestAudit) error
	GetByID(ctx context.Context, id string) (*models.RequestAudit, error)
	ListRecent(ctx context.Context, limit int) ([]*models.RequestAudit, error)
	Summary(ctx context.Context, since time.Time) (*UsageSummary, error)
}

// RepositoryContainer holds all repository instances
type RepositoryContainer struct {
	RequestAuditRepo RequestAuditRepository
}
