package services

import (
	"context"
	"fmt"
	"time"

	"prompt-relay-api/internal/models"
	"prompt-relay-api/internal/repositories"
)

// usageService implements UsageService over the audit store
type usageService struct {
	auditRepo repositories.RequestAuditRepository
}

// NewUsageService creates a new usage service
func NewUsageService(auditRepo repositories.RequestAuditRepository) UsageService {
	return &usageService{auditRepo: auditRepo}
}

// GetUsageSummary aggregates audit records created at or after the given time
func (s *usageService) GetUsageSummary(ctx context.Context, since time.Time) (*repositories.UsageSummary, error) {
	if s.auditRepo == nil {
		return nil, fmt.Errorf("request auditing is disabled")
	}
	return s.auditRepo.Summary(ctx, since)
}

// ListRecentRequests returns the most recent audit records, newest first
func (s *usageService) ListRecentRequests(ctx context.Context, limit int) ([]*models.RequestAudit, error) {
	if s.auditRepo == nil {
		return nil, fmt.Errorf("request auditing is disabled")
	}
	return s.auditRepo.ListRecent(ctx, limit)
}
