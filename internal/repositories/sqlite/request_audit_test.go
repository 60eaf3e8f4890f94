package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"prompt-relay-api/internal/database"
	"prompt-relay-api/internal/models"
	"prompt-relay-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

func newTestRepository(t *testing.T) repositories.RequestAuditRepository {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	db, err := database.Open(&database.ConnectionConfig{
		DatabasePath: filepath.Join(t.TempDir(), "audit_test.db"),
		Logger:       logger,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewRequestAuditRepository(db, logger)
}

func succeededAudit(requestID string) *models.RequestAudit {
	audit := models.NewRequestAudit(requestID, "gemini-pro", 24)
	audit.MarkSucceeded(150 * time.Millisecond)
	return audit
}

func TestCreateAndGetByID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	audit := succeededAudit("req-1")
	if err := repo.Create(ctx, audit); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, audit.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.RequestID != "req-1" {
		t.Errorf("expected request id req-1, got %s", got.RequestID)
	}
	if got.Status != models.AuditStatusSucceeded {
		t.Errorf("expected succeeded status, got %s", got.Status)
	}
	if got.LatencyMs != 150 {
		t.Errorf("expected latency 150ms, got %d", got.LatencyMs)
	}
}

func TestCreateRejectsInvalidAudit(t *testing.T) {
	repo := newTestRepository(t)

	audit := succeededAudit("req-1")
	audit.Model = ""

	err := repo.Create(context.Background(), audit)
	if !errors.Is(err, repositories.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCreateDuplicateID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	audit := succeededAudit("req-1")
	if err := repo.Create(ctx, audit); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	err := repo.Create(ctx, audit)
	if !errors.Is(err, repositories.ErrDuplicateEntry) {
		t.Errorf("expected duplicate entry error, got %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetByID(context.Background(), "does-not-exist")
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestListRecentOrdersNewestFirst(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	old := succeededAudit("req-old")
	old.CreatedAt = time.Now().UTC().Add(-time.Hour)
	recent := succeededAudit("req-new")

	for _, audit := range []*models.RequestAudit{old, recent} {
		if err := repo.Create(ctx, audit); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	audits, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(audits) != 2 {
		t.Fatalf("expected 2 audits, got %d", len(audits))
	}
	if audits[0].RequestID != "req-new" {
		t.Errorf("expected newest audit first, got %s", audits[0].RequestID)
	}
}

func TestListRecentRespectsLimit(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := repo.Create(ctx, succeededAudit("req")); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	audits, err := repo.ListRecent(ctx, 3)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(audits) != 3 {
		t.Errorf("expected 3 audits, got %d", len(audits))
	}
}

func TestSummaryAggregates(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	ok := succeededAudit("req-ok")

	rejected := models.NewRequestAudit("req-rejected", "gemini-pro", 0)
	rejected.MarkRejected(400, "prompt is required")

	failed := models.NewRequestAudit("req-failed", "gemini-pro", 12)
	failed.MarkFailed(500, "provider error", 80*time.Millisecond)

	for _, audit := range []*models.RequestAudit{ok, rejected, failed} {
		if err := repo.Create(ctx, audit); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	summary, err := repo.Summary(ctx, time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	if summary.TotalRequests != 3 {
		t.Errorf("expected 3 total requests, got %d", summary.TotalRequests)
	}
	if summary.Succeeded != 1 || summary.Rejected != 1 || summary.Failed != 1 {
		t.Errorf("unexpected per-status counts: %+v", summary)
	}
	if summary.TotalPromptSize != 36 {
		t.Errorf("expected 36 total prompt chars, got %d", summary.TotalPromptSize)
	}
}

func TestSummaryExcludesOlderRecords(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	old := succeededAudit("req-old")
	old.CreatedAt = time.Now().UTC().Add(-48 * time.Hour)
	if err := repo.Create(ctx, old); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Create(ctx, succeededAudit("req-new")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	summary, err := repo.Summary(ctx, time.Now().UTC().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.TotalRequests != 1 {
		t.Errorf("expected only recent record counted, got %d", summary.TotalRequests)
	}
}
