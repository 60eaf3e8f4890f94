package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AuditStatus represents the outcome of a generation request
type AuditStatus string

const (
	AuditStatusSucceeded AuditStatus = "succeeded"
	AuditStatusRejected  AuditStatus = "rejected"
	AuditStatusFailed    AuditStatus = "failed"
)

// RequestAudit represents a generation request audit record
type RequestAudit struct {
	ID           string      `json:"id" db:"id" validate:"required,uuid"`
	RequestID    string      `json:"request_id" db:"request_id"`
	Model        string      `json:"model" db:"model" validate:"required"`
	PromptChars  int         `json:"prompt_chars" db:"prompt_chars"`
	Status       AuditStatus `json:"status" db:"status" validate:"required,oneof=succeeded rejected failed"`
	StatusCode   int         `json:"status_code" db:"status_code"`
	ErrorMessage *string     `json:"error_message,omitempty" db:"error_message"`
	LatencyMs    int64       `json:"latency_ms" db:"latency_ms"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
}

// NewRequestAudit creates a new audit record with generated ID and timestamp
func NewRequestAudit(requestID, model string, promptChars int) *RequestAudit {
	return &RequestAudit{
		ID:          uuid.New().String(),
		RequestID:   requestID,
		Model:       model,
		PromptChars: promptChars,
		Status:      AuditStatusFailed,
		CreatedAt:   time.Now().UTC(),
	}
}

// Validate validates the audit record data
func (ra *RequestAudit) Validate() error {
	if ra.ID == "" {
		return fmt.Errorf("audit ID is required")
	}

	if strings.TrimSpace(ra.Model) == "" {
		return fmt.Errorf("model is required")
	}

	if ra.Status != AuditStatusSucceeded && ra.Status != AuditStatusRejected && ra.Status != AuditStatusFailed {
		return fmt.Errorf("invalid audit status: %s", ra.Status)
	}

	if ra.PromptChars < 0 {
		return fmt.Errorf("prompt length cannot be negative")
	}

	if ra.LatencyMs < 0 {
		return fmt.Errorf("latency cannot be negative")
	}

	return nil
}

// MarkSucceeded records a successful generation
func (ra *RequestAudit) MarkSucceeded(latency time.Duration) {
	ra.Status = AuditStatusSucceeded
	ra.StatusCode = 200
	ra.ErrorMessage = nil
	ra.LatencyMs = latency.Milliseconds()
}

// MarkRejected records a request rejected before reaching the provider
func (ra *RequestAudit) MarkRejected(statusCode int, errorMessage string) {
	ra.Status = AuditStatusRejected
	ra.StatusCode = statusCode
	ra.SetErrorMessage(errorMessage)
}

// MarkFailed records a provider-side failure
func (ra *RequestAudit) MarkFailed(statusCode int, errorMessage string, latency time.Duration) {
	ra.Status = AuditStatusFailed
	ra.StatusCode = statusCode
	ra.SetErrorMessage(errorMessage)
	ra.LatencyMs = latency.Milliseconds()
}

// SetErrorMessage sets the error message, treating blanks as absent
func (ra *RequestAudit) SetErrorMessage(errorMessage string) {
	if strings.TrimSpace(errorMessage) == "" {
		ra.ErrorMessage = nil
	} else {
		ra.ErrorMessage = &errorMessage
	}
}

// GetErrorMessage returns the error message or empty string if nil
func (ra *RequestAudit) GetErrorMessage() string {
	if ra.ErrorMessage == nil {
		return ""
	}
	return *ra.ErrorMessage
}

// IsSucceeded returns true if the request completed with generated text
func (ra *RequestAudit) IsSucceeded() bool {
	return ra.Status == AuditStatusSucceeded
}
