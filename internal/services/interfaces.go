package services

import (
	"context"
	"time"

	"prompt-relay-api/internal/models"
	"prompt-relay-api/internal/repositories"
)

// TextGenerator defines the outbound generation provider contract
type TextGenerator interface {
	// GenerateText sends the prompt to the provider and returns the generated
	// text. The API key travels per call so credential problems stay scoped
	// to the request.
	GenerateText(ctx context.Context, apiKey, prompt string) (string, error)

	// Model returns the provider model identifier, used for auditing
	Model() string
}

// GenerationService defines the interface for the prompt relay business logic
type GenerationService interface {
	// GenerateContent validates the request, invokes the provider once and
	// returns the generated text wrapped in the frontend response shape.
	GenerateContent(ctx context.Context, requestID string, req *models.GenerateRequest) (*models.GenerateResponse, error)
}

// UsageService defines the interface for audit reporting operations
type UsageService interface {
	GetUsageSummary(ctx context.Context, since time.Time) (*repositories.UsageSummary, error)
	ListRecentRequests(ctx context.Context, limit int) ([]*models.RequestAudit, error)
}
