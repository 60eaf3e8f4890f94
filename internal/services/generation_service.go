package services

import (
	"context"
	"strings"
	"time"

	"prompt-relay-api/internal/models"
	"prompt-relay-api/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// generationService implements GenerationService
type generationService struct {
	provider  TextGenerator
	apiKey    func() string
	auditRepo repositories.RequestAuditRepository
	validator *validator.Validate
	logger    *logrus.Logger
}

// NewGenerationService creates a new generation service. apiKey is evaluated
// at call time so a key added or rotated via environment takes effect without
// rebuilding the service; auditRepo may be nil to disable auditing.
func NewGenerationService(provider TextGenerator, apiKey func() string, auditRepo repositories.RequestAuditRepository, logger *logrus.Logger) GenerationService {
	if logger == nil {
		logger = logrus.New()
	}
	return &generationService{
		provider:  provider,
		apiKey:    apiKey,
		auditRepo: auditRepo,
		validator: validator.New(),
		logger:    logger,
	}
}

// GenerateContent validates the request, checks the credential, performs one
// synchronous provider call and wraps the result. Errors come back typed so
// the handler boundary can map them to a status+body pair.
func (s *generationService) GenerateContent(ctx context.Context, requestID string, req *models.GenerateRequest) (*models.GenerateResponse, error) {
	audit := models.NewRequestAudit(requestID, s.provider.Model(), len(req.Prompt))

	if err := s.validator.Struct(req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		s.recordRejection(ctx, audit, ErrPromptRequired)
		return nil, ErrPromptRequired
	}

	apiKey := s.apiKey()
	if apiKey == "" {
		s.logger.WithField("request_id", requestID).Error("Provider API key is not configured")
		s.recordRejection(ctx, audit, ErrMissingAPIKey)
		return nil, ErrMissingAPIKey
	}

	start := time.Now()
	text, err := s.provider.GenerateText(ctx, apiKey, req.Prompt)
	latency := time.Since(start)

	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"model":      s.provider.Model(),
			"latency_ms": latency.Milliseconds(),
		}).WithError(err).Error("Provider call failed")

		statusCode, _ := MapError(err)
		audit.MarkFailed(statusCode, err.Error(), latency)
		s.recordAudit(ctx, audit)
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		s.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"model":      s.provider.Model(),
		}).Error("Provider returned empty text")

		statusCode, _ := MapError(ErrEmptyResult)
		audit.MarkFailed(statusCode, ErrEmptyResult.Error(), latency)
		s.recordAudit(ctx, audit)
		return nil, ErrEmptyResult
	}

	audit.MarkSucceeded(latency)
	s.recordAudit(ctx, audit)

	return models.NewGenerateResponse(text), nil
}

// recordRejection audits a request rejected before reaching the provider
func (s *generationService) recordRejection(ctx context.Context, audit *models.RequestAudit, cause error) {
	statusCode, _ := MapError(cause)
	audit.MarkRejected(statusCode, cause.Error())
	s.recordAudit(ctx, audit)
}

// recordAudit persists an audit record best-effort; failures are logged and
// never affect the response
func (s *generationService) recordAudit(ctx context.Context, audit *models.RequestAudit) {
	if s.auditRepo == nil {
		return
	}
	if err := s.auditRepo.Create(ctx, audit); err != nil {
		s.logger.WithError(err).Warn("Failed to record request audit")
	}
}
