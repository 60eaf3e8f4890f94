package services

import (
	"fmt"

	"prompt-relay-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	GenerationService GenerationService
	UsageService      UsageService
}

// ServiceConfig holds configuration for services
type ServiceConfig struct {
	Provider TextGenerator
	APIKey   func() string
	Logger   *logrus.Logger
}

// NewServiceContainer creates a new service container with all services.
// repos.RequestAuditRepo may be nil when auditing is disabled.
func NewServiceContainer(repos *repositories.RepositoryContainer, config *ServiceConfig) (*ServiceContainer, error) {
	if config == nil || config.Provider == nil {
		return nil, fmt.Errorf("a generation provider is required")
	}
	if config.APIKey == nil {
		return nil, fmt.Errorf("an API key source is required")
	}

	var auditRepo repositories.RequestAuditRepository
	if repos != nil {
		auditRepo = repos.RequestAuditRepo
	}

	return &ServiceContainer{
		GenerationService: NewGenerationService(config.Provider, config.APIKey, auditRepo, config.Logger),
		UsageService:      NewUsageService(auditRepo),
	}, nil
}
