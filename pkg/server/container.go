package server

import (
	"database/sql"
	"fmt"

	"prompt-relay-api/internal/config"
	"prompt-relay-api/internal/database"
	"prompt-relay-api/internal/gemini"
	"prompt-relay-api/internal/middleware"
	"prompt-relay-api/internal/repositories"
	"prompt-relay-api/internal/repositories/sqlite"
	"prompt-relay-api/internal/services"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Container holds all application dependencies
type Container struct {
	Config            *config.Config
	Logger            *logrus.Logger
	GenerationService services.GenerationService
	UsageService      services.UsageService
	AuthService       *middleware.AuthService

	db *sql.DB
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	logger := logrus.New()
	if cfg.Environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	provider := gemini.NewClient(gemini.ClientConfig{
		BaseURL: cfg.Gemini.BaseURL,
		Model:   cfg.Gemini.Model,
		Timeout: cfg.Gemini.Timeout,
		Logger:  logger,
	})

	// Auditing is best-effort: a database failure degrades to no auditing
	// instead of taking the endpoint down.
	var db *sql.DB
	repos := &repositories.RepositoryContainer{}
	if cfg.Database.Enabled {
		opened, err := database.Open(&database.ConnectionConfig{
			DatabasePath: cfg.Database.ConnectionString,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
			Logger:       logger,
		})
		if err != nil {
			logger.WithError(err).Warn("Audit database unavailable, continuing without auditing")
		} else {
			db = opened
			repos.RequestAuditRepo = sqlite.NewRequestAuditRepository(db, logger)
		}
	}

	serviceContainer, err := services.NewServiceContainer(repos, &services.ServiceConfig{
		Provider: provider,
		// Read at call time so key absence stays a per-request error
		APIKey: func() string { return viper.GetString("GEMINI_API_KEY") },
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	var authService *middleware.AuthService
	if cfg.Auth.JWTSecret != "" {
		authService = middleware.NewAuthService(&middleware.AuthConfig{
			JWTSecret: cfg.Auth.JWTSecret,
		})
	}

	return &Container{
		Config:            cfg,
		Logger:            logger,
		GenerationService: serviceContainer.GenerationService,
		UsageService:      serviceContainer.UsageService,
		AuthService:       authService,
		db:                db,
	}, nil
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}
