package main

import (
	"flag"
	"fmt"
	"os"

	"prompt-relay-api/internal/config"
	"prompt-relay-api/internal/database"

	"github.com/sirupsen/logrus"
)

func main() {
	var (
		action = flag.String("action", "up", "Migration action: up, down, status")
		dbPath = flag.String("db", "", "Audit database path (defaults to DB_CONNECTION_STRING)")
	)
	flag.Parse()

	logger := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	path := *dbPath
	if path == "" {
		path = cfg.Database.ConnectionString
	}

	db, err := database.Open(&database.ConnectionConfig{
		DatabasePath: path,
		Logger:       logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("Failed to open database")
	}
	defer db.Close()

	manager := database.NewMigrationManager(db, logger)

	switch *action {
	case "up":
		// database.Open already ran pending migrations
		logger.Info("Migrations are up to date")
	case "down":
		if err := manager.RollbackMigration(); err != nil {
			logger.WithError(err).Fatal("Rollback failed")
		}
	case "status":
		version, dirty, err := manager.Version()
		if err != nil {
			logger.WithError(err).Fatal("Failed to read migration status")
		}
		fmt.Printf("version: %d dirty: %v\n", version, dirty)
	default:
		fmt.Fprintf(os.Stderr, "unknown action: %s\n", *action)
		os.Exit(1)
	}
}
