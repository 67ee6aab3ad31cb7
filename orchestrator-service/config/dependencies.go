package config

import (
	"context"
	"fmt"

	"github.com/draftea/order-saga/orchestrator-service/application"
	"github.com/draftea/order-saga/orchestrator-service/handlers"
	"github.com/draftea/order-saga/orchestrator-service/infrastructure"
	sharedinfra "github.com/draftea/order-saga/shared/infrastructure"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	SnapshotRepository *infrastructure.PostgresSnapshotRepository

	// Use Cases
	Orchestrator *application.Orchestrator

	// HTTP Handlers
	SagaHandlers *handlers.SagaHandlers

	// Event Handlers
	SagaEventHandlers *handlers.SagaEventHandlers

	// Infrastructure
	Transport *sharedinfra.Transport
}

func BuildDependencies(ctx context.Context, config *Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{}

	// Initialize database
	db, err := sharedinfra.ConnectPostgres(ctx, config.GetDatabaseURL())
	if err != nil {
		return nil, err
	}
	deps.DB = db

	// Initialize broker
	transport, err := sharedinfra.NewTransport(ctx, config, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}
	deps.Transport = transport

	// Initialize repositories
	deps.SnapshotRepository = infrastructure.NewPostgresSnapshotRepository(db)

	// Initialize use cases
	deps.Orchestrator = application.NewOrchestrator(deps.SnapshotRepository, transport.Publisher, logger)

	// Initialize handlers
	deps.SagaHandlers = handlers.NewSagaHandlers(deps.Orchestrator)
	deps.SagaEventHandlers = handlers.NewSagaEventHandlers(deps.Orchestrator, logger)

	return deps, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	if d.Transport != nil {
		if err := d.Transport.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close transport: %w", err))
		}
	}

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing dependencies: %v", errs)
	}

	return nil
}
