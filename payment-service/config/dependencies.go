package config

import (
	"context"
	"fmt"

	"github.com/draftea/order-saga/payment-service/application"
	"github.com/draftea/order-saga/payment-service/handlers"
	"github.com/draftea/order-saga/payment-service/infrastructure"
	sharedinfra "github.com/draftea/order-saga/shared/infrastructure"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	PaymentRepository *infrastructure.PostgresPaymentRepository

	// Use Cases
	PaymentParticipant *application.PaymentParticipant
	Reaper             *saga.Reaper

	// Event Handlers
	PaymentEventHandlers *handlers.PaymentEventHandlers

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
	deps.PaymentRepository = infrastructure.NewPostgresPaymentRepository(db)

	// Initialize use cases
	deps.PaymentParticipant = application.NewPaymentParticipant(deps.PaymentRepository, config.Saga.MinAmount, logger)
	deps.Reaper = saga.NewReaper(deps.PaymentRepository, config.Saga.ReaperMaxAge, config.Saga.ReaperInterval, logger)

	// Initialize handlers
	deps.PaymentEventHandlers = handlers.NewPaymentEventHandlers(deps.PaymentParticipant, transport.Publisher, logger)

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
