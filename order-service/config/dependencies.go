package config

import (
	"context"
	"fmt"

	"github.com/draftea/order-saga/order-service/application"
	"github.com/draftea/order-saga/order-service/handlers"
	"github.com/draftea/order-saga/order-service/infrastructure"
	sharedinfra "github.com/draftea/order-saga/shared/infrastructure"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	OrderRepository     *infrastructure.PostgresOrderRepository
	SagaEventRepository *infrastructure.PostgresSagaEventRepository

	// Use Cases
	CreateOrder  *application.CreateOrder
	GetOrder     *application.GetOrder
	GetEvents    *application.GetEvents
	NotifyEnding *application.NotifyEnding

	// HTTP Handlers
	OrderHandlers *handlers.OrderHandlers

	// Event Handlers
	OrderEventHandlers *handlers.OrderEventHandlers

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
	deps.OrderRepository = infrastructure.NewPostgresOrderRepository(db)
	deps.SagaEventRepository = infrastructure.NewPostgresSagaEventRepository(db)

	// Initialize use cases
	deps.CreateOrder = application.NewCreateOrder(deps.OrderRepository, transport.Publisher, logger)
	deps.GetOrder = application.NewGetOrder(deps.OrderRepository)
	deps.GetEvents = application.NewGetEvents(deps.SagaEventRepository)
	deps.NotifyEnding = application.NewNotifyEnding(deps.SagaEventRepository, logger)

	// Initialize handlers
	deps.OrderHandlers = handlers.NewOrderHandlers(deps.CreateOrder, deps.GetOrder, deps.GetEvents)
	deps.OrderEventHandlers = handlers.NewOrderEventHandlers(deps.NotifyEnding, logger)

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
