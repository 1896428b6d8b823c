package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/verdupulse/config"
	"github.com/guttosm/verdupulse/internal/api"
	"github.com/guttosm/verdupulse/internal/service"
	"github.com/guttosm/verdupulse/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Resolves the reporting timezone.
//   - Initializes the repository layer (products, customers, orders, expenses).
//   - Creates the service and HTTP handler layers.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	// Connect to PostgreSQL
	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	// Reporting timezone; date windows are resolved in this zone
	loc, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to load reporting timezone %q: %w", cfg.Report.Timezone, err)
	}

	// Repository layer (responsible for DB access)
	products := storage.NewProductRepository(db)
	customers := storage.NewCustomerRepository(db)
	orders := storage.NewOrderRepository(db)
	expenses := storage.NewExpenseRepository(db)

	// Service layer (business logic)
	reportSvc := service.NewReportService(orders, expenses, customers, loc, cfg.Report.TopProducts)
	orderSvc := service.NewOrderService(orders, products, customers)
	catalogSvc := service.NewCatalogService(products)
	customerSvc := service.NewCustomerService(customers)
	expenseSvc := service.NewExpenseService(expenses)

	// HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(reportSvc, orderSvc, catalogSvc, customerSvc, expenseSvc, loc)

	// Setup Gin router with routes
	router := api.NewRouter(handler)

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(db.Ping)
	healthHandler.Register(router)

	// Cleanup resources on shutdown
	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}
