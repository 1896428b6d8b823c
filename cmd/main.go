package main

//
//  @title           verdupulse API
//  @version         1.0
//  @description     Produce delivery management service: orders, catalog, expenses and financial reports.
//  @termsOfService  https://github.com/guttosm/verdupulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/verdupulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        reports
//  @tag.description Financial summaries and dashboard KPIs
//
//  @tag.name        orders
//  @tag.description Order intake and lifecycle
//
//  @tag.name        catalog
//  @tag.description Product catalog management
//
//  @tag.name        customers
//  @tag.description Customer roster management
//
//  @tag.name        expenses
//  @tag.description Expense tracking
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/verdupulse/config"
	_ "github.com/guttosm/verdupulse/docs" // swagger docs
	"github.com/guttosm/verdupulse/internal/app"
	"github.com/guttosm/verdupulse/internal/logger"
	"github.com/guttosm/verdupulse/internal/seeding"
	"github.com/guttosm/verdupulse/internal/storage"
)

// startServer builds the HTTP server and starts listening in a goroutine,
// so main can block on the shutdown signal instead.
//
// Parameters:
//   - router (http.Handler): The configured Gin engine.
//   - port (string): Listen port for incoming requests.
//
// Returns:
//   - *http.Server: The running server, for the shutdown path.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown blocks until SIGINT or SIGTERM, then drains in-flight
// requests and releases resources before the process exits.
//
// Parameters:
//   - ctx (context.Context): Parent context for the shutdown deadline.
//   - server (*http.Server): The server to drain and stop.
//   - cleanup (func()): Callback releasing resources such as the DB pool.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the verdupulse application.
//
// Modes (selected via --mode flag):
//   - api:     Starts the REST API serving orders, catalog, expenses and reports.
//   - migrate: Applies embedded schema migrations and exits.
//   - seed:    Imports products.csv and customers.csv from --dir and exits.
//
// Flags:
//   - --mode: Execution mode ("api", "migrate" or "seed"). Default: "api".
//   - --dir:  Directory with seed CSV files. Default: "./data/seed".
//   - --port: Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: api, migrate or seed")
	dir := flag.String("dir", "./data/seed", "Directory with seed CSV files")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "seed":
		logger.L().Info().Str("dir", *dir).Msg("seeding catalog and roster")

		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		if err := seeding.ImportDirectory(ctx, *dir, db); err != nil {
			logger.L().Fatal().Err(err).Msg("seeding failed")
		}
		logger.L().Info().Msg("seeding completed successfully")

	case "migrate":
		logger.L().Info().Msg("applying schema migrations")

		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		if err := storage.Migrate(db); err != nil {
			logger.L().Fatal().Err(err).Msg("migration failed")
		}
		logger.L().Info().Msg("migrations applied successfully")

	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
