package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/unlockhq/unlock-backend/internal/core/services"
	"github.com/unlockhq/unlock-backend/internal/handlers"
	"github.com/unlockhq/unlock-backend/internal/middleware"
	"github.com/unlockhq/unlock-backend/internal/platform/cache"
	"github.com/unlockhq/unlock-backend/internal/platform/config"
	"github.com/unlockhq/unlock-backend/internal/platform/mailer"
	"github.com/unlockhq/unlock-backend/internal/platform/payments"
	"github.com/unlockhq/unlock-backend/internal/platform/storage"
	"github.com/unlockhq/unlock-backend/internal/repositories/database/pgsql"
	"github.com/unlockhq/unlock-backend/pkg/database"
)

// @title Unlock Backend API
// @version 1.0
// @description Listings marketplace backend: moderation, subscriptions, taxonomy and pricing.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)

	// Serve taxonomy dropdown options through Redis when configured.
	if cfg.RedisAddress != "" {
		cachedTaxonomy, err := cache.NewCachedTaxonomyRepository(ctx, cfg.RedisAddress, repos.TaxonomyRepo, logger)
		if err != nil {
			logger.Error("Failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		repos.TaxonomyRepo = cachedTaxonomy
		logger.Info("Taxonomy cache enabled", slog.String("address", cfg.RedisAddress))
	}

	options := []services.ContainerOption{
		services.WithPaymentProvider(payments.NewProvider(cfg)),
	}
	if cfg.SMTPHost != "" {
		options = append(options, services.WithDecisionMailer(mailer.NewSMTPMailer(cfg)))
	}
	if cfg.MinioEndpoint != "" {
		fileStorage, err := storage.NewMinioStorage(ctx, cfg)
		if err != nil {
			logger.Error("Failed to initialize file storage", slog.String("error", err.Error()))
			os.Exit(1)
		}
		options = append(options, services.WithFileStorage(fileStorage))
	}

	serviceContainer := services.NewServiceContainer(cfg, repos, options...)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendBaseURL}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending migrations over a temporary database/sql
// connection using the pgx stdlib driver.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
