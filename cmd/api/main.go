package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vaultapi/docs"
	"vaultapi/internal/auth"
	"vaultapi/internal/config"
	"vaultapi/internal/database"
	"vaultapi/internal/database/migration"
	handlers "vaultapi/internal/http/handler"
	"vaultapi/internal/http/middleware"
	"vaultapi/internal/otel"
	"vaultapi/internal/repository/postgres"
	"vaultapi/internal/service"
	"vaultapi/internal/storage"
)

// @title Vault API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	// Initialize OpenTelemetry tracing (no-op when disabled or unreachable)
	shutdownTracing, err := otel.Init(ctx, time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	tokens := auth.NewTokenManager([]byte(cfg.Auth.JWTSecret), time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	// Initialize repositories and services
	userRepo := postgres.NewUserPostgres(db)
	itemRepo := postgres.NewItemPostgres(db)
	activityRepo := postgres.NewActivityPostgres(db)
	resetRepo := postgres.NewResetTokenPostgres(db)
	outreachRepo := postgres.NewOutreachPostgres(db)

	recorder := service.NewActivityRecorder(activityRepo)
	quota := service.NewQuotaCalculator(itemRepo, cfg.Quota)
	authSvc := service.NewAuthService(
		userRepo,
		resetRepo,
		tokens,
		quota,
		recorder,
		service.NewLogMailer(),
		cfg.Auth.BcryptCost,
		time.Duration(cfg.Auth.ResetTTLMinutes)*time.Minute,
	)
	vaultSvc := service.NewVaultService(objStore, itemRepo, recorder)
	outreachSvc := service.NewOutreachService(outreachRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, tokens, authSvc, vaultSvc, outreachSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
