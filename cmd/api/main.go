package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/facebookgo/clock"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"projectapi/docs"
	"projectapi/internal/auth"
	"projectapi/internal/config"
	"projectapi/internal/database"
	"projectapi/internal/database/migration"
	handlers "projectapi/internal/http/handler"
	"projectapi/internal/http/middleware"
	"projectapi/internal/logging"
	"projectapi/internal/metrics"
	apptracing "projectapi/internal/otel"
	"projectapi/internal/repository/postgres"
	"projectapi/internal/service"
	"projectapi/internal/storage"
	"projectapi/internal/worker"
)

const shutdownTimeout = 10 * time.Second

// @title Project API
// @version 1.0
// @description Projects with attachments, notes, comments, reminders and share links.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	// Load configuration from YAML/environment (.env auto-loaded if present)
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load configuration", zap.Error(err))
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		zap.NewExample().Fatal("failed to build logger", zap.Error(err))
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server_failed", zap.Error(err))
	}
}

func run(cfg *config.AppConfig, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := apptracing.Init(ctx, logger)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("tracing_shutdown_failed", zap.Error(err))
		}
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
		return err
	}

	objStore, err := storage.NewMinIO(ctx, cfg.MinIO, logger)
	if err != nil {
		return err
	}

	issuer, err := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	if err != nil {
		return err
	}

	clk := clock.New()
	domainMetrics := metrics.New(prometheus.DefaultRegisterer)

	// Initialize repositories and services
	projectRepo := postgres.NewProjectPostgres(db)
	reminderSvc := service.NewReminderService(
		postgres.NewReminderPostgres(db), projectRepo, clk, logger, domainMetrics,
		service.ReminderOptions{PersistOnRead: cfg.Reminders.PersistOnRead},
	)
	services := handlers.Services{
		Projects:  service.NewProjectService(projectRepo, objStore, clk, logger),
		Files:     service.NewFileService(objStore, postgres.NewProjectFilePostgres(db), projectRepo, clk, cfg.MinIO.PresignExpiry()),
		Notes:     service.NewNoteService(postgres.NewNotePostgres(db), projectRepo, clk),
		Comments:  service.NewCommentService(postgres.NewCommentPostgres(db), projectRepo, clk),
		Reminders: reminderSvc,
		ShareLinks: service.NewShareLinkService(
			postgres.NewShareLinkPostgres(db), projectRepo, postgres.NewUserPostgres(db), postgres.NewNotePostgres(db),
			clk, logger, domainMetrics,
		),
	}

	sweeper := worker.NewReminderSweeper(reminderSvc, logger,
		worker.WithClock(clk),
		worker.WithInterval(cfg.Reminders.SweepInterval()),
		worker.WithMetrics(domainMetrics),
	)
	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		sweeper.Run(ctx)
	}()

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	// Register global middleware
	// Tracing first so request logs can carry the trace ID
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(logger))
	// Prometheus request counters and latency histograms
	prom, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	app.Use(prom.Handler())

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, handlers.Deps{
		DB:            db,
		Storage:       objStore,
		Auth:          issuer,
		Services:      services,
		Gatherer:      prometheus.DefaultGatherer,
		PublicBaseURL: cfg.PublicBaseURL,
	})

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
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server_listening", zap.String("addr", addr))
		serveErr <- app.Listen(addr)
	}()

	select {
	case err := <-serveErr:
		stop()
		<-sweeperDone
		return err
	case <-ctx.Done():
	}

	logger.Info("server_shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logger.Warn("server_shutdown_failed", zap.Error(err))
	}
	<-sweeperDone
	return nil
}
