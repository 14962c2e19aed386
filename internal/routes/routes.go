package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/finbook/finbook/internal/account"
	"github.com/finbook/finbook/internal/auth"
	"github.com/finbook/finbook/internal/config"
	"github.com/finbook/finbook/internal/events"
	"github.com/finbook/finbook/internal/middleware"
	"github.com/finbook/finbook/internal/statement"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.Env)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.Env)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Metrics())
	app.Use(middleware.Audit(d.Logger))
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)
	app.Get("/metrics", middleware.MetricsHandler())

	// Repositories and services
	var accountRepo account.Repository
	if d.DB != nil {
		accountRepo = account.NewPostgresRepository(d.DB)
	} else {
		accountRepo = account.NewMemoryRepository()
	}
	accountSvc := account.NewService(accountRepo)

	var ledger statement.Ledger
	if d.DB != nil {
		ledger = statement.NewPostgresLedger(d.DB)
	} else {
		ledger = statement.NewInMemory()
	}

	var publisher events.Publisher
	if len(d.Cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(d.Cfg.KafkaBrokers, d.Logger)
	} else {
		publisher = events.NewLoggerPublisher(d.Logger)
	}

	statementSvc := statement.NewService(ledger, accountRepo, publisher)
	tokenSvc := auth.NewService(d.Cfg)

	accountHandler := account.NewHandler(accountSvc)
	authHandler := auth.NewHandler(accountSvc, tokenSvc)
	statementHandler := statement.NewHandler(statementSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	RegisterAccountRoutes(api, accountHandler)
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterSessionRoutes(api, authHandler, rateLimiter)

	// Protected routes
	jwtmw := middleware.JWTAuth(tokenSvc, accountRepo)
	protected := api.Group("", jwtmw)
	protected.Get("/profile", accountHandler.Profile)
	RegisterStatementRoutes(protected, statementHandler)

	return nil
}
