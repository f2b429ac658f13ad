// Package main is the entrypoint for the SpendWise API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/spendwise/spendwise/internal/advisor"
	"github.com/spendwise/spendwise/internal/cache"
	"github.com/spendwise/spendwise/internal/config"
	"github.com/spendwise/spendwise/internal/handler"
	"github.com/spendwise/spendwise/internal/metrics"
	"github.com/spendwise/spendwise/internal/middleware"
	"github.com/spendwise/spendwise/internal/repository"
	"github.com/spendwise/spendwise/internal/server"
	"github.com/spendwise/spendwise/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	if err := repository.Migrate(cfg.DatabaseURL); err != nil {
		logger.Error("failed to run migrations",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("migrations applied")

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error("failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	advisorClient := advisor.New(cfg.AdvisorURL, cfg.AdvisorTimeout)

	recorder := metrics.NewInMemory()
	authService := service.NewAuthService(repo, cfg.JWTSecret, cfg.TokenTTL)
	expenseService := service.NewExpenseService(repo, cacheClient, advisorClient, recorder, logger)
	budgetService := service.NewBudgetService(repo)
	savingsService := service.NewSavingsService(repo)
	adviceService := service.NewAdviceService(repo, advisorClient, logger)

	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	authHandler := handler.NewAuthHandler(authService, logger)
	expenseHandler := handler.NewExpenseHandler(expenseService, logger)
	categoryHandler := handler.NewCategoryHandler(repo, logger)
	budgetHandler := handler.NewBudgetHandler(budgetService, logger)
	savingsHandler := handler.NewSavingsHandler(savingsService, logger)
	adviceHandler := handler.NewAdviceHandler(adviceService, logger)

	r := setupRouter(routerDeps{
		health:   healthHandler,
		auth:     authHandler,
		expense:  expenseHandler,
		category: categoryHandler,
		budget:   budgetHandler,
		savings:  savingsHandler,
		advice:   adviceHandler,
		cache:    cacheClient,
		cfg:      cfg,
		logger:   logger,
	})

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"advisor_url", cfg.AdvisorURL,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type routerDeps struct {
	health   *handler.HealthHandler
	auth     *handler.AuthHandler
	expense  *handler.ExpenseHandler
	category *handler.CategoryHandler
	budget   *handler.BudgetHandler
	savings  *handler.SavingsHandler
	advice   *handler.AdviceHandler
	cache    *cache.Cache
	cfg      *config.Config
	logger   *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.Recoverer(d.logger))
	r.Use(middleware.BodyLimit(d.cfg.MaxRequestBodySize))

	if origins := d.cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", d.health.Healthz)
	r.Get("/readyz", d.health.Readyz)

	authLimit := middleware.AuthRateLimit(d.cache, d.cfg.AuthRateLimitPerMin, d.cfg.AuthRateLimitEnabled, d.logger)
	authed := middleware.Authenticate(d.cfg.JWTSecret, d.logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(authLimit).Post("/register", d.auth.Register)
			r.With(authLimit).Post("/login", d.auth.Login)
			r.With(authed).Get("/me", d.auth.Me)
		})

		r.Group(func(r chi.Router) {
			r.Use(authed)

			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", d.expense.List)
				r.Post("/", d.expense.Create)
				r.Get("/trends", d.expense.Trends)
				r.Get("/{id}", d.expense.Get)
				r.Put("/{id}", d.expense.Update)
				r.Delete("/{id}", d.expense.Delete)
			})

			r.Get("/categories", d.category.List)

			r.Route("/budgets", func(r chi.Router) {
				r.Get("/", d.budget.List)
				r.Post("/", d.budget.Upsert)
				r.Delete("/{id}", d.budget.Delete)
			})

			r.Route("/savings", func(r chi.Router) {
				r.Get("/", d.savings.List)
				r.Post("/", d.savings.Create)
				r.Put("/{id}/add", d.savings.AddFunds)
				r.Delete("/{id}", d.savings.Delete)
			})

			r.Route("/advice", func(r chi.Router) {
				r.Post("/audit", d.advice.Audit)
				r.Post("/chat", d.advice.Chat)
			})
		})
	})

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
