// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adelinv/replyscore/internal/api/handlers"
	"github.com/adelinv/replyscore/internal/cache"
	"github.com/adelinv/replyscore/internal/config"
	"github.com/adelinv/replyscore/internal/database"
	"github.com/adelinv/replyscore/internal/evaluator"
	"github.com/adelinv/replyscore/internal/health"
	"github.com/adelinv/replyscore/internal/helpscout"
	"github.com/adelinv/replyscore/internal/middleware"
	"github.com/adelinv/replyscore/internal/openai"
	"github.com/adelinv/replyscore/internal/render"
	"github.com/adelinv/replyscore/internal/repository"
	"github.com/adelinv/replyscore/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	logger := utils.GetLogger()
	logger.Info("Starting reply evaluator...")

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if err := cfg.ValidateHelpScout(); err != nil {
		logger.WithError(err).Fatal("Help Scout configuration validation failed")
	}
	if err := cfg.ValidateOpenAI(); err != nil {
		logger.WithError(err).Fatal("OpenAI configuration validation failed")
	}
	if err := cfg.ValidateCache(); err != nil {
		logger.WithError(err).Fatal("Cache configuration validation failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional persistence: audit log needs Postgres, the redis cache
	// backend needs Redis. Neither blocks the core pipeline.
	var dbManager *database.Manager
	var repoManager *repository.RepositoryManager

	if cfg.Database.URL != "" || cfg.Redis.URL != "" {
		dbManager, err = database.NewManager(&database.Config{
			DatabaseURL: cfg.Database.URL,
			RedisURL:    cfg.Redis.URL,
			LogLevel:    os.Getenv("LOG_LEVEL"),
		}, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize database manager")
		}
		defer dbManager.Close()

		if err := dbManager.Migrate(); err != nil {
			logger.WithError(err).Fatal("Database migration failed")
		}
		if dbManager.DB != nil {
			repoManager = repository.NewRepositoryManager(dbManager.DB)
		}
	}

	var store cache.Store
	if cfg.Cache.Backend == "redis" {
		store = cache.NewRedisStore(dbManager.Redis, cfg.Cache.Retention, logger)
	} else {
		memStore := cache.NewMemoryStore(cfg.Cache.Retention, time.Now, logger)
		go memStore.Janitor(ctx, time.Hour)
		store = memStore
	}

	hsClient := helpscout.NewClient(
		cfg.HelpScout.BaseURL,
		cfg.HelpScout.AppID,
		cfg.HelpScout.AppSecret,
		cfg.HelpScout.AccessToken,
		logger,
	)
	openaiClient := openai.NewClient(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger)

	webhookHandler := handlers.NewWebhookHandler(
		hsClient,
		evaluator.New(openaiClient, logger),
		store,
		cache.NewInFlight(),
		render.New(cfg.Cache.CachedDetail),
		repoManager,
		logger,
		cfg.Evaluator.Timeout,
		cfg.Evaluator.TranscriptEntries,
	)

	statsHandler := handlers.NewStatsHandler(repoManager, logger)

	checker := health.NewHealthChecker(dbManager, hsClient, logger)
	go checker.PeriodicHealthCheck(ctx, time.Minute)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.NewRateLimiter(120).RateLimit())

	router.POST("/", webhookHandler.HandleWebhook)
	router.GET("/widget", webhookHandler.HandleWidget)
	router.GET("/stats/summary", statsHandler.HandleSummary)
	router.GET("/stats/tickets/:id", statsHandler.HandleTicket)
	router.GET("/health", func(c *gin.Context) {
		result := checker.Cached()
		if result == nil {
			fresh := checker.CheckAll(c.Request.Context())
			result = &fresh
		}
		status := http.StatusOK
		if result.Status != "healthy" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, result)
	})

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("HTTP server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server shutdown failed")
	}

	logger.Info("Server stopped")
}
