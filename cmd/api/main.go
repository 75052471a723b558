package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"questgenius/internal/adapter"
	"questgenius/internal/adapter/llm"
	"questgenius/internal/adapter/store"
	"questgenius/internal/cache"
	"questgenius/internal/config"
	"questgenius/internal/dedup"
	"questgenius/internal/domain"
	"questgenius/internal/handler"
	"questgenius/internal/logger"
	"questgenius/internal/middleware"
	"questgenius/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Initialize LLM generator
	generator, err := llm.New(cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create question generator", zap.Error(err))
	}

	// Initialize question store
	questionStore, err := store.New(cfg.Store)
	if err != nil {
		appLogger.Fatal("Failed to create question store", zap.Error(err))
	}
	appLogger.Info("Question store initialized", zap.String("table", cfg.Store.Table))

	// Shared dedup cache is optional; without Redis the checker still covers
	// the session set and the store.
	var sharedCache domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		appLogger.Info("Successfully connected to Redis")
		sharedCache = adapter.NewRedisCacheAdapter(redisClient)
	} else {
		appLogger.Info("Redis not configured, shared dedup cache disabled")
	}

	checker := dedup.NewChecker(
		dedup.NewSeenSet(),
		sharedCache,
		questionStore,
		dedup.ParseScope(cfg.Generation.DedupScope),
		cfg.Generation.DedupTTL,
	)

	// Initialize services and handlers
	questionService := service.NewQuestionService(generator, questionStore, checker, cfg)
	questionHandler := handler.NewQuestionHandler(questionService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	apiGroup := app.Group("/api")
	apiGroup.Post("/questions", questionHandler.GenerateQuestion)
	apiGroup.Get("/exams", questionHandler.GetExams)
	apiGroup.Get("/exams/:exam/subjects", questionHandler.GetSubjects)
	apiGroup.Get("/exams/:exam/edital", questionHandler.GetEditalInfo)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
