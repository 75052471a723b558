package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"questgenius/internal/adapter"
	"questgenius/internal/adapter/llm"
	"questgenius/internal/adapter/store"
	"questgenius/internal/cache"
	"questgenius/internal/config"
	"questgenius/internal/dedup"
	"questgenius/internal/domain"
	"questgenius/internal/dto"
	"questgenius/internal/logger"
	"questgenius/internal/service"

	"go.uber.org/zap"
)

// pregen fills the question store ahead of time so that interactive requests
// hit pre-generated material instead of waiting on the model.
func main() {
	exam := flag.String("exam", "", "exam identifier, e.g. \"TJSP - Tribunal de Justiça de SP\"")
	subject := flag.String("subject", "", "subject to generate questions for")
	difficulty := flag.String("difficulty", "medio", "difficulty: facil, medio or dificil")
	count := flag.Int("count", 10, "number of questions to generate")
	timeout := flag.Duration("timeout", 10*time.Minute, "overall run timeout")
	flag.Parse()

	if *exam == "" || *subject == "" {
		fmt.Println("Usage: pregen -exam <exam> -subject <subject> [-difficulty medio] [-count 10]")
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		return
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		return
	}
	defer logger.Sync()

	logger.Get().Info("Pre-generation starting up...",
		zap.String("exam", *exam),
		zap.String("subject", *subject),
		zap.Int("count", *count))

	generator, err := llm.New(cfg.LLM)
	if err != nil {
		logger.Get().Fatal("Failed to create question generator", zap.Error(err))
	}

	questionStore, err := store.New(cfg.Store)
	if err != nil {
		logger.Get().Fatal("Failed to create question store", zap.Error(err))
	}

	var sharedCache domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Get().Fatal("Failed to initialize Redis Client", zap.Error(err))
		}
		sharedCache = adapter.NewRedisCacheAdapter(redisClient)
		logger.Get().Info("Redis Cache initialized successfully.")
	} else {
		logger.Get().Warn("Redis cache is not configured. Running without shared dedup cache.")
	}

	// Pre-generated questions serve every user, so duplicates are checked
	// globally regardless of the configured scope.
	checker := dedup.NewChecker(
		dedup.NewSeenSet(),
		sharedCache,
		questionStore,
		dedup.ScopeGlobal,
		cfg.Generation.DedupTTL,
	)
	questionService := service.NewQuestionService(generator, questionStore, checker, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var generated, fallbacks, failures int
	for i := 0; i < *count; i++ {
		resp, err := questionService.Generate(ctx, &dto.GenerateQuestionRequest{
			Exam:       *exam,
			Subject:    *subject,
			Difficulty: *difficulty,
		})
		if err != nil {
			failures++
			logger.Get().Error("Generation failed", zap.Int("index", i), zap.Error(err))
			continue
		}
		if resp.Fallback {
			// The fallback question is never persisted; keep going in case the
			// provider recovers.
			fallbacks++
			logger.Get().Warn("Provider unavailable, fallback returned", zap.Int("index", i))
			continue
		}
		generated++
	}

	logger.Get().Info("Pre-generation finished",
		zap.Int("generated", generated),
		zap.Int("fallbacks", fallbacks),
		zap.Int("failures", failures))
}
