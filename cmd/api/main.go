package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/quizgen-api/internal/config"
	"github.com/yourusername/quizgen-api/internal/handler"
	"github.com/yourusername/quizgen-api/internal/middleware"
	pgRepo "github.com/yourusername/quizgen-api/internal/repository/postgres"
	"github.com/yourusername/quizgen-api/internal/service"
	"github.com/yourusername/quizgen-api/internal/service/quizgen"
	"github.com/yourusername/quizgen-api/pkg/database"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		log.Printf("Failed to initialize database: %v", err)
		os.Exit(1)
	}

	// Redis нужен только для ограничения частоты генерации
	var redisClient redis.UniversalClient
	var rateLimiter *middleware.RateLimiter
	if cfg.Redis.Enabled() {
		redisClient, err = database.NewUniversalRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			log.Printf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		rateLimiter = middleware.NewRateLimiter(redisClient)
		log.Println("Successfully connected to Redis, generate rate limiting enabled")
	} else {
		log.Println("Redis is not configured, generate rate limiting disabled")
	}

	// Репозитории
	quizRepo := pgRepo.NewQuizRepo(db)
	resultRepo := pgRepo.NewResultRepo(db)
	itemRepo := pgRepo.NewItemRepo(db)

	// Клиент API генерации
	generator := quizgen.NewClient(quizgen.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Retry:       quizgen.NewRetryPolicy(cfg.LLM.MaxAttempts, cfg.LLM.InitialBackoff),
	})

	// Сервисы
	quizService := service.NewQuizService(quizRepo, generator)
	resultService := service.NewResultService(quizRepo, resultRepo)
	itemService := service.NewItemService(itemRepo)

	generateLimit := middleware.DefaultGenerateRateLimitConfig()
	generateLimit.MaxRequests = cfg.RateLimit.GenerateMax
	generateLimit.Window = cfg.RateLimit.GenerateWindow

	router := handler.NewRouter(handler.RouterDeps{
		QuizHandler:   handler.NewQuizHandler(quizService, resultService),
		ItemHandler:   handler.NewItemHandler(itemService),
		RateLimiter:   rateLimiter,
		GenerateLimit: generateLimit,
		CORSOrigins:   cfg.CORS.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis client: %v", err)
		}
	}
	if sqlDB, err := database.GetSQLDB(db); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}

	log.Println("Server exited properly")
}

// openDatabase подключается к PostgreSQL (с миграциями) или к SQLite (с AutoMigrate)
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Info
	if os.Getenv("GIN_MODE") == "release" {
		logLevel = logger.Warn
	}

	if cfg.Database.Driver == config.DriverSQLite {
		return database.NewSQLiteDB(cfg.Database.Path, logLevel)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), logLevel)
	if err != nil {
		return nil, err
	}
	if err := database.MigrateDB(db); err != nil {
		return nil, err
	}
	return db, nil
}
