package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"commentwidget/comments-service/internal/app/comments/config"
	"commentwidget/comments-service/internal/app/comments/handler"
	"commentwidget/comments-service/internal/app/comments/infrastructure"
	"commentwidget/comments-service/internal/app/comments/infrastructure/cache"
	"commentwidget/comments-service/internal/app/comments/infrastructure/messaging"
	"commentwidget/comments-service/internal/app/comments/processor"
	"commentwidget/comments-service/internal/app/comments/repository"
	"commentwidget/comments-service/internal/app/comments/service"
	"commentwidget/pkg/logger"
)

const serviceName = "comments-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init(serviceName, logLevel)

	logstashAddr := os.Getenv("LOGSTASH_ADDR")
	if logstashAddr != "" {
		if err := logger.InitLogstash(logstashAddr, serviceName, logLevel); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", logstashAddr).Msg("Connected to Logstash")
		}
	}

	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to get database handle")
	}
	defer sqlDB.Close()
	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Msg("Connected to PostgreSQL")

	if cfg.Database.AutoMigrate {
		if err := repository.Migrate(db); err != nil {
			logger.Fatal().Err(err).Msg("Failed to migrate database")
		}
		logger.Info().Msg("Comments table is up to date")
	}

	// Интерфейсы остаются nil, если Redis или Kafka не настроены
	var commentCache infrastructure.CommentCache
	var cachePinger handler.Pinger
	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		redisCache := cache.NewRedisCommentCache(redisClient, cfg.Redis.TTL)
		defer redisCache.Close()

		commentCache = redisCache
		cachePinger = redisCache
		logger.Info().
			Str("addr", cfg.Redis.Addr).
			Dur("ttl", cfg.Redis.TTL).
			Msg("Connected to Redis")
	}

	var publisher infrastructure.MessagePublisher
	if cfg.Kafka.Enabled() {
		kafkaProducer := messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaProducer.Close()

		publisher = kafkaProducer
		logger.Info().
			Str("topic", cfg.Kafka.Topic).
			Msg("Initialized Kafka producer")
	}

	commentRepo := repository.NewCommentRepository(db)

	commentService := service.NewCommentService(
		commentRepo,
		publisher,
		commentCache,
		service.Options{
			AutoApprove:   cfg.Comments.AutoApprove,
			DefaultAuthor: cfg.Comments.DefaultAuthor,
		},
	)

	commentHandler := handler.NewCommentHandler(commentService)
	healthHandler := handler.NewHealthHandler(commentService, cachePinger)

	router, err := handler.SetupRoutes(commentHandler, healthHandler, cfg.Server)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to configure router")
	}

	poolStats := processor.NewPoolStatsCollector(sqlDB, serviceName)
	if err := poolStats.Start(cfg.PoolStats.Schedule); err != nil {
		logger.Fatal().Err(err).Str("schedule", cfg.PoolStats.Schedule).Msg("Failed to start pool stats collector")
	}

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Bool("auto_approve", cfg.Comments.AutoApprove).
			Msg("Starting Comments Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Comments Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	poolStats.Stop()

	logger.Info().Msg("Comments Service stopped gracefully")
}

// connectDB подключается к PostgreSQL через GORM
// 10 попыток с паузой 3 секунды: в Docker база может подниматься дольше сервиса
func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else if pingErr := sqlDB.Ping(); pingErr != nil {
				err = pingErr
			} else {
				sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
				sqlDB.SetMaxIdleConns(5)
				sqlDB.SetConnMaxLifetime(5 * time.Minute)
				sqlDB.SetConnMaxIdleTime(1 * time.Minute)
				return db, nil
			}
		}
		logger.Warn().Err(err).Int("attempt", i+1).Msg("Failed to connect to database, retrying")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}
