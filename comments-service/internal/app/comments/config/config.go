package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит все настройки Comments Service
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Comments  CommentsConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	PoolStats PoolStatsConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host           string   // Адрес хоста (по умолчанию 0.0.0.0)
	Port           string   // Порт сервера (по умолчанию 3000)
	AllowedOrigins []string // Origins браузерного виджета для CORS
	TrustedProxies []string // Прокси, которым доверяем X-Forwarded-For (пусто - никому)
}

// DatabaseConfig - настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	AutoMigrate  bool // Создавать таблицу comments при старте
}

// CommentsConfig - правила приема комментариев
type CommentsConfig struct {
	AutoApprove   bool   // Значение is_approved для новых комментариев
	DefaultAuthor string // Имя автора, если поле не заполнено
}

// RedisConfig - кеш списка одобренных комментариев
// Пустой Addr отключает кеширование
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// KafkaConfig - события COMMENT_CREATED
// Пустой список брокеров отключает публикацию
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// PoolStatsConfig - расписание сбора статистики пула соединений
type PoolStatsConfig struct {
	Schedule string
}

// Load загружает .env (если есть) и читает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Отсутствие .env не ошибка - в контейнере переменные приходят из окружения
	_ = godotenv.Load()

	maxOpenConns, err := strconv.Atoi(getEnv("DB_MAX_OPEN_CONNS", "25"))
	if err != nil || maxOpenConns <= 0 {
		return nil, fmt.Errorf("invalid DB_MAX_OPEN_CONNS value: %q", os.Getenv("DB_MAX_OPEN_CONNS"))
	}

	autoMigrate, err := strconv.ParseBool(getEnv("DB_AUTO_MIGRATE", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_AUTO_MIGRATE value: %w", err)
	}

	autoApprove, err := strconv.ParseBool(getEnv("COMMENTS_AUTO_APPROVE", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid COMMENTS_AUTO_APPROVE value: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL value: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnv("SERVER_PORT", "3000"),
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
			TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			DBName:       getEnv("DB_NAME", "comments"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: maxOpenConns,
			AutoMigrate:  autoMigrate,
		},
		Comments: CommentsConfig{
			AutoApprove:   autoApprove,
			DefaultAuthor: getEnv("COMMENTS_DEFAULT_AUTHOR", "Аноним"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			TTL:      cacheTTL,
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC", "comment_events"),
		},
		PoolStats: PoolStatsConfig{
			Schedule: getEnv("POOL_STATS_SCHEDULE", "@every 15s"),
		},
	}, nil
}

// DSN возвращает строку подключения к PostgreSQL в формате libpq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Address возвращает адрес сервера в формате host:port
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Enabled сообщает, настроен ли Redis
func (c *RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// Enabled сообщает, настроена ли публикация в Kafka
func (c *KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitList разбирает список через запятую, пустые элементы отбрасываются
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
