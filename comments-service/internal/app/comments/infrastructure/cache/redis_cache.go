package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"commentwidget/comments-service/internal/app/comments/entity"
	"commentwidget/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	serviceName        = "comments-service"
	approvedCommentKey = "comments:approved"
	generationKey      = "comments:approved:gen"
	keyPrefix          = "comments"
)

// RedisCommentCache хранит JSON списка одобренных комментариев под ключом текущего поколения
type RedisCommentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient подключается к Redis и проверяет соединение
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

func NewRedisCommentCache(client *redis.Client, ttl time.Duration) *RedisCommentCache {
	return &RedisCommentCache{client: client, ttl: ttl}
}

func listKey(generation int64) string {
	return fmt.Sprintf("%s:%d", approvedCommentKey, generation)
}

// Generation возвращает текущее поколение списка, 0 если Invalidate еще не вызывался
func (c *RedisCommentCache) Generation(ctx context.Context) (int64, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpGet)
	defer timer.ObserveDuration()

	generation, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return 0, fmt.Errorf("failed to get cache generation: %w", err)
	}
	return generation, nil
}

func (c *RedisCommentCache) GetApproved(ctx context.Context, generation int64) ([]entity.Comment, bool, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpGet)
	defer timer.ObserveDuration()

	data, err := c.client.Get(ctx, listKey(generation)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.RecordCacheMiss(serviceName, keyPrefix)
			return nil, false, nil
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return nil, false, fmt.Errorf("failed to get comments from cache: %w", err)
	}

	var comments []entity.Comment
	if err := json.Unmarshal(data, &comments); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached comments: %w", err)
	}

	metrics.RecordCacheHit(serviceName, keyPrefix)
	return comments, true, nil
}

func (c *RedisCommentCache) SetApproved(ctx context.Context, generation int64, comments []entity.Comment) error {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpSet)
	defer timer.ObserveDuration()

	data, err := json.Marshal(comments)
	if err != nil {
		return fmt.Errorf("failed to marshal comments: %w", err)
	}

	if err := c.client.Set(ctx, listKey(generation), data, c.ttl).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to set comments in cache: %w", err)
	}

	return nil
}

// Invalidate переводит кеш на новое поколение и удаляет список прежнего.
// Списки старых поколений, записанные позже, истекут по TTL
func (c *RedisCommentCache) Invalidate(ctx context.Context) error {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpDel)
	defer timer.ObserveDuration()

	next, err := c.client.Incr(ctx, generationKey).Result()
	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
		return fmt.Errorf("failed to bump cache generation: %w", err)
	}

	if err := c.client.Del(ctx, listKey(next-1)).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
		return fmt.Errorf("failed to delete comments from cache: %w", err)
	}
	return nil
}

func (c *RedisCommentCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCommentCache) Close() error {
	return c.client.Close()
}
